// Package kv defines a bolt-db, key-value store implementation of
// the history store used by the slashing detection service.
package kv

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	prombolt "github.com/prysmaticlabs/prombbolt"
	"github.com/prysmaticlabs/slashing-oracle/io/file"
	"github.com/prysmaticlabs/slashing-oracle/slasher/db/iface"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

var _ iface.Database = (*Store)(nil)

const (
	// DatabaseFileName is the name of the slasher database.
	DatabaseFileName = "slasher.db"
	// boltAllocSize is the initial mmap size of the database file.
	boltAllocSize = 8 * 1024 * 1024
)

// Store defines an implementation of the slasher Database interface
// using BoltDB as the underlying persistent kv-store.
type Store struct {
	db           *bolt.DB
	databasePath string
	attCache     *ristretto.Cache
}

// Config options for the slasher db.
type Config struct {
	// CacheItems is the number of keys the decoded attestation cache tracks.
	CacheItems int64
	// MaxCacheSize is the cache budget in bytes of encoded attestations.
	MaxCacheSize int64
}

// NewKVStore initializes a new boltDB key-value store at the directory
// path specified, creates the kv-buckets based on the schema, and stores
// an open connection db object as a property of the Store struct.
func NewKVStore(ctx context.Context, dirPath string, cfg *Config) (*Store, error) {
	_, span := trace.StartSpan(ctx, "SlasherDB.NewKVStore")
	defer span.End()
	if cfg == nil {
		cfg = &Config{}
	}
	hasDir, err := file.HasDir(dirPath)
	if err != nil {
		return nil, err
	}
	if !hasDir {
		if err := file.MkdirAll(dirPath); err != nil {
			return nil, err
		}
	}
	datafile := filepath.Join(dirPath, DatabaseFileName)
	boltDB, err := bolt.Open(
		datafile,
		0600,
		&bolt.Options{
			Timeout:         1 * time.Second,
			InitialMmapSize: boltAllocSize,
		},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errors.New("cannot obtain database lock, database may be in use by another process")
		}
		return nil, err
	}
	return newStore(boltDB, datafile, cfg)
}

// Takes ownership of boltDB, which is closed when the store cannot be set up.
func newStore(boltDB *bolt.DB, datafile string, cfg *Config) (*Store, error) {
	if cfg.CacheItems == 0 {
		cfg.CacheItems = 20000
	}
	if cfg.MaxCacheSize == 0 {
		cfg.MaxCacheSize = 64 << 20 // 64MB
	}
	attCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.CacheItems * 10, // number of keys to track frequency of.
		MaxCost:     cfg.MaxCacheSize,    // maximum cost of cache.
		BufferItems: 64,                  // number of keys per Get buffer.
	})
	if err != nil {
		closeBolt(boltDB)
		return nil, errors.Wrap(err, "failed to start attestation cache")
	}
	kv := &Store{db: boltDB, databasePath: datafile, attCache: attCache}

	if err := kv.db.Update(func(tx *bolt.Tx) error {
		return createBuckets(
			tx,
			attestationsBucket,
			attesterSlashingsBucket,
		)
	}); err != nil {
		attCache.Close()
		closeBolt(boltDB)
		return nil, errors.Wrap(err, "could not create buckets")
	}
	if err := prometheus.Register(createBoltCollector(kv.db)); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			attCache.Close()
			closeBolt(boltDB)
			return nil, err
		}
	}
	return kv, nil
}

func closeBolt(db *bolt.DB) {
	if err := db.Close(); err != nil {
		log.WithError(err).Error("Failed to close database")
	}
}

// Close closes the underlying boltdb database.
func (s *Store) Close() error {
	prometheus.Unregister(createBoltCollector(s.db))
	s.attCache.Close()
	return s.db.Close()
}

// ClearDB removes any previously stored data at the configured data directory.
func (s *Store) ClearDB() error {
	s.attCache.Clear()
	if _, err := os.Stat(s.databasePath); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(s.databasePath)
}

// DatabasePath at which this database writes files.
func (s *Store) DatabasePath() string {
	return s.databasePath
}

// Size returns the db size in bytes.
func (s *Store) Size() (int64, error) {
	var size int64
	err := s.db.View(func(tx *bolt.Tx) error {
		size = tx.Size()
		return nil
	})
	return size, err
}

// createBoltCollector returns a prometheus collector specifically configured for boltdb.
func createBoltCollector(db *bolt.DB) prometheus.Collector {
	return prombolt.New("slasherDB", db)
}

func createBuckets(tx *bolt.Tx, buckets ...[]byte) error {
	for _, bucket := range buckets {
		if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
			return err
		}
	}
	return nil
}
