// Package node wires the slasher service, its history store and the metrics
// server together and manages their lifecycle.
package node

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/slashing-oracle/beacon-chain/slasher"
	"github.com/prysmaticlabs/slashing-oracle/cmd"
	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
	"github.com/prysmaticlabs/slashing-oracle/io/file"
	"github.com/prysmaticlabs/slashing-oracle/monitoring/prometheus"
	"github.com/prysmaticlabs/slashing-oracle/runtime"
	"github.com/prysmaticlabs/slashing-oracle/slasher/db"
	"github.com/prysmaticlabs/slashing-oracle/slasher/flags"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var log = logrus.WithField("prefix", "node")

// SlasherNode handles the services running the attester slashing detector.
// It owns the history store and registers every required service.
type SlasherNode struct {
	cliCtx   *cli.Context
	ctx      context.Context
	cancel   context.CancelFunc
	lock     sync.RWMutex
	services *runtime.ServiceRegistry
	stop     chan struct{} // Channel to wait for termination notifications.
	db       db.Database
	slasher  *slasher.Service
}

// NewSlasherNode opens the history store under --datadir and registers the
// slasher service and, unless disabled, the prometheus service.
func NewSlasherNode(cliCtx *cli.Context) (*SlasherNode, error) {
	if !cliCtx.IsSet(flags.GenesisTimeFlag.Name) {
		return nil, errors.New("--genesis-time is required")
	}
	ctx, cancel := context.WithCancel(cliCtx.Context)
	registry := runtime.NewServiceRegistry()
	n := &SlasherNode{
		cliCtx:   cliCtx,
		ctx:      ctx,
		cancel:   cancel,
		services: registry,
		stop:     make(chan struct{}),
	}
	if err := n.startDB(); err != nil {
		cancel()
		return nil, err
	}
	if err := n.registerSlasherService(); err != nil {
		n.closeDB()
		cancel()
		return nil, err
	}
	if !cliCtx.Bool(cmd.DisableMonitoringFlag.Name) {
		if err := n.registerPrometheusService(); err != nil {
			n.closeDB()
			cancel()
			return nil, err
		}
	}
	return n, nil
}

// Slasher returns the registered slasher service.
func (n *SlasherNode) Slasher() *slasher.Service {
	return n.slasher
}

// Start every registered service and block until Close is called or the
// process is interrupted.
func (n *SlasherNode) Start() {
	n.lock.Lock()
	n.services.StartAll()
	n.lock.Unlock()

	stop := n.stop
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigc)
		select {
		case <-sigc:
		case <-stop:
			return
		}
		log.Info("Got interrupt, shutting down...")
		go n.Close()
		for i := 10; i > 0; i-- {
			<-sigc
			if i > 1 {
				log.WithField("times", i-1).Info("Already shutting down, interrupt more to panic")
			}
		}
		panic("Panic closing the slasher node")
	}()

	// Wait for stop channel to be closed.
	<-stop
}

// Close handles graceful shutdown of the system.
func (n *SlasherNode) Close() {
	n.lock.Lock()
	defer n.lock.Unlock()

	log.Info("Stopping slasher node")
	n.services.StopAll()
	n.cancel()
	n.closeDB()
	close(n.stop)
}

func (n *SlasherNode) closeDB() {
	if err := n.db.Close(); err != nil {
		log.WithError(err).Error("Failed to close database")
	}
}

func (n *SlasherNode) startDB() error {
	baseDir := n.cliCtx.String(cmd.DataDirFlag.Name)
	dbPath, err := file.ExpandPath(baseDir)
	if err != nil {
		return errors.Wrap(err, "could not expand data directory")
	}
	log.WithField("databasePath", dbPath).Info("Checking DB")
	d, err := db.NewDB(n.ctx, dbPath, nil)
	if err != nil {
		return errors.Wrap(err, "could not open slasher database")
	}
	n.db = d
	// The size is informational, the node keeps the database either way.
	size, err := d.Size()
	if err != nil {
		log.WithError(err).Warn("Could not read database size")
		return nil
	}
	log.WithField("size", humanize.Bytes(uint64(size))).Info("Opened slasher database") // #nosec G115
	return nil
}

func (n *SlasherNode) registerSlasherService() error {
	genesis := time.Unix(int64(n.cliCtx.Uint64(flags.GenesisTimeFlag.Name)), 0) // #nosec G115
	svc, err := slasher.New(n.ctx, &slasher.ServiceConfig{
		Database:      n.db,
		GenesisTime:   genesis,
		HistoryLength: primitives.Epoch(n.cliCtx.Uint64(flags.HistoryLengthFlag.Name)),
	})
	if err != nil {
		return err
	}
	n.slasher = svc
	return n.services.RegisterService(svc)
}

func (n *SlasherNode) registerPrometheusService() error {
	addr := fmt.Sprintf(
		"%s:%d",
		n.cliCtx.String(cmd.MonitoringHostFlag.Name),
		n.cliCtx.Int(cmd.MonitoringPortFlag.Name),
	)
	return n.services.RegisterService(prometheus.NewService(addr, n.services))
}
