// Package slasher defines a long-running service which receives indexed
// attestations, keeps a sliding window of them in a history store and reports
// attester slashings found by the slashing oracle on every epoch boundary.
package slasher

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/slashing-oracle/config/params"
	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/slashing-oracle/slasher/db/iface"
	"github.com/prysmaticlabs/slashing-oracle/time/slots"
)

const (
	defaultAttestationQueueSize = 1024
	defaultReportedCacheSize    = 1 << 16
)

// ServiceConfig for the slasher service.
// This struct allows us to specify required dependencies and
// parameters for slasher to function as needed.
type ServiceConfig struct {
	Database             iface.Database
	GenesisTime          time.Time
	HistoryLength        primitives.Epoch
	AttestationQueueSize int
	ReportedCacheSize    int
}

// Service defining a slasher implementation, able to detect
// attester slashable offenses.
type Service struct {
	cfg         *ServiceConfig
	attsChan    chan *ethpb.IndexedAttestation
	attsQueue   *attestationsQueue
	reported    *lru.Cache
	epochTicker *slots.EpochTicker
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	errLock     sync.RWMutex
	runErr      error
}

// New instantiates a new slasher from configuration values.
func New(ctx context.Context, cfg *ServiceConfig) (*Service, error) {
	if cfg == nil || cfg.Database == nil {
		return nil, errors.New("slasher requires a database")
	}
	if cfg.HistoryLength == 0 {
		cfg.HistoryLength = params.BeaconConfig().SlasherHistoryLength
	}
	if cfg.AttestationQueueSize <= 0 {
		cfg.AttestationQueueSize = defaultAttestationQueueSize
	}
	if cfg.ReportedCacheSize <= 0 {
		cfg.ReportedCacheSize = defaultReportedCacheSize
	}
	reported, err := lru.New(cfg.ReportedCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "could not create reported validators cache")
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Service{
		cfg:       cfg,
		attsChan:  make(chan *ethpb.IndexedAttestation, cfg.AttestationQueueSize),
		attsQueue: newAttestationsQueue(),
		reported:  reported,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Start listening for received indexed attestations and perform
// slashing detection on them at every epoch boundary.
func (s *Service) Start() {
	if s.cfg.GenesisTime.IsZero() {
		s.setRunErr(errors.New("genesis time is not set"))
		log.Error("Could not start slasher: genesis time is not set")
		return
	}
	log.WithField("historyLength", s.cfg.HistoryLength).Info("Starting slasher")
	s.epochTicker = slots.NewEpochTicker(s.cfg.GenesisTime, params.BeaconConfig().SecondsPerEpoch())
	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		s.receiveAttestations(s.ctx)
	}()
	go func() {
		defer s.wg.Done()
		s.processQueuedAttestations(s.ctx, s.epochTicker.C())
	}()
}

// Stop the slasher service.
func (s *Service) Stop() error {
	s.cancel()
	if s.epochTicker != nil {
		s.epochTicker.Done()
	}
	s.wg.Wait()
	log.Info("Stopped slasher")
	return nil
}

// Status of the slasher service.
func (s *Service) Status() error {
	s.errLock.RLock()
	defer s.errLock.RUnlock()
	return s.runErr
}

func (s *Service) setRunErr(err error) {
	s.errLock.Lock()
	defer s.errLock.Unlock()
	s.runErr = err
}
