package slasher

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
)

// ReceiveAttestation hands an indexed attestation to the service for detection
// at the next epoch boundary. It does not block: when the receive buffer is
// full the attestation is dropped and counted.
func (s *Service) ReceiveAttestation(att *ethpb.IndexedAttestation) {
	select {
	case s.attsChan <- att:
	default:
		droppedAttestationsTotal.Inc()
		log.Warn("Attestation receive buffer is full, dropping attestation")
	}
}

// EnqueueAttestations queues a bulk of indexed attestations for detection at
// the next epoch boundary, bypassing the receive buffer. It never drops an
// attestation and returns how many were not already queued.
func (s *Service) EnqueueAttestations(atts []*ethpb.IndexedAttestation) int {
	before := s.attsQueue.size()
	s.attsQueue.extend(atts)
	return s.attsQueue.size() - before
}

// Receive indexed attestations from the receive buffer and append them
// to an attestation queue for batch processing in a separate routine.
func (s *Service) receiveAttestations(ctx context.Context) {
	for {
		select {
		case att := <-s.attsChan:
			s.attsQueue.push(att)
		case <-ctx.Done():
			return
		}
	}
}

// Process queued attestations every time an epoch ticker fires. Attestations
// that target a future epoch go back to the queue, and history older than the
// window is pruned afterwards.
func (s *Service) processQueuedAttestations(ctx context.Context, epochTicker <-chan primitives.Epoch) {
	for {
		select {
		case currentEpoch := <-epochTicker:
			attestations := s.attsQueue.dequeue()
			result, err := s.detectAttestationBatch(ctx, currentEpoch, attestations)
			if err != nil {
				log.WithError(err).Error("Could not detect slashable attestations")
				// Nothing of the round was stored, retry the batch at the next epoch.
				s.attsQueue.extend(attestations)
				s.setRunErr(err)
				continue
			}
			s.attsQueue.extend(result.Deferred)
			if err := s.pruneHistory(ctx, currentEpoch); err != nil {
				log.WithError(err).Error("Could not prune slasher data")
				s.setRunErr(err)
				continue
			}
			s.setRunErr(nil)
		case <-ctx.Done():
			return
		}
	}
}

// Prunes attestations by using a sliding window of [current_epoch - HISTORY_LENGTH + 1, current_epoch].
// Say HISTORY_LENGTH is 4 and we have data for epochs 0, 1, 2, 3. Once we hit epoch 4, the sliding window
// we care about is 1, 2, 3, 4, so we can delete data for epoch 0.
func (s *Service) pruneHistory(ctx context.Context, currentEpoch primitives.Epoch) error {
	until := s.windowStart(currentEpoch)
	if until == 0 {
		return nil
	}
	if err := s.cfg.Database.PruneAttestationsUntilEpoch(ctx, until); err != nil {
		return errors.Wrap(err, "could not prune attestations")
	}
	log.WithFields(logrus.Fields{
		"currentEpoch":          currentEpoch,
		"pruningAllBeforeEpoch": until,
	}).Debug("Pruned old attestations")
	return nil
}
