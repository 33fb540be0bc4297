package slasher

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/slashing-oracle/config/params"
	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
	"github.com/prysmaticlabs/slashing-oracle/container/slice"
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1/attestation"
	"github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1/slashings"
	"github.com/prysmaticlabs/slashing-oracle/slasher/oracle"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// BatchResult summarizes one round of slashing detection.
type BatchResult struct {
	// Slashings holds the attester slashings first seen in this round.
	Slashings []*ethpb.AttesterSlashing `json:"attester_slashings"`
	// SlashedValidators is the sorted set of validators the new slashings implicate.
	SlashedValidators []primitives.ValidatorIndex `json:"slashed_validators"`
	NumProcessed      int                         `json:"num_processed"`
	NumDropped        int                         `json:"num_dropped"`
	// Deferred holds attestations that target an epoch after the current one.
	Deferred []*ethpb.IndexedAttestation `json:"deferred"`
}

// DetectBatch runs one detection round over atts synchronously. The current
// epoch is taken to be the highest target epoch among the well formed
// attestations, so nothing is deferred.
func (s *Service) DetectBatch(ctx context.Context, atts []*ethpb.IndexedAttestation) (*BatchResult, error) {
	var currentEpoch primitives.Epoch
	for _, att := range atts {
		source, target := att.GetData().GetSource(), att.GetData().GetTarget()
		if source == nil || target == nil || source.Epoch > target.Epoch {
			continue
		}
		if target.Epoch > currentEpoch {
			currentEpoch = target.Epoch
		}
	}
	return s.detectAttestationBatch(ctx, currentEpoch, atts)
}

// Detects slashable offenses in a batch of attestations. The history window
// together with the valid attestations of the batch is scanned by the slashing
// oracle. The batch and every slashing involving it that was not seen before
// are persisted in one transaction and only then reported.
func (s *Service) detectAttestationBatch(
	ctx context.Context, currentEpoch primitives.Epoch, atts []*ethpb.IndexedAttestation,
) (*BatchResult, error) {
	ctx, span := trace.StartSpan(ctx, "Slasher.detectAttestationBatch")
	defer span.End()

	valid, validInFuture, numDropped := s.validateAttestationIntegrity(atts, currentEpoch)
	droppedAttestationsTotal.Add(float64(numDropped))
	deferredAttestationsTotal.Add(float64(len(validInFuture)))

	log.WithFields(logrus.Fields{
		"currentEpoch":    currentEpoch,
		"numValidAtts":    len(valid),
		"numDeferredAtts": len(validInFuture),
		"numDroppedAtts":  numDropped,
	}).Info("Processing queued attestations for slashing detection")

	result := &BatchResult{
		Slashings:         make([]*ethpb.AttesterSlashing, 0),
		SlashedValidators: make([]primitives.ValidatorIndex, 0),
		NumDropped:        numDropped,
		Deferred:          validInFuture,
	}
	if len(valid) == 0 {
		return result, nil
	}

	history, err := s.cfg.Database.IndexedAttestations(
		ctx, s.windowStart(currentEpoch), params.BeaconConfig().FarFutureEpoch,
	)
	if err != nil {
		return nil, errors.Wrap(err, "could not load attestation history")
	}

	// Later positions are received later.
	positions := make(map[[32]byte]int, len(valid))
	for i, att := range valid {
		positions[attestationRoot(att)] = i + 1
	}
	// Every attestation enters the window once, stored or received.
	window := make([]*ethpb.IndexedAttestation, 0, len(history)+len(valid))
	for _, att := range history {
		if positions[attestationRoot(att)] == 0 {
			window = append(window, att)
		}
	}
	inWindow := make(map[[32]byte]bool, len(valid))
	for _, att := range valid {
		root := attestationRoot(att)
		if !inWindow[root] {
			inWindow[root] = true
			window = append(window, att)
		}
	}

	start := time.Now()
	found := oracle.DetectSlashings(window)
	detectionSeconds.Observe(time.Since(start).Seconds())

	type slashingEvent struct {
		kind           slashings.SlashingKind
		incoming, prev *ethpb.IndexedAttestation
		slashed        []primitives.ValidatorIndex
	}
	events := make([]slashingEvent, 0)
	culprits := make([]uint64, 0)
	for _, slashing := range found {
		pos1 := positions[attestationRoot(slashing.Attestation_1)]
		pos2 := positions[attestationRoot(slashing.Attestation_2)]
		if pos1 == 0 && pos2 == 0 {
			// Both attestations are history, this pair was handled in an earlier round.
			continue
		}
		known, err := s.cfg.Database.HasAttesterSlashing(ctx, slashing)
		if err != nil {
			return nil, errors.Wrap(err, "could not check for existing slashing")
		}
		if known {
			continue
		}
		slashed, err := oracle.SlashedValidators([]*ethpb.AttesterSlashing{slashing})
		if err != nil {
			if errors.Is(err, oracle.ErrInvalidSlashing) {
				invalidSlashingsTotal.Inc()
				log.WithError(err).Error("Detected attester slashing failed validation")
				continue
			}
			return nil, err
		}
		// Without a common validator nobody is slashable.
		if len(slashed) == 0 {
			continue
		}
		incoming, prev := slashing.Attestation_1, slashing.Attestation_2
		if pos2 > pos1 {
			incoming, prev = prev, incoming
		}
		events = append(events, slashingEvent{
			kind: slashings.Classify(incoming, prev), incoming: incoming, prev: prev, slashed: slashed,
		})
		result.Slashings = append(result.Slashings, slashing)
		for _, idx := range slashed {
			culprits = append(culprits, uint64(idx))
		}
	}

	// Nothing is reported unless the whole round is stored, so a failed round
	// can be retried without losing slashings.
	if err := s.cfg.Database.SaveAttestationsWithSlashings(ctx, valid, result.Slashings); err != nil {
		return nil, errors.Wrap(err, "could not save detection round to DB")
	}
	for _, e := range events {
		logSlashingEvent(e.kind, e.incoming, e.prev, e.slashed)
	}
	for _, idx := range slice.Set(culprits) {
		result.SlashedValidators = append(result.SlashedValidators, primitives.ValidatorIndex(idx))
	}
	s.reportSlashedValidators(result.SlashedValidators)

	result.NumProcessed = len(valid)
	processedAttestationsTotal.Add(float64(len(valid)))
	attesterSlashingsTotal.Add(float64(len(result.Slashings)))
	return result, nil
}

// Logs each slashable validator once for as long as it stays in the reported cache.
func (s *Service) reportSlashedValidators(indices []primitives.ValidatorIndex) {
	for _, idx := range indices {
		if seen, _ := s.reported.ContainsOrAdd(idx, struct{}{}); seen {
			continue
		}
		slashedValidatorsTotal.Inc()
		log.WithField("validatorIndex", idx).Warn("Validator is slashable")
	}
}

func attestationRoot(att *ethpb.IndexedAttestation) [32]byte {
	id, err := attestation.NewId(att, attestation.Full)
	if err != nil {
		return [32]byte{}
	}
	return id.Root()
}
