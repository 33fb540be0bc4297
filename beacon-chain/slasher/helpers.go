package slasher

import (
	"fmt"

	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1/attestation"
	"github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1/slashings"
	"github.com/sirupsen/logrus"
)

// Validates the attestation data integrity, ensuring we have no nil values for
// source, epoch, and that the source epoch of the attestation must be less than
// the target epoch, which is a precondition for performing slashing detection.
// Attesting indices must be non-empty, sorted and unique.
// This function also checks the attestation source epoch is within the history size
// we keep track of for slashing detection.
// This function returns a list of valid attestations, a list of attestations that are
// valid in the future, and the number of attestations dropped.
func (s *Service) validateAttestationIntegrity(
	atts []*ethpb.IndexedAttestation, currentEpoch primitives.Epoch,
) (valid, validInFuture []*ethpb.IndexedAttestation, numDropped int) {
	valid = make([]*ethpb.IndexedAttestation, 0, len(atts))
	validInFuture = make([]*ethpb.IndexedAttestation, 0)

	for _, att := range atts {
		// If an attestation is malformed, we drop it.
		if att == nil ||
			att.Data == nil ||
			att.Data.Source == nil ||
			att.Data.Target == nil {
			numDropped++
			continue
		}

		// All valid attestations cannot have source epoch > target epoch.
		sourceEpoch := att.Data.Source.Epoch
		targetEpoch := att.Data.Target.Epoch
		if sourceEpoch > targetEpoch {
			numDropped++
			continue
		}

		if err := attestation.IsValidAttestationIndices(att); err != nil {
			log.WithError(err).Debug("Dropping attestation with invalid indices")
			numDropped++
			continue
		}

		// If an attestation's source is epoch is older than the max history length
		// we keep track of for slashing detection, we drop it.
		if uint64(sourceEpoch)+uint64(s.cfg.HistoryLength) <= uint64(currentEpoch) {
			numDropped++
			continue
		}

		// If an attestations's target epoch is in the future, we defer processing for later.
		if targetEpoch > currentEpoch {
			validInFuture = append(validInFuture, att)
		} else {
			valid = append(valid, att)
		}
	}
	return
}

// windowStart is the oldest target epoch still inside the history window.
func (s *Service) windowStart(currentEpoch primitives.Epoch) primitives.Epoch {
	return (currentEpoch + 1).Sub(uint64(s.cfg.HistoryLength))
}

// Logs a slashing event with its particular details of the slashing
// itself as fields to our logger. The kind is seen from incoming, the
// attestation received last.
func logSlashingEvent(
	kind slashings.SlashingKind,
	incoming, prev *ethpb.IndexedAttestation,
	culprits []primitives.ValidatorIndex,
) {
	switch kind {
	case slashings.DoubleVote:
		log.WithFields(logrus.Fields{
			"validatorIndices": culprits,
			"targetEpoch":      incoming.Data.Target.Epoch,
			"signingRoot":      dataRoot(incoming),
			"prevSigningRoot":  dataRoot(prev),
		}).Info("Attester double vote slashing")
	case slashings.SurroundingVote:
		log.WithFields(logrus.Fields{
			"validatorIndices": culprits,
			"prevSourceEpoch":  prev.Data.Source.Epoch,
			"prevTargetEpoch":  prev.Data.Target.Epoch,
			"sourceEpoch":      incoming.Data.Source.Epoch,
			"targetEpoch":      incoming.Data.Target.Epoch,
		}).Info("Attester surrounding vote slashing")
	case slashings.SurroundedVote:
		log.WithFields(logrus.Fields{
			"validatorIndices": culprits,
			"prevSourceEpoch":  prev.Data.Source.Epoch,
			"prevTargetEpoch":  prev.Data.Target.Epoch,
			"sourceEpoch":      incoming.Data.Source.Epoch,
			"targetEpoch":      incoming.Data.Target.Epoch,
		}).Info("Attester surrounded vote slashing")
	default:
		return
	}
}

func dataRoot(att *ethpb.IndexedAttestation) string {
	id, err := attestation.NewId(att, attestation.Data)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%#x", id.Root())
}
