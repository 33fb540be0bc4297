package simulator

import (
	"math"
	"math/rand"

	"github.com/prysmaticlabs/slashing-oracle/config/params"
	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
	"github.com/prysmaticlabs/slashing-oracle/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/slashing-oracle/time/slots"
	"github.com/sirupsen/logrus"
)

// Offset applied to the target root of conflicting votes so they never
// collide with an honest root.
const slashableRootOffset = 1 << 32

// GenerateAttestations builds one honest attestation per committee per epoch for
// epochs 1 to NumEpochs, each voting from the previous epoch to the current one.
// With probability AttesterSlashingProbab a committee also signs a conflicting
// vote, which is returned paired with the honest vote it conflicts with.
// The output only depends on the parameters.
func GenerateAttestations(
	simParams *Parameters,
) ([]*ethpb.IndexedAttestation, []*ethpb.AttesterSlashing, error) {
	if err := simParams.validate(); err != nil {
		return nil, nil, err
	}
	gen := rand.New(rand.NewSource(simParams.Seed))
	committees := committeesFor(simParams)

	atts := make([]*ethpb.IndexedAttestation, 0)
	slashings := make([]*ethpb.AttesterSlashing, 0)
	for epoch := primitives.Epoch(1); epoch <= simParams.NumEpochs; epoch++ {
		startSlot, err := slots.EpochStart(epoch)
		if err != nil {
			return nil, nil, err
		}
		for c, committee := range committees {
			slot := startSlot + primitives.Slot(uint64(c)%uint64(params.BeaconConfig().SlotsPerEpoch))
			honest := newAttestation(committee, slot, primitives.CommitteeIndex(c), epoch-1, epoch, uint64(epoch))
			atts = append(atts, honest)
			if gen.Float64() >= simParams.AttesterSlashingProbab {
				continue
			}
			var slashable *ethpb.IndexedAttestation
			if epoch >= 2 && gen.Intn(2) == 0 {
				// Surrounds the honest vote.
				slashable = newAttestation(committee, slot, primitives.CommitteeIndex(c), epoch-2, epoch+1, slashableRootOffset+uint64(epoch))
				log.WithFields(logrus.Fields{
					"committee":   c,
					"sourceEpoch": epoch - 2,
					"targetEpoch": epoch + 1,
				}).Debug("Surround vote made")
			} else {
				slashable = newAttestation(committee, slot, primitives.CommitteeIndex(c), epoch-1, epoch, slashableRootOffset+uint64(epoch))
				log.WithFields(logrus.Fields{
					"committee":   c,
					"targetEpoch": epoch,
				}).Debug("Double vote made")
			}
			atts = append(atts, slashable)
			slashings = append(slashings, &ethpb.AttesterSlashing{
				Attestation_1: slashable.Copy(),
				Attestation_2: honest.Copy(),
			})
		}
	}
	return atts, slashings, nil
}

// committeesFor splits the validator set into consecutive, disjoint committees.
func committeesFor(simParams *Parameters) [][]uint64 {
	size := uint64(math.Ceil(float64(simParams.NumValidators) * simParams.AggregationPercent))
	if size == 0 {
		size = 1
	}
	if maxSize := params.BeaconConfig().MaxValidatorsPerCommittee; size > maxSize {
		size = maxSize
	}
	committees := make([][]uint64, 0)
	for start := uint64(0); start < simParams.NumValidators; start += size {
		end := start + size
		if end > simParams.NumValidators {
			end = simParams.NumValidators
		}
		committee := make([]uint64, 0, end-start)
		for i := start; i < end; i++ {
			committee = append(committee, i)
		}
		committees = append(committees, committee)
	}
	return committees
}

func newAttestation(
	committee []uint64,
	slot primitives.Slot,
	committeeIndex primitives.CommitteeIndex,
	source, target primitives.Epoch,
	targetRoot uint64,
) *ethpb.IndexedAttestation {
	var root [32]byte
	copy(root[24:], bytesutil.Uint64ToBytesBigEndian(targetRoot))
	indices := make([]uint64, len(committee))
	copy(indices, committee)
	return &ethpb.IndexedAttestation{
		AttestingIndices: indices,
		Data: &ethpb.AttestationData{
			Slot:           slot,
			CommitteeIndex: committeeIndex,
			Source:         &ethpb.Checkpoint{Epoch: source},
			Target:         &ethpb.Checkpoint{Epoch: target, Root: root},
		},
	}
}
