package slots

import (
	"fmt"
	"math"
	"time"

	"github.com/prysmaticlabs/slashing-oracle/config/params"
	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
)

// ToEpoch returns the epoch number of the input slot.
//
// Spec pseudocode definition:
//
//	def compute_epoch_at_slot(slot: Slot) -> Epoch:
//	  """
//	  Return the epoch number at ``slot``.
//	  """
//	  return Epoch(slot // SLOTS_PER_EPOCH)
func ToEpoch(slot primitives.Slot) primitives.Epoch {
	return primitives.Epoch(slot.DivSlot(params.BeaconConfig().SlotsPerEpoch))
}

// EpochStart returns the first slot number of the
// current epoch.
//
// Spec pseudocode definition:
//
//	def compute_start_slot_at_epoch(epoch: Epoch) -> Slot:
//	  """
//	  Return the start slot of ``epoch``.
//	  """
//	  return Slot(epoch * SLOTS_PER_EPOCH)
func EpochStart(epoch primitives.Epoch) (primitives.Slot, error) {
	slotsPerEpoch := uint64(params.BeaconConfig().SlotsPerEpoch)
	if slotsPerEpoch != 0 && uint64(epoch) > math.MaxUint64/slotsPerEpoch {
		return 0, fmt.Errorf("start slot calculation overflows: epoch %d", epoch)
	}
	return primitives.Slot(uint64(epoch) * slotsPerEpoch), nil
}

// SinceGenesis returns the number of slots since
// the start of genesis. Times before genesis count as slot 0.
func SinceGenesis(genesis time.Time) primitives.Slot {
	return sinceGenesisAt(genesis, time.Now())
}

func sinceGenesisAt(genesis, now time.Time) primitives.Slot {
	if now.Before(genesis) {
		return 0
	}
	secondsPerSlot := params.BeaconConfig().SecondsPerSlot
	if secondsPerSlot == 0 {
		return 0
	}
	return primitives.Slot(uint64(now.Sub(genesis).Seconds()) / secondsPerSlot)
}

// CurrentEpoch returns the epoch of the current wall clock slot.
func CurrentEpoch(genesis time.Time) primitives.Epoch {
	return ToEpoch(SinceGenesis(genesis))
}
