// Package slots includes ticker and timer-related functions for eth2.
package slots

import (
	"time"

	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
)

// Ticker defines the behavior of a slot ticker.
type Ticker interface {
	C() <-chan primitives.Slot
	Done()
}

// PeriodTicker emits a monotonically increasing counter at fixed intervals
// counted from genesis. It is used for both slots and epochs.
type PeriodTicker[T ~uint64] struct {
	c    chan T
	done chan struct{}
}

// SlotTicker is a special ticker for the beacon chain block.
// The channel emits over the slot interval, and ensures that
// the ticks are in line with the genesis time. This means that
// the duration between the ticks and the genesis time are always a
// multiple of the slot duration.
// In addition, the channel returns the new slot number.
type SlotTicker = PeriodTicker[primitives.Slot]

// EpochTicker emits the new epoch number at every epoch boundary.
type EpochTicker = PeriodTicker[primitives.Epoch]

// C returns the ticker channel. Call Cancel afterwards to ensure
// that the goroutine exits cleanly.
func (s *PeriodTicker[T]) C() <-chan T {
	return s.c
}

// Done should be called to clean up the ticker.
func (s *PeriodTicker[T]) Done() {
	go func() {
		s.done <- struct{}{}
	}()
}

// NewSlotTicker starts and returns a new SlotTicker instance.
func NewSlotTicker(genesisTime time.Time, secondsPerSlot uint64) *SlotTicker {
	return newPeriodTicker[primitives.Slot](genesisTime, secondsPerSlot)
}

// NewEpochTicker starts and returns a new EpochTicker instance.
func NewEpochTicker(genesisTime time.Time, secondsPerEpoch uint64) *EpochTicker {
	return newPeriodTicker[primitives.Epoch](genesisTime, secondsPerEpoch)
}

func newPeriodTicker[T ~uint64](genesisTime time.Time, secondsPerPeriod uint64) *PeriodTicker[T] {
	if genesisTime.IsZero() {
		panic("zero genesis time")
	}
	if secondsPerPeriod == 0 {
		panic("zero ticker period")
	}
	ticker := &PeriodTicker[T]{
		c:    make(chan T),
		done: make(chan struct{}),
	}
	ticker.start(genesisTime, secondsPerPeriod, time.Since, time.Until, time.After)
	return ticker
}

func (s *PeriodTicker[T]) start(
	genesisTime time.Time,
	secondsPerPeriod uint64,
	since, until func(time.Time) time.Duration,
	after func(time.Duration) <-chan time.Time) {

	d := time.Duration(secondsPerPeriod) * time.Second

	go func() {
		sinceGenesis := since(genesisTime)

		var nextTickTime time.Time
		var count T
		if sinceGenesis < d {
			// Handle when the current time is before the genesis time.
			nextTickTime = genesisTime
			count = 0
		} else {
			nextTick := sinceGenesis.Truncate(d) + d
			nextTickTime = genesisTime.Add(nextTick)
			count = T(nextTick / d)
		}

		for {
			waitTime := until(nextTickTime)
			select {
			case <-after(waitTime):
				s.c <- count
				count++
				nextTickTime = nextTickTime.Add(d)
			case <-s.done:
				return
			}
		}
	}()
}
