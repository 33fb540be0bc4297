package simulator

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
)

// Parameters for a slasher simulator.
type Parameters struct {
	NumValidators uint64
	NumEpochs     primitives.Epoch
	// AggregationPercent is the share of the validator set covered by one aggregate.
	AggregationPercent float64
	// AttesterSlashingProbab is the chance an aggregate also signs a conflicting vote.
	AttesterSlashingProbab float64
	Seed                   int64
}

// DefaultParams for launching a slasher simulator.
func DefaultParams() *Parameters {
	return &Parameters{
		NumValidators:          128,
		NumEpochs:              4,
		AggregationPercent:     0.25,
		AttesterSlashingProbab: 0.2,
		Seed:                   1,
	}
}

func (p *Parameters) validate() error {
	switch {
	case p == nil:
		return errors.New("nil simulator parameters")
	case p.NumValidators == 0:
		return errors.New("number of validators must be positive")
	case p.NumEpochs == 0:
		return errors.New("number of epochs must be positive")
	case p.AggregationPercent <= 0 || p.AggregationPercent > 1:
		return errors.Errorf("aggregation percent %f not in (0, 1]", p.AggregationPercent)
	case p.AttesterSlashingProbab < 0 || p.AttesterSlashingProbab > 1:
		return errors.Errorf("slashing probability %f not in [0, 1]", p.AttesterSlashingProbab)
	}
	return nil
}
