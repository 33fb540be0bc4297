// Package simulator generates attestation histories with known equivocations
// and checks that the slashing oracle reports every one of them.
package simulator

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
	"github.com/prysmaticlabs/slashing-oracle/container/slice"
	"github.com/prysmaticlabs/slashing-oracle/slasher/oracle"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// ErrMissedSlashings is returned when the oracle does not report a validator
// the simulation made slashable.
var ErrMissedSlashings = errors.New("simulation missed slashable validators")

// ErrUnexpectedSlashings is returned when the oracle reports a validator the
// simulation kept honest.
var ErrUnexpectedSlashings = errors.New("simulation reported honest validators")

// Result of a simulation run.
type Result struct {
	NumAttestations    int                         `json:"num_attestations"`
	NumInjected        int                         `json:"num_injected"`
	NumDetected        int                         `json:"num_detected"`
	ExpectedValidators []primitives.ValidatorIndex `json:"expected_validators"`
	SlashedValidators  []primitives.ValidatorIndex `json:"slashed_validators"`
	Missed             []primitives.ValidatorIndex `json:"missed"`
	Unexpected         []primitives.ValidatorIndex `json:"unexpected"`
	Elapsed            time.Duration               `json:"elapsed"`
}

// Simulate generates attestations for the given parameters, runs the slashing
// oracle over them and checks the validators it reports against the injected
// equivocations.
func Simulate(ctx context.Context, simParams *Parameters) (*Result, error) {
	_, span := trace.StartSpan(ctx, "Simulator.Simulate")
	defer span.End()

	atts, injected, err := GenerateAttestations(simParams)
	if err != nil {
		return nil, errors.Wrap(err, "could not generate attestations")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	expected, err := oracle.SlashedValidators(injected)
	if err != nil {
		return nil, errors.Wrap(err, "generated an invalid slashing")
	}
	report, err := oracle.Compare(injected, atts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	found := oracle.DetectSlashings(atts)
	slashed, err := oracle.SlashedValidators(found)
	if err != nil {
		return nil, errors.Wrap(err, "oracle emitted an invalid slashing")
	}
	res := &Result{
		NumAttestations:    len(atts),
		NumInjected:        len(injected),
		NumDetected:        len(found),
		ExpectedValidators: expected,
		SlashedValidators:  slashed,
		Missed:             slice.Not(expected, slashed),
		Unexpected:         slice.Not(slashed, expected),
		Elapsed:            time.Since(start),
	}
	log.WithFields(logrus.Fields{
		"attestations":       res.NumAttestations,
		"injectedSlashings":  res.NumInjected,
		"detectedSlashings":  res.NumDetected,
		"slashedValidators":  len(res.SlashedValidators),
		"expectedValidators": len(res.ExpectedValidators),
		"elapsed":            res.Elapsed,
	}).Info("Simulation finished")

	if len(res.Missed) > 0 {
		return res, errors.Wrapf(ErrMissedSlashings, "%d validators", len(res.Missed))
	}
	if len(res.Unexpected) > 0 || !report.Consistent() {
		return res, errors.Wrapf(ErrUnexpectedSlashings, "%d validators", len(res.Unexpected))
	}
	return res, nil
}
