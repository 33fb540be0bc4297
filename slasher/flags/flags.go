// Package flags defines the command specific flags of the slashing oracle.
package flags

import (
	"time"

	"github.com/urfave/cli/v2"
)

var (
	// AttestationsFileFlag points to a YAML or JSON list of indexed attestations.
	AttestationsFileFlag = &cli.StringFlag{
		Name:  "attestations",
		Usage: "Path to a YAML or JSON file with a list of indexed attestations",
	}
	// SlashingsFileFlag points to a YAML or JSON list of attester slashings to check.
	SlashingsFileFlag = &cli.StringFlag{
		Name:  "slashings",
		Usage: "Path to a YAML or JSON file with attester slashings reported by a detector",
	}
	// OutputFileFlag is where the command writes its JSON report.
	OutputFileFlag = &cli.StringFlag{
		Name:  "output",
		Usage: "Write the report as JSON to this file instead of logging it",
	}
	// HistoryLengthFlag bounds the number of epochs the slasher keeps.
	HistoryLengthFlag = &cli.Uint64Flag{
		Name:  "history-length",
		Usage: "Number of epochs of attestation history kept for detection. Defaults to the chain config value",
	}
	// GenesisTimeFlag is the unix time of the chain genesis, used to drive the epoch ticker.
	GenesisTimeFlag = &cli.Uint64Flag{
		Name:  "genesis-time",
		Usage: "Unix timestamp of the chain genesis",
	}
	// BeaconNodeFlag is the beacon API endpoint.
	BeaconNodeFlag = &cli.StringFlag{
		Name:  "beacon-node",
		Usage: "Beacon node REST API endpoint",
		Value: "http://localhost:3500",
	}
	// BlockIDFlag selects the block whose attester slashings are verified.
	BlockIDFlag = &cli.StringFlag{
		Name:  "block",
		Usage: "Block identifier: head, finalized, a slot or a 0x prefixed root",
		Value: "head",
	}
	// TimeoutFlag bounds a request to the beacon node.
	TimeoutFlag = &cli.DurationFlag{
		Name:  "timeout",
		Usage: "Timeout for requests to the beacon node",
		Value: 30 * time.Second,
	}
	// NumValidatorsFlag for the simulator.
	NumValidatorsFlag = &cli.Uint64Flag{
		Name:  "num-validators",
		Usage: "Number of validators in the simulation",
		Value: 128,
	}
	// NumEpochsFlag for the simulator.
	NumEpochsFlag = &cli.Uint64Flag{
		Name:  "num-epochs",
		Usage: "Number of epochs to simulate",
		Value: 4,
	}
	// AggregationPercentFlag for the simulator.
	AggregationPercentFlag = &cli.Float64Flag{
		Name:  "aggregation-percent",
		Usage: "Fraction of the validator set attesting in one committee",
		Value: 0.25,
	}
	// SlashingProbabilityFlag for the simulator.
	SlashingProbabilityFlag = &cli.Float64Flag{
		Name:  "slashing-probability",
		Usage: "Probability that a committee also casts a conflicting vote",
		Value: 0.2,
	}
	// SeedFlag for the simulator.
	SeedFlag = &cli.IntFlag{
		Name:  "seed",
		Usage: "Random seed of the simulation",
		Value: 1,
	}
)
