package main

import (
	"github.com/prysmaticlabs/slashing-oracle/beacon-chain/slasher/simulator"
	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
	"github.com/prysmaticlabs/slashing-oracle/io/file"
	"github.com/prysmaticlabs/slashing-oracle/slasher/flags"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var simulateCommand = &cli.Command{
	Name:  "simulate",
	Usage: "generates attestations with injected equivocations and checks that all of them are found",
	Flags: []cli.Flag{
		flags.NumValidatorsFlag,
		flags.NumEpochsFlag,
		flags.AggregationPercentFlag,
		flags.SlashingProbabilityFlag,
		flags.SeedFlag,
		flags.OutputFileFlag,
	},
	Action: simulateAction,
}

func simulationParams(cliCtx *cli.Context) *simulator.Parameters {
	return &simulator.Parameters{
		NumValidators:          cliCtx.Uint64(flags.NumValidatorsFlag.Name),
		NumEpochs:              primitives.Epoch(cliCtx.Uint64(flags.NumEpochsFlag.Name)),
		AggregationPercent:     cliCtx.Float64(flags.AggregationPercentFlag.Name),
		AttesterSlashingProbab: cliCtx.Float64(flags.SlashingProbabilityFlag.Name),
		Seed:                   int64(cliCtx.Int(flags.SeedFlag.Name)),
	}
}

func simulateAction(cliCtx *cli.Context) error {
	res, err := simulator.Simulate(cliCtx.Context, simulationParams(cliCtx))
	if res != nil {
		if out := cliCtx.String(flags.OutputFileFlag.Name); out != "" {
			if writeErr := file.WriteJSON(out, res); writeErr != nil {
				log.WithError(writeErr).Error("Could not write simulation result")
			}
		}
	}
	if err != nil {
		if res != nil {
			log.WithFields(logrus.Fields{
				"missed":     res.Missed,
				"unexpected": res.Unexpected,
			}).Error("Simulation failed")
		}
		return err
	}
	return nil
}
