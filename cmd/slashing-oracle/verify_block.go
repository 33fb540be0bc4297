package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/slashing-oracle/api/client/beacon"
	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
	"github.com/prysmaticlabs/slashing-oracle/io/file"
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/slashing-oracle/slasher/flags"
	"github.com/prysmaticlabs/slashing-oracle/slasher/oracle"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var verifyBlockCommand = &cli.Command{
	Name:  "verify-block",
	Usage: "validates the attester slashings included in a beacon block",
	Flags: []cli.Flag{
		flags.BeaconNodeFlag,
		flags.BlockIDFlag,
		flags.TimeoutFlag,
		flags.OutputFileFlag,
	},
	Action: verifyBlockAction,
}

type slashingsFetcher interface {
	AttesterSlashings(ctx context.Context, blockID string) ([]*ethpb.AttesterSlashing, error)
}

type blockReport struct {
	Block             string                      `json:"block"`
	NumSlashings      int                         `json:"num_attester_slashings"`
	SlashedValidators []primitives.ValidatorIndex `json:"slashed_validators"`
}

func verifyBlockAction(cliCtx *cli.Context) error {
	client, err := beacon.NewClient(
		cliCtx.Context,
		cliCtx.String(flags.BeaconNodeFlag.Name),
		cliCtx.Duration(flags.TimeoutFlag.Name),
	)
	if err != nil {
		return err
	}
	report, err := verifyBlock(cliCtx.Context, client, cliCtx.String(flags.BlockIDFlag.Name))
	if err != nil {
		return err
	}
	if out := cliCtx.String(flags.OutputFileFlag.Name); out != "" {
		return file.WriteJSON(out, report)
	}
	return nil
}

// verifyBlock fetches the attester slashings of a block and fails if any of
// them is not a double or surround vote.
func verifyBlock(ctx context.Context, fetcher slashingsFetcher, blockID string) (*blockReport, error) {
	slashings, err := fetcher.AttesterSlashings(ctx, blockID)
	if err != nil {
		return nil, err
	}
	slashed, err := oracle.SlashedValidators(slashings)
	if err != nil {
		return nil, errors.Wrapf(err, "block %s includes an invalid attester slashing", blockID)
	}
	log.WithFields(logrus.Fields{
		"block":             blockID,
		"attesterSlashings": len(slashings),
		"slashedValidators": slashed,
	}).Info("Verified block attester slashings")
	return &blockReport{
		Block:             blockID,
		NumSlashings:      len(slashings),
		SlashedValidators: slashed,
	}, nil
}
