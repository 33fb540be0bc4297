package main

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/slashing-oracle/beacon-chain/slasher"
	"github.com/prysmaticlabs/slashing-oracle/cmd"
	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
	"github.com/prysmaticlabs/slashing-oracle/io/file"
	"github.com/prysmaticlabs/slashing-oracle/slasher/db"
	"github.com/prysmaticlabs/slashing-oracle/slasher/flags"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var replayCommand = &cli.Command{
	Name:  "replay",
	Usage: "imports attestations into the slasher database and runs one detection round over them",
	Flags: []cli.Flag{
		flags.AttestationsFileFlag,
		flags.HistoryLengthFlag,
		flags.OutputFileFlag,
	},
	Action: replayAction,
}

func replayAction(cliCtx *cli.Context) error {
	attsPath := cliCtx.String(flags.AttestationsFileFlag.Name)
	if attsPath == "" {
		return errors.New("--attestations is required")
	}
	atts, err := file.LoadAttestations(attsPath)
	if err != nil {
		return err
	}
	dataDir, err := file.ExpandPath(cliCtx.String(cmd.DataDirFlag.Name))
	if err != nil {
		return errors.Wrap(err, "could not expand data directory")
	}
	ctx := cliCtx.Context
	d, err := db.NewDB(ctx, dataDir, nil)
	if err != nil {
		return errors.Wrap(err, "could not open slasher database")
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.WithError(err).Error("Failed to close database")
		}
	}()

	svc, err := slasher.New(ctx, &slasher.ServiceConfig{
		Database:      d,
		HistoryLength: primitives.Epoch(cliCtx.Uint64(flags.HistoryLengthFlag.Name)),
	})
	if err != nil {
		return err
	}
	res, err := svc.DetectBatch(ctx, atts)
	if err != nil {
		return errors.Wrap(err, "could not detect slashings")
	}
	log.WithFields(logrus.Fields{
		"processed":         res.NumProcessed,
		"dropped":           res.NumDropped,
		"newSlashings":      len(res.Slashings),
		"slashedValidators": res.SlashedValidators,
	}).Info("Replayed attestations")
	if out := cliCtx.String(flags.OutputFileFlag.Name); out != "" {
		return file.WriteJSON(out, res)
	}
	return nil
}
