package main

import (
	"github.com/prysmaticlabs/slashing-oracle/beacon-chain/slasher"
	"github.com/prysmaticlabs/slashing-oracle/io/file"
	"github.com/prysmaticlabs/slashing-oracle/slasher/flags"
	"github.com/prysmaticlabs/slashing-oracle/slasher/node"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var runCommand = &cli.Command{
	Name:  "run",
	Usage: "runs the slasher service, detecting slashings at every epoch boundary",
	Flags: []cli.Flag{
		flags.GenesisTimeFlag,
		flags.HistoryLengthFlag,
		flags.AttestationsFileFlag,
	},
	Action: runAction,
}

func runAction(cliCtx *cli.Context) error {
	slasherNode, err := node.NewSlasherNode(cliCtx)
	if err != nil {
		return err
	}
	if attsPath := cliCtx.String(flags.AttestationsFileFlag.Name); attsPath != "" {
		if _, err := enqueueAttestationsFile(slasherNode.Slasher(), attsPath); err != nil {
			slasherNode.Close()
			return err
		}
	}
	slasherNode.Start()
	return nil
}

// Queues every attestation of the file before the service starts, so none of
// them competes with the receive buffer.
func enqueueAttestationsFile(svc *slasher.Service, path string) (int, error) {
	atts, err := file.LoadAttestations(path)
	if err != nil {
		return 0, err
	}
	queued := svc.EnqueueAttestations(atts)
	log.WithFields(logrus.Fields{
		"attestations": len(atts),
		"queued":       queued,
	}).Info("Queued attestations for the slasher")
	return queued, nil
}
