// Package main defines the slashing oracle command line. It checks attester
// slashings found by a detector against an exhaustive scan of the same
// attestations, and can run the slasher service over an attestation history.
package main

import (
	"os"
	runtimeDebug "runtime/debug"

	"github.com/prysmaticlabs/slashing-oracle/cmd"
	"github.com/urfave/cli/v2"
	_ "go.uber.org/automaxprocs"
)

var appFlags = []cli.Flag{
	cmd.VerbosityFlag,
	cmd.DataDirFlag,
	cmd.LogFormat,
	cmd.LogFileName,
	cmd.ConfigFileFlag,
	cmd.ChainConfigFileFlag,
	cmd.MinimalConfigFlag,
	cmd.DisableMonitoringFlag,
	cmd.MonitoringHostFlag,
	cmd.MonitoringPortFlag,
}

func init() {
	appFlags = cmd.WrapFlags(appFlags)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "slashing-oracle"
	app.Usage = "reference checker for attester slashings"
	app.Flags = appFlags
	app.Commands = []*cli.Command{
		checkCommand,
		simulateCommand,
		verifyBlockCommand,
		replayCommand,
		runCommand,
	}
	app.Before = func(cliCtx *cli.Context) error {
		// Load any flags from file, if specified.
		if err := cmd.LoadFlagsFromConfig(cliCtx, app.Flags); err != nil {
			return err
		}
		if err := cmd.ConfigureLogging(cliCtx); err != nil {
			return err
		}
		return cmd.ConfigureBeaconChain(cliCtx)
	}
	return app
}

func main() {
	app := newApp()
	defer func() {
		if x := recover(); x != nil {
			log.Errorf("Runtime panic: %v\n%v", x, string(runtimeDebug.Stack()))
			panic(x)
		}
	}()
	if err := app.Run(os.Args); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
