package cmd

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/slashing-oracle/config/params"
	"github.com/urfave/cli/v2"
)

// ConfigureBeaconChain selects the chain constants from the minimal config and
// chain config file flags. A chain config file takes precedence.
func ConfigureBeaconChain(cliCtx *cli.Context) error {
	if cliCtx.Bool(MinimalConfigFlag.Name) {
		log.Warn("Using minimal config")
		params.OverrideBeaconConfig(params.MinimalSpecConfig())
	}
	if cliCtx.IsSet(ChainConfigFileFlag.Name) {
		chainConfigFileName := cliCtx.String(ChainConfigFileFlag.Name)
		if err := params.LoadChainConfigFile(chainConfigFileName); err != nil {
			return errors.Wrapf(err, "could not load chain config file %s", chainConfigFileName)
		}
	}
	return nil
}
