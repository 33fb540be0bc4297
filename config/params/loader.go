package params

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// LoadChainConfigFile load, unmarshal and apply a beacon chain config file.
// Keys the slasher does not use are ignored.
func LoadChainConfigFile(chainConfigFileName string) error {
	yamlFile, err := os.ReadFile(chainConfigFileName) // #nosec G304
	if err != nil {
		return errors.Wrap(err, "failed to read chain config file")
	}
	conf, err := UnmarshalConfig(yamlFile)
	if err != nil {
		return err
	}
	log.Debugf("Config file values: %+v", conf)
	OverrideBeaconConfig(conf)
	return nil
}

// UnmarshalConfig builds a config from yaml bytes, starting from the preset the
// file declares (mainnet unless it says otherwise).
func UnmarshalConfig(yamlFile []byte) (*BeaconChainConfig, error) {
	// Default to using mainnet.
	conf := MainnetConfig()
	hasConfigName := false
	for _, line := range strings.Split(string(yamlFile), "\n") {
		if strings.HasPrefix(line, "CONFIG_NAME") {
			hasConfigName = true
		}
		if strings.HasPrefix(line, "PRESET_BASE: 'minimal'") ||
			strings.HasPrefix(line, `PRESET_BASE: "minimal"`) ||
			strings.HasPrefix(line, "PRESET_BASE: minimal") ||
			strings.HasPrefix(line, "# Minimal preset") {
			conf = MinimalSpecConfig()
		}
	}
	if err := yaml.Unmarshal(yamlFile, conf); err != nil {
		return nil, errors.Wrap(err, "failed to parse chain config yaml file")
	}
	if !hasConfigName {
		conf.ConfigName = "devnet"
	}
	if conf.SlotsPerEpoch == 0 {
		return nil, errors.New("SLOTS_PER_EPOCH must be greater than zero")
	}
	return conf, nil
}
