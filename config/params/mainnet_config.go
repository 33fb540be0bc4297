package params

import (
	"math"

	types "github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
)

// MainnetName is the name of the mainnet config.
const MainnetName = "mainnet"

// MinimalName is the name of the minimal preset config.
const MinimalName = "minimal"

// MainnetConfig returns the configuration to be used in the main network.
func MainnetConfig() *BeaconChainConfig {
	return mainnetBeaconConfig.Copy()
}

var mainnetBeaconConfig = &BeaconChainConfig{
	PresetBase:                MainnetName,
	ConfigName:                MainnetName,
	SecondsPerSlot:            12,
	SlotsPerEpoch:             32,
	MaxValidatorsPerCommittee: 2048,
	MaxCommitteesPerSlot:      64,
	MinGenesisTime:            1606824000, // Dec 1, 2020, 12pm UTC.
	GenesisDelay:              604800,     // 1 week.
	FarFutureEpoch:            math.MaxUint64,
	SlasherHistoryLength:      4096,
}

// MinimalSpecConfig retrieves the minimal config used in spec tests.
func MinimalSpecConfig() *BeaconChainConfig {
	minimalConfig := mainnetBeaconConfig.Copy()
	minimalConfig.PresetBase = MinimalName
	minimalConfig.ConfigName = MinimalName
	minimalConfig.SecondsPerSlot = 6
	minimalConfig.SlotsPerEpoch = 8
	minimalConfig.MaxCommitteesPerSlot = 4
	minimalConfig.GenesisDelay = 300
	minimalConfig.SlasherHistoryLength = types.Epoch(64)
	return minimalConfig
}
