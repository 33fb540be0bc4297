// Package params defines important constants that are essential to the slasher
// and the attestation model it consumes.
package params

import (
	fieldparams "github.com/prysmaticlabs/slashing-oracle/config/fieldparams"
	types "github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
)

// BeaconChainConfig contains the chain constants the slashing checker relies on.
type BeaconChainConfig struct {
	PresetBase                string      `yaml:"PRESET_BASE" spec:"true"`
	ConfigName                string      `yaml:"CONFIG_NAME" spec:"true"`
	SecondsPerSlot            uint64      `yaml:"SECONDS_PER_SLOT" spec:"true"`
	SlotsPerEpoch             types.Slot  `yaml:"SLOTS_PER_EPOCH" spec:"true"`
	MaxValidatorsPerCommittee uint64      `yaml:"MAX_VALIDATORS_PER_COMMITTEE" spec:"true"`
	MaxCommitteesPerSlot      uint64      `yaml:"MAX_COMMITTEES_PER_SLOT" spec:"true"`
	MinGenesisTime            uint64      `yaml:"MIN_GENESIS_TIME" spec:"true"`
	GenesisDelay              uint64      `yaml:"GENESIS_DELAY" spec:"true"`
	FarFutureEpoch            types.Epoch `yaml:"FAR_FUTURE_EPOCH"`

	// Slasher specific values.
	SlasherHistoryLength types.Epoch // Number of epochs of attestation history kept for detection.

	ZeroHash       [32]byte
	EmptySignature [fieldparams.BLSSignatureLength]byte
}

// MaxAttestingIndices is the largest number of attesting indices an Electra
// indexed attestation may carry.
func (b *BeaconChainConfig) MaxAttestingIndices() uint64 {
	return b.MaxValidatorsPerCommittee * b.MaxCommitteesPerSlot
}

// SecondsPerEpoch is SecondsPerSlot * SlotsPerEpoch.
func (b *BeaconChainConfig) SecondsPerEpoch() uint64 {
	return b.SecondsPerSlot * uint64(b.SlotsPerEpoch)
}
