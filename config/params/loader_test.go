package params

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prysmaticlabs/slashing-oracle/testing/assert"
	"github.com/prysmaticlabs/slashing-oracle/testing/require"
)

func TestUnmarshalConfig_Minimal(t *testing.T) {
	yml := []byte(`PRESET_BASE: 'minimal'
CONFIG_NAME: 'testnet'
SECONDS_PER_SLOT: 3
`)
	conf, err := UnmarshalConfig(yml)
	require.NoError(t, err)
	assert.Equal(t, "testnet", conf.ConfigName)
	assert.Equal(t, uint64(3), conf.SecondsPerSlot)
	assert.Equal(t, MinimalSpecConfig().SlotsPerEpoch, conf.SlotsPerEpoch)
}

func TestUnmarshalConfig_DefaultsToDevnetName(t *testing.T) {
	conf, err := UnmarshalConfig([]byte("SLOTS_PER_EPOCH: 16\n"))
	require.NoError(t, err)
	assert.Equal(t, "devnet", conf.ConfigName)
	assert.Equal(t, MainnetConfig().SecondsPerSlot, conf.SecondsPerSlot)
	assert.Equal(t, 16, int(conf.SlotsPerEpoch))
}

func TestUnmarshalConfig_MaxAttestingIndices(t *testing.T) {
	assert.Equal(t, uint64(131072), MainnetConfig().MaxAttestingIndices())
	assert.Equal(t, uint64(8192), MinimalSpecConfig().MaxAttestingIndices())
	conf, err := UnmarshalConfig([]byte("MAX_COMMITTEES_PER_SLOT: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, uint64(4096), conf.MaxAttestingIndices())
}

func TestUnmarshalConfig_ZeroSlotsPerEpoch(t *testing.T) {
	_, err := UnmarshalConfig([]byte("SLOTS_PER_EPOCH: 0\n"))
	require.ErrorContains(t, "SLOTS_PER_EPOCH", err)
}

func TestLoadChainConfigFile(t *testing.T) {
	SetupTestConfigCleanup(t)
	f := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(f, []byte("CONFIG_NAME: 'custom'\nSECONDS_PER_SLOT: 5\n"), 0600))
	require.NoError(t, LoadChainConfigFile(f))
	assert.Equal(t, "custom", BeaconConfig().ConfigName)
	assert.Equal(t, uint64(5), BeaconConfig().SecondsPerSlot)
	assert.Equal(t, uint64(5*32), BeaconConfig().SecondsPerEpoch())
}

func TestLoadChainConfigFile_Missing(t *testing.T) {
	err := LoadChainConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorContains(t, "failed to read chain config file", err)
}

func TestConfig_CopyIsIndependent(t *testing.T) {
	c := MainnetConfig()
	c.ZeroHash[0] = 1
	c.SlotsPerEpoch = 4
	assert.Equal(t, byte(0), MainnetConfig().ZeroHash[0])
	assert.NotEqual(t, c.SlotsPerEpoch, MainnetConfig().SlotsPerEpoch)
}
