package params

import (
	"sync"

	"github.com/mohae/deepcopy"
)

var (
	beaconConfig = MainnetConfig()
	configLock   sync.RWMutex
)

// BeaconConfig retrieves beacon chain config.
func BeaconConfig() *BeaconChainConfig {
	configLock.RLock()
	defer configLock.RUnlock()
	return beaconConfig
}

// OverrideBeaconConfig by replacing the config. The preferred pattern is to
// call BeaconConfig(), change the specific parameters, and then call
// OverrideBeaconConfig(c). Any subsequent calls to params.BeaconConfig() will
// return this new configuration.
func OverrideBeaconConfig(c *BeaconChainConfig) {
	configLock.Lock()
	defer configLock.Unlock()
	beaconConfig = c
}

// SetupTestConfigCleanup preserves configurations allowing to modify them within tests without any
// restrictions, everything is restored after the test.
func SetupTestConfigCleanup(t interface{ Cleanup(func()) }) {
	prev := BeaconConfig().Copy()
	t.Cleanup(func() {
		OverrideBeaconConfig(prev)
	})
}

// Copy returns a copy of the config object.
func (b *BeaconChainConfig) Copy() *BeaconChainConfig {
	config := deepcopy.Copy(*b).(BeaconChainConfig)
	return &config
}
