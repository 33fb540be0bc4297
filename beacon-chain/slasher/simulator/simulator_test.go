package simulator

import (
	"context"
	"testing"

	"github.com/prysmaticlabs/slashing-oracle/testing/assert"
	"github.com/prysmaticlabs/slashing-oracle/testing/require"
	logTest "github.com/sirupsen/logrus/hooks/test"
)

func TestSimulate(t *testing.T) {
	hook := logTest.NewGlobal()
	for seed := int64(0); seed < 5; seed++ {
		simParams := &Parameters{
			NumValidators:          96,
			NumEpochs:              6,
			AggregationPercent:     0.125,
			AttesterSlashingProbab: 0.3,
			Seed:                   seed,
		}
		res, err := Simulate(context.Background(), simParams)
		require.NoError(t, err)
		assert.Equal(t, 0, len(res.Missed))
		assert.Equal(t, 0, len(res.Unexpected))
		assert.DeepEqual(t, res.ExpectedValidators, res.SlashedValidators)
		assert.Equal(t, true, res.NumDetected >= res.NumInjected)
	}
	require.LogsContain(t, hook, "Simulation finished")
}

func TestSimulate_NoSlashings(t *testing.T) {
	simParams := DefaultParams()
	simParams.AttesterSlashingProbab = 0
	res, err := Simulate(context.Background(), simParams)
	require.NoError(t, err)
	assert.Equal(t, 0, res.NumInjected)
	assert.Equal(t, 0, len(res.SlashedValidators))
}

func TestSimulate_InvalidParams(t *testing.T) {
	_, err := Simulate(context.Background(), &Parameters{})
	require.ErrorContains(t, "could not generate attestations", err)
}

func TestSimulate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Simulate(ctx, DefaultParams())
	require.ErrorIs(t, err, context.Canceled)
}
