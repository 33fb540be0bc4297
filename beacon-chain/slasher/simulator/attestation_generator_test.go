package simulator

import (
	"testing"

	"github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1/slashings"
	"github.com/prysmaticlabs/slashing-oracle/testing/assert"
	"github.com/prysmaticlabs/slashing-oracle/testing/require"
)

func TestGenerateAttestations_Honest(t *testing.T) {
	simParams := &Parameters{
		NumValidators:          64,
		NumEpochs:              3,
		AggregationPercent:     0.25,
		AttesterSlashingProbab: 0,
	}
	atts, injected, err := GenerateAttestations(simParams)
	require.NoError(t, err)
	assert.Equal(t, 0, len(injected))
	// Four committees of sixteen per epoch.
	require.Equal(t, 12, len(atts))
	for _, att := range atts {
		assert.Equal(t, 16, len(att.AttestingIndices))
		assert.Equal(t, att.Data.Source.Epoch+1, att.Data.Target.Epoch)
	}
}

func TestGenerateAttestations_CorrectIndices(t *testing.T) {
	simParams := &Parameters{
		NumValidators:          100,
		NumEpochs:              1,
		AggregationPercent:     0.3,
		AttesterSlashingProbab: 0,
	}
	atts, _, err := GenerateAttestations(simParams)
	require.NoError(t, err)
	var validatorIndices []uint64
	for _, att := range atts {
		validatorIndices = append(validatorIndices, att.AttestingIndices...)
	}

	// Making sure indices are one after the other for attestations.
	require.Equal(t, 100, len(validatorIndices))
	var validatorIndex uint64
	for _, ii := range validatorIndices {
		require.Equal(t, validatorIndex, ii)
		validatorIndex++
	}
}

func TestGenerateAttestations_Slashing(t *testing.T) {
	simParams := &Parameters{
		NumValidators:          64,
		NumEpochs:              5,
		AggregationPercent:     0.5,
		AttesterSlashingProbab: 1,
		Seed:                   7,
	}
	atts, injected, err := GenerateAttestations(simParams)
	require.NoError(t, err)
	// Every committee equivocates every epoch.
	require.Equal(t, 10, len(injected))
	require.Equal(t, 20, len(atts))
	for _, s := range injected {
		kind := slashings.Classify(s.Attestation_1, s.Attestation_2)
		assert.NotEqual(t, slashings.NotSlashable, kind)
		assert.DeepEqual(t, s.Attestation_1.AttestingIndices, s.Attestation_2.AttestingIndices)
	}
}

func TestGenerateAttestations_Deterministic(t *testing.T) {
	simParams := DefaultParams()
	atts1, injected1, err := GenerateAttestations(simParams)
	require.NoError(t, err)
	atts2, injected2, err := GenerateAttestations(simParams)
	require.NoError(t, err)
	assert.DeepEqual(t, atts1, atts2)
	assert.DeepEqual(t, injected1, injected2)
}

func TestGenerateAttestations_InvalidParams(t *testing.T) {
	tests := []struct {
		name    string
		params  *Parameters
		wantErr string
	}{
		{name: "nil", params: nil, wantErr: "nil simulator parameters"},
		{name: "no validators", params: &Parameters{NumEpochs: 1, AggregationPercent: 1}, wantErr: "number of validators"},
		{name: "no epochs", params: &Parameters{NumValidators: 1, AggregationPercent: 1}, wantErr: "number of epochs"},
		{name: "zero aggregation", params: &Parameters{NumValidators: 1, NumEpochs: 1}, wantErr: "aggregation percent"},
		{
			name:    "probability over one",
			params:  &Parameters{NumValidators: 1, NumEpochs: 1, AggregationPercent: 1, AttesterSlashingProbab: 1.5},
			wantErr: "slashing probability",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := GenerateAttestations(tt.params)
			require.ErrorContains(t, tt.wantErr, err)
		})
	}
}

func Test_committeesFor(t *testing.T) {
	committees := committeesFor(&Parameters{NumValidators: 10, AggregationPercent: 0.25})
	require.Equal(t, 4, len(committees))
	assert.DeepEqual(t, []uint64{0, 1, 2}, committees[0])
	assert.DeepEqual(t, []uint64{9}, committees[3])

	// Committees never exceed the maximum committee size.
	committees = committeesFor(&Parameters{NumValidators: 5000, AggregationPercent: 1})
	require.Equal(t, 3, len(committees))
	assert.Equal(t, 2048, len(committees[0]))
	assert.Equal(t, 904, len(committees[2]))
}
