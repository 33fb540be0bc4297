package eth_test

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/slashing-oracle/testing/assert"
	"github.com/prysmaticlabs/slashing-oracle/testing/require"
)

func testIndexedAtt() *ethpb.IndexedAttestation {
	return &ethpb.IndexedAttestation{
		AttestingIndices: []uint64{1, 2, 3},
		Data: &ethpb.AttestationData{
			Slot:            5,
			CommitteeIndex:  2,
			BeaconBlockRoot: [32]byte{'b'},
			Source:          &ethpb.Checkpoint{Epoch: 1, Root: [32]byte{'s'}},
			Target:          &ethpb.Checkpoint{Epoch: 2, Root: [32]byte{'t'}},
		},
		Signature: [96]byte{'x'},
	}
}

func TestIndexedAttestation_Copy(t *testing.T) {
	att := testIndexedAtt()
	cp := att.Copy()
	require.DeepEqual(t, att, cp)
	assert.Equal(t, true, att.Equal(cp))

	cp.AttestingIndices[0] = 100
	cp.Data.Source.Epoch = 100
	assert.Equal(t, uint64(1), att.AttestingIndices[0])
	assert.Equal(t, false, att.Equal(cp))
	assert.Equal(t, true, att.Data.Source.Epoch == 1)
}

func TestCopy_Nil(t *testing.T) {
	var att *ethpb.IndexedAttestation
	assert.IsNil(t, att.Copy())
	var slashing *ethpb.AttesterSlashing
	assert.IsNil(t, slashing.Copy())
	var data *ethpb.AttestationData
	assert.IsNil(t, data.Copy())
	assert.IsNil(t, data.GetTarget())
}

func TestEqual(t *testing.T) {
	a := testIndexedAtt()
	tests := []struct {
		name   string
		modify func(att *ethpb.IndexedAttestation)
		equal  bool
	}{
		{name: "identical", modify: func(att *ethpb.IndexedAttestation) {}, equal: true},
		{name: "indices", modify: func(att *ethpb.IndexedAttestation) { att.AttestingIndices = []uint64{1, 2} }},
		{name: "slot", modify: func(att *ethpb.IndexedAttestation) { att.Data.Slot++ }},
		{name: "committee index", modify: func(att *ethpb.IndexedAttestation) { att.Data.CommitteeIndex++ }},
		{name: "block root", modify: func(att *ethpb.IndexedAttestation) { att.Data.BeaconBlockRoot[0]++ }},
		{name: "source root", modify: func(att *ethpb.IndexedAttestation) { att.Data.Source.Root[0]++ }},
		{name: "target epoch", modify: func(att *ethpb.IndexedAttestation) { att.Data.Target.Epoch++ }},
		{name: "signature", modify: func(att *ethpb.IndexedAttestation) { att.Signature[95] = 1 }},
		{name: "nil data", modify: func(att *ethpb.IndexedAttestation) { att.Data = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := a.Copy()
			tt.modify(b)
			assert.Equal(t, tt.equal, a.Equal(b))
			assert.Equal(t, tt.equal, b.Equal(a))
		})
	}
}

func TestEqual_NilAndEmptyIndices(t *testing.T) {
	a := testIndexedAtt()
	a.AttestingIndices = nil
	b := a.Copy()
	b.AttestingIndices = []uint64{}
	assert.Equal(t, true, a.Equal(b))

	var nilAtt *ethpb.IndexedAttestation
	assert.Equal(t, true, nilAtt.Equal(nil))
	assert.Equal(t, false, nilAtt.Equal(a))
}

func TestCopy_Fuzz(t *testing.T) {
	fuzzer := fuzz.NewWithSeed(0)
	for i := 0; i < 100; i++ {
		slashing := &ethpb.AttesterSlashing{}
		fuzzer.Fuzz(slashing)
		cp := slashing.Copy()
		assert.Equal(t, true, slashing.Equal(cp))
	}
}

func TestAttestation_Copy(t *testing.T) {
	att := &ethpb.Attestation{
		AggregationBits: []byte{0b1101},
		Data:            testIndexedAtt().Data,
	}
	cp := att.Copy()
	assert.Equal(t, true, att.Equal(cp))
	cp.AggregationBits[0] = 0b1111
	assert.Equal(t, false, att.Equal(cp))
}
