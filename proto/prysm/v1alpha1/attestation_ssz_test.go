package eth_test

import (
	"testing"

	ssz "github.com/ferranbt/fastssz"
	fuzz "github.com/google/gofuzz"
	fieldparams "github.com/prysmaticlabs/slashing-oracle/config/fieldparams"
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/slashing-oracle/testing/assert"
	"github.com/prysmaticlabs/slashing-oracle/testing/require"
)

func TestCheckpoint_HashTreeRoot(t *testing.T) {
	cp := &ethpb.Checkpoint{Epoch: 1234567890, Root: [32]byte{222}}
	expected := [32]byte{228, 65, 39, 109, 183, 249, 167, 232, 125, 239, 25, 155, 207, 4, 84, 174, 176, 229, 175, 224, 62, 33, 215, 254, 170, 220, 132, 65, 246, 128, 68, 194}
	root, err := cp.HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, expected, root)
}

func TestSizes(t *testing.T) {
	att := testIndexedAtt()
	assert.Equal(t, 40, att.Data.Source.SizeSSZ())
	assert.Equal(t, 128, att.Data.SizeSSZ())
	assert.Equal(t, 228+3*8, att.SizeSSZ())
	slashing := &ethpb.AttesterSlashing{Attestation_1: att, Attestation_2: att}
	assert.Equal(t, 8+2*(228+3*8), slashing.SizeSSZ())
	enc, err := slashing.MarshalSSZ()
	require.NoError(t, err)
	assert.Equal(t, slashing.SizeSSZ(), len(enc))
}

func TestAttesterSlashing_RoundTrip(t *testing.T) {
	a := testIndexedAtt()
	b := testIndexedAtt()
	b.AttestingIndices = []uint64{2}
	b.Data.BeaconBlockRoot = [32]byte{'c'}
	slashing := &ethpb.AttesterSlashing{Attestation_1: a, Attestation_2: b}

	enc, err := slashing.MarshalSSZ()
	require.NoError(t, err)
	decoded := &ethpb.AttesterSlashing{}
	require.NoError(t, decoded.UnmarshalSSZ(enc))
	assert.DeepEqual(t, slashing, decoded)

	r1, err := slashing.HashTreeRoot()
	require.NoError(t, err)
	r2, err := decoded.HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}

func TestIndexedAttestation_RoundTripFuzz(t *testing.T) {
	fuzzer := fuzz.NewWithSeed(0).NilChance(0).NumElements(0, 64)
	for i := 0; i < 50; i++ {
		att := &ethpb.IndexedAttestation{}
		fuzzer.Fuzz(att)
		enc, err := att.MarshalSSZ()
		require.NoError(t, err)
		decoded := &ethpb.IndexedAttestation{}
		require.NoError(t, decoded.UnmarshalSSZ(enc))
		assert.Equal(t, true, att.Equal(decoded))
	}
}

func TestIndexedAttestation_HashTreeRootDistinguishes(t *testing.T) {
	a := testIndexedAtt()
	b := a.Copy()
	b.AttestingIndices = append(b.AttestingIndices, 4)
	ra, err := a.HashTreeRoot()
	require.NoError(t, err)
	rb, err := b.HashTreeRoot()
	require.NoError(t, err)
	assert.NotEqual(t, ra, rb)

	c := a.Copy()
	c.Signature[0] = 'y'
	rc, err := c.HashTreeRoot()
	require.NoError(t, err)
	assert.NotEqual(t, ra, rc)
}

func TestUnmarshalSSZ_Errors(t *testing.T) {
	assert.ErrorIs(t, (&ethpb.Checkpoint{}).UnmarshalSSZ(make([]byte, 39)), ssz.ErrSize)
	assert.ErrorIs(t, (&ethpb.AttestationData{}).UnmarshalSSZ(make([]byte, 127)), ssz.ErrSize)
	assert.ErrorIs(t, (&ethpb.IndexedAttestation{}).UnmarshalSSZ(make([]byte, 100)), ssz.ErrSize)

	enc, err := testIndexedAtt().MarshalSSZ()
	require.NoError(t, err)
	assert.ErrorIs(t, (&ethpb.IndexedAttestation{}).UnmarshalSSZ(enc[:len(enc)-1]), ssz.ErrSize)
	enc[0] = 0
	assert.ErrorIs(t, (&ethpb.IndexedAttestation{}).UnmarshalSSZ(enc), ssz.ErrOffset)
}

func TestIndexedAttestation_SpansCommittees(t *testing.T) {
	att := testIndexedAtt()
	att.AttestingIndices = make([]uint64, 3*fieldparams.MaxValidatorsPerCommittee)
	for i := range att.AttestingIndices {
		att.AttestingIndices[i] = uint64(i)
	}
	enc, err := att.MarshalSSZ()
	require.NoError(t, err)
	decoded := &ethpb.IndexedAttestation{}
	require.NoError(t, decoded.UnmarshalSSZ(enc))
	assert.Equal(t, true, att.Equal(decoded))
	_, err = att.HashTreeRoot()
	require.NoError(t, err)
}

func TestIndexedAttestation_TooManyIndices(t *testing.T) {
	att := testIndexedAtt()
	att.AttestingIndices = make([]uint64, fieldparams.MaxAttestingIndices+1)
	_, err := att.MarshalSSZ()
	assert.ErrorIs(t, err, ssz.ErrListTooBig)
	_, err = att.HashTreeRoot()
	assert.ErrorContains(t, "over limit", err)
}
