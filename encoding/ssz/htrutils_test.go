package ssz_test

import (
	"testing"

	"github.com/prysmaticlabs/slashing-oracle/encoding/ssz"
	"github.com/prysmaticlabs/slashing-oracle/testing/assert"
	"github.com/prysmaticlabs/slashing-oracle/testing/require"
)

func TestUint64Root(t *testing.T) {
	uintVal := uint64(1234567890)
	expected := [32]byte{210, 2, 150, 73, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

	result := ssz.Uint64Root(uintVal)
	assert.Equal(t, expected, result)
}

func TestCheckPointRoot(t *testing.T) {
	expected := [32]byte{228, 65, 39, 109, 183, 249, 167, 232, 125, 239, 25, 155, 207, 4, 84, 174, 176, 229, 175, 224, 62, 33, 215, 254, 170, 220, 132, 65, 246, 128, 68, 194}

	result := ssz.CheckpointRoot(ssz.NewHasher(), 1234567890, [32]byte{222})
	assert.Equal(t, expected, result)
}

func TestChunkListRoot(t *testing.T) {
	chunks := [][32]byte{{123}, {234}}
	expected := [32]byte{70, 204, 150, 196, 89, 138, 190, 205, 65, 207, 120, 166, 179, 247, 147, 20, 29, 133, 117, 116, 151, 234, 129, 32, 22, 15, 79, 178, 98, 73, 132, 152}

	result, err := ssz.ChunkListRoot(ssz.NewHasher(), chunks, uint64(len(chunks)), 16777216)
	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestChunkListRoot_OverLimit(t *testing.T) {
	_, err := ssz.ChunkListRoot(ssz.NewHasher(), make([][32]byte, 3), 3, 2)
	require.ErrorContains(t, "over limit", err)
}

func TestUint64ListRoot_OverLimit(t *testing.T) {
	_, err := ssz.Uint64ListRoot(ssz.NewHasher(), make([]uint64, 5), 4)
	require.ErrorContains(t, "over limit", err)
}

func TestPackUint64s(t *testing.T) {
	chunks := ssz.PackUint64s([]uint64{1, 2, 3, 4, 5})
	require.Equal(t, 2, len(chunks))
	assert.Equal(t, byte(1), chunks[0][0])
	assert.Equal(t, byte(4), chunks[0][24])
	assert.Equal(t, byte(5), chunks[1][0])
	assert.Equal(t, 0, len(ssz.PackUint64s(nil)))
}

func TestDepth(t *testing.T) {
	tests := []struct {
		in  uint64
		out uint8
	}{
		{0, 0}, {1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {8, 3}, {9, 4}, {2048, 11},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, ssz.Depth(tt.in))
	}
}

func TestMerkleize_MatchesContainerRoot(t *testing.T) {
	hasher := ssz.NewHasher()
	leaves := [][32]byte{{1}, {2}, {3}}
	got := ssz.ContainerRoot(hasher, leaves)
	left := hasher.Combi(leaves[0], leaves[1])
	right := hasher.Combi(leaves[2], ssz.ZeroHashes[0])
	assert.Equal(t, hasher.Combi(left, right), got)
}

func TestByteVectorRoot_Signature(t *testing.T) {
	hasher := ssz.NewHasher()
	sig := make([]byte, 96)
	sig[0], sig[32], sig[64] = 1, 2, 3
	got := ssz.ByteVectorRoot(hasher, sig)
	left := hasher.Combi([32]byte{1}, [32]byte{2})
	right := hasher.Combi([32]byte{3}, ssz.ZeroHashes[0])
	assert.Equal(t, hasher.Combi(left, right), got)
}

func TestMerkleize(t *testing.T) {
	hasher := ssz.NewHasher()
	leaves := [][32]byte{{1}, {2}, {3}}

	got, err := ssz.Merkleize(hasher, leaves, 8)
	require.NoError(t, err)
	left := hasher.Combi(hasher.Combi(leaves[0], leaves[1]), hasher.Combi(leaves[2], ssz.ZeroHashes[0]))
	assert.Equal(t, hasher.Combi(left, ssz.ZeroHashes[2]), got)

	// The input is left untouched.
	assert.Equal(t, [32]byte{1}, leaves[0])

	empty, err := ssz.Merkleize(hasher, nil, 8)
	require.NoError(t, err)
	assert.Equal(t, ssz.ZeroHashes[3], empty)

	single, err := ssz.Merkleize(hasher, leaves[:1], 1)
	require.NoError(t, err)
	assert.Equal(t, leaves[0], single)

	_, err = ssz.Merkleize(hasher, leaves, 2)
	require.ErrorContains(t, "leaf count 3 over limit 2", err)
}
