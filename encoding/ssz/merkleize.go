package ssz

import (
	"math/bits"

	"github.com/pkg/errors"
)

// Depth is the number of tree levels above the leaves of a tree holding n
// leaves, so 0 and 1 leaf have depth 0, 2 leaves depth 1, 3 and 4 depth 2.
func Depth(n uint64) uint8 {
	if n <= 1 {
		return 0
	}
	return uint8(bits.Len64(n - 1))
}

// Merkleize returns the root of the tree over leaves, padded with zero chunks
// up to the next power of two of limit.
func Merkleize(hasher Hasher, leaves [][32]byte, limit uint64) ([32]byte, error) {
	if uint64(len(leaves)) > limit {
		return [32]byte{}, errors.Errorf("leaf count %d over limit %d", len(leaves), limit)
	}
	return merkleize(hasher, leaves, Depth(limit)), nil
}

// Reduces the leaves one level at a time. Only the populated part of each
// level is hashed, the padding on the right is taken from ZeroHashes.
func merkleize(hasher Hasher, leaves [][32]byte, depth uint8) [32]byte {
	if len(leaves) == 0 {
		return ZeroHashes[depth]
	}
	layer := make([][32]byte, len(leaves), len(leaves)+1)
	copy(layer, leaves)
	for d := uint8(0); d < depth; d++ {
		if len(layer)%2 == 1 {
			layer = append(layer, ZeroHashes[d])
		}
		for i := 0; i < len(layer)/2; i++ {
			layer[i] = hasher.Combi(layer[2*i], layer[2*i+1])
		}
		layer = layer[:len(layer)/2]
	}
	return layer[0]
}
