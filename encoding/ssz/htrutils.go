package ssz

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/slashing-oracle/crypto/hash"
)

// NewHasher returns a Hasher backed by a dedicated sha256 instance. The
// returned value is not safe for concurrent use.
func NewHasher() Hasher {
	return NewHasherFunc(hash.CustomSHA256Hasher())
}

// Uint64Root computes the HashTreeRoot Merkleization of
// a simple uint64 value according to the Ethereum
// Simple Serialize specification.
func Uint64Root(val uint64) [32]byte {
	var root [32]byte
	binary.LittleEndian.PutUint64(root[:8], val)
	return root
}

// CheckpointRoot computes the HashTreeRoot Merkleization of
// a Checkpoint container given its epoch and root.
func CheckpointRoot(hasher Hasher, epoch uint64, root [32]byte) [32]byte {
	epochRoot := Uint64Root(epoch)
	return hasher.Combi(epochRoot, root)
}

// ContainerRoot merkleizes the already hashed field roots of a container.
func ContainerRoot(hasher Hasher, fieldRoots [][32]byte) [32]byte {
	return merkleize(hasher, fieldRoots, Depth(uint64(len(fieldRoots))))
}

// PackUint64s packs a list of uint64 values into 32 byte chunks, four values per chunk.
func PackUint64s(vals []uint64) [][32]byte {
	numChunks := (len(vals) + 3) / 4
	chunks := make([][32]byte, numChunks)
	for i, v := range vals {
		binary.LittleEndian.PutUint64(chunks[i/4][(i%4)*8:], v)
	}
	return chunks
}

// ChunkListRoot merkleizes a list of chunks up to the given chunk limit
// and mixes in the list length.
func ChunkListRoot(hasher Hasher, chunks [][32]byte, length, chunkLimit uint64) ([32]byte, error) {
	body, err := Merkleize(hasher, chunks, chunkLimit)
	if err != nil {
		return [32]byte{}, err
	}
	return hasher.MixIn(body, length), nil
}

// Uint64ListRoot computes the HashTreeRoot of a List[uint64, limit].
func Uint64ListRoot(hasher Hasher, vals []uint64, limit uint64) ([32]byte, error) {
	if uint64(len(vals)) > limit {
		return [32]byte{}, errors.Errorf("list length %d over limit %d", len(vals), limit)
	}
	chunkLimit := (limit*8 + 31) / 32
	return ChunkListRoot(hasher, PackUint64s(vals), uint64(len(vals)), chunkLimit)
}

// ByteVectorRoot computes the HashTreeRoot of a fixed size byte vector.
func ByteVectorRoot(hasher Hasher, b []byte) [32]byte {
	chunks := make([][32]byte, (len(b)+31)/32)
	for i := range chunks {
		copy(chunks[i][:], b[32*i:])
	}
	return merkleize(hasher, chunks, Depth(uint64(len(chunks))))
}
