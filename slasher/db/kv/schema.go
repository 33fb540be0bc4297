package kv

import (
	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
	"github.com/prysmaticlabs/slashing-oracle/encoding/bytesutil"
)

// The schema will define how to store and retrieve data from the db.
// Attestations are keyed by big-endian target epoch followed by the hash tree root
// of the attestation, so a cursor walks them in target epoch order.
// Attester slashings are keyed by their hash tree root.
var (
	attestationsBucket      = []byte("indexed-attestations")
	attesterSlashingsBucket = []byte("attester-slashings")
)

const (
	epochKeyLen       = 8
	attestationKeyLen = epochKeyLen + 32
)

func attestationKey(target primitives.Epoch, root [32]byte) []byte {
	key := make([]byte, 0, attestationKeyLen)
	key = append(key, bytesutil.EpochToBytesBigEndian(target)...)
	return append(key, root[:]...)
}

func targetFromKey(key []byte) primitives.Epoch {
	return bytesutil.BytesToEpochBigEndian(key[:epochKeyLen])
}
