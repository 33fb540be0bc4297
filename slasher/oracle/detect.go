package oracle

import (
	"bytes"
	"encoding/json"

	"github.com/prysmaticlabs/slashing-oracle/crypto/hash"
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1/attestation"
	"github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1/slashings"
)

type pairKey [2][32]byte

// DetectSlashings returns one attester slashing for every unordered pair of
// distinct attestations in atts that is a double vote or a surround vote.
// Slashings appear in order of discovery. For a surround vote the surrounding
// attestation is Attestation_1. The input is not modified.
func DetectSlashings(atts []*ethpb.IndexedAttestation) []*ethpb.AttesterSlashing {
	found := make([]*ethpb.AttesterSlashing, 0)
	if len(atts) < 2 {
		return found
	}
	roots := make([][32]byte, len(atts))
	for i, att := range atts {
		roots[i] = identity(att)
	}
	seen := make(map[pairKey]bool)
	for i, att1 := range atts {
		for j, att2 := range atts {
			if i == j || att1.Equal(att2) {
				continue
			}
			if !slashings.IsSlashable(att1, att2) {
				continue
			}
			key := unorderedKey(roots[i], roots[j])
			if seen[key] {
				continue
			}
			seen[key] = true
			found = append(found, &ethpb.AttesterSlashing{
				Attestation_1: att1.Copy(),
				Attestation_2: att2.Copy(),
			})
		}
	}
	return found
}

// identity is the hash tree root of att. Attestations too large to
// merkleize fall back to a digest of their JSON form.
func identity(att *ethpb.IndexedAttestation) [32]byte {
	id, err := attestation.NewId(att, attestation.Full)
	if err == nil {
		return id.Root()
	}
	enc, err := json.Marshal(att)
	if err != nil {
		return [32]byte{}
	}
	return hash.Hash(enc)
}

func unorderedKey(a, b [32]byte) pairKey {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return pairKey{a, b}
}
