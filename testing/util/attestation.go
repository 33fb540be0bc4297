// Package util provides fixture builders shared by tests across the repository.
package util

import (
	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
)

// IndexedAtt builds an indexed attestation for the given validators voting
// from source to target. The target root is derived from targetRoot so that
// two attestations to the same target epoch with different targetRoot values
// conflict. Every other field is zero.
func IndexedAtt(indices []uint64, source, target primitives.Epoch, targetRoot uint64) *ethpb.IndexedAttestation {
	var root [32]byte
	// Big endian low bytes, so distinct values give distinct roots.
	for i := 0; i < 8; i++ {
		root[31-i] = byte(targetRoot >> (8 * i))
	}
	cp := make([]uint64, len(indices))
	copy(cp, indices)
	return &ethpb.IndexedAttestation{
		AttestingIndices: cp,
		Data: &ethpb.AttestationData{
			Slot:           0,
			CommitteeIndex: 0,
			Source:         &ethpb.Checkpoint{Epoch: source},
			Target:         &ethpb.Checkpoint{Epoch: target, Root: root},
		},
	}
}

// AttSlashing pairs two attestations into an attester slashing.
func AttSlashing(a, b *ethpb.IndexedAttestation) *ethpb.AttesterSlashing {
	return &ethpb.AttesterSlashing{
		Attestation_1: a.Copy(),
		Attestation_2: b.Copy(),
	}
}

// HydrateAttestationData hydrates an attestation data object with empty checkpoints
// where they are nil.
func HydrateAttestationData(d *ethpb.AttestationData) *ethpb.AttestationData {
	if d == nil {
		d = &ethpb.AttestationData{}
	}
	if d.Source == nil {
		d.Source = &ethpb.Checkpoint{}
	}
	if d.Target == nil {
		d.Target = &ethpb.Checkpoint{}
	}
	return d
}

// HydrateIndexedAttestation hydrates an indexed attestation with the minimum
// fields required to hash and detect on it.
func HydrateIndexedAttestation(a *ethpb.IndexedAttestation) *ethpb.IndexedAttestation {
	if a == nil {
		a = &ethpb.IndexedAttestation{}
	}
	if a.AttestingIndices == nil {
		a.AttestingIndices = []uint64{}
	}
	a.Data = HydrateAttestationData(a.Data)
	return a
}

// HydrateAttestation hydrates an aggregated attestation with an empty data object.
func HydrateAttestation(a *ethpb.Attestation) *ethpb.Attestation {
	if a == nil {
		a = &ethpb.Attestation{}
	}
	a.Data = HydrateAttestationData(a.Data)
	return a
}
