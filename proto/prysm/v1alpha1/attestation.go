// Package eth defines the consensus objects consumed by the slasher: checkpoints,
// attestation data, indexed attestations and attester slashings.
package eth

import (
	"bytes"

	"github.com/prysmaticlabs/go-bitfield"
	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
	"golang.org/x/exp/slices"
)

// Checkpoint is an (epoch, block root) pair used as the source or target of a vote.
type Checkpoint struct {
	Epoch primitives.Epoch
	Root  [32]byte
}

// AttestationData is the content a validator signs when attesting.
type AttestationData struct {
	Slot            primitives.Slot
	CommitteeIndex  primitives.CommitteeIndex
	BeaconBlockRoot [32]byte
	Source          *Checkpoint
	Target          *Checkpoint
}

// IndexedAttestation is an attestation whose participants are listed explicitly
// as sorted validator indices.
type IndexedAttestation struct {
	AttestingIndices []uint64
	Data             *AttestationData
	Signature        [96]byte
}

// AttesterSlashing is a pair of indexed attestations offered as proof of equivocation.
type AttesterSlashing struct {
	Attestation_1 *IndexedAttestation
	Attestation_2 *IndexedAttestation
}

// Attestation is the aggregated wire form, with participants encoded as a
// bitlist over the committee.
type Attestation struct {
	AggregationBits bitfield.Bitlist
	Data            *AttestationData
	Signature       [96]byte
}

// GetEpoch --
func (cp *Checkpoint) GetEpoch() primitives.Epoch {
	if cp == nil {
		return 0
	}
	return cp.Epoch
}

// Copy --
func (cp *Checkpoint) Copy() *Checkpoint {
	if cp == nil {
		return nil
	}
	return &Checkpoint{
		Epoch: cp.Epoch,
		Root:  cp.Root,
	}
}

// Equal --
func (cp *Checkpoint) Equal(other *Checkpoint) bool {
	if cp == nil || other == nil {
		return cp == other
	}
	return cp.Epoch == other.Epoch && cp.Root == other.Root
}

// GetSource --
func (attData *AttestationData) GetSource() *Checkpoint {
	if attData == nil {
		return nil
	}
	return attData.Source
}

// GetTarget --
func (attData *AttestationData) GetTarget() *Checkpoint {
	if attData == nil {
		return nil
	}
	return attData.Target
}

// Copy --
func (attData *AttestationData) Copy() *AttestationData {
	if attData == nil {
		return nil
	}
	return &AttestationData{
		Slot:            attData.Slot,
		CommitteeIndex:  attData.CommitteeIndex,
		BeaconBlockRoot: attData.BeaconBlockRoot,
		Source:          attData.Source.Copy(),
		Target:          attData.Target.Copy(),
	}
}

// Equal reports whether every field of the two values matches.
func (attData *AttestationData) Equal(other *AttestationData) bool {
	if attData == nil || other == nil {
		return attData == other
	}
	return attData.Slot == other.Slot &&
		attData.CommitteeIndex == other.CommitteeIndex &&
		attData.BeaconBlockRoot == other.BeaconBlockRoot &&
		attData.Source.Equal(other.Source) &&
		attData.Target.Equal(other.Target)
}

// GetData --
func (indexedAtt *IndexedAttestation) GetData() *AttestationData {
	if indexedAtt == nil {
		return nil
	}
	return indexedAtt.Data
}

// GetAttestingIndices --
func (indexedAtt *IndexedAttestation) GetAttestingIndices() []uint64 {
	if indexedAtt == nil {
		return nil
	}
	return indexedAtt.AttestingIndices
}

// Copy --
func (indexedAtt *IndexedAttestation) Copy() *IndexedAttestation {
	var indices []uint64
	if indexedAtt == nil {
		return nil
	} else if indexedAtt.AttestingIndices != nil {
		indices = make([]uint64, len(indexedAtt.AttestingIndices))
		copy(indices, indexedAtt.AttestingIndices)
	}
	return &IndexedAttestation{
		AttestingIndices: indices,
		Data:             indexedAtt.Data.Copy(),
		Signature:        indexedAtt.Signature,
	}
}

// Equal reports whether the attesting indices, data and signature all match.
// A nil and an empty index list compare equal.
func (indexedAtt *IndexedAttestation) Equal(other *IndexedAttestation) bool {
	if indexedAtt == nil || other == nil {
		return indexedAtt == other
	}
	return slices.Equal(indexedAtt.AttestingIndices, other.AttestingIndices) &&
		indexedAtt.Data.Equal(other.Data) &&
		indexedAtt.Signature == other.Signature
}

// Copy --
func (a *AttesterSlashing) Copy() *AttesterSlashing {
	if a == nil {
		return nil
	}
	return &AttesterSlashing{
		Attestation_1: a.Attestation_1.Copy(),
		Attestation_2: a.Attestation_2.Copy(),
	}
}

// Equal --
func (a *AttesterSlashing) Equal(other *AttesterSlashing) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.Attestation_1.Equal(other.Attestation_1) && a.Attestation_2.Equal(other.Attestation_2)
}

// GetData --
func (att *Attestation) GetData() *AttestationData {
	if att == nil {
		return nil
	}
	return att.Data
}

// Copy --
func (att *Attestation) Copy() *Attestation {
	if att == nil {
		return nil
	}
	var bits bitfield.Bitlist
	if att.AggregationBits != nil {
		bits = make(bitfield.Bitlist, len(att.AggregationBits))
		copy(bits, att.AggregationBits)
	}
	return &Attestation{
		AggregationBits: bits,
		Data:            att.Data.Copy(),
		Signature:       att.Signature,
	}
}

// Equal --
func (att *Attestation) Equal(other *Attestation) bool {
	if att == nil || other == nil {
		return att == other
	}
	return bytes.Equal(att.AggregationBits, other.AggregationBits) &&
		att.Data.Equal(other.Data) &&
		att.Signature == other.Signature
}
