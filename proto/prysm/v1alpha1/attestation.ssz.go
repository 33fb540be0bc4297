package eth

import (
	ssz "github.com/ferranbt/fastssz"
	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/slashing-oracle/config/fieldparams"
	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
	htr "github.com/prysmaticlabs/slashing-oracle/encoding/ssz"
)

const (
	checkpointSize          = 40
	attestationDataSize     = 128
	indexedAttestationFixed = 4 + attestationDataSize + fieldparams.BLSSignatureLength
	attesterSlashingFixed   = 8
)

// MarshalSSZ ssz marshals the Checkpoint object
func (cp *Checkpoint) MarshalSSZ() ([]byte, error) {
	return cp.MarshalSSZTo(make([]byte, 0, checkpointSize))
}

// MarshalSSZTo ssz marshals the Checkpoint object to a target array
func (cp *Checkpoint) MarshalSSZTo(buf []byte) ([]byte, error) {
	dst := ssz.MarshalUint64(buf, uint64(cp.Epoch))
	dst = append(dst, cp.Root[:]...)
	return dst, nil
}

// UnmarshalSSZ ssz unmarshals the Checkpoint object
func (cp *Checkpoint) UnmarshalSSZ(buf []byte) error {
	if len(buf) != checkpointSize {
		return ssz.ErrSize
	}
	cp.Epoch = primitives.Epoch(ssz.UnmarshallUint64(buf[0:8]))
	copy(cp.Root[:], buf[8:40])
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the Checkpoint object
func (cp *Checkpoint) SizeSSZ() int {
	return checkpointSize
}

// HashTreeRoot ssz hashes the Checkpoint object
func (cp *Checkpoint) HashTreeRoot() ([32]byte, error) {
	return cp.hashTreeRootWith(htr.NewHasher()), nil
}

func (cp *Checkpoint) hashTreeRootWith(hasher htr.Hasher) [32]byte {
	if cp == nil {
		return htr.CheckpointRoot(hasher, 0, [32]byte{})
	}
	return htr.CheckpointRoot(hasher, uint64(cp.Epoch), cp.Root)
}

// MarshalSSZ ssz marshals the AttestationData object
func (attData *AttestationData) MarshalSSZ() ([]byte, error) {
	return attData.MarshalSSZTo(make([]byte, 0, attestationDataSize))
}

// MarshalSSZTo ssz marshals the AttestationData object to a target array.
// Nil checkpoints are written as zero checkpoints.
func (attData *AttestationData) MarshalSSZTo(buf []byte) ([]byte, error) {
	dst := ssz.MarshalUint64(buf, uint64(attData.Slot))
	dst = ssz.MarshalUint64(dst, uint64(attData.CommitteeIndex))
	dst = append(dst, attData.BeaconBlockRoot[:]...)
	for _, cp := range []*Checkpoint{attData.Source, attData.Target} {
		if cp == nil {
			cp = &Checkpoint{}
		}
		var err error
		if dst, err = cp.MarshalSSZTo(dst); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// UnmarshalSSZ ssz unmarshals the AttestationData object
func (attData *AttestationData) UnmarshalSSZ(buf []byte) error {
	if len(buf) != attestationDataSize {
		return ssz.ErrSize
	}
	attData.Slot = primitives.Slot(ssz.UnmarshallUint64(buf[0:8]))
	attData.CommitteeIndex = primitives.CommitteeIndex(ssz.UnmarshallUint64(buf[8:16]))
	copy(attData.BeaconBlockRoot[:], buf[16:48])
	attData.Source = new(Checkpoint)
	if err := attData.Source.UnmarshalSSZ(buf[48:88]); err != nil {
		return err
	}
	attData.Target = new(Checkpoint)
	return attData.Target.UnmarshalSSZ(buf[88:128])
}

// SizeSSZ returns the ssz encoded size in bytes for the AttestationData object
func (attData *AttestationData) SizeSSZ() int {
	return attestationDataSize
}

// HashTreeRoot ssz hashes the AttestationData object
func (attData *AttestationData) HashTreeRoot() ([32]byte, error) {
	return attData.hashTreeRootWith(htr.NewHasher()), nil
}

func (attData *AttestationData) hashTreeRootWith(hasher htr.Hasher) [32]byte {
	if attData == nil {
		attData = &AttestationData{}
	}
	return htr.ContainerRoot(hasher, [][32]byte{
		htr.Uint64Root(uint64(attData.Slot)),
		htr.Uint64Root(uint64(attData.CommitteeIndex)),
		attData.BeaconBlockRoot,
		attData.Source.hashTreeRootWith(hasher),
		attData.Target.hashTreeRootWith(hasher),
	})
}

// MarshalSSZ ssz marshals the IndexedAttestation object
func (indexedAtt *IndexedAttestation) MarshalSSZ() ([]byte, error) {
	return indexedAtt.MarshalSSZTo(make([]byte, 0, indexedAtt.SizeSSZ()))
}

// MarshalSSZTo ssz marshals the IndexedAttestation object to a target array
func (indexedAtt *IndexedAttestation) MarshalSSZTo(buf []byte) ([]byte, error) {
	if len(indexedAtt.AttestingIndices) > fieldparams.MaxAttestingIndices {
		return nil, ssz.ErrListTooBig
	}
	dst := ssz.WriteOffset(buf, indexedAttestationFixed)
	data := indexedAtt.Data
	if data == nil {
		data = &AttestationData{}
	}
	dst, err := data.MarshalSSZTo(dst)
	if err != nil {
		return nil, err
	}
	dst = append(dst, indexedAtt.Signature[:]...)
	for _, idx := range indexedAtt.AttestingIndices {
		dst = ssz.MarshalUint64(dst, idx)
	}
	return dst, nil
}

// UnmarshalSSZ ssz unmarshals the IndexedAttestation object
func (indexedAtt *IndexedAttestation) UnmarshalSSZ(buf []byte) error {
	size := uint64(len(buf))
	if size < indexedAttestationFixed {
		return ssz.ErrSize
	}
	if o0 := ssz.ReadOffset(buf[0:4]); o0 != indexedAttestationFixed {
		return ssz.ErrOffset
	}
	indexedAtt.Data = new(AttestationData)
	if err := indexedAtt.Data.UnmarshalSSZ(buf[4 : 4+attestationDataSize]); err != nil {
		return err
	}
	copy(indexedAtt.Signature[:], buf[4+attestationDataSize:indexedAttestationFixed])

	tail := buf[indexedAttestationFixed:]
	if len(tail)%8 != 0 {
		return ssz.ErrSize
	}
	num := len(tail) / 8
	if num > fieldparams.MaxAttestingIndices {
		return ssz.ErrListTooBig
	}
	indexedAtt.AttestingIndices = make([]uint64, num)
	for i := 0; i < num; i++ {
		indexedAtt.AttestingIndices[i] = ssz.UnmarshallUint64(tail[i*8 : (i+1)*8])
	}
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the IndexedAttestation object
func (indexedAtt *IndexedAttestation) SizeSSZ() int {
	return indexedAttestationFixed + len(indexedAtt.AttestingIndices)*8
}

// HashTreeRoot ssz hashes the IndexedAttestation object
func (indexedAtt *IndexedAttestation) HashTreeRoot() ([32]byte, error) {
	hasher := htr.NewHasher()
	return indexedAtt.hashTreeRootWith(hasher)
}

func (indexedAtt *IndexedAttestation) hashTreeRootWith(hasher htr.Hasher) ([32]byte, error) {
	if indexedAtt == nil {
		indexedAtt = &IndexedAttestation{}
	}
	indicesRoot, err := htr.Uint64ListRoot(hasher, indexedAtt.AttestingIndices, fieldparams.MaxAttestingIndices)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not hash attesting indices")
	}
	return htr.ContainerRoot(hasher, [][32]byte{
		indicesRoot,
		indexedAtt.Data.hashTreeRootWith(hasher),
		htr.ByteVectorRoot(hasher, indexedAtt.Signature[:]),
	}), nil
}

// MarshalSSZ ssz marshals the AttesterSlashing object
func (a *AttesterSlashing) MarshalSSZ() ([]byte, error) {
	return a.MarshalSSZTo(make([]byte, 0, a.SizeSSZ()))
}

// MarshalSSZTo ssz marshals the AttesterSlashing object to a target array
func (a *AttesterSlashing) MarshalSSZTo(buf []byte) ([]byte, error) {
	att1, att2 := a.Attestation_1, a.Attestation_2
	if att1 == nil {
		att1 = &IndexedAttestation{}
	}
	if att2 == nil {
		att2 = &IndexedAttestation{}
	}
	dst := ssz.WriteOffset(buf, attesterSlashingFixed)
	dst = ssz.WriteOffset(dst, attesterSlashingFixed+att1.SizeSSZ())
	dst, err := att1.MarshalSSZTo(dst)
	if err != nil {
		return nil, errors.Wrap(err, "attestation_1")
	}
	if dst, err = att2.MarshalSSZTo(dst); err != nil {
		return nil, errors.Wrap(err, "attestation_2")
	}
	return dst, nil
}

// UnmarshalSSZ ssz unmarshals the AttesterSlashing object
func (a *AttesterSlashing) UnmarshalSSZ(buf []byte) error {
	size := uint64(len(buf))
	if size < attesterSlashingFixed {
		return ssz.ErrSize
	}
	o0 := ssz.ReadOffset(buf[0:4])
	o1 := ssz.ReadOffset(buf[4:8])
	if o0 != attesterSlashingFixed || o1 < o0 || o1 > size {
		return ssz.ErrOffset
	}
	a.Attestation_1 = new(IndexedAttestation)
	if err := a.Attestation_1.UnmarshalSSZ(buf[o0:o1]); err != nil {
		return errors.Wrap(err, "attestation_1")
	}
	a.Attestation_2 = new(IndexedAttestation)
	if err := a.Attestation_2.UnmarshalSSZ(buf[o1:]); err != nil {
		return errors.Wrap(err, "attestation_2")
	}
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the AttesterSlashing object
func (a *AttesterSlashing) SizeSSZ() int {
	size := attesterSlashingFixed
	for _, att := range []*IndexedAttestation{a.Attestation_1, a.Attestation_2} {
		if att == nil {
			att = &IndexedAttestation{}
		}
		size += att.SizeSSZ()
	}
	return size
}

// HashTreeRoot ssz hashes the AttesterSlashing object
func (a *AttesterSlashing) HashTreeRoot() ([32]byte, error) {
	hasher := htr.NewHasher()
	r1, err := a.Attestation_1.hashTreeRootWith(hasher)
	if err != nil {
		return [32]byte{}, err
	}
	r2, err := a.Attestation_2.hashTreeRootWith(hasher)
	if err != nil {
		return [32]byte{}, err
	}
	return htr.ContainerRoot(hasher, [][32]byte{r1, r2}), nil
}

var (
	_ ssz.Unmarshaler = (*Checkpoint)(nil)
	_ ssz.Unmarshaler = (*AttestationData)(nil)
	_ ssz.Unmarshaler = (*IndexedAttestation)(nil)
	_ ssz.Unmarshaler = (*AttesterSlashing)(nil)
)
