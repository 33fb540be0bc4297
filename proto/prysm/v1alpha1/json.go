package eth

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/go-bitfield"
	fieldparams "github.com/prysmaticlabs/slashing-oracle/config/fieldparams"
	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
)

// Uint64String is a uint64 rendered as a decimal string, the way the beacon API
// encodes integers. Unquoted numbers are accepted on input.
type Uint64String uint64

// MarshalJSON --
func (u Uint64String) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(u), 10))
}

// UnmarshalJSON --
func (u *Uint64String) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return errors.Wrapf(err, "could not parse %s as uint64", string(b))
	}
	*u = Uint64String(v)
	return nil
}

type checkpointJSON struct {
	Epoch Uint64String `json:"epoch"`
	Root  string       `json:"root"`
}

type attestationDataJSON struct {
	Slot            Uint64String `json:"slot"`
	CommitteeIndex  Uint64String `json:"index"`
	BeaconBlockRoot string       `json:"beacon_block_root"`
	Source          *Checkpoint  `json:"source"`
	Target          *Checkpoint  `json:"target"`
}

type indexedAttestationJSON struct {
	AttestingIndices []Uint64String   `json:"attesting_indices"`
	Data             *AttestationData `json:"data"`
	Signature        string           `json:"signature"`
}

type attesterSlashingJSON struct {
	Attestation_1 *IndexedAttestation `json:"attestation_1"`
	Attestation_2 *IndexedAttestation `json:"attestation_2"`
}

type attestationJSON struct {
	AggregationBits string           `json:"aggregation_bits"`
	Data            *AttestationData `json:"data"`
	Signature       string           `json:"signature"`
}

func decodeFixedHex(field, s string, dst []byte) error {
	b, err := hexutil.Decode(s)
	if err != nil {
		return errors.Wrapf(err, "invalid %s", field)
	}
	if len(b) != len(dst) {
		return errors.Errorf("invalid %s: expected %d bytes, got %d", field, len(dst), len(b))
	}
	copy(dst, b)
	return nil
}

// decodeSignature accepts a missing signature as the zero signature.
func decodeSignature(s string, dst []byte) error {
	if s == "" {
		return nil
	}
	return decodeFixedHex("signature", s, dst)
}

// MarshalJSON --
func (cp *Checkpoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(&checkpointJSON{
		Epoch: Uint64String(cp.Epoch),
		Root:  hexutil.Encode(cp.Root[:]),
	})
}

// UnmarshalJSON --
func (cp *Checkpoint) UnmarshalJSON(b []byte) error {
	var enc checkpointJSON
	if err := json.Unmarshal(b, &enc); err != nil {
		return err
	}
	cp.Epoch = primitives.Epoch(enc.Epoch)
	return decodeFixedHex("checkpoint root", enc.Root, cp.Root[:])
}

// MarshalJSON --
func (attData *AttestationData) MarshalJSON() ([]byte, error) {
	return json.Marshal(&attestationDataJSON{
		Slot:            Uint64String(attData.Slot),
		CommitteeIndex:  Uint64String(attData.CommitteeIndex),
		BeaconBlockRoot: hexutil.Encode(attData.BeaconBlockRoot[:]),
		Source:          attData.Source,
		Target:          attData.Target,
	})
}

// UnmarshalJSON --
func (attData *AttestationData) UnmarshalJSON(b []byte) error {
	var enc attestationDataJSON
	if err := json.Unmarshal(b, &enc); err != nil {
		return err
	}
	if enc.Source == nil || enc.Target == nil {
		return errors.New("attestation data is missing source or target")
	}
	attData.Slot = primitives.Slot(enc.Slot)
	attData.CommitteeIndex = primitives.CommitteeIndex(enc.CommitteeIndex)
	attData.Source = enc.Source
	attData.Target = enc.Target
	return decodeFixedHex("beacon block root", enc.BeaconBlockRoot, attData.BeaconBlockRoot[:])
}

// MarshalJSON --
func (indexedAtt *IndexedAttestation) MarshalJSON() ([]byte, error) {
	indices := make([]Uint64String, len(indexedAtt.AttestingIndices))
	for i, idx := range indexedAtt.AttestingIndices {
		indices[i] = Uint64String(idx)
	}
	return json.Marshal(&indexedAttestationJSON{
		AttestingIndices: indices,
		Data:             indexedAtt.Data,
		Signature:        hexutil.Encode(indexedAtt.Signature[:]),
	})
}

// UnmarshalJSON --
func (indexedAtt *IndexedAttestation) UnmarshalJSON(b []byte) error {
	var enc indexedAttestationJSON
	if err := json.Unmarshal(b, &enc); err != nil {
		return err
	}
	if enc.Data == nil {
		return errors.New("indexed attestation is missing data")
	}
	if len(enc.AttestingIndices) > fieldparams.MaxAttestingIndices {
		return errors.Errorf("too many attesting indices: %d", len(enc.AttestingIndices))
	}
	indexedAtt.AttestingIndices = make([]uint64, len(enc.AttestingIndices))
	for i, idx := range enc.AttestingIndices {
		indexedAtt.AttestingIndices[i] = uint64(idx)
	}
	indexedAtt.Data = enc.Data
	return decodeSignature(enc.Signature, indexedAtt.Signature[:])
}

// MarshalJSON --
func (a *AttesterSlashing) MarshalJSON() ([]byte, error) {
	return json.Marshal(&attesterSlashingJSON{
		Attestation_1: a.Attestation_1,
		Attestation_2: a.Attestation_2,
	})
}

// UnmarshalJSON --
func (a *AttesterSlashing) UnmarshalJSON(b []byte) error {
	var enc attesterSlashingJSON
	if err := json.Unmarshal(b, &enc); err != nil {
		return err
	}
	if enc.Attestation_1 == nil || enc.Attestation_2 == nil {
		return errors.New("attester slashing is missing an attestation")
	}
	a.Attestation_1 = enc.Attestation_1
	a.Attestation_2 = enc.Attestation_2
	return nil
}

// MarshalJSON --
func (att *Attestation) MarshalJSON() ([]byte, error) {
	return json.Marshal(&attestationJSON{
		AggregationBits: hexutil.Encode(att.AggregationBits),
		Data:            att.Data,
		Signature:       hexutil.Encode(att.Signature[:]),
	})
}

// UnmarshalJSON --
func (att *Attestation) UnmarshalJSON(b []byte) error {
	var enc attestationJSON
	if err := json.Unmarshal(b, &enc); err != nil {
		return err
	}
	if enc.Data == nil {
		return errors.New("attestation is missing data")
	}
	bits, err := hexutil.Decode(enc.AggregationBits)
	if err != nil {
		return errors.Wrap(err, "invalid aggregation bits")
	}
	att.AggregationBits = bitfield.Bitlist(bits)
	att.Data = enc.Data
	return decodeSignature(enc.Signature, att.Signature[:])
}
