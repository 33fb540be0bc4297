package attestation

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
)

// IdSource represents the part of attestation that will be used to generate the Id.
type IdSource uint8

const (
	// Full generates the Id from the whole attestation.
	Full IdSource = iota
	// Data generates the Id from the tuple (slot, committee index, beacon block root, source, target).
	Data
)

// Id represents an attestation ID. Its uniqueness depends on the IdSource provided when constructing the Id.
type Id struct {
	hash [32]byte
}

// NewId --
func NewId(att *ethpb.IndexedAttestation, source IdSource) (Id, error) {
	if att == nil || att.Data == nil {
		return Id{}, errors.New("nil attestation")
	}

	switch source {
	case Full:
		h, err := att.HashTreeRoot()
		if err != nil {
			return Id{}, err
		}
		return Id{hash: h}, nil
	case Data:
		h, err := att.Data.HashTreeRoot()
		if err != nil {
			return Id{}, err
		}
		return Id{hash: h}, nil
	default:
		return Id{}, errors.New("invalid source requested")
	}
}

// Root --
func (id Id) Root() [32]byte {
	return id.hash
}

// String --
func (id Id) String() string {
	return hexutil.Encode(id.hash[:])
}
