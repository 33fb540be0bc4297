package oracle

import (
	"fmt"

	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
	"github.com/prysmaticlabs/slashing-oracle/container/slice"
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1/slashings"
)

// IsValidSlashing reports whether Attestation_1 of s is a double vote with, or
// surrounds, Attestation_2.
func IsValidSlashing(s *ethpb.AttesterSlashing) bool {
	if s == nil || s.Attestation_1 == nil || s.Attestation_2 == nil {
		return false
	}
	a, b := s.Attestation_1, s.Attestation_2
	return !a.Equal(b) && slashings.IsSlashable(a, b)
}

// SlashedValidators returns the sorted set of validators that signed both
// attestations of at least one slashing. Every slashing is checked first: the
// first one that is not a double or surround vote aborts the call with an
// *InvalidSlashingError.
func SlashedValidators(slashingsList []*ethpb.AttesterSlashing) ([]primitives.ValidatorIndex, error) {
	culprits := make([]uint64, 0)
	for i, s := range slashingsList {
		if !IsValidSlashing(s) {
			return nil, &InvalidSlashingError{Index: i, Slashing: s}
		}
		culprits = append(culprits, slice.Intersection(
			s.Attestation_1.AttestingIndices,
			s.Attestation_2.AttestingIndices,
		)...)
	}
	return toValidatorIndices(slice.Set(culprits)), nil
}

// SlashedValidatorsFromAttestations is SlashedValidators(DetectSlashings(atts)).
func SlashedValidatorsFromAttestations(atts []*ethpb.IndexedAttestation) []primitives.ValidatorIndex {
	culprits, err := SlashedValidators(DetectSlashings(atts))
	if err != nil {
		// Detection only emits conflicting pairs.
		panic(fmt.Sprintf("detected slashing failed validation: %v", err))
	}
	return culprits
}

func toValidatorIndices(indices []uint64) []primitives.ValidatorIndex {
	out := make([]primitives.ValidatorIndex, len(indices))
	for i, idx := range indices {
		out[i] = primitives.ValidatorIndex(idx)
	}
	return out
}
