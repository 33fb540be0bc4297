package oracle

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
	"github.com/prysmaticlabs/slashing-oracle/container/slice"
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
)

// Report is the outcome of checking a detector's findings against the
// exhaustive scan of the same attestations.
type Report struct {
	// Unexpected holds reported slashings that are not double or surround votes.
	Unexpected []*ethpb.AttesterSlashing
	// Missed holds validators the scan finds culpable that no valid reported
	// slashing covers.
	Missed []primitives.ValidatorIndex
	// Covered holds the culpable validators of the valid reported slashings.
	Covered []primitives.ValidatorIndex
}

// Consistent reports whether the findings match the scan exactly.
func (r *Report) Consistent() bool {
	return len(r.Unexpected) == 0 && len(r.Missed) == 0
}

// Compare checks found against atts, the attestations the detector saw.
func Compare(found []*ethpb.AttesterSlashing, atts []*ethpb.IndexedAttestation) (*Report, error) {
	for i, att := range atts {
		if att == nil || att.Data == nil || att.Data.Source == nil || att.Data.Target == nil {
			return nil, errors.Errorf("attestation at position %d is missing data", i)
		}
	}
	report := &Report{
		Unexpected: make([]*ethpb.AttesterSlashing, 0),
	}
	valid := make([]*ethpb.AttesterSlashing, 0, len(found))
	for _, s := range found {
		if IsValidSlashing(s) {
			valid = append(valid, s)
		} else {
			report.Unexpected = append(report.Unexpected, s)
		}
	}
	covered, err := SlashedValidators(valid)
	if err != nil {
		return nil, errors.Wrap(err, "could not compute covered validators")
	}
	expected := SlashedValidatorsFromAttestations(atts)
	report.Covered = covered
	report.Missed = slice.Not(expected, covered)
	return report, nil
}
