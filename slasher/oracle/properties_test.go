package oracle_test

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1/slashings"
	"github.com/prysmaticlabs/slashing-oracle/slasher/oracle"
	"github.com/prysmaticlabs/slashing-oracle/testing/assert"
	"github.com/prysmaticlabs/slashing-oracle/testing/require"
	"github.com/prysmaticlabs/slashing-oracle/testing/util"
)

// randomBatch builds a batch over a small epoch and validator range so that
// conflicts are frequent.
func randomBatch(fuzzer *fuzz.Fuzzer) []*ethpb.IndexedAttestation {
	var n uint8
	fuzzer.Fuzz(&n)
	atts := make([]*ethpb.IndexedAttestation, 0, n%12)
	for i := 0; i < int(n%12); i++ {
		var source, span, root, mask uint8
		fuzzer.Fuzz(&source)
		fuzzer.Fuzz(&span)
		fuzzer.Fuzz(&root)
		fuzzer.Fuzz(&mask)
		indices := make([]uint64, 0, 8)
		for v := uint64(0); v < 8; v++ {
			if mask&(1<<v) != 0 {
				indices = append(indices, v)
			}
		}
		s := primitives.Epoch(source % 5)
		atts = append(atts, util.IndexedAtt(indices, s, s+primitives.Epoch(span%5), uint64(root%2)))
	}
	return atts
}

func TestProperties_Fuzz(t *testing.T) {
	fuzzer := fuzz.NewWithSeed(0)
	for round := 0; round < 300; round++ {
		atts := randomBatch(fuzzer)
		found := oracle.DetectSlashings(atts)

		// No self pairs, and every reported pair conflicts.
		for _, s := range found {
			assert.Equal(t, false, s.Attestation_1.Equal(s.Attestation_2))
			assert.Equal(t, true, slashings.IsSlashable(s.Attestation_1, s.Attestation_2))
		}

		// Every conflicting unordered pair is reported.
		for _, a := range atts {
			for _, b := range atts {
				if a.Equal(b) || !slashings.IsSlashable(a, b) {
					continue
				}
				assert.Equal(t, true, containsPair(found, a, b), "missing pair")
			}
		}

		// Composition.
		culprits, err := oracle.SlashedValidators(found)
		require.NoError(t, err)
		assert.DeepEqual(t, culprits, oracle.SlashedValidatorsFromAttestations(atts))

		// The detector's own findings are consistent with the scan.
		report, err := oracle.Compare(found, atts)
		require.NoError(t, err)
		assert.Equal(t, true, report.Consistent())
	}
}

func containsPair(found []*ethpb.AttesterSlashing, a, b *ethpb.IndexedAttestation) bool {
	for _, s := range found {
		if (s.Attestation_1.Equal(a) && s.Attestation_2.Equal(b)) ||
			(s.Attestation_1.Equal(b) && s.Attestation_2.Equal(a)) {
			return true
		}
	}
	return false
}
