package slashings

import (
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
)

// IsSurroundVote checks if the first attestation surrounds the second one.
// Parameter order matters: a vote never surrounds a vote that surrounds it.
func IsSurroundVote(a, b *ethpb.IndexedAttestation) bool {
	if !wellFormed(a) || !wellFormed(b) {
		return false
	}
	return a.Data.Source.Epoch < b.Data.Source.Epoch && a.Data.Target.Epoch > b.Data.Target.Epoch
}

// IsSlashable reports whether the ordered pair is a double vote or the first
// attestation surrounds the second.
func IsSlashable(a, b *ethpb.IndexedAttestation) bool {
	return IsDoubleVote(a, b) || IsSurroundVote(a, b)
}
