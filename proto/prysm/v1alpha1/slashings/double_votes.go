// Package slashings defines the conflict predicates that make a pair of
// attestations slashable.
package slashings

import (
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
)

// IsDoubleVote checks if both attestations vote for the same target epoch
// with different attestation data.
//
// Spec pseudocode definition:
//
//	def is_slashable_attestation_data(data_1: AttestationData, data_2: AttestationData) -> bool:
//	  """
//	  Check if ``data_1`` and ``data_2`` are slashable according to Casper FFG rules.
//	  """
//	  return (
//	      # Double vote
//	      (data_1 != data_2 and data_1.target.epoch == data_2.target.epoch) or
//	      # Surround vote
//	      (data_1.source.epoch < data_2.source.epoch and data_2.target.epoch < data_1.target.epoch)
//	  )
func IsDoubleVote(a, b *ethpb.IndexedAttestation) bool {
	if !wellFormed(a) || !wellFormed(b) {
		return false
	}
	return a.Data.Target.Epoch == b.Data.Target.Epoch && !a.Data.Equal(b.Data)
}

func wellFormed(att *ethpb.IndexedAttestation) bool {
	return att != nil && att.Data != nil && att.Data.Source != nil && att.Data.Target != nil
}
