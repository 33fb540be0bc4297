package slashings

import (
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
)

// SlashingKind is an enum representing the type of slashable
// offense detected by slasher, useful for conditionals or for logging.
type SlashingKind int

const (
	NotSlashable SlashingKind = iota
	DoubleVote
	SurroundingVote
	SurroundedVote
)

func (k SlashingKind) String() string {
	switch k {
	case NotSlashable:
		return "NOT_SLASHABLE"
	case DoubleVote:
		return "DOUBLE_VOTE"
	case SurroundingVote:
		return "SURROUNDING_VOTE"
	case SurroundedVote:
		return "SURROUNDED_VOTE"
	default:
		return "UNKNOWN"
	}
}

// Classify returns the kind of offense the pair represents, seen from a.
func Classify(a, b *ethpb.IndexedAttestation) SlashingKind {
	switch {
	case IsDoubleVote(a, b):
		return DoubleVote
	case IsSurroundVote(a, b):
		return SurroundingVote
	case IsSurroundVote(b, a):
		return SurroundedVote
	default:
		return NotSlashable
	}
}
