package primitives

// ValidatorIndex in eth2.
type ValidatorIndex uint64

// CommitteeIndex of a beacon committee within a slot.
type CommitteeIndex uint64
