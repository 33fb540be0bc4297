package field_params

const (
	Preset                    = "mainnet"
	RootLength                = 32   // RootLength defines the byte length of a Merkle root.
	BLSSignatureLength        = 96   // BLSSignatureLength defines the byte length of a BLSSignature.
	MaxValidatorsPerCommittee = 2048 // MAX_VALIDATORS_PER_COMMITTEE
	MaxCommitteesPerSlot      = 64   // MAX_COMMITTEES_PER_SLOT
	// MaxAttestingIndices bounds the attesting indices of an indexed attestation. Since
	// Electra an attestation spans every committee of its slot.
	MaxAttestingIndices = MaxValidatorsPerCommittee * MaxCommitteesPerSlot
	SlotsPerEpoch       = 32 // SlotsPerEpoch defines the number of slots per epoch.
)
