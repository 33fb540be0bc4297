package beacon

import (
	"github.com/attestantio/go-eth2-client/spec/electra"
	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
)

func attesterSlashingsFromPhase0(slashings []*phase0.AttesterSlashing) ([]*ethpb.AttesterSlashing, error) {
	out := make([]*ethpb.AttesterSlashing, 0, len(slashings))
	for i, s := range slashings {
		if s == nil || s.Attestation1 == nil || s.Attestation2 == nil {
			return nil, errors.Errorf("attester slashing %d is missing an attestation", i)
		}
		att1, err := indexedAttestation(s.Attestation1.AttestingIndices, s.Attestation1.Data, s.Attestation1.Signature)
		if err != nil {
			return nil, errors.Wrapf(err, "attester slashing %d", i)
		}
		att2, err := indexedAttestation(s.Attestation2.AttestingIndices, s.Attestation2.Data, s.Attestation2.Signature)
		if err != nil {
			return nil, errors.Wrapf(err, "attester slashing %d", i)
		}
		out = append(out, &ethpb.AttesterSlashing{Attestation_1: att1, Attestation_2: att2})
	}
	return out, nil
}

func attesterSlashingsFromElectra(slashings []*electra.AttesterSlashing) ([]*ethpb.AttesterSlashing, error) {
	out := make([]*ethpb.AttesterSlashing, 0, len(slashings))
	for i, s := range slashings {
		if s == nil || s.Attestation1 == nil || s.Attestation2 == nil {
			return nil, errors.Errorf("attester slashing %d is missing an attestation", i)
		}
		att1, err := indexedAttestation(s.Attestation1.AttestingIndices, s.Attestation1.Data, s.Attestation1.Signature)
		if err != nil {
			return nil, errors.Wrapf(err, "attester slashing %d", i)
		}
		att2, err := indexedAttestation(s.Attestation2.AttestingIndices, s.Attestation2.Data, s.Attestation2.Signature)
		if err != nil {
			return nil, errors.Wrapf(err, "attester slashing %d", i)
		}
		out = append(out, &ethpb.AttesterSlashing{Attestation_1: att1, Attestation_2: att2})
	}
	return out, nil
}

func indexedAttestation(
	indices []uint64, data *phase0.AttestationData, sig phase0.BLSSignature,
) (*ethpb.IndexedAttestation, error) {
	if data == nil || data.Source == nil || data.Target == nil {
		return nil, errors.New("attestation data is missing source or target")
	}
	cp := make([]uint64, len(indices))
	copy(cp, indices)
	return &ethpb.IndexedAttestation{
		AttestingIndices: cp,
		Data: &ethpb.AttestationData{
			Slot:            primitives.Slot(data.Slot),
			CommitteeIndex:  primitives.CommitteeIndex(data.Index),
			BeaconBlockRoot: [32]byte(data.BeaconBlockRoot),
			Source:          checkpoint(data.Source),
			Target:          checkpoint(data.Target),
		},
		Signature: [96]byte(sig),
	}, nil
}

func checkpoint(cp *phase0.Checkpoint) *ethpb.Checkpoint {
	return &ethpb.Checkpoint{
		Epoch: primitives.Epoch(cp.Epoch),
		Root:  [32]byte(cp.Root),
	}
}
