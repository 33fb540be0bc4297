package kv

import (
	"context"

	"github.com/pkg/errors"
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

// SaveAttesterSlashings persists attester slashings keyed by their hash tree root.
func (s *Store) SaveAttesterSlashings(ctx context.Context, slashings []*ethpb.AttesterSlashing) error {
	_, span := trace.StartSpan(ctx, "SlasherDB.SaveAttesterSlashings")
	defer span.End()
	keys, values, err := encodeSlashings(slashings)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return putAll(tx.Bucket(attesterSlashingsBucket), keys, values)
	})
}

func encodeSlashings(slashings []*ethpb.AttesterSlashing) (keys, values [][]byte, err error) {
	keys = make([][]byte, len(slashings))
	values = make([][]byte, len(slashings))
	for i, slashing := range slashings {
		if slashing == nil || slashing.Attestation_1 == nil || slashing.Attestation_2 == nil {
			return nil, nil, errors.Errorf("attester slashing at position %d is missing an attestation", i)
		}
		root, err := slashing.HashTreeRoot()
		if err != nil {
			return nil, nil, errors.Wrapf(err, "could not hash attester slashing at position %d", i)
		}
		enc, err := encode(slashing)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "could not encode attester slashing at position %d", i)
		}
		keys[i] = root[:]
		values[i] = enc
	}
	return keys, values, nil
}

// HasAttesterSlashing checks whether the slashing, in either attestation order,
// has already been persisted.
func (s *Store) HasAttesterSlashing(ctx context.Context, slashing *ethpb.AttesterSlashing) (bool, error) {
	_, span := trace.StartSpan(ctx, "SlasherDB.HasAttesterSlashing")
	defer span.End()
	if slashing == nil {
		return false, errors.New("nil attester slashing")
	}
	root, err := slashing.HashTreeRoot()
	if err != nil {
		return false, err
	}
	swapped := &ethpb.AttesterSlashing{
		Attestation_1: slashing.Attestation_2,
		Attestation_2: slashing.Attestation_1,
	}
	swappedRoot, err := swapped.HashTreeRoot()
	if err != nil {
		return false, err
	}
	var exists bool
	err = s.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(attesterSlashingsBucket)
		exists = bkt.Get(root[:]) != nil || bkt.Get(swappedRoot[:]) != nil
		return nil
	})
	return exists, err
}

// AttesterSlashings returns every persisted attester slashing.
func (s *Store) AttesterSlashings(ctx context.Context) ([]*ethpb.AttesterSlashing, error) {
	_, span := trace.StartSpan(ctx, "SlasherDB.AttesterSlashings")
	defer span.End()
	slashings := make([]*ethpb.AttesterSlashing, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(attesterSlashingsBucket).ForEach(func(_, v []byte) error {
			slashing := &ethpb.AttesterSlashing{}
			if err := decode(v, slashing); err != nil {
				return err
			}
			slashings = append(slashings, slashing)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return slashings, nil
}
