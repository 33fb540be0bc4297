package kv

import (
	"bytes"
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
	"github.com/prysmaticlabs/slashing-oracle/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

// SaveIndexedAttestations persists a batch of indexed attestations keyed by
// target epoch and hash tree root. Saving an attestation twice is a no-op.
func (s *Store) SaveIndexedAttestations(ctx context.Context, atts []*ethpb.IndexedAttestation) error {
	ctx, span := trace.StartSpan(ctx, "SlasherDB.SaveIndexedAttestations")
	defer span.End()
	keys, values, err := encodeAttestations(atts)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return putAll(tx.Bucket(attestationsBucket), keys, values)
	})
}

// SaveAttestationsWithSlashings persists a detection round in a single
// transaction: either the attestations and the slashings found for them are
// all stored, or none are.
func (s *Store) SaveAttestationsWithSlashings(
	ctx context.Context, atts []*ethpb.IndexedAttestation, slashings []*ethpb.AttesterSlashing,
) error {
	ctx, span := trace.StartSpan(ctx, "SlasherDB.SaveAttestationsWithSlashings")
	defer span.End()
	attKeys, attValues, err := encodeAttestations(atts)
	if err != nil {
		return err
	}
	slashingKeys, slashingValues, err := encodeSlashings(slashings)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := putAll(tx.Bucket(attesterSlashingsBucket), slashingKeys, slashingValues); err != nil {
			return err
		}
		return putAll(tx.Bucket(attestationsBucket), attKeys, attValues)
	})
}

func encodeAttestations(atts []*ethpb.IndexedAttestation) (keys, values [][]byte, err error) {
	keys = make([][]byte, len(atts))
	values = make([][]byte, len(atts))
	for i, att := range atts {
		if att.GetData().GetTarget() == nil {
			return nil, nil, errors.Errorf("attestation at position %d is missing target", i)
		}
		root, err := att.HashTreeRoot()
		if err != nil {
			return nil, nil, errors.Wrapf(err, "could not hash attestation at position %d", i)
		}
		enc, err := encode(att)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "could not encode attestation at position %d", i)
		}
		keys[i] = attestationKey(att.Data.Target.Epoch, root)
		values[i] = enc
	}
	return keys, values, nil
}

func putAll(bkt *bolt.Bucket, keys, values [][]byte) error {
	for i := range keys {
		if err := bkt.Put(keys[i], values[i]); err != nil {
			return err
		}
	}
	return nil
}

// IndexedAttestations returns every stored attestation whose target epoch lies in
// [minTarget, maxTarget], ordered by target epoch.
func (s *Store) IndexedAttestations(
	ctx context.Context, minTarget, maxTarget primitives.Epoch,
) ([]*ethpb.IndexedAttestation, error) {
	ctx, span := trace.StartSpan(ctx, "SlasherDB.IndexedAttestations")
	defer span.End()
	if minTarget > maxTarget {
		return nil, errors.Errorf("min target epoch %d greater than max target epoch %d", minTarget, maxTarget)
	}
	atts := make([]*ethpb.IndexedAttestation, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(attestationsBucket).Cursor()
		maxKey := bytesutil.EpochToBytesBigEndian(maxTarget)
		for k, v := c.Seek(bytesutil.EpochToBytesBigEndian(minTarget)); k != nil; k, v = c.Next() {
			if bytes.Compare(k[:epochKeyLen], maxKey) > 0 {
				break
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			att, err := s.cachedAttestation(k, v)
			if err != nil {
				return errors.Wrapf(err, "could not decode attestation with target %d", targetFromKey(k))
			}
			atts = append(atts, att)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return atts, nil
}

// PruneAttestationsUntilEpoch deletes every stored attestation with a target
// epoch strictly below the given epoch.
func (s *Store) PruneAttestationsUntilEpoch(ctx context.Context, epoch primitives.Epoch) error {
	_, span := trace.StartSpan(ctx, "SlasherDB.PruneAttestationsUntilEpoch")
	defer span.End()
	pruned := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(attestationsBucket)
		c := bkt.Cursor()
		untilKey := bytesutil.EpochToBytesBigEndian(epoch)
		var stale [][]byte
		for k, _ := c.First(); k != nil && bytes.Compare(k[:epochKeyLen], untilKey) < 0; k, _ = c.Next() {
			stale = append(stale, bytes.Clone(k))
		}
		for _, k := range stale {
			s.attCache.Del(string(k))
			if err := bkt.Delete(k); err != nil {
				return err
			}
		}
		pruned = len(stale)
		return nil
	})
	if err != nil {
		return err
	}
	if pruned > 0 {
		log.WithField("untilEpoch", epoch).WithField("count", pruned).Debug("Pruned attestations")
	}
	return nil
}

// cachedAttestation decodes the value stored under key, serving a copy from the
// cache when possible. Keys are content addressed so a cached value never goes stale.
func (s *Store) cachedAttestation(key, value []byte) (*ethpb.IndexedAttestation, error) {
	if cached, ok := s.attCache.Get(string(key)); ok {
		if att, ok := cached.(*ethpb.IndexedAttestation); ok {
			return att.Copy(), nil
		}
	}
	att := &ethpb.IndexedAttestation{}
	if err := decode(value, att); err != nil {
		return nil, err
	}
	s.attCache.Set(string(key), att, int64(len(value)))
	return att.Copy(), nil
}
