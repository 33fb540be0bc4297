// Package iface defines the actual database interface used
// by the slashing detection service.
package iface

import (
	"context"
	"io"

	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
)

// ReadOnlyDatabase represents a read only database with functions that do not modify the DB.
type ReadOnlyDatabase interface {
	// IndexedAttestations related methods.
	IndexedAttestations(ctx context.Context, minTarget, maxTarget primitives.Epoch) ([]*ethpb.IndexedAttestation, error)

	// AttesterSlashing related methods.
	HasAttesterSlashing(ctx context.Context, slashing *ethpb.AttesterSlashing) (bool, error)
	AttesterSlashings(ctx context.Context) ([]*ethpb.AttesterSlashing, error)
}

// WriteAccessDatabase represents a write access database with only functions that can modify the DB.
type WriteAccessDatabase interface {
	SaveIndexedAttestations(ctx context.Context, atts []*ethpb.IndexedAttestation) error
	SaveAttesterSlashings(ctx context.Context, slashings []*ethpb.AttesterSlashing) error
	SaveAttestationsWithSlashings(ctx context.Context, atts []*ethpb.IndexedAttestation, slashings []*ethpb.AttesterSlashing) error
	PruneAttestationsUntilEpoch(ctx context.Context, epoch primitives.Epoch) error
}

// Database interface defines the full set of methods exposed by the history store.
type Database interface {
	io.Closer
	ReadOnlyDatabase
	WriteAccessDatabase

	DatabasePath() string
	ClearDB() error
	Size() (int64, error)
}
