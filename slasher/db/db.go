package db

import (
	"context"

	"github.com/prysmaticlabs/slashing-oracle/slasher/db/kv"
)

// NewDB initializes a new DB backed by a bolt key-value store at dirPath.
func NewDB(ctx context.Context, dirPath string, cfg *kv.Config) (Database, error) {
	return kv.NewKVStore(ctx, dirPath, cfg)
}
