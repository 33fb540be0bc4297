package db

import "github.com/prysmaticlabs/slashing-oracle/slasher/db/iface"

// ReadOnlyDatabase exposes the slasher DB read only functions.
type ReadOnlyDatabase = iface.ReadOnlyDatabase

// WriteAccessDatabase exposes the slasher DB writing functions.
type WriteAccessDatabase = iface.WriteAccessDatabase

// Database defines the necessary methods for the slasher DB which may be implemented by any
// key-value or relational database in practice. This is the full database interface which should
// not be used often. Prefer a more restrictive interface in this package.
type Database = iface.Database
