package oracle

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/pkg/errors"
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
)

// ErrInvalidSlashing is matched by every error reporting an attester slashing
// whose attestations do not conflict.
var ErrInvalidSlashing = errors.New("invalid attester slashing")

// InvalidSlashingError carries the offending slashing and its position in the
// input.
type InvalidSlashingError struct {
	Index    int
	Slashing *ethpb.AttesterSlashing
}

func (e *InvalidSlashingError) Error() string {
	return fmt.Sprintf("%v at position %d: %# v", ErrInvalidSlashing, e.Index, pretty.Formatter(e.Slashing))
}

// Is --
func (e *InvalidSlashingError) Is(target error) bool {
	return target == ErrInvalidSlashing
}
