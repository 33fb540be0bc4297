package primitives

import (
	"fmt"

	fssz "github.com/ferranbt/fastssz"
)

var _ fssz.Unmarshaler = (*Epoch)(nil)

// Epoch represents a single epoch.
type Epoch uint64

// Add increases epoch by x.
func (e Epoch) Add(x uint64) Epoch {
	return Epoch(uint64(e) + x)
}

// Sub subtracts x from the epoch, saturating at zero.
func (e Epoch) Sub(x uint64) Epoch {
	if uint64(e) < x {
		return 0
	}
	return Epoch(uint64(e) - x)
}

// UnmarshalSSZ --
func (e *Epoch) UnmarshalSSZ(buf []byte) error {
	if len(buf) != e.SizeSSZ() {
		return fmt.Errorf("expected buffer of length %d received %d", e.SizeSSZ(), len(buf))
	}
	*e = Epoch(fssz.UnmarshallUint64(buf))
	return nil
}

// MarshalSSZTo --
func (e *Epoch) MarshalSSZTo(dst []byte) ([]byte, error) {
	return fssz.MarshalUint64(dst, uint64(*e)), nil
}

// MarshalSSZ --
func (e *Epoch) MarshalSSZ() ([]byte, error) {
	return e.MarshalSSZTo(make([]byte, 0, e.SizeSSZ()))
}

// SizeSSZ --
func (e *Epoch) SizeSSZ() int {
	return 8
}
