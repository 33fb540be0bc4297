package primitives_test

import (
	"strings"
	"testing"

	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
)

func TestEpoch_Limit(t *testing.T) {
	e := primitives.Epoch(0)
	serializedObj := [7]byte{}
	err := e.UnmarshalSSZ(serializedObj[:])
	if err == nil || !strings.Contains(err.Error(), "expected buffer of length") {
		t.Errorf("Expected Error = %s, got: %v", "expected buffer of length", err)
	}
}

func TestEpoch_RoundTrip(t *testing.T) {
	e := primitives.Epoch(8)
	enc, err := e.MarshalSSZ()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	var decoded primitives.Epoch
	if err := decoded.UnmarshalSSZ(enc); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if decoded != e {
		t.Errorf("Unequal: %v = %v", decoded, e)
	}
}

func TestEpoch_Sub(t *testing.T) {
	if got := primitives.Epoch(5).Sub(3); got != 2 {
		t.Errorf("Expected 2, got %d", got)
	}
	if got := primitives.Epoch(2).Sub(3); got != 0 {
		t.Errorf("Expected saturation at 0, got %d", got)
	}
}

func TestSlot_DivSlot(t *testing.T) {
	if got := primitives.Slot(65).DivSlot(32); got != 2 {
		t.Errorf("Expected 2, got %d", got)
	}
	if got := primitives.Slot(65).DivSlot(0); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
	if got := primitives.Slot(65).ModSlot(32); got != 1 {
		t.Errorf("Expected 1, got %d", got)
	}
}
