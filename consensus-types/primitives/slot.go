package primitives

// Slot represents a single slot.
type Slot uint64

// Add increases slot by x.
func (s Slot) Add(x uint64) Slot {
	return Slot(uint64(s) + x)
}

// DivSlot divides the slot by y, returning zero when y is zero.
func (s Slot) DivSlot(y Slot) Slot {
	if y == 0 {
		return 0
	}
	return s / y
}

// ModSlot returns s % y, returning zero when y is zero.
func (s Slot) ModSlot(y Slot) Slot {
	if y == 0 {
		return 0
	}
	return s % y
}
