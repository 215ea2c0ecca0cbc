package vm

import (
	"maps"
	"slices"
)

const (
	MEMORY_LIMIT = 1 << 20 // Maximum addressable memory slots
)

// Memory is the sparse addressable store: a map from non-negative address
// to signed 32-bit value. Addresses are never implicitly allocated; a load
// from an unset address yields no value. Writes are bounded by MEMORY_LIMIT,
// reads are not.
type Memory struct {
	Cells map[int32]int32
}

// Store writes value at addr. It reports false when addr lies outside
// [0, MEMORY_LIMIT), in which case nothing is written.
func (m *Memory) Store(addr, value int32) (ok bool) {
	if addr < 0 || addr >= MEMORY_LIMIT {
		return
	}

	if m.Cells == nil {
		m.Cells = make(map[int32]int32, 16)
	}
	m.Cells[addr] = value

	return true
}

// Load reads the value at addr, if the address has been set.
func (m *Memory) Load(addr int32) (value int32, ok bool) {
	value, ok = m.Cells[addr]
	return
}

// Len returns the number of set addresses.
func (m *Memory) Len() int {
	return len(m.Cells)
}

// Addresses returns the set addresses in ascending order.
func (m *Memory) Addresses() []int32 {
	return slices.Sorted(maps.Keys(m.Cells))
}

// Reset discards all set addresses.
func (m *Memory) Reset() {
	clear(m.Cells)
}
