package vm

import (
	"errors"
	"fmt"
)

// Memory is the VM's linear data space.
type Memory []int32

// NewMemory allocates a zeroed memory of size cells.
func NewMemory(size int) Memory {
	if size < 0 {
		size = 0
	}
	return make(Memory, size)
}

// Cap returns the number of addressable cells.
func (m Memory) Cap() int {
	return len(m)
}

// Load reads the cell at addr.
func (m Memory) Load(addr int) (int32, error) {
	if addr < 0 || addr >= len(m) {
		return 0, fmt.Errorf("%w: load at %d, capacity %d", ErrOutOfBounds, addr, len(m))
	}

	return m[addr], nil
}

// Store writes v to the cell at addr.
func (m Memory) Store(addr int, v int32) error {
	if addr < 0 || addr >= len(m) {
		return fmt.Errorf("%w: store at %d, capacity %d", ErrOutOfBounds, addr, len(m))
	}

	m[addr] = v
	return nil
}

var (
	ErrOutOfBounds   = errors.New("memory access out of bounds")
	ErrUnknownExtern = errors.New("unknown extern function")
)
