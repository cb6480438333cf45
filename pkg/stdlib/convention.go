// Package stdlib implements the extern calling convention and the standard
// library functions built on it.
//
// On entry to an extern the stack pointer cell (vm.StackPointerAddr) holds the
// address one past the last argument. Arguments are counted from the top of
// the frame, so offset 1 is the argument pushed last. A return value lives in
// the cell just below the argument block.
package stdlib

import "spooky/pkg/vm"

// Accessor is the bounds-checked memory interface the convention is built on.
type Accessor interface {
	Load(addr int) (int32, error)
	Store(addr int, v int32) error
}

// Arg returns the argument at offset from the top of the current frame. The
// offset is not checked against the callee's arity; only addresses outside
// memory fail, with vm.ErrOutOfBounds.
func Arg(m Accessor, offset int) (int32, error) {
	sp, err := m.Load(vm.StackPointerAddr)
	if err != nil {
		return 0, err
	}

	return m.Load(int(sp) - offset)
}

// SetReturn stores value as the return value of a call whose arguments occupy
// argSize cells. It fails with vm.ErrOutOfBounds if the caller did not leave
// room for the result below the frame.
func SetReturn(m Accessor, argSize int, value int32) error {
	sp, err := m.Load(vm.StackPointerAddr)
	if err != nil {
		return err
	}

	return m.Store(int(sp)-argSize-1, value)
}
