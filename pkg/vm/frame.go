package vm

import "fmt"

// Frame describes the memory laid out by the caller for one extern call.
type Frame struct {
	Base     int  // first cell of the frame (the result slot when Reserved)
	ArgSize  int  // number of argument cells
	Reserved bool // whether a result slot sits below the arguments
}

// SP returns the stack pointer value for the frame: one past the last argument.
func (f Frame) SP() int {
	sp := f.Base + f.ArgSize
	if f.Reserved {
		sp++
	}
	return sp
}

// ResultAddr returns the address the callee writes its return value to.
// Without a reserved slot this is the cell just below Base.
func (f Frame) ResultAddr() int {
	return f.SP() - f.ArgSize - 1
}

// ArgAddr returns the address of the argument at the 1-based offset from the
// top of the frame.
func (f Frame) ArgAddr(offset int) int {
	return f.SP() - offset
}

// check verifies that every cell of the frame lies above the stack pointer
// cell and inside memory of the given capacity.
func (f Frame) check(capacity int) error {
	lo, hi := f.Base, f.SP()
	if lo == hi {
		return nil
	}

	if lo <= StackPointerAddr || hi > capacity {
		return fmt.Errorf("%w: frame [%d, %d) outside [%d, %d)", ErrOutOfBounds, lo, hi, StackPointerAddr+1, capacity)
	}

	return nil
}

// Call lays out a frame at base, points the stack pointer at it and invokes the
// named extern. Arguments are pushed in order, so the last one ends up at
// offset 1. When reserve is set a zeroed result slot is placed below the
// arguments and its value is returned after the call. The previous stack
// pointer is restored whether or not the call fails. A frame that would reach
// the stack pointer cell or run past memory is rejected before anything is
// written.
func (v *VM) Call(name string, base int, reserve bool, args ...int32) (int32, error) {
	f := Frame{Base: base, ArgSize: len(args), Reserved: reserve}

	prev, err := v.StackPointer()
	if err != nil {
		return 0, err
	}

	if err := f.check(v.mem.Cap()); err != nil {
		return 0, err
	}

	if reserve {
		if err := v.Store(f.ResultAddr(), 0); err != nil {
			return 0, err
		}
	}

	for i, a := range args {
		if err := v.Store(f.ArgAddr(len(args)-i), a); err != nil {
			return 0, err
		}
	}

	if err := v.SetStackPointer(int32(f.SP())); err != nil {
		return 0, err
	}
	defer v.SetStackPointer(prev)

	if err := v.CallExtern(name); err != nil {
		return 0, err
	}

	if !reserve {
		return 0, nil
	}

	return v.Load(f.ResultAddr())
}
