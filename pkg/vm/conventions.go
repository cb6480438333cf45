package vm

// Reserved memory layout shared with the code generator. Both sides must agree
// on these values; bump ConventionVersion whenever one of them changes.
const (
	ConventionVersion = 1

	// StackPointerAddr is the absolute address of the cell holding the stack
	// pointer. The stack pointer is one past the top of the current frame's
	// argument area.
	StackPointerAddr = 0
)

// DefaultMemorySize is the number of cells allocated when no size is given.
const DefaultMemorySize = 1 << 16
