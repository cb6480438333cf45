package vm

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sort"

	"github.com/charmbracelet/log"
)

// Extern is the body of a natively implemented function. It locates its own
// arguments through the calling convention and reports faults as errors.
type Extern func(*VM) error

// VM holds the state an extern can reach: memory, the output stream and the
// random source. A VM is not safe for concurrent use.
type VM struct {
	mem     Memory
	out     io.Writer
	rng     *rand.Rand
	externs map[string]Extern

	size  int // memory size in cells
	calls int // extern calls made
}

type Option func(*VM)

// WithMemorySize sets the number of memory cells
func WithMemorySize(n int) Option {
	return func(v *VM) { v.size = n }
}

// WithWriter sets the output stream used by the print externs
func WithWriter(w io.Writer) Option {
	return func(v *VM) { v.out = w }
}

// WithRand sets the random source used by the random extern
func WithRand(r *rand.Rand) Option {
	return func(v *VM) { v.rng = r }
}

// WithSeed seeds a deterministic random source
func WithSeed(seed uint64) Option {
	return func(v *VM) { v.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithExtern registers fn under name, replacing any previous binding
func WithExtern(name string, fn Extern) Option {
	return func(v *VM) { v.externs[name] = fn }
}

// New creates a VM with zeroed memory.
func New(opts ...Option) *VM {
	v := &VM{
		externs: make(map[string]Extern),
		size:    DefaultMemorySize,
	}

	for _, o := range opts {
		o(v)
	}

	v.mem = NewMemory(v.size)

	if v.out == nil {
		v.out = os.Stdout
	}

	if v.rng == nil {
		v.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return v
}

// Memory returns the VM's memory
func (v *VM) Memory() Memory {
	return v.mem
}

// Load reads a memory cell
func (v *VM) Load(addr int) (int32, error) {
	return v.mem.Load(addr)
}

// Store writes a memory cell
func (v *VM) Store(addr int, val int32) error {
	return v.mem.Store(addr, val)
}

// Stdout returns the output stream
func (v *VM) Stdout() io.Writer {
	return v.out
}

// Rand returns the VM's random source
func (v *VM) Rand() *rand.Rand {
	return v.rng
}

// StackPointer reads the stack pointer cell
func (v *VM) StackPointer() (int32, error) {
	return v.mem.Load(StackPointerAddr)
}

// SetStackPointer writes the stack pointer cell. Only the caller side of a
// call uses this; externs never move the stack pointer.
func (v *VM) SetStackPointer(sp int32) error {
	return v.mem.Store(StackPointerAddr, sp)
}

// Reset zeroes memory and the call counter. The random source keeps its state.
func (v *VM) Reset() {
	clear(v.mem)
	v.calls = 0
}

// Calls returns the number of extern calls dispatched so far
func (v *VM) Calls() int {
	return v.calls
}

// Externs returns the sorted names of the installed externs
func (v *VM) Externs() []string {
	names := make([]string, 0, len(v.externs))
	for name := range v.externs {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// CallExtern dispatches to the extern bound to name. Errors from the extern are
// returned unchanged.
func (v *VM) CallExtern(name string) error {
	fn, ok := v.externs[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownExtern, name)
	}

	v.calls++
	if sp, err := v.StackPointer(); err == nil {
		log.Debug("extern call", "name", name, "sp", sp)
	}

	return fn(v)
}
