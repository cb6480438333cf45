package stdlib

import (
	"fmt"
	"strconv"

	"spooky/pkg/vm"
)

// Func describes one extern of the standard library.
type Func struct {
	Name    string    // symbol used by bytecode
	ArgSize int       // number of argument cells
	Returns bool      // whether a return value is written
	Fn      vm.Extern // body
}

var funcs = []Func{
	{Name: "random", ArgSize: 0, Returns: true, Fn: Random},
	{Name: "printChar", ArgSize: 1, Returns: false, Fn: PrintChar},
	{Name: "printInt", ArgSize: 1, Returns: false, Fn: PrintInt},
}

// Funcs returns the standard library externs.
func Funcs() []Func {
	return append([]Func(nil), funcs...)
}

// Lookup finds a standard library extern by name.
func Lookup(name string) (Func, bool) {
	for _, f := range funcs {
		if f.Name == name {
			return f, true
		}
	}
	return Func{}, false
}

// Install registers every standard library extern on a VM.
func Install() vm.Option {
	return func(v *vm.VM) {
		for _, f := range funcs {
			vm.WithExtern(f.Name, f.Fn)(v)
		}
	}
}

// Random returns the next value of the VM's random source.
func Random(v *vm.VM) error {
	return SetReturn(v, 0, int32(v.Rand().Uint32()))
}

// PrintChar prints its argument as a 16-bit character code. It returns nothing
// and leaves any reserved result slot untouched.
func PrintChar(v *vm.VM) error {
	c, err := Arg(v, 1)
	if err != nil {
		return err
	}

	fmt.Fprint(v.Stdout(), string(rune(uint16(c))))
	return nil
}

// PrintInt prints its argument in decimal.
func PrintInt(v *vm.VM) error {
	n, err := Arg(v, 1)
	if err != nil {
		return err
	}

	fmt.Fprint(v.Stdout(), strconv.FormatInt(int64(n), 10))
	return nil
}
