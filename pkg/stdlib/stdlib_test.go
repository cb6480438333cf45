package stdlib_test

import (
	"bytes"
	"errors"
	"testing"

	"spooky/pkg/stdlib"
	"spooky/pkg/vm"
)

func newVM(out *bytes.Buffer, sp int32) *vm.VM {
	m := vm.New(vm.WithMemorySize(16), vm.WithWriter(out), vm.WithSeed(1), stdlib.Install())
	_ = m.SetStackPointer(sp)
	return m
}

func TestPrintChar(t *testing.T) {
	var out bytes.Buffer
	m := newVM(&out, 10)
	_ = m.Store(9, 65)

	if err := m.CallExtern("printChar"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.String() != "A" {
		t.Errorf("expected %q, got %q", "A", out.String())
	}
}

func TestPrintCharTruncatesToCharCode(t *testing.T) {
	var out bytes.Buffer
	m := newVM(&out, 10)
	_ = m.Store(9, 0x10000+'z')

	if err := stdlib.PrintChar(m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.String() != "z" {
		t.Errorf("expected %q, got %q", "z", out.String())
	}
}

func TestPrintInt(t *testing.T) {
	tests := []struct {
		value    int32
		expected string
	}{
		{0, "0"},
		{42, "42"},
		{-17, "-17"},
		{2147483647, "2147483647"},
		{-2147483648, "-2147483648"},
	}

	for _, test := range tests {
		var out bytes.Buffer
		m := newVM(&out, 6)
		_ = m.Store(5, test.value)

		if err := stdlib.PrintInt(m); err != nil {
			t.Fatalf("%d: unexpected error: %v", test.value, err)
		}
		if out.String() != test.expected {
			t.Errorf("expected %q, got %q", test.expected, out.String())
		}
	}
}

func TestPrintFaults(t *testing.T) {
	for _, name := range []string{"printChar", "printInt"} {
		var out bytes.Buffer
		m := newVM(&out, 0)

		if err := m.CallExtern(name); !errors.Is(err, vm.ErrOutOfBounds) {
			t.Errorf("%s: expected ErrOutOfBounds, got %v", name, err)
		}
		if out.Len() != 0 {
			t.Errorf("%s: expected no output on fault, got %q", name, out.String())
		}
	}
}

func TestVoidExternWithReservedSlot(t *testing.T) {
	var out bytes.Buffer
	m := newVM(&out, 5)
	_ = m.Store(4, 66)

	for _, name := range []string{"printChar", "printInt"} {
		_ = m.Store(3, 1234) // stale value in the result slot
		if err := m.CallExtern(name); err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if v, _ := m.Load(3); v != 1234 {
			t.Errorf("%s: result slot changed to %d", name, v)
		}
	}

	if out.String() != "B66" {
		t.Errorf("expected %q, got %q", "B66", out.String())
	}
}

func TestVoidExternWithoutReservedSlot(t *testing.T) {
	var out bytes.Buffer
	m := newVM(&out, 0)
	_ = m.Store(2, 555) // cell just below the frame

	for _, name := range []string{"printChar", "printInt"} {
		if _, err := m.Call(name, 3, false, 67); err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if v, _ := m.Load(2); v != 555 {
			t.Errorf("%s: cell below frame changed to %d", name, v)
		}
	}

	if out.String() != "C67" {
		t.Errorf("expected %q, got %q", "C67", out.String())
	}
}

func TestRandom(t *testing.T) {
	var out bytes.Buffer
	m := newVM(&out, 5)

	if err := m.CallExtern("random"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, _ := m.Load(4)

	if err := m.CallExtern("random"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := m.Load(4)

	if first == second {
		t.Errorf("expected two different values, got %d twice", first)
	}
}

func TestRandomIsPerVM(t *testing.T) {
	var out bytes.Buffer
	a := newVM(&out, 5)
	b := newVM(&out, 5)

	// Draws on a must not advance b.
	_ = a.CallExtern("random")
	_ = a.CallExtern("random")
	_ = b.CallExtern("random")
	fromB, _ := b.Load(4)

	c := newVM(&out, 5)
	_ = c.CallExtern("random")
	fromC, _ := c.Load(4)

	if fromB != fromC {
		t.Errorf("expected first draw %d, got %d", fromC, fromB)
	}
}

func TestRandomNeedsResultSlot(t *testing.T) {
	var out bytes.Buffer
	m := newVM(&out, 0)

	if err := m.CallExtern("random"); !errors.Is(err, vm.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	tests := []struct {
		name    string
		argSize int
		returns bool
	}{
		{"random", 0, true},
		{"printChar", 1, false},
		{"printInt", 1, false},
	}

	if got := len(stdlib.Funcs()); got != len(tests) {
		t.Errorf("expected %d funcs, got %d", len(tests), got)
	}

	m := vm.New(vm.WithMemorySize(1), stdlib.Install())
	installed := m.Externs()

	for _, test := range tests {
		f, ok := stdlib.Lookup(test.name)
		if !ok {
			t.Errorf("%s: not found", test.name)
			continue
		}
		if f.ArgSize != test.argSize || f.Returns != test.returns {
			t.Errorf("%s: expected (%d, %v), got (%d, %v)", test.name, test.argSize, test.returns, f.ArgSize, f.Returns)
		}

		found := false
		for _, name := range installed {
			found = found || name == test.name
		}
		if !found {
			t.Errorf("%s: not installed", test.name)
		}
	}

	if _, ok := stdlib.Lookup("printString"); ok {
		t.Errorf("unexpected extern printString")
	}
}
