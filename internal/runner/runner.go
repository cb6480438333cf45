package runner

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"spooky/pkg/color"
	"spooky/pkg/stdlib"
	"spooky/pkg/vm"

	"github.com/charmbracelet/log"
)

type Runner struct {
	Help       bool   // Show help message
	Verbose    bool   // Enable verbose output
	NoColor    bool   // Disable colored output
	MemorySize int    // Number of memory cells
	Seed       uint64 // Random seed (0 picks a random one)
	Base       int    // Address of the first frame cell (0 means just above the stack pointer)
	ScriptFile string // Path to the call script

	Out io.Writer // Program output (stdout when nil)
}

// Call is one parsed script line
type Call struct {
	Line int
	Name string
	Args []int32
}

// Run reads the script file and executes it.
func (r *Runner) Run() error {
	log.Info("Processing file", "file", r.ScriptFile)

	f, err := os.Open(r.ScriptFile)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	return r.Exec(f)
}

// Exec parses the script from src and executes every call on a fresh VM.
func (r *Runner) Exec(src io.Reader) error {
	calls, err := Parse(src)
	if err != nil {
		return err
	}

	machine := r.newVM()

	if r.Verbose {
		fmt.Fprintln(r.out(), color.GreenText("=== Program Output ==="))
	}

	for _, c := range calls {
		fn, ok := stdlib.Lookup(c.Name)
		if !ok {
			return fmt.Errorf("line %d: %w: %q", c.Line, vm.ErrUnknownExtern, c.Name)
		}

		if len(c.Args) != fn.ArgSize {
			return fmt.Errorf("line %d: %s takes %d arguments, got %d", c.Line, c.Name, fn.ArgSize, len(c.Args))
		}

		ret, err := machine.Call(c.Name, r.base(), fn.Returns, c.Args...)
		if err != nil {
			return fmt.Errorf("line %d: %s: %w", c.Line, c.Name, err)
		}

		if fn.Returns {
			log.Info("Extern returned", "name", c.Name, "value", ret)
			if r.Verbose {
				fmt.Fprintf(r.out(), "\n%s %s = %s\n", color.CyanText(strconv.Itoa(c.Line)), color.YellowText(c.Name), strconv.Itoa(int(ret)))
			}
		}
	}

	log.Debug("Script finished", "calls", machine.Calls())
	return nil
}

func (r *Runner) newVM() *vm.VM {
	opts := []vm.Option{vm.WithWriter(r.out()), stdlib.Install()}

	if r.MemorySize > 0 {
		opts = append(opts, vm.WithMemorySize(r.MemorySize))
	}

	if r.Seed != 0 {
		opts = append(opts, vm.WithSeed(r.Seed))
	}

	return vm.New(opts...)
}

func (r *Runner) base() int {
	if r.Base == 0 {
		return vm.StackPointerAddr + 1
	}
	return r.Base
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		r.Out = os.Stdout
	}
	return r.Out
}

// Parse reads one extern call per line: a name followed by decimal integer
// arguments. Text after '#' is ignored.
func Parse(src io.Reader) ([]Call, error) {
	var calls []Call

	sc := bufio.NewScanner(src)
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}

		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		c := Call{Line: line, Name: fields[0]}
		for _, f := range fields[1:] {
			n, err := strconv.ParseInt(f, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid argument %q: %w", line, f, err)
			}
			c.Args = append(c.Args, int32(n))
		}

		calls = append(calls, c)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	return calls, nil
}
