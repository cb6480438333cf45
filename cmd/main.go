package main

import (
	"flag"
	"fmt"
	"os"

	"spooky/internal/logger"
	"spooky/internal/runner"
	"spooky/pkg/color"
	"spooky/pkg/vm"

	"github.com/charmbracelet/log"
)

// Main entry point for the spooky extern runner.
func main() {
	options := runner.Runner{}

	flag.BoolVar(&options.Help, "h", false, "Show help")
	flag.BoolVar(&options.Verbose, "v", false, "Verbose mode")
	flag.BoolVar(&options.NoColor, "n", false, "No color")
	flag.IntVar(&options.MemorySize, "m", vm.DefaultMemorySize, "Memory size in cells")
	flag.Uint64Var(&options.Seed, "s", 0, "Random seed (0 = random)")
	flag.IntVar(&options.Base, "b", 1, "Frame base address")

	flag.Parse()
	args := flag.Args()

	logger.Init(options.Verbose, options.NoColor)
	if options.Help {
		fmt.Printf("Usage: %s [options] <script>\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if options.NoColor {
		color.EnableColor(false)
	}

	if len(args) == 0 {
		log.Fatal("No script provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}

	options.ScriptFile = args[0]

	if err := options.Run(); err != nil {
		log.Fatal("Execution failed", "error", err)
	}
}
