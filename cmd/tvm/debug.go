package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tvmproject/tvm/internal/debuginfo"
	"github.com/tvmproject/tvm/internal/device"
	"github.com/tvmproject/tvm/internal/exec"
	"github.com/tvmproject/tvm/internal/hostio"
	"github.com/tvmproject/tvm/internal/runloop"
	"github.com/tvmproject/tvm/internal/terminal"
)

// debugCmd runs a tape like `run`, but on crash resolves the faulting PC
// back to its source line via the debug-info sidecar `assemble -d` wrote,
// instead of reporting a bare numeric dump. The interactive TUI debugger
// the original tool offers around this same sidecar is out of scope; this
// is the resolution capability alone.
func debugCmd(args []string) error {
	fs := flag.NewFlagSet("debug", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tvm debug program.tape program.tdbg [inputfile ...]\n\nRuns a tape, resolving a crash PC to source via its debug-info sidecar.\n")
	}
	fs.Parse(args)

	if fs.NArg() < 2 {
		fs.Usage()
		os.Exit(1)
	}
	tapePath := fs.Arg(0)
	debugPath := fs.Arg(1)
	inputPaths := fs.Args()[2:]

	img, err := loadTape(tapePath)
	if err != nil {
		return err
	}

	df, err := os.Open(debugPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", debugPath, err)
	}
	defer df.Close()
	model, err := debuginfo.Load(df)
	if err != nil {
		return fmt.Errorf("reading %s: %w", debugPath, err)
	}

	var kb *terminal.Keyboard
	if isTerminal(os.Stdin) {
		kb, err = terminal.Open()
		if err != nil {
			return fmt.Errorf("opening keyboard: %w", err)
		}
		defer kb.Close()
	}

	io := hostio.NewStdIO(kb)
	dev := device.New(img.Ops, img.Strings, img.Data, inputPaths, validateInputPath)
	m := exec.New(dev, io)

	err = runloop.Direct(context.Background(), m)
	crash, ok := err.(*runloop.Crash)
	if !ok {
		return err
	}

	fmt.Fprintf(os.Stderr, "crash: %v\n", crash.Err)
	fmt.Fprintf(os.Stderr, "%s\n", crash.Dump.Line())
	if line, source, ok := model.Resolve(crash.Dump.PC); ok {
		fmt.Fprintf(os.Stderr, "at line %d: %s\n", line, source)
	} else {
		fmt.Fprintf(os.Stderr, "(no debug info for pc %d)\n", crash.Dump.PC)
	}
	os.Exit(1)
	return nil
}
