package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tvmproject/tvm/internal/device"
	"github.com/tvmproject/tvm/internal/exec"
	"github.com/tvmproject/tvm/internal/hostio"
	"github.com/tvmproject/tvm/internal/image"
	"github.com/tvmproject/tvm/internal/runloop"
	"github.com/tvmproject/tvm/internal/terminal"
)

func runCmd(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	raw := fs.Bool("raw", false, "read keyboard input from stdin even when it is not a terminal (raw mode is only entered on a terminal)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tvm run [options] program.tape [inputfile ...]\n\nRuns a tape directly to completion (SPEC direct mode).\n\nOptions:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}
	tapePath := fs.Arg(0)
	inputPaths := fs.Args()[1:]

	img, err := loadTape(tapePath)
	if err != nil {
		return err
	}

	var kb *terminal.Keyboard
	if *raw || isTerminal(os.Stdin) {
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
	if crash, ok := err.(*runloop.Crash); ok {
		fmt.Fprintf(os.Stderr, "crash: %v\n", crash.Err)
		fmt.Fprintf(os.Stderr, "%s\n", crash.Dump.Line())
		os.Exit(1)
	}
	return err
}

func loadTape(path string) (*image.Image, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	img, err := image.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// validateInputPath confirms an input file named on argv exists; actual
// opening is lazy and happens inside internal/hostio on first file op.
func validateInputPath(path string) error {
	_, err := os.Stat(path)
	return err
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
