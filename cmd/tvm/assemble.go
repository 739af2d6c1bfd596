package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tvmproject/tvm/internal/asm"
	"github.com/tvmproject/tvm/internal/debuginfo"
	"github.com/tvmproject/tvm/internal/scripting"
)

func assembleCmd(args []string) error {
	fs := flag.NewFlagSet("assemble", flag.ExitOnError)
	out := fs.String("o", "", "output tape path (default: input with .tape extension)")
	listing := fs.Bool("i", false, "print an intermediate offset/instruction listing to stdout")
	saveDebug := fs.String("d", "", "write a JSON debug-info sidecar to this path")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tvm assemble [options] program.basm\n\nAssembles source into a .tape image.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	srcPath := fs.Arg(0)

	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", srcPath, err)
	}

	src, err := scripting.Preprocess(string(raw), filepath.Dir(srcPath))
	if err != nil {
		return err
	}

	img, model, errs := asm.Assemble(src)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return fmt.Errorf("%d assembly error(s)", len(errs))
	}

	outPath := *out
	if outPath == "" {
		outPath = strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + ".tape"
	}

	encoded, err := img.Encode()
	if err != nil {
		return fmt.Errorf("encoding tape: %w", err)
	}
	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	if *listing {
		for _, op := range model.Ops {
			fmt.Printf("%04X  %s\n", op.Byte, op.ProcessedLine)
		}
	}

	if *saveDebug != "" {
		f, err := os.Create(*saveDebug)
		if err != nil {
			return fmt.Errorf("creating %s: %w", *saveDebug, err)
		}
		defer f.Close()
		if err := debuginfo.Save(f, model); err != nil {
			return fmt.Errorf("writing debug sidecar: %w", err)
		}
	}

	return nil
}
