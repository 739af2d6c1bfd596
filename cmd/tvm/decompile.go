package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tvmproject/tvm/internal/disasm"
)

func decompileCmd(args []string) error {
	fs := flag.NewFlagSet("decompile", flag.ExitOnError)
	out := fs.String("o", "", "output source path (default: input with .basm extension)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tvm decompile [options] program.tape\n\nRenders a tape image back into reassemblable source.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	tapePath := fs.Arg(0)

	img, err := loadTape(tapePath)
	if err != nil {
		return err
	}

	src, err := disasm.Decompile(img)
	if err != nil {
		return err
	}

	outPath := *out
	if outPath == "" {
		outPath = strings.TrimSuffix(tapePath, filepath.Ext(tapePath)) + ".basm"
	}
	return os.WriteFile(outPath, []byte(src), 0o644)
}
