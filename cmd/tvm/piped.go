package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tvmproject/tvm/internal/device"
	"github.com/tvmproject/tvm/internal/exec"
	"github.com/tvmproject/tvm/internal/hostio"
	"github.com/tvmproject/tvm/internal/proto"
	"github.com/tvmproject/tvm/internal/runloop"
)

func pipedCmd(args []string) error {
	fs := flag.NewFlagSet("piped", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tvm piped program.tape [inputfile ...]\n\nDrives a tape over the cooperative stdin/stdout protocol (SPEC §4.G/§6).\n")
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

	pio := hostio.NewPipedIO()
	dev := device.New(img.Ops, img.Strings, img.Data, inputPaths, validateInputPath)
	m := exec.New(dev, pio)
	p := runloop.NewPiped(m)

	sess := proto.NewSession(p, pio, os.Stdin, os.Stdout)
	for {
		if err := sess.HandleFrame(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}
