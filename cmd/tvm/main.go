// Command tvm is the toolchain entrypoint: assemble, run, decompile, debug,
// and piped-mode subcommands, each with its own flag.FlagSet in the style
// of the teacher's single-purpose ie32to64 converter command.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "run":
		err = runCmd(os.Args[2:])
	case "assemble":
		err = assembleCmd(os.Args[2:])
	case "decompile":
		err = decompileCmd(os.Args[2:])
	case "debug":
		err = debugCmd(os.Args[2:])
	case "piped":
		err = pipedCmd(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "tvm: unknown subcommand %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: tvm <subcommand> [options] ...

Subcommands:
  run        run a tape directly to completion
  assemble   assemble a .basm source file into a .tape image
  decompile  render a .tape image back into reassemblable source
  debug      run a tape, resolving a crash PC back to source via a debug sidecar
  piped      drive a tape over the cooperative stdin/stdout protocol

Run 'tvm <subcommand> -h' for subcommand-specific options.
`)
}
