// Package proto implements the piped protocol of SPEC §4.G/§6: a framing
// over stdin/stdout where every frame is a one-byte prefix followed by a
// prefix-specific payload, used by the `piped` subcommand to let an
// external controller (a debugger UI, a test harness) drive the VM one
// step at a time. Grounded directly on the original device's wire format
// (`piped_device.rs`): "<cmd><content len><content>".
package proto

// Host -> device frame prefixes.
const (
	InStep        = 'e' // step, respecting breakpoints
	InStepForce   = 'f' // step, ignoring breakpoints
	InDumpReq     = 'd' // request a register dump
	InBreakSet    = 'b' // set a breakpoint: payload addr:2
	InBreakClear  = 'c' // clear a breakpoint: payload addr:2
	InMemoryReq   = 'm' // request memory: payload lo:2 hi:2 (inclusive range)
	InKey         = 'k' // deliver one buffered key byte: payload byte:1
	InString      = 't' // deliver buffered key bytes: payload len:1 bytes:len
)

// Device -> host frame prefixes.
const (
	OutStdout      = 'o' // program stdout text: payload len:1 bytes:len (chunked at 255)
	OutStderr      = 'e' // program stderr text: payload len:1 bytes:len (chunked at 255)
	OutBreakHit    = 'h' // breakpoint hit, nothing executed: payload addr:2
	OutStringReq   = 't' // the running instruction wants a buffered string
	OutKeyReq      = 'k' // the running instruction wants a buffered key
	OutHalted      = 'f' // the program halted or ran off the end of ops
	OutCrashed     = 'c' // a RuntimeTrap terminated execution
	OutDump        = 'd' // register dump: payload is the 16-byte device.Dump.Bytes() form
	OutMemory      = 'm' // memory snapshot chunk: payload len:2 bytes:len (chunked at 255, like o/e)
)

// maxChunk is the largest single text chunk an 'o'/'e' frame carries; longer
// output is split across multiple frames, each with its own length prefix.
const maxChunk = 255
