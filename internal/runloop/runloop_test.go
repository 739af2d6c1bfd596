package runloop_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tvmproject/tvm/internal/asm"
	"github.com/tvmproject/tvm/internal/device"
	"github.com/tvmproject/tvm/internal/exec"
	"github.com/tvmproject/tvm/internal/hostio"
	"github.com/tvmproject/tvm/internal/runloop"
)

func build(t *testing.T, src string) *exec.Machine {
	t.Helper()
	img, _, errs := asm.Assemble(src)
	require.Empty(t, errs)
	pio := hostio.NewPipedIO()
	dev := device.New(img.Ops, img.Strings, img.Data, nil, nil)
	return exec.New(dev, pio)
}

func TestDirectRunsToHalt(t *testing.T) {
	m := build(t, "prog\n1.0\n.ops\nPRT 1\nHALT\n")
	err := runloop.Direct(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, exec.Halted, mustOutcome(t, m))
}

func mustOutcome(t *testing.T, m *exec.Machine) exec.Outcome {
	t.Helper()
	o, err := m.Step()
	require.NoError(t, err)
	return o
}

func TestDirectReportsCrashWithDump(t *testing.T) {
	// JMP to an address past the end of ops traps with no valid opcode
	// byte to fetch, which Direct must surface as a *runloop.Crash.
	m := build(t, "prog\n1.0\n.ops\nJMP @999\nHALT\n")
	err := runloop.Direct(context.Background(), m)
	var crash *runloop.Crash
	require.ErrorAs(t, err, &crash)
	require.Error(t, crash.Err)
}

func TestDirectRespectsCancellation(t *testing.T) {
	// RCHR on an empty piped keyboard suspends forever; cancellation must
	// still return promptly rather than hang the test.
	m := build(t, "prog\n1.0\n.ops\nRCHR D0\nHALT\n")
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := runloop.Direct(ctx, m)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPipedBreakpointBlocksThenForceIgnoresIt(t *testing.T) {
	m := build(t, "prog\n1.0\n.ops\nPRT 1\nHALT\n")
	p := runloop.NewPiped(m)
	p.SetBreakpoint(0)

	res := p.Step(false)
	require.True(t, res.BreakpointHit)

	res = p.Step(true)
	require.False(t, res.BreakpointHit)
	require.Equal(t, exec.Continue, res.Outcome)
}

func TestPipedClearBreakpointIsIdempotent(t *testing.T) {
	m := build(t, "prog\n1.0\n.ops\nHALT\n")
	p := runloop.NewPiped(m)
	p.ClearBreakpoint(5)
	require.False(t, p.HasBreakpoint(5))
	p.SetBreakpoint(5)
	p.ClearBreakpoint(5)
	p.ClearBreakpoint(5)
	require.False(t, p.HasBreakpoint(5))
}
