// Package runloop drives an exec.Machine to completion in the two modes
// SPEC §4.F distinguishes: Direct (free-running until halt or crash) and
// Piped (cooperatively stepped by internal/proto, one command at a time).
package runloop

import (
	"context"
	"time"

	"github.com/tvmproject/tvm/internal/device"
	"github.com/tvmproject/tvm/internal/exec"
)

// pollInterval is how often a direct-mode run checks a blocked keyboard
// read for newly arrived input. The VM is cooperative, not interrupt
// driven (SPEC §5), so this is the one place Direct actually waits.
const pollInterval = 2 * time.Millisecond

// Crash is returned by Direct when a RuntimeTrap (or any other
// executor error) halts the machine; it carries the dump the caller should
// report alongside the error (SPEC §7: "a one-line error tag plus the
// binary dump, never a partial instruction commit").
type Crash struct {
	Dump device.Dump
	Err  error
}

func (c *Crash) Error() string { return c.Err.Error() }
func (c *Crash) Unwrap() error { return c.Err }

// Direct runs m until HALT, the ops boundary, a crash, or ctx is
// cancelled, per SPEC §4.F: "loop {fetch; execute; check halt/crash} until
// HALT, ops boundary, or crash." Cancellation only ever lands between
// instructions — an in-flight Step is never interrupted mid-execution.
func Direct(ctx context.Context, m *exec.Machine) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		outcome, err := m.Step()
		if err != nil {
			return &Crash{Dump: m.Dev.CurrentDump(), Err: err}
		}

		switch outcome {
		case exec.Halted:
			return nil
		case exec.AwaitingKey, exec.AwaitingString:
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pollInterval):
			}
		case exec.Continue:
			// fall through to the next iteration
		}
	}
}
