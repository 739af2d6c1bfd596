package runloop

import "github.com/tvmproject/tvm/internal/exec"

// Piped wraps an exec.Machine with the breakpoint set the piped protocol
// (internal/proto) steps against, per SPEC §4.F/§4.G: "each Step/Step
// ignoring breakpoints command advances exactly one fetch-execute step."
// Piped itself knows nothing about frame encoding; internal/proto drives it
// and translates StepResult into wire frames.
type Piped struct {
	M *exec.Machine

	breakpoints map[uint16]bool
}

func NewPiped(m *exec.Machine) *Piped {
	return &Piped{M: m, breakpoints: map[uint16]bool{}}
}

// SetBreakpoint and ClearBreakpoint are idempotent (SPEC §4.G: "Set/clear
// is idempotent").
func (p *Piped) SetBreakpoint(addr uint16)   { p.breakpoints[addr] = true }
func (p *Piped) ClearBreakpoint(addr uint16) { delete(p.breakpoints, addr) }

func (p *Piped) HasBreakpoint(addr uint16) bool { return p.breakpoints[addr] }

// StepResult reports what one Step call did, for internal/proto to turn
// into the right reply frame.
type StepResult struct {
	BreakpointHit bool // PC had a breakpoint and was not ignored; nothing executed
	Outcome       exec.Outcome
	Err           error
}

// Step advances exactly one fetch-execute step, honoring the breakpoint set
// unless ignoreBreakpoints is set (the `f` command always executes; `e`
// respects breakpoints). A breakpoint hit leaves the machine's PC untouched
// and executes nothing (SPEC §4.G).
func (p *Piped) Step(ignoreBreakpoints bool) StepResult {
	if !ignoreBreakpoints && p.breakpoints[p.M.Dev.PC] {
		return StepResult{BreakpointHit: true}
	}
	outcome, err := p.M.Step()
	return StepResult{Outcome: outcome, Err: err}
}
