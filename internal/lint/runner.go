package lint

import (
	"io"
	"slices"

	"go.followtheprocess.codes/genlint/internal/diagnostic"
	"go.followtheprocess.codes/msg"
)

// class is the bookkeeping for a single severity.
type class struct {
	count     int  // Number of accepted diagnostics
	limit     int  // Configured limit, 0 means unbounded
	announced bool // Whether the limit advisory has been written
	blocked   bool // Whether further diagnostics are dropped
}

// Runner collects the diagnostics of a whole invocation and enforces the per severity
// limits, it is shared by every source in the run.
//
// Reaching the warning or information limit stops that severity being recorded while
// everything else carries on. Reaching the error limit aborts the entire run, after which
// nothing more is recorded and the engine stops reading input.
//
// A Runner is not safe for concurrent use.
type Runner struct {
	advisory    io.Writer                       // Where the one time limit advisories go
	diagnostics []diagnostic.Diagnostic         // Accepted diagnostics in discovery order
	classes     [diagnostic.NumSeverities]class // Per severity state, indexed by severity
	aborted     bool                            // Whether the error limit has stopped the run
}

// NewRunner returns a [Runner] enforcing the limits in options, limit advisories are
// written to advisory.
func NewRunner(advisory io.Writer, options Options) *Runner {
	runner := &Runner{advisory: advisory}
	for _, severity := range diagnostic.Severities() {
		runner.classes[severity].limit = options.Limit(severity)
	}

	return runner
}

// Accepting reports whether a diagnostic of the given severity would be recorded, allowing
// callers to skip the work of building one that would only be dropped.
func (r *Runner) Accepting(severity diagnostic.Severity) bool {
	return !r.aborted && !r.classes[severity].blocked
}

// Record offers a diagnostic to the runner.
//
// It returns false only once the error limit has aborted the run, at which point
// the caller must stop scanning altogether. A diagnostic of a blocked severity is
// dropped but Record still returns true.
func (r *Runner) Record(d diagnostic.Diagnostic) bool {
	if r.aborted {
		return false
	}

	c := &r.classes[d.Severity]
	if c.blocked {
		return true
	}

	r.diagnostics = append(r.diagnostics, d)
	c.count++

	if c.limit == 0 || c.count < c.limit || c.announced {
		return true
	}

	c.announced = true
	c.blocked = true

	if d.Severity == diagnostic.Error {
		r.aborted = true
		msg.Fwarn(r.advisory, "Reached the error limit (%d), stopping", c.limit)

		return false
	}

	msg.Fwarn(r.advisory, "Reached the %s limit (%d), further %s diagnostics will not be reported", d.Severity, c.limit, d.Severity)

	return true
}

// Diagnostics returns a copy of the accepted diagnostics, in the order they were recorded.
func (r *Runner) Diagnostics() []diagnostic.Diagnostic {
	return slices.Clone(r.diagnostics)
}

// Count returns the number of recorded diagnostics of the given severity.
func (r *Runner) Count(severity diagnostic.Severity) int {
	return r.classes[severity].count
}

// LimitReached reports whether the limit for severity was hit.
func (r *Runner) LimitReached(severity diagnostic.Severity) bool {
	return r.classes[severity].announced
}

// Aborted reports whether the error limit has stopped the run.
func (r *Runner) Aborted() bool {
	return r.aborted
}
