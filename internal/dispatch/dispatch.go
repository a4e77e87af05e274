// Package dispatch sequences the nd pipeline: namespace resolution, the
// self-update gate, the clock skew gate, and finally the process handoff to
// the resolved command.
//
// DISPATCH SEQUENCE:
//  1. resolve the token list against the executable catalog; failure here is
//     fatal and nothing else runs
//  2. run the update orchestrator; a completed self-update short-circuits the
//     pipeline with a handoff back to the dispatcher itself, so the new
//     version re-runs the whole sequence
//  3. run the clock skew checker
//  4. hand off to the resolved executable with the remaining arguments
//
// Dispatch returns a terminal Handoff value instead of replacing the process
// inline, keeping the sequencing decisions testable; only Handoff.Exec touches
// the process image. A resolution produced in step 1 is never re-validated by
// the later gates.
package dispatch

import (
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/nd-dev/toolbelt/internal/catalog"
	"github.com/nd-dev/toolbelt/internal/clock"
	"github.com/nd-dev/toolbelt/internal/resolver"
	"github.com/nd-dev/toolbelt/internal/update"
)

// SelfName is the executable the dispatcher re-invokes after updating itself.
// Resolved through the search path so the handoff lands on the freshly
// installed version, wherever it was placed.
const SelfName = "nd"

// Handoff is the terminal outcome of a dispatch: transfer control to Target
// with the full argument vector Argv (including argv[0]).
type Handoff struct {
	Target string
	Argv   []string
}

// Exec replaces the current process image with the handoff target. It returns
// only on failure; on success the dispatcher ceases to exist and the target
// inherits the process identity. Buffered output is flushed first so nothing
// the dispatcher printed is lost.
func (h *Handoff) Exec() error {
	path, err := exec.LookPath(h.Target)
	if err != nil {
		return err
	}

	os.Stdout.Sync()
	os.Stderr.Sync()

	return syscall.Exec(path, h.Argv, os.Environ())
}

// Options carries the per-invocation policy for the optional gates.
type Options struct {
	Update         update.Options
	SkipClockCheck bool
	CheckClockFreq time.Duration
}

// Dispatcher wires the pipeline stages together. Updater and Clock may be nil
// to drop their gates entirely, which the tests use to exercise stages in
// isolation.
type Dispatcher struct {
	Catalog catalog.Catalog
	Updater *update.Orchestrator
	Clock   *clock.Checker

	// Argv is the original, unmodified argument vector of this invocation,
	// replayed verbatim on a post-update self-restart. That replay is why the
	// flag layer must tolerate flags unknown to the current version.
	Argv []string
}

// Dispatch runs the pipeline once and returns the terminal handoff. The only
// error it returns is a failed resolution (including a catalog failure); the
// update and clock gates convert their failures to logged notices internally.
func (d *Dispatcher) Dispatch(tokens []string, opts Options) (*Handoff, error) {
	res, err := resolver.Resolve(d.Catalog, tokens)
	if err != nil {
		return nil, err
	}

	if d.Updater != nil && d.Updater.MaybeUpdate(opts.Update) {
		// A new version is installed; run it against the original argv and
		// let it take the dispatch from the top.
		return &Handoff{Target: SelfName, Argv: d.Argv}, nil
	}

	if d.Clock != nil && !opts.SkipClockCheck {
		d.Clock.MaybeCheck(opts.CheckClockFreq)
	}

	argv := append([]string{res.Command}, res.Args...)
	return &Handoff{Target: res.Command, Argv: argv}, nil
}
