// Package update implements the self-update orchestrator: on each invocation
// the dispatcher may fetch the latest toolbelt revision, reinstall it, and ask
// to be re-executed so the freshly installed version handles the command.
//
// UPDATE STATE MACHINE:
//
//	Idle -> Skip                     caller disabled updates
//	Idle -> NotDue                   marker younger than the update window
//	Idle -> Updating                 marker absent, stale, or update forced
//	Updating -> UpToDate             fetch reported no changes
//	Updating -> Updated (restart)    fetch pulled changes, reinstall succeeded
//	Updating -> FailedFetch          fetch or reinstall failed; continue as-is
//
// The update marker is touched before the attempt, not after: a remote that is
// down must delay the next attempt by a full window instead of retrying on
// every invocation. An unresolvable installation root silently degrades the
// whole orchestrator to a no-op, since a toolbelt installed without its
// repository simply cannot self-update.
//
// Every failure here is converted to a logged notice; the resolved command
// always runs, on the current version if need be.
package update

import (
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/nd-dev/toolbelt/internal/config"
	"github.com/nd-dev/toolbelt/internal/logging"
	"github.com/nd-dev/toolbelt/internal/marker"
)

// Options carries the caller's update policy for one invocation.
type Options struct {
	Force bool          // attempt the update regardless of marker age
	Skip  bool          // never touch the network or the filesystem
	Freq  time.Duration // minimum interval between attempts
}

// CommandRunner executes an external command in a working directory and
// returns its combined output. The orchestrator drives git and pip through
// this interface so the state machine is testable without real processes.
type CommandRunner interface {
	Output(dir, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec. External commands have no internal
// timeout; a hung fetch blocks the dispatcher until interrupted.
type ExecRunner struct{}

// Output runs name with args in dir and returns combined stdout and stderr.
func (ExecRunner) Output(dir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// pipLocationPattern extracts the package install location from `pip show`
// output when ND_TOOLBELT_ROOT is not set.
var pipLocationPattern = regexp.MustCompile(`Location:\s+(/\S+)`)

// Orchestrator decides whether a self-update is due and performs it.
type Orchestrator struct {
	Runner CommandRunner
	Getenv func(string) string // env lookup, swappable in tests
	Now    func() time.Time
}

// New returns an orchestrator wired to the real environment.
func New() *Orchestrator {
	return &Orchestrator{
		Runner: ExecRunner{},
		Getenv: os.Getenv,
		Now:    time.Now,
	}
}

// MaybeUpdate runs the update state machine once. It returns true when a new
// version was installed and the dispatcher must re-execute itself before
// handing off.
func (o *Orchestrator) MaybeUpdate(opts Options) bool {
	if opts.Skip {
		return false
	}

	root := o.resolveRoot()
	if root == "" {
		logging.Debug("No toolbelt installation root found; skipping self-update")
		return false
	}

	store := marker.NewFileStore(filepath.Join(root, config.UpdateMarkerName))
	recorded, ok, err := store.Get()
	if err != nil {
		logging.Error("Cannot read update marker: %v", err)
		return false
	}

	due := !ok || o.Now().Sub(recorded) >= opts.Freq
	if !due && !opts.Force {
		return false
	}

	// Record the attempt before making it, so a broken remote delays the
	// next try by a full window instead of retrying every invocation.
	if err := store.Touch(); err != nil {
		logging.Error("Cannot record update attempt: %v", err)
	}

	logging.Info("Checking for nd toolbelt updates...")

	branch, err := o.Runner.Output(root, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		logging.Error("Unable to determine the toolbelt branch: %v", err)
		return false
	}
	branch = strings.TrimSpace(branch)

	out, err := o.Runner.Output(root, "git", "pull", "origin", branch)
	if err != nil {
		logging.Error("Unable to update repository.")
		return false
	}
	if reportsUpToDate(out) {
		return false
	}

	if _, err := o.Runner.Output(root, "pip", "install", "-e", "."); err != nil {
		logging.Error("Unable to reinstall the toolbelt after update: %v", err)
		return false
	}

	logging.Success("Toolbelt updated; restarting to pick up the new version")
	return true
}

// resolveRoot locates the toolbelt installation: the ND_TOOLBELT_ROOT
// override wins, otherwise the packaging system is asked where the package
// lives. An empty result means self-update is unavailable.
func (o *Orchestrator) resolveRoot() string {
	if root := o.Getenv(config.RootEnvVar); root != "" {
		return root
	}

	out, err := o.Runner.Output("", "pip", "show", "nd-toolbelt", "--disable-pip-version-check")
	if err != nil {
		return ""
	}
	if m := pipLocationPattern.FindStringSubmatch(out); m != nil {
		return m[1]
	}
	return ""
}

// reportsUpToDate detects the "nothing pulled" case across git versions,
// which hyphenate the message differently.
func reportsUpToDate(pullOutput string) bool {
	return strings.Contains(pullOutput, "Already up-to-date.") ||
		strings.Contains(pullOutput, "Already up to date.")
}
