// Package commands provides the command surface for the nd dispatcher.
//
// Unlike a conventional cobra tree, nd has exactly one command: the root.
// Everything after the global flags is an opaque token list that namespace
// resolution maps onto an installed nd-* executable. Flag parsing is therefore
// deliberately loose: interspersed parsing is off so flags after the first
// token pass through to the resolved command, and unknown flags are tolerated
// because a post-update self-restart replays the original argv against a
// newer version whose flag set may differ.
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	cliconfig "github.com/nd-dev/toolbelt/cmd/nd/config"
	"github.com/nd-dev/toolbelt/internal/catalog"
	"github.com/nd-dev/toolbelt/internal/clock"
	"github.com/nd-dev/toolbelt/internal/config"
	"github.com/nd-dev/toolbelt/internal/dispatch"
	"github.com/nd-dev/toolbelt/internal/marker"
	"github.com/nd-dev/toolbelt/internal/timesource"
	"github.com/nd-dev/toolbelt/internal/update"
)

// RootCmd is the single nd command: resolve, maybe update, maybe check the
// clock, hand off.
var RootCmd = &cobra.Command{
	Use:   "nd [flags] <namespace>... <command> [args...]",
	Short: "nd centralizes team commands and tools under one namespace",
	Long: `nd locates the most specific installed nd-* executable for the
given tokens and replaces itself with it. Namespaces are flat executable
names: "nd deploy staging" runs "nd-deploy~staging" when it exists, or
"nd-deploy" with "staging" as its first argument when it does not.

Before handing off, nd keeps itself fresh (pulling and reinstalling the
toolbelt at most once per update window) and sanity-checks the system clock
against a network time server.`,
	Example: `  # Run the deploy command for staging
  nd deploy staging

  # Pass flags through to the resolved command
  nd deploy staging --force

  # Force a toolbelt update first
  nd --update version

  # Skip both gates for a fast handoff
  nd --no-update --no-clock-check version`,
	Args:               cobra.ArbitraryArgs,
	SilenceUsage:       true,
	SilenceErrors:      true,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE:               runDispatch,
}

// SetupGlobalFlags configures the root command's flag set. Interspersed
// parsing is disabled so only flags before the first token belong to nd
// itself.
func SetupGlobalFlags() {
	flags := RootCmd.Flags()
	flags.SetInterspersed(false)

	flags.BoolVar(&cliconfig.Global.ForceUpdate, "update", false,
		"Force an update of the toolbelt before the given command is run")
	flags.BoolVar(&cliconfig.Global.SkipUpdate, "no-update", false,
		"Prevent an update of the toolbelt before the given command is run")
	flags.IntVar(&cliconfig.Global.UpdateFreq, "update-freq", config.DefaultUpdateFreq,
		"Minimum number of seconds between updates")
	flags.BoolVar(&cliconfig.Global.SkipClockCheck, "no-clock-check", false,
		"Do not check the system clock")
	flags.IntVar(&cliconfig.Global.CheckClockFreq, "check-clock-freq", config.DefaultCheckClockFreq,
		"Minimum number of seconds between clock checks (0 checks every run)")
	flags.StringVar(&cliconfig.Global.NTPHost, "ntp-host", config.DefaultNTPHost,
		"Network time server used for clock checks")
	flags.StringVar(&cliconfig.Global.LogLevel, "log-level", config.DefaultLogLevel,
		"Log level: DEBUG, INFO, WARN, ERROR")
}

// runDispatch builds the production pipeline and executes the handoff. Only a
// failed resolution or a failed exec comes back as an error; the update and
// clock gates log and tolerate their own failures.
func runDispatch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command given; see 'nd --help'")
	}

	d := NewDispatcher(os.Args)
	handoff, err := d.Dispatch(args, dispatchOptions())
	if err != nil {
		return err
	}

	// On success this never returns; the resolved command takes over the
	// process. A failure here is an operating-system-level error and is
	// passed through untranslated.
	return handoff.Exec()
}

// NewDispatcher assembles the production dispatcher: a real PATH catalog, the
// git/pip update orchestrator, and a clock checker backed by NTP with an
// HTTPS fallback.
func NewDispatcher(argv []string) *dispatch.Dispatcher {
	ntpSource := &timesource.NTPSource{
		Host:    cliconfig.Global.NTPHost,
		Timeout: config.NTPTimeout,
	}
	httpSource := timesource.NewHTTPSource(config.DefaultTimeFallbackURL, config.NTPTimeout)

	clockStore := marker.NewFileStore(filepath.Join(os.TempDir(), config.ClockMarkerName))
	checker := clock.New(clockStore,
		&timesource.FallbackSource{Sources: []timesource.Source{ntpSource, httpSource}},
		cliconfig.Global.NTPHost)

	return &dispatch.Dispatcher{
		Catalog: &catalog.PathCatalog{},
		Updater: update.New(),
		Clock:   checker,
		Argv:    argv,
	}
}

// dispatchOptions converts the merged global options into pipeline policy.
func dispatchOptions() dispatch.Options {
	return dispatch.Options{
		Update: update.Options{
			Force: cliconfig.Global.ForceUpdate,
			Skip:  cliconfig.Global.SkipUpdate,
			Freq:  time.Duration(cliconfig.Global.UpdateFreq) * time.Second,
		},
		SkipClockCheck: cliconfig.Global.SkipClockCheck,
		CheckClockFreq: time.Duration(cliconfig.Global.CheckClockFreq) * time.Second,
	}
}
