// Package main provides the entry point for the nd command dispatcher.
//
// nd is a thin front door to a namespace of installed executables: it maps
// "nd deploy staging" onto the most specific nd-* executable, keeps the
// toolbelt installation fresh, verifies the system clock is sane, and then
// replaces itself with the resolved command.
//
// INITIALIZATION FLOW:
//  1. ND_TOOLBELT_OPTS is shell-split and prepended to the argument vector,
//     letting users bake default flags into their environment
//  2. global flags are parsed by the root command; everything after them is
//     the token list handed to namespace resolution
//  3. the config file and flag validation run as the pre-run hook
//  4. dispatch resolves, gates, and finally execs the target
//
// On a failed resolution nd exits non-zero with a message naming the
// unresolved candidate; on success its exit code belongs to the command it
// became.
package main

import (
	"os"

	"github.com/google/shlex"

	"github.com/nd-dev/toolbelt/cmd/nd/commands"
	cliconfig "github.com/nd-dev/toolbelt/cmd/nd/config"
	"github.com/nd-dev/toolbelt/internal/config"
	"github.com/nd-dev/toolbelt/internal/logging"
)

func init() {
	rootCmd := commands.RootCmd

	rootCmd.Version = cliconfig.Version
	rootCmd.PersistentPreRunE = cliconfig.PreRun

	commands.SetupGlobalFlags()
}

func main() {
	args := os.Args[1:]

	// Environment-supplied default arguments come first so explicit flags on
	// the command line win when cobra parses the combined vector.
	if opts := os.Getenv(config.OptsEnvVar); opts != "" {
		extra, err := shlex.Split(opts)
		if err != nil {
			logging.Warn("Ignoring unparsable %s: %v", config.OptsEnvVar, err)
		} else {
			args = append(extra, args...)
		}
	}

	commands.RootCmd.SetArgs(args)
	if err := commands.RootCmd.Execute(); err != nil {
		logging.Error("%v", err)
		os.Exit(1)
	}
}
