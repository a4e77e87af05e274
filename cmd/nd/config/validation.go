// Package config provides configuration management for the nd CLI.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nd-dev/toolbelt/internal/logging"
	"github.com/nd-dev/toolbelt/internal/validate"
)

// PreRun merges the optional config file into the global options and validates
// the result. Wired as the root command's PersistentPreRunE so every dispatch
// starts from a checked configuration.
func PreRun(cmd *cobra.Command, args []string) error {
	fc, err := LoadFile(DefaultFilePath())
	if err != nil {
		// A broken defaults file should not block command dispatch.
		logging.Warn("Ignoring unreadable config file: %v", err)
	}
	fc.Apply(cmd.Flags())

	if err := ValidateGlobalFlags(); err != nil {
		return err
	}

	SetupLogging()
	return nil
}

// SetupLogging configures dispatcher logging from the merged options. Setting
// DEBUG=true in the environment overrides the configured level and restores
// full output, which is the quickest way to trace a resolution or gate
// decision without editing flags.
func SetupLogging() {
	if os.Getenv("DEBUG") == "true" {
		logging.RestoreOutput()
		logging.SetLevel("DEBUG")
		return
	}
	logging.SetLevel(Global.LogLevel)
}

// ValidateGlobalFlags validates the merged global options before dispatch.
func ValidateGlobalFlags() error {
	if Global.ForceUpdate && Global.SkipUpdate {
		return fmt.Errorf("--update and --no-update are mutually exclusive")
	}

	if err := validate.ValidateFrequencySeconds(Global.UpdateFreq, "--update-freq"); err != nil {
		return err
	}
	if err := validate.ValidateFrequencySeconds(Global.CheckClockFreq, "--check-clock-freq"); err != nil {
		return err
	}

	if err := validate.ValidateRequiredString(Global.NTPHost, "--ntp-host"); err != nil {
		return err
	}

	if err := logging.ValidateLogLevel(Global.LogLevel); err != nil {
		return err
	}

	return nil
}
