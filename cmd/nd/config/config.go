// Package config provides configuration management for the nd CLI: the global
// options record populated by flags, the optional TOML defaults file, and the
// validation that runs before dispatch.
package config

import (
	"github.com/nd-dev/toolbelt/internal/config"
	"github.com/nd-dev/toolbelt/internal/version"
)

// Version returns the current nd CLI version from the centralized version package
var Version = version.NdVersion

// Global holds the global CLI configuration for one invocation. Precedence is
// flags over config file over built-in defaults.
var Global struct {
	ForceUpdate    bool   // --update: update before running the command
	SkipUpdate     bool   // --no-update: never attempt an update
	UpdateFreq     int    // minimum seconds between update attempts
	SkipClockCheck bool   // --no-clock-check: skip the skew check
	CheckClockFreq int    // minimum seconds between clock checks; 0 = always
	NTPHost        string // network time server
	LogLevel       string // log level for dispatcher notices
}

// Reset restores the built-in defaults. Called before each test run that
// mutates Global.
func Reset() {
	Global.ForceUpdate = false
	Global.SkipUpdate = false
	Global.UpdateFreq = config.DefaultUpdateFreq
	Global.SkipClockCheck = false
	Global.CheckClockFreq = config.DefaultCheckClockFreq
	Global.NTPHost = config.DefaultNTPHost
	Global.LogLevel = config.DefaultLogLevel
}
