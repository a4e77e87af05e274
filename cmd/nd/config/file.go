// Package config provides configuration management for the nd CLI.
// This file loads the optional per-user TOML defaults file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

// FileConfig mirrors the optional defaults file at ~/.config/nd/config.toml.
// Pointer fields distinguish "absent" from zero values, so the file can set a
// clock check frequency of 0 (always check) without every other field being
// forced to zero too.
type FileConfig struct {
	UpdateFreq     *int    `toml:"update_freq"`
	CheckClockFreq *int    `toml:"check_clock_freq"`
	NTPHost        *string `toml:"ntp_host"`
	LogLevel       *string `toml:"log_level"`
}

// DefaultFilePath returns the per-user config file location, or empty when no
// user config directory can be determined.
func DefaultFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "nd", "config.toml")
}

// LoadFile parses the TOML defaults file at path. A missing file is not an
// error; the built-in defaults simply stand.
func LoadFile(path string) (*FileConfig, error) {
	if path == "" {
		return nil, nil
	}

	var fc FileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return &fc, nil
}

// Apply copies file values into Global for every flag the user did not set on
// the command line, preserving flags > file > defaults precedence.
func (fc *FileConfig) Apply(flags *pflag.FlagSet) {
	if fc == nil {
		return
	}

	if fc.UpdateFreq != nil && !flags.Changed("update-freq") {
		Global.UpdateFreq = *fc.UpdateFreq
	}
	if fc.CheckClockFreq != nil && !flags.Changed("check-clock-freq") {
		Global.CheckClockFreq = *fc.CheckClockFreq
	}
	if fc.NTPHost != nil && !flags.Changed("ntp-host") {
		Global.NTPHost = *fc.NTPHost
	}
	if fc.LogLevel != nil && !flags.Changed("log-level") {
		Global.LogLevel = *fc.LogLevel
	}
}
