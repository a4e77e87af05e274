package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

// newFlagSet registers the global flags the same way the root command does
func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("nd", pflag.ContinueOnError)
	flags.Int("update-freq", 3600, "")
	flags.Int("check-clock-freq", 600, "")
	flags.String("ntp-host", "time.apple.com", "")
	flags.String("log-level", "INFO", "")
	return flags
}

// TestLoadFileMissing tests that an absent defaults file is not an error
func TestLoadFileMissing(t *testing.T) {
	fc, err := LoadFile(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v for a missing file", err)
	}
	if fc != nil {
		t.Errorf("LoadFile() = %+v for a missing file, want nil", fc)
	}
}

// TestLoadFileParses tests TOML decoding of the defaults file
func TestLoadFileParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "update_freq = 7200\ncheck_clock_freq = 0\nntp_host = \"pool.ntp.org\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	fc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if fc.UpdateFreq == nil || *fc.UpdateFreq != 7200 {
		t.Errorf("UpdateFreq = %v, want 7200", fc.UpdateFreq)
	}
	if fc.CheckClockFreq == nil || *fc.CheckClockFreq != 0 {
		t.Errorf("CheckClockFreq = %v, want 0 (always check)", fc.CheckClockFreq)
	}
	if fc.NTPHost == nil || *fc.NTPHost != "pool.ntp.org" {
		t.Errorf("NTPHost = %v, want pool.ntp.org", fc.NTPHost)
	}
	if fc.LogLevel != nil {
		t.Errorf("LogLevel = %v, want nil for an unset key", fc.LogLevel)
	}
}

// TestLoadFileRejectsBadTOML tests the error path for a corrupt file
func TestLoadFileRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("update_freq = ["), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() error = nil for corrupt TOML, want error")
	}
}

// TestApplyPrecedence tests flags > file > defaults merging
func TestApplyPrecedence(t *testing.T) {
	Reset()

	flags := newFlagSet()
	if err := flags.Parse([]string{"--update-freq=60"}); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}
	// In production the flag var is bound to Global; mirror the parsed value.
	Global.UpdateFreq = 60

	freq := 7200
	clockFreq := 0
	host := "pool.ntp.org"
	fc := &FileConfig{UpdateFreq: &freq, CheckClockFreq: &clockFreq, NTPHost: &host}
	fc.Apply(flags)

	if Global.UpdateFreq != 60 {
		t.Errorf("UpdateFreq = %d, want 60 (explicit flag beats the file)", Global.UpdateFreq)
	}
	if Global.CheckClockFreq != 0 {
		t.Errorf("CheckClockFreq = %d, want 0 from the file", Global.CheckClockFreq)
	}
	if Global.NTPHost != "pool.ntp.org" {
		t.Errorf("NTPHost = %q, want the file value", Global.NTPHost)
	}
	if Global.LogLevel != "INFO" {
		t.Errorf("LogLevel = %q, want the built-in default", Global.LogLevel)
	}
}

// TestApplyNilFile tests that a missing file leaves defaults untouched
func TestApplyNilFile(t *testing.T) {
	Reset()

	var fc *FileConfig
	fc.Apply(newFlagSet())

	if Global.UpdateFreq != 3600 || Global.NTPHost != "time.apple.com" {
		t.Errorf("Apply(nil) changed defaults: %+v", Global)
	}
}

// TestValidateGlobalFlags tests merged option validation
func TestValidateGlobalFlags(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func()
		expectError bool
		description string
	}{
		{
			name:        "defaults",
			mutate:      func() {},
			expectError: false,
			description: "the built-in defaults should validate",
		},
		{
			name: "force and skip together",
			mutate: func() {
				Global.ForceUpdate = true
				Global.SkipUpdate = true
			},
			expectError: true,
			description: "--update and --no-update are mutually exclusive",
		},
		{
			name: "negative update freq",
			mutate: func() {
				Global.UpdateFreq = -1
			},
			expectError: true,
			description: "negative windows should be rejected",
		},
		{
			name: "zero clock freq",
			mutate: func() {
				Global.CheckClockFreq = 0
			},
			expectError: false,
			description: "zero clock frequency means always check and is valid",
		},
		{
			name: "empty ntp host",
			mutate: func() {
				Global.NTPHost = ""
			},
			expectError: true,
			description: "the clock check needs a time server",
		},
		{
			name: "bad log level",
			mutate: func() {
				Global.LogLevel = "verbose"
			},
			expectError: true,
			description: "unknown log levels should be rejected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Reset()
			tt.mutate()

			err := ValidateGlobalFlags()
			if (err != nil) != tt.expectError {
				t.Errorf("ValidateGlobalFlags() error = %v, expectError %v (%s)",
					err, tt.expectError, tt.description)
			}
		})
	}
}
