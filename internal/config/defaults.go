// Package config provides common default configuration values shared across
// nd toolbelt components (resolver, updater, clock checker). This centralizes
// configuration management and keeps the CLI flags, the config file loader, and
// the orchestration code agreeing on a single set of defaults.
package config

import "time"

const (
	// CommandPrefix is prepended to every candidate executable name during
	// namespace resolution. All toolbelt commands install as "nd-<name>".
	CommandPrefix = "nd-"

	// NamespaceSeparator joins namespace segments into a flat executable name,
	// e.g. tokens ["deploy", "staging"] become "nd-deploy~staging".
	// Segments must never contain this character.
	NamespaceSeparator = "~"

	// DefaultUpdateFreq is the minimum number of seconds between self-update
	// attempts when --update-freq is not given.
	DefaultUpdateFreq = 3600

	// DefaultCheckClockFreq is the minimum number of seconds between system
	// clock checks. Zero means check on every invocation.
	DefaultCheckClockFreq = 600

	// DefaultNTPHost is the network time server queried by the clock checker.
	DefaultNTPHost = "time.apple.com"

	// NTPTimeout bounds the network time query. The dispatcher runs on every
	// command invocation, so a slow time server must not hold up the handoff.
	NTPTimeout = 2 * time.Second

	// DefaultTimeFallbackURL is the HTTPS endpoint whose Date header stands
	// in for NTP on networks that block UDP port 123.
	DefaultTimeFallbackURL = "https://www.apple.com"

	// MaxClockSkew is the tolerated absolute offset between network time and
	// the local system clock before the user is warned to resynchronize.
	MaxClockSkew = 60 * time.Second

	// UpdateMarkerName is the marker file under the installation root whose
	// mtime records the last self-update attempt.
	UpdateMarkerName = ".updated"

	// ClockMarkerName is the marker file in shared temporary storage whose
	// mtime records the last successful clock check.
	ClockMarkerName = ".nd_toolbelt_clock_last_checked"

	// RootEnvVar overrides the installation root used to locate the update
	// marker and the update remote.
	RootEnvVar = "ND_TOOLBELT_ROOT"

	// OptsEnvVar supplies additional default arguments that are prepended to
	// the real argument vector before parsing.
	OptsEnvVar = "ND_TOOLBELT_OPTS"

	// DefaultLogLevel is the default log level for dispatcher output.
	// INFO keeps update and clock notices visible without debug noise.
	DefaultLogLevel = "INFO"
)
