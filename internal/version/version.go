// Package version provides centralized version information for the nd toolbelt.
// The dispatcher re-executes itself after a successful self-update, so the version
// constant is the only reliable way to tell which build handled a given invocation.
// All versions follow semantic versioning (semver) conventions.
package version

// NdVersion holds the current nd dispatcher version.
// Format: major.minor.patch[-prerelease][+build]
const NdVersion = "0.2.0-dev"
