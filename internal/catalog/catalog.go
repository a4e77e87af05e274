// Package catalog provides the executable catalog capability for namespace
// resolution: given a name prefix, it reports which installed executables start
// with that prefix.
//
// The resolver only ever talks to the Catalog interface, so resolution logic is
// testable against an in-memory catalog while production code scans the real
// executable search path.
//
// CATALOG IMPLEMENTATIONS:
//   - PathCatalog: scans every directory on $PATH for executable regular files
//   - StaticCatalog: fixed in-memory name set for tests
package catalog

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Catalog reports installed executables by name prefix.
type Catalog interface {
	// ListWithPrefix returns the sorted names of installed executables whose
	// name starts with prefix. A missing or unreadable search-path directory
	// is skipped, not an error; errors are reserved for environmental
	// failures that make the whole lookup meaningless.
	ListWithPrefix(prefix string) ([]string, error)
}

// PathCatalog scans the operating environment's executable search path.
// The zero value scans $PATH at lookup time.
type PathCatalog struct {
	// Path overrides the search path for lookups. Empty means use $PATH.
	Path string
}

// ListWithPrefix walks every directory on the search path and collects the
// names of executable regular files starting with prefix. Names shadowed by an
// earlier directory are reported once, matching how the shell would resolve
// them.
func (c *PathCatalog) ListWithPrefix(prefix string) ([]string, error) {
	searchPath := c.Path
	if searchPath == "" {
		searchPath = os.Getenv("PATH")
	}

	seen := make(map[string]bool)
	for _, dir := range filepath.SplitList(searchPath) {
		if dir == "" {
			// Empty $PATH entries historically mean the current directory.
			dir = "."
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue // Unreadable or missing directories are not matches
		}

		for _, entry := range entries {
			name := entry.Name()
			if !strings.HasPrefix(name, prefix) || seen[name] {
				continue
			}
			if isExecutable(entry, dir) {
				seen[name] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// isExecutable reports whether a directory entry is a regular file (or a
// symlink to one) with any execute bit set.
func isExecutable(entry fs.DirEntry, dir string) bool {
	info, err := entry.Info()
	if err != nil {
		return false
	}

	if info.Mode()&fs.ModeSymlink != 0 {
		info, err = os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil {
			return false
		}
	}

	return info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0
}

// StaticCatalog is a fixed in-memory catalog for tests and resolution dry
// runs.
type StaticCatalog struct {
	Names []string
}

// ListWithPrefix returns the sorted subset of Names starting with prefix.
func (c *StaticCatalog) ListWithPrefix(prefix string) ([]string, error) {
	var matches []string
	for _, name := range c.Names {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	sort.Strings(matches)
	return matches, nil
}
