// Package resolver implements namespace resolution for the nd dispatcher: it
// maps an ordered token list like ["deploy", "staging", "--force"] onto an
// installed executable such as "nd-deploy~staging" plus the arguments left
// over after the command name was consumed.
//
// RESOLUTION ALGORITHM:
// Candidates are grown greedily, one token at a time. At each depth the
// candidate is the command prefix plus the consumed tokens joined with the
// namespace separator. The catalog is asked for everything starting with the
// candidate:
//   - an exact match among the results resolves immediately; the unconsumed
//     tokens become the command's arguments
//   - zero results means no executable lives under this namespace path and
//     resolution fails
//   - results that merely extend the candidate mean it is a namespace with
//     deeper children, so the next token is consumed and the search repeats
//
// The exact-match check runs before the next token is consumed, so when both
// "nd-deploy" and "nd-deploy~staging" are installed, "nd deploy staging"
// resolves to "nd-deploy" with "staging" passed through as an argument.
package resolver

import (
	"fmt"
	"strings"

	"github.com/nd-dev/toolbelt/internal/catalog"
	"github.com/nd-dev/toolbelt/internal/config"
	"github.com/nd-dev/toolbelt/internal/validate"
)

// Resolution is the immutable outcome of a successful namespace lookup: the
// fully-qualified executable name and the arguments to pass through to it.
// Later pipeline stages never re-validate it.
type Resolution struct {
	Command string
	Args    []string
}

// CommandNotFoundError reports that no executable exists under the deepest
// namespace path the resolver could build.
type CommandNotFoundError struct {
	Candidate string
}

func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("executable %q not found", e.Candidate)
}

// Resolve consumes tokens one at a time to find the longest unambiguous
// command name in the catalog. It returns the resolution or a
// *CommandNotFoundError naming the last candidate tried.
//
// Tokens past the first catalog miss are never inspected, so trailing flags
// and arguments for the resolved command pass through untouched.
func Resolve(cat catalog.Catalog, tokens []string) (*Resolution, error) {
	if len(tokens) == 0 {
		return nil, &CommandNotFoundError{Candidate: config.CommandPrefix}
	}

	candidate := config.CommandPrefix
	for end := 0; end < len(tokens); end++ {
		if err := validate.SegmentFormat(tokens[end]); err != nil {
			return nil, err
		}

		candidate = config.CommandPrefix +
			strings.Join(tokens[:end+1], config.NamespaceSeparator)

		matches, err := cat.ListWithPrefix(candidate)
		if err != nil {
			return nil, fmt.Errorf("catalog lookup for %q: %w", candidate, err)
		}

		// Exact name beats namespace-with-children: check before consuming
		// the next token.
		if containsExact(matches, candidate) {
			return &Resolution{Command: candidate, Args: tokens[end+1:]}, nil
		}

		if len(matches) == 0 {
			return nil, &CommandNotFoundError{Candidate: candidate}
		}
	}

	// Tokens exhausted while the candidate was still only a namespace prefix.
	return nil, &CommandNotFoundError{Candidate: candidate}
}

func containsExact(matches []string, candidate string) bool {
	for _, m := range matches {
		if m == candidate {
			return true
		}
	}
	return false
}
