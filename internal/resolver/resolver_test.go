package resolver

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nd-dev/toolbelt/internal/catalog"
)

// TestResolve tests namespace resolution against an in-memory catalog
func TestResolve(t *testing.T) {
	tests := []struct {
		name          string
		installed     []string
		tokens        []string
		wantCommand   string
		wantArgs      []string
		wantCandidate string // expected candidate on CommandNotFound
		description   string
	}{
		{
			name:        "single token exact match",
			installed:   []string{"nd-version"},
			tokens:      []string{"version"},
			wantCommand: "nd-version",
			wantArgs:    []string{},
			description: "a one-token command should resolve directly",
		},
		{
			name:        "namespace descent",
			installed:   []string{"nd-deploy~staging", "nd-deploy~production"},
			tokens:      []string{"deploy", "staging"},
			wantCommand: "nd-deploy~staging",
			wantArgs:    []string{},
			description: "tokens should be consumed until the exact name is found",
		},
		{
			name:        "remaining tokens become arguments",
			installed:   []string{"nd-deploy~staging"},
			tokens:      []string{"deploy", "staging", "--force", "-v"},
			wantCommand: "nd-deploy~staging",
			wantArgs:    []string{"--force", "-v"},
			description: "tokens past the resolved name should pass through untouched",
		},
		{
			name:        "exact match beats namespace with children",
			installed:   []string{"nd-deploy", "nd-deploy~staging"},
			tokens:      []string{"deploy"},
			wantCommand: "nd-deploy",
			wantArgs:    []string{},
			description: "an exact name should win before more tokens are consumed",
		},
		{
			name:        "exact match with trailing tokens",
			installed:   []string{"nd-deploy", "nd-deploy~staging"},
			tokens:      []string{"deploy", "staging", "--force"},
			wantCommand: "nd-deploy",
			wantArgs:    []string{"staging", "--force"},
			description: "end-to-end: nd-deploy resolves and staging stays an argument",
		},
		{
			name:        "exact match among multiple children",
			installed:   []string{"nd-cmd", "nd-cmd~sub", "nd-cmd~other"},
			tokens:      []string{"cmd"},
			wantCommand: "nd-cmd",
			wantArgs:    []string{},
			description: "an exact match present among several results should still win",
		},
		{
			name:          "no match at first token",
			installed:     []string{"nd-deploy"},
			tokens:        []string{"missing"},
			wantCandidate: "nd-missing",
			description:   "an unknown first token should fail on its own candidate",
		},
		{
			name:          "no match at deeper token",
			installed:     []string{"nd-deploy~staging"},
			tokens:        []string{"deploy", "nowhere"},
			wantCandidate: "nd-deploy~nowhere",
			description:   "a miss below a valid namespace should name the deep candidate",
		},
		{
			name:          "tokens exhausted inside namespace",
			installed:     []string{"nd-deploy~staging"},
			tokens:        []string{"deploy"},
			wantCandidate: "nd-deploy",
			description:   "running out of tokens inside a namespace should fail on the last candidate",
		},
		{
			name:          "empty token sequence",
			installed:     []string{"nd-deploy"},
			tokens:        []string{},
			wantCandidate: "nd-",
			description:   "no tokens means nothing can resolve",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := &catalog.StaticCatalog{Names: tt.installed}
			res, err := Resolve(cat, tt.tokens)

			if tt.wantCandidate != "" {
				var notFound *CommandNotFoundError
				if !errors.As(err, &notFound) {
					t.Fatalf("Resolve() error = %v, want CommandNotFoundError (%s)", err, tt.description)
				}
				if notFound.Candidate != tt.wantCandidate {
					t.Errorf("Resolve() candidate = %q, want %q", notFound.Candidate, tt.wantCandidate)
				}
				return
			}

			if err != nil {
				t.Fatalf("Resolve() unexpected error = %v (%s)", err, tt.description)
			}
			if res.Command != tt.wantCommand {
				t.Errorf("Resolve() command = %q, want %q", res.Command, tt.wantCommand)
			}
			if !reflect.DeepEqual(res.Args, tt.wantArgs) && !(len(res.Args) == 0 && len(tt.wantArgs) == 0) {
				t.Errorf("Resolve() args = %v, want %v", res.Args, tt.wantArgs)
			}
		})
	}
}

// TestResolveRejectsSeparatorInSegment tests that reserved-separator tokens fail fast
func TestResolveRejectsSeparatorInSegment(t *testing.T) {
	cat := &catalog.StaticCatalog{Names: []string{"nd-deploy~staging"}}

	_, err := Resolve(cat, []string{"deploy~staging"})
	if err == nil {
		t.Fatal("Resolve() should reject a segment containing the namespace separator")
	}

	var notFound *CommandNotFoundError
	if errors.As(err, &notFound) {
		t.Errorf("Resolve() returned CommandNotFoundError, want a validation error")
	}
}

// TestResolveCatalogError tests that catalog failures are wrapped, not swallowed
func TestResolveCatalogError(t *testing.T) {
	_, err := Resolve(failingCatalog{}, []string{"deploy"})
	if err == nil {
		t.Fatal("Resolve() should surface catalog errors")
	}
	if !errors.Is(err, errCatalogDown) {
		t.Errorf("Resolve() error = %v, want wrapped errCatalogDown", err)
	}
}

var errCatalogDown = errors.New("catalog unavailable")

type failingCatalog struct{}

func (failingCatalog) ListWithPrefix(prefix string) ([]string, error) {
	return nil, errCatalogDown
}
