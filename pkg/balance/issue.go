package balance

// IssueKind classifies a structural finding
type IssueKind string

const (
	// UnexpectedCloser is a closing token seen while nothing is open
	UnexpectedCloser IssueKind = "unexpected-closer"
	// MismatchedCloser is a closing token that does not match the innermost open token
	MismatchedCloser IssueKind = "mismatched-closer"
	// Unclosed means tokens were still open at end of input
	Unclosed IssueKind = "unclosed"
	// MissingMarker means the start marker was required but never found
	MissingMarker IssueKind = "missing-marker"
	// ReadFailure means the input could not be read or decoded
	ReadFailure IssueKind = "read-failure"
)

// Issue is a single finding produced by a checker
type Issue struct {
	Kind IssueKind `json:"kind" yaml:"kind"`
	Pos  Position  `json:"position" yaml:"position"`
	// Token is the offending closing token, or the innermost open token for Unclosed
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
	// Expected is the token kind the closer should have matched
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty"`
	// Opener is the popped opener for a mismatch
	Opener *OpenToken `json:"opener,omitempty" yaml:"opener,omitempty"`
	// Open is a snapshot of the stack, bottom to top, where the finding needs it
	Open    []OpenToken `json:"open,omitempty" yaml:"open,omitempty"`
	Message string      `json:"message" yaml:"message"`
}

// Result is the outcome of scanning one input
type Result struct {
	File   string  `json:"file" yaml:"file"`
	Issues []Issue `json:"issues,omitempty" yaml:"issues,omitempty"`

	// Set by the tag checker only
	StartLine   int  `json:"start_line,omitempty" yaml:"start_line,omitempty"`
	MarkerFound bool `json:"marker_found,omitempty" yaml:"marker_found,omitempty"`
}

// OK reports whether the scan found nothing wrong
func (r Result) OK() bool {
	return len(r.Issues) == 0
}

// First returns the first issue in scan order
func (r Result) First() (Issue, bool) {
	if len(r.Issues) == 0 {
		return Issue{}, false
	}
	return r.Issues[0], true
}

// Options controls how far a checker goes after the first finding
type Options struct {
	// CollectAll keeps scanning past structural errors and reports every issue.
	// The first reported issue is the same one a default scan reports.
	CollectAll bool
}
