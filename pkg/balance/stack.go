package balance

// Position is a 1-based location in a source file. A zero Column means
// only the line is known.
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column,omitempty" yaml:"column,omitempty"`
}

// OpenToken records an opening bracket or tag together with where it was opened
type OpenToken struct {
	Kind string   `json:"kind" yaml:"kind"`
	Pos  Position `json:"position" yaml:"position"`
}

// Stack is the last-in-first-out record of tokens that are still open.
// It is owned by a single scan and is not safe for concurrent use.
type Stack struct {
	tokens []OpenToken
}

// Push records a newly opened token
func (s *Stack) Push(tok OpenToken) {
	s.tokens = append(s.tokens, tok)
}

// Pop removes and returns the innermost open token
func (s *Stack) Pop() (OpenToken, bool) {
	if len(s.tokens) == 0 {
		return OpenToken{}, false
	}
	top := s.tokens[len(s.tokens)-1]
	s.tokens = s.tokens[:len(s.tokens)-1]
	return top, true
}

// Peek returns the innermost open token without removing it
func (s *Stack) Peek() (OpenToken, bool) {
	if len(s.tokens) == 0 {
		return OpenToken{}, false
	}
	return s.tokens[len(s.tokens)-1], true
}

// Len returns the number of open tokens
func (s *Stack) Len() int {
	return len(s.tokens)
}

// Tokens returns a copy of the open tokens, bottom to top
func (s *Stack) Tokens() []OpenToken {
	out := make([]OpenToken, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// Kinds returns the kinds of the open tokens, bottom to top
func (s *Stack) Kinds() []string {
	kinds := make([]string, len(s.tokens))
	for i, tok := range s.tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}
