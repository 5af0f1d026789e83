package balance

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

var errInvalidUTF8 = errors.New("content is not valid UTF-8")

// bracePairs maps every closing bracket to the opener it must match
var bracePairs = map[rune]rune{
	'}': '{',
	']': '[',
	')': '(',
}

func isOpener(r rune) bool {
	return r == '{' || r == '[' || r == '('
}

// CheckBraces verifies that every '{', '[' and '(' in content is closed by its
// counterpart in the right order. name is only used to label the result.
func CheckBraces(name, content string, opts Options) Result {
	result := Result{File: name}
	var stack Stack

	for i, line := range splitLines(content) {
		col := 0
		for _, ch := range line {
			col++
			pos := Position{Line: i + 1, Column: col}

			if isOpener(ch) {
				stack.Push(OpenToken{Kind: string(ch), Pos: pos})
				continue
			}

			expected, isCloser := bracePairs[ch]
			if !isCloser {
				continue
			}

			last, ok := stack.Pop()
			if !ok {
				result.Issues = append(result.Issues, Issue{
					Kind:    UnexpectedCloser,
					Pos:     pos,
					Token:   string(ch),
					Message: fmt.Sprintf("Unexpected closing '%c'", ch),
				})
				if !opts.CollectAll {
					return result
				}
				continue
			}

			if last.Kind != string(expected) {
				opener := last
				result.Issues = append(result.Issues, Issue{
					Kind:     MismatchedCloser,
					Pos:      pos,
					Token:    string(ch),
					Expected: string(expected),
					Opener:   &opener,
					Message:  fmt.Sprintf("Mismatched '%c', expected closing for '%s' from line %d", ch, last.Kind, last.Pos.Line),
				})
				if !opts.CollectAll {
					return result
				}
			}
		}
	}

	result.Issues = append(result.Issues, unclosedBraces(&stack, opts)...)
	return result
}

// unclosedBraces reports what is left on the stack, innermost first
func unclosedBraces(stack *Stack, opts Options) []Issue {
	var issues []Issue
	for {
		top, ok := stack.Pop()
		if !ok {
			return issues
		}
		issues = append(issues, Issue{
			Kind:    Unclosed,
			Pos:     top.Pos,
			Token:   top.Kind,
			Message: fmt.Sprintf("Unclosed '%s'", top.Kind),
		})
		if !opts.CollectAll {
			return issues
		}
	}
}

// CheckBraceFile reads path and runs CheckBraces over it. A file that
// cannot be read or is not valid UTF-8 yields a single ReadFailure issue.
func CheckBraceFile(path string, opts Options) Result {
	content, err := ReadSource(path)
	if err != nil {
		return readFailure(path, err)
	}
	return CheckBraces(path, content, opts)
}

// ReadSource reads a whole file and checks that it decodes as UTF-8
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errInvalidUTF8
	}
	return string(data), nil
}

func readFailure(path string, err error) Result {
	return Result{
		File: path,
		Issues: []Issue{{
			Kind:    ReadFailure,
			Message: fmt.Sprintf("Error reading %s: %v", path, err),
		}},
	}
}

// splitLines splits on '\n' and drops the '\r' of CRLF line endings
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
