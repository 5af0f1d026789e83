package balance

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

var (
	// tagPattern matches <name ...>, </name> and <name ... />. It is a
	// heuristic, not a markup tokenizer: attributes spanning lines or
	// containing '>' are not understood.
	tagPattern = regexp.MustCompile(`</?(\w+)[^>]*/?>`)

	doubleQuoted = regexp.MustCompile(`"[^"]*"`)
	singleQuoted = regexp.MustCompile(`'[^']*'`)
)

// TagChecker verifies nesting of a fixed vocabulary of markup tags,
// starting at the first line that contains Marker.
type TagChecker struct {
	// Names lists the tracked tag names. Every other tag is ignored.
	Names []string
	// Marker is a literal substring locating the first scanned line.
	// When empty, or when no line contains it, scanning starts at line 1.
	Marker string
	// RequireMarker turns an absent marker into a MissingMarker issue
	RequireMarker bool
}

// NewTagChecker creates a checker for the given tag names and start marker
func NewTagChecker(names []string, marker string) *TagChecker {
	return &TagChecker{
		Names:  slices.Clone(names),
		Marker: marker,
	}
}

func (tc *TagChecker) tracks(name string) bool {
	return slices.Contains(tc.Names, name)
}

// StartLine returns the 0-based index of the first line to scan and
// whether the marker was found
func (tc *TagChecker) StartLine(lines []string) (int, bool) {
	if tc.Marker == "" {
		return 0, true
	}
	for i, line := range lines {
		if strings.Contains(line, tc.Marker) {
			return i, true
		}
	}
	return 0, false
}

// Check scans content and reports tag nesting problems. name labels the result.
func (tc *TagChecker) Check(name, content string, opts Options) Result {
	lines := splitLines(content)
	start, found := tc.StartLine(lines)

	result := Result{
		File:        name,
		StartLine:   start + 1,
		MarkerFound: found,
	}

	if !found && tc.RequireMarker {
		result.Issues = append(result.Issues, Issue{
			Kind:    MissingMarker,
			Pos:     Position{Line: 1},
			Message: fmt.Sprintf("Start marker %q not found", tc.Marker),
		})
		if !opts.CollectAll {
			return result
		}
	}

	var stack Stack
	for i := start; i < len(lines); i++ {
		line := lines[i]
		cleaned, offsets := stripQuoted(line)

		for _, m := range tagPattern.FindAllStringSubmatchIndex(cleaned, -1) {
			tagStr := cleaned[m[0]:m[1]]
			tagName := cleaned[m[2]:m[3]]

			if !tc.tracks(tagName) {
				continue
			}
			if strings.HasSuffix(tagStr, "/>") {
				continue
			}

			pos := Position{
				Line:   i + 1,
				Column: utf8.RuneCountInString(line[:offsets[m[0]]]) + 1,
			}

			if !strings.HasPrefix(tagStr, "</") {
				stack.Push(OpenToken{Kind: tagName, Pos: pos})
				continue
			}

			last, ok := stack.Pop()
			if !ok {
				result.Issues = append(result.Issues, Issue{
					Kind:    UnexpectedCloser,
					Pos:     pos,
					Token:   tagName,
					Message: fmt.Sprintf("Orphan closing tag </%s>", tagName),
				})
				if !opts.CollectAll {
					return result
				}
				continue
			}

			if last.Kind != tagName {
				opener := last
				open := append(stack.Tokens(), last)
				result.Issues = append(result.Issues, Issue{
					Kind:     MismatchedCloser,
					Pos:      pos,
					Token:    tagName,
					Expected: last.Kind,
					Opener:   &opener,
					Open:     open,
					Message: fmt.Sprintf("Mismatch. Expected </%s> but found </%s> (Stack: %s)",
						last.Kind, tagName, joinKinds(open)),
				})
				if !opts.CollectAll {
					return result
				}
			}
		}
	}

	if top, ok := stack.Peek(); ok {
		result.Issues = append(result.Issues, Issue{
			Kind:    Unclosed,
			Pos:     top.Pos,
			Token:   top.Kind,
			Open:    stack.Tokens(),
			Message: fmt.Sprintf("Unclosed tags: %s", strings.Join(stack.Kinds(), ", ")),
		})
	}

	return result
}

// CheckFile reads path and runs Check over it
func (tc *TagChecker) CheckFile(path string, opts Options) Result {
	content, err := ReadSource(path)
	if err != nil {
		return readFailure(path, err)
	}
	return tc.Check(path, content, opts)
}

func joinKinds(tokens []OpenToken) string {
	kinds := make([]string, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return strings.Join(kinds, ", ")
}

// stripQuoted empties every "..." and then every '...' literal on a line so
// that tag-like text inside attribute values is not matched. It also returns,
// for each byte offset of the stripped line (plus its end), the matching
// offset in the unstripped line.
func stripQuoted(line string) (string, []int) {
	offsets := make([]int, len(line)+1)
	for i := range offsets {
		offsets[i] = i
	}
	s, offsets := emptyLiterals(line, offsets, doubleQuoted)
	return emptyLiterals(s, offsets, singleQuoted)
}

func emptyLiterals(s string, offsets []int, pattern *regexp.Regexp) (string, []int) {
	matches := pattern.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return s, offsets
	}

	var b strings.Builder
	mapped := make([]int, 0, len(offsets))
	prev := 0
	for _, m := range matches {
		b.WriteString(s[prev:m[0]])
		mapped = append(mapped, offsets[prev:m[0]]...)

		// keep the opening and closing quote only
		b.WriteByte(s[m[0]])
		b.WriteByte(s[m[1]-1])
		mapped = append(mapped, offsets[m[0]], offsets[m[1]-1])
		prev = m[1]
	}
	b.WriteString(s[prev:])
	mapped = append(mapped, offsets[prev:]...)

	return b.String(), mapped
}
