package balance

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMarker = "export const EventDetailModal"

func newTestTagChecker() *TagChecker {
	return NewTagChecker([]string{"div", "Modal"}, testMarker)
}

func TestTagCheckerCheck(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		wantKind  IssueKind
		wantPos   Position
		wantMsg   string
		wantStart int
	}{
		{
			name: "balanced after marker",
			lines: []string{
				"import React from 'react';",
				testMarker + " = () => (",
				"  <div><Modal></Modal></div>",
				");",
			},
			wantStart: 2,
		},
		{
			name: "crossed closing tags",
			lines: []string{
				testMarker + " = () => (",
				"  <div><Modal>",
				"  </div></Modal>",
				");",
			},
			wantKind:  MismatchedCloser,
			wantPos:   Position{Line: 3, Column: 3},
			wantMsg:   "Mismatch. Expected </Modal> but found </div> (Stack: div, Modal)",
			wantStart: 1,
		},
		{
			name: "orphan closing tag",
			lines: []string{
				testMarker,
				"<div></div></Modal>",
			},
			wantKind:  UnexpectedCloser,
			wantPos:   Position{Line: 2, Column: 12},
			wantMsg:   "Orphan closing tag </Modal>",
			wantStart: 1,
		},
		{
			name: "unclosed tags listed bottom to top",
			lines: []string{
				testMarker,
				"<div>",
				"  <Modal isOpen={open}>",
			},
			wantKind:  Unclosed,
			wantPos:   Position{Line: 3, Column: 3},
			wantMsg:   "Unclosed tags: div, Modal",
			wantStart: 1,
		},
		{
			name: "errors before the marker are ignored",
			lines: []string{
				"</div></div>",
				testMarker,
				"<div></div>",
			},
			wantStart: 2,
		},
		{
			name: "untracked tags are ignored",
			lines: []string{
				testMarker,
				"<div><span></div>",
				"<p>",
			},
			wantStart: 1,
		},
		{
			name: "self-closing tags never nest",
			lines: []string{
				testMarker,
				"<div><Modal isOpen /></div>",
				"<div/>",
			},
			wantStart: 1,
		},
		{
			name: "tags inside string literals are stripped",
			lines: []string{
				testMarker,
				`<div title="</div>" data-x='<Modal>'>`,
				"</div>",
			},
			wantStart: 1,
		},
		{
			name: "column maps back past stripped literals",
			lines: []string{
				testMarker,
				`<div className="a b c"></Modal>`,
			},
			wantKind:  MismatchedCloser,
			wantPos:   Position{Line: 2, Column: 24},
			wantMsg:   "Mismatch. Expected </div> but found </Modal> (Stack: div)",
			wantStart: 1,
		},
		{
			name: "missing marker scans from the first line",
			lines: []string{
				"</div>",
			},
			wantKind:  UnexpectedCloser,
			wantPos:   Position{Line: 1, Column: 1},
			wantMsg:   "Orphan closing tag </div>",
			wantStart: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newTestTagChecker().Check("Modals.tsx", strings.Join(tt.lines, "\n"), Options{})
			assert.Equal(t, tt.wantStart, result.StartLine)

			if tt.wantKind == "" {
				assert.True(t, result.OK(), "expected balanced input, got %+v", result.Issues)
				return
			}

			require.Len(t, result.Issues, 1)
			issue := result.Issues[0]
			assert.Equal(t, tt.wantKind, issue.Kind)
			assert.Equal(t, tt.wantPos, issue.Pos)
			assert.Equal(t, tt.wantMsg, issue.Message)
		})
	}
}

func TestTagCheckerMismatchDetails(t *testing.T) {
	content := testMarker + "\n<div><Modal></div></Modal>"

	result := newTestTagChecker().Check("x", content, Options{})
	issue, ok := result.First()
	require.True(t, ok)

	assert.Equal(t, 2, issue.Pos.Line)
	assert.Equal(t, "div", issue.Token)
	assert.Equal(t, "Modal", issue.Expected)
	require.NotNil(t, issue.Opener)
	assert.Equal(t, "Modal", issue.Opener.Kind)
	require.Len(t, issue.Open, 2)
	assert.Equal(t, "div", issue.Open[0].Kind)
	assert.Equal(t, "Modal", issue.Open[1].Kind)
}

func TestTagCheckerMarker(t *testing.T) {
	content := "<div>\n<div></div>"

	t.Run("missing marker falls back to line 1", func(t *testing.T) {
		result := newTestTagChecker().Check("x", content, Options{})
		assert.False(t, result.MarkerFound)
		assert.Equal(t, 1, result.StartLine)
		require.Len(t, result.Issues, 1)
		assert.Equal(t, Unclosed, result.Issues[0].Kind)
	})

	t.Run("required marker", func(t *testing.T) {
		tc := newTestTagChecker()
		tc.RequireMarker = true

		result := tc.Check("x", content, Options{})
		require.Len(t, result.Issues, 1)
		assert.Equal(t, MissingMarker, result.Issues[0].Kind)
		assert.Equal(t, `Start marker "export const EventDetailModal" not found`, result.Issues[0].Message)

		all := tc.Check("x", content, Options{CollectAll: true})
		require.Len(t, all.Issues, 2)
		assert.Equal(t, MissingMarker, all.Issues[0].Kind)
		assert.Equal(t, Unclosed, all.Issues[1].Kind)
	})

	t.Run("empty marker", func(t *testing.T) {
		tc := NewTagChecker([]string{"div"}, "")
		tc.RequireMarker = true

		result := tc.Check("x", "<div></div>", Options{})
		assert.True(t, result.MarkerFound)
		assert.True(t, result.OK())
	})
}

func TestTagCheckerCollectAll(t *testing.T) {
	content := strings.Join([]string{
		testMarker,
		"</Modal>",
		"<div><Modal></div>",
		"<div>",
	}, "\n")

	first := newTestTagChecker().Check("x", content, Options{})
	all := newTestTagChecker().Check("x", content, Options{CollectAll: true})

	require.Len(t, first.Issues, 1)
	require.Len(t, all.Issues, 3)
	assert.Equal(t, first.Issues[0], all.Issues[0])
	assert.Equal(t, UnexpectedCloser, all.Issues[0].Kind)
	assert.Equal(t, MismatchedCloser, all.Issues[1].Kind)
	assert.Equal(t, Unclosed, all.Issues[2].Kind)
	assert.Equal(t, "Unclosed tags: div, div", all.Issues[2].Message)
}

func TestNewTagCheckerCopiesNames(t *testing.T) {
	names := []string{"div", "Modal"}
	tc := NewTagChecker(names, "")
	names[0] = "span"

	assert.Equal(t, []string{"div", "Modal"}, tc.Names)
}

func TestTagCheckerCheckFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Modals.tsx")
	require.NoError(t, os.WriteFile(path, []byte(testMarker+"\r\n<div>\r\n</div>\r\n"), 0644))

	result := newTestTagChecker().CheckFile(path, Options{})
	assert.True(t, result.OK())
	assert.True(t, result.MarkerFound)
	assert.Equal(t, path, result.File)

	missing := newTestTagChecker().CheckFile(filepath.Join(dir, "nope.tsx"), Options{})
	require.Len(t, missing.Issues, 1)
	assert.Equal(t, ReadFailure, missing.Issues[0].Kind)
}

func TestStripQuoted(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{line: `<div a="x">`, want: `<div a="">`},
		{line: `<div a='x' b="y">`, want: `<div a='' b="">`},
		{line: `it's "quoted 'inner'"`, want: `it's ""`},
		{line: `no quotes`, want: `no quotes`},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, offsets := stripQuoted(tt.line)
			assert.Equal(t, tt.want, got)
			require.Len(t, offsets, len(got)+1)
			assert.Equal(t, len(tt.line), offsets[len(got)])
		})
	}
}
