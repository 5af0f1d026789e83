package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const modalMarker = "export const EventDetailModal"

func TestTagsCommand(t *testing.T) {
	dir := t.TempDir()
	balanced := writeFile(t, dir, "ok.tsx", "const A = 1;\n"+modalMarker+" = () => (\n  <div><Modal></Modal></div>\n);\n")
	crossed := writeFile(t, dir, "crossed.tsx", modalMarker+" = () => (\n  <div><Modal></div></Modal>\n);\n")
	noMarker := writeFile(t, dir, "nomarker.tsx", "<div>\n")

	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{
			name: "balanced after marker",
			args: []string{"tags", "--marker", modalMarker, balanced},
			want: []string{
				"Checking starting from line 2",
				balanced + ": OK (Tags balanced)",
			},
		},
		{
			name: "silent success",
			args: []string{"tags", "--marker", modalMarker, "--report-success=false", balanced},
			want: []string{"Checking starting from line 2"},
		},
		{
			name: "mismatch",
			args: []string{"tags", "--marker", modalMarker, crossed},
			want: []string{
				"Checking starting from line 1",
				crossed + ":2:15: Error: Mismatch. Expected </Modal> but found </div> (Stack: div, Modal)",
			},
			wantErr: true,
		},
		{
			name: "missing marker falls back with a warning",
			args: []string{"tags", "--marker", modalMarker, noMarker},
			want: []string{
				"Start marker \"" + modalMarker + "\" not found in " + noMarker + ", checking from line 1",
				"Checking starting from line 1",
				noMarker + ":1:1: Error: Unclosed tags: div",
			},
			wantErr: true,
		},
		{
			name: "required marker",
			args: []string{"tags", "--marker", modalMarker, "--require-marker", noMarker},
			want: []string{
				"Checking starting from line 1",
				noMarker + ":1: Error: Start marker \"" + modalMarker + "\" not found",
			},
			wantErr: true,
		},
		{
			name: "custom vocabulary ignores other tags",
			args: []string{"tags", "--tags", "Modal", crossed},
			want: []string{
				"Checking starting from line 1",
				crossed + ": OK (Tags balanced)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, NewTagsCommand(), tt.args...)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIssuesFound)
			} else {
				assert.NoError(t, err)
			}

			lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
			require.Len(t, lines, len(tt.want), "output:\n%s", out)
			for i, want := range tt.want {
				assert.Contains(t, lines[i], want)
			}
		})
	}
}

func TestTagsCommandFromConfig(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "components/Modals.tsx", "<span>\n"+modalMarker+"\n<Dialog></Dialog>\n")
	config := writeFile(t, dir, "c.yaml", "tags:\n  file: "+file+"\n  marker: \""+modalMarker+"\"\n  names: [Dialog]\n")

	out, err := executeCommand(t, NewTagsCommand(), "tags", "--config", config)
	require.NoError(t, err)
	assert.Equal(t, "Checking starting from line 2\n"+file+": OK (Tags balanced)\n", out)
}

func TestTagsCommandErrors(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.tsx", "<div></div>")
	config := writeFile(t, dir, "c.yaml", "format: text\n")

	_, err := executeCommand(t, NewTagsCommand(), "tags", "--config", config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no file to check")

	_, err = executeCommand(t, NewTagsCommand(), "tags", "--config", config, "--tags", "my-tag", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid tag name 'my-tag'")
}

func TestTagsCommandYAML(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.tsx", modalMarker+"\n</Modal>\n")

	out, err := executeCommand(t, NewTagsCommand(), "tags", "--format", "yaml", "--marker", modalMarker, file)
	assert.ErrorIs(t, err, ErrIssuesFound)

	var report map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	assert.Equal(t, "tags", report["checker"])

	results, ok := report["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 1)
	result := results[0].(map[string]any)
	assert.Equal(t, 1, result["start_line"])
	assert.Equal(t, true, result["marker_found"])
	issues := result["issues"].([]any)
	require.Len(t, issues, 1)
	assert.Equal(t, "Orphan closing tag </Modal>", issues[0].(map[string]any)["message"])
}
