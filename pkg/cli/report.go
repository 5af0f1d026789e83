package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/githubnext/nestcheck/pkg/balance"
	"github.com/githubnext/nestcheck/pkg/console"
	"github.com/githubnext/nestcheck/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Summary aggregates a batch of results
type Summary struct {
	Files  int `json:"files" yaml:"files"`
	Failed int `json:"failed" yaml:"failed"`
	Issues int `json:"issues" yaml:"issues"`
}

// Report is the machine-readable outcome of one checker run
type Report struct {
	Checker string           `json:"checker" yaml:"checker"`
	Results []balance.Result `json:"results" yaml:"results"`
	Summary Summary          `json:"summary" yaml:"summary"`
}

// NewReport builds a report and its summary
func NewReport(checker string, results []balance.Result) Report {
	report := Report{Checker: checker, Results: results}
	report.Summary.Files = len(results)
	for _, r := range results {
		if !r.OK() {
			report.Summary.Failed++
			report.Summary.Issues += len(r.Issues)
		}
	}
	return report
}

// HasIssues reports whether any file had a finding
func (r Report) HasIssues() bool {
	return r.Summary.Failed > 0
}

// textHooks customizes the text rendering for a checker
type textHooks struct {
	// preamble is printed before a file's outcome; may return ""
	preamble func(balance.Result) string
	// success is the OK line for a clean file; may return "" to stay silent
	success func(balance.Result) string
}

// Reporter writes reports in the configured format
type Reporter struct {
	Out     io.Writer
	Format  string
	Rich    bool // colors and source context, for terminals
	Verbose bool
}

// Write renders report to the reporter's output
func (rp *Reporter) Write(report Report, hooks textHooks) error {
	switch rp.Format {
	case constants.FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON report: %w", err)
		}
		_, err = fmt.Fprintln(rp.Out, string(data))
		return err
	case constants.FormatYAML:
		enc := yaml.NewEncoder(rp.Out)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode YAML report: %w", err)
		}
		return enc.Close()
	default:
		return rp.writeText(report, hooks)
	}
}

func (rp *Reporter) writeText(report Report, hooks textHooks) error {
	var b strings.Builder

	for _, result := range report.Results {
		if hooks.preamble != nil {
			if line := hooks.preamble(result); line != "" {
				b.WriteString(line + "\n")
			}
		}

		if result.OK() {
			if hooks.success == nil {
				continue
			}
			if line := hooks.success(result); line != "" {
				if rp.Rich {
					line = console.FormatSuccessMessage(line)
				}
				b.WriteString(line + "\n")
			}
			continue
		}

		for _, issue := range result.Issues {
			b.WriteString(rp.formatIssue(result.File, issue))
		}
	}

	if rp.Verbose && len(report.Results) > 1 {
		b.WriteString("\n")
		b.WriteString(renderSummaryTable(report))
	}

	_, err := io.WriteString(rp.Out, b.String())
	return err
}

// formatIssue renders one finding. Plain output keeps the
// "<file>:<line>:<col>: Error: <message>" shape editors and scripts parse.
func (rp *Reporter) formatIssue(file string, issue balance.Issue) string {
	if issue.Kind == balance.ReadFailure {
		if rp.Rich {
			return console.FormatErrorMessage(issue.Message) + "\n"
		}
		return issue.Message + "\n"
	}

	if !rp.Rich {
		loc := fmt.Sprintf("%s:%d", file, issue.Pos.Line)
		if issue.Pos.Column > 0 {
			loc += ":" + strconv.Itoa(issue.Pos.Column)
		}
		return fmt.Sprintf("%s: Error: %s\n", loc, issue.Message)
	}

	context, start := sourceContext(file, issue.Pos.Line)
	return console.FormatDiagnostic(console.Diagnostic{
		Position: console.ErrorPosition{
			File:   file,
			Line:   issue.Pos.Line,
			Column: issue.Pos.Column,
		},
		Severity:     "error",
		Message:      issue.Message,
		Context:      context,
		ContextStart: start,
		Hint:         issueHint(issue),
	})
}

func issueHint(issue balance.Issue) string {
	switch issue.Kind {
	case balance.MismatchedCloser:
		if issue.Opener != nil {
			return fmt.Sprintf("'%s' opened at line %d, column %d is still open here", issue.Opener.Kind, issue.Opener.Pos.Line, issue.Opener.Pos.Column)
		}
	case balance.MissingMarker:
		return "check the tags.marker setting or pass --marker"
	}
	return ""
}

// sourceContext returns the line before, the line itself and the line after
func sourceContext(file string, line int) ([]string, int) {
	if line < 1 {
		return nil, 0
	}
	content, err := balance.ReadSource(file)
	if err != nil {
		return nil, 0
	}
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	if line > len(lines) {
		return nil, 0
	}
	start := max(line-2, 0)
	end := min(line+1, len(lines))
	return lines[start:end], start + 1
}

func renderSummaryTable(report Report) string {
	rows := make([][]string, 0, len(report.Results))
	for _, r := range report.Results {
		status := "ok"
		if !r.OK() {
			status = "error"
		}
		rows = append(rows, []string{console.ToRelativePath(r.File), status, strconv.Itoa(len(r.Issues))})
	}

	return console.RenderTable(console.TableConfig{
		Title:     fmt.Sprintf("%s summary", report.Checker),
		Headers:   []string{"File", "Status", "Issues"},
		Rows:      rows,
		ShowTotal: true,
		TotalRow: []string{
			fmt.Sprintf("%d files", report.Summary.Files),
			fmt.Sprintf("%d failed", report.Summary.Failed),
			strconv.Itoa(report.Summary.Issues),
		},
	})
}
