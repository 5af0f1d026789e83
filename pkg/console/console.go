package console

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ErrorPosition represents a position in a source file
type ErrorPosition struct {
	File   string
	Line   int
	Column int // 1-based, counted in characters; 0 when unknown
}

// Diagnostic represents a finding with position information
type Diagnostic struct {
	Position ErrorPosition
	Severity string // "error", "warning", "info"
	Message  string
	Context  []string // Source lines shown under the message
	// ContextStart is the line number of Context[0]. When zero the context
	// is assumed to be centered on Position.Line.
	ContextStart int
	Hint         string // Optional hint for fixing the problem
}

// Styles for different severities
var (
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5555"))

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))

	infoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#50FA7B"))

	filePathStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#BD93F9"))

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))

	contextLineStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F8F8F2"))

	highlightStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#FF5555")).
			Foreground(lipgloss.Color("#282A36"))

	hintStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#50FA7B"))

	verboseStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#6272A4"))
)

// IsTTY checks if stdout is a terminal
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// applyStyle conditionally applies styling based on TTY status
func applyStyle(style lipgloss.Style, text string) string {
	if IsTTY() {
		return style.Render(text)
	}
	return text
}

// ToRelativePath converts an absolute path to a relative path from the current working directory
func ToRelativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}

	wd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(wd, path)
	if err != nil {
		return path
	}

	return relPath
}

// FormatLocation renders "file:line:col:" (or "file:line:" when the column is unknown)
func FormatLocation(pos ErrorPosition) string {
	relativePath := ToRelativePath(pos.File)
	switch {
	case pos.Line > 0 && pos.Column > 0:
		return fmt.Sprintf("%s:%d:%d:", relativePath, pos.Line, pos.Column)
	case pos.Line > 0:
		return fmt.Sprintf("%s:%d:", relativePath, pos.Line)
	default:
		return relativePath + ":"
	}
}

// FormatDiagnostic formats a Diagnostic with Rust-like rendering
func FormatDiagnostic(d Diagnostic) string {
	var output strings.Builder

	var typeStyle lipgloss.Style
	var prefix string
	switch d.Severity {
	case "warning":
		typeStyle = warningStyle
		prefix = "warning"
	case "info":
		typeStyle = infoStyle
		prefix = "info"
	default:
		typeStyle = errorStyle
		prefix = "error"
	}

	// IDE-parseable format: file:line:column: type: message
	if d.Position.File != "" {
		output.WriteString(applyStyle(filePathStyle, FormatLocation(d.Position)))
		output.WriteString(" ")
	}

	output.WriteString(applyStyle(typeStyle, prefix+":"))
	output.WriteString(" ")
	output.WriteString(d.Message)
	output.WriteString("\n")

	if len(d.Context) > 0 && d.Position.Line > 0 {
		output.WriteString(renderContext(d))
	}

	if d.Hint != "" {
		output.WriteString(applyStyle(hintStyle, "hint: "))
		output.WriteString(d.Hint)
		output.WriteString("\n")
	}

	return output.String()
}

// renderContext renders source lines with line numbers and a caret under the column
func renderContext(d Diagnostic) string {
	var output strings.Builder

	first := d.ContextStart
	if first == 0 {
		first = d.Position.Line - len(d.Context)/2
	}
	lineNumWidth := len(fmt.Sprintf("%d", first+len(d.Context)-1))

	for i, line := range d.Context {
		lineNum := first + i
		if lineNum < 1 {
			continue
		}

		output.WriteString(applyStyle(lineNumberStyle, fmt.Sprintf("%*d", lineNumWidth, lineNum)))
		output.WriteString(" | ")

		if lineNum != d.Position.Line {
			output.WriteString(applyStyle(contextLineStyle, line))
			output.WriteString("\n")
			continue
		}

		runes := []rune(line)
		col := d.Position.Column
		if col > 0 && col <= len(runes) {
			output.WriteString(applyStyle(contextLineStyle, string(runes[:col-1])))
			output.WriteString(applyStyle(highlightStyle, string(runes[col-1])))
			output.WriteString(applyStyle(contextLineStyle, string(runes[col:])))
		} else {
			output.WriteString(applyStyle(highlightStyle, line))
		}
		output.WriteString("\n")

		if col > 0 {
			output.WriteString(strings.Repeat(" ", lineNumWidth+3+col-1))
			output.WriteString(applyStyle(errorStyle, "^"))
			output.WriteString("\n")
		}
	}

	return output.String()
}

// FormatSuccessMessage formats a success message with styling
func FormatSuccessMessage(message string) string {
	return applyStyle(successStyle, "✓ ") + message
}

// FormatInfoMessage formats an informational message
func FormatInfoMessage(message string) string {
	return applyStyle(infoStyle, "ℹ ") + message
}

// FormatWarningMessage formats a warning message
func FormatWarningMessage(message string) string {
	return applyStyle(warningStyle, "⚠ ") + message
}

// FormatVerboseMessage formats verbose debugging output
func FormatVerboseMessage(message string) string {
	return applyStyle(verboseStyle, "🔍 ") + message
}

// FormatErrorMessage formats a simple error message (for stderr output)
func FormatErrorMessage(message string) string {
	return applyStyle(errorStyle, "✗ ") + message
}
