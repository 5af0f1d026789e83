package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// goccyErrorPattern matches the "[line:column] message" prefix of goccy/go-yaml errors
var goccyErrorPattern = regexp.MustCompile(`^\[(\d+):(\d+)\]\s*(.*)`)

// ExtractYAMLError extracts line and column information from YAML parsing errors.
// lineOffset is added to the reported line for documents embedded in a larger file.
func ExtractYAMLError(err error, lineOffset int) (line int, column int, message string) {
	errStr := err.Error()
	firstLine, _, _ := strings.Cut(strings.TrimSpace(errStr), "\n")

	// goccy/go-yaml: "[3:5] mapping value is not allowed in this context"
	if m := goccyErrorPattern.FindStringSubmatch(firstLine); m != nil {
		if _, scanErr := fmt.Sscanf(m[1]+" "+m[2], "%d %d", &line, &column); scanErr == nil {
			return line + lineOffset, column, strings.TrimSpace(m[3])
		}
	}

	// "yaml: line X: column Y: message"
	if rest, ok := cutAfter(errStr, "yaml: line "); ok {
		lineStr, afterLine, found := strings.Cut(rest, ":")
		if found {
			if _, scanErr := fmt.Sscanf(lineStr, "%d", &line); scanErr == nil {
				afterLine = strings.TrimSpace(afterLine)
				if colRest, ok := strings.CutPrefix(afterLine, "column "); ok {
					colStr, msg, found := strings.Cut(colRest, ":")
					if found {
						if _, scanErr := fmt.Sscanf(colStr, "%d", &column); scanErr == nil {
							return line + lineOffset, column, strings.TrimSpace(msg)
						}
					}
				}
				return line + lineOffset, 1, afterLine
			}
		}
	}

	// "yaml: unmarshal errors:\n  line X: message"
	if strings.Contains(errStr, "yaml: unmarshal errors:") {
		for _, errorLine := range strings.Split(errStr, "\n") {
			rest, ok := cutAfter(strings.TrimSpace(errorLine), "line ")
			if !ok {
				continue
			}
			lineStr, msg, found := strings.Cut(rest, ":")
			if !found {
				continue
			}
			if _, scanErr := fmt.Sscanf(lineStr, "%d", &line); scanErr == nil {
				return line + lineOffset, 1, strings.TrimSpace(msg)
			}
		}
	}

	return 0, 0, errStr
}

func cutAfter(s, sep string) (string, bool) {
	_, after, found := strings.Cut(s, sep)
	return after, found
}
