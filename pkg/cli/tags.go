package cli

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/githubnext/nestcheck/pkg/balance"
	"github.com/githubnext/nestcheck/pkg/console"
	"github.com/githubnext/nestcheck/pkg/constants"
	"github.com/spf13/cobra"
)

var tagNamePattern = regexp.MustCompile(`^\w+$`)

// NewTagsCommand creates the tags command
func NewTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags [file]...",
		Short: "Check that a fixed set of JSX/HTML tags nest correctly",
		Long: `Check that opening and closing tags of the tracked names nest correctly.

Scanning starts at the first line containing the marker text (or line 1 when no
marker is set or it is not found) and uses a best-effort pattern match, not a
markup parser: only the tracked tag names are considered, self-closing tags are
ignored, and the contents of '...' and "..." literals on a line are skipped.

When no file is given, tags.file from the configuration file is used.
The command exits with status 1 when any file has a problem.

Examples:
  ` + constants.CLIName + ` tags components/Modals.tsx --marker "export const EventDetailModal"
  ` + constants.CLIName + ` tags --tags div,Modal,Dialog components/Modals.tsx
  ` + constants.CLIName + ` tags --require-marker --marker "export default" pages/Agenda.tsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ResolveSettings(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("marker") {
				settings.Tags.Marker, _ = flags.GetString("marker")
			}
			if flags.Changed("tags") {
				settings.Tags.Names, _ = flags.GetStringSlice("tags")
			}
			if flags.Changed("require-marker") {
				settings.Tags.RequireMarker, _ = flags.GetBool("require-marker")
			}
			if flags.Changed("report-success") {
				reportSuccess, _ := flags.GetBool("report-success")
				settings.Tags.ReportSuccess = &reportSuccess
			}

			files := args
			if len(files) == 0 && settings.Tags.File != "" {
				files = []string{settings.Tags.File}
			}
			if len(files) == 0 {
				return fmt.Errorf("no file to check: pass a file or set tags.file in %s\nUsage: %s tags <file>", constants.DefaultConfigFile, constants.CLIName)
			}

			return RunTags(cmd.Context(), files, settings, cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("marker", "", "Start checking at the first line containing this text")
	cmd.Flags().StringSlice("tags", constants.DefaultTagNames, "Tag names to track")
	cmd.Flags().Bool("require-marker", false, "Report a missing marker instead of checking from line 1")
	cmd.Flags().Bool("report-success", true, "Print an OK line when the tags are balanced")

	return cmd
}

// RunTags checks the tag nesting of files and writes the report to out
func RunTags(ctx context.Context, files []string, settings *Settings, out io.Writer) error {
	if err := validateTagNames(settings.Tags.Names); err != nil {
		return err
	}

	checker := balance.NewTagChecker(settings.Tags.Names, settings.Tags.Marker)
	checker.RequireMarker = settings.Tags.RequireMarker

	opts := balance.Options{CollectAll: settings.CollectAll}
	check := func(path string) balance.Result {
		return checker.CheckFile(path, opts)
	}

	hooks := textHooks{
		preamble: func(r balance.Result) string {
			if r.StartLine == 0 {
				// read failure, nothing was scanned
				return ""
			}
			line := fmt.Sprintf("Checking starting from line %d", r.StartLine)
			if !r.MarkerFound && !checker.RequireMarker {
				warning := console.FormatWarningMessage(fmt.Sprintf("Start marker %q not found in %s, checking from line 1", checker.Marker, r.File))
				line = warning + "\n" + line
			}
			return line
		},
	}
	if settings.Tags.ShouldReportSuccess() {
		hooks.success = func(r balance.Result) string {
			return r.File + ": OK (Tags balanced)"
		}
	}

	return runChecker(ctx, "tags", files, settings, out, check, hooks)
}

func validateTagNames(names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("at least one tag name is required")
	}
	var invalid []string
	for _, name := range names {
		if !tagNamePattern.MatchString(name) {
			invalid = append(invalid, fmt.Sprintf("'%s'", name))
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("invalid tag name %s. Tag names may only contain letters, digits and '_'", strings.Join(invalid, ", "))
	}
	return nil
}
