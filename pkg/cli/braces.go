package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/githubnext/nestcheck/pkg/balance"
	"github.com/githubnext/nestcheck/pkg/constants"
	"github.com/spf13/cobra"
)

// NewBracesCommand creates the braces command
func NewBracesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "braces <file>...",
		Short: "Check that brackets, braces and parentheses are balanced",
		Long: `Check that every '{', '[' and '(' is closed by its counterpart in the right order.

Each file is read as UTF-8 and scanned character by character. The first problem
in a file is reported as <file>:<line>:<col>: Error: <message> and scanning of that
file stops; balanced files print "<file>: OK (Braces balanced)". A file that cannot
be read is reported and skipped without stopping the rest of the batch.

Strings and comments are not understood: a bracket inside a string literal counts.

When no file is given, braces.files from the configuration file is used.
The command exits with status 1 when any file has a problem.

Examples:
  ` + constants.CLIName + ` braces App.tsx components/Modals.tsx
  ` + constants.CLIName + ` braces --collect-all src/*.ts        # report every problem per file
  ` + constants.CLIName + ` braces --format json App.tsx         # machine-readable report
  ` + constants.CLIName + ` braces -w App.tsx                    # re-check on every save`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ResolveSettings(cmd)
			if err != nil {
				return err
			}

			files := args
			if len(files) == 0 {
				files = settings.Braces.Files
			}
			if len(files) == 0 {
				return fmt.Errorf("no files to check\nUsage: %s braces <file1> <file2> ...", constants.CLIName)
			}

			return RunBraces(cmd.Context(), files, settings, cmd.OutOrStdout())
		},
	}
}

// RunBraces checks files for balanced brackets and writes the report to out
func RunBraces(ctx context.Context, files []string, settings *Settings, out io.Writer) error {
	opts := balance.Options{CollectAll: settings.CollectAll}
	check := func(path string) balance.Result {
		return balance.CheckBraceFile(path, opts)
	}
	return runChecker(ctx, "braces", files, settings, out, check, textHooks{success: bracesSuccess})
}
