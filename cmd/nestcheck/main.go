package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/githubnext/nestcheck/pkg/cli"
	"github.com/githubnext/nestcheck/pkg/console"
	"github.com/githubnext/nestcheck/pkg/constants"
	"github.com/spf13/cobra"
)

// Build-time variables set by GoReleaser
var (
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   constants.CLIName,
	Short: "Check bracket and tag nesting in source files",
	Long: `nestcheck finds unbalanced nesting in source files.

  braces  checks '{', '[' and '(' against their closing counterparts in any text file
  tags    checks a chosen set of JSX/HTML tags, starting at a marker line

Both checkers report the first problem in each file as <file>:<line>:<col>
and exit with status 1 when any file has a problem. Settings can be kept in
` + constants.DefaultConfigFile + `; command-line flags take precedence.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), console.FormatInfoMessage(fmt.Sprintf("%s version %s", constants.CLIName, version)))
	},
}

func init() {
	cli.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(cli.NewBracesCommand())
	rootCmd.AddCommand(cli.NewTagsCommand())
	rootCmd.AddCommand(versionCmd)
}

// exitCode maps the error returned by a command to the process exit status.
// Findings have already been printed, so they only need the status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, cli.ErrIssuesFound):
		return 1
	default:
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		return 1
	}
}

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	os.Exit(exitCode(err))
}
