package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/githubnext/nestcheck/pkg/balance"
	"github.com/githubnext/nestcheck/pkg/console"
	"github.com/githubnext/nestcheck/pkg/constants"
)

// ErrIssuesFound is returned when at least one checked file has a finding.
// The findings themselves have already been reported.
var ErrIssuesFound = errors.New("structural issues found")

// runChecker checks files once, reports, and then either watches for changes
// or returns ErrIssuesFound when something was wrong
func runChecker(ctx context.Context, name string, files []string, s *Settings, out io.Writer, check CheckFunc, hooks textHooks) error {
	reporter := &Reporter{
		Out:     out,
		Format:  s.Format,
		Rich:    s.Format == constants.FormatText && isStdoutTerminal(out),
		Verbose: s.Verbose,
	}

	runOnce := func(paths []string) (Report, error) {
		if s.Verbose {
			fmt.Fprintln(os.Stderr, console.FormatVerboseMessage(fmt.Sprintf("Checking %d file(s) with %d worker(s)", len(paths), min(s.Workers, len(paths)))))
		}
		report := NewReport(name, checkFiles(paths, s.Workers, check))
		return report, reporter.Write(report, hooks)
	}

	report, err := runOnce(files)
	if err != nil {
		return err
	}

	if s.Watch {
		return watchFiles(ctx, files, s.Verbose, out, func(changed []string) {
			if _, err := runOnce(changed); err != nil {
				fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			}
		})
	}

	if report.HasIssues() {
		return ErrIssuesFound
	}
	return nil
}

func isStdoutTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && f == os.Stdout && console.IsTTY()
}

// bracesSuccess is the OK line of a balanced file
func bracesSuccess(r balance.Result) string {
	return r.File + ": OK (Braces balanced)"
}
