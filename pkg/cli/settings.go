package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/githubnext/nestcheck/pkg/constants"
	"github.com/githubnext/nestcheck/pkg/parser"
	"github.com/spf13/cobra"
)

// Settings is the effective configuration of one command run: the config
// file, overridden by any flag the user set explicitly
type Settings struct {
	*parser.Config
	Verbose bool
	Watch   bool
}

// AddGlobalFlags registers the flags shared by every checker command
func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Enable verbose output showing detailed information")
	flags.String("config", "", "Path to a configuration file (default "+constants.DefaultConfigFile+" if present)")
	flags.String("format", constants.FormatText, "Report format: "+strings.Join(constants.ReportFormats, ", "))
	flags.Bool("collect-all", false, "Keep scanning after the first issue and report every issue in each file")
	flags.IntP("workers", "j", constants.DefaultWorkers, "Number of files checked in parallel")
	flags.BoolP("watch", "w", false, "Watch the checked files and re-run on every change")
}

// ResolveSettings loads the configuration file and applies flag overrides
func ResolveSettings(cmd *cobra.Command) (*Settings, error) {
	flags := cmd.Flags()

	configPath, _ := flags.GetString("config")
	cfg, err := parser.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	s := &Settings{Config: cfg}
	s.Verbose, _ = flags.GetBool("verbose")
	s.Watch, _ = flags.GetBool("watch")

	if flags.Changed("format") {
		s.Format, _ = flags.GetString("format")
	}
	if flags.Changed("collect-all") {
		s.CollectAll, _ = flags.GetBool("collect-all")
	}
	if flags.Changed("workers") {
		s.Workers, _ = flags.GetInt("workers")
	}

	if err := validateSettings(s); err != nil {
		return nil, err
	}
	return s, nil
}

func validateSettings(s *Settings) error {
	if !slices.Contains(constants.ReportFormats, s.Format) {
		return fmt.Errorf("invalid format value '%s'. Must be one of: %s", s.Format, strings.Join(constants.ReportFormats, ", "))
	}
	if s.Workers < 1 || s.Workers > constants.MaxWorkers {
		return fmt.Errorf("invalid workers value %d. Must be between 1 and %d", s.Workers, constants.MaxWorkers)
	}
	if s.Watch && s.Format != constants.FormatText {
		return fmt.Errorf("--watch only supports the %s format", constants.FormatText)
	}
	return nil
}
