package constants

// CLIName is the name used in user-facing output to refer to the CLI
const CLIName = "nestcheck"

// DefaultConfigFile is looked up in the working directory when --config is not given
const DefaultConfigFile = ".nestcheck.yaml"

// DefaultWorkers bounds how many files are scanned at once
const DefaultWorkers = 4

// MaxWorkers is the largest accepted worker count
const MaxWorkers = 64

// DefaultTagNames is the tag vocabulary tracked when none is configured
var DefaultTagNames = []string{"div", "Modal"}

// Report formats accepted by --format
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ReportFormats lists the accepted --format values
var ReportFormats = []string{FormatText, FormatJSON, FormatYAML}
