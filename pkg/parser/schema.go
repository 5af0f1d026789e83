package parser

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/githubnext/nestcheck/pkg/console"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

//go:embed schemas/config_schema.json
var configSchema string

const configSchemaURL = "https://github.com/githubnext/nestcheck/config.json"

// locationPrefix is the "- at '/tags/names':" prefix jsonschema puts on each cause
var locationPrefix = regexp.MustCompile(`^-?\s*at\s+'[^']*':\s*`)

// SchemaViolation is one leaf validation failure
type SchemaViolation struct {
	Location []string // instance location, e.g. ["tags", "names", "0"]
	Property string   // offending key for additionalProperties errors
	Message  string
}

// ValidateConfigWithSchema validates decoded configuration using the embedded JSON schema
func ValidateConfigWithSchema(config map[string]any) error {
	schema, err := compileConfigSchema()
	if err != nil {
		return err
	}

	// Round trip through JSON so YAML integer types become JSON numbers
	if config == nil {
		config = make(map[string]any)
	}
	data, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("schema validation error for config: failed to marshal config: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(data, &normalized); err != nil {
		return fmt.Errorf("schema validation error for config: failed to unmarshal config: %w", err)
	}

	return schema.Validate(normalized)
}

// ValidateConfigWithSchemaAndLocation validates configuration and, on failure,
// returns a diagnostic that points at the offending key in content
func ValidateConfigWithSchemaAndLocation(config map[string]any, content []byte, filePath string) error {
	err := ValidateConfigWithSchema(config)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return err
	}

	violations := CollectSchemaViolations(validationErr)
	if len(violations) == 0 {
		return err
	}

	first := violations[0]
	line, column := 1, 1
	if pos, ok := LocateConfigPath(content, first.Location, first.Property); ok {
		line, column = pos.Line, pos.Column
	}

	messages := make([]string, 0, len(violations))
	for _, v := range violations {
		messages = append(messages, v.String())
	}

	return errors.New(console.FormatDiagnostic(console.Diagnostic{
		Position:     console.ErrorPosition{File: filePath, Line: line, Column: column},
		Severity:     "error",
		Message:      strings.Join(messages, "; "),
		Context:      contextAround(content, line),
		ContextStart: max(line-1, 1),
		Hint:         "Check the configuration against the schema requirements",
	}))
}

// CollectSchemaViolations flattens a validation error into its leaf causes
func CollectSchemaViolations(err *jsonschema.ValidationError) []SchemaViolation {
	if len(err.Causes) == 0 {
		v := SchemaViolation{
			Location: err.InstanceLocation,
			Message:  cleanJSONSchemaErrorMessage(err.Error()),
		}
		if ap, ok := err.ErrorKind.(*kind.AdditionalProperties); ok && len(ap.Properties) > 0 {
			v.Property = ap.Properties[0]
		}
		return []SchemaViolation{v}
	}

	var violations []SchemaViolation
	for _, cause := range err.Causes {
		violations = append(violations, CollectSchemaViolations(cause)...)
	}
	return violations
}

// String renders the violation as "path: message"
func (v SchemaViolation) String() string {
	if len(v.Location) == 0 {
		return v.Message
	}
	return strings.Join(v.Location, ".") + ": " + v.Message
}

func compileConfigSchema() (*jsonschema.Schema, error) {
	var schemaDoc any
	if err := json.Unmarshal([]byte(configSchema), &schemaDoc); err != nil {
		return nil, fmt.Errorf("schema validation error for config: failed to parse schema JSON: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(configSchemaURL, schemaDoc); err != nil {
		return nil, fmt.Errorf("schema validation error for config: failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile(configSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("schema validation error for config: %w", err)
	}
	return schema, nil
}

// cleanJSONSchemaErrorMessage removes unhelpful prefixes from jsonschema validation errors
func cleanJSONSchemaErrorMessage(errorMsg string) string {
	var cleaned []string
	for _, line := range strings.Split(errorMsg, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "jsonschema validation failed") {
			continue
		}
		cleaned = append(cleaned, locationPrefix.ReplaceAllString(line, ""))
	}

	if len(cleaned) == 0 {
		return "schema validation failed"
	}
	return strings.Join(cleaned, "; ")
}
