package scaffold

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/toprak/run/pkg/utils/lazy"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/config.schema.json
var schemaBytes []byte

const schemaResource = "config.schema.json"

var (
	configSchema = lazy.New(compileSchema)
	printer      = message.NewPrinter(language.English)
)

// ValidationIssue is one schema violation in a config document.
type ValidationIssue struct {
	Path    string // instance location, e.g. "/git/push"
	Keyword string
	Message string
}

func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ConfigError reports every schema violation found in a config file.
type ConfigError struct {
	File   string
	Issues []ValidationIssue
}

func (e *ConfigError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return fmt.Sprintf("%s: %s", e.File, strings.Join(msgs, "; "))
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func compileSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaResource, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}

	return c.Compile(schemaResource)
}

// ValidateDocument checks a decoded config document against the embedded
// schema. The error return is for documents that cannot be prepared for
// validation; violations are returned as issues.
func ValidateDocument(doc map[string]any) ([]ValidationIssue, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("preparing document: %w", err)
	}

	schema, err := configSchema.Get()
	if err != nil {
		return nil, fmt.Errorf("compiling config schema: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil, nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("validating document: %w", err)
	}

	var issues []ValidationIssue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		issues = append(issues, ValidationIssue{Message: ve.Error()})
	}
	return issues, nil
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}

	issue := ValidationIssue{}
	if len(ve.InstanceLocation) > 0 {
		issue.Path = "/" + strings.Join(ve.InstanceLocation, "/")
	}
	if ve.ErrorKind != nil {
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			issue.Keyword = kw[len(kw)-1]
		}
		issue.Message = ve.ErrorKind.LocalizedString(printer)
	}
	if issue.Keyword == "" || issue.Keyword == "$ref" {
		return
	}

	*issues = append(*issues, issue)
}
