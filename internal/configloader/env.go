package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/yaklabco/parkdown/pkg/config"
)

const envVarPrefix = "PARKDOWN_"

// envBinding ties one PARKDOWN_* variable to a config field.
type envBinding struct {
	suffix      string
	field       string
	description string
	set         func(cfg *config.Config, value string) error
}

func stringField(field func(*config.Config) *string) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		*field(cfg) = value
		return nil
	}
}

func boolField(field func(*config.Config) *bool) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		*field(cfg) = b
		return nil
	}
}

func intField(field func(*config.Config) *int) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		*field(cfg) = i
		return nil
	}
}

// envBindings is sorted by suffix.
//
//nolint:gochecknoglobals // read-only table
var envBindings = []envBinding{
	{"COLOR", "color", "Color mode: auto, always or never",
		stringField(func(c *config.Config) *string { return &c.Color })},
	{"DETECT_LANGUAGE", "html.detect_language", "Guess fence languages: true or false",
		boolField(func(c *config.Config) *bool { return &c.HTML.DetectLanguage })},
	{"FLAVOR", "html.flavor", "Markdown flavor: commonmark or gfm",
		stringField(func(c *config.Config) *string { return &c.HTML.Flavor })},
	{"FORMAT", "format", "Output format: tree, tokens, json or html",
		stringField(func(c *config.Config) *string { return &c.Format })},
	{"MAX_DEPTH", "max_depth", "Maximum grammar rule nesting",
		intField(func(c *config.Config) *int { return &c.MaxDepth })},
	{"MAX_TEXT", "describe.max_text", "Truncate leaf text in tree output",
		intField(func(c *config.Config) *int { return &c.Describe.MaxText })},
	{"RULE", "rule", "Grammar rule the input is parsed as",
		stringField(func(c *config.Config) *string { return &c.Rule })},
	{"TRANSFORM", "transform", "Render to HTML: true or false",
		boolField(func(c *config.Config) *bool { return &c.Transform })},
	{"UNSAFE", "html.unsafe", "Pass HTML tags through: true or false",
		boolField(func(c *config.Config) *bool { return &c.HTML.Unsafe })},
}

// LoadFromEnv applies PARKDOWN_* variables to cfg. Unset and empty
// variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, binding := range envBindings {
		name := envVarPrefix + binding.suffix

		value := os.Getenv(name)
		if value == "" {
			continue
		}

		if err := binding.set(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

// GetEnvVarName returns the variable that sets a config field, such as
// "PARKDOWN_FLAVOR" for "html.flavor", or "" when none does.
func GetEnvVarName(field string) string {
	idx := slices.IndexFunc(envBindings, func(b envBinding) bool { return b.field == field })
	if idx < 0 {
		return ""
	}
	return envVarPrefix + envBindings[idx].suffix
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns all supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, len(envBindings))
	for i, binding := range envBindings {
		vars[i] = EnvVar{Name: envVarPrefix + binding.suffix, Description: binding.description}
	}
	return vars
}
