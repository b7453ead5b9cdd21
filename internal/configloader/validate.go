package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/parkdown/internal/ui/pretty"
	"github.com/yaklabco/parkdown/pkg/config"
	"github.com/yaklabco/parkdown/pkg/grammar"
	"github.com/yaklabco/parkdown/pkg/render"
	"github.com/yaklabco/parkdown/pkg/reporter"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "html.flavor").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if _, err := grammar.ParseRule(cfg.Rule); err != nil {
		result.fail("rule", cfg.Rule, "unknown rule %q; run \"parkdown rules\" to list them", cfg.Rule)
	}

	if _, err := reporter.ParseFormat(cfg.Format); err != nil {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: tree, tokens, json, html", cfg.Format)
	}

	if _, err := render.ParseFlavor(cfg.HTML.Flavor); err != nil {
		result.fail("html.flavor", cfg.HTML.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", cfg.HTML.Flavor)
	}

	if cfg.MaxDepth <= 0 {
		result.fail("max_depth", cfg.MaxDepth, "max_depth must be > 0")
	}

	if cfg.Describe.MaxText < 0 {
		result.fail("describe.max_text", cfg.Describe.MaxText, "max_text must be >= 0 (0 means no limit)")
	}

	if !IsValidColor(cfg.Color) {
		result.fail("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}

	if cfg.Format == string(reporter.FormatHTML) && !cfg.Transform {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: "html output implies transform",
		})
	}

	return result
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidColor returns true if mode is a known color mode. Empty means auto.
func IsValidColor(mode string) bool {
	switch mode {
	case "", pretty.ColorAuto, pretty.ColorAlways, pretty.ColorNever:
		return true
	default:
		return false
	}
}
