// Package config defines core configuration types for parkdown.
// These types are pure data structures; loading and precedence live in
// internal/configloader.
package config

import "github.com/yaklabco/parkdown/pkg/grammar"

// Defaults applied by NewConfig.
const (
	DefaultRule   = "file"
	DefaultFormat = "tree"
	DefaultFlavor = "commonmark"
)

// HTMLConfig controls the HTML renderer.
type HTMLConfig struct {
	// Flavor selects the goldmark extensions for text blocks ("commonmark" or "gfm").
	Flavor string `yaml:"flavor" toml:"flavor"`

	// Unsafe passes raw HTML tags through instead of escaping them.
	Unsafe bool `yaml:"unsafe" toml:"unsafe"`

	// DetectLanguage guesses a language for fences that name none.
	DetectLanguage bool `yaml:"detect_language" toml:"detect_language"`
}

// DescribeConfig controls tree output.
type DescribeConfig struct {
	// MaxText truncates leaf text in tree output. Zero means no limit.
	MaxText int `yaml:"max_text" toml:"max_text"`
}

// Config is the root configuration structure for parkdown.
type Config struct {
	// Rule is the grammar rule the input is parsed as.
	Rule string `yaml:"rule" toml:"rule"`

	// Format is the output format: tree, tokens, json or html.
	Format string `yaml:"format" toml:"format"`

	// Transform renders the parsed document to HTML.
	Transform bool `yaml:"transform" toml:"transform"`

	// MaxDepth bounds grammar rule nesting.
	MaxDepth int `yaml:"max_depth" toml:"max_depth"`

	HTML     HTMLConfig     `yaml:"html" toml:"html"`
	Describe DescribeConfig `yaml:"describe" toml:"describe"`

	// CLI-level options (not persisted to config files).

	// Output is the destination file; empty means stdout.
	Output string `yaml:"-" toml:"-"`

	// Color is the color mode: auto, always or never.
	Color string `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Rule:     DefaultRule,
		Format:   DefaultFormat,
		MaxDepth: grammar.DefaultMaxDepth,
		HTML: HTMLConfig{
			Flavor: DefaultFlavor,
			Unsafe: true,
		},
		Color: "auto",
	}
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
