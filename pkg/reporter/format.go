package reporter

import (
	"fmt"
	"slices"
	"strings"
)

// Format names an output format.
type Format string

// Output formats. FormatTree is the default.
const (
	FormatTree   Format = "tree"
	FormatTokens Format = "tokens"
	FormatJSON   Format = "json"
	FormatHTML   Format = "html"
)

//nolint:gochecknoglobals // read-only table
var formats = []Format{FormatTree, FormatTokens, FormatJSON, FormatHTML}

// Formats returns every known format, default first.
func Formats() []Format {
	return slices.Clone(formats)
}

// ParseFormat resolves a format name. The empty string selects FormatTree.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatTree, nil
	}

	if format := Format(name); format.IsValid() {
		return format, nil
	}

	valid := make([]string, len(formats))
	for i, f := range formats {
		valid[i] = string(f)
	}

	return "", fmt.Errorf("unknown format %q; valid formats: %s", name, strings.Join(valid, ", "))
}

func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	return slices.Contains(formats, f)
}
