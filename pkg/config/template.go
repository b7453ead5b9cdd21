package config

import "fmt"

// Template formats accepted by GenerateTemplate.
const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
)

const yamlTemplate = `# parkdown configuration
# See: https://github.com/yaklabco/parkdown

# Grammar rule the input is parsed as (see "parkdown rules")
rule: file

# Output format: tree, tokens, json or html
format: tree

# Render the parsed document to HTML
transform: false

# Maximum grammar rule nesting
max_depth: 512

html:
  # Markdown flavor for text blocks: commonmark or gfm
  flavor: commonmark
  # Pass HTML tags through unescaped
  unsafe: true
  # Guess the language of fences that do not name one
  detect_language: false

describe:
  # Truncate leaf text in tree output (0 = no limit)
  max_text: 0
`

const tomlTemplate = `# parkdown configuration
# See: https://github.com/yaklabco/parkdown

# Grammar rule the input is parsed as (see "parkdown rules")
rule = "file"

# Output format: tree, tokens, json or html
format = "tree"

# Render the parsed document to HTML
transform = false

# Maximum grammar rule nesting
max_depth = 512

[html]
# Markdown flavor for text blocks: commonmark or gfm
flavor = "commonmark"
# Pass HTML tags through unescaped
unsafe = true
# Guess the language of fences that do not name one
detect_language = false

[describe]
# Truncate leaf text in tree output (0 = no limit)
max_text = 0
`

// GenerateTemplate returns a commented configuration file holding the
// default settings in the given format.
func GenerateTemplate(format string) ([]byte, error) {
	switch format {
	case TemplateYAML, "yml", "":
		return []byte(yamlTemplate), nil
	case TemplateTOML:
		return []byte(tomlTemplate), nil
	default:
		return nil, fmt.Errorf("unknown template format %q; valid formats: yaml, toml", format)
	}
}
