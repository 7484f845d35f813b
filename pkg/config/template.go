package config

import (
	"bytes"
	"fmt"
)

// DefaultFilename is the project configuration file name.
const DefaultFilename = ".richtext.yml"

// GenerateTemplate creates a commented configuration file. The active values
// are taken from cfg; commented entries document the remaining keys.
func GenerateTemplate(cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = NewConfig()
	}

	var buf bytes.Buffer

	buf.WriteString(`# richtext configuration
# See: https://github.com/yaklabco/richtext

# Tag wrapping each multiline fragment (p, li). Empty for single-line values.
`)
	fmt.Fprintf(&buf, "multiline_tag: %q\n", cfg.MultilineTag)

	buf.WriteString(`
# Input format: html, markdown or text. Empty detects it from the extension.
`)
	fmt.Fprintf(&buf, "input: %q\n", string(cfg.Input))

	buf.WriteString(`
# Output format: html, json, tree or text
`)
	fmt.Fprintf(&buf, "output: %s\n", cfg.Output)

	buf.WriteString(`
# Markdown flavor: commonmark or gfm
`)
	fmt.Fprintf(&buf, "flavor: %s\n", cfg.Flavor)

	buf.WriteString(`
# HTML sanitization before conversion. Policies: strict, ugc, inline
sanitize:
`)
	fmt.Fprintf(&buf, "  enabled: %t\n", cfg.Sanitize.Enabled)
	fmt.Fprintf(&buf, "  policy: %s\n", cfg.Sanitize.Policy)

	buf.WriteString(`
# Attribute names dropped from formats
# remove_attributes:
#   - style
#   - class

# Tags kept as content but not as formats
# unwrap_tags:
#   - span

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`)

	return buf.Bytes(), nil
}
