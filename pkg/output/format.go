package output

import "fmt"

// Format represents an output format.
type Format string

// Output formats supported by the renderers.
const (
	FormatHTML Format = "html"
	FormatJSON Format = "json"
	FormatTree Format = "tree"
	FormatText Format = "text"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	switch formatStr {
	case "html", "":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	case "tree":
		return FormatTree, nil
	case "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: html, json, tree, text", formatStr)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatHTML, FormatJSON, FormatTree, FormatText:
		return true
	default:
		return false
	}
}
