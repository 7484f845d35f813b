// Package convert turns HTML, Markdown and plain text documents into rich-text
// records.
package convert

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/richtext/pkg/config"
)

// ErrUnknownFormat is returned when an input format cannot be determined.
var ErrUnknownFormat = errors.New("unknown input format")

// Format identifies an input document format.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// DefaultExtensions returns the file extensions with a known input format.
func DefaultExtensions() []string {
	return []string{".html", ".htm", ".md", ".markdown", ".txt"}
}

// FormatFromPath detects the input format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatHTML, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// ParseFormat parses a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatHTML:
		return FormatHTML, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatText, "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Resolve returns the configured input format, or the one detected from path
// when input is config.InputAuto.
func Resolve(input config.InputFormat, path string) (Format, error) {
	if input == config.InputAuto {
		return FormatFromPath(path)
	}
	return ParseFormat(string(input))
}
