package convert

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/yaklabco/richtext/internal/logging"
	"github.com/yaklabco/richtext/pkg/config"
	"github.com/yaklabco/richtext/pkg/create"
	"github.com/yaklabco/richtext/pkg/dom"
	"github.com/yaklabco/richtext/pkg/record"
)

// markdownFragmentTag wraps Markdown paragraphs. Markdown without a configured
// multiline tag reads each paragraph as one fragment.
const markdownFragmentTag = "p"

// Converter reads documents into records. It is safe for concurrent use.
type Converter struct {
	flavor           config.Flavor
	multilineTag     string
	policy           *bluemonday.Policy
	md               goldmark.Markdown
	removeAttributes []string
	unwrapTags       []string
}

// New creates a Converter from cfg. A nil cfg uses config.NewConfig.
func New(cfg *config.Config) *Converter {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	flavor := flavorOrDefault(cfg.Flavor)
	conv := &Converter{
		flavor:           flavor,
		multilineTag:     strings.ToLower(cfg.MultilineTag),
		md:               newGoldmarkInstance(flavor),
		removeAttributes: lowerAll(cfg.RemoveAttributes),
		unwrapTags:       lowerAll(cfg.UnwrapTags),
	}

	if cfg.Sanitize.Enabled {
		conv.policy = NewPolicy(cfg.Sanitize.Policy)
	}

	return conv
}

// Flavor returns the Markdown flavor in use.
func (c *Converter) Flavor() config.Flavor {
	return c.flavor
}

// Convert reads content of the given format into a record.
func (c *Converter) Convert(ctx context.Context, format Format, content []byte) (record.Record, error) {
	if err := ctx.Err(); err != nil {
		return record.Record{}, fmt.Errorf("convert cancelled: %w", err)
	}

	logger := logging.FromContext(ctx)

	var (
		value record.Record
		err   error
	)

	switch format {
	case FormatText:
		value = create.FromText(string(content))
	case FormatHTML:
		value, err = c.fromHTML(content, c.multilineTag)
	case FormatMarkdown:
		value, err = c.fromMarkdown(content)
	default:
		return record.Record{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err != nil {
		return record.Record{}, err
	}

	logger.Debug("converted document",
		logging.FieldFormat, format,
		logging.FieldLength, value.Len(),
		logging.FieldSanitize, c.policy != nil,
	)

	return value, nil
}

func (c *Converter) fromMarkdown(content []byte) (record.Record, error) {
	rendered, err := renderMarkdown(c.md, content)
	if err != nil {
		return record.Record{}, err
	}

	tag := c.multilineTag
	if tag == "" {
		tag = markdownFragmentTag
	}

	return c.fromHTML(rendered, tag)
}

func (c *Converter) fromHTML(content []byte, multilineTag string) (record.Record, error) {
	if c.policy != nil {
		content = c.policy.SanitizeBytes(content)
	}

	value, err := create.FromHTML(string(content), create.Options{
		MultilineTag:    multilineTag,
		RemoveAttribute: c.removeAttribute,
		UnwrapNode:      c.unwrapNode,
	})
	if err != nil {
		return record.Record{}, fmt.Errorf("convert html: %w", err)
	}

	return value, nil
}

func (c *Converter) removeAttribute(name string) bool {
	return slices.Contains(c.removeAttributes, strings.ToLower(name))
}

func (c *Converter) unwrapNode(n *dom.Node) bool {
	return slices.Contains(c.unwrapTags, strings.ToLower(n.Tag))
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
