package convert

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/yaklabco/richtext/pkg/config"
)

// inlineElements are the tags a record can represent as formats or objects.
//
//nolint:gochecknoglobals // Read-only allow-list.
var inlineElements = []string{
	"a", "abbr", "b", "bdi", "bdo", "br", "cite", "code", "del", "dfn", "em",
	"i", "img", "ins", "kbd", "mark", "q", "s", "samp", "small", "span", "strong",
	"sub", "sup", "time", "u", "var",
}

// NewPolicy returns the bluemonday policy for name. Unknown names fall back
// to the inline policy.
func NewPolicy(name config.SanitizePolicy) *bluemonday.Policy {
	switch name {
	case config.PolicyStrict:
		return bluemonday.StrictPolicy()
	case config.PolicyUGC:
		return bluemonday.UGCPolicy()
	default:
		return inlinePolicy()
	}
}

func inlinePolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()

	policy.AllowElements(inlineElements...)
	policy.AllowElements("p", "li")
	policy.AllowStandardURLs()
	policy.AllowAttrs("href", "title").OnElements("a")
	policy.AllowImages()
	policy.AllowAttrs("datetime").OnElements("time", "del", "ins")
	policy.AllowAttrs("title").OnElements("abbr", "dfn")
	policy.AllowAttrs("lang", "dir").Globally()

	return policy
}
