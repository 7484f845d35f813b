// Package escape implements the entity escaping used by every serializer in
// this module. The escape sets are deliberately minimal so that output
// round-trips through the editor's HTML parser unchanged.
package escape

import "strings"

//nolint:gochecknoglobals // Stateless replacers are safe for concurrent use.
var (
	htmlReplacer      = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attributeReplacer = strings.NewReplacer("&", "&amp;", `"`, "&quot;")
)

// HTML escapes text content: &, < and >.
func HTML(s string) string {
	return htmlReplacer.Replace(s)
}

// Attribute escapes a double-quoted attribute value: & and ".
func Attribute(s string) string {
	return attributeReplacer.Replace(s)
}
