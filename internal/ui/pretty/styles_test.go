package pretty_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/richtext/internal/ui/pretty"
)

func treeStyles(s *pretty.Styles) map[string]lipgloss.Style {
	return map[string]lipgloss.Style{
		"tag":        s.Tag,
		"attr name":  s.AttrName,
		"attr value": s.AttrValue,
		"text":       s.Text,
		"object":     s.Object,
		"caret":      s.Caret,
		"path":       s.Path,
		"file path":  s.FilePath,
		"success":    s.Success,
		"failure":    s.Failure,
	}
}

func TestNewStyles_PlainLeavesTreeTokensAlone(t *testing.T) {
	for name, style := range treeStyles(pretty.NewStyles(false)) {
		for _, token := range []string{"strong", `"o[ne]"`, "selection [0,1] [0,3]"} {
			assert.Equal(t, token, style.Render(token), "%s style changed %q", name, token)
		}
	}
}

func TestNewStyles_ColorDistinguishesTreeParts(t *testing.T) {
	styles := pretty.NewStyles(true)

	assert.True(t, styles.Tag.GetBold(), "tags are bold")
	assert.True(t, styles.Object.GetBold(), "objects are bold")
	assert.NotEqual(t, styles.Tag.GetForeground(), styles.Object.GetForeground(),
		"objects and tags need different colors")
	assert.Equal(t, lipgloss.Color("9"), styles.Caret.GetForeground())
	assert.Equal(t, styles.Failure.GetForeground(), styles.Error.GetForeground())
}

func TestIsColorEnabled(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		noColor string
		stdout  bool
		want    bool
	}{
		{name: "always on a buffer", mode: "always", want: true},
		{name: "always ignores NO_COLOR", mode: "always", noColor: "1", want: true},
		{name: "never on stdout", mode: "never", stdout: true, want: false},
		{name: "auto on a buffer", mode: "auto", want: false},
		{name: "auto with NO_COLOR", mode: "auto", noColor: "1", stdout: true, want: false},
		{name: "empty mode behaves as auto", mode: "", want: false},
		{name: "unknown mode behaves as auto", mode: "sometimes", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)

			var writer io.Writer = &bytes.Buffer{}
			if tt.stdout {
				writer = os.Stdout
			}

			assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, writer))
		})
	}
}
