package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richtext/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		clone := c.Clone()
		assert.Nil(t, clone)
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies slices", func(t *testing.T) {
		original := &config.Config{
			Ignore:           []string{"*.md", "vendor/**"},
			RemoveAttributes: []string{"style"},
			UnwrapTags:       []string{"span"},
		}

		clone := original.Clone()
		require.NotNil(t, clone)

		assert.Equal(t, original.Ignore, clone.Ignore)
		assert.Equal(t, original.RemoveAttributes, clone.RemoveAttributes)
		assert.Equal(t, original.UnwrapTags, clone.UnwrapTags)

		// Verify modifying clone doesn't affect original
		clone.Ignore[0] = "changed"
		clone.UnwrapTags[0] = "div"
		assert.Equal(t, "*.md", original.Ignore[0])
		assert.Equal(t, "span", original.UnwrapTags[0])
	})

	t.Run("preserves all fields", func(t *testing.T) {
		start, end := 1, 4
		original := &config.Config{
			MultilineTag: "p",
			Input:        config.InputMarkdown,
			Output:       config.OutputJSON,
			Flavor:       config.FlavorGFM,
			Sanitize:     config.SanitizeConfig{Enabled: true, Policy: config.PolicyUGC},
			Jobs:         4,
			OutDir:       "out",
			Start:        &start,
			End:          &end,
		}

		clone := original.Clone()
		require.NotNil(t, clone)

		assert.Equal(t, original.MultilineTag, clone.MultilineTag)
		assert.Equal(t, original.Input, clone.Input)
		assert.Equal(t, original.Output, clone.Output)
		assert.Equal(t, original.Flavor, clone.Flavor)
		assert.Equal(t, original.Sanitize, clone.Sanitize)
		assert.Equal(t, original.Jobs, clone.Jobs)
		assert.Equal(t, original.OutDir, clone.OutDir)

		require.NotNil(t, clone.Start)
		assert.Equal(t, 1, *clone.Start)
		assert.NotSame(t, original.Start, clone.Start)
		assert.True(t, clone.HasSelection())
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("basic config serializes", func(t *testing.T) {
		cfg := &config.Config{
			Flavor:       config.FlavorGFM,
			MultilineTag: "li",
			Jobs:         8,
		}

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "flavor: gfm")
		assert.Contains(t, string(data), "multiline_tag: li")
		assert.NotContains(t, string(data), "jobs")
	})

	t.Run("header is prepended", func(t *testing.T) {
		data, err := config.NewConfig().ToYAMLWithHeader("# generated")
		require.NoError(t, err)
		assert.Contains(t, string(data), "# generated\n\n")
	})
}

func TestFromYAML(t *testing.T) {
	t.Run("parses valid YAML", func(t *testing.T) {
		yaml := []byte(`
multiline_tag: p
input: markdown
flavor: gfm
sanitize:
  enabled: true
  policy: strict
remove_attributes:
  - style
`)
		cfg, err := config.FromYAML(yaml)
		require.NoError(t, err)
		assert.Equal(t, "p", cfg.MultilineTag)
		assert.Equal(t, config.InputMarkdown, cfg.Input)
		assert.Equal(t, config.FlavorGFM, cfg.Flavor)
		assert.True(t, cfg.Sanitize.Enabled)
		assert.Equal(t, config.PolicyStrict, cfg.Sanitize.Policy)
		assert.Equal(t, []string{"style"}, cfg.RemoveAttributes)
	})

	t.Run("rejects invalid YAML", func(t *testing.T) {
		_, err := config.FromYAML([]byte("flavor: [unclosed"))
		require.Error(t, err)
	})
}

func TestGenerateTemplate(t *testing.T) {
	data, err := config.GenerateTemplate(nil)
	require.NoError(t, err)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)

	defaults := config.NewConfig()
	assert.Equal(t, defaults.Output, cfg.Output)
	assert.Equal(t, defaults.Flavor, cfg.Flavor)
	assert.Equal(t, defaults.Sanitize, cfg.Sanitize)
	assert.Empty(t, cfg.MultilineTag)
}
