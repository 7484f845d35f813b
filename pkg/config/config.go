// Package config defines core configuration types for richtext.
// These types are pure data structures with no dependency on how they are loaded.
package config

// Flavor specifies the Markdown flavor used for Markdown input.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// InputFormat names the format of an input document. An empty value means
// the format is detected from the file extension.
type InputFormat string

const (
	InputAuto     InputFormat = ""
	InputHTML     InputFormat = "html"
	InputMarkdown InputFormat = "markdown"
	InputText     InputFormat = "text"
)

// OutputFormat specifies how converted records are rendered.
type OutputFormat string

const (
	OutputHTML OutputFormat = "html"
	OutputJSON OutputFormat = "json"
	OutputTree OutputFormat = "tree"
	OutputText OutputFormat = "text"
)

// SanitizePolicy names a bluemonday policy applied to HTML input.
type SanitizePolicy string

const (
	// PolicyStrict strips every element.
	PolicyStrict SanitizePolicy = "strict"
	// PolicyUGC allows user generated content markup.
	PolicyUGC SanitizePolicy = "ugc"
	// PolicyInline allows only the inline formats a record can represent.
	PolicyInline SanitizePolicy = "inline"
)

// SanitizeConfig controls HTML sanitization before conversion.
type SanitizeConfig struct {
	Enabled bool           `mapstructure:"enabled" yaml:"enabled"`
	Policy  SanitizePolicy `mapstructure:"policy" yaml:"policy"`
}

// Config is the root configuration structure for richtext.
type Config struct {
	// MultilineTag wraps each multiline fragment, e.g. "p" or "li". Empty
	// means single-line values.
	MultilineTag string `mapstructure:"multiline_tag" yaml:"multiline_tag"`

	// Input forces the input format instead of detecting it per file.
	Input InputFormat `mapstructure:"input" yaml:"input"`

	// Output is the default output format.
	Output OutputFormat `mapstructure:"output" yaml:"output"`

	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor"`

	// Sanitize configures HTML sanitization.
	Sanitize SanitizeConfig `mapstructure:"sanitize" yaml:"sanitize"`

	// RemoveAttributes lists attribute names dropped from formats.
	RemoveAttributes []string `mapstructure:"remove_attributes" yaml:"remove_attributes"`

	// UnwrapTags lists tags whose content is kept without the tag as a format.
	UnwrapTags []string `mapstructure:"unwrap_tags" yaml:"unwrap_tags"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// OutDir receives one output file per input instead of stdout.
	OutDir string `mapstructure:"-" yaml:"-"`

	// Start and End select a range in the converted record.
	Start *int `mapstructure:"-" yaml:"-"`
	End   *int `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		MultilineTag: "",
		Input:        InputAuto,
		Output:       OutputHTML,
		Flavor:       FlavorCommonMark,
		Sanitize: SanitizeConfig{
			Enabled: false,
			Policy:  PolicyInline,
		},
		Jobs: 0, // 0 means use GOMAXPROCS
	}
}

// HasSelection reports whether both selection offsets are set.
func (c *Config) HasSelection() bool {
	return c.Start != nil && c.End != nil
}
