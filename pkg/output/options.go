package output

// Options configures renderer behavior.
type Options struct {
	// Format specifies the output format.
	Format Format

	// Color controls colorized tree output.
	// Values: "auto" (default), "always", "never"
	Color string

	// MultilineTag wraps each fragment in html and tree output.
	MultilineTag string

	// ShowPath writes a header naming the input file before html, text and
	// tree output.
	ShowPath bool

	// Compact writes one JSON object per line.
	Compact bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Format: FormatHTML,
		Color:  "auto",
	}
}
