// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldPattern    = "pattern"

	// Configuration fields.
	FieldFlavor       = "flavor"
	FieldMultilineTag = "multiline_tag"
	FieldSanitize     = "sanitize"
	FieldPolicy       = "policy"
	FieldJobs         = "jobs"

	// Conversion fields.
	FieldFormat  = "format"
	FieldLength  = "length"
	FieldFormats = "formats"
	FieldStart   = "start"
	FieldEnd     = "end"
	FieldParts   = "parts"
	FieldWritten = "written"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesConverted  = "files_converted"
	FieldFilesFailed     = "files_failed"

	// Version fields.
	FieldVersion  = "version"
	FieldCommit   = "commit"
	FieldBuilt    = "built"
	FieldPlatform = "platform"
)
