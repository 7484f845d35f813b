package configloader

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/richtext/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "sanitize.policy").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownFlavors lists valid flavor values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFlavors = map[config.Flavor]bool{
	config.FlavorCommonMark: true,
	config.FlavorGFM:        true,
}

// knownInputs lists valid input format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownInputs = map[config.InputFormat]bool{
	config.InputAuto:     true,
	config.InputHTML:     true,
	config.InputMarkdown: true,
	config.InputText:     true,
}

// knownOutputs lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownOutputs = map[config.OutputFormat]bool{
	config.OutputHTML: true,
	config.OutputJSON: true,
	config.OutputTree: true,
	config.OutputText: true,
}

// knownPolicies lists valid sanitize policy values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownPolicies = map[config.SanitizePolicy]bool{
	config.PolicyStrict: true,
	config.PolicyUGC:    true,
	config.PolicyInline: true,
}

// tagName matches element names usable as a multiline tag.
var tagName = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if cfg.Flavor != "" && !knownFlavors[cfg.Flavor] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "flavor",
			Value:   cfg.Flavor,
			Message: fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor),
		})
	}

	if !knownInputs[cfg.Input] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "input",
			Value:   cfg.Input,
			Message: fmt.Sprintf("invalid input format %q; must be one of: html, markdown, text", cfg.Input),
		})
	}

	if cfg.Output != "" && !knownOutputs[cfg.Output] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output",
			Value:   cfg.Output,
			Message: fmt.Sprintf("invalid output format %q; must be one of: html, json, tree, text", cfg.Output),
		})
	}

	if cfg.Sanitize.Policy != "" && !knownPolicies[cfg.Sanitize.Policy] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "sanitize.policy",
			Value:   cfg.Sanitize.Policy,
			Message: fmt.Sprintf("invalid policy %q; must be one of: strict, ugc, inline", cfg.Sanitize.Policy),
		})
	}

	if cfg.MultilineTag != "" && !tagName.MatchString(cfg.MultilineTag) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "multiline_tag",
			Value:   cfg.MultilineTag,
			Message: fmt.Sprintf("invalid tag name %q; use a lowercase element name such as p or li", cfg.MultilineTag),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	validateSelection(cfg, result)
	validateIgnorePatterns(cfg, result)

	if cfg.MultilineTag != "" && slices.Contains(cfg.UnwrapTags, cfg.MultilineTag) {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "unwrap_tags",
			Value:   cfg.MultilineTag,
			Message: fmt.Sprintf("multiline tag %q is also unwrapped; fragments are still read", cfg.MultilineTag),
		})
	}

	return result
}

// validateSelection checks the CLI selection offsets.
func validateSelection(cfg *config.Config, result *ValidationResult) {
	if (cfg.Start == nil) != (cfg.End == nil) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "selection",
			Message: "start and end must be given together",
		})
		return
	}

	if !cfg.HasSelection() {
		return
	}

	if *cfg.Start < 0 || *cfg.End < *cfg.Start {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "selection",
			Value:   fmt.Sprintf("%d:%d", *cfg.Start, *cfg.End),
			Message: "selection must satisfy 0 <= start <= end",
		})
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFlavor returns true if the flavor is valid.
func IsValidFlavor(f config.Flavor) bool {
	return knownFlavors[f]
}

// IsValidOutput returns true if the output format is valid.
func IsValidOutput(f config.OutputFormat) bool {
	return knownOutputs[f]
}
