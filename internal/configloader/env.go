package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/richtext/pkg/config"
)

// envVarPrefix is the prefix for all richtext environment variables.
const envVarPrefix = "RICHTEXT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"MULTILINE_TAG":     {field: "multiline_tag", typ: envTypeString, description: "Tag wrapping multiline fragments"},
	"INPUT":             {field: "input", typ: envTypeString, description: "Input format: html, markdown or text"},
	"OUTPUT":            {field: "output", typ: envTypeString, description: "Output format: html, json, tree or text"},
	"FLAVOR":            {field: "flavor", typ: envTypeString, description: "Markdown flavor: commonmark or gfm"},
	"SANITIZE":          {field: "sanitize.enabled", typ: envTypeBool, description: "Sanitize HTML input: true or false"},
	"SANITIZE_POLICY":   {field: "sanitize.policy", typ: envTypeString, description: "Sanitize policy: strict, ugc or inline"},
	"REMOVE_ATTRIBUTES": {field: "remove_attributes", typ: envTypeSlice, description: "Comma-separated attribute names to drop"},
	"UNWRAP_TAGS":       {field: "unwrap_tags", typ: envTypeSlice, description: "Comma-separated tags to unwrap"},
	"IGNORE":            {field: "ignore", typ: envTypeSlice, description: "Comma-separated list of ignore patterns"},
	"JOBS":              {field: "jobs", typ: envTypeInt, description: "Number of parallel workers (0 = auto)"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with RICHTEXT_ (e.g., RICHTEXT_FLAVOR).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "multiline_tag":
		cfg.MultilineTag = value
	case "input":
		cfg.Input = config.InputFormat(value)
	case "output":
		cfg.Output = config.OutputFormat(value)
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "sanitize.policy":
		cfg.Sanitize.Policy = config.SanitizePolicy(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "sanitize.enabled":
		cfg.Sanitize.Enabled = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "remove_attributes":
		cfg.RemoveAttributes = value
	case "unwrap_tags":
		cfg.UnwrapTags = value
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables, sorted by name,
// with their descriptions.
func ListEnvVars() [][2]string {
	vars := make([][2]string, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, [2]string{envVarPrefix + suffix, mapping.description})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i][0] < vars[j][0] })
	return vars
}
