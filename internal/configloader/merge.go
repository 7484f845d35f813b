package configloader

import "github.com/yaklabco/richtext/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	// Start with a shallow copy of base
	result := *base

	if override.MultilineTag != "" {
		result.MultilineTag = override.MultilineTag
	}
	if override.Input != "" {
		result.Input = override.Input
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.OutDir != "" {
		result.OutDir = override.OutDir
	}
	if override.Start != nil {
		result.Start = override.Start
	}
	if override.End != nil {
		result.End = override.End
	}

	// Sanitize: merge individual fields. Only an enabling value can be
	// detected, since false is the zero value.
	if override.Sanitize.Enabled {
		result.Sanitize.Enabled = true
	}
	if override.Sanitize.Policy != "" {
		result.Sanitize.Policy = override.Sanitize.Policy
	}

	// Slices: override replaces base entirely if non-nil
	if override.RemoveAttributes != nil {
		result.RemoveAttributes = override.RemoveAttributes
	}
	if override.UnwrapTags != nil {
		result.UnwrapTags = override.UnwrapTags
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
