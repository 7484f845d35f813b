package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richtext/internal/configloader"
	"github.com/yaklabco/richtext/internal/logging"
	"github.com/yaklabco/richtext/pkg/config"
)

// commandContext returns the command context, falling back to Background
// for commands run outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the effective configuration for cmd, with cliCfg
// holding the values of explicitly set flags.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	finalCfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFlavor, finalCfg.Flavor,
		logging.FieldMultilineTag, finalCfg.MultilineTag,
		logging.FieldSanitize, finalCfg.Sanitize.Enabled,
		logging.FieldPolicy, finalCfg.Sanitize.Policy,
		logging.FieldJobs, finalCfg.Jobs,
	)

	return finalCfg, workDir, nil
}

// colorMode reads the persistent --color flag.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}

// documentFlags are the conversion flags shared by every command that reads
// documents.
type documentFlags struct {
	input        string
	output       string
	multilineTag string
	start        int
	end          int
}

func addDocumentFlags(cmd *cobra.Command, flags *documentFlags) {
	cmd.Flags().StringVar(&flags.input, "input", "", "input format: html, markdown, text (default: from extension)")
	cmd.Flags().StringVar(&flags.multilineTag, "multiline-tag", "", "tag wrapping multiline fragments, e.g. p or li")
	cmd.Flags().IntVar(&flags.start, "start", 0, "selection start offset")
	cmd.Flags().IntVar(&flags.end, "end", 0, "selection end offset")
}

// apply copies explicitly set flags into cfg.
func (f *documentFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("input") {
		cfg.Input = config.InputFormat(f.input)
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = config.OutputFormat(f.output)
	}
	if cmd.Flags().Changed("multiline-tag") {
		cfg.MultilineTag = f.multilineTag
	}
	if cmd.Flags().Changed("start") {
		start := f.start
		cfg.Start = &start
	}
	if cmd.Flags().Changed("end") {
		end := f.end
		cfg.End = &end
	}
}
