package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richtext/internal/logging"
	"github.com/yaklabco/richtext/pkg/config"
	"github.com/yaklabco/richtext/pkg/convert"
	"github.com/yaklabco/richtext/pkg/output"
	"github.com/yaklabco/richtext/pkg/runner"
)

func newTreeCommand() *cobra.Command {
	flags := &documentFlags{}

	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the DOM tree built from a converted document",
		Long: `Convert a document and print the DOM tree its record serializes to.

A selection given with --start and --end is marked in the tree: | for a
collapsed caret, [ and ] for a range. The node paths of both boundaries are
printed last.

Examples:
  richtext tree doc.html
  richtext tree --multiline-tag p --start 0 --end 3 notes.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, args[0], flags)
		},
	}

	addDocumentFlags(cmd, flags)

	return cmd
}

func runTree(cmd *cobra.Command, path string, flags *documentFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{}
	flags.apply(cmd, cliCfg)

	cfg, _, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	outcome := runner.New(convert.New(cfg)).ConvertFile(ctx, path, cfg)
	if outcome.Error != nil {
		return outcome.Error
	}

	logger.Debug("building tree",
		logging.FieldPath, path,
		logging.FieldFormat, outcome.Format,
		logging.FieldLength, outcome.Record.Len(),
	)

	renderer, err := output.New(output.Options{
		Format:       output.FormatTree,
		Color:        colorMode(cmd),
		MultilineTag: cfg.MultilineTag,
	}, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	if err := renderer.Render(ctx, cmd.OutOrStdout(), output.Item{Path: path, Record: outcome.Record}); err != nil {
		return fmt.Errorf("render tree: %w", err)
	}

	return nil
}
