package cli

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richtext/internal/logging"
	"github.com/yaklabco/richtext/internal/ui/pretty"
	"github.com/yaklabco/richtext/pkg/config"
	"github.com/yaklabco/richtext/pkg/convert"
	"github.com/yaklabco/richtext/pkg/fsutil"
	"github.com/yaklabco/richtext/pkg/output"
	"github.com/yaklabco/richtext/pkg/runner"
)

type convertFlags struct {
	documentFlags

	flavor           string
	sanitize         bool
	policy           string
	removeAttributes []string
	unwrapTags       []string
	ignore           []string
	jobs             int
	outDir           string
	compact          bool
	stats            bool
}

func newConvertCommand() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [paths...]",
		Short: "Convert documents into rich-text records",
		Long:  convertLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, flags)
		},
	}

	addDocumentFlags(cmd, &flags.documentFlags)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "html", "output format: html, json, tree, text")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	cmd.Flags().BoolVar(&flags.sanitize, "sanitize", false, "sanitize HTML input before conversion")
	cmd.Flags().StringVar(&flags.policy, "policy", "inline", "sanitize policy: strict, ugc, inline")
	cmd.Flags().StringSliceVar(&flags.removeAttributes, "remove-attributes", nil, "attribute names dropped from formats")
	cmd.Flags().StringSliceVar(&flags.unwrapTags, "unwrap", nil, "tags kept as content but not as formats")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.outDir, "out-dir", "", "write one output file per input under this directory")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "write JSON records on a single line")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "print a detailed summary with per-format counts")

	return cmd
}

const convertLongDescription = `Convert HTML, Markdown and plain text documents into rich-text records.

By default, converts every .html, .htm, .md, .markdown and .txt file in the
current directory and subdirectories. Specify paths to convert specific files
or directories. Markdown is rendered to HTML first; HTML can be sanitized
before it is read.

Examples:
  richtext convert                          # Convert current directory
  richtext convert doc.html                 # Print the normalized HTML
  richtext convert -o json notes/           # Records as JSON
  richtext convert -o tree --start 2 --end 5 doc.md
  richtext convert --sanitize --policy strict page.html
  richtext convert --out-dir build/ docs/   # One output file per input`

func (f *convertFlags) toConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	f.apply(cmd, cfg)

	if cmd.Flags().Changed("flavor") {
		cfg.Flavor = config.Flavor(f.flavor)
	}
	if cmd.Flags().Changed("sanitize") {
		cfg.Sanitize.Enabled = f.sanitize
	}
	if cmd.Flags().Changed("policy") {
		cfg.Sanitize.Policy = config.SanitizePolicy(f.policy)
	}
	if cmd.Flags().Changed("remove-attributes") {
		cfg.RemoveAttributes = f.removeAttributes
	}
	if cmd.Flags().Changed("unwrap") {
		cfg.UnwrapTags = f.unwrapTags
	}
	if cmd.Flags().Changed("ignore") {
		cfg.Ignore = f.ignore
	}
	cfg.Jobs = f.jobs
	cfg.OutDir = f.outDir

	return cfg
}

func runConvert(cmd *cobra.Command, args []string, flags *convertFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cfg, workDir, err := loadConfig(cmd, flags.toConfig(cmd))
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(string(cfg.Output))
	if err != nil {
		return fmt.Errorf("invalid output format: %w", err)
	}

	convertRunner := runner.New(convert.New(cfg))

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Config:       cfg,
	}

	logger.Debug("starting conversion run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := convertRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("conversion run failed"), err)
	}

	color := colorMode(cmd)
	opts := output.Options{
		Format:       format,
		Color:        color,
		MultilineTag: cfg.MultilineTag,
		ShowPath:     len(result.Files) > 1,
		Compact:      flags.compact,
	}

	if cfg.OutDir != "" {
		err = writeOutputs(cmd, result, opts, workDir, args, cfg.OutDir)
	} else {
		err = renderOutputs(cmd, result, opts, workDir)
	}
	if err != nil {
		return err
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(color, cmd.ErrOrStderr()))
	summary := styles.FormatSummaryOneLine(result.Stats)
	if flags.stats {
		summary = styles.FormatSummary(result.Stats)
	}
	if _, err := fmt.Fprint(cmd.ErrOrStderr(), summary); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrConversionFailed
	}

	return nil
}

// renderOutputs writes every converted record to stdout and logs failures.
func renderOutputs(cmd *cobra.Command, result *runner.Result, opts output.Options, workDir string) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	renderer, err := output.New(opts, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	for _, outcome := range result.Files {
		if outcome.Error != nil {
			logger.Error("conversion failed",
				logging.FieldPath, displayPath(workDir, outcome.Path),
				logging.FieldError, outcome.Error,
			)
			continue
		}

		item := output.Item{Path: displayPath(workDir, outcome.Path), Record: outcome.Record}
		if err := renderer.Render(ctx, cmd.OutOrStdout(), item); err != nil {
			return fmt.Errorf("render %s: %w", item.Path, err)
		}
	}

	return nil
}

// writeOutputs mirrors every converted record into outDir, one file per
// input, leaving unchanged outputs untouched. Output paths are relative to the
// argument each input was discovered under.
func writeOutputs(
	cmd *cobra.Command,
	result *runner.Result,
	opts output.Options,
	workDir string,
	args []string,
	outDir string,
) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	opts.Color = "never"
	opts.ShowPath = false

	var buf bytes.Buffer
	renderer, err := output.New(opts, &buf)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	for _, outcome := range result.Files {
		rel := displayPath(workDir, outcome.Path)
		if outcome.Error != nil {
			logger.Error("conversion failed", logging.FieldPath, rel, logging.FieldError, outcome.Error)
			continue
		}

		root := inputRoot(workDir, args, outcome.Path)
		target, err := fsutil.OutputPath(outDir, root, outcome.Path, outputExtension(opts.Format))
		if err != nil {
			return fmt.Errorf("output path: %w", err)
		}

		buf.Reset()
		if err := renderer.Render(ctx, &buf, output.Item{Path: rel, Record: outcome.Record}); err != nil {
			return fmt.Errorf("render %s: %w", rel, err)
		}

		written, err := fsutil.WriteAtomicIfChanged(ctx, target, buf.Bytes(), fsutil.DefaultFileMode)
		if err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
		logger.Debug("wrote output", logging.FieldInput, rel, logging.FieldOutput, target, logging.FieldWritten, written)
	}

	return nil
}

// outputExtension returns the file extension used for format in --out-dir
// mode.
func outputExtension(format output.Format) string {
	switch format {
	case output.FormatJSON:
		return ".json"
	case output.FormatTree:
		return ".tree"
	case output.FormatText:
		return ".txt"
	default:
		return ".html"
	}
}

// inputRoot returns the directory path was discovered under: the directory
// argument containing it, the parent of a file argument, or workDir.
func inputRoot(workDir string, args []string, path string) string {
	for _, arg := range args {
		abs := arg
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		if path == abs {
			return filepath.Dir(abs)
		}
		if strings.HasPrefix(path, abs+string(filepath.Separator)) {
			return abs
		}
	}
	return workDir
}

// displayPath shortens path relative to workDir when it lies inside it.
func displayPath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
