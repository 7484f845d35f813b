package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richtext/internal/logging"
	"github.com/yaklabco/richtext/pkg/config"
	"github.com/yaklabco/richtext/pkg/convert"
	"github.com/yaklabco/richtext/pkg/output"
	"github.com/yaklabco/richtext/pkg/record"
	"github.com/yaklabco/richtext/pkg/runner"
)

// ErrInvalidRange is returned for a malformed or out-of-range --at value.
var ErrInvalidRange = errors.New("invalid range")

type splitFlags struct {
	documentFlags

	separator string
	at        string
}

func newSplitCommand() *cobra.Command {
	flags := &splitFlags{}

	cmd := &cobra.Command{
		Use:   "split <file>",
		Short: "Split a converted document into fragments",
		Long: `Convert a document and split the resulting record into fragments.

By default the record is split on every separator occurrence, and a selection
given with --start and --end is redistributed over the fragments. With --at
the record is cut in two around the range, which is removed.

The separator accepts Go escape sequences such as \n and \t.

Examples:
  richtext split notes.html                     # Split on blank lines
  richtext split --separator '\n' notes.txt     # Split on line breaks
  richtext split --at 4:6 -o json doc.html      # Cut out characters 4 to 6`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, args[0], flags)
		},
	}

	addDocumentFlags(cmd, &flags.documentFlags)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "html", "output format: html, json, tree, text")
	cmd.Flags().StringVar(&flags.separator, "separator", `\n\n`, "separator to split on")
	cmd.Flags().StringVar(&flags.at, "at", "", "split around a start:end range instead of a separator")

	return cmd
}

func runSplit(cmd *cobra.Command, path string, flags *splitFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{}
	flags.apply(cmd, cliCfg)

	cfg, _, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(string(cfg.Output))
	if err != nil {
		return fmt.Errorf("invalid output format: %w", err)
	}

	outcome := runner.New(convert.New(cfg)).ConvertFile(ctx, path, cfg)
	if outcome.Error != nil {
		return outcome.Error
	}

	var parts []record.Record
	if flags.at != "" {
		start, end, err := parseRange(flags.at, outcome.Record.Len())
		if err != nil {
			return err
		}
		parts = outcome.Record.SplitAt(start, end)
	} else {
		separator, err := unescape(flags.separator)
		if err != nil {
			return fmt.Errorf("invalid separator: %w", err)
		}
		if separator == "" {
			return errors.New("invalid separator: must not be empty")
		}
		parts = outcome.Record.Split(separator)
	}

	logger.Debug("split record",
		logging.FieldPath, path,
		logging.FieldLength, outcome.Record.Len(),
		logging.FieldParts, len(parts),
	)

	renderer, err := output.New(output.Options{
		Format:       format,
		Color:        colorMode(cmd),
		MultilineTag: cfg.MultilineTag,
		ShowPath:     format == output.FormatTree,
	}, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	for i, part := range parts {
		item := output.Item{Path: fmt.Sprintf("part %d", i), Record: part}
		if err := renderer.Render(ctx, cmd.OutOrStdout(), item); err != nil {
			return fmt.Errorf("render part %d: %w", i, err)
		}
	}

	return nil
}

// parseRange parses "start:end" and checks it against a record of length n.
func parseRange(value string, n int) (int, int, error) {
	startText, endText, ok := strings.Cut(value, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q: expected start:end", ErrInvalidRange, value)
	}

	start, err := strconv.Atoi(strings.TrimSpace(startText))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: start %q: %w", ErrInvalidRange, startText, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endText))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: end %q: %w", ErrInvalidRange, endText, err)
	}

	if start < 0 || end < start || end > n {
		return 0, 0, fmt.Errorf("%w: %d:%d (length %d)", ErrInvalidRange, start, end, n)
	}

	return start, end, nil
}

// unescape interprets Go escape sequences in a flag value. Bare and escaped
// quotes of either kind are taken literally.
func unescape(value string) (string, error) {
	var b strings.Builder

	for value != "" {
		switch {
		case value[0] == '"':
			b.WriteByte('"')
			value = value[1:]
			continue
		case strings.HasPrefix(value, `\'`):
			b.WriteByte('\'')
			value = value[2:]
			continue
		}

		r, multibyte, tail, err := strconv.UnquoteChar(value, '"')
		if err != nil {
			return "", fmt.Errorf("%q: %w", value, err)
		}
		if r < utf8.RuneSelf || !multibyte {
			b.WriteByte(byte(r))
		} else {
			b.WriteRune(r)
		}
		value = tail
	}

	return b.String(), nil
}
