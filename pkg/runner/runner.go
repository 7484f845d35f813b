package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/richtext/internal/logging"
	"github.com/yaklabco/richtext/pkg/config"
	"github.com/yaklabco/richtext/pkg/convert"
	"github.com/yaklabco/richtext/pkg/fsutil"
)

// ErrSelectionOutOfRange is returned when a configured selection does not fit
// the converted record.
var ErrSelectionOutOfRange = errors.New("selection out of range")

// Runner orchestrates multi-file conversion using a convert.Converter.
type Runner struct {
	Converter *convert.Converter
}

// New creates a new Runner with the given converter.
func New(converter *convert.Converter) *Runner {
	return &Runner{Converter: converter}
}

// Run discovers files under opts.Paths and converts them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	// Don't use more workers than files.
	if jobs > len(files) {
		jobs = len(files)
	}

	cfg := opts.effectiveConfig()

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, cfg)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers may complete out of order.
	outcomes := make(map[string]FileOutcome, len(files))

	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	logger.Debug("conversion finished",
		logging.FieldFilesConverted, result.Stats.FilesConverted,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldJobs, jobs,
	)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	cfg *config.Config,
) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.ConvertFile(ctx, path, cfg)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// ConvertFile reads and converts a single file. The input format comes from
// cfg.Input, or the file extension when that is unset. A selection in cfg is
// applied to the converted record.
func (r *Runner) ConvertFile(ctx context.Context, path string, cfg *config.Config) FileOutcome {
	outcome := FileOutcome{Path: path}
	ctx = logging.WithFields(ctx, logging.FieldPath, path)

	format, err := convert.Resolve(cfg.Input, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Format = format

	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	value, err := r.Converter.Convert(ctx, format, content)
	if err != nil {
		outcome.Error = fmt.Errorf("convert %s: %w", path, err)
		return outcome
	}

	if cfg.HasSelection() {
		start, end := *cfg.Start, *cfg.End
		if start < 0 || end < start || end > value.Len() {
			outcome.Error = fmt.Errorf("%w: %d:%d (length %d)", ErrSelectionOutOfRange, start, end, value.Len())
			return outcome
		}
		value = value.WithSelection(start, end)
	}

	outcome.Record = value
	return outcome
}
