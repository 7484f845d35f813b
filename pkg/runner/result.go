package runner

import (
	"github.com/yaklabco/richtext/pkg/convert"
	"github.com/yaklabco/richtext/pkg/record"
)

// FileOutcome is the conversion result of one input file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Format is the input format the file was read as.
	Format convert.Format

	// Record is the converted value. It is zero when Error is set.
	Record record.Record

	// Error is set if the file could not be converted.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesConverted is the number of files converted without error.
	FilesConverted int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// Characters is the total record length across converted files.
	Characters int

	// ByFormat counts converted files per input format.
	ByFormat map[convert.Format]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to convert.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{
		ByFormat: make(map[convert.Format]int),
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesConverted++
	r.Stats.Characters += outcome.Record.Len()
	r.Stats.ByFormat[outcome.Format]++
}
