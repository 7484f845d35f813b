package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/richtext/pkg/convert"
	"github.com/yaklabco/richtext/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func pluralFiles(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Converted 3 files (120 characters), 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No input files found") + "\n"
	}

	msg := s.Success.Render(fmt.Sprintf("Converted %d %s", stats.FilesConverted, pluralFiles(stats.FilesConverted))) +
		s.Dim.Render(fmt.Sprintf(" (%d characters)", stats.Characters))

	if stats.FilesErrored > 0 {
		msg += ", " + s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored))
	}

	return msg + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files discovered:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files converted:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesConverted)) + "\n")

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("  Characters:        " +
		s.SummaryValue.Render(strconv.Itoa(stats.Characters)) + "\n")

	formats := make([]string, 0, len(stats.ByFormat))
	for format := range stats.ByFormat {
		formats = append(formats, string(format))
	}
	slices.Sort(formats)
	for _, format := range formats {
		builder.WriteString(fmt.Sprintf("    %-16s %s\n", format+":",
			s.SummaryValue.Render(strconv.Itoa(stats.ByFormat[convert.Format(format)]))))
	}

	builder.WriteString("\n")

	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Conversion failed for some files"))
	} else {
		builder.WriteString(s.Success.Render("Conversion succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
