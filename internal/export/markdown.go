// Package export renders the class report outside the running
// application: as markdown for terminals and files, and as an xlsx
// workbook for spreadsheet tools.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mkarman/gradebook/internal/roster"
)

// SummaryMarkdown renders the class report as markdown.
func SummaryMarkdown(s roster.Summary) string {
	var sb strings.Builder
	sb.WriteString("# Class Performance Summary\n\n")
	sb.WriteString(fmt.Sprintf("**Students:** %d\n\n", s.Count))
	sb.WriteString("| Metric | GPA | Grade |\n")
	sb.WriteString("|--------|-----|-------|\n")
	sb.WriteString(fmt.Sprintf("| Average | %.2f | %s |\n", s.AverageGPA, s.AverageGrade))
	sb.WriteString(fmt.Sprintf("| Highest | %.2f | %s |\n", s.HighestGPA, s.HighestGrade))
	sb.WriteString(fmt.Sprintf("| Lowest | %.2f | %s |\n", s.LowestGPA, s.LowestGrade))
	sb.WriteString("\n## Grade Distribution\n\n")
	sb.WriteString("| Grade | Students | Share |\n")
	sb.WriteString("|-------|----------|-------|\n")
	for _, g := range s.Distribution {
		sb.WriteString(fmt.Sprintf("| %s | %d | %.1f%% |\n", g.Letter, g.Count, g.Percent))
	}
	return sb.String()
}

// WriteSummaryMarkdown writes the markdown report to path.
func WriteSummaryMarkdown(path string, s roster.Summary) error {
	if err := os.WriteFile(path, []byte(SummaryMarkdown(s)), 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// TimestampedName builds a default export filename under dir, like
// summary-20260115-143052.xlsx.
func TimestampedName(dir, ext string) string {
	name := fmt.Sprintf("summary-%s.%s", time.Now().Format("20060102-150405"), ext)
	return filepath.Join(dir, name)
}
