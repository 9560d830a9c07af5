package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mkarman/gradebook/internal/grading"
	"github.com/mkarman/gradebook/internal/roster"
)

// WriteWorkbook writes the roster and its class report to an xlsx
// workbook: a Roster sheet with one row per student and a Summary
// sheet with the aggregates and grade distribution.
func WriteWorkbook(path string, records []roster.Record, s roster.Summary, scheme *grading.Scheme) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Roster"); err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	if err := writeRoster(f, records, scheme); err != nil {
		return err
	}
	if err := writeSummary(f, s); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRoster(f *excelize.File, records []roster.Record, scheme *grading.Scheme) error {
	head := []any{"ID", "Name", "Subjects", "Marks", "GPA", "Grade"}
	if err := setRow(f, "Roster", 1, head); err != nil {
		return err
	}
	for i, r := range records {
		subjects := make([]string, len(r.Marks))
		scores := make([]string, len(r.Marks))
		for j, m := range r.Marks {
			subjects[j] = m.Subject
			scores[j] = fmt.Sprintf("%v", m.Score)
		}
		row := []any{
			r.ID,
			r.Name,
			strings.Join(subjects, " | "),
			strings.Join(scores, " | "),
			r.GPA,
			scheme.Letter(r.GPA),
		}
		if err := setRow(f, "Roster", i+2, row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth("Roster", "B", "D", 24); err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	return boldHeader(f, "Roster", "A1", "F1")
}

func writeSummary(f *excelize.File, s roster.Summary) error {
	if _, err := f.NewSheet("Summary"); err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	rows := [][]any{
		{"Students", s.Count},
		{"Average GPA", s.AverageGPA, s.AverageGrade},
		{"Highest GPA", s.HighestGPA, s.HighestGrade},
		{"Lowest GPA", s.LowestGPA, s.LowestGrade},
		{},
		{"Grade", "Students", "Share"},
	}
	for _, g := range s.Distribution {
		rows = append(rows, []any{g.Letter, g.Count, fmt.Sprintf("%.1f%%", g.Percent)})
	}
	for i, row := range rows {
		if err := setRow(f, "Summary", i+1, row); err != nil {
			return err
		}
	}
	return boldHeader(f, "Summary", "A6", "C6")
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to build workbook: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to build workbook: %w", err)
		}
	}
	return nil
}

func boldHeader(f *excelize.File, sheet, from, to string) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	if err := f.SetCellStyle(sheet, from, to, style); err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	return nil
}
