package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"github.com/mkarman/gradebook/internal/grading"
	"github.com/mkarman/gradebook/internal/roster"
)

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	records := []roster.Record{
		{
			ID:   "s1",
			Name: "Alice",
			Marks: []roster.Mark{
				{Subject: "Math", Score: 90},
				{Subject: "Science", Score: 80},
			},
			GPA: 4.25,
		},
		{
			ID:    "s2",
			Name:  "Ben",
			Marks: []roster.Mark{{Subject: "Math", Score: 95}},
			GPA:   4.75,
		},
	}
	sum := sampleSummary()

	err := WriteWorkbook(path, records, sum, grading.DefaultScheme())
	assert.NoError(t, err)

	f, err := excelize.OpenFile(path)
	assert.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), "Roster")
	assert.Contains(t, f.GetSheetList(), "Summary")

	rows, err := f.GetRows("Roster")
	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "s1", rows[1][0])
	assert.Equal(t, "Math | Science", rows[1][2])
	assert.Equal(t, "B", rows[1][5])
	assert.Equal(t, "A", rows[2][5])

	students, err := f.GetCellValue("Summary", "B1")
	assert.NoError(t, err)
	assert.Equal(t, "3", students)

	avg, err := f.GetCellValue("Summary", "B2")
	assert.NoError(t, err)
	assert.Equal(t, "2.33", avg)

	grade, err := f.GetCellValue("Summary", "A7")
	assert.NoError(t, err)
	assert.Equal(t, "A", grade)
}
