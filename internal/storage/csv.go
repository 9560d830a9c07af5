// Package storage persists the roster as a delimited text file:
// one CSV row per student, subjects and marks pipe-joined in parallel
// order. Saves rewrite the whole file; loads are deliberately tolerant
// of malformed rows so a damaged file never blocks startup.
package storage

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mkarman/gradebook/internal/grading"
	"github.com/mkarman/gradebook/internal/roster"
)

// DefaultFile is the roster filename used when none is configured.
const DefaultFile = "students.csv"

var header = []string{"ID", "Name", "Subjects", "Marks", "GPA"}

// CSVStore reads and writes one roster file.
type CSVStore struct {
	path string

	// Backup keeps the previous file contents as <path>.bak on save.
	Backup bool
}

// NewCSVStore returns a store bound to path.
func NewCSVStore(path string) *CSVStore {
	if path == "" {
		path = DefaultFile
	}
	return &CSVStore{path: path}
}

// Path returns the roster file path.
func (c *CSVStore) Path() string {
	return c.path
}

// Save rewrites the roster file with the given records, in order.
// The new contents are written to a temp file first and renamed over
// the target, so a failed save leaves the previous file intact.
func (c *CSVStore) Save(records []roster.Record) error {
	data, err := c.encode(records)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	if c.Backup {
		if prev, err := os.ReadFile(c.path); err == nil {
			_ = os.WriteFile(c.path+".bak", prev, 0644)
		}
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write roster file: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("failed to replace roster file: %w", err)
	}
	return nil
}

// encode serializes records into the on-disk CSV layout.
func (c *CSVStore) encode(records []roster.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to encode roster: %w", err)
	}
	for _, r := range records {
		subjects := make([]string, len(r.Marks))
		scores := make([]string, len(r.Marks))
		for i, m := range r.Marks {
			subjects[i] = m.Subject
			scores[i] = formatFloat(m.Score)
		}
		row := []string{
			r.ID,
			r.Name,
			strings.Join(subjects, "|"),
			strings.Join(scores, "|"),
			formatFloat(r.GPA),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to encode roster: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to encode roster: %w", err)
	}
	return buf.Bytes(), nil
}

// Load reads the roster file into records, keeping file order.
// A missing file yields an empty roster. The header row is discarded.
// Rows with fewer than five fields are skipped; subject-mark pairs
// whose mark does not parse are dropped without failing the row; a
// stored GPA that does not parse is recomputed from the retained
// marks. A row left with no marks at all is still admitted, with GPA
// 0.0, so old or hand-edited files keep loading.
func (c *CSVStore) Load() ([]roster.Record, error) {
	f, err := os.Open(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}
	if len(rows) > 0 {
		rows = rows[1:]
	}

	var records []roster.Record
	for _, row := range rows {
		if len(row) < 5 {
			continue
		}
		records = append(records, decodeRow(row))
	}
	return records, nil
}

// decodeRow turns one data row into a record, applying the tolerance
// rules. Duplicate subjects within a row keep the last score, matching
// what re-grading the same subject would have produced.
func decodeRow(row []string) roster.Record {
	rec := roster.Record{
		ID:   strings.TrimSpace(row[0]),
		Name: row[1],
	}
	subjects := strings.Split(row[2], "|")
	scores := strings.Split(row[3], "|")
	n := min(len(subjects), len(scores))
	for i := 0; i < n; i++ {
		subject := strings.TrimSpace(subjects[i])
		if subject == "" {
			continue
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(scores[i]), 64)
		if err != nil {
			continue
		}
		if j := markIndex(rec.Marks, subject); j >= 0 {
			rec.Marks[j].Score = score
		} else {
			rec.Marks = append(rec.Marks, roster.Mark{Subject: subject, Score: score})
		}
	}

	switch {
	case len(rec.Marks) == 0:
		rec.GPA = 0
	default:
		gpa, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
		if err != nil {
			gpa = grading.Compute(scoresOf(rec.Marks))
		}
		rec.GPA = gpa
	}
	return rec
}

func markIndex(marks []roster.Mark, subject string) int {
	for i, m := range marks {
		if m.Subject == subject {
			return i
		}
	}
	return -1
}

func scoresOf(marks []roster.Mark) []float64 {
	out := make([]float64, len(marks))
	for i, m := range marks {
		out[i] = m.Score
	}
	return out
}

// formatFloat renders a score or GPA without trailing zeros.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
