// Package roster holds the in-memory student store: records keyed by id,
// ordered the way they were added, with GPAs recomputed on every change.
// The store is not safe for concurrent use; the application is
// single-threaded by design.
package roster

import (
	"fmt"
	"strings"

	"github.com/mkarman/gradebook/internal/grading"
)

// Mark is one graded subject on a student record.
type Mark struct {
	Subject string
	Score   float64
}

// Record is a single student. Marks keep their insertion order; that
// order is part of the record and survives save/load round-trips.
// GPA is derived from Marks and never set directly, except when a
// stored value is recovered from disk.
type Record struct {
	ID    string
	Name  string
	Marks []Mark
	GPA   float64
}

// clone returns a copy that shares no memory with the original.
func (r *Record) clone() Record {
	cp := *r
	cp.Marks = make([]Mark, len(r.Marks))
	copy(cp.Marks, r.Marks)
	return cp
}

// markIndex returns the position of subject in Marks, or -1.
func (r *Record) markIndex(subject string) int {
	for i, m := range r.Marks {
		if m.Subject == subject {
			return i
		}
	}
	return -1
}

// recalc refreshes the GPA from the current marks.
func (r *Record) recalc() {
	scores := make([]float64, len(r.Marks))
	for i, m := range r.Marks {
		scores[i] = m.Score
	}
	r.GPA = grading.Compute(scores)
}

// cleanSubject normalizes and validates a subject name. The pipe is
// rejected because it delimits subjects in the CSV layout.
func cleanSubject(subject string) (string, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", fmt.Errorf("%w: subject name is required", ErrInvalidInput)
	}
	if strings.Contains(subject, "|") {
		return "", fmt.Errorf("%w: subject %q may not contain '|'", ErrInvalidInput, subject)
	}
	return subject, nil
}

// checkScore validates a mark against the 0-100 range.
func checkScore(score float64) error {
	if !(score >= 0 && score <= 100) {
		return fmt.Errorf("%w: mark %v outside 0-100", ErrInvalidInput, score)
	}
	return nil
}
