package roster

import (
	"fmt"

	"github.com/mkarman/gradebook/internal/grading"
)

// GradeShare is one row of a grade distribution.
type GradeShare struct {
	Letter  string
	Count   int
	Percent float64
}

// Summary is the class performance report: GPA aggregates, each graded
// through the scheme, plus the full letter distribution in scheme
// order. Letters nobody earned appear with zero counts.
type Summary struct {
	Count        int
	AverageGPA   float64
	AverageGrade string
	HighestGPA   float64
	HighestGrade string
	LowestGPA    float64
	LowestGrade  string
	Distribution []GradeShare
}

// Summarize aggregates every record's GPA into a class report. Fails
// with ErrEmptyStore when there are no records, since averages over
// nothing are meaningless.
func (s *Store) Summarize(scheme *grading.Scheme) (Summary, error) {
	if len(s.order) == 0 {
		return Summary{}, fmt.Errorf("%w: add students before exporting a summary", ErrEmptyStore)
	}

	counts := make(map[string]int)
	var sum float64
	highest := -1.0
	lowest := grading.MaxGPA + 1
	for _, id := range s.order {
		gpa := s.records[id].GPA
		sum += gpa
		if gpa > highest {
			highest = gpa
		}
		if gpa < lowest {
			lowest = gpa
		}
		counts[scheme.Letter(gpa)]++
	}

	total := len(s.order)
	avg := grading.Round2(sum / float64(total))
	out := Summary{
		Count:        total,
		AverageGPA:   avg,
		AverageGrade: scheme.Letter(avg),
		HighestGPA:   highest,
		HighestGrade: scheme.Letter(highest),
		LowestGPA:    lowest,
		LowestGrade:  scheme.Letter(lowest),
	}
	for _, letter := range scheme.Letters() {
		out.Distribution = append(out.Distribution, GradeShare{
			Letter:  letter,
			Count:   counts[letter],
			Percent: float64(counts[letter]) / float64(total) * 100,
		})
	}
	return out, nil
}
