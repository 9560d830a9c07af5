package roster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkarman/gradebook/internal/grading"
)

func TestSummarize_EmptyStore(t *testing.T) {
	s := NewStore()
	_, err := s.Summarize(grading.DefaultScheme())
	assert.True(t, errors.Is(err, ErrEmptyStore), "err = %v, want ErrEmptyStore", err)
}

// TestSummarize_Class covers a three-student class with GPAs 4.5, 2.0
// and 0.5: the average 2.33 grades as D, and each earned letter holds a
// third of the class.
func TestSummarize_Class(t *testing.T) {
	s := NewStore()
	// Single-subject students so each GPA is score/20 exactly.
	s.Create("s1", "Ava", []Mark{{Subject: "Math", Score: 90}})  // 4.5
	s.Create("s2", "Ben", []Mark{{Subject: "Math", Score: 40}})  // 2.0
	s.Create("s3", "Cai", []Mark{{Subject: "Math", Score: 10}})  // 0.5

	sum, err := s.Summarize(grading.DefaultScheme())
	assert.NoError(t, err)

	assert.Equal(t, 3, sum.Count)
	assert.Equal(t, 2.33, sum.AverageGPA)
	assert.Equal(t, "D", sum.AverageGrade)
	assert.Equal(t, 4.5, sum.HighestGPA)
	assert.Equal(t, "A", sum.HighestGrade)
	assert.Equal(t, 0.5, sum.LowestGPA)
	assert.Equal(t, "F", sum.LowestGrade)

	assert.Len(t, sum.Distribution, 5)
	byLetter := map[string]GradeShare{}
	for _, g := range sum.Distribution {
		byLetter[g.Letter] = g
	}
	assert.Equal(t, 1, byLetter["A"].Count)
	assert.Equal(t, 0, byLetter["B"].Count)
	assert.Equal(t, 0, byLetter["C"].Count)
	assert.Equal(t, 1, byLetter["D"].Count)
	assert.Equal(t, 1, byLetter["F"].Count)
	assert.InDelta(t, 33.33, byLetter["A"].Percent, 0.01)
	assert.InDelta(t, 0, byLetter["B"].Percent, 0.001)
	assert.InDelta(t, 33.33, byLetter["F"].Percent, 0.01)
}

// TestSummarize_DistributionOrder pins the report rows to scheme
// order, best letter first, zero-count letters included.
func TestSummarize_DistributionOrder(t *testing.T) {
	s := NewStore()
	s.Create("s1", "Ava", []Mark{{Subject: "Math", Score: 90}})

	sum, err := s.Summarize(grading.DefaultScheme())
	assert.NoError(t, err)

	letters := make([]string, len(sum.Distribution))
	for i, g := range sum.Distribution {
		letters[i] = g.Letter
	}
	assert.Equal(t, []string{"A", "B", "C", "D", "F"}, letters)
}

func TestSummarize_SingleStudent(t *testing.T) {
	s := NewStore()
	s.Create("s1", "Ava", []Mark{{Subject: "Math", Score: 90}, {Subject: "Science", Score: 80}})

	sum, err := s.Summarize(grading.DefaultScheme())
	assert.NoError(t, err)
	assert.Equal(t, 1, sum.Count)
	assert.Equal(t, 4.25, sum.AverageGPA)
	assert.Equal(t, sum.HighestGPA, sum.LowestGPA)
	byLetter := map[string]int{}
	for _, g := range sum.Distribution {
		byLetter[g.Letter] = g.Count
	}
	assert.Equal(t, 1, byLetter["B"])
}
