package grading

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MaxGPA is the top of the GPA scale. Marks are percentages in [0,100],
// so a perfect average maps to 5.0.
const MaxGPA = 5.0

// Compute converts a set of percentage scores into a GPA on the 0-5
// scale: mean of the scores divided by 20, rounded to two decimals.
// An empty set yields 0.
func Compute(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return Round2(sum / float64(len(scores)) / 20)
}

// Round2 rounds to two decimals, the precision GPAs are kept at.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Tier maps a letter to the lowest GPA that earns it.
type Tier struct {
	Letter string  `yaml:"letter"`
	MinGPA float64 `yaml:"min_gpa"`
}

// Scheme is an ordered set of letter tiers, highest threshold first,
// with a fallback letter for anything below the last tier.
type Scheme struct {
	Tiers    []Tier `yaml:"tiers"`
	Fallback string `yaml:"fallback"`
}

// DefaultScheme returns the built-in grading scale.
func DefaultScheme() *Scheme {
	return &Scheme{
		Tiers: []Tier{
			{Letter: "A", MinGPA: 4.5},
			{Letter: "B", MinGPA: 3.5},
			{Letter: "C", MinGPA: 2.5},
			{Letter: "D", MinGPA: 1.5},
		},
		Fallback: "F",
	}
}

// Letter grades a GPA: the first tier whose threshold it meets wins.
func (s *Scheme) Letter(gpa float64) string {
	for _, t := range s.Tiers {
		if gpa >= t.MinGPA {
			return t.Letter
		}
	}
	return s.Fallback
}

// Letters lists every letter the scheme can produce, best first.
// Used to keep grade distributions in a stable order.
func (s *Scheme) Letters() []string {
	out := make([]string, 0, len(s.Tiers)+1)
	for _, t := range s.Tiers {
		out = append(out, t.Letter)
	}
	return append(out, s.Fallback)
}

// Validate checks that the scheme is usable for grading.
func (s *Scheme) Validate() error {
	if len(s.Tiers) == 0 {
		return fmt.Errorf("grading scheme has no tiers")
	}
	if s.Fallback == "" {
		return fmt.Errorf("grading scheme has no fallback letter")
	}
	prev := math.Inf(1)
	for i, t := range s.Tiers {
		if t.Letter == "" {
			return fmt.Errorf("tier %d has an empty letter", i+1)
		}
		if t.MinGPA < 0 || t.MinGPA > MaxGPA {
			return fmt.Errorf("tier %q threshold %.2f outside [0, %.0f]", t.Letter, t.MinGPA, MaxGPA)
		}
		if t.MinGPA >= prev {
			return fmt.Errorf("tier %q threshold %.2f not below the previous tier", t.Letter, t.MinGPA)
		}
		prev = t.MinGPA
	}
	return nil
}

// LoadScheme reads a scheme from a YAML file. A missing file is not an
// error: the built-in scheme is returned so a fresh install grades the
// same as a configured one.
func LoadScheme(path string) (*Scheme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultScheme(), nil
		}
		return nil, fmt.Errorf("failed to read grading scheme: %w", err)
	}
	var s Scheme
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse grading scheme: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid grading scheme %s: %w", path, err)
	}
	return &s, nil
}

// SaveScheme writes a scheme to a YAML file, creating parent
// directories as needed.
func SaveScheme(path string, s *Scheme) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal grading scheme: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write grading scheme: %w", err)
	}
	return nil
}
