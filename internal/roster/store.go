package roster

import (
	"fmt"
	"slices"
	"strings"
)

// Store is the aggregate of all student records. Lookups go through the
// map; the order slice remembers insertion order for listing and
// serialization.
type Store struct {
	records map[string]*Record
	order   []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{records: make(map[string]*Record)}
}

// Create adds a student with at least one graded subject. The id and
// name are trimmed. Fails with ErrInvalidInput on an empty id or name,
// empty marks, a bad subject or an out-of-range score, with
// ErrDuplicateID if the id is taken and with ErrDuplicateSubject if the
// same subject appears twice in marks.
func (s *Store) Create(id, name string, marks []Mark) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, fmt.Errorf("%w: student id is required", ErrInvalidInput)
	}
	if _, ok := s.records[id]; ok {
		return Record{}, fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Record{}, fmt.Errorf("%w: student name is required", ErrInvalidInput)
	}
	if len(marks) == 0 {
		return Record{}, fmt.Errorf("%w: at least one subject is required", ErrInvalidInput)
	}

	r := &Record{ID: id, Name: name, Marks: make([]Mark, 0, len(marks))}
	for _, m := range marks {
		subject, err := cleanSubject(m.Subject)
		if err != nil {
			return Record{}, err
		}
		if err := checkScore(m.Score); err != nil {
			return Record{}, fmt.Errorf("subject %q: %w", subject, err)
		}
		if r.markIndex(subject) >= 0 {
			return Record{}, fmt.Errorf("%w: %q", ErrDuplicateSubject, subject)
		}
		r.Marks = append(r.Marks, Mark{Subject: subject, Score: m.Score})
	}
	r.recalc()

	s.records[id] = r
	s.order = append(s.order, id)
	return r.clone(), nil
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(id string) (Record, error) {
	r, ok := s.records[strings.TrimSpace(id)]
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return r.clone(), nil
}

// UpdateMark sets the student's score for a subject. An existing
// subject keeps its position; an unknown subject is added at the end.
// The GPA is recomputed before the updated copy is returned.
func (s *Store) UpdateMark(id, subject string, score float64) (Record, error) {
	r, ok := s.records[strings.TrimSpace(id)]
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	subject, err := cleanSubject(subject)
	if err != nil {
		return Record{}, err
	}
	if err := checkScore(score); err != nil {
		return Record{}, err
	}
	if i := r.markIndex(subject); i >= 0 {
		r.Marks[i].Score = score
	} else {
		r.Marks = append(r.Marks, Mark{Subject: subject, Score: score})
	}
	r.recalc()
	return r.clone(), nil
}

// AddMark grades a new subject on the student. Unlike UpdateMark it
// insists the subject is new and fails with ErrDuplicateSubject
// otherwise.
func (s *Store) AddMark(id, subject string, score float64) (Record, error) {
	r, ok := s.records[strings.TrimSpace(id)]
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	subject, err := cleanSubject(subject)
	if err != nil {
		return Record{}, err
	}
	if r.markIndex(subject) >= 0 {
		return Record{}, fmt.Errorf("%w: %q", ErrDuplicateSubject, subject)
	}
	if err := checkScore(score); err != nil {
		return Record{}, err
	}
	r.Marks = append(r.Marks, Mark{Subject: subject, Score: score})
	r.recalc()
	return r.clone(), nil
}

// RemoveMark drops a subject from the student. A record must keep at
// least one subject, so removing the last one fails with ErrLastSubject
// and leaves the record untouched.
func (s *Store) RemoveMark(id, subject string) (Record, error) {
	r, ok := s.records[strings.TrimSpace(id)]
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	subject = strings.TrimSpace(subject)
	i := r.markIndex(subject)
	if i < 0 {
		return Record{}, fmt.Errorf("%w: %q", ErrSubjectNotFound, subject)
	}
	if len(r.Marks) == 1 {
		return Record{}, fmt.Errorf("%w: %q is the only graded subject for %q", ErrLastSubject, subject, r.ID)
	}
	r.Marks = slices.Delete(r.Marks, i, i+1)
	r.recalc()
	return r.clone(), nil
}

// Delete removes the student entirely.
func (s *Store) Delete(id string) error {
	id = strings.TrimSpace(id)
	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	delete(s.records, id)
	s.order = slices.DeleteFunc(s.order, func(o string) bool { return o == id })
	return nil
}

// List returns copies of all records in insertion order. Each call
// takes a fresh snapshot, so the result always reflects the current
// state.
func (s *Store) List() []Record {
	out := make([]Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id].clone())
	}
	return out
}

// Len reports the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// Restore replaces the store's contents with records loaded from disk,
// keeping their order. Stored GPAs are trusted as-is; the loader has
// already recomputed the ones it could not parse. Records with an empty
// id are skipped, and a duplicated id keeps its first position with the
// last row's data.
func (s *Store) Restore(records []Record) {
	s.records = make(map[string]*Record, len(records))
	s.order = s.order[:0]
	for _, rec := range records {
		id := strings.TrimSpace(rec.ID)
		if id == "" {
			continue
		}
		cp := rec.clone()
		cp.ID = id
		if _, seen := s.records[id]; !seen {
			s.order = append(s.order, id)
		}
		s.records[id] = &cp
	}
}
