package roster

import "errors"

// Domain errors returned by Store operations. Callers match them with
// errors.Is; the store wraps each with the offending value for context.
var (
	// ErrInvalidInput covers validation failures: empty id or name,
	// a blank or malformed subject, a mark outside [0,100].
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateID means a record with that id already exists.
	ErrDuplicateID = errors.New("student id already exists")

	// ErrDuplicateSubject means the subject is already graded on the record.
	ErrDuplicateSubject = errors.New("subject already exists")

	// ErrNotFound means no record with that id exists.
	ErrNotFound = errors.New("student not found")

	// ErrSubjectNotFound means the record carries no mark for that subject.
	ErrSubjectNotFound = errors.New("subject not found")

	// ErrLastSubject rejects removing a record's only remaining subject.
	ErrLastSubject = errors.New("cannot remove the last subject")

	// ErrEmptyStore rejects aggregate reports over zero records.
	ErrEmptyStore = errors.New("no student records")
)
