package roster

import (
	"errors"
	"testing"
)

func seedAlice(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	_, err := s.Create("s1", "Alice", []Mark{
		{Subject: "Math", Score: 90},
		{Subject: "Science", Score: 80},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return s
}

// TestCreate_GPA verifies the GPA is derived on creation: 90 and 80
// average to 85, which is 4.25 on the 0-5 scale.
func TestCreate_GPA(t *testing.T) {
	s := seedAlice(t)

	rec, err := s.Get("s1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec.GPA != 4.25 {
		t.Errorf("GPA = %v, want 4.25", rec.GPA)
	}
	if len(rec.Marks) != 2 || rec.Marks[0].Subject != "Math" {
		t.Errorf("Marks = %v, want Math then Science", rec.Marks)
	}
}

func TestCreate_Validation(t *testing.T) {
	s := NewStore()
	marks := []Mark{{Subject: "Math", Score: 90}}

	if _, err := s.Create("", "Alice", marks); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty id: err = %v, want ErrInvalidInput", err)
	}
	if _, err := s.Create("s1", "   ", marks); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("blank name: err = %v, want ErrInvalidInput", err)
	}
	if _, err := s.Create("s1", "Alice", nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("no marks: err = %v, want ErrInvalidInput", err)
	}
	if _, err := s.Create("s1", "Alice", []Mark{{Subject: "Math", Score: 101}}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("score 101: err = %v, want ErrInvalidInput", err)
	}
	if _, err := s.Create("s1", "Alice", []Mark{{Subject: "Math", Score: -1}}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("score -1: err = %v, want ErrInvalidInput", err)
	}
	if _, err := s.Create("s1", "Alice", []Mark{{Subject: "", Score: 50}}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty subject: err = %v, want ErrInvalidInput", err)
	}
	dup := []Mark{{Subject: "Math", Score: 90}, {Subject: "Math", Score: 70}}
	if _, err := s.Create("s1", "Alice", dup); !errors.Is(err, ErrDuplicateSubject) {
		t.Errorf("repeated subject: err = %v, want ErrDuplicateSubject", err)
	}

	// None of the rejected creations may have left anything behind.
	if s.Len() != 0 {
		t.Errorf("store has %d records after failed creates, want 0", s.Len())
	}
}

func TestCreate_DuplicateIDLeavesOriginal(t *testing.T) {
	s := seedAlice(t)

	_, err := s.Create("s1", "Mallory", []Mark{{Subject: "Art", Score: 10}})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID", err)
	}

	rec, _ := s.Get("s1")
	if rec.Name != "Alice" {
		t.Errorf("existing record was overwritten: name = %q", rec.Name)
	}
}

// TestGet_ReturnsCopy verifies mutating a returned record cannot reach
// into the store.
func TestGet_ReturnsCopy(t *testing.T) {
	s := seedAlice(t)

	rec, _ := s.Get("s1")
	rec.Marks[0].Score = 0
	rec.Name = "Eve"

	again, _ := s.Get("s1")
	if again.Marks[0].Score != 90 || again.Name != "Alice" {
		t.Errorf("store record changed through a returned copy: %+v", again)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := NewStore()
	if _, err := s.Get("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// TestUpdateMark_Existing replays the regrade scenario: raising Math to
// 100 moves Alice from 4.25 (B) to 4.5 (A).
func TestUpdateMark_Existing(t *testing.T) {
	s := seedAlice(t)

	rec, err := s.UpdateMark("s1", "Math", 100)
	if err != nil {
		t.Fatalf("UpdateMark failed: %v", err)
	}
	if rec.GPA != 4.5 {
		t.Errorf("GPA = %v, want 4.5", rec.GPA)
	}
	if rec.Marks[0].Subject != "Math" || rec.Marks[0].Score != 100 {
		t.Errorf("Math should stay first with the new score, got %v", rec.Marks)
	}
}

func TestUpdateMark_NewSubjectAppends(t *testing.T) {
	s := seedAlice(t)

	rec, err := s.UpdateMark("s1", "History", 70)
	if err != nil {
		t.Fatalf("UpdateMark failed: %v", err)
	}
	if len(rec.Marks) != 3 || rec.Marks[2].Subject != "History" {
		t.Errorf("new subject should append, got %v", rec.Marks)
	}
	// (90+80+70)/3 = 80 -> 4.0
	if rec.GPA != 4.0 {
		t.Errorf("GPA = %v, want 4.0", rec.GPA)
	}
}

func TestUpdateMark_BadScore(t *testing.T) {
	s := seedAlice(t)
	if _, err := s.UpdateMark("s1", "Math", 120); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
	rec, _ := s.Get("s1")
	if rec.Marks[0].Score != 90 {
		t.Errorf("rejected update still changed the mark: %v", rec.Marks[0])
	}
}

func TestAddMark_RejectsExistingSubject(t *testing.T) {
	s := seedAlice(t)
	if _, err := s.AddMark("s1", "Math", 95); !errors.Is(err, ErrDuplicateSubject) {
		t.Errorf("err = %v, want ErrDuplicateSubject", err)
	}
}

func TestRemoveMark(t *testing.T) {
	s := seedAlice(t)

	rec, err := s.RemoveMark("s1", "Math")
	if err != nil {
		t.Fatalf("RemoveMark failed: %v", err)
	}
	if len(rec.Marks) != 1 || rec.Marks[0].Subject != "Science" {
		t.Errorf("Marks = %v, want only Science", rec.Marks)
	}
	// 80/20 = 4.0
	if rec.GPA != 4.0 {
		t.Errorf("GPA = %v, want 4.0", rec.GPA)
	}

	if _, err := s.RemoveMark("s1", "Art"); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("unknown subject: err = %v, want ErrSubjectNotFound", err)
	}
}

// TestRemoveMark_LastSubject verifies a record can never end up with
// zero subjects and stays intact when the removal is refused.
func TestRemoveMark_LastSubject(t *testing.T) {
	s := NewStore()
	s.Create("s1", "Alice", []Mark{{Subject: "Math", Score: 90}})

	_, err := s.RemoveMark("s1", "Math")
	if !errors.Is(err, ErrLastSubject) {
		t.Fatalf("err = %v, want ErrLastSubject", err)
	}

	rec, _ := s.Get("s1")
	if len(rec.Marks) != 1 || rec.GPA != 4.5 {
		t.Errorf("record changed by refused removal: %+v", rec)
	}
}

func TestDelete(t *testing.T) {
	s := seedAlice(t)
	s.Create("s2", "Bob", []Mark{{Subject: "Math", Score: 40}})

	if err := s.Delete("s1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
	if _, err := s.Get("s1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted record still found")
	}
	if err := s.Delete("s1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}

	list := s.List()
	if len(list) != 1 || list[0].ID != "s2" {
		t.Errorf("List = %v, want just s2", list)
	}
}

// TestList_InsertionOrder verifies listing follows the order students
// were added, unaffected by updates in between.
func TestList_InsertionOrder(t *testing.T) {
	s := NewStore()
	ids := []string{"s3", "s1", "s2"}
	for _, id := range ids {
		if _, err := s.Create(id, "Student "+id, []Mark{{Subject: "Math", Score: 50}}); err != nil {
			t.Fatalf("Create %s failed: %v", id, err)
		}
	}
	s.UpdateMark("s3", "Math", 99)

	list := s.List()
	if len(list) != 3 {
		t.Fatalf("List returned %d records, want 3", len(list))
	}
	for i, id := range ids {
		if list[i].ID != id {
			t.Errorf("List[%d].ID = %s, want %s", i, list[i].ID, id)
		}
	}
}

func TestCreate_TrimsInput(t *testing.T) {
	s := NewStore()
	rec, err := s.Create("  s1  ", "  Alice  ", []Mark{{Subject: "  Math  ", Score: 90}})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rec.ID != "s1" || rec.Name != "Alice" || rec.Marks[0].Subject != "Math" {
		t.Errorf("input not trimmed: %+v", rec)
	}
	if _, err := s.Get("s1"); err != nil {
		t.Errorf("trimmed id not usable for lookup: %v", err)
	}
}

func TestRestore(t *testing.T) {
	s := seedAlice(t)

	s.Restore([]Record{
		{ID: "a", Name: "Ann", Marks: []Mark{{Subject: "Math", Score: 60}}, GPA: 3},
		{ID: "", Name: "lost row"},
		{ID: "b", Name: "Ben", Marks: []Mark{{Subject: "Math", Score: 20}}, GPA: 1},
		{ID: "a", Name: "Ann again", Marks: []Mark{{Subject: "Art", Score: 80}}, GPA: 4},
	})

	// Previous contents are gone, the empty id is dropped, and the
	// duplicated id keeps its first slot with the last row's data.
	list := s.List()
	if len(list) != 2 {
		t.Fatalf("Len = %d, want 2", len(list))
	}
	if list[0].ID != "a" || list[1].ID != "b" {
		t.Errorf("order = [%s %s], want [a b]", list[0].ID, list[1].ID)
	}
	if list[0].Name != "Ann again" || list[0].GPA != 4 {
		t.Errorf("duplicate id should keep the last data, got %+v", list[0])
	}
}
