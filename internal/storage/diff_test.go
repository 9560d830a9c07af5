package storage

import (
	"strings"
	"testing"

	"github.com/mkarman/gradebook/internal/roster"
)

func TestPending_CleanAfterSave(t *testing.T) {
	c := tempStore(t)
	records := []roster.Record{
		{ID: "s1", Name: "Alice", Marks: []roster.Mark{{Subject: "Math", Score: 90}}, GPA: 4.5},
	}
	if err := c.Save(records); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	diff, err := c.Pending(records)
	if err != nil {
		t.Fatalf("Pending failed: %v", err)
	}
	if diff != "" {
		t.Errorf("expected no pending changes, got:\n%s", diff)
	}
}

// TestPending_ShowsUnsavedEdits verifies the diff marks the in-memory
// state against what is on disk.
func TestPending_ShowsUnsavedEdits(t *testing.T) {
	c := tempStore(t)
	saved := []roster.Record{
		{ID: "s1", Name: "Alice", Marks: []roster.Mark{{Subject: "Math", Score: 90}}, GPA: 4.5},
	}
	if err := c.Save(saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	edited := []roster.Record{
		{ID: "s1", Name: "Alice", Marks: []roster.Mark{{Subject: "Math", Score: 100}}, GPA: 5},
		{ID: "s2", Name: "Ben", Marks: []roster.Mark{{Subject: "Math", Score: 40}}, GPA: 2},
	}
	diff, err := c.Pending(edited)
	if err != nil {
		t.Fatalf("Pending failed: %v", err)
	}
	if !strings.Contains(diff, "(unsaved)") {
		t.Errorf("diff header missing the unsaved side:\n%s", diff)
	}
	if !strings.Contains(diff, "+s2,Ben") {
		t.Errorf("diff should show the new record as an addition:\n%s", diff)
	}
	if !strings.Contains(diff, "-s1,Alice,Math,90,4.5") {
		t.Errorf("diff should show the old row leaving:\n%s", diff)
	}
}

// TestPending_MissingFileDiffsAgainstEmpty covers the first run: every
// record shows as an addition.
func TestPending_MissingFileDiffsAgainstEmpty(t *testing.T) {
	c := tempStore(t)
	diff, err := c.Pending([]roster.Record{
		{ID: "s1", Name: "Alice", Marks: []roster.Mark{{Subject: "Math", Score: 90}}, GPA: 4.5},
	})
	if err != nil {
		t.Fatalf("Pending failed: %v", err)
	}
	if !strings.Contains(diff, "+s1,Alice") {
		t.Errorf("diff should add the record against an empty file:\n%s", diff)
	}
}

func TestPending_EmptyRosterMissingFile(t *testing.T) {
	c := tempStore(t)
	diff, err := c.Pending(nil)
	if err != nil {
		t.Fatalf("Pending failed: %v", err)
	}
	// Only the header differs from the void, so a diff is reported;
	// it must not invent any student rows.
	if strings.Contains(diff, "s1") {
		t.Errorf("unexpected rows in diff:\n%s", diff)
	}
}
