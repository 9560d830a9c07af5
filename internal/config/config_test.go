package config

import (
	"testing"
)

// TestDefaultDataFile verifies students.csv is the default roster file
func TestDefaultDataFile(t *testing.T) {
	cfg := DefaultConfig()
	expected := "students.csv"

	if cfg.DataFile != expected {
		t.Errorf("Default data file = %q, want %q", cfg.DataFile, expected)
	}

	t.Logf("✅ Default data file is %s", cfg.DataFile)
}

// TestDefaultTheme verifies green is the default theme
func TestDefaultTheme(t *testing.T) {
	cfg := DefaultConfig()
	expected := "green"

	if cfg.Theme != expected {
		t.Errorf("Default theme = %q, want %q", cfg.Theme, expected)
	}

	t.Logf("✅ Default theme is %s", cfg.Theme)
}

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestValidate_RequiresDataFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataFile = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty data_file should fail validation")
	}
}

func TestValidate_RejectsUnknownTheme(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Theme = "mauve"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown theme should fail validation")
	}
}

func TestValidate_BackfillsExportDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExportDir = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if cfg.ExportDir != "." {
		t.Errorf("ExportDir = %q, want backfilled %q", cfg.ExportDir, ".")
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("GRADEBOOK_TEST_ROOT", "/srv/grades")

	got := expandEnv("$GRADEBOOK_TEST_ROOT/students.csv")
	if got != "/srv/grades/students.csv" {
		t.Errorf("expandEnv = %q, want %q", got, "/srv/grades/students.csv")
	}

	// Unknown variables are left alone rather than blanked.
	got = expandEnv("$GRADEBOOK_NO_SUCH_VAR/students.csv")
	if got != "$GRADEBOOK_NO_SUCH_VAR/students.csv" {
		t.Errorf("unset variable was rewritten: %q", got)
	}
}
