package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mkarman/gradebook/internal/grading"
)

// SchemesDir returns the directory holding named grading schemes,
// creating it if needed. A scheme saved here can be referenced from
// the grading_scheme config key by bare name.
func SchemesDir() (string, error) {
	var base string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		base = xdg
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	dir := filepath.Join(base, "gradebook", "schemes")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// SchemePath returns where the named scheme lives on disk.
func SchemePath(name string) (string, error) {
	dir, err := SchemesDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+".yaml"), nil
}

func SaveNamedScheme(name string, s *grading.Scheme) error {
	path, err := SchemePath(name)
	if err != nil {
		return err
	}
	return grading.SaveScheme(path, s)
}

func LoadNamedScheme(name string) (*grading.Scheme, error) {
	path, err := SchemePath(name)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("grading scheme '%s' not found", name)
	}
	return grading.LoadScheme(path)
}

func ListSchemes() ([]string, error) {
	dir, err := SchemesDir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".yaml" {
			names = append(names, e.Name()[:len(e.Name())-5])
		}
	}
	return names, nil
}

func DeleteNamedScheme(name string) error {
	path, err := SchemePath(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("grading scheme '%s' not found", name)
	}
	return os.Remove(path)
}
