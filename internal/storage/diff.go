package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/mkarman/gradebook/internal/roster"
)

// Pending returns a unified diff between the roster file on disk and
// what Save would write for the given records. An empty string means
// there is nothing unsaved. A missing file diffs against empty, so
// every record shows as an addition.
func (c *CSVStore) Pending(records []roster.Record) (string, error) {
	after, err := c.encode(records)
	if err != nil {
		return "", err
	}
	before, err := os.ReadFile(c.path)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read roster file: %w", err)
	}
	if bytes.Equal(before, after) {
		return "", nil
	}

	name := filepath.Base(c.path)
	edits := myers.ComputeEdits(span.URIFromPath(c.path), string(before), string(after))
	unified := gotextdiff.ToUnified(name, name+" (unsaved)", string(before), edits)
	return fmt.Sprint(unified), nil
}
