// Package testutil provides test helper utilities.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempFiles creates a temporary directory with the given files and returns
// its path. Files is a map of relative path -> content. Directories are
// created as needed. The directory is cleaned up when the test finishes.
func TempFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}

// SampleDocuments returns file contents for a small document upload batch.
func SampleDocuments() map[string]string {
	return map[string]string{
		"report.txt": "Quarterly revenue grew 12% year over year.\n",
		"notes.md":   "# Notes\n\n- follow up on churn numbers\n",
	}
}

// SampleCSV returns a minimal tabular data file.
func SampleCSV() map[string]string {
	return map[string]string{
		"sales.csv": "id,total\n1,10\n2,25\n",
	}
}

// SampleScript returns a minimal analysis script.
func SampleScript() map[string]string {
	return map[string]string{
		"analysis.py": "import pandas as pd\n\nprint('ready')\n",
	}
}
