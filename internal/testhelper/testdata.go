// Package testhelper manages golden files under a package's testdata
// directory. Projections are byte-deterministic, so their tests
// compare whole documents and refresh them with -update.
package testhelper

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/entityscope/orbite/pkg/constants"
)

// UpdateTestdata is the global flag for refreshing golden files.
var UpdateTestdata = flag.Bool("update", false, "update testdata files")

// LoadTestdata loads a golden file from the caller's testdata
// directory.
func LoadTestdata(t *testing.T, filename string) []byte {
	t.Helper()

	testdataPath := filepath.Join("testdata", filename)
	data, err := os.ReadFile(testdataPath) //nolint:gosec // Test file paths are controlled
	if err != nil {
		t.Fatalf("Failed to load testdata file %s: %v", testdataPath, err)
	}
	return data
}

// SaveTestdata writes a golden file if the -update flag is set.
func SaveTestdata(t *testing.T, filename string, data []byte) {
	t.Helper()

	if !*UpdateTestdata {
		return
	}

	if err := os.MkdirAll("testdata", constants.DirPermissions); err != nil {
		t.Fatalf("Failed to create testdata directory: %v", err)
	}

	testdataPath := filepath.Join("testdata", filename)
	if err := os.WriteFile(testdataPath, data, constants.FilePermissions); err != nil {
		t.Fatalf("Failed to save testdata file %s: %v", testdataPath, err)
	}
	t.Logf("Updated testdata file: %s", testdataPath)
}

// CompareWithTestdata compares actual bytes with the golden file,
// refreshing the file instead when -update is set.
func CompareWithTestdata(t *testing.T, filename string, actual []byte) {
	t.Helper()

	if *UpdateTestdata {
		SaveTestdata(t, filename, actual)
		return
	}

	expected := LoadTestdata(t, filename)
	if string(actual) != string(expected) {
		t.Errorf("Data does not match testdata file %s\nActual:\n%s\nExpected:\n%s",
			filename, string(actual), string(expected))
	}
}

// CompareJSONWithTestdata marshals actual with indentation and
// compares it with the golden file.
func CompareJSONWithTestdata(t *testing.T, filename string, actual any) {
	t.Helper()

	actualData, err := json.MarshalIndent(actual, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal actual data for comparison: %v", err)
	}
	CompareWithTestdata(t, filename, actualData)
}
