// Package testutil provides shared test infrastructure for the machine packages.
// It holds the golden swatch types used by machine/ and machine/swatch/ tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenSwatches represents the structure of testdata/goldenswatches.json.
type GoldenSwatches struct {
	Swatches []GoldenSwatch `json:"swatches"`
}

// GoldenSwatch is one swatch program and the machine state it must leave behind.
type GoldenSwatch struct {
	Name    string       `json:"name"`
	Width   int          `json:"width"`
	Rows    int          `json:"rows"`
	Carrier int          `json:"carrier"`
	Expect  GoldenResult `json:"expect"`
}

// GoldenResult is the expected outcome of running a golden swatch on a default machine.
type GoldenResult struct {
	Instructions int `json:"instructions"`
	Loops        int `json:"loops"`
	Stitches     int `json:"stitches"`
	Crossings    int `json:"crossings"`
	FrontLoops   int `json:"front_loops"`
	BackLoops    int `json:"back_loops"`
	Diagnostics  int `json:"diagnostics"`
	Rack         int `json:"rack"`
}

// LoadGoldenSwatches loads the golden swatches from the testdata directory.
// The path is resolved relative to this source file: machine/internal/testutil/ → testdata/.
func LoadGoldenSwatches(t *testing.T) *GoldenSwatches {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldenswatches.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden swatches: %v", err)
	}

	var golden GoldenSwatches
	if err := json.Unmarshal(data, &golden); err != nil {
		t.Fatalf("Failed to parse golden swatches: %v", err)
	}
	return &golden
}

// TestdataPath returns the absolute path of a file in the repository's testdata directory.
func TestdataPath(t *testing.T, name string) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", name)
}
