package fileproc

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/panbanda/clonescan/pkg/extractor"
)

func TestExtractFilesPreservesInputOrder(t *testing.T) {
	tmpDir := t.TempDir()

	var files []string
	for i := range 20 {
		path := filepath.Join(tmpDir, "f"+strconv.Itoa(i)+".go")
		src := "package p\n\nfunc fn" + strconv.Itoa(i) + "() int { return " + strconv.Itoa(i) + " }\n"
		if err := os.WriteFile(path, []byte(src), 0644); err != nil {
			t.Fatalf("Failed to write test file: %v", err)
		}
		files = append(files, path)
	}

	results := ExtractFiles(files, func() *extractor.Extractor {
		return extractor.New()
	}, nil)

	if len(results) != len(files) {
		t.Fatalf("got %d results, want %d", len(results), len(files))
	}
	for i, r := range results {
		if r.Path != files[i] {
			t.Errorf("result %d path = %q, want %q", i, r.Path, files[i])
		}
		if r.Err != nil {
			t.Errorf("result %d unexpected error: %v", i, r.Err)
		}
		if len(r.Blocks) != 1 {
			t.Errorf("result %d blocks = %d, want 1", i, len(r.Blocks))
		}
	}
}

func TestExtractFilesEmpty(t *testing.T) {
	results := ExtractFiles(nil, func() *extractor.Extractor {
		return extractor.New()
	}, nil)
	if results != nil {
		t.Errorf("expected nil results for empty input, got %v", results)
	}
}

func TestExtractFilesProgress(t *testing.T) {
	tmpDir := t.TempDir()

	var files []string
	for i := range 5 {
		path := filepath.Join(tmpDir, "f"+strconv.Itoa(i)+".go")
		if err := os.WriteFile(path, []byte("package p\n"), 0644); err != nil {
			t.Fatalf("Failed to write test file: %v", err)
		}
		files = append(files, path)
	}

	var ticks atomic.Int64
	ExtractFiles(files, func() *extractor.Extractor {
		return extractor.New()
	}, func() { ticks.Add(1) })

	if got := ticks.Load(); got != 5 {
		t.Errorf("progress ticks = %d, want 5", got)
	}
}

func TestForEachFileDropsErrors(t *testing.T) {
	files := []string{"a", "b", "c", "d"}

	results := ForEachFile(files, func(path string) (string, error) {
		if path == "b" || path == "d" {
			return "", errors.New("skip")
		}
		return path, nil
	})

	sort.Strings(results)
	if len(results) != 2 || results[0] != "a" || results[1] != "c" {
		t.Errorf("results = %v, want [a c]", results)
	}
}

func TestForEachFileEmpty(t *testing.T) {
	if results := ForEachFile(nil, func(string) (int, error) { return 0, nil }); results != nil {
		t.Errorf("expected nil, got %v", results)
	}
}
