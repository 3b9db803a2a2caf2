package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonwraymond/detectorsearch/catalog"
)

const sampleDefinitions = `detectors:
  - id: d1
    name: cpu-spikes
    indices: [metrics-cpu]
    detector_type: SINGLE_ENTITY
    last_update_time: 1000
  - name: mem-leaks
    indices: [metrics-mem]
    detector_type: MULTI_ENTITY
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func newCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New()
	if err != nil {
		t.Fatalf("catalog.New failed: %v", err)
	}
	t.Cleanup(func() { _ = cat.Close() })
	return cat
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sample.yaml", sampleDefinitions)

	detectors, err := New(nil).LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(detectors) != 2 {
		t.Fatalf("expected 2 detectors, got %d", len(detectors))
	}
	if detectors[0].ID != "d1" {
		t.Errorf("expected explicit id preserved, got %q", detectors[0].ID)
	}
	if detectors[1].ID == "" {
		t.Error("expected generated id for detector without one")
	}
}

func TestLoadFileRejectsUnnamedDetector(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.yaml", "detectors:\n  - id: nameless\n")

	if _, err := New(nil).LoadFile(path); err == nil {
		t.Error("expected error for detector without name")
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sample.yaml", sampleDefinitions)
	writeFile(t, dir, "more.yml", "detectors:\n  - id: d3\n    name: disk-full\n")
	writeFile(t, dir, "ignored.txt", "not yaml")

	cat := newCatalog(t)
	indexed, err := New(nil).LoadDirectory(dir, cat)
	if err != nil {
		t.Fatalf("LoadDirectory failed: %v", err)
	}
	if indexed != 3 {
		t.Errorf("expected 3 detectors indexed, got %d", indexed)
	}

	count, err := cat.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 documents, got %d", count)
	}
}

func TestLoadDirectoryMissing(t *testing.T) {
	cat := newCatalog(t)
	if _, err := New(nil).LoadDirectory("/nonexistent/definitions", cat); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestWatcherInitialLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sample.yaml", sampleDefinitions)

	cat := newCatalog(t)
	w, err := NewWatcher(New(nil), cat, dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	count, err := cat.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 documents after initial load, got %d", count)
	}
}
