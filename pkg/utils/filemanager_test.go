package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestManager(t *testing.T) *FileManager {
	t.Helper()
	base := t.TempDir()
	fm := NewFileManager(
		filepath.Join(base, "input"),
		filepath.Join(base, "output"),
		filepath.Join(base, "archive"),
	)
	if err := fm.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	return fm
}

func TestEnsureDirectories(t *testing.T) {
	fm := newTestManager(t)

	for _, dir := range []string{fm.InputDir, fm.OutputDir, fm.ArchiveDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("directory %s not created: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}
}

func TestDiscoverFeedFiles(t *testing.T) {
	fm := newTestManager(t)

	files := []string{"b_feed.txt", "a_feed.csv", "c_feed.xlsx", "notes.md", "data.json"}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(fm.InputDir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(fm.InputDir, "sub.txt"), 0755); err != nil {
		t.Fatalf("creating subdirectory: %v", err)
	}

	found, err := fm.DiscoverFeedFiles()
	if err != nil {
		t.Fatalf("DiscoverFeedFiles failed: %v", err)
	}

	var names []string
	for _, f := range found {
		names = append(names, filepath.Base(f))
	}

	want := []string{"a_feed.csv", "b_feed.txt", "c_feed.xlsx"}
	if len(names) != len(want) {
		t.Fatalf("found %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("found[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestDiscoverFeedFilesMissingDir(t *testing.T) {
	fm := NewFileManager("/nonexistent/input", "out", "arch")
	if _, err := fm.DiscoverFeedFiles(); err == nil {
		t.Error("expected error for missing input directory")
	}
}

func TestGenerateOutputFileName(t *testing.T) {
	t.Run("feed placeholder", func(t *testing.T) {
		got := GenerateOutputFileName("sales_report_{feed}.txt", "input/december_sales.txt")
		if got != "sales_report_december_sales.txt" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("strips feed extension", func(t *testing.T) {
		got := GenerateOutputFileName("enriched_{feed}.txt", "input/q4.xlsx")
		if got != "enriched_q4.txt" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("timestamp placeholder", func(t *testing.T) {
		got := GenerateOutputFileName("report_{timestamp}.txt", "feed.txt")
		if strings.Contains(got, "{timestamp}") {
			t.Errorf("timestamp placeholder not replaced: %q", got)
		}
		// report_YYYYMMDD_HHMMSS.txt
		if len(got) != len("report_20060102_150405.txt") {
			t.Errorf("unexpected timestamp format in %q", got)
		}
	})

	t.Run("uuid placeholder is unique", func(t *testing.T) {
		a := GenerateOutputFileName("{uuid}.txt", "feed.txt")
		b := GenerateOutputFileName("{uuid}.txt", "feed.txt")
		if strings.Contains(a, "{uuid}") {
			t.Errorf("uuid placeholder not replaced: %q", a)
		}
		if a == b {
			t.Errorf("consecutive uuid names must differ, both %q", a)
		}
	})

	t.Run("no placeholders", func(t *testing.T) {
		if got := GenerateOutputFileName("fixed.txt", "feed.txt"); got != "fixed.txt" {
			t.Errorf("got %q", got)
		}
	})
}

func TestArchiveFeedFile(t *testing.T) {
	fm := newTestManager(t)

	feedPath := filepath.Join(fm.InputDir, "dec_sales.txt")
	if err := os.WriteFile(feedPath, []byte("feed data"), 0644); err != nil {
		t.Fatalf("writing feed: %v", err)
	}

	archivePath, err := fm.ArchiveFeedFile(feedPath)
	if err != nil {
		t.Fatalf("ArchiveFeedFile failed: %v", err)
	}

	if FileExists(feedPath) {
		t.Error("feed file should have been moved out of the input directory")
	}
	if !FileExists(archivePath) {
		t.Fatalf("archived file %s does not exist", archivePath)
	}
	if !strings.HasSuffix(archivePath, "_dec_sales.txt") {
		t.Errorf("archived name should keep the original base name, got %q", archivePath)
	}

	data, err := os.ReadFile(archivePath)
	if err != nil {
		t.Fatalf("reading archive: %v", err)
	}
	if string(data) != "feed data" {
		t.Errorf("archived content = %q", data)
	}
}

func TestFileExists(t *testing.T) {
	fm := newTestManager(t)

	path := filepath.Join(fm.InputDir, "present.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	if !FileExists(path) {
		t.Error("FileExists should report true for a regular file")
	}
	if FileExists(filepath.Join(fm.InputDir, "absent.txt")) {
		t.Error("FileExists should report false for a missing file")
	}
	if FileExists(fm.InputDir) {
		t.Error("FileExists should report false for a directory")
	}
}
