package envfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	tempDir := t.TempDir()

	f, err := Load(filepath.Join(tempDir, "does-not-exist.env"))
	if err != nil {
		t.Fatalf("Load missing file: %v", err)
	}
	if len(f.Lines) != 0 {
		t.Errorf("missing file produced %d lines, want 0", len(f.Lines))
	}
	if f.Text() != "" {
		t.Errorf("missing file Text() = %q, want empty", f.Text())
	}
}

func TestLoadReadError(t *testing.T) {
	tempDir := t.TempDir()

	// A directory at the path is a read error, not a missing file
	dirPath := filepath.Join(tempDir, "actually-a-dir")
	if err := os.Mkdir(dirPath, 0755); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dirPath); err == nil {
		t.Error("Load on a directory succeeded, want error")
	}
}

func TestSaveAndReload(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "test.env")

	content := "# header\nA=1\nB= two\n"
	f := Parse(path, content)
	if err := f.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != content {
		t.Errorf("file content = %q, want %q", string(data), content)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reloaded.Text() != content {
		t.Errorf("reloaded Text() = %q, want %q", reloaded.Text(), content)
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "test.env")

	if err := os.WriteFile(path, []byte("OLD=content\n"), 0644); err != nil {
		t.Fatal(err)
	}

	f := Parse(path, "NEW=content\n")
	if err := f.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "NEW=content\n" {
		t.Errorf("file content = %q, want %q", string(data), "NEW=content\n")
	}

	// No temp file debris left behind
	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		for _, e := range entries {
			t.Logf("entry: %s", e.Name())
		}
		t.Errorf("directory holds %d entries after Save, want 1", len(entries))
	}
}

func TestSaveCreatesParentDir(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "nested", "deeper", "test.env")

	f := Parse(path, "A=1\n")
	if err := f.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved file missing: %v", err)
	}
}
