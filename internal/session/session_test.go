package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bashup/dotenv/internal/config"
)

func newTestSession(t *testing.T, content string) (*Session, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	conf := config.Defaults()
	conf.EnvFile = path
	return New(conf), path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, "# header\nA=1\nB= two \nA=3\n")

	tests := []struct {
		key   string
		value string
		err   error
	}{
		{"A", "1", nil},
		{"B", " two", nil},
		{"MISSING", "", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			value, err := s.Get(ctx, tt.key)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Get(%q) error = %v, want %v", tt.key, err, tt.err)
			}
			if value != tt.value {
				t.Errorf("Get(%q) = %q, want %q", tt.key, value, tt.value)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, "A=1\n")

	other := filepath.Join(t.TempDir(), "other.env")
	if err := os.WriteFile(other, []byte("A=other\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := s.Select(ctx, other); err != nil {
		t.Fatalf("Select: %v", err)
	}
	value, err := s.Get(ctx, "A")
	if err != nil {
		t.Fatal(err)
	}
	if value != "other" {
		t.Errorf("Get after Select = %q, want %q", value, "other")
	}

	// Selecting a missing file yields an empty image, not an error
	if err := s.Select(ctx, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("Select missing file: %v", err)
	}
	if _, err := s.Get(ctx, "A"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on empty selection error = %v, want ErrNotFound", err)
	}
}

func TestParse(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, "A=1\nB=2\nA=3\n")

	pairs, err := s.Parse(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 3 {
		t.Errorf("Parse(nil) returned %d pairs, want 3", len(pairs))
	}

	pairs, err = s.Parse(ctx, []string{"A"})
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 2 || pairs[0].Value != "1" || pairs[1].Value != "3" {
		t.Errorf("Parse(A) = %v, want both duplicate lines in file order", pairs)
	}

	if _, err := s.Parse(ctx, []string{"MISSING"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Parse(MISSING) error = %v, want ErrNotFound", err)
	}
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, "EXPORT_TEST_A=hello world\nEXPORT_TEST_B=2\n")

	pairs, err := s.Export(ctx, []string{"EXPORT_TEST_A"})
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 1 {
		t.Fatalf("Export returned %d pairs, want 1", len(pairs))
	}
	defer os.Unsetenv("EXPORT_TEST_A")

	if got := os.Getenv("EXPORT_TEST_A"); got != "hello world" {
		t.Errorf("environment value = %q, want %q", got, "hello world")
	}
}

func TestExportInvalidName(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, "2BAD=value\n")

	_, err := s.Export(ctx, nil)
	var invalid *InvalidKeyError
	if !errors.As(err, &invalid) {
		t.Fatalf("Export error = %v, want InvalidKeyError", err)
	}
	if invalid.Key != "2BAD" {
		t.Errorf("InvalidKeyError.Key = %q, want %q", invalid.Key, "2BAD")
	}
}

func TestSet(t *testing.T) {
	ctx := context.Background()
	s, path := newTestSession(t, "# header\nA=1\nB=2\n")

	changed, err := s.Set(ctx, []string{"A=9", "+B=ignored", "+C=3"})
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("Set reported no change")
	}
	if got, want := readFile(t, path), "# header\nA=9\nB=2\nC=3\n"; got != want {
		t.Errorf("file after Set = %q, want %q", got, want)
	}
}

func TestSetNoChangeDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	s, path := newTestSession(t, "A=1\n")

	before, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	changed, err := s.Set(ctx, []string{"A=1", "+A=other", "MISSING"})
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("Set reported a change for a no-op")
	}

	after, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Error("file was rewritten for a no-op")
	}
}

func TestSetDelete(t *testing.T) {
	ctx := context.Background()
	s, path := newTestSession(t, "A=1\nB=2\nA=3\n")

	changed, err := s.Set(ctx, []string{"A"})
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("Set reported no change")
	}
	if got, want := readFile(t, path), "B=2\n"; got != want {
		t.Errorf("file after delete = %q, want %q", got, want)
	}
}

func TestSetInvalidSpec(t *testing.T) {
	ctx := context.Background()
	s, path := newTestSession(t, "A=1\n")

	tests := []string{"=value", "  =value", "+NODEFAULT", "BAD KEY=1"}
	for _, spec := range tests {
		t.Run(spec, func(t *testing.T) {
			_, err := s.Set(ctx, []string{spec})
			var invalid *InvalidKeyError
			if !errors.As(err, &invalid) {
				t.Errorf("Set(%q) error = %v, want InvalidKeyError", spec, err)
			}
		})
	}
	if got := readFile(t, path); got != "A=1\n" {
		t.Errorf("file modified by rejected specs: %q", got)
	}
}

func TestPuts(t *testing.T) {
	ctx := context.Background()
	s, path := newTestSession(t, "A=1\n")

	if err := s.Puts(ctx, "# appended comment"); err != nil {
		t.Fatal(err)
	}
	if err := s.Puts(ctx, "B=2"); err != nil {
		t.Fatal(err)
	}
	if got, want := readFile(t, path), "A=1\n# appended comment\nB=2\n"; got != want {
		t.Errorf("file after Puts = %q, want %q", got, want)
	}
}

func TestGenerateWith(t *testing.T) {
	ctx := context.Background()
	s, path := newTestSession(t, "EXISTING=kept\n")

	// Present key never invokes the producer
	calls := 0
	value, err := s.GenerateWith(ctx, "EXISTING", func() (string, error) {
		calls++
		return "generated", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if value != "kept" {
		t.Errorf("GenerateWith(EXISTING) = %q, want %q", value, "kept")
	}
	if calls != 0 {
		t.Errorf("producer invoked %d times for a present key", calls)
	}

	// Absent key stores and returns the produced value
	value, err = s.GenerateWith(ctx, "SECRET", func() (string, error) {
		return "s3cr3t", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if value != "s3cr3t" {
		t.Errorf("GenerateWith(SECRET) = %q, want %q", value, "s3cr3t")
	}
	if got, want := readFile(t, path), "EXISTING=kept\nSECRET=s3cr3t\n"; got != want {
		t.Errorf("file after generate = %q, want %q", got, want)
	}

	// Second call reuses the stored value
	value, err = s.GenerateWith(ctx, "SECRET", func() (string, error) {
		return "different", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if value != "s3cr3t" {
		t.Errorf("second GenerateWith(SECRET) = %q, want stored %q", value, "s3cr3t")
	}
}

func TestGenerateWithFailureLeavesFile(t *testing.T) {
	ctx := context.Background()
	s, path := newTestSession(t, "A=1\n")

	_, err := s.GenerateWith(ctx, "NEW", func() (string, error) {
		return "", errors.New("producer failed")
	})
	if err == nil {
		t.Fatal("GenerateWith succeeded, want producer error")
	}
	if got := readFile(t, path); got != "A=1\n" {
		t.Errorf("file modified by failed generate: %q", got)
	}
}

func TestSetSeesExternalWrites(t *testing.T) {
	ctx := context.Background()
	s, path := newTestSession(t, "A=1\n")

	// Prime the in-memory image, then change the file behind its back
	if _, err := s.Get(ctx, "A"); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("A=1\nEXTERNAL=yes\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Set(ctx, []string{"B=2"}); err != nil {
		t.Fatal(err)
	}
	if got, want := readFile(t, path), "A=1\nEXTERNAL=yes\nB=2\n"; got != want {
		t.Errorf("external line lost: file = %q, want %q", got, want)
	}
}
