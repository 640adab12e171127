package dotenv

import (
	"errors"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

// TestLoadValues verifies loading a file from disk.
func TestLoadValues(t *testing.T) {
	path := writeFile(t, ".env", []byte("A=1\nB=${A}2\n"))

	got, err := LoadValues(path)
	if err != nil {
		t.Fatalf("LoadValues() error = %v", err)
	}

	want := map[string]string{"A": "1", "B": "12"}
	if !maps.Equal(got, want) {
		t.Errorf("LoadValues() = %q, want %q", got, want)
	}
}

// TestLoadValues_Missing verifies that a missing file is an empty mapping.
func TestLoadValues_Missing(t *testing.T) {
	got, err := LoadValues(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadValues() error = %v", err)
	}

	if got == nil || len(got) != 0 {
		t.Errorf("LoadValues() = %q, want empty mapping", got)
	}
}

// TestLoadValues_DefaultPath verifies loading .env from the working
// directory.
func TestLoadValues_DefaultPath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultPath), []byte("X=y"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Chdir(dir)

	got, err := LoadValues(DefaultPath)
	if err != nil {
		t.Fatalf("LoadValues() error = %v", err)
	}

	if got["X"] != "y" {
		t.Errorf("LoadValues() = %q", got)
	}
}

// TestLoadValues_Decode verifies that non UTF-8 content is a decode failure.
func TestLoadValues_Decode(t *testing.T) {
	// "A=1" in UTF-16 with a byte order mark
	utf16 := []byte{0xff, 0xfe, 'A', 0, '=', 0, '1', 0, 0xd8}
	path := writeFile(t, "utf16.env", utf16)

	_, err := LoadValues(path)

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("LoadValues() error = %v, want *LoadError", err)
	}

	if loadErr.Kind != LoadDecode {
		t.Errorf("Kind = %v, want LoadDecode", loadErr.Kind)
	}

	abs, _ := filepath.Abs(path)
	if loadErr.Source != abs {
		t.Errorf("Source = %q, want %q", loadErr.Source, abs)
	}

	if want := "Error decoding data at file://" + abs; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

// TestDecode_NamedSource verifies that a source that is not a path is
// named as given.
func TestDecode_NamedSource(t *testing.T) {
	_, err := Decode("-", []byte{0xff, 0xfe})

	if want := "Error decoding data at -"; err == nil || err.Error() != want {
		t.Errorf("Decode() error = %v, want %q", err, want)
	}
}

// TestLoadValues_Parse verifies that parse failures carry the formatted
// diagnostic.
func TestLoadValues_Parse(t *testing.T) {
	path := writeFile(t, "bad.env", []byte("ZAP=1\nASDF"))

	_, err := LoadValues(path)

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("LoadValues() error = %v, want *LoadError", err)
	}

	if loadErr.Kind != LoadParse || loadErr.Text != "ZAP=1\nASDF" {
		t.Errorf("LoadError = %+v", loadErr)
	}

	if !errors.Is(err, ErrMissingEquals) {
		t.Errorf("errors.Is(err, ErrMissingEquals) = false")
	}

	want := "   1: ZAP=1\n   2: ASDF\n          ^\n\nError on line 2: Missing equals sign"
	if err.Error() != want {
		t.Errorf("Error() =\n%s\nwant\n%s", err.Error(), want)
	}
}

// TestLoadValues_Unreadable verifies that other I/O errors pass through.
func TestLoadValues_Unreadable(t *testing.T) {
	_, err := LoadValues(t.TempDir())
	if err == nil {
		t.Fatal("LoadValues(dir) error = nil")
	}

	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		t.Errorf("LoadValues(dir) error = %v, want I/O error", err)
	}
}

// TestReadValues verifies loading from a reader.
func TestReadValues(t *testing.T) {
	got, err := ReadValues("-", strings.NewReader("A=b"))
	if err != nil {
		t.Fatalf("ReadValues() error = %v", err)
	}

	if got["A"] != "b" {
		t.Errorf("ReadValues() = %q", got)
	}
}

// TestMake verifies building a chain over a file.
func TestMake(t *testing.T) {
	path := writeFile(t, ".env", []byte("A=file\nB=file"))

	env, err := Make(path, New(map[string]string{"B": "override"}, nil))
	if err != nil {
		t.Fatalf("Make() error = %v", err)
	}

	if env.Get("A") != "file" || env.Get("B") != "override" {
		t.Errorf("Make() flattened = %q", env.Flatten())
	}
}

// TestMakeSource verifies building a chain from text.
func TestMakeSource(t *testing.T) {
	env, err := MakeSource("A=1", nil)
	if err != nil {
		t.Fatalf("MakeSource() error = %v", err)
	}

	if env.Get("A") != "1" || env.Override() != nil {
		t.Errorf("MakeSource() = %q", env.Flatten())
	}

	if _, err := MakeSource("A", nil); !errors.Is(err, ErrMissingEquals) {
		t.Errorf("MakeSource(A) error = %v, want missing equals", err)
	}
}

// TestEnvironment_Export verifies exporting into the process environment.
func TestEnvironment_Export(t *testing.T) {
	tests := []struct {
		name      string
		overwrite bool
		want      string
	}{
		{name: "overwrite", overwrite: true, want: "file"},
		{name: "keep existing", overwrite: false, want: "process"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DOTENVY_TEST_EXISTING", "process")
			t.Setenv("DOTENVY_TEST_NEW", "")
			os.Unsetenv("DOTENVY_TEST_NEW")

			env := New(map[string]string{
				"DOTENVY_TEST_EXISTING": "file",
				"DOTENVY_TEST_NEW":      "new",
			}, nil)

			if err := env.Export(tt.overwrite); err != nil {
				t.Fatalf("Export() error = %v", err)
			}

			if got := os.Getenv("DOTENVY_TEST_EXISTING"); got != tt.want {
				t.Errorf("DOTENVY_TEST_EXISTING = %q, want %q", got, tt.want)
			}

			if got := os.Getenv("DOTENVY_TEST_NEW"); got != "new" {
				t.Errorf("DOTENVY_TEST_NEW = %q, want %q", got, "new")
			}
		})
	}
}
