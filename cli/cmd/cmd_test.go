package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/dotenvy/dotenv"
	"github.com/ardnew/dotenvy/eval"
	"github.com/ardnew/dotenvy/pkg"
)

// runner is satisfied by every command.
type runner interface {
	Run(ctx context.Context) error
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func run(t *testing.T, stdin string, cmd runner) (string, error) {
	t.Helper()

	var out bytes.Buffer

	ctx := WithStreams(t.Context(), Streams{
		In:  strings.NewReader(stdin),
		Out: &out,
		Err: &bytes.Buffer{},
	})

	err := cmd.Run(ctx)

	return out.String(), err
}

// TestSource_Layers verifies input precedence.
func TestSource_Layers(t *testing.T) {
	dir := t.TempDir()
	base := writeInput(t, dir, "base.env", "A=base\nB=base\nC=base\n")
	local := writeInput(t, dir, "local.env", "B=local\n")

	t.Setenv("C", "process")

	tests := []struct {
		name   string
		source Source
		stdin  string
		want   map[string]string
	}{
		{
			name:   "single",
			source: Source{Input: []string{base}},
			want:   map[string]string{"A": "base", "B": "base", "C": "base"},
		},
		{
			name:   "later overrides earlier",
			source: Source{Input: []string{base, local}},
			want:   map[string]string{"A": "base", "B": "local", "C": "base"},
		},
		{
			name:   "stdin",
			source: Source{Input: []string{base, "-"}},
			stdin:  "A=stdin",
			want:   map[string]string{"A": "stdin", "B": "base", "C": "base"},
		},
		{
			name:   "process on top",
			source: Source{Input: []string{base, local}, Process: true},
			want:   map[string]string{"A": "base", "B": "local", "C": "process"},
		},
		{
			name:   "repeat keeps last position",
			source: Source{Input: []string{local, base, "./" + filepath.Base(local)}},
			want:   map[string]string{"A": "base", "B": "local", "C": "base"},
		},
	}

	t.Chdir(dir)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := WithStreams(t.Context(), Streams{In: strings.NewReader(tt.stdin)})

			env, err := tt.source.Load(ctx)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			for key, want := range tt.want {
				if got := env.Get(key); got != want {
					t.Errorf("Get(%q) = %q, want %q", key, got, want)
				}
			}
		})
	}
}

// TestSource_Default verifies that .env is used when no input is named and
// that its absence is not an error.
func TestSource_Default(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	env, err := Source{}.Load(t.Context())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if n := len(env.Flatten()); n != 0 {
		t.Errorf("Load() without .env has %d keys", n)
	}

	writeInput(t, dir, dotenv.DefaultPath, "X=1")

	env, err = Source{}.Load(t.Context())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := env.Get("X"); got != "1" {
		t.Errorf("Get(X) = %q, want 1", got)
	}
}

// TestSource_MissingInput verifies that a named input must exist.
func TestSource_MissingInput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	_, err := Source{Input: []string{missing}}.Load(t.Context())

	if !errors.Is(err, ErrLoad) || !errors.Is(err, pkg.ErrReadInput) {
		t.Errorf("Load() error = %v, want load input error", err)
	}
}

// TestCheck verifies that parse failures surface as load errors.
func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeInput(t, dir, "good.env", "A=1")
	bad := writeInput(t, dir, "bad.env", "ZAP=1\nASDF")

	if out, err := run(t, "", &Check{Source{Input: []string{good}}}); err != nil || out != "" {
		t.Errorf("Check(good) = %q, %v", out, err)
	}

	_, err := run(t, "", &Check{Source{Input: []string{bad}}})

	var loadErr *dotenv.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Check(bad) error = %v, want *dotenv.LoadError", err)
	}

	if !strings.HasSuffix(err.Error(), "Error on line 2: Missing equals sign") {
		t.Errorf("Check(bad) error =\n%s", err)
	}
}

// TestJSON verifies JSON output.
func TestJSON(t *testing.T) {
	stdin := "B=<b&>\nA=1\n"

	out, err := run(t, stdin, &JSON{Source: Source{Input: []string{"-"}}})
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	if want := `{"A":"1","B":"<b&>"}` + "\n"; out != want {
		t.Errorf("JSON() = %q, want %q", out, want)
	}

	out, err = run(t, stdin, &JSON{Source: Source{Input: []string{"-"}}, Pretty: true})
	if err != nil {
		t.Fatalf("JSON(pretty) error = %v", err)
	}

	if want := "{\n  \"A\": \"1\",\n  \"B\": \"<b&>\"\n}\n"; out != want {
		t.Errorf("JSON(pretty) = %q, want %q", out, want)
	}
}

// TestYAML verifies YAML output.
func TestYAML(t *testing.T) {
	out, err := run(t, "B=two\nA=one\n", &YAML{Source: Source{Input: []string{"-"}}, Indent: 2})
	if err != nil {
		t.Fatalf("YAML() error = %v", err)
	}

	if want := "A: one\nB: two\n"; out != want {
		t.Errorf("YAML() = %q, want %q", out, want)
	}
}

// TestGet verifies key lookup and suggestions.
func TestGet(t *testing.T) {
	stdin := "PORT=8080\nHOST=localhost\n"

	out, err := run(t, stdin, &Get{Source: Source{Input: []string{"-"}}, Key: "PORT"})
	if err != nil || out != "8080\n" {
		t.Errorf("Get(PORT) = %q, %v", out, err)
	}

	_, err = run(t, stdin, &Get{Source: Source{Input: []string{"-"}}, Key: "PRT"})
	if !errors.Is(err, ErrLookup) || !errors.Is(err, pkg.ErrKeyNotFound) {
		t.Fatalf("Get(PRT) error = %v, want lookup error", err)
	}

	if !strings.Contains(err.Error(), `did you mean "PORT"?`) {
		t.Errorf("Get(PRT) error = %q, want suggestion", err)
	}
}

// TestSuggest verifies the suggestion bound.
func TestSuggest(t *testing.T) {
	keys := []string{"PATH_A", "PATH_B", "PATH_C", "PATH_D", "HOME"}

	if got := suggest("PATH", keys); len(got) != maxSuggestions {
		t.Errorf("suggest() = %q, want %d items", got, maxSuggestions)
	}

	if got := suggest("XYZ", keys); len(got) != 0 {
		t.Errorf("suggest() = %q, want none", got)
	}
}

// TestEnv verifies dotenv output of the merged chain.
func TestEnv(t *testing.T) {
	dir := t.TempDir()
	base := writeInput(t, dir, "base.env", "A=1\nB='x y'\n")
	over := writeInput(t, dir, "over.env", "A=2\nC=${A}!\n")

	out, err := run(t, "", &Env{Source{Input: []string{base, over}}})
	if err != nil {
		t.Fatalf("Env() error = %v", err)
	}

	if want := "A=\"2\"\nB=\"x y\"\nC=\"2!\"\n"; out != want {
		t.Errorf("Env() = %q, want %q", out, want)
	}
}

// TestEnv_UnknownVariableAcrossFiles verifies that documents do not see
// each other's keys.
func TestEnv_UnknownVariableAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	base := writeInput(t, dir, "base.env", "B=x\n")
	over := writeInput(t, dir, "over.env", "A=${B}!\n")

	_, err := run(t, "", &Env{Source{Input: []string{base, over}}})
	if !errors.Is(err, dotenv.ErrUnknownVariable) {
		t.Errorf("Env() error = %v, want unknown variable", err)
	}
}

// TestExport verifies shell export output.
func TestExport(t *testing.T) {
	out, err := run(t, "B=it's\nA=\"$HOME\"\n", &Export{Source{Input: []string{"-"}}})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	want := "export A='$HOME'\n" +
		"export B='it'\\''s'\n"
	if out != want {
		t.Errorf("Export() =\n%s\nwant\n%s", out, want)
	}
}

// TestValidKeys verifies that unusable keys are dropped.
func TestValidKeys(t *testing.T) {
	got := validKeys(t.Context(), map[string]string{"OK": "1", "NOT-OK": "2", "": "3"})

	if len(got) != 1 || got["OK"] != "1" {
		t.Errorf("validKeys() = %q", got)
	}
}

// TestEval verifies expression evaluation against input.
func TestEval(t *testing.T) {
	stdin := "HOST=localhost\nPORT=8080\n"

	out, err := run(t, stdin, &Eval{Source: Source{Input: []string{"-"}}, Expr: `HOST + ":" + PORT`})
	if err != nil || out != "localhost:8080\n" {
		t.Errorf("Eval() = %q, %v", out, err)
	}

	_, err = run(t, stdin, &Eval{Source: Source{Input: []string{"-"}}, Expr: `HOST +`})
	if !errors.Is(err, ErrEval) || !errors.Is(err, pkg.ErrExprCompile) {
		t.Errorf("Eval(bad) error = %v, want compile error", err)
	}

	_, err = run(t, stdin, &Eval{Source: Source{Input: []string{"-"}}})
	if !errors.Is(err, ErrEval) || !errors.Is(err, pkg.ErrInvalidInput) {
		t.Errorf("Eval(empty) error = %v, want invalid input", err)
	}
}

// TestEval_Origin verifies that layers of the input are visible.
func TestEval_Origin(t *testing.T) {
	dir := t.TempDir()
	base := writeInput(t, dir, "base.env", "A=base\nB=base\n")
	local := writeInput(t, dir, "local.env", "B=local\n")

	out, err := run(t, "", &Eval{
		Source: Source{Input: []string{base, local}},
		Expr:   `[origin("A"), origin("B")]`,
	})
	if err != nil || out != "[0, 1]\n" {
		t.Errorf("Eval() = %q, %v", out, err)
	}
}

// TestEval_Builtins verifies the listing of built-in names.
func TestEval_Builtins(t *testing.T) {
	out, err := run(t, "", &Eval{Builtins: true})
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}

	if got := strings.Fields(out); !slices.Equal(got, eval.Builtins()) {
		t.Errorf("Eval() = %q, want %q", got, eval.Builtins())
	}
}

// TestError verifies wrapping and attributes.
func TestError(t *testing.T) {
	inner := errors.New("inner")
	err := ErrOutput.Wrap(inner)

	if got, want := err.Error(), "write output: inner"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if !errors.Is(err, ErrOutput) || !errors.Is(err, inner) {
		t.Errorf("errors.Is failed for %v", err)
	}

	withAttrs := err.With()
	if withAttrs == err {
		t.Error("With() returned the receiver")
	}

	if got := NewError("").Error(); got != "" {
		t.Errorf("empty Error() = %q", got)
	}
}
