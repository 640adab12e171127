package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dotenvy/cli/cmd"
	"github.com/ardnew/dotenvy/dotenv"
	"github.com/ardnew/dotenvy/log"
)

func TestRun_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.env")
	if err := os.WriteFile(path, []byte("B=2\nA=1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer

	ctx := cmd.WithStreams(t.Context(), cmd.Streams{Out: &out})

	err := Run(ctx, func(int) {}, "--no-log-pretty", "json", "-i", path)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if want := `{"A":"1","B":"2"}` + "\n"; out.String() != want {
		t.Errorf("Run() output = %q, want %q", out.String(), want)
	}
}

func TestRun_ParseFailure(t *testing.T) {
	var out, diag bytes.Buffer

	ctx := cmd.WithStreams(t.Context(), cmd.Streams{
		In:  strings.NewReader("ASDF"),
		Out: &out,
	})

	err := Run(ctx, func(int) {}, "check", "-i", "-")
	if err == nil {
		t.Fatal("Run() error = nil")
	}

	Report(&diag, err)

	want := "   1: ASDF\n          ^\n\nError on line 1: Missing equals sign\n"
	if diag.String() != want {
		t.Errorf("Report() =\n%s\nwant\n%s", diag.String(), want)
	}

	if out.Len() != 0 {
		t.Errorf("stdout = %q, want empty", out.String())
	}
}

func TestReport_OtherErrors(t *testing.T) {
	var logged, diag bytes.Buffer

	log.Config(log.WithOutput(&logged), log.WithFormat(log.FormatText))
	t.Cleanup(func() { log.Config(log.WithOutput(os.Stderr)) })

	Report(&diag, errors.New("boom"))

	if diag.Len() != 0 {
		t.Errorf("Report() wrote %q to the diagnostic stream", diag.String())
	}

	if !strings.Contains(logged.String(), "boom") {
		t.Errorf("log = %q, want error", logged.String())
	}
}

func TestResolve(t *testing.T) {
	r, err := resolve(strings.NewReader("LOG_LEVEL=debug\nLOG_FORMAT=text\nlog_caller=true\n"))
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{flag: "log-level", want: "debug"},
		{flag: "log-format", want: "text"},
		{flag: "log-caller", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: tt.flag}})
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%q) = %v, want %v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestResolve_ParseError(t *testing.T) {
	tests := []string{"LOG_LEVEL", "log-format=text"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := resolve(strings.NewReader(input))

			var le *dotenv.LoadError
			if !errors.As(err, &le) {
				t.Errorf("resolve() error = %v, want *dotenv.LoadError", err)
			}
		})
	}
}

func TestEnvKey(t *testing.T) {
	if got := envKey("log-time-layout"); got != "LOG_TIME_LAYOUT" {
		t.Errorf("envKey() = %q", got)
	}
}

func TestLogConfig_Scan(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		level  logLevel
		format logFormat
		pretty bool
		caller bool
	}{
		{
			name:   "separate values",
			args:   []string{"--log-level", "debug", "--log-format", "text"},
			level:  "debug",
			format: "text",
			pretty: true,
		},
		{
			name:   "assigned values",
			args:   []string{"json", "--log-level=warn", "--log-caller"},
			level:  "warn",
			pretty: true,
			caller: true,
		},
		{
			name:   "negated booleans",
			args:   []string{"--no-log-pretty", "--log-caller=false"},
			pretty: false,
		},
		{
			name:   "negated assigned",
			args:   []string{"--no-log-pretty=false"},
			pretty: true,
		},
		{
			name:   "stops at terminator",
			args:   []string{"--", "--log-level", "error"},
			pretty: true,
		},
	}

	t.Cleanup(func() { log.Config(log.WithDefaults(os.Stderr)) })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := logConfig{Pretty: true}
			f.scan(tt.args)

			if f.Level != tt.level || f.Format != tt.format ||
				f.Pretty != tt.pretty || f.Caller != tt.caller {
				t.Errorf("scan() = %+v", f)
			}
		})
	}
}
