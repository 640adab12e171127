package dotenv

//go:generate go tool stringer --linecomment --type ErrorKind,LoadKind --output error_string.go

import (
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strconv"
)

// ErrorKind identifies one of the ways a document can fail to parse.
type ErrorKind int

const (
	InvalidEscapeSequence ErrorKind = iota // invalid-escape-sequence
	InvalidKeyStart                        // invalid-key-start
	MissingEquals                          // missing-equals
	UnexpectedEnd                          // unexpected-end
	UnknownVariable                        // unknown-variable
	UnterminatedQuote                      // unterminated-quote
	UnterminatedVariable                   // unterminated-variable
)

// Sentinels for use with errors.Is. A *ParseError matches the sentinel of
// its kind regardless of payload.
var (
	ErrInvalidEscapeSequence = &ParseError{Kind: InvalidEscapeSequence}
	ErrInvalidKeyStart       = &ParseError{Kind: InvalidKeyStart}
	ErrMissingEquals         = &ParseError{Kind: MissingEquals}
	ErrUnexpectedEnd         = &ParseError{Kind: UnexpectedEnd}
	ErrUnknownVariable       = &ParseError{Kind: UnknownVariable}
	ErrUnterminatedQuote     = &ParseError{Kind: UnterminatedQuote}
	ErrUnterminatedVariable  = &ParseError{Kind: UnterminatedVariable}
)

// ParseError describes why a document failed to parse. It carries no
// position; see [LocatedError].
type ParseError struct {
	// Key is the undefined variable name for UnknownVariable.
	Key string
	// Kind selects the variant.
	Kind ErrorKind
	// Char is the offending character for InvalidKeyStart, a whole
	// grapheme cluster.
	Char string
}

// Error returns the user-facing message used in diagnostics.
func (e *ParseError) Error() string {
	switch e.Kind {
	case InvalidEscapeSequence:
		return "Invalid escape sequence"
	case InvalidKeyStart:
		return fmt.Sprintf("Invalid start for a key: \"%s\"", e.Char)
	case MissingEquals:
		return "Missing equals sign"
	case UnexpectedEnd:
		return "Unexpected end of data"
	case UnknownVariable:
		return fmt.Sprintf("Unknown variable: %q", e.Key)
	case UnterminatedQuote:
		return "Unterminated quote"
	case UnterminatedVariable:
		return "Unterminated variable"
	default:
		return e.Kind.String()
	}
}

// Is reports whether target is a *ParseError of the same kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)

	return ok && t.Kind == e.Kind
}

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("kind", e.Kind.String())}

	switch e.Kind {
	case InvalidKeyStart:
		attrs = append(attrs, slog.String("char", e.Char))
	case UnknownVariable:
		attrs = append(attrs, slog.String("key", e.Key))
	}

	return slog.GroupValue(attrs...)
}

// LocatedError is a [ParseError] paired with the codepoint offset into the
// source text at which it was detected.
type LocatedError struct {
	Err    *ParseError
	Offset int
}

// Error implements the error interface.
func (e *LocatedError) Error() string {
	return "offset " + strconv.Itoa(e.Offset) + ": " + e.Err.Error()
}

// Unwrap returns the underlying [ParseError].
func (e *LocatedError) Unwrap() error { return e.Err }

// Format renders the error against source, the text that was parsed, as a
// line-numbered excerpt with a caret under the error location.
func (e *LocatedError) Format(source string) string {
	return FormatError(source, e.Offset, e.Err.Error())
}

// LogValue implements slog.LogValuer.
func (e *LocatedError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("offset", e.Offset),
		slog.Any("error", e.Err),
	)
}

// LoadKind distinguishes the ways loading a source can fail.
type LoadKind int

const (
	// LoadDecode means the source bytes are not valid UTF-8.
	LoadDecode LoadKind = iota // decode
	// LoadParse means the source text failed to parse.
	LoadParse // parse
)

// LoadError reports a source that could not be decoded or parsed.
// A missing source is not a LoadError.
type LoadError struct {
	// Located is set for LoadParse.
	Located *LocatedError
	// Source identifies where the data came from (usually a path).
	Source string
	// Text is the decoded source text for LoadParse.
	Text string
	Kind LoadKind
}

// Error returns the formatted diagnostic for parse failures, and a short
// description naming the source for decode failures. An absolute path is
// named by its file URL.
func (e *LoadError) Error() string {
	switch e.Kind {
	case LoadParse:
		return e.Located.Format(e.Text)
	default:
		return "Error decoding data at " + sourceName(e.Source)
	}
}

func sourceName(source string) string {
	if !filepath.IsAbs(source) {
		return source
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(source)}

	return u.String()
}

// Unwrap returns the located parse error, if any.
func (e *LoadError) Unwrap() error {
	if e.Located == nil {
		return nil
	}

	return e.Located
}

// LogValue implements slog.LogValuer.
func (e *LoadError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("kind", e.Kind.String()),
		slog.String("source", e.Source),
	}

	switch e.Kind {
	case LoadParse:
		attrs = append(attrs, slog.Any("parse", e.Located))
	default:
		attrs = append(attrs, slog.String("error", "invalid UTF-8"))
	}

	return slog.GroupValue(attrs...)
}
