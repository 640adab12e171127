package dotenv

import (
	"bytes"
	"maps"
	"slices"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/ardnew/dotenvy/pkg"
)

// controlEscaper writes control characters as their two-character escapes.
var controlEscaper = strings.NewReplacer(
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

// Quote returns value as a double-quoted dotenv string. Escaping is decided
// per grapheme cluster, the unit the parser reads.
func Quote(value string) string {
	var b strings.Builder

	b.WriteByte('"')

	state := -1

	for value != "" {
		var c string

		c, value, _, state = uniseg.FirstGraphemeClusterInString(value, state)

		switch c {
		case `\`, `"`, "$":
			b.WriteString(`\` + c)

		case "\n", "\t", "\r", "\r\n":
			// the escape letter would fuse with a leading combining mark
			if fuses(value) {
				b.WriteString(c)
			} else {
				b.WriteString(controlEscaper.Replace(c))
			}

		default:
			b.WriteString(c)
		}
	}

	b.WriteByte('"')

	return b.String()
}

// fuses reports whether rest begins with a character that joins the letter
// before it into one grapheme cluster.
func fuses(rest string) bool {
	if rest == "" {
		return false
	}

	c, _, _, _ := uniseg.FirstGraphemeClusterInString("n"+rest, -1)

	return len(c) > 1
}

// unquotes reports whether quoted parses back to value.
func unquotes(quoted, value string) bool {
	got, err := Parse("V=" + quoted)

	return err == nil && len(got) == 1 && got["V"] == value
}

// Marshal serializes values as dotenv text, one KEY="value" line per key in
// sorted order. Parsing the result yields values again.
//
// A key that is not a valid key, or a value that no quoted string can
// represent (one that starts with a combining mark, for instance), is
// rejected with [pkg.ErrInvalidInput].
func Marshal(values map[string]string) ([]byte, error) {
	var buf bytes.Buffer

	for _, key := range slices.Sorted(maps.Keys(values)) {
		if !ValidKey(key) {
			return nil, pkg.ErrInvalidInput.Wrapf("key %q", key)
		}

		quoted := Quote(values[key])
		if !unquotes(quoted, values[key]) {
			return nil, pkg.ErrInvalidInput.Wrapf("value of %q", key)
		}

		buf.WriteString(key)
		buf.WriteByte('=')
		buf.WriteString(quoted)
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}
