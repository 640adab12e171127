package dotenv

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// scanner is a cursor over the grapheme clusters of a document, so a
// character made of several codepoints is always tested and consumed whole.
// Positions reported from a scanner are codepoint offsets into the original
// text.
type scanner struct {
	src []string
	// starts[i] is the codepoint offset of src[i]; the final entry is the
	// codepoint length of the text.
	starts []int
	pos    int
}

func newScanner(text string) scanner {
	var s scanner

	offset, state := 0, -1

	for text != "" {
		var c string

		c, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)

		// CR LF is a single cluster, but only LF ends a line.
		if c == "\r\n" {
			s.push("\r", &offset)
			c = "\n"
		}

		s.push(c, &offset)
	}

	s.starts = append(s.starts, offset)

	return s
}

func (s *scanner) push(c string, offset *int) {
	s.src = append(s.src, c)
	s.starts = append(s.starts, *offset)
	*offset += utf8.RuneCountInString(c)
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

// offset returns the codepoint offset of the current position.
func (s *scanner) offset() int { return s.starts[s.pos] }

// peek returns the current character without consuming it.
func (s *scanner) peek() (string, bool) {
	if s.eof() {
		return "", false
	}

	return s.src[s.pos], true
}

// is reports whether the current character is c.
func (s *scanner) is(c string) bool {
	p, ok := s.peek()

	return ok && p == c
}

// next consumes and returns the current character. It must not be called at
// end of input.
func (s *scanner) next() string {
	c := s.src[s.pos]
	s.pos++

	return c
}

// skipSpace consumes a run of spaces and tabs. Newlines are never horizontal
// whitespace.
func (s *scanner) skipSpace() {
	for !s.eof() && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

// skipLine consumes everything up to, but not including, the next newline.
func (s *scanner) skipLine() {
	for !s.eof() && s.src[s.pos] != "\n" {
		s.pos++
	}
}

func isSpace(c string) bool { return c == " " || c == "\t" }

// single returns the byte of a one-byte character.
func single(c string) (byte, bool) {
	if len(c) != 1 {
		return 0, false
	}

	return c[0], true
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isKeyStartByte(b byte) bool { return isASCIILetter(b) || b == '_' }

func isKeyTailByte(b byte) bool { return isKeyStartByte(b) || (b >= '0' && b <= '9') }

func isKeyStart(c string) bool {
	b, ok := single(c)

	return ok && isKeyStartByte(b)
}

func isKeyTail(c string) bool {
	b, ok := single(c)

	return ok && isKeyTailByte(b)
}

// ValidKey reports whether s is a valid key: an ASCII letter or underscore
// followed by any number of ASCII letters, digits or underscores.
func ValidKey(s string) bool {
	if s == "" || !isKeyStartByte(s[0]) {
		return false
	}

	for i := 1; i < len(s); i++ {
		if !isKeyTailByte(s[i]) {
			return false
		}
	}

	return true
}
