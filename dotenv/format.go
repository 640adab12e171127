package dotenv

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
)

const (
	// lineNumberWidth is the minimum width of a rendered line number.
	lineNumberWidth = 4
	// contextLines is the number of rendered lines kept in a diagnostic.
	contextLines = 4
)

// formatState tracks where the scan is relative to the error location.
type formatState int

const (
	// before the line containing the error
	searching formatState = iota
	// on the error line, caret column known, line not yet complete
	onErrorLine
	// caret emitted, collecting one line of trailing context
	caretAdded
	// trailing context emitted
	done
)

// FormatError renders message as a diagnostic for the error at offset, a
// codepoint index into source.
//
// Each source line is prefixed with its right-aligned line number and a
// caret line is inserted below the line holding the error. Only the last
// four rendered lines are kept, followed by a blank line and
// "Error on line N: message".
func FormatError(source string, offset int, message string) string {
	f := formatter{src: []rune(source), offset: offset, line: 1, errorLine: 1}

	return f.format(message)
}

type formatter struct {
	src       []rune
	lines     []string
	offset    int
	lineStart int
	line      int
	column    int
	errorLine int
	state     formatState
}

func (f *formatter) format(message string) string {
	for i, r := range f.src {
		if f.state == done {
			break
		}

		f.scan(i, r)
	}

	f.finish()

	lines := f.lines
	if len(lines) > contextLines {
		lines = lines[len(lines)-contextLines:]
	}

	return strings.Join(lines, "") +
		"\nError on line " + strconv.Itoa(f.errorLine) + ": " + message
}

// scan advances the state machine over the rune r at index i.
func (f *formatter) scan(i int, r rune) {
	switch f.state {
	case searching:
		switch {
		case r == '\n':
			f.emitLine(i + 1)

			if i == f.offset {
				f.emitCaret(f.columnOf(i))
				f.errorLine = f.line
				f.state = caretAdded
			}

			f.nextLine(i + 1)

		case i == f.offset:
			f.column = f.columnOf(i)
			f.state = onErrorLine
		}

	case onErrorLine:
		if r == '\n' {
			f.emitLine(i + 1)
			f.emitCaret(f.column)
			f.errorLine = f.line
			f.state = caretAdded
			f.nextLine(i + 1)
		}

	case caretAdded:
		if r == '\n' {
			f.emitLine(i + 1)
			f.state = done
		}
	}
}

// finish handles the final line when the input does not end the scan in
// the done state.
func (f *formatter) finish() {
	end := len(f.src)

	switch f.state {
	case searching:
		f.emitTail()

		if f.offset >= f.lineStart && f.offset <= end {
			f.emitCaret(f.columnOf(f.offset))
			f.errorLine = f.line
		}

	case onErrorLine:
		f.emitTail()
		f.emitCaret(f.column)
		f.errorLine = f.line

	case caretAdded:
		f.emitTail()
	}
}

// emitLine renders the current line through end (exclusive), which includes
// its newline.
func (f *formatter) emitLine(end int) {
	f.lines = append(f.lines, lineNumber(f.line)+string(f.src[f.lineStart:end]))
}

// emitTail renders the remainder of the input as the final line.
func (f *formatter) emitTail() {
	f.lines = append(f.lines, lineNumber(f.line)+string(f.src[f.lineStart:])+"\n")
}

func (f *formatter) emitCaret(column int) {
	f.lines = append(f.lines,
		strings.Repeat(" ", column+lineNumberWidth+2)+"^\n")
}

func (f *formatter) nextLine(start int) {
	f.lineStart = start
	f.line++
}

// columnOf counts the characters between the start of the current line and
// index i. Grapheme clusters count once, so an emoji sequence made of
// several codepoints moves the caret by one column.
func (f *formatter) columnOf(i int) int {
	return uniseg.GraphemeClusterCount(string(f.src[f.lineStart:i]))
}

func lineNumber(n int) string {
	return fmt.Sprintf("%*d: ", lineNumberWidth, n)
}
