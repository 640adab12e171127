package dotenv

import (
	"errors"
	"log/slog"
	"strings"
)

// Parse parses a dotenv document into a mapping from key to value.
//
// On failure the error is a *[LocatedError] whose Offset is the codepoint
// index into text at which parsing stopped. No partial mapping is returned.
func Parse(text string, opts ...Option) (map[string]string, error) {
	o := makeOptions(opts...)

	p := &parser{scanner: newScanner(text)}

	values, err := p.parseDocument()
	if err != nil {
		var pe *ParseError
		if !errors.As(err, &pe) {
			return nil, err
		}

		located := &LocatedError{Err: pe, Offset: p.offset()}

		o.logger.Debug("parse failed", slog.Any("error", located))

		return nil, located
	}

	o.logger.Trace("parse complete",
		slog.Int("runes", p.starts[len(p.src)]),
		slog.Int("keys", len(values)))

	return values, nil
}

// parser holds the parser state: the scanner and the mapping built so far,
// which is the only scope visible to interpolation.
type parser struct {
	scanner

	values map[string]string
}

// parseDocument parses every line of the input.
func (p *parser) parseDocument() (map[string]string, error) {
	p.values = make(map[string]string)

	for {
		p.skipSpace()

		c, ok := p.peek()
		if !ok {
			return p.values, nil
		}

		switch c {
		case "\n":
			p.next()

		case "#":
			p.skipLine()

		default:
			key, value, err := p.parseKeyValue()
			if err != nil {
				return nil, err
			}

			p.values[key] = value
		}
	}
}

// parseKeyValue parses: Key Space? '=' Space? Value.
func (p *parser) parseKeyValue() (string, string, error) {
	key, err := p.parseKey()
	if err != nil {
		return "", "", err
	}

	p.skipSpace()

	if !p.is("=") {
		return "", "", &ParseError{Kind: MissingEquals}
	}

	p.next()
	p.skipSpace()

	c, ok := p.peek()

	switch {
	case !ok || c == "\n":
		return key, "", nil

	case c == `"` || c == "'":
		p.next()

		value, err := p.parseQuoted(c)

		return key, value, err

	default:
		value, err := p.parseUnquoted()

		return key, value, err
	}
}

// parseKey parses an identifier. The offending character is left
// unconsumed.
func (p *parser) parseKey() (string, error) {
	c, ok := p.peek()
	if !ok {
		return "", &ParseError{Kind: UnexpectedEnd}
	}

	if !isKeyStart(c) {
		return "", &ParseError{Kind: InvalidKeyStart, Char: c}
	}

	var key strings.Builder

	key.WriteString(p.next())

	for !p.eof() && isKeyTail(p.src[p.pos]) {
		key.WriteString(p.next())
	}

	return key.String(), nil
}

// parseVariable parses the remainder of "${KEY}" after "$" and returns the
// value already bound to KEY.
func (p *parser) parseVariable() (string, error) {
	p.next() // '{'

	key, err := p.parseKey()
	if err != nil {
		return "", err
	}

	if !p.is("}") {
		return "", &ParseError{Kind: UnterminatedVariable}
	}

	p.next()

	value, ok := p.values[key]
	if !ok {
		return "", &ParseError{Kind: UnknownVariable, Key: key}
	}

	return value, nil
}

// parseQuoted parses a value after its opening quote up to and including the
// matching closing quote. Control escapes (\n, \t, \r) are interpreted only
// inside double quotes.
func (p *parser) parseQuoted(quote string) (string, error) {
	var out strings.Builder

	control := quote == `"`

	for !p.eof() {
		c := p.next()

		switch {
		case c == `\`:
			if p.eof() {
				return "", &ParseError{Kind: UnterminatedQuote}
			}

			e := p.next()

			switch e {
			case `\`, quote, "'", "$":
				out.WriteString(e)
			case "n", "t", "r":
				if control {
					out.WriteString(controlChar(e))
				} else {
					out.WriteString(`\` + e)
				}
			default:
				return "", &ParseError{Kind: InvalidEscapeSequence}
			}

		case c == "$" && p.is("{"):
			value, err := p.parseVariable()
			if err != nil {
				return "", err
			}

			out.WriteString(value)

		case c == quote:
			return out.String(), nil

		default:
			out.WriteString(c)
		}
	}

	return "", &ParseError{Kind: UnterminatedQuote}
}

// parseUnquoted parses a bare value up to an unescaped '#', newline or end of
// input. Runs of horizontal whitespace are held back and only emitted when
// something else is collected after them, so trailing whitespace vanishes
// while interior whitespace survives.
func (p *parser) parseUnquoted() (string, error) {
	var out, space strings.Builder

	collect := func(s string) {
		out.WriteString(space.String())
		space.Reset()
		out.WriteString(s)
	}

	for !p.eof() {
		c := p.next()

		switch {
		case c == `\`:
			if p.eof() {
				// a lone trailing backslash is dropped
				return out.String(), nil
			}

			e := p.next()

			switch e {
			case `\`, "'", "$", "#":
				collect(e)
			case "n", "t", "r":
				collect(`\` + e)
			default:
				return "", &ParseError{Kind: InvalidEscapeSequence}
			}

		case c == "#":
			p.skipLine()

			return out.String(), nil

		case c == "$" && p.is("{"):
			value, err := p.parseVariable()
			if err != nil {
				return "", err
			}

			collect(value)

		case c == "\n":
			// leave the newline for the document loop
			p.pos--

			return out.String(), nil

		case isSpace(c):
			space.WriteString(c)

		default:
			collect(c)
		}
	}

	return out.String(), nil
}

func controlChar(c string) string {
	switch c {
	case "n":
		return "\n"
	case "t":
		return "\t"
	default:
		return "\r"
	}
}
