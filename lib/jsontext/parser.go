// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jsontext

import (
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/bureau-foundation/inspectorwire/lib/protocol"
)

// stackLimit bounds JSON nesting the same way the binary parser
// bounds container depth.
const stackLimit = 1000

// ParseJSON tokenises one JSON document from data (UTF-8) and drives
// handler with the corresponding events. Strings are delivered as
// UTF-16 code units via String16; escape sequences are decoded, with
// astral characters becoming surrogate pairs. Numbers with integer
// syntax that fit int32 become Int32 events, all others Double. On
// the first syntax error the tokeniser delivers a single HandleError
// with the byte offset and stops. Non-whitespace after the document
// is an error.
func ParseJSON(data []byte, handler protocol.Handler) {
	p := &parser{data: data, handler: handler}
	p.skipWhitespace()
	if p.pos >= len(p.data) {
		p.fail(protocol.JSONNoInput, p.pos)
		return
	}
	p.parseValue(0)
	if p.failed {
		return
	}
	p.skipWhitespace()
	if p.pos < len(p.data) {
		p.fail(protocol.JSONUnprocessedInputRemains, p.pos)
	}
}

type parser struct {
	data    []byte
	pos     int
	handler protocol.Handler
	failed  bool
}

func (p *parser) fail(kind protocol.Error, pos int) {
	p.failed = true
	p.handler.HandleError(protocol.Status{Error: kind, Pos: pos})
}

func (p *parser) skipWhitespace() {
	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) parseValue(depth int) {
	if depth > stackLimit {
		p.fail(protocol.JSONStackLimitExceeded, p.pos)
		return
	}
	if p.pos >= len(p.data) {
		p.fail(protocol.JSONValueExpected, p.pos)
		return
	}
	switch c := p.data[p.pos]; {
	case c == '{':
		p.parseObject(depth)
	case c == '[':
		p.parseArray(depth)
	case c == '"':
		if units, ok := p.parseString(); ok {
			p.handler.String16(units)
		}
	case c == 't':
		p.parseLiteral("true", func() { p.handler.Boolean(true) })
	case c == 'f':
		p.parseLiteral("false", func() { p.handler.Boolean(false) })
	case c == 'n':
		p.parseLiteral("null", func() { p.handler.Null() })
	case c == '-' || (c >= '0' && c <= '9'):
		p.parseNumber()
	default:
		p.fail(protocol.JSONValueExpected, p.pos)
	}
}

func (p *parser) parseObject(depth int) {
	p.handler.ObjectBegin()
	p.pos++
	p.skipWhitespace()
	if p.pos < len(p.data) && p.data[p.pos] == '}' {
		p.pos++
		p.handler.ObjectEnd()
		return
	}
	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) || p.data[p.pos] != '"' {
			p.fail(protocol.JSONStringLiteralExpected, p.pos)
			return
		}
		key, ok := p.parseString()
		if !ok {
			return
		}
		p.handler.String16(key)

		p.skipWhitespace()
		if p.pos >= len(p.data) || p.data[p.pos] != ':' {
			p.fail(protocol.JSONColonExpected, p.pos)
			return
		}
		p.pos++

		p.skipWhitespace()
		p.parseValue(depth + 1)
		if p.failed {
			return
		}

		p.skipWhitespace()
		if p.pos >= len(p.data) {
			p.fail(protocol.JSONCommaOrMapEndExpected, p.pos)
			return
		}
		switch p.data[p.pos] {
		case ',':
			p.pos++
		case '}':
			p.pos++
			p.handler.ObjectEnd()
			return
		default:
			p.fail(protocol.JSONCommaOrMapEndExpected, p.pos)
			return
		}
	}
}

func (p *parser) parseArray(depth int) {
	p.handler.ArrayBegin()
	p.pos++
	p.skipWhitespace()
	if p.pos < len(p.data) && p.data[p.pos] == ']' {
		p.pos++
		p.handler.ArrayEnd()
		return
	}
	for {
		p.skipWhitespace()
		p.parseValue(depth + 1)
		if p.failed {
			return
		}

		p.skipWhitespace()
		if p.pos >= len(p.data) {
			p.fail(protocol.JSONCommaOrArrayEndExpected, p.pos)
			return
		}
		switch p.data[p.pos] {
		case ',':
			p.pos++
		case ']':
			p.pos++
			p.handler.ArrayEnd()
			return
		default:
			p.fail(protocol.JSONCommaOrArrayEndExpected, p.pos)
			return
		}
	}
}

// parseString consumes a string literal, decoding escapes and
// transcoding UTF-8 to UTF-16 code units. Escaped surrogates arrive
// as written, so a \uXXXX\uXXXX pair stays a pair. Errors report the
// opening quote.
func (p *parser) parseString() ([]uint16, bool) {
	start := p.pos
	p.pos++
	units := []uint16{}
	for {
		if p.pos >= len(p.data) {
			p.fail(protocol.JSONInvalidString, start)
			return nil, false
		}
		switch c := p.data[p.pos]; {
		case c == '"':
			p.pos++
			return units, true

		case c == '\\':
			p.pos++
			if p.pos >= len(p.data) {
				p.fail(protocol.JSONInvalidString, start)
				return nil, false
			}
			switch e := p.data[p.pos]; e {
			case '"', '\\', '/':
				units = append(units, uint16(e))
				p.pos++
			case 'b':
				units = append(units, '\b')
				p.pos++
			case 'f':
				units = append(units, '\f')
				p.pos++
			case 'n':
				units = append(units, '\n')
				p.pos++
			case 'r':
				units = append(units, '\r')
				p.pos++
			case 't':
				units = append(units, '\t')
				p.pos++
			case 'u':
				p.pos++
				if p.pos+4 > len(p.data) {
					p.fail(protocol.JSONInvalidString, start)
					return nil, false
				}
				value, err := strconv.ParseUint(string(p.data[p.pos:p.pos+4]), 16, 16)
				if err != nil {
					p.fail(protocol.JSONInvalidString, start)
					return nil, false
				}
				units = append(units, uint16(value))
				p.pos += 4
			default:
				p.fail(protocol.JSONInvalidString, start)
				return nil, false
			}

		case c < 0x20:
			// Raw control characters must be escaped in JSON.
			p.fail(protocol.JSONInvalidString, start)
			return nil, false

		case c < 0x80:
			units = append(units, uint16(c))
			p.pos++

		default:
			r, size := utf8.DecodeRune(p.data[p.pos:])
			if r == utf8.RuneError && size == 1 {
				p.fail(protocol.JSONInvalidString, start)
				return nil, false
			}
			units = utf16.AppendRune(units, r)
			p.pos += size
		}
	}
}

func (p *parser) parseLiteral(literal string, emit func()) {
	if len(p.data)-p.pos < len(literal) || string(p.data[p.pos:p.pos+len(literal)]) != literal {
		p.fail(protocol.JSONInvalidToken, p.pos)
		return
	}
	p.pos += len(literal)
	emit()
}

func (p *parser) parseNumber() {
	start := p.pos
	if p.data[p.pos] == '-' {
		p.pos++
	}

	// Integer part: a single zero, or a nonzero digit followed by
	// any digits.
	switch {
	case p.pos < len(p.data) && p.data[p.pos] == '0':
		p.pos++
	case p.pos < len(p.data) && p.data[p.pos] >= '1' && p.data[p.pos] <= '9':
		for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
			p.pos++
		}
	default:
		p.fail(protocol.JSONInvalidNumber, start)
		return
	}

	integer := true
	if p.pos < len(p.data) && p.data[p.pos] == '.' {
		integer = false
		p.pos++
		if !p.consumeDigits() {
			p.fail(protocol.JSONInvalidNumber, start)
			return
		}
	}
	if p.pos < len(p.data) && (p.data[p.pos] == 'e' || p.data[p.pos] == 'E') {
		integer = false
		p.pos++
		if p.pos < len(p.data) && (p.data[p.pos] == '+' || p.data[p.pos] == '-') {
			p.pos++
		}
		if !p.consumeDigits() {
			p.fail(protocol.JSONInvalidNumber, start)
			return
		}
	}

	text := string(p.data[start:p.pos])
	if integer {
		if value, err := strconv.ParseInt(text, 10, 32); err == nil {
			p.handler.Int32(int32(value))
			return
		}
		// Integer syntax but outside int32: carried as a double.
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		p.fail(protocol.JSONInvalidNumber, start)
		return
	}
	p.handler.Double(value)
}

// consumeDigits consumes one or more digits, reporting whether at
// least one was present.
func (p *parser) consumeDigits() bool {
	if p.pos >= len(p.data) || !isDigit(p.data[p.pos]) {
		return false
	}
	for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
		p.pos++
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
