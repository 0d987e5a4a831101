// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"errors"
	"math"

	"github.com/bureau-foundation/inspectorwire/lib/wire"
)

// stackLimit bounds the nesting depth of a binary message. A message
// nested exactly this deep parses; one level more fails with
// StackLimitExceeded. Recursion frames are small and O(1) per level,
// so the worst-case stack is proportional to this constant.
const stackLimit = 1000

// ParseBinary reads one top-level binary message from data and drives
// handler with the corresponding events. A message is exactly one
// indefinite-length map; bytes after its closing stop byte are
// ignored. On the first malformed item the parser delivers a single
// HandleError carrying the error kind and byte position, emits
// nothing further, and returns.
func ParseBinary(data []byte, handler Handler) {
	if len(data) == 0 {
		handler.HandleError(Status{Error: NoInput, Pos: 0})
		return
	}
	if data[0] != wire.InitialByteIndefiniteMap {
		handler.HandleError(Status{Error: InvalidStartByte, Pos: 0})
		return
	}
	p := &binaryParser{data: data, handler: handler}
	p.parseMap(1)
}

type binaryParser struct {
	data    []byte
	pos     int
	handler Handler
	failed  bool
}

func (p *binaryParser) fail(kind Error, pos int) {
	p.failed = true
	p.handler.HandleError(Status{Error: kind, Pos: pos})
}

// parseMap consumes an indefinite-length map. The cursor is on the
// opening 0xBF, which the caller has already validated.
func (p *binaryParser) parseMap(depth int) {
	p.handler.ObjectBegin()
	p.pos++
	for {
		if p.pos >= len(p.data) {
			p.fail(UnexpectedEOFInMap, len(p.data))
			return
		}
		if p.data[p.pos] == wire.InitialByteStop {
			p.pos++
			p.handler.ObjectEnd()
			return
		}

		// Keys must be 7-bit strings. Anything else in key
		// position, including a token that fails to decode as
		// one, is an invalid key.
		keyPos := p.pos
		key, n, err := wire.DecodeString8(p.data[p.pos:])
		if err != nil {
			p.fail(InvalidMapKey, keyPos)
			return
		}
		p.handler.String8(key)
		p.pos += n

		if p.pos >= len(p.data) {
			p.fail(UnexpectedEOFExpectedValue, len(p.data))
			return
		}
		p.parseValue(depth)
		if p.failed {
			return
		}
	}
}

// parseArray consumes an indefinite-length array. The cursor is on
// the opening 0x9F.
func (p *binaryParser) parseArray(depth int) {
	p.handler.ArrayBegin()
	p.pos++
	for {
		if p.pos >= len(p.data) {
			p.fail(UnexpectedEOFInArray, len(p.data))
			return
		}
		if p.data[p.pos] == wire.InitialByteStop {
			p.pos++
			p.handler.ArrayEnd()
			return
		}
		p.parseValue(depth)
		if p.failed {
			return
		}
	}
}

// parseValue consumes one value item. depth counts the containers
// the value sits inside; the check here (rather than in the container
// parsers) means an overdeep message fails at the first item whose
// position the depth makes unreachable, and deeper input past that
// point is never examined.
func (p *binaryParser) parseValue(depth int) {
	if depth > stackLimit {
		p.fail(StackLimitExceeded, p.pos)
		return
	}

	start := p.pos
	switch initialByte := p.data[p.pos]; initialByte {
	case wire.InitialByteIndefiniteMap:
		p.parseMap(depth + 1)
		return
	case wire.InitialByteIndefiniteArray:
		p.parseArray(depth + 1)
		return
	case wire.InitialByteTrue, wire.InitialByteFalse:
		p.pos++
		p.handler.Boolean(initialByte == wire.InitialByteTrue)
		return
	case wire.InitialByteNull:
		p.pos++
		p.handler.Null()
		return
	case wire.InitialByteDouble:
		value, n, err := wire.DecodeDouble(p.data[p.pos:])
		if err != nil {
			p.fail(InvalidDouble, start)
			return
		}
		p.pos += n
		p.handler.Double(value)
		return
	}

	switch wire.MajorType(p.data[p.pos]) {
	case wire.MajorTypeUnsigned:
		value, n, err := wire.DecodeUnsigned(p.data[p.pos:])
		if err != nil || value > math.MaxInt32 {
			p.fail(InvalidSigned, start)
			return
		}
		p.pos += n
		p.handler.Int32(int32(value))

	case wire.MajorTypeNegative:
		value, n, err := wire.DecodeNegative(p.data[p.pos:])
		if err != nil || value < math.MinInt32 {
			p.fail(InvalidSigned, start)
			return
		}
		p.pos += n
		p.handler.Int32(int32(value))

	case wire.MajorTypeByteString:
		units, n, err := wire.DecodeUTF16String(p.data[p.pos:])
		if err != nil {
			p.fail(InvalidString16, start)
			return
		}
		p.pos += n
		p.handler.String16(units)

	case wire.MajorTypeString:
		s, n, err := wire.DecodeString8(p.data[p.pos:])
		if err != nil {
			if errors.Is(err, wire.ErrNot7Bit) {
				p.fail(String8MustBe7Bit, start)
			} else {
				p.fail(InvalidString8, start)
			}
			return
		}
		p.pos += n
		p.handler.String8(s)

	default:
		// Tags, definite-length containers, streamed text
		// chunks, half floats, and unassigned simple values all
		// land here.
		p.fail(UnsupportedValue, start)
	}
}
