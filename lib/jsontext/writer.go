// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jsontext

import (
	"strconv"

	"github.com/bureau-foundation/inspectorwire/lib/protocol"
)

// jsonWriter renders handler events as canonical JSON text. A stack
// of container frames tracks where commas and colons go: in an object
// frame string events alternate between key and value position.
type jsonWriter struct {
	out    *[]byte
	status *protocol.Status
	stack  []frame
}

type frame struct {
	object bool
	count  int
}

// NewJSONWriter returns a Handler that appends canonical JSON to
// *out. On HandleError the writer records the status and discards
// everything written so far — a partially rendered document is worse
// than none. Both out and status stay owned by the caller.
func NewJSONWriter(out *[]byte, status *protocol.Status) protocol.Handler {
	return &jsonWriter{out: out, status: status}
}

// separate appends the comma or colon the current container position
// calls for and advances the position.
func (w *jsonWriter) separate() {
	if len(w.stack) == 0 {
		return
	}
	top := &w.stack[len(w.stack)-1]
	switch {
	case top.object && top.count%2 == 1:
		*w.out = append(*w.out, ':')
	case top.count > 0:
		*w.out = append(*w.out, ',')
	}
	top.count++
}

func (w *jsonWriter) ObjectBegin() {
	if !w.status.OK() {
		return
	}
	w.separate()
	*w.out = append(*w.out, '{')
	w.stack = append(w.stack, frame{object: true})
}

func (w *jsonWriter) ObjectEnd() {
	if !w.status.OK() {
		return
	}
	*w.out = append(*w.out, '}')
	w.stack = w.stack[:len(w.stack)-1]
}

func (w *jsonWriter) ArrayBegin() {
	if !w.status.OK() {
		return
	}
	w.separate()
	*w.out = append(*w.out, '[')
	w.stack = append(w.stack, frame{})
}

func (w *jsonWriter) ArrayEnd() {
	if !w.status.OK() {
		return
	}
	*w.out = append(*w.out, ']')
	w.stack = w.stack[:len(w.stack)-1]
}

func (w *jsonWriter) String16(units []uint16) {
	if !w.status.OK() {
		return
	}
	w.separate()
	*w.out = append(*w.out, '"')
	for _, unit := range units {
		*w.out = appendEscaped(*w.out, unit)
	}
	*w.out = append(*w.out, '"')
}

func (w *jsonWriter) String8(bytes []byte) {
	if !w.status.OK() {
		return
	}
	w.separate()
	*w.out = append(*w.out, '"')
	for _, b := range bytes {
		*w.out = appendEscaped(*w.out, uint16(b))
	}
	*w.out = append(*w.out, '"')
}

func (w *jsonWriter) Double(value float64) {
	if !w.status.OK() {
		return
	}
	w.separate()
	*w.out = strconv.AppendFloat(*w.out, value, 'g', -1, 64)
}

func (w *jsonWriter) Int32(value int32) {
	if !w.status.OK() {
		return
	}
	w.separate()
	*w.out = strconv.AppendInt(*w.out, int64(value), 10)
}

func (w *jsonWriter) Boolean(value bool) {
	if !w.status.OK() {
		return
	}
	w.separate()
	if value {
		*w.out = append(*w.out, "true"...)
	} else {
		*w.out = append(*w.out, "false"...)
	}
}

func (w *jsonWriter) Null() {
	if !w.status.OK() {
		return
	}
	w.separate()
	*w.out = append(*w.out, "null"...)
}

func (w *jsonWriter) HandleError(status protocol.Status) {
	if !w.status.OK() {
		return
	}
	*w.status = status
	*w.out = (*w.out)[:0]
}

const hexDigits = "0123456789abcdef"

// appendEscaped appends one UTF-16 code unit of a string body.
// Printable ASCII passes through; the JSON short escapes cover the
// usual control characters; everything else, including every unit at
// or above 0x80, becomes a lowercase \uxxxx escape. Surrogate pairs
// therefore render as two consecutive escapes.
func appendEscaped(dst []byte, unit uint16) []byte {
	switch unit {
	case '"':
		return append(dst, '\\', '"')
	case '\\':
		return append(dst, '\\', '\\')
	case '\b':
		return append(dst, '\\', 'b')
	case '\f':
		return append(dst, '\\', 'f')
	case '\n':
		return append(dst, '\\', 'n')
	case '\r':
		return append(dst, '\\', 'r')
	case '\t':
		return append(dst, '\\', 't')
	}
	if unit >= 0x20 && unit < 0x7f {
		return append(dst, byte(unit))
	}
	return append(dst, '\\', 'u',
		hexDigits[unit>>12&0xf],
		hexDigits[unit>>8&0xf],
		hexDigits[unit>>4&0xf],
		hexDigits[unit&0xf])
}
