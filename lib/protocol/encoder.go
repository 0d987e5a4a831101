// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"github.com/bureau-foundation/inspectorwire/lib/wire"
)

// binaryEncoder appends the wire encoding of each event to a
// caller-owned buffer. It keeps no container stack: the driving
// producer is responsible for balanced Begin/End pairs.
type binaryEncoder struct {
	out    *[]byte
	status *Status
}

// NewBinaryEncoder returns a Handler that appends the binary wire
// form of every event to *out. Both out and status stay owned by the
// caller; once status is non-OK (via HandleError) all further events
// are ignored.
func NewBinaryEncoder(out *[]byte, status *Status) Handler {
	return &binaryEncoder{out: out, status: status}
}

func (e *binaryEncoder) ObjectBegin() {
	if !e.status.OK() {
		return
	}
	*e.out = append(*e.out, wire.InitialByteIndefiniteMap)
}

func (e *binaryEncoder) ObjectEnd() {
	if !e.status.OK() {
		return
	}
	*e.out = append(*e.out, wire.InitialByteStop)
}

func (e *binaryEncoder) ArrayBegin() {
	if !e.status.OK() {
		return
	}
	*e.out = append(*e.out, wire.InitialByteIndefiniteArray)
}

func (e *binaryEncoder) ArrayEnd() {
	if !e.status.OK() {
		return
	}
	*e.out = append(*e.out, wire.InitialByteStop)
}

// String16 emits the UTF-16 byte-string form, except when every unit
// fits in 7 bits: those strings go on the wire in the compact text
// form, one byte per character. This is what makes JSON-sourced ASCII
// strings (and in particular map keys) decodable as 7-bit strings.
func (e *binaryEncoder) String16(units []uint16) {
	if !e.status.OK() {
		return
	}
	for _, unit := range units {
		if unit >= 0x80 {
			*e.out = wire.AppendUTF16String(*e.out, units)
			return
		}
	}
	narrow := make([]byte, len(units))
	for i, unit := range units {
		narrow[i] = byte(unit)
	}
	*e.out = wire.AppendString8(*e.out, narrow)
}

func (e *binaryEncoder) String8(bytes []byte) {
	if !e.status.OK() {
		return
	}
	*e.out = wire.AppendString8(*e.out, bytes)
}

func (e *binaryEncoder) Double(value float64) {
	if !e.status.OK() {
		return
	}
	*e.out = wire.AppendDouble(*e.out, value)
}

func (e *binaryEncoder) Int32(value int32) {
	if !e.status.OK() {
		return
	}
	if value >= 0 {
		*e.out = wire.AppendUnsigned(*e.out, uint64(value))
	} else {
		*e.out = wire.AppendNegative(*e.out, int64(value))
	}
}

func (e *binaryEncoder) Boolean(value bool) {
	if !e.status.OK() {
		return
	}
	if value {
		*e.out = append(*e.out, wire.InitialByteTrue)
	} else {
		*e.out = append(*e.out, wire.InitialByteFalse)
	}
}

func (e *binaryEncoder) Null() {
	if !e.status.OK() {
		return
	}
	*e.out = append(*e.out, wire.InitialByteNull)
}

func (e *binaryEncoder) HandleError(status Status) {
	if e.status.OK() {
		*e.status = status
	}
}
