// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

// Handler receives the streaming events of one inspector message.
// Producers must pair every ObjectBegin/ArrayBegin with its End, must
// deliver exactly one value event between a map key and the next key,
// and must stop after calling HandleError. Consumers must accept
// HandleError at any point in the stream.
//
// In map state, keys arrive through String8 or String16 like any
// other string; consumers track key/value alternation themselves.
//
// Slices passed to String16 and String8 are only valid for the
// duration of the call.
type Handler interface {
	ObjectBegin()
	ObjectEnd()
	ArrayBegin()
	ArrayEnd()

	// String16 delivers a string as UTF-16 code units.
	String16(units []uint16)

	// String8 delivers a string known to be 7-bit: every byte has
	// the high bit clear.
	String8(bytes []byte)

	Double(value float64)
	Int32(value int32)
	Boolean(value bool)
	Null()

	// HandleError is terminal; no further events follow it.
	HandleError(status Status)
}
