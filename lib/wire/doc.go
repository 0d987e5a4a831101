// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire implements the CBOR item primitives (RFC 7049) used by
// the inspector wire format.
//
// The wire format is a deliberate subset of CBOR: unsigned integers
// up to 2^64-1, negative integers down to -2^63, byte strings carrying UTF-16
// code units, 7-bit text strings, IEEE-754 doubles, booleans, null,
// and indefinite-length maps and arrays. Tags, half floats,
// definite-length containers, and streamed text chunks are not part
// of the format and fail to decode.
//
// Encoders append to a caller-owned byte slice:
//
//	buf = wire.AppendUnsigned(buf, 500)
//
// Decoders read one item from the front of a byte slice and report
// how many bytes they consumed:
//
//	value, n, err := wire.DecodeUnsigned(buf)
//
// On failure the consumed count is zero and the input is untouched,
// so a caller's cursor never moves past a malformed item. Decode
// errors are discriminated by the Err* sentinels so callers can map
// them to their own error taxonomy.
package wire
