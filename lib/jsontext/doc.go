// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package jsontext is the textual half of the inspector wire codec: a
// streaming JSON tokeniser that drives a protocol.Handler, and a JSON
// writer that implements one.
//
// The tokeniser and writer are exact counterparts of the binary
// parser and encoder in lib/protocol, which is what makes the two
// bridge pipelines in lib/transcode possible: any producer can drive
// any sink.
//
// The writer's output is the codec's canonical JSON form: no
// insignificant whitespace, strings with every non-ASCII code unit as
// a lowercase \uxxxx escape, doubles in shortest round-trip notation.
// Text already in canonical form survives a JSON → binary → JSON trip
// byte for byte.
package jsontext
