// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package transcode connects the two halves of the inspector wire
// codec into its public entry points: JSON text to binary wire bytes
// and back. Each direction is one producer driving one sink over the
// shared handler interface.
package transcode

import (
	"github.com/bureau-foundation/inspectorwire/lib/jsontext"
	"github.com/bureau-foundation/inspectorwire/lib/protocol"
)

// JSONToBinary converts one JSON document to its binary wire form.
// On failure the returned bytes are nil and the status carries the
// error kind and byte offset into jsonText.
func JSONToBinary(jsonText []byte) ([]byte, protocol.Status) {
	var out []byte
	var status protocol.Status
	jsontext.ParseJSON(jsonText, protocol.NewBinaryEncoder(&out, &status))
	if !status.OK() {
		return nil, status
	}
	return out, status
}

// BinaryToJSON converts one binary wire message to canonical JSON
// text. On failure the returned bytes are nil and the status carries
// the error kind and byte offset into wireBytes.
func BinaryToJSON(wireBytes []byte) ([]byte, protocol.Status) {
	var out []byte
	var status protocol.Status
	protocol.ParseBinary(wireBytes, jsontext.NewJSONWriter(&out, &status))
	if !status.OK() {
		return nil, status
	}
	return out, status
}
