// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package transcode

import (
	"bytes"
	"testing"

	"github.com/bureau-foundation/inspectorwire/lib/protocol"
	"github.com/bureau-foundation/inspectorwire/lib/wire"
)

func TestJSONToBinaryDocument(t *testing.T) {
	// Exercises every value kind. The expected bytes are assembled
	// from the wire primitives so this doubles as a check that the
	// pipeline composes them the documented way: 7-bit keys, the
	// UTF-16 string for the globe character, an unsigned 1, a
	// negative 1, true, null, and an indefinite array.
	json := `{"string":"Hello, \ud83c\udf0e.","double":3.1415,"int":1,` +
		`"negative int":-1,"bool":true,"null":null,"array":[1,2,3]}`

	var want []byte
	want = append(want, wire.InitialByteIndefiniteMap)
	want = wire.AppendString8(want, []byte("string"))
	want = wire.AppendUTF16String(want, []uint16{'H', 'e', 'l', 'l', 'o', ',', ' ', 0xd83c, 0xdf0e, '.'})
	want = wire.AppendString8(want, []byte("double"))
	want = wire.AppendDouble(want, 3.1415)
	want = wire.AppendString8(want, []byte("int"))
	want = wire.AppendUnsigned(want, 1)
	want = wire.AppendString8(want, []byte("negative int"))
	want = wire.AppendNegative(want, -1)
	want = wire.AppendString8(want, []byte("bool"))
	want = append(want, wire.InitialByteTrue)
	want = wire.AppendString8(want, []byte("null"))
	want = append(want, wire.InitialByteNull)
	want = wire.AppendString8(want, []byte("array"))
	want = append(want, wire.InitialByteIndefiniteArray, 0x01, 0x02, 0x03, wire.InitialByteStop)
	want = append(want, wire.InitialByteStop)

	encoded, status := JSONToBinary([]byte(json))
	if !status.OK() {
		t.Fatalf("JSONToBinary: %v", status)
	}
	if !bytes.Equal(encoded, want) {
		t.Fatalf("JSONToBinary:\n got %x\nwant %x", encoded, want)
	}

	// And back: the decoded text must be the original document.
	decoded, status := BinaryToJSON(encoded)
	if !status.OK() {
		t.Fatalf("BinaryToJSON: %v", status)
	}
	if string(decoded) != json {
		t.Errorf("roundtrip:\n got %s\nwant %s", decoded, json)
	}
}

func TestRoundtripExamples(t *testing.T) {
	// Closing a nested container must leave the outer map consuming
	// further entries.
	examples := []string{
		`{}`,
		`{"foo":{"bar":1},"baz":2}`,
		`{"foo":[1,2,3],"baz":2}`,
		`{"a":[],"b":{}}`,
		`{"mixed":[1,-1,0.5,"s",true,null,[2],{"k":"v"}]}`,
	}
	for _, json := range examples {
		encoded, status := JSONToBinary([]byte(json))
		if !status.OK() {
			t.Errorf("JSONToBinary(%s): %v", json, status)
			continue
		}
		decoded, status := BinaryToJSON(encoded)
		if !status.OK() {
			t.Errorf("BinaryToJSON(%s): %v", json, status)
			continue
		}
		if string(decoded) != json {
			t.Errorf("roundtrip %s: got %s", json, decoded)
		}
	}
}

func TestBinaryToJSONEmptyMap(t *testing.T) {
	decoded, status := BinaryToJSON([]byte{0xbf, 0xff})
	if !status.OK() {
		t.Fatalf("BinaryToJSON: %v", status)
	}
	if string(decoded) != "{}" {
		t.Errorf("decoded %s, want {}", decoded)
	}
}

func TestBinaryToJSONRejectsJSONInput(t *testing.T) {
	// Feeding JSON text to the binary decoder is the classic framing
	// mistake; it must fail cleanly at offset zero.
	decoded, status := BinaryToJSON([]byte(`{"msg": "Hello, world."}`))
	if status.Error != protocol.InvalidStartByte || status.Pos != 0 {
		t.Errorf("status %v, want invalid start byte at 0", status)
	}
	if decoded != nil {
		t.Errorf("decoded %q, want nil", decoded)
	}
}

func TestJSONToBinaryReportsSyntaxErrors(t *testing.T) {
	encoded, status := JSONToBinary([]byte(`{"key":`))
	if status.OK() {
		t.Fatal("expected an error")
	}
	if status.Error != protocol.JSONValueExpected {
		t.Errorf("status %v, want json value expected", status)
	}
	if encoded != nil {
		t.Errorf("encoded %x, want nil", encoded)
	}
}

func BenchmarkJSONToBinary(b *testing.B) {
	json := []byte(`{"string":"Hello, \ud83c\udf0e.","double":3.1415,"int":1,` +
		`"negative int":-1,"bool":true,"null":null,"array":[1,2,3]}`)
	b.SetBytes(int64(len(json)))
	b.ReportAllocs()
	for b.Loop() {
		JSONToBinary(json)
	}
}

func BenchmarkBinaryToJSON(b *testing.B) {
	encoded, status := JSONToBinary([]byte(`{"string":"Hello, \ud83c\udf0e.","double":3.1415,"int":1,` +
		`"negative int":-1,"bool":true,"null":null,"array":[1,2,3]}`))
	if !status.OK() {
		b.Fatal(status)
	}
	b.SetBytes(int64(len(encoded)))
	b.ReportAllocs()
	for b.Loop() {
		BinaryToJSON(encoded)
	}
}
