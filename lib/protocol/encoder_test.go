// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"bytes"
	"testing"
)

func TestBinaryEncoderStructural(t *testing.T) {
	var out []byte
	var status Status
	encoder := NewBinaryEncoder(&out, &status)

	encoder.ObjectBegin()
	encoder.String16([]uint16{'a'})
	encoder.ArrayBegin()
	encoder.Int32(1)
	encoder.Boolean(true)
	encoder.Boolean(false)
	encoder.Null()
	encoder.ArrayEnd()
	encoder.ObjectEnd()

	want := []byte{0xbf, 0x61, 'a', 0x9f, 0x01, 0xf5, 0xf4, 0xf6, 0xff, 0xff}
	if !status.OK() {
		t.Fatalf("status %v, want OK", status)
	}
	if !bytes.Equal(out, want) {
		t.Errorf("encoded %x, want %x", out, want)
	}
}

func TestBinaryEncoderSevenBitStrings(t *testing.T) {
	// A UTF-16 string whose units all fit 7 bits goes on the wire in
	// the compact text form: "foo" is just the bytes f-o-o.
	var out []byte
	var status Status
	encoder := NewBinaryEncoder(&out, &status)

	encoder.String16([]uint16{'f', 'o', 'o'})

	want := []byte{3<<5 | 3, 'f', 'o', 'o'}
	if !status.OK() {
		t.Fatalf("status %v, want OK", status)
	}
	if !bytes.Equal(out, want) {
		t.Errorf("encoded %x, want %x", out, want)
	}
}

func TestBinaryEncoderWideStrings(t *testing.T) {
	// One unit at or above 0x80 forces the UTF-16 byte-string form.
	var out []byte
	var status Status
	encoder := NewBinaryEncoder(&out, &status)

	encoder.String16([]uint16{'f', 0x80})

	want := []byte{2<<5 | 4, 'f', 0, 0x80, 0}
	if !bytes.Equal(out, want) {
		t.Errorf("encoded %x, want %x", out, want)
	}
}

func TestBinaryEncoderInt32(t *testing.T) {
	cases := []struct {
		value int32
		want  []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{23, []byte{0x17}},
		{500, []byte{0x19, 0x01, 0xf4}},
		{-1, []byte{0x20}},
		{-24, []byte{0x37}},
		{-2147483648, []byte{0x3a, 0x7f, 0xff, 0xff, 0xff}},
		{2147483647, []byte{0x1a, 0x7f, 0xff, 0xff, 0xff}},
	}
	for _, c := range cases {
		var out []byte
		var status Status
		NewBinaryEncoder(&out, &status).Int32(c.value)
		if !bytes.Equal(out, c.want) {
			t.Errorf("Int32(%d) = %x, want %x", c.value, out, c.want)
		}
	}
}

func TestBinaryEncoderDouble(t *testing.T) {
	var out []byte
	var status Status
	NewBinaryEncoder(&out, &status).Double(1.0 / 3)

	want := []byte{0xfb, 0x3f, 0xd5, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55}
	if !bytes.Equal(out, want) {
		t.Errorf("Double(1/3) = %x, want %x", out, want)
	}
}

func TestBinaryEncoderStickyError(t *testing.T) {
	var out []byte
	var status Status
	encoder := NewBinaryEncoder(&out, &status)

	encoder.ObjectBegin()
	encoder.HandleError(Status{Error: InvalidMapKey, Pos: 7})
	encoder.String8([]byte("ignored"))
	encoder.Int32(42)
	encoder.ObjectEnd()

	if status.Error != InvalidMapKey || status.Pos != 7 {
		t.Errorf("status %v, want invalid map key at 7", status)
	}
	if !bytes.Equal(out, []byte{0xbf}) {
		t.Errorf("events after error modified output: %x", out)
	}

	// A second error must not overwrite the first.
	encoder.HandleError(Status{Error: NoInput, Pos: 0})
	if status.Error != InvalidMapKey || status.Pos != 7 {
		t.Errorf("second HandleError overwrote status: %v", status)
	}
}
