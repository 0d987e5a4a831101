// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dump

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bureau-foundation/inspectorwire/lib/transcode"
)

// sampleMessage builds a realistic wire message with enough
// repetition to be compressible.
func sampleMessage(t testing.TB) []byte {
	json := `{"method":"Debugger.scriptParsed","params":{"scriptId":"42",` +
		`"url":"https://example.test/app/app/app/app.js","lines":[1,1,1,1,1,1,1,1],` +
		`"source":"function app() { return app; } function app() { return app; }"}}`
	message, status := transcode.JSONToBinary([]byte(json))
	if !status.OK() {
		t.Fatalf("JSONToBinary: %v", status)
	}
	return message
}

func TestPackUnpackRoundtrip(t *testing.T) {
	message := sampleMessage(t)
	for _, tag := range []CompressionTag{CompressionNone, CompressionLZ4, CompressionZstd} {
		container, err := Pack(message, tag)
		if err != nil {
			t.Fatalf("Pack(%s): %v", tag, err)
		}
		unpacked, err := Unpack(container)
		if err != nil {
			t.Fatalf("Unpack(%s): %v", tag, err)
		}
		if !bytes.Equal(unpacked, message) {
			t.Errorf("%s: roundtrip mismatch", tag)
		}
	}
}

func TestPackFallsBackWhenIncompressible(t *testing.T) {
	// A short high-entropy message does not compress; the container
	// must record CompressionNone rather than store a grown payload.
	message := []byte{0xbf, 0x61, 'k', 0xfb, 0x3f, 0xd5, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0xff}
	container, err := Pack(message, CompressionLZ4)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if got := CompressionTag(container[4]); got != CompressionNone {
		t.Errorf("tag %s, want none", got)
	}
	unpacked, err := Unpack(container)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if !bytes.Equal(unpacked, message) {
		t.Error("roundtrip mismatch")
	}
}

func TestUnpackRejectsBadMagic(t *testing.T) {
	container, err := Pack(sampleMessage(t), CompressionNone)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	container[0] = 'X'
	if _, err := Unpack(container); !errors.Is(err, ErrNotDump) {
		t.Errorf("error %v, want ErrNotDump", err)
	}
}

func TestUnpackRejectsTruncatedContainer(t *testing.T) {
	if _, err := Unpack([]byte("IWD1")); !errors.Is(err, ErrCorrupt) {
		t.Errorf("error %v, want ErrCorrupt", err)
	}
}

func TestUnpackDetectsPayloadTampering(t *testing.T) {
	container, err := Pack(sampleMessage(t), CompressionNone)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	container[len(container)-1] ^= 0x01
	if _, err := Unpack(container); !errors.Is(err, ErrHashMismatch) {
		t.Errorf("error %v, want ErrHashMismatch", err)
	}
}

func TestUnpackRejectsSizeMismatch(t *testing.T) {
	container, err := Pack(sampleMessage(t), CompressionNone)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if _, err := Unpack(container[:len(container)-1]); !errors.Is(err, ErrCorrupt) {
		t.Errorf("error %v, want ErrCorrupt", err)
	}
}

func TestCompressionTagStrings(t *testing.T) {
	for _, tag := range []CompressionTag{CompressionNone, CompressionLZ4, CompressionZstd} {
		parsed, err := ParseCompressionTag(tag.String())
		if err != nil {
			t.Errorf("ParseCompressionTag(%s): %v", tag, err)
			continue
		}
		if parsed != tag {
			t.Errorf("ParseCompressionTag(%s) = %s", tag, parsed)
		}
	}
	if _, err := ParseCompressionTag("brotli"); err == nil {
		t.Error("ParseCompressionTag should reject unknown names")
	}
}

func TestChooseTag(t *testing.T) {
	text := bytes.Repeat([]byte("inspector message text "), 20)
	if got := ChooseTag(text); got != CompressionZstd {
		t.Errorf("ChooseTag(text) = %s, want zstd", got)
	}

	binary := make([]byte, 400)
	for i := range binary {
		binary[i] = byte(i * 7)
	}
	if got := ChooseTag(binary); got != CompressionLZ4 {
		t.Errorf("ChooseTag(binary) = %s, want lz4", got)
	}

	if got := ChooseTag(nil); got != CompressionNone {
		t.Errorf("ChooseTag(nil) = %s, want none", got)
	}
}
