// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dump implements the container format for captured inspector
// messages. A dump wraps one binary wire message with compression and
// an integrity hash so session captures can be stored and shipped
// around without silently corrupting.
//
// Container layout:
//
//	offset  size  field
//	0       4     magic "IWD1"
//	4       1     compression tag
//	5       4     uncompressed payload size, big-endian
//	9       32    BLAKE3 hash of the uncompressed payload
//	41      —     payload, compressed per the tag
package dump

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/zeebo/blake3"
)

// magic identifies a dump container. The trailing digit is the format
// version.
var magic = []byte("IWD1")

const headerSize = 4 + 1 + 4 + 32

// CompressionTag identifies the compression algorithm of a dump
// payload. Tags are stored in the container header — changing a value
// breaks every existing dump file.
type CompressionTag uint8

const (
	// CompressionNone stores the payload uncompressed. Chosen
	// automatically when compression would not shrink the payload.
	CompressionNone CompressionTag = 0

	// CompressionLZ4 is LZ4 block compression: fast, modest ratio.
	// The default for message payloads of unknown shape.
	CompressionLZ4 CompressionTag = 1

	// CompressionZstd is zstd at the default level. Better ratios
	// on text-heavy payloads (inspector messages carrying source
	// text or long string values).
	CompressionZstd CompressionTag = 2
)

// String returns the human-readable name of a compression tag.
func (tag CompressionTag) String() string {
	switch tag {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(tag))
	}
}

// ParseCompressionTag parses a compression tag from its string
// representation.
func ParseCompressionTag(name string) (CompressionTag, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression tag: %q", name)
	}
}

// Unpack failure classes. Corruption of the container structure and
// an integrity mismatch of an intact container are distinct: the
// first means the file is not a dump, the second means the payload
// was altered.
var (
	ErrNotDump      = errors.New("dump: bad magic")
	ErrCorrupt      = errors.New("dump: container corrupt")
	ErrHashMismatch = errors.New("dump: payload hash mismatch")
)

// zstdEncoder and zstdDecoder are reused across calls; both are safe
// for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("dump: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("dump: zstd decoder initialization failed: " + err.Error())
	}
}

// Pack wraps message in a dump container compressed with the given
// tag. When the requested compression does not shrink the message,
// the container falls back to CompressionNone.
func Pack(message []byte, tag CompressionTag) ([]byte, error) {
	if uint64(len(message)) > math.MaxUint32 {
		return nil, fmt.Errorf("dump: message of %d bytes exceeds container limit", len(message))
	}

	payload := message
	switch tag {
	case CompressionNone:

	case CompressionLZ4:
		compressed, ok := compressLZ4(message)
		if !ok {
			tag = CompressionNone
		} else {
			payload = compressed
		}

	case CompressionZstd:
		compressed := zstdEncoder.EncodeAll(message, nil)
		if len(compressed) >= len(message) {
			tag = CompressionNone
		} else {
			payload = compressed
		}

	default:
		return nil, fmt.Errorf("dump: unsupported compression tag: %d", tag)
	}

	hash := blake3.Sum256(message)

	out := make([]byte, 0, headerSize+len(payload))
	out = append(out, magic...)
	out = append(out, byte(tag))
	out = binary.BigEndian.AppendUint32(out, uint32(len(message)))
	out = append(out, hash[:]...)
	return append(out, payload...), nil
}

// Unpack extracts the wire message from a dump container, verifying
// the magic, the declared size, and the payload hash.
func Unpack(container []byte) ([]byte, error) {
	if len(container) < headerSize {
		return nil, ErrCorrupt
	}
	if !bytes.Equal(container[:4], magic) {
		return nil, ErrNotDump
	}
	tag := CompressionTag(container[4])
	size := int(binary.BigEndian.Uint32(container[5:9]))
	var wantHash [32]byte
	copy(wantHash[:], container[9:headerSize])
	payload := container[headerSize:]

	var message []byte
	switch tag {
	case CompressionNone:
		if len(payload) != size {
			return nil, ErrCorrupt
		}
		message = payload

	case CompressionLZ4:
		message = make([]byte, size)
		read, err := lz4.UncompressBlock(payload, message)
		if err != nil || read != size {
			return nil, ErrCorrupt
		}

	case CompressionZstd:
		decompressed, err := zstdDecoder.DecodeAll(payload, make([]byte, 0, size))
		if err != nil || len(decompressed) != size {
			return nil, ErrCorrupt
		}
		message = decompressed

	default:
		return nil, ErrCorrupt
	}

	if blake3.Sum256(message) != wantHash {
		return nil, ErrHashMismatch
	}
	return message, nil
}

// ChooseTag picks a compression tag for a payload: zstd for
// text-heavy payloads, lz4 otherwise. Text-heavy means most bytes are
// printable ASCII, which is where zstd's ratio advantage pays for its
// CPU cost.
func ChooseTag(payload []byte) CompressionTag {
	if len(payload) == 0 {
		return CompressionNone
	}
	printable := 0
	for _, b := range payload {
		if b >= 0x20 && b < 0x7f {
			printable++
		}
	}
	if printable*4 >= len(payload)*3 {
		return CompressionZstd
	}
	return CompressionLZ4
}

// compressLZ4 block-compresses data, reporting false when LZ4
// determines the data is incompressible or the result would not be
// smaller.
func compressLZ4(data []byte) ([]byte, bool) {
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil || written == 0 || written >= len(data) {
		return nil, false
	}
	return destination[:written], true
}
