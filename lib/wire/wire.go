// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"errors"
	"math"
)

// Major types occupy the high three bits of an item's initial byte
// (RFC 7049 §2.1). Only the types below appear in the wire subset.
const (
	MajorTypeUnsigned   byte = 0 // non-negative integers
	MajorTypeNegative   byte = 1 // negative integers
	MajorTypeByteString byte = 2 // UTF-16 code units, little-endian
	MajorTypeString     byte = 3 // 7-bit text
	MajorTypeTag        byte = 6 // not part of the format
	MajorTypeSimple     byte = 7 // booleans, null, doubles
)

// Initial bytes with fixed values (RFC 7049 §2.2 and §2.3).
const (
	InitialByteIndefiniteArray byte = 0x9f // array with indefinite length
	InitialByteIndefiniteMap   byte = 0xbf // map with indefinite length
	InitialByteFalse           byte = 0xf4 // simple value 20
	InitialByteTrue            byte = 0xf5 // simple value 21
	InitialByteNull            byte = 0xf6 // simple value 22
	InitialByteDouble          byte = 0xfb // additional info 27: 8-byte float
	InitialByteStop            byte = 0xff // closes the innermost indefinite container
)

// Additional-info values selecting a multi-byte payload. Values 0..23
// are immediate; 28..31 are reserved and fail to decode.
const (
	maxImmediate        = 23
	additionalInfo8Bit  = 24
	additionalInfo16Bit = 25
	additionalInfo32Bit = 26
	additionalInfo64Bit = 27
)

// Decode failure causes. Decoders wrap nothing else; callers
// discriminate with errors.Is.
var (
	ErrTruncated      = errors.New("wire: item truncated")
	ErrMajorType      = errors.New("wire: unexpected major type")
	ErrAdditionalInfo = errors.New("wire: unrecognized additional info")
	ErrOddLength      = errors.New("wire: utf-16 payload length not divisible by 2")
	ErrNot7Bit        = errors.New("wire: string byte outside 7-bit range")
	ErrOutOfRange     = errors.New("wire: integer magnitude exceeds int64 range")
)

// MajorType extracts the major type from an item's initial byte.
func MajorType(initialByte byte) byte {
	return initialByte >> 5
}

// appendItemHead appends an initial byte for the given major type with
// value (an item value for integers, a payload length for strings)
// packed into the additional-info field, using the smallest of the
// five integer forms. Multi-byte forms are big-endian.
func appendItemHead(dst []byte, majorType byte, value uint64) []byte {
	head := majorType << 5
	switch {
	case value <= maxImmediate:
		return append(dst, head|byte(value))
	case value <= math.MaxUint8:
		return append(dst, head|additionalInfo8Bit, byte(value))
	case value <= math.MaxUint16:
		return binary.BigEndian.AppendUint16(append(dst, head|additionalInfo16Bit), uint16(value))
	case value <= math.MaxUint32:
		return binary.BigEndian.AppendUint32(append(dst, head|additionalInfo32Bit), uint32(value))
	default:
		return binary.BigEndian.AppendUint64(append(dst, head|additionalInfo64Bit), value)
	}
}

// decodeItemHead decodes an initial byte of the given major type and
// returns the value carried in its additional-info field plus the
// number of header bytes consumed.
func decodeItemHead(data []byte, majorType byte) (uint64, int, error) {
	if len(data) == 0 {
		return 0, 0, ErrTruncated
	}
	if MajorType(data[0]) != majorType {
		return 0, 0, ErrMajorType
	}
	switch info := data[0] & 0x1f; {
	case info <= maxImmediate:
		return uint64(info), 1, nil
	case info == additionalInfo8Bit:
		if len(data) < 2 {
			return 0, 0, ErrTruncated
		}
		return uint64(data[1]), 2, nil
	case info == additionalInfo16Bit:
		if len(data) < 3 {
			return 0, 0, ErrTruncated
		}
		return uint64(binary.BigEndian.Uint16(data[1:3])), 3, nil
	case info == additionalInfo32Bit:
		if len(data) < 5 {
			return 0, 0, ErrTruncated
		}
		return uint64(binary.BigEndian.Uint32(data[1:5])), 5, nil
	case info == additionalInfo64Bit:
		if len(data) < 9 {
			return 0, 0, ErrTruncated
		}
		return binary.BigEndian.Uint64(data[1:9]), 9, nil
	default:
		return 0, 0, ErrAdditionalInfo
	}
}

// AppendUnsigned appends the major type 0 encoding of value to dst.
func AppendUnsigned(dst []byte, value uint64) []byte {
	return appendItemHead(dst, MajorTypeUnsigned, value)
}

// DecodeUnsigned decodes a major type 0 item from the front of data.
func DecodeUnsigned(data []byte) (uint64, int, error) {
	return decodeItemHead(data, MajorTypeUnsigned)
}

// AppendNegative appends the major type 1 encoding of value, which
// must be negative. The wire carries the magnitude -1-value; computing
// it as ^value in unsigned arithmetic round-trips math.MinInt64
// without overflow.
func AppendNegative(dst []byte, value int64) []byte {
	return appendItemHead(dst, MajorTypeNegative, ^uint64(value))
}

// DecodeNegative decodes a major type 1 item from the front of data.
// Magnitudes beyond the int64 range fail with ErrOutOfRange.
func DecodeNegative(data []byte) (int64, int, error) {
	magnitude, n, err := decodeItemHead(data, MajorTypeNegative)
	if err != nil {
		return 0, 0, err
	}
	if magnitude > math.MaxInt64 {
		return 0, 0, ErrOutOfRange
	}
	return -1 - int64(magnitude), n, nil
}

// AppendUTF16String appends units as a major type 2 byte string of
// length 2*len(units), each code unit little-endian.
func AppendUTF16String(dst []byte, units []uint16) []byte {
	dst = appendItemHead(dst, MajorTypeByteString, uint64(len(units))*2)
	for _, unit := range units {
		dst = append(dst, byte(unit), byte(unit>>8))
	}
	return dst
}

// DecodeUTF16String decodes a major type 2 item from the front of
// data into UTF-16 code units. Odd payload lengths fail with
// ErrOddLength.
func DecodeUTF16String(data []byte) ([]uint16, int, error) {
	length, n, err := decodeItemHead(data, MajorTypeByteString)
	if err != nil {
		return nil, 0, err
	}
	if length%2 != 0 {
		return nil, 0, ErrOddLength
	}
	if length > uint64(len(data)-n) {
		return nil, 0, ErrTruncated
	}
	payload := data[n : n+int(length)]
	units := make([]uint16, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		units = append(units, uint16(payload[i])|uint16(payload[i+1])<<8)
	}
	return units, n + len(payload), nil
}

// AppendString8 appends s as a major type 3 text string. Producers
// guarantee every byte of s has the high bit clear; only decode
// validates.
func AppendString8(dst []byte, s []byte) []byte {
	dst = appendItemHead(dst, MajorTypeString, uint64(len(s)))
	return append(dst, s...)
}

// DecodeString8 decodes a major type 3 item from the front of data.
// The returned slice aliases data; callers that retain it past the
// input's lifetime must copy. A payload byte with the high bit set
// fails with ErrNot7Bit.
func DecodeString8(data []byte) ([]byte, int, error) {
	length, n, err := decodeItemHead(data, MajorTypeString)
	if err != nil {
		return nil, 0, err
	}
	if length > uint64(len(data)-n) {
		return nil, 0, ErrTruncated
	}
	payload := data[n : n+int(length)]
	for _, b := range payload {
		if b >= 0x80 {
			return nil, 0, ErrNot7Bit
		}
	}
	return payload, n + len(payload), nil
}

// AppendDouble appends value as the initial byte 0xFB followed by the
// 8-byte big-endian IEEE-754 representation.
func AppendDouble(dst []byte, value float64) []byte {
	return binary.BigEndian.AppendUint64(append(dst, InitialByteDouble), math.Float64bits(value))
}

// DecodeDouble decodes a double item from the front of data. NaN
// payloads decode to a NaN; every other value is bit-exact.
func DecodeDouble(data []byte) (float64, int, error) {
	if len(data) == 0 {
		return 0, 0, ErrTruncated
	}
	if data[0] != InitialByteDouble {
		return 0, 0, ErrMajorType
	}
	if len(data) < 9 {
		return 0, 0, ErrTruncated
	}
	return math.Float64frombits(binary.BigEndian.Uint64(data[1:9])), 9, nil
}
