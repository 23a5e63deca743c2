// Package pbcodec implements the Protobuf wire format: varints, ZigZag
// signed encoding, 32/64-bit fixed values, tags, and length-delimited
// records. It is deliberately independent of any .proto schema — callers
// supply field numbers and values, and the field and message layers above
// this package decide what those mean.
package pbcodec

// WireType is the low 3 bits of a Protobuf tag.
type WireType uint8

const (
	WireVarint         WireType = 0
	WireFixed64        WireType = 1
	WireLengthDelimited WireType = 2
	WireStartGroup     WireType = 3
	WireEndGroup       WireType = 4
	WireFixed32        WireType = 5
)

const fieldNumberShift = 3

// MakeTag combines a field number and wire type into the varint-encoded
// tag value that precedes every field occurrence on the wire.
func MakeTag(fieldNumber int32, wireType WireType) uint64 {
	return uint64(fieldNumber)<<fieldNumberShift | uint64(wireType)
}

// SplitTag extracts the field number and wire type from a decoded tag.
func SplitTag(tag uint64) (fieldNumber int32, wireType WireType) {
	return int32(tag >> fieldNumberShift), WireType(tag & 0x7)
}

// TagSize returns the exact byte count MakeTag's result would occupy once
// varint-encoded.
func TagSize(fieldNumber int32, wireType WireType) int {
	return SizeVarint(MakeTag(fieldNumber, wireType))
}

// ZigZagEncode32 maps a signed 32-bit value to an unsigned one so that
// small-magnitude negatives stay short when varint-encoded.
func ZigZagEncode32(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}

// ZigZagDecode32 reverses ZigZagEncode32.
func ZigZagDecode32(v uint32) int32 {
	return int32((v >> 1) ^ -(v & 1))
}

// ZigZagEncode64 maps a signed 64-bit value to an unsigned one so that
// small-magnitude negatives stay short when varint-encoded.
func ZigZagEncode64(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// ZigZagDecode64 reverses ZigZagEncode64.
func ZigZagDecode64(v uint64) int64 {
	return int64((v >> 1) ^ -(v & 1))
}
