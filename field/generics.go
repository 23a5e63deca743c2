package field

import (
	"math"

	"github.com/roswire/transcoder/pbcodec"
)

// Generated message types hold typed slices ([]int32, []*SomeMessage,
// ...); the packed/repeated helpers in repeated.go and message.go
// operate on the common
// []uint64/[]uint32/[]ProtoMessage representations. These generic
// converters bridge the two without forcing every generated accessor to
// hand-roll its own loop.

// ToUint64Slice widens a slice of any varint-representable integer type
// to the common []uint64 shape PackedVarintProtoSize and friends expect.
func ToUint64Slice[T ~int32 | ~uint32 | ~int64 | ~uint64](s []T) []uint64 {
	out := make([]uint64, len(s))
	for i, v := range s {
		out[i] = uint64(v)
	}
	return out
}

// ZigZagToUint64Slice ZigZag-encodes a slice of signed integers into the
// common []uint64 shape.
func ZigZagToUint64Slice[T ~int32 | ~int64](s []T) []uint64 {
	out := make([]uint64, len(s))
	for i, v := range s {
		out[i] = pbcodec.ZigZagEncode64(int64(v))
	}
	return out
}

// ToFixed32Slice reinterprets a slice of 32-bit integers as their raw
// bit patterns.
func ToFixed32Slice[T ~int32 | ~uint32](s []T) []uint32 {
	out := make([]uint32, len(s))
	for i, v := range s {
		out[i] = uint32(v)
	}
	return out
}

// ToFixed64Slice reinterprets a slice of 64-bit integers as their raw
// bit patterns.
func ToFixed64Slice[T ~int64 | ~uint64](s []T) []uint64 {
	out := make([]uint64, len(s))
	for i, v := range s {
		out[i] = uint64(v)
	}
	return out
}

// Float32SliceToFixed32 reinterprets a slice of float32s as their IEEE
// bit patterns, preserving NaN payloads.
func Float32SliceToFixed32(s []float32) []uint32 {
	out := make([]uint32, len(s))
	for i, v := range s {
		out[i] = math.Float32bits(v)
	}
	return out
}

// Float64SliceToFixed64 reinterprets a slice of float64s as their IEEE
// bit patterns, preserving NaN payloads.
func Float64SliceToFixed64(s []float64) []uint64 {
	out := make([]uint64, len(s))
	for i, v := range s {
		out[i] = math.Float64bits(v)
	}
	return out
}

// ToByteSlices normalizes a slice of strings or byte slices into the
// common [][]byte shape RepeatedStringProtoSize and friends expect.
func ToByteSlices[T ~string | ~[]byte](s []T) [][]byte {
	out := make([][]byte, len(s))
	for i, v := range s {
		out[i] = []byte(v)
	}
	return out
}

// ToProtoMessageSlice upcasts a slice of concrete message pointers to
// the interface slice RepeatedMessageProtoSize and friends expect — Go
// does not implicitly convert []*T to []ProtoMessage even when *T
// satisfies it.
func ToProtoMessageSlice[T ProtoMessage](s []T) []ProtoMessage {
	out := make([]ProtoMessage, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

// ToROSMessageSlice is the ROS-side counterpart of ToProtoMessageSlice.
func ToROSMessageSlice[T ROSMessage](s []T) []ROSMessage {
	out := make([]ROSMessage, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
