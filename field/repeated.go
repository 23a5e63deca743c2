package field

import (
	"github.com/roswire/transcoder/pbcodec"
	"github.com/roswire/transcoder/roscodec"
)

// Packed repeated primitives: on the wire a decoder accepts both
// packed and unpacked encodings for any repeated primitive field
// regardless of declared packing. On the write side the varint kinds
// have both a packed and an unpacked writer, so the declared packing is
// produced; the fixed-width kinds have only packed writers, so they are
// always written packed, whatever the declared packing. These helpers
// operate on []uint64/[]uint32 in
// the plain-varint and ZigZag interpretations already established by
// scalar.go — generated code converts its typed slice (e.g. []int32)
// into the common representation at the call site.

// PackedVarintProtoSize returns the size of a packed length-delimited
// run of unsigned varints, or 0 for an empty slice.
func PackedVarintProtoSize(fieldNumber int32, v []uint64) int {
	if len(v) == 0 {
		return 0
	}
	body := 0
	for _, e := range v {
		body += pbcodec.SizeVarint(e)
	}
	return pbcodec.TagSize(fieldNumber, pbcodec.WireLengthDelimited) + pbcodec.SizeVarint(uint64(body)) + body
}

// WritePackedVarintProto emits one length-delimited run containing every
// element's varint, in order.
func WritePackedVarintProto(w *pbcodec.Writer, fieldNumber int32, v []uint64) {
	if len(v) == 0 {
		return
	}
	body := 0
	for _, e := range v {
		body += pbcodec.SizeVarint(e)
	}
	w.LengthDelimitedHeader(fieldNumber, body)
	for _, e := range v {
		w.RawVarint(e)
	}
}

// UnpackedVarintProtoSize returns the size of a run of individually
// tagged varints, one per element.
func UnpackedVarintProtoSize(fieldNumber int32, v []uint64) int {
	size := 0
	for _, e := range v {
		size += VarintProtoSize(fieldNumber, true, e)
	}
	return size
}

// WriteUnpackedVarintProto emits one tag+value pair per element.
func WriteUnpackedVarintProto(w *pbcodec.Writer, fieldNumber int32, v []uint64) {
	for _, e := range v {
		w.VarintField(fieldNumber, e)
	}
}

// ParsePackedVarintProto decodes every varint in a length-delimited run,
// appending each to dst. Called when the wire type on the matched tag
// was length-delimited.
func ParsePackedVarintProto(r *pbcodec.Reader, dst []uint64) ([]uint64, error) {
	body, err := r.LengthDelimited()
	if err != nil {
		return dst, err
	}
	sub := pbcodec.NewReader(body)
	for !sub.Eof() {
		v, err := sub.Varint()
		if err != nil {
			return dst, err
		}
		dst = append(dst, v)
	}
	return dst, nil
}

// ParseUnpackedVarintElementProto decodes a single varint element. Called
// once per tag occurrence when the wire type on the matched tag was
// varint rather than length-delimited — the aggregator dispatches to
// this or ParsePackedVarintProto purely based on the wire type actually
// observed, not the schema's declared packing.
func ParseUnpackedVarintElementProto(r *pbcodec.Reader) (uint64, error) {
	return r.Varint()
}

// Fixed-width repeated fields (fixed32/sfixed32/float, fixed64/sfixed64/
// double) follow the same packed/unpacked shape as varints but with a
// constant per-element size.

func packedFixedProtoSize(fieldNumber int32, count, elemSize int) int {
	if count == 0 {
		return 0
	}
	body := count * elemSize
	return pbcodec.TagSize(fieldNumber, pbcodec.WireLengthDelimited) + pbcodec.SizeVarint(uint64(body)) + body
}

// PackedFixed32ProtoSize returns the size of a packed run of n fixed32
// elements.
func PackedFixed32ProtoSize(fieldNumber int32, n int) int { return packedFixedProtoSize(fieldNumber, n, 4) }

// PackedFixed64ProtoSize returns the size of a packed run of n fixed64
// elements.
func PackedFixed64ProtoSize(fieldNumber int32, n int) int { return packedFixedProtoSize(fieldNumber, n, 8) }

// WritePackedFixed32Proto emits a length-delimited run of raw fixed32
// values.
func WritePackedFixed32Proto(w *pbcodec.Writer, fieldNumber int32, v []uint32) {
	if len(v) == 0 {
		return
	}
	w.LengthDelimitedHeader(fieldNumber, len(v)*4)
	for _, e := range v {
		w.RawFixed32(e)
	}
}

// WritePackedFixed64Proto emits a length-delimited run of raw fixed64
// values.
func WritePackedFixed64Proto(w *pbcodec.Writer, fieldNumber int32, v []uint64) {
	if len(v) == 0 {
		return
	}
	w.LengthDelimitedHeader(fieldNumber, len(v)*8)
	for _, e := range v {
		w.RawFixed64(e)
	}
}

// ParsePackedFixed32Proto decodes every fixed32 in a length-delimited
// run.
func ParsePackedFixed32Proto(r *pbcodec.Reader, dst []uint32) ([]uint32, error) {
	body, err := r.LengthDelimited()
	if err != nil {
		return dst, err
	}
	sub := pbcodec.NewReader(body)
	for !sub.Eof() {
		v, err := sub.Fixed32()
		if err != nil {
			return dst, err
		}
		dst = append(dst, v)
	}
	return dst, nil
}

// ParsePackedFixed64Proto decodes every fixed64 in a length-delimited
// run.
func ParsePackedFixed64Proto(r *pbcodec.Reader, dst []uint64) ([]uint64, error) {
	body, err := r.LengthDelimited()
	if err != nil {
		return dst, err
	}
	sub := pbcodec.NewReader(body)
	for !sub.Eof() {
		v, err := sub.Fixed64()
		if err != nil {
			return dst, err
		}
		dst = append(dst, v)
	}
	return dst, nil
}

// Repeated ROS sequences: a 4-byte element count followed by the
// concatenated fixed-width encodings. These helpers cover only the count
// prefix and the total size; each element is written and read with the
// scalar ROS helpers in scalar.go.

// SequenceROSSize returns the ROS size of a sequence of n elements of
// elemSize bytes each, including its 4-byte count prefix.
func SequenceROSSize(n, elemSize int) int { return 4 + n*elemSize }

// WriteSequenceHeaderROS emits the 4-byte element count that precedes
// every ROS sequence.
func WriteSequenceHeaderROS(w *roscodec.Writer, n int) error { return w.Count(n) }

// ReadSequenceHeaderROS reads the 4-byte element count that precedes
// every ROS sequence.
func ReadSequenceHeaderROS(r *roscodec.Reader) (int, error) { return r.Count() }

// Repeated string/bytes fields: Protobuf has no packed form for
// length-delimited types, so proto-side repeated strings are always
// unpacked — reuse the singular string helpers per element.

// RepeatedStringProtoSize sums the unpacked size of each element; unlike
// a singular string, an empty element in a repeated field still has
// presence (it occupies a slot) and must be emitted.
func RepeatedStringProtoSize(fieldNumber int32, v [][]byte) int {
	size := 0
	for _, e := range v {
		size += pbcodec.TagSize(fieldNumber, pbcodec.WireLengthDelimited) + pbcodec.SizeVarint(uint64(len(e))) + len(e)
	}
	return size
}

// WriteRepeatedStringProto emits one tag+length+body per element,
// including zero-length elements.
func WriteRepeatedStringProto(w *pbcodec.Writer, fieldNumber int32, v [][]byte) {
	for _, e := range v {
		w.BytesField(fieldNumber, e)
	}
}
