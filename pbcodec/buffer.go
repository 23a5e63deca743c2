package pbcodec

import (
	"math"

	"github.com/roswire/transcoder/txerr"
)

// Writer is an auto-growing Protobuf wire format sink. The zero value is
// ready to use.
type Writer struct {
	buf []byte
}

// NewWriter returns a Writer with cap bytes of pre-allocated capacity.
func NewWriter(capHint int) *Writer {
	return &Writer{buf: make([]byte, 0, capHint)}
}

// Bytes returns the accumulated wire bytes. The returned slice aliases the
// Writer's internal buffer; callers that retain it across further writes
// must copy first.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Tag writes a field tag for fieldNumber/wireType.
func (w *Writer) Tag(fieldNumber int32, wireType WireType) {
	w.buf = AppendVarint(w.buf, MakeTag(fieldNumber, wireType))
}

// Varint writes a raw (non-tagged) varint.
func (w *Writer) Varint(v uint64) {
	w.buf = AppendVarint(w.buf, v)
}

// VarintField writes a tag followed by an unsigned varint value.
func (w *Writer) VarintField(fieldNumber int32, v uint64) {
	w.Tag(fieldNumber, WireVarint)
	w.Varint(v)
}

// ZigZagField writes a tag followed by the ZigZag-encoded form of a
// signed 64-bit value.
func (w *Writer) ZigZagField(fieldNumber int32, v int64) {
	w.Tag(fieldNumber, WireVarint)
	w.Varint(ZigZagEncode64(v))
}

// Fixed32Field writes a tag followed by a little-endian 32-bit value.
func (w *Writer) Fixed32Field(fieldNumber int32, v uint32) {
	w.Tag(fieldNumber, WireFixed32)
	w.buf = AppendFixed32(w.buf, v)
}

// Fixed64Field writes a tag followed by a little-endian 64-bit value.
func (w *Writer) Fixed64Field(fieldNumber int32, v uint64) {
	w.Tag(fieldNumber, WireFixed64)
	w.buf = AppendFixed64(w.buf, v)
}

// FloatField writes a tag followed by an IEEE-754 32-bit float, bit
// pattern preserved (including NaN payloads).
func (w *Writer) FloatField(fieldNumber int32, v float32) {
	w.Fixed32Field(fieldNumber, math.Float32bits(v))
}

// DoubleField writes a tag followed by an IEEE-754 64-bit float, bit
// pattern preserved (including NaN payloads).
func (w *Writer) DoubleField(fieldNumber int32, v float64) {
	w.Fixed64Field(fieldNumber, math.Float64bits(v))
}

// LengthDelimitedHeader writes a tag and a length varint for a
// length-delimited field, leaving the caller to append size bytes of
// body.
func (w *Writer) LengthDelimitedHeader(fieldNumber int32, size int) {
	w.Tag(fieldNumber, WireLengthDelimited)
	w.Varint(uint64(size))
}

// BytesField writes a tag, length, and raw body for a string/bytes field.
func (w *Writer) BytesField(fieldNumber int32, data []byte) {
	w.LengthDelimitedHeader(fieldNumber, len(data))
	w.buf = append(w.buf, data...)
}

// RawVarint appends an unsigned varint with no tag, used inside packed
// repeated runs.
func (w *Writer) RawVarint(v uint64) { w.Varint(v) }

// RawZigZag appends a ZigZag-encoded varint with no tag.
func (w *Writer) RawZigZag(v int64) { w.Varint(ZigZagEncode64(v)) }

// RawFixed32 appends a raw little-endian 32-bit value with no tag.
func (w *Writer) RawFixed32(v uint32) { w.buf = AppendFixed32(w.buf, v) }

// RawFixed64 appends a raw little-endian 64-bit value with no tag.
func (w *Writer) RawFixed64(v uint64) { w.buf = AppendFixed64(w.buf, v) }

// RawBytes appends raw bytes with no length prefix, used for the body of
// an already-headered length-delimited field (e.g. an embedded message).
func (w *Writer) RawBytes(data []byte) { w.buf = append(w.buf, data...) }

// Reader decodes Protobuf wire format from a borrowed byte slice. The
// slice must outlive every LengthDelimited/Bytes result, which aliases
// it; String copies into an owned Go string.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for reading. buf is borrowed, not copied.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Eof reports whether the cursor has reached the end of the buffer.
func (r *Reader) Eof() bool { return r.pos >= len(r.buf) }

// Tag reads and decodes the next field tag.
func (r *Reader) Tag() (fieldNumber int32, wireType WireType, err error) {
	v, err := r.Varint()
	if err != nil {
		return 0, 0, err
	}
	fieldNumber, wireType = SplitTag(v)
	return fieldNumber, wireType, nil
}

// Varint reads a raw unsigned varint.
func (r *Reader) Varint() (uint64, error) {
	v, n := ConsumeVarint(r.buf[r.pos:])
	if n == 0 {
		if len(r.buf)-r.pos < maxVarintLen64 {
			return 0, txerr.ErrTruncated
		}
		return 0, txerr.ErrMalformedVarint
	}
	r.pos += n
	return v, nil
}

// ZigZag reads a ZigZag-encoded signed 64-bit varint.
func (r *Reader) ZigZag() (int64, error) {
	v, err := r.Varint()
	if err != nil {
		return 0, err
	}
	return ZigZagDecode64(v), nil
}

// Fixed32 reads a little-endian 32-bit value.
func (r *Reader) Fixed32() (uint32, error) {
	v, ok := ConsumeFixed32(r.buf[r.pos:])
	if !ok {
		return 0, txerr.ErrTruncated
	}
	r.pos += 4
	return v, nil
}

// Fixed64 reads a little-endian 64-bit value.
func (r *Reader) Fixed64() (uint64, error) {
	v, ok := ConsumeFixed64(r.buf[r.pos:])
	if !ok {
		return 0, txerr.ErrTruncated
	}
	r.pos += 8
	return v, nil
}

// Float reads a 32-bit IEEE-754 float, preserving NaN payloads.
func (r *Reader) Float() (float32, error) {
	v, err := r.Fixed32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// Double reads a 64-bit IEEE-754 float, preserving NaN payloads.
func (r *Reader) Double() (float64, error) {
	v, err := r.Fixed64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// LengthDelimited reads a length varint followed by that many bytes,
// returning a slice that aliases the Reader's underlying buffer.
func (r *Reader) LengthDelimited() ([]byte, error) {
	n, err := r.Varint()
	if err != nil {
		return nil, err
	}
	end := r.pos + int(n)
	if n > math.MaxInt32 || end < r.pos || end > len(r.buf) {
		return nil, txerr.ErrTruncated
	}
	body := r.buf[r.pos:end]
	r.pos = end
	return body, nil
}

// Bytes is an alias for LengthDelimited, used for bytes-typed fields.
func (r *Reader) Bytes() ([]byte, error) { return r.LengthDelimited() }

// String reads a length-delimited UTF-8 string, copying into an owned Go
// string — the underlying buffer is borrowed and may be reused by the
// caller once parsing returns.
func (r *Reader) String() (string, error) {
	b, err := r.LengthDelimited()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Skip advances the cursor past an already-read tag's value, dispatching
// on wire type. Groups are rejected outright.
func (r *Reader) Skip(wireType WireType) error {
	switch wireType {
	case WireVarint:
		_, err := r.Varint()
		return err
	case WireFixed64:
		_, err := r.Fixed64()
		return err
	case WireFixed32:
		_, err := r.Fixed32()
		return err
	case WireLengthDelimited:
		_, err := r.LengthDelimited()
		return err
	default:
		return txerr.ErrUnsupportedFeature
	}
}

// Sub returns a fresh Reader bounded to the next length-delimited field's
// body, for recursing into an embedded message.
func (r *Reader) Sub() (*Reader, error) {
	body, err := r.LengthDelimited()
	if err != nil {
		return nil, err
	}
	return NewReader(body), nil
}
