// Package roscodec implements the ROS native serialization format:
// fixed-width little-endian scalars, length-prefixed strings, and
// count-prefixed sequences. Unlike Protobuf, ROS has no tags — every
// field is read and written positionally, in the order the schema
// declares it.
package roscodec

import (
	"math"

	"github.com/roswire/transcoder/txerr"
)

// Writer is a ROS wire format sink. By default it grows without bound,
// doubling capacity on overflow; NewFixedWriter instead caps the buffer
// and returns Overflow once exceeded.
type Writer struct {
	buf   []byte
	fixed bool
}

// NewWriter returns a Writer with capHint bytes of pre-allocated,
// unbounded capacity.
func NewWriter(capHint int) *Writer {
	return &Writer{buf: make([]byte, 0, capHint)}
}

// NewFixedWriter returns a Writer over a caller-owned buffer of exactly
// len(buf) capacity. Writes beyond that capacity return Overflow instead
// of growing.
func NewFixedWriter(buf []byte) *Writer {
	return &Writer{buf: buf[:0:len(buf)], fixed: true}
}

// Bytes returns the accumulated wire bytes.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

func (w *Writer) append(b ...byte) error {
	if w.fixed && len(w.buf)+len(b) > cap(w.buf) {
		return txerr.ErrOverflow
	}
	w.buf = append(w.buf, b...)
	return nil
}

// Bool writes a single byte: 1 for true, 0 for false.
func (w *Writer) Bool(v bool) error {
	if v {
		return w.append(1)
	}
	return w.append(0)
}

// Int8 writes a signed byte.
func (w *Writer) Int8(v int8) error { return w.append(byte(v)) }

// Uint8 writes a raw byte.
func (w *Writer) Uint8(v uint8) error { return w.append(v) }

// Int16 writes a little-endian signed 16-bit value.
func (w *Writer) Int16(v int16) error { return w.Uint16(uint16(v)) }

// Uint16 writes a little-endian unsigned 16-bit value.
func (w *Writer) Uint16(v uint16) error { return w.append(byte(v), byte(v>>8)) }

// Int32 writes a little-endian signed 32-bit value.
func (w *Writer) Int32(v int32) error { return w.Uint32(uint32(v)) }

// Uint32 writes a little-endian unsigned 32-bit value.
func (w *Writer) Uint32(v uint32) error {
	return w.append(byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// Int64 writes a little-endian signed 64-bit value.
func (w *Writer) Int64(v int64) error { return w.Uint64(uint64(v)) }

// Uint64 writes a little-endian unsigned 64-bit value.
func (w *Writer) Uint64(v uint64) error {
	return w.append(byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}

// Float32 writes a 32-bit float, bit pattern preserved (NaN payloads
// included).
func (w *Writer) Float32(v float32) error { return w.Uint32(math.Float32bits(v)) }

// Float64 writes a 64-bit float, bit pattern preserved (NaN payloads
// included).
func (w *Writer) Float64(v float64) error { return w.Uint64(math.Float64bits(v)) }

// Count writes the 4-byte little-endian element/byte count that prefixes
// every string, bytes, and sequence field.
func (w *Writer) Count(n int) error { return w.Uint32(uint32(n)) }

// String writes a 4-byte length prefix followed by the raw bytes of s. An
// empty string still emits its 4-byte zero length (ROS has no presence
// concept).
func (w *Writer) String(s string) error {
	if err := w.Count(len(s)); err != nil {
		return err
	}
	return w.append([]byte(s)...)
}

// WriteBytes writes a 4-byte length prefix followed by the raw body.
func (w *Writer) WriteBytes(b []byte) error {
	if err := w.Count(len(b)); err != nil {
		return err
	}
	return w.append(b...)
}

// RawBytes appends data with no length prefix, used for the fixed-size
// body of an array whose count has already been written, or for an
// already-serialized sub-message.
func (w *Writer) RawBytes(data []byte) error { return w.append(data...) }

// Reader decodes ROS wire format from a borrowed byte slice, purely
// positionally — there is no tag to dispatch on.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for reading. buf is borrowed, not copied.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

func (r *Reader) need(n int) error {
	if r.Remaining() < n {
		return txerr.ErrTruncated
	}
	return nil
}

// Bool reads a single byte, true iff nonzero.
func (r *Reader) Bool() (bool, error) {
	v, err := r.Uint8()
	return v != 0, err
}

// Int8 reads a signed byte.
func (r *Reader) Int8() (int8, error) {
	v, err := r.Uint8()
	return int8(v), err
}

// Uint8 reads a raw byte.
func (r *Reader) Uint8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

// Int16 reads a little-endian signed 16-bit value.
func (r *Reader) Int16() (int16, error) {
	v, err := r.Uint16()
	return int16(v), err
}

// Uint16 reads a little-endian unsigned 16-bit value.
func (r *Reader) Uint16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := uint16(r.buf[r.pos]) | uint16(r.buf[r.pos+1])<<8
	r.pos += 2
	return v, nil
}

// Int32 reads a little-endian signed 32-bit value.
func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

// Uint32 reads a little-endian unsigned 32-bit value.
func (r *Reader) Uint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := uint32(r.buf[r.pos]) | uint32(r.buf[r.pos+1])<<8 |
		uint32(r.buf[r.pos+2])<<16 | uint32(r.buf[r.pos+3])<<24
	r.pos += 4
	return v, nil
}

// Int64 reads a little-endian signed 64-bit value.
func (r *Reader) Int64() (int64, error) {
	v, err := r.Uint64()
	return int64(v), err
}

// Uint64 reads a little-endian unsigned 64-bit value.
func (r *Reader) Uint64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := uint64(r.buf[r.pos]) | uint64(r.buf[r.pos+1])<<8 |
		uint64(r.buf[r.pos+2])<<16 | uint64(r.buf[r.pos+3])<<24 |
		uint64(r.buf[r.pos+4])<<32 | uint64(r.buf[r.pos+5])<<40 |
		uint64(r.buf[r.pos+6])<<48 | uint64(r.buf[r.pos+7])<<56
	r.pos += 8
	return v, nil
}

// Float32 reads a 32-bit float, preserving NaN payloads.
func (r *Reader) Float32() (float32, error) {
	v, err := r.Uint32()
	return math.Float32frombits(v), err
}

// Float64 reads a 64-bit float, preserving NaN payloads.
func (r *Reader) Float64() (float64, error) {
	v, err := r.Uint64()
	return math.Float64frombits(v), err
}

// Count reads the 4-byte little-endian count prefixing a string, bytes,
// or sequence field.
func (r *Reader) Count() (int, error) {
	v, err := r.Uint32()
	return int(v), err
}

// String reads a 4-byte length prefix followed by that many raw bytes,
// copying into an owned Go string so it stays valid after the
// underlying buffer is reused.
func (r *Reader) String() (string, error) {
	n, err := r.Count()
	if err != nil {
		return "", err
	}
	if err := r.need(n); err != nil {
		return "", err
	}
	s := string(r.buf[r.pos : r.pos+n])
	r.pos += n
	return s, nil
}

// Bytes reads a 4-byte length prefix followed by that many raw bytes,
// copying into an owned slice.
func (r *Reader) Bytes() ([]byte, error) {
	n, err := r.Count()
	if err != nil {
		return nil, err
	}
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	copy(b, r.buf[r.pos:r.pos+n])
	r.pos += n
	return b, nil
}

// RawBytes reads exactly n raw bytes with no length prefix, copying into
// an owned slice. Used for a nested message's own positional encoding.
func (r *Reader) RawBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	copy(b, r.buf[r.pos:r.pos+n])
	r.pos += n
	return b, nil
}
