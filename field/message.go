package field

import (
	"github.com/roswire/transcoder/pbcodec"
	"github.com/roswire/transcoder/roscodec"
)

// ProtoMessage is the subset of message behavior the field library needs
// to embed or repeat a message-typed field, without importing the
// message package — avoiding a dependency cycle, since the message
// aggregator itself depends on field for the shapes below.
type ProtoMessage interface {
	ProtoSize() int
	WriteProto(w *pbcodec.Writer)
	ParseProto(r *pbcodec.Reader) error
}

// ROSMessage is the ROS-side counterpart of ProtoMessage.
type ROSMessage interface {
	ROSSize() int
	WriteROS(w *roscodec.Writer) error
	ParseROS(r *roscodec.Reader) error
}

// Message is implemented by every generated message type.
type Message interface {
	ProtoMessage
	ROSMessage
}

// EmbeddedMessageProtoSize returns the size of a singular embedded
// message field, or 0 if inner is nil (absent).
func EmbeddedMessageProtoSize(fieldNumber int32, inner ProtoMessage) int {
	if inner == nil {
		return 0
	}
	innerSize := inner.ProtoSize()
	return pbcodec.TagSize(fieldNumber, pbcodec.WireLengthDelimited) + pbcodec.SizeVarint(uint64(innerSize)) + innerSize
}

// WriteEmbeddedMessageProto emits the field's envelope (tag, pre-queried
// length) followed by the inner message's own encoding, or nothing if
// inner is nil.
func WriteEmbeddedMessageProto(w *pbcodec.Writer, fieldNumber int32, inner ProtoMessage) {
	if inner == nil {
		return
	}
	w.LengthDelimitedHeader(fieldNumber, inner.ProtoSize())
	inner.WriteProto(w)
}

// ParseEmbeddedMessageProto reads the field's length-delimited envelope
// and parses the inner message from it. The caller supplies a freshly
// allocated, unpopulated inner instance (typically via the message
// type's zero value or the registry's factory).
func ParseEmbeddedMessageProto(r *pbcodec.Reader, inner ProtoMessage) error {
	sub, err := r.Sub()
	if err != nil {
		return err
	}
	return inner.ParseProto(sub)
}

// EmbeddedMessageROSSize returns the ROS size of a singular embedded
// message field. ROS has no presence concept for message fields in this
// system's oneof-free path — a nil inner still costs 0 bytes only
// because a non-oneof embedded field is never actually optional in a
// well-formed schema; oneof-held embedded messages use the 0/1-length
// array convention in oneof.go instead.
func EmbeddedMessageROSSize(inner ROSMessage) int {
	if inner == nil {
		return 0
	}
	return inner.ROSSize()
}

// WriteEmbeddedMessageROS writes the inner message's own ROS encoding
// directly inline, with no framing of its own.
func WriteEmbeddedMessageROS(w *roscodec.Writer, inner ROSMessage) error {
	if inner == nil {
		return nil
	}
	return inner.WriteROS(w)
}

// ParseEmbeddedMessageROS parses the inner message positionally from the
// current cursor.
func ParseEmbeddedMessageROS(r *roscodec.Reader, inner ROSMessage) error {
	return inner.ParseROS(r)
}

// Repeated message fields: Protobuf repeats the length-delimited
// envelope once per element; ROS prefixes a count and concatenates each
// element's own encoding.

// RepeatedMessageProtoSize sums the envelope size of every element.
func RepeatedMessageProtoSize(fieldNumber int32, elems []ProtoMessage) int {
	size := 0
	for _, e := range elems {
		size += EmbeddedMessageProtoSize(fieldNumber, e)
	}
	return size
}

// WriteRepeatedMessageProto emits one envelope per element, in order.
func WriteRepeatedMessageProto(w *pbcodec.Writer, fieldNumber int32, elems []ProtoMessage) {
	for _, e := range elems {
		WriteEmbeddedMessageProto(w, fieldNumber, e)
	}
}

// RepeatedMessageROSSize returns the sequence size: a 4-byte count plus
// each element's own ROS encoding.
func RepeatedMessageROSSize(elems []ROSMessage) int {
	size := 4
	for _, e := range elems {
		size += e.ROSSize()
	}
	return size
}

// WriteRepeatedMessageROS writes the count followed by each element's
// encoding in order.
func WriteRepeatedMessageROS(w *roscodec.Writer, elems []ROSMessage) error {
	if err := w.Count(len(elems)); err != nil {
		return err
	}
	for _, e := range elems {
		if err := e.WriteROS(w); err != nil {
			return err
		}
	}
	return nil
}
