// Package anypb implements transcoding of google.protobuf.Any: a
// self-describing field whose concrete message type is resolved at
// parse time through the message registry.
package anypb

import (
	"github.com/roswire/transcoder/field"
	"github.com/roswire/transcoder/message"
	"github.com/roswire/transcoder/pbcodec"
	"github.com/roswire/transcoder/roscodec"
	"github.com/roswire/transcoder/txerr"
)

const (
	typeURLFieldNumber = 1
	valueFieldNumber   = 2
)

// Message is an Any field's in-memory form: the type_url string exactly
// as seen on the wire, and the dynamically-resolved inner message owned
// by this Any.
type Message struct {
	message.Base
	TypeURL string
	Value   field.Message
}

// ProtoSize returns the wire size of the type_url string field (absent
// when empty, per ordinary string-field presence rules) plus the value
// bytes field (absent when Value is nil).
func (a *Message) ProtoSize() int {
	size := field.StringProtoSize(typeURLFieldNumber, []byte(a.TypeURL))
	if a.Value != nil {
		size += field.EmbeddedMessageProtoSize(valueFieldNumber, a.Value)
	}
	return size
}

// WriteProto writes type_url, then the inner message's serialized bytes
// as the value field — field 2's bytes body is exactly the inner
// message's own Protobuf encoding, so this reuses the same
// length-delimited envelope an embedded message field would use.
func (a *Message) WriteProto(w *pbcodec.Writer) {
	field.WriteStringProto(w, typeURLFieldNumber, []byte(a.TypeURL))
	if a.Value != nil {
		field.WriteEmbeddedMessageProto(w, valueFieldNumber, a.Value)
	}
}

// ParseProto reads type_url and the value bytes in whatever order they
// appear — real encoders emit type_url first, but nothing on the wire
// guarantees it — then resolves the concrete type from the registry and
// parses the buffered value bytes into it.
func (a *Message) ParseProto(r *pbcodec.Reader) error {
	if err := a.Guard(); err != nil {
		return err
	}
	var valueBytes []byte
	haveValue := false
	for !r.Eof() {
		fn, wt, err := r.Tag()
		if err != nil {
			return err
		}
		switch fn {
		case typeURLFieldNumber:
			s, err := r.String()
			if err != nil {
				return err
			}
			a.TypeURL = s
		case valueFieldNumber:
			b, err := r.Bytes()
			if err != nil {
				return err
			}
			valueBytes = append([]byte(nil), b...)
			haveValue = true
		default:
			if err := r.Skip(wt); err != nil {
				return err
			}
		}
	}
	if haveValue {
		inner, ok := message.New(a.TypeURL)
		if !ok {
			return txerr.ErrUnknownType
		}
		if err := inner.ParseProto(pbcodec.NewReader(valueBytes)); err != nil {
			return err
		}
		a.Value = inner
	}
	a.MarkPopulated()
	return nil
}

// ROSSize returns the ROS wire size: a 4-byte length-prefixed type_url
// string plus a 4-byte length-prefixed string carrying the inner
// message's own serialized ROS bytes.
func (a *Message) ROSSize() int {
	size := field.StringROSSize([]byte(a.TypeURL))
	size += 4 // value's own length prefix
	if a.Value != nil {
		size += a.Value.ROSSize()
	}
	return size
}

// WriteROS writes type_url, then serializes the inner message into a
// temporary ROS buffer and emits that buffer as a length-prefixed string
// in the outer stream.
func (a *Message) WriteROS(w *roscodec.Writer) error {
	if err := field.WriteStringROS(w, []byte(a.TypeURL)); err != nil {
		return err
	}
	if a.Value == nil {
		return w.Count(0)
	}
	inner := roscodec.NewWriter(a.Value.ROSSize())
	if err := a.Value.WriteROS(inner); err != nil {
		return err
	}
	return w.WriteBytes(inner.Bytes())
}

// ParseROS reads type_url. An empty type_url means the Any is unset: the
// 4-byte zero value-length is consumed and parsing stops there. Otherwise
// the type is resolved from the registry, an instance allocated, and the
// value's length-prefixed bytes parsed into it as ROS.
func (a *Message) ParseROS(r *roscodec.Reader) error {
	if err := a.Guard(); err != nil {
		return err
	}
	typeURL, err := field.ParseStringROS(r)
	if err != nil {
		return err
	}
	a.TypeURL = string(typeURL)

	n, err := r.Count()
	if err != nil {
		return err
	}
	if a.TypeURL == "" {
		a.MarkPopulated()
		return nil
	}
	inner, ok := message.New(a.TypeURL)
	if !ok {
		return txerr.ErrUnknownType
	}
	body, err := r.RawBytes(n)
	if err != nil {
		return err
	}
	if err := inner.ParseROS(roscodec.NewReader(body)); err != nil {
		return err
	}
	a.Value = inner
	a.MarkPopulated()
	return nil
}
