package field

import (
	"github.com/roswire/transcoder/pbcodec"
	"github.com/roswire/transcoder/roscodec"
)

// StringProtoSize returns the wire size of a string or bytes field. An
// empty string/bytes value has no presence in Protobuf — it is omitted
// entirely, matching protobuf-go's implicit-presence default.
func StringProtoSize(fieldNumber int32, v []byte) int {
	if len(v) == 0 {
		return 0
	}
	return pbcodec.TagSize(fieldNumber, pbcodec.WireLengthDelimited) + pbcodec.SizeVarint(uint64(len(v))) + len(v)
}

// WriteStringProto emits the field if non-empty.
func WriteStringProto(w *pbcodec.Writer, fieldNumber int32, v []byte) {
	if len(v) == 0 {
		return
	}
	w.BytesField(fieldNumber, v)
}

// ParseStringProto reads a length-delimited body and copies it into an
// owned byte slice — the caller's underlying wire buffer may be reused
// or freed once parsing returns, so nothing here may alias it.
func ParseStringProto(r *pbcodec.Reader) ([]byte, error) {
	b, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	owned := make([]byte, len(b))
	copy(owned, b)
	return owned, nil
}

// StringROSSize returns the ROS wire size of a string/bytes field: a
// 4-byte count plus the raw body, unconditionally.
func StringROSSize(v []byte) int { return 4 + len(v) }

// WriteStringROS emits the 4-byte length prefix and body unconditionally
// — an empty string is still a present, zero-length field in ROS.
func WriteStringROS(w *roscodec.Writer, v []byte) error { return w.WriteBytes(v) }

// ParseStringROS reads the length-prefixed body into an owned slice.
func ParseStringROS(r *roscodec.Reader) ([]byte, error) { return r.Bytes() }
