package field

import (
	"github.com/roswire/transcoder/roscodec"
)

// Oneof groups have no dedicated Protobuf wire representation of their
// own: each arm writes itself as an ordinary field using its own field
// number, and exclusivity is enforced by the aggregator (only the active
// arm's write_proto is ever invoked). This file therefore holds only
// the ROS-side helpers; the exclusivity logic lives in the discriminator.

// OneofDiscriminatorROSSize is the constant 4-byte cost of the
// discriminator this system's ROS convention prepends to every oneof —
// ROS itself has no native oneof concept.
const OneofDiscriminatorROSSize = 4

// WriteOneofDiscriminatorROS emits the active arm's field number, or 0
// if no arm is active.
func WriteOneofDiscriminatorROS(w *roscodec.Writer, activeFieldNumber int32) error {
	return w.Int32(activeFieldNumber)
}

// ReadOneofDiscriminatorROS reads the discriminator preceding a oneof's
// members.
func ReadOneofDiscriminatorROS(r *roscodec.Reader) (int32, error) {
	return r.Int32()
}

// OneofMemberMessageROSSize returns the size of a message-typed oneof
// member under the 0/1-length array wrapper convention: 4 bytes for the
// array count, plus the inner encoding only when active.
func OneofMemberMessageROSSize(active bool, inner ROSMessage) int {
	if !active || inner == nil {
		return 4
	}
	return 4 + inner.ROSSize()
}

// WriteOneofMemberMessageROS writes the 0/1-length array wrapper
// followed by the inner encoding iff active.
func WriteOneofMemberMessageROS(w *roscodec.Writer, active bool, inner ROSMessage) error {
	if !active || inner == nil {
		return w.Count(0)
	}
	if err := w.Count(1); err != nil {
		return err
	}
	return inner.WriteROS(w)
}

// ParseOneofMemberMessageROS reads the 0/1-length array wrapper,
// returning whether the member was present and, if so, parsing inner
// from the stream.
func ParseOneofMemberMessageROS(r *roscodec.Reader, inner ROSMessage) (present bool, err error) {
	n, err := r.Count()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	if err := inner.ParseROS(r); err != nil {
		return false, err
	}
	return true, nil
}

// Inactive scalar/string oneof members are still emitted on the ROS
// side, holding default (zero) bytes — these reuse the plain scalar/
// string ROS helpers directly (WriteBoolROS, WriteStringROS, and so on)
// with the member's current value, which is its zero value whenever
// that member isn't the active arm. Proto-side members likewise reuse
// the ordinary scalar/string/message helpers under their own field
// number; no dedicated proto oneof helper is needed beyond those.
