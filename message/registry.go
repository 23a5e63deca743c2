package message

import (
	"strings"
	"sync"

	"github.com/roswire/transcoder/field"
)

// anyTypeURLPrefix is stripped from a google.protobuf.Any type_url
// before registry lookup.
const anyTypeURLPrefix = "type.googleapis.com/"

// VTable is the registry entry a generated message type publishes at
// startup. The dispatch operations a hand-rolled multiplexer would name
// explicitly (parse_proto, parse_ros, write_proto, write_ros,
// serialized_proto_size, serialized_ros_size) are simply the method set
// of field.Message — interface dispatch already gives Go the jump table
// that design would otherwise need to carry by hand, so the only thing
// the registry itself needs is the factory that produces a fresh,
// unpopulated instance.
type VTable struct {
	New func() field.Message
}

var registry sync.Map // string -> VTable

// Register publishes a message type's factory under its fully-qualified
// name. Called once per generated type, from that type's package-level
// init, so every type is registered before any message is parsed.
// Registering the same name twice overwrites the previous entry.
func Register(fullName string, vt VTable) {
	registry.Store(fullName, vt)
}

// Lookup resolves a fully-qualified message name to its VTable. The
// type.googleapis.com/ prefix used by Any.type_url is stripped first, so
// callers may pass either a bare FQN or a full type_url.
func Lookup(name string) (VTable, bool) {
	name = strings.TrimPrefix(name, anyTypeURLPrefix)
	v, ok := registry.Load(name)
	if !ok {
		return VTable{}, false
	}
	return v.(VTable), true
}

// New resolves name and, if found, allocates a fresh unpopulated
// instance via its factory.
func New(name string) (field.Message, bool) {
	vt, ok := Lookup(name)
	if !ok {
		return nil, false
	}
	return vt.New(), true
}
