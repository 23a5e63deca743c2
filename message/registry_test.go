package message_test

import (
	"testing"

	"github.com/roswire/transcoder/field"
	"github.com/roswire/transcoder/message"
	"github.com/roswire/transcoder/pbcodec"
	"github.com/roswire/transcoder/roscodec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMessage struct{ message.Base }

func (m *stubMessage) ProtoSize() int                        { return 0 }
func (m *stubMessage) WriteProto(w *pbcodec.Writer)           {}
func (m *stubMessage) ParseProto(r *pbcodec.Reader) error     { return m.Guard() }
func (m *stubMessage) ROSSize() int                           { return 0 }
func (m *stubMessage) WriteROS(w *roscodec.Writer) error      { return nil }
func (m *stubMessage) ParseROS(r *roscodec.Reader) error      { return m.Guard() }

func TestRegisterAndLookup(t *testing.T) {
	message.Register("test.pkg.Stub", message.VTable{New: func() field.Message { return &stubMessage{} }})

	vt, ok := message.Lookup("test.pkg.Stub")
	require.True(t, ok)
	m := vt.New()
	assert.NotNil(t, m)
}

func TestLookupStripsTypeURLPrefix(t *testing.T) {
	message.Register("test.pkg.Stub2", message.VTable{New: func() field.Message { return &stubMessage{} }})

	_, ok := message.Lookup("type.googleapis.com/test.pkg.Stub2")
	assert.True(t, ok)
}

func TestLookupUnknownType(t *testing.T) {
	_, ok := message.Lookup("test.pkg.DoesNotExist")
	assert.False(t, ok)
}

func TestBaseGuardsAgainstDoubleParse(t *testing.T) {
	m := &stubMessage{}
	require.NoError(t, m.ParseProto(nil))
	m.MarkPopulated()
	err := m.ParseProto(nil)
	assert.Error(t, err)
}

func TestNewAllocatesFreshInstance(t *testing.T) {
	message.Register("test.pkg.Stub3", message.VTable{New: func() field.Message { return &stubMessage{} }})
	a, ok := message.New("test.pkg.Stub3")
	require.True(t, ok)
	b, ok := message.New("test.pkg.Stub3")
	require.True(t, ok)
	assert.NotSame(t, a, b)
}
