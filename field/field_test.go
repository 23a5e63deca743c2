package field_test

import (
	"testing"

	"github.com/roswire/transcoder/field"
	"github.com/roswire/transcoder/pbcodec"
	"github.com/roswire/transcoder/roscodec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarintFieldAbsentEmitsNothing(t *testing.T) {
	assert.Zero(t, field.VarintProtoSize(1, false, 1234))
	w := pbcodec.NewWriter(0)
	field.WriteVarintProto(w, 1, false, 1234)
	assert.Zero(t, w.Len())
}

func TestVarintFieldExactSizing(t *testing.T) {
	w := pbcodec.NewWriter(0)
	field.WriteVarintProto(w, 1, true, 1234)
	assert.Equal(t, field.VarintProtoSize(1, true, 1234), w.Len())

	r := pbcodec.NewReader(w.Bytes())
	_, _, err := r.Tag()
	require.NoError(t, err)
	v, err := field.ParseVarintProto(r)
	require.NoError(t, err)
	assert.EqualValues(t, 1234, v)
}

func TestZigZagFieldNegative(t *testing.T) {
	w := pbcodec.NewWriter(0)
	field.WriteZigZagProto(w, 2, true, -7)
	assert.Equal(t, field.ZigZagProtoSize(2, true, -7), w.Len())

	r := pbcodec.NewReader(w.Bytes())
	_, _, err := r.Tag()
	require.NoError(t, err)
	v, err := field.ParseZigZagProto(r)
	require.NoError(t, err)
	assert.EqualValues(t, -7, v)
}

func TestStringFieldEmptyHasNoPresence(t *testing.T) {
	assert.Zero(t, field.StringProtoSize(3, nil))
	w := pbcodec.NewWriter(0)
	field.WriteStringProto(w, 3, nil)
	assert.Zero(t, w.Len())
}

func TestStringFieldRoundTrip(t *testing.T) {
	w := pbcodec.NewWriter(0)
	field.WriteStringProto(w, 3, []byte("hello world"))
	assert.Equal(t, field.StringProtoSize(3, []byte("hello world")), w.Len())

	r := pbcodec.NewReader(w.Bytes())
	_, _, err := r.Tag()
	require.NoError(t, err)
	got, err := field.ParseStringProto(r)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(got))
}

func TestPackedVsUnpackedVarintAcceptBoth(t *testing.T) {
	packed := pbcodec.NewWriter(0)
	field.WritePackedVarintProto(packed, 4, []uint64{1, 2, 3})

	unpacked := pbcodec.NewWriter(0)
	field.WriteUnpackedVarintProto(unpacked, 4, []uint64{1, 2, 3})

	pr := pbcodec.NewReader(packed.Bytes())
	_, wt, err := pr.Tag()
	require.NoError(t, err)
	require.Equal(t, pbcodec.WireLengthDelimited, wt)
	var got []uint64
	got, err = field.ParsePackedVarintProto(pr, got)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, got)

	var unpackedGot []uint64
	ur := pbcodec.NewReader(unpacked.Bytes())
	for !ur.Eof() {
		_, wt, err := ur.Tag()
		require.NoError(t, err)
		require.Equal(t, pbcodec.WireVarint, wt)
		v, err := field.ParseUnpackedVarintElementProto(ur)
		require.NoError(t, err)
		unpackedGot = append(unpackedGot, v)
	}
	assert.Equal(t, got, unpackedGot)
}

func TestRepeatedStringPreservesEmptyElements(t *testing.T) {
	w := pbcodec.NewWriter(0)
	elems := [][]byte{[]byte("a"), {}, []byte("c")}
	field.WriteRepeatedStringProto(w, 5, elems)
	assert.Equal(t, field.RepeatedStringProtoSize(5, elems), w.Len())

	r := pbcodec.NewReader(w.Bytes())
	var got [][]byte
	for !r.Eof() {
		_, _, err := r.Tag()
		require.NoError(t, err)
		b, err := field.ParseStringProto(r)
		require.NoError(t, err)
		got = append(got, b)
	}
	require.Len(t, got, 3)
	assert.Equal(t, "a", string(got[0]))
	assert.Empty(t, got[1])
	assert.Equal(t, "c", string(got[2]))
}

// fakeMessage is a minimal field.Message used to exercise the embedded
// and repeated message-field helpers without depending on the message
// package.
type fakeMessage struct {
	payload int32
}

func (m *fakeMessage) ProtoSize() int { return field.PlainInt32ProtoSize(1, true, int64(m.payload)) }

func (m *fakeMessage) WriteProto(w *pbcodec.Writer) {
	field.WritePlainInt32Proto(w, 1, true, int64(m.payload))
}

func (m *fakeMessage) ParseProto(r *pbcodec.Reader) error {
	_, _, err := r.Tag()
	if err != nil {
		return err
	}
	v, err := field.ParsePlainInt32Proto(r)
	if err != nil {
		return err
	}
	m.payload = int32(v)
	return nil
}

func (m *fakeMessage) ROSSize() int { return 4 }

func (m *fakeMessage) WriteROS(w *roscodec.Writer) error { return w.Int32(m.payload) }

func (m *fakeMessage) ParseROS(r *roscodec.Reader) error {
	v, err := r.Int32()
	if err != nil {
		return err
	}
	m.payload = v
	return nil
}

func TestEmbeddedMessageFieldRoundTripProto(t *testing.T) {
	inner := &fakeMessage{payload: 99}
	w := pbcodec.NewWriter(0)
	field.WriteEmbeddedMessageProto(w, 7, inner)
	assert.Equal(t, field.EmbeddedMessageProtoSize(7, inner), w.Len())

	r := pbcodec.NewReader(w.Bytes())
	_, _, err := r.Tag()
	require.NoError(t, err)
	out := &fakeMessage{}
	require.NoError(t, field.ParseEmbeddedMessageProto(r, out))
	assert.Equal(t, inner.payload, out.payload)
}

func TestEmbeddedMessageFieldAbsentIsZeroSize(t *testing.T) {
	assert.Zero(t, field.EmbeddedMessageProtoSize(7, nil))
}

func TestRepeatedMessageROSSequence(t *testing.T) {
	elems := []field.ROSMessage{&fakeMessage{payload: 1}, &fakeMessage{payload: 2}}
	w := roscodec.NewWriter(0)
	require.NoError(t, field.WriteRepeatedMessageROS(w, elems))
	assert.Equal(t, field.RepeatedMessageROSSize(elems), w.Len())
}

func TestOneofDiscriminatorAndMemberWrapper(t *testing.T) {
	w := roscodec.NewWriter(0)
	require.NoError(t, field.WriteOneofDiscriminatorROS(w, 5))
	inner := &fakeMessage{payload: 3}
	require.NoError(t, field.WriteOneofMemberMessageROS(w, true, inner))

	r := roscodec.NewReader(w.Bytes())
	disc, err := field.ReadOneofDiscriminatorROS(r)
	require.NoError(t, err)
	assert.EqualValues(t, 5, disc)

	out := &fakeMessage{}
	present, err := field.ParseOneofMemberMessageROS(r, out)
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, int32(3), out.payload)
}

func TestOneofInactiveMemberWrapperIsEmpty(t *testing.T) {
	w := roscodec.NewWriter(0)
	require.NoError(t, field.WriteOneofMemberMessageROS(w, false, &fakeMessage{payload: 3}))
	assert.Equal(t, 4, w.Len())

	r := roscodec.NewReader(w.Bytes())
	present, err := field.ParseOneofMemberMessageROS(r, &fakeMessage{})
	require.NoError(t, err)
	assert.False(t, present)
}
