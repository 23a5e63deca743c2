package pbcodec_test

import (
	"math"
	"testing"

	"github.com/roswire/transcoder/pbcodec"
	"github.com/roswire/transcoder/txerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarintRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 300, math.MaxUint32, math.MaxUint64} {
		buf := pbcodec.AppendVarint(nil, v)
		assert.Equal(t, pbcodec.SizeVarint(v), len(buf))
		got, n := pbcodec.ConsumeVarint(buf)
		require.NotZero(t, n)
		assert.Equal(t, v, got)
		assert.Equal(t, len(buf), n)
	}
}

func TestConsumeVarintTruncated(t *testing.T) {
	_, n := pbcodec.ConsumeVarint([]byte{0x80, 0x80})
	assert.Zero(t, n)
}

func TestConsumeVarintMalformed(t *testing.T) {
	// 11 continuation bytes: exceeds the 10-byte maximum for a uint64.
	overlong := make([]byte, 11)
	for i := range overlong {
		overlong[i] = 0x80
	}
	_, n := pbcodec.ConsumeVarint(overlong)
	assert.Zero(t, n)
}

func TestZigZagRoundTrip(t *testing.T) {
	for _, v := range []int64{0, -1, 1, -2147483648, 2147483647, math.MinInt64, math.MaxInt64} {
		assert.Equal(t, v, pbcodec.ZigZagDecode64(pbcodec.ZigZagEncode64(v)))
	}
}

func TestSimpleScalarsMessage(t *testing.T) {
	// int32 x=1234 (field 1), string s="hello world" (field 3), matching
	// the bytes "08 D2 09 1A 0B hello world" a real protobuf encoder
	// would produce for the same values.
	w := pbcodec.NewWriter(0)
	w.VarintField(1, uint64(1234))
	w.BytesField(3, []byte("hello world"))

	want := []byte{0x08, 0xD2, 0x09, 0x1A, 0x0B}
	want = append(want, []byte("hello world")...)
	assert.Equal(t, want, w.Bytes())

	r := pbcodec.NewReader(w.Bytes())
	fn, wt, err := r.Tag()
	require.NoError(t, err)
	assert.Equal(t, int32(1), fn)
	assert.Equal(t, pbcodec.WireVarint, wt)
	v, err := r.Varint()
	require.NoError(t, err)
	assert.EqualValues(t, 1234, v)

	fn, wt, err = r.Tag()
	require.NoError(t, err)
	assert.Equal(t, int32(3), fn)
	assert.Equal(t, pbcodec.WireLengthDelimited, wt)
	s, err := r.String()
	require.NoError(t, err)
	assert.Equal(t, "hello world", s)
	assert.True(t, r.Eof())
}

func TestPackedRepeatedInt32(t *testing.T) {
	// vi32 = [1,2,3], field 4, packed.
	w := pbcodec.NewWriter(0)
	var body []byte
	body = pbcodec.AppendVarint(body, 1)
	body = pbcodec.AppendVarint(body, 2)
	body = pbcodec.AppendVarint(body, 3)
	w.LengthDelimitedHeader(4, len(body))
	w.RawBytes(body)

	want := []byte{0x22, 0x03, 0x01, 0x02, 0x03}
	assert.Equal(t, want, w.Bytes())
}

func TestSkipUnknownFieldVarint(t *testing.T) {
	w := pbcodec.NewWriter(0)
	w.VarintField(99, 42)
	w.VarintField(1, 7)

	r := pbcodec.NewReader(w.Bytes())
	fn, wt, err := r.Tag()
	require.NoError(t, err)
	assert.Equal(t, int32(99), fn)
	require.NoError(t, r.Skip(wt))

	fn, _, err = r.Tag()
	require.NoError(t, err)
	assert.Equal(t, int32(1), fn)
	v, err := r.Varint()
	require.NoError(t, err)
	assert.EqualValues(t, 7, v)
}

func TestGroupWireTypeRejected(t *testing.T) {
	r := pbcodec.NewReader(nil)
	err := r.Skip(pbcodec.WireStartGroup)
	assert.ErrorIs(t, err, txerr.ErrUnsupportedFeature)
}

func TestTruncatedFixed64(t *testing.T) {
	r := pbcodec.NewReader([]byte{1, 2, 3})
	_, err := r.Fixed64()
	assert.ErrorIs(t, err, txerr.ErrTruncated)
}

func TestFloatPreservesNaNPayload(t *testing.T) {
	nan := math.Float64frombits(0x7ff8000000000001)
	w := pbcodec.NewWriter(0)
	w.DoubleField(1, nan)
	r := pbcodec.NewReader(w.Bytes())
	_, _, err := r.Tag()
	require.NoError(t, err)
	got, err := r.Double()
	require.NoError(t, err)
	assert.Equal(t, math.Float64bits(nan), math.Float64bits(got))
}

func TestLengthDelimitedTruncatedBody(t *testing.T) {
	r := pbcodec.NewReader([]byte{0x05, 0x01, 0x02})
	_, err := r.LengthDelimited()
	assert.ErrorIs(t, err, txerr.ErrTruncated)
}
