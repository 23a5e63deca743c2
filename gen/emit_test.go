package gen

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protoreflect"
)

func sampleSchema() *Schema {
	return &Schema{
		GoPackage: "std_msgs",
		Messages: []MessageDef{
			{
				GoName:       "Inner",
				FullName:     "std_msgs.Inner",
				ROSShortName: "Inner",
				Fields: []FieldDef{
					{GoName: "Value", ProtoName: "value", Number: 1, Kind: protoreflect.Int32Kind, OneofIndex: -1},
				},
			},
			{
				GoName:       "Outer",
				FullName:     "std_msgs.Outer",
				ROSShortName: "Outer",
				Fields: []FieldDef{
					{GoName: "Count", ProtoName: "count", Number: 1, Kind: protoreflect.Int32Kind, OneofIndex: -1},
					{GoName: "Tags", ProtoName: "tags", Number: 2, Kind: protoreflect.StringKind, Repeated: true, OneofIndex: -1},
					{GoName: "Child", ProtoName: "child", Number: 3, Kind: protoreflect.MessageKind, MessageRef: "std_msgs.Inner", OneofIndex: -1},
					{GoName: "ScalarChoice", ProtoName: "scalar_choice", Number: 4, Kind: protoreflect.Int32Kind, OneofIndex: 0},
					{GoName: "MessageChoice", ProtoName: "message_choice", Number: 5, Kind: protoreflect.MessageKind, MessageRef: "std_msgs.Inner", OneofIndex: 0},
				},
				Oneofs: []OneofDef{
					{GoName: "Choice", Members: []int{3, 4}},
				},
			},
		},
	}
}

// sampleSchemaOneofBetweenFields places a oneof between two ordinary
// fields, rather than trailing every plain field the way sampleSchema
// does — the arrangement that actually exercises positional ordering.
func sampleSchemaOneofBetweenFields() *Schema {
	return &Schema{
		GoPackage: "std_msgs",
		Messages: []MessageDef{
			{
				GoName:       "Straddle",
				FullName:     "std_msgs.Straddle",
				ROSShortName: "Straddle",
				Fields: []FieldDef{
					{GoName: "A", ProtoName: "a", Number: 1, Kind: protoreflect.Int32Kind, OneofIndex: -1},
					{GoName: "U1a", ProtoName: "u1a", Number: 2, Kind: protoreflect.Int32Kind, OneofIndex: 0},
					{GoName: "U1b", ProtoName: "u1b", Number: 3, Kind: protoreflect.StringKind, OneofIndex: 0},
					{GoName: "D", ProtoName: "d", Number: 4, Kind: protoreflect.Int32Kind, OneofIndex: -1},
				},
				Oneofs: []OneofDef{
					{GoName: "U", Members: []int{1, 2}},
				},
			},
		},
	}
}

func TestEmitFileKeepsTrailingFieldAfterOneofInStruct(t *testing.T) {
	src, err := EmitFile(sampleSchemaOneofBetweenFields())
	require.NoError(t, err)
	out := string(src)

	structStart := strings.Index(out, "type Straddle struct")
	structEnd := strings.Index(out[structStart:], "}")
	body := out[structStart : structStart+structEnd]

	aIdx := regexp.MustCompile(`\bA\s+int32`).FindStringIndex(body)
	discIdx := regexp.MustCompile(`\bUDiscriminator\s+int32`).FindStringIndex(body)
	dIdx := regexp.MustCompile(`\bD\s+int32`).FindStringIndex(body)
	require.NotNil(t, aIdx)
	require.NotNil(t, discIdx)
	require.NotNil(t, dIdx)

	assert.Greater(t, discIdx[0], aIdx[0])
	assert.Greater(t, dIdx[0], discIdx[0])
}

func TestEmitFileKeepsTrailingFieldAfterOneofInROSSize(t *testing.T) {
	src, err := EmitFile(sampleSchemaOneofBetweenFields())
	require.NoError(t, err)
	out := string(src)

	// A's size term comes first, then the oneof's discriminator and
	// member term, then D's size term last — D's add is the final
	// occurrence of this shared int32 size expression.
	discIdx := strings.Index(out, "field.OneofDiscriminatorROSSize")
	firstFixed32 := strings.Index(out, "field.Fixed32ROSSize()")
	lastFixed32 := strings.LastIndex(out, "field.Fixed32ROSSize()")
	require.NotEqual(t, -1, discIdx)
	assert.Greater(t, discIdx, firstFixed32)
	assert.Greater(t, lastFixed32, discIdx)
}

func TestEmitFileKeepsTrailingFieldAfterOneofInWriteROS(t *testing.T) {
	src, err := EmitFile(sampleSchemaOneofBetweenFields())
	require.NoError(t, err)
	out := string(src)

	discIdx := strings.Index(out, "WriteOneofDiscriminatorROS")
	dIdx := strings.Index(out, "WriteInt32ROS(w, int32(m.D))")
	require.NotEqual(t, -1, discIdx)
	require.NotEqual(t, -1, dIdx)
	assert.Less(t, discIdx, dIdx)
}

func TestEmitFileKeepsTrailingFieldAfterOneofInMessageText(t *testing.T) {
	s := sampleSchemaOneofBetweenFields()
	text := MessageText(s, s.Messages[0])

	discIdx := strings.Index(text, "u_discriminator")
	dIdx := strings.Index(text, "int32 d")
	require.NotEqual(t, -1, discIdx)
	require.NotEqual(t, -1, dIdx)
	assert.Less(t, discIdx, dIdx)
}

func TestEmitFileProducesStructFieldsAndPresenceBits(t *testing.T) {
	src, err := EmitFile(sampleSchema())
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, "package std_msgs")
	assert.Contains(t, out, "type Outer struct")
	assert.Regexp(t, `\bCount\s+int32`, out)
	assert.Regexp(t, `\bCountPresent\s+bool`, out)
	assert.Regexp(t, `\bTags\s+\[\]string`, out)
	assert.Regexp(t, `\bChild\s+\*Inner`, out)
	assert.NotRegexp(t, `\bChildPresent\s+bool`, out)
}

func TestEmitFileNilGuardsSingularMessageFieldOnProtoSide(t *testing.T) {
	src, err := EmitFile(sampleSchema())
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, "m.Child != nil")
	assert.Contains(t, out, "field.EmbeddedMessageProtoSize(3, m.Child)")
	assert.Contains(t, out, "field.WriteEmbeddedMessageProto(w, 3, m.Child)")
}

func TestEmitFileSubstitutesNonNilLocalForROSSide(t *testing.T) {
	src, err := EmitFile(sampleSchema())
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, "rosChild := m.Child")
	assert.Contains(t, out, "rosChild = &Inner{}")
}

func TestEmitFileOneofUsesRealGoNameNotPlaceholder(t *testing.T) {
	src, err := EmitFile(sampleSchema())
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, "m.ChoiceDiscriminator = 4")
	assert.Contains(t, out, "m.ChoiceDiscriminator = 5")
	assert.NotContains(t, out, "__ONEOF__")
}

func TestEmitFileRegistersEveryMessageInInit(t *testing.T) {
	src, err := EmitFile(sampleSchema())
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, `message.Register("std_msgs.Inner", message.VTable{New: func() field.Message { return &Inner{} }})`)
	assert.Contains(t, out, `message.Register("std_msgs.Outer", message.VTable{New: func() field.Message { return &Outer{} }})`)
}

func TestEmitFileOmitsAnyImportWhenUnused(t *testing.T) {
	src, err := EmitFile(sampleSchema())
	require.NoError(t, err)
	assert.NotContains(t, string(src), "anypb")
}

// TestEmitFileRepeatedFixedWidthFieldAcceptsPackedAndUnpacked guards
// against ParseProto falling through to a single-element parse for
// repeated fixed32/fixed64-width kinds, which cannot decode the packed
// run WriteProto always emits for them.
func TestEmitFileRepeatedFixedWidthFieldAcceptsPackedAndUnpacked(t *testing.T) {
	s := sampleSchema()
	s.Messages[1].Fields = append(s.Messages[1].Fields, FieldDef{
		GoName: "Samples", ProtoName: "samples", Number: 7,
		Kind: protoreflect.FloatKind, Repeated: true, OneofIndex: -1,
	})
	src, err := EmitFile(s)
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, `"math"`)
	assert.Contains(t, out, "field.ParsePackedFixed32Proto")
	assert.Contains(t, out, "field.ParseFixed32Proto")
	assert.Contains(t, out, "math.Float32frombits")

	switchIdx := strings.Index(out, "case pbcodec.WireLengthDelimited:")
	packedIdx := strings.Index(out, "field.ParsePackedFixed32Proto")
	require.NotEqual(t, -1, switchIdx)
	assert.Greater(t, packedIdx, switchIdx)
}

func TestEmitFileImportsAnyWhenReferenced(t *testing.T) {
	s := sampleSchema()
	s.Messages[1].Fields = append(s.Messages[1].Fields, FieldDef{
		GoName: "Payload", ProtoName: "payload", Number: 6,
		Kind: protoreflect.MessageKind, MessageRef: "google.protobuf.Any", OneofIndex: -1,
	})
	src, err := EmitFile(s)
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, `"github.com/roswire/transcoder/anypb"`)
	assert.Regexp(t, `\bPayload\s+\*anypb\.Message`, out)
}
