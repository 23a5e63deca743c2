package gen

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// goScalarType maps a scalar Kind to the Go type a generated struct
// field holds it in.
func goScalarType(k protoreflect.Kind) string {
	switch k {
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		return "int32"
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return "int64"
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return "uint32"
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return "uint64"
	case protoreflect.FloatKind:
		return "float32"
	case protoreflect.DoubleKind:
		return "float64"
	case protoreflect.BoolKind:
		return "bool"
	case protoreflect.StringKind:
		return "string"
	case protoreflect.BytesKind:
		return "[]byte"
	case protoreflect.EnumKind:
		return "int32"
	default:
		return "interface{}"
	}
}

// EmitFile renders the Go source for every message in s, followed by an
// init that registers each type with the message aggregator.
func EmitFile(s *Schema) ([]byte, error) {
	g := &CodeBuilder{}
	g.P("// Code generated by protoc-gen-transcoder. DO NOT EDIT.")
	g.P("package %s", s.GoPackage)
	g.P("")
	g.P("import (")
	g.In()
	if usesRepeatedFloatOrDouble(s) {
		g.P(`"math"`)
		g.P("")
	}
	g.P(`"github.com/roswire/transcoder/field"`)
	g.P(`"github.com/roswire/transcoder/message"`)
	g.P(`"github.com/roswire/transcoder/pbcodec"`)
	g.P(`"github.com/roswire/transcoder/roscodec"`)
	if usesAny(s) {
		g.P(`"github.com/roswire/transcoder/anypb"`)
	}
	g.Out()
	g.P(")")
	g.P("")

	for _, e := range s.Enums {
		emitEnum(g, e)
	}
	for _, m := range s.Messages {
		emitMessage(g, s, m)
	}

	g.P("func init() {")
	g.In()
	for _, m := range s.Messages {
		g.P("message.Register(%q, message.VTable{New: func() field.Message { return &%s{} }})", m.FullName, m.GoName)
	}
	g.Out()
	g.P("}")

	return g.Bytes()
}

func emitEnum(g *CodeBuilder, e EnumDef) {
	g.P("type %s int32", e.GoName)
	g.P("")
	g.P("const (")
	g.In()
	for _, v := range e.Values {
		g.P("%s_%s %s = %d", e.GoName, v.Name, e.GoName, v.Number)
	}
	g.Out()
	g.P(")")
	g.P("")
}

// resolveMessageGoType returns the Go type name a MessageRef should be
// emitted as: google.protobuf.Any maps onto the hand-written anypb
// package rather than a generated type, every other reference resolves
// against the schema's own flattened names.
func resolveMessageGoType(s *Schema, fullName string) string {
	if fullName == "google.protobuf.Any" {
		return "anypb.Message"
	}
	for _, m := range s.Messages {
		if m.FullName == fullName {
			return m.GoName
		}
	}
	return lastSegment(fullName)
}

func lastSegment(fullName string) string {
	last := fullName
	for i := len(fullName) - 1; i >= 0; i-- {
		if fullName[i] == '.' {
			last = fullName[i+1:]
			break
		}
	}
	return last
}

func usesAny(s *Schema) bool {
	for _, m := range s.Messages {
		for _, f := range m.Fields {
			if f.MessageRef == "google.protobuf.Any" {
				return true
			}
		}
	}
	return false
}

// usesRepeatedFloatOrDouble reports whether any message declares a
// repeated float or double field — the only shape whose generated
// ParseProto needs math.Float32frombits/Float64frombits to recover a
// packed run's raw bit pattern.
func usesRepeatedFloatOrDouble(s *Schema) bool {
	for _, m := range s.Messages {
		for _, f := range m.Fields {
			if f.Repeated && (f.Kind == protoreflect.FloatKind || f.Kind == protoreflect.DoubleKind) {
				return true
			}
		}
	}
	return false
}

func fieldGoType(s *Schema, f FieldDef) string {
	base := ""
	if f.MessageRef != "" {
		base = "*" + resolveMessageGoType(s, f.MessageRef)
	} else {
		base = goScalarType(f.Kind)
	}
	if f.Repeated {
		return "[]" + base
	}
	return base
}

// isFirstOneofMember reports whether the field at fieldIdx is the first
// declared member of its oneof — the position a oneof group occupies in
// declaration order, per the schema's own field ordering. Every emitter
// below walks m.Fields once, in order, and expands a oneof's full
// discriminator-plus-members shape exactly at that position instead of
// emitting every oneof after every ordinary field: ROS layout is
// strictly positional, so a field declared after a oneof must still
// land after that oneof's bytes, not before them.
func isFirstOneofMember(m MessageDef, fieldIdx int) bool {
	f := m.Fields[fieldIdx]
	if f.OneofIndex < 0 || f.OneofIndex >= len(m.Oneofs) {
		return false
	}
	members := m.Oneofs[f.OneofIndex].Members
	return len(members) > 0 && members[0] == fieldIdx
}

func emitMessage(g *CodeBuilder, s *Schema, m MessageDef) {
	g.P("type %s struct {", m.GoName)
	g.In()
	g.P("message.Base")
	for i, f := range m.Fields {
		if f.OneofIndex >= 0 {
			if isFirstOneofMember(m, i) {
				emitOneofStructFields(g, s, m, m.Oneofs[f.OneofIndex])
			}
			continue
		}
		g.P("%s %s", f.GoName, fieldGoType(s, f))
		if !f.Repeated && f.MessageRef == "" && needsPresenceBit(f.Kind) {
			g.P("%sPresent bool", f.GoName)
		}
	}
	g.Out()
	g.P("}")
	g.P("")

	emitProtoSize(g, s, m)
	emitWriteProto(g, s, m)
	emitParseProto(g, s, m)
	emitROSSize(g, s, m)
	emitWriteROS(g, s, m)
	emitParseROS(g, s, m)
}

func emitOneofStructFields(g *CodeBuilder, s *Schema, m MessageDef, oo OneofDef) {
	g.P("%sDiscriminator int32", oo.GoName)
	for _, idx := range oo.Members {
		f := m.Fields[idx]
		g.P("%s %s", f.GoName, fieldGoType(s, f))
	}
}

func needsPresenceBit(k protoreflect.Kind) bool {
	switch k {
	case protoreflect.StringKind, protoreflect.BytesKind:
		return false
	default:
		return true
	}
}

func isVarint(k protoreflect.Kind) bool {
	switch k {
	case protoreflect.Int32Kind, protoreflect.Int64Kind, protoreflect.Uint32Kind, protoreflect.Uint64Kind,
		protoreflect.BoolKind, protoreflect.EnumKind:
		return true
	}
	return false
}

func isZigZag(k protoreflect.Kind) bool {
	return k == protoreflect.Sint32Kind || k == protoreflect.Sint64Kind
}

func isFixed32(k protoreflect.Kind) bool {
	return k == protoreflect.Fixed32Kind || k == protoreflect.Sfixed32Kind || k == protoreflect.FloatKind
}

func isFixed64(k protoreflect.Kind) bool {
	return k == protoreflect.Fixed64Kind || k == protoreflect.Sfixed64Kind || k == protoreflect.DoubleKind
}

func isWide(k protoreflect.Kind) bool {
	switch k {
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Uint64Kind,
		protoreflect.Fixed64Kind, protoreflect.Sfixed64Kind, protoreflect.DoubleKind:
		return true
	}
	return false
}

// ---- ProtoSize ----

func emitProtoSize(g *CodeBuilder, s *Schema, m MessageDef) {
	g.P("func (m *%s) ProtoSize() int {", m.GoName)
	g.In()
	g.P("size := 0")
	for i, f := range m.Fields {
		if f.OneofIndex >= 0 {
			if isFirstOneofMember(m, i) {
				emitOneofProtoSize(g, m, m.Oneofs[f.OneofIndex])
			}
			continue
		}
		emitFieldProtoSizeAdd(g, f)
	}
	g.P("return size")
	g.Out()
	g.P("}")
	g.P("")
}

func emitOneofProtoSize(g *CodeBuilder, m MessageDef, oo OneofDef) {
	g.P("switch m.%sDiscriminator {", oo.GoName)
	g.In()
	for _, idx := range oo.Members {
		f := m.Fields[idx]
		g.P("case %d:", f.Number)
		g.In()
		g.P("size += %s", protoSizeExprForced(f))
		g.Out()
	}
	g.Out()
	g.P("}")
}

func emitFieldProtoSizeAdd(g *CodeBuilder, f FieldDef) {
	if f.MessageRef != "" {
		if f.Repeated {
			g.P("size += field.RepeatedMessageProtoSize(%d, field.ToProtoMessageSlice(m.%s))", f.Number, f.GoName)
		} else {
			g.P("if m.%s != nil { size += field.EmbeddedMessageProtoSize(%d, m.%s) }", f.GoName, f.Number, f.GoName)
		}
		return
	}
	switch {
	case f.Kind == protoreflect.StringKind || f.Kind == protoreflect.BytesKind:
		if f.Repeated {
			g.P("size += field.RepeatedStringProtoSize(%d, field.ToByteSlices(m.%s))", f.Number, f.GoName)
		} else {
			g.P("size += field.StringProtoSize(%d, []byte(m.%s))", f.Number, f.GoName)
		}
	case f.Repeated && (isVarint(f.Kind) || isZigZag(f.Kind)):
		if f.Packed {
			g.P("size += %s", packedProtoSizeExpr(f))
		} else if isZigZag(f.Kind) {
			g.P("size += field.UnpackedVarintProtoSize(%d, field.ZigZagToUint64Slice(m.%s))", f.Number, f.GoName)
		} else {
			g.P("size += field.UnpackedVarintProtoSize(%d, field.ToUint64Slice(m.%s))", f.Number, f.GoName)
		}
	case f.Repeated && isFixed32(f.Kind):
		g.P("size += field.PackedFixed32ProtoSize(%d, len(m.%s))", f.Number, f.GoName)
	case f.Repeated && isFixed64(f.Kind):
		g.P("size += field.PackedFixed64ProtoSize(%d, len(m.%s))", f.Number, f.GoName)
	default:
		g.P("size += %s", protoSizeExpr(f))
	}
}

func packedProtoSizeExpr(f FieldDef) string {
	if isZigZag(f.Kind) {
		return fmt.Sprintf("field.PackedVarintProtoSize(%d, field.ZigZagToUint64Slice(m.%s))", f.Number, f.GoName)
	}
	return fmt.Sprintf("field.PackedVarintProtoSize(%d, field.ToUint64Slice(m.%s))", f.Number, f.GoName)
}

func protoSizeExpr(f FieldDef) string {
	presence := fmt.Sprintf("m.%sPresent", f.GoName)
	switch {
	case isZigZag(f.Kind):
		return fmt.Sprintf("field.ZigZagProtoSize(%d, %s, int64(m.%s))", f.Number, presence, f.GoName)
	case isFixed32(f.Kind):
		return fmt.Sprintf("field.Fixed32ProtoSize(%d, %s)", f.Number, presence)
	case isFixed64(f.Kind):
		return fmt.Sprintf("field.Fixed64ProtoSize(%d, %s)", f.Number, presence)
	case f.Kind == protoreflect.BoolKind:
		return fmt.Sprintf("field.BoolProtoSize(%d, %s)", f.Number, presence)
	default:
		return fmt.Sprintf("field.PlainInt32ProtoSize(%d, %s, int64(m.%s))", f.Number, presence, f.GoName)
	}
}

func protoSizeExprForced(f FieldDef) string {
	if f.MessageRef != "" {
		return fmt.Sprintf("field.EmbeddedMessageProtoSize(%d, m.%s)", f.Number, f.GoName)
	}
	if f.Kind == protoreflect.StringKind || f.Kind == protoreflect.BytesKind {
		return fmt.Sprintf("field.StringProtoSize(%d, []byte(m.%s))", f.Number, f.GoName)
	}
	switch {
	case isZigZag(f.Kind):
		return fmt.Sprintf("field.ZigZagProtoSize(%d, true, int64(m.%s))", f.Number, f.GoName)
	case isFixed32(f.Kind):
		return fmt.Sprintf("field.Fixed32ProtoSize(%d, true)", f.Number)
	case isFixed64(f.Kind):
		return fmt.Sprintf("field.Fixed64ProtoSize(%d, true)", f.Number)
	default:
		return fmt.Sprintf("field.PlainInt32ProtoSize(%d, true, int64(m.%s))", f.Number, f.GoName)
	}
}

// ---- WriteProto ----

func emitWriteProto(g *CodeBuilder, s *Schema, m MessageDef) {
	g.P("func (m *%s) WriteProto(w *pbcodec.Writer) {", m.GoName)
	g.In()
	for i, f := range m.Fields {
		if f.OneofIndex >= 0 {
			if isFirstOneofMember(m, i) {
				emitOneofWriteProto(g, m, m.Oneofs[f.OneofIndex])
			}
			continue
		}
		emitFieldWriteProto(g, f)
	}
	g.Out()
	g.P("}")
	g.P("")
}

func emitOneofWriteProto(g *CodeBuilder, m MessageDef, oo OneofDef) {
	g.P("switch m.%sDiscriminator {", oo.GoName)
	g.In()
	for _, idx := range oo.Members {
		f := m.Fields[idx]
		g.P("case %d:", f.Number)
		g.In()
		g.P("%s", writeProtoStmtForced(f))
		g.Out()
	}
	g.Out()
	g.P("}")
}

func emitFieldWriteProto(g *CodeBuilder, f FieldDef) {
	if f.MessageRef != "" {
		if f.Repeated {
			g.P("field.WriteRepeatedMessageProto(w, %d, field.ToProtoMessageSlice(m.%s))", f.Number, f.GoName)
		} else {
			g.P("if m.%s != nil { field.WriteEmbeddedMessageProto(w, %d, m.%s) }", f.GoName, f.Number, f.GoName)
		}
		return
	}
	switch {
	case f.Kind == protoreflect.StringKind || f.Kind == protoreflect.BytesKind:
		if f.Repeated {
			g.P("field.WriteRepeatedStringProto(w, %d, field.ToByteSlices(m.%s))", f.Number, f.GoName)
		} else {
			g.P("field.WriteStringProto(w, %d, []byte(m.%s))", f.Number, f.GoName)
		}
	case f.Repeated && (isVarint(f.Kind) || isZigZag(f.Kind)):
		if isZigZag(f.Kind) {
			if f.Packed {
				g.P("field.WritePackedVarintProto(w, %d, field.ZigZagToUint64Slice(m.%s))", f.Number, f.GoName)
			} else {
				g.P("field.WriteUnpackedVarintProto(w, %d, field.ZigZagToUint64Slice(m.%s))", f.Number, f.GoName)
			}
		} else {
			if f.Packed {
				g.P("field.WritePackedVarintProto(w, %d, field.ToUint64Slice(m.%s))", f.Number, f.GoName)
			} else {
				g.P("field.WriteUnpackedVarintProto(w, %d, field.ToUint64Slice(m.%s))", f.Number, f.GoName)
			}
		}
	case f.Repeated && f.Kind == protoreflect.FloatKind:
		g.P("field.WritePackedFixed32Proto(w, %d, field.Float32SliceToFixed32(m.%s))", f.Number, f.GoName)
	case f.Repeated && f.Kind == protoreflect.DoubleKind:
		g.P("field.WritePackedFixed64Proto(w, %d, field.Float64SliceToFixed64(m.%s))", f.Number, f.GoName)
	case f.Repeated && isFixed32(f.Kind):
		g.P("field.WritePackedFixed32Proto(w, %d, field.ToFixed32Slice(m.%s))", f.Number, f.GoName)
	case f.Repeated && isFixed64(f.Kind):
		g.P("field.WritePackedFixed64Proto(w, %d, field.ToFixed64Slice(m.%s))", f.Number, f.GoName)
	default:
		g.P("%s", writeProtoStmt(f))
	}
}

func writeProtoStmt(f FieldDef) string {
	presence := fmt.Sprintf("m.%sPresent", f.GoName)
	switch {
	case isZigZag(f.Kind):
		return fmt.Sprintf("field.WriteZigZagProto(w, %d, %s, int64(m.%s))", f.Number, presence, f.GoName)
	case f.Kind == protoreflect.FloatKind:
		return fmt.Sprintf("field.WriteFloatProto(w, %d, %s, m.%s)", f.Number, presence, f.GoName)
	case isFixed32(f.Kind):
		return fmt.Sprintf("field.WriteFixed32Proto(w, %d, %s, uint32(m.%s))", f.Number, presence, f.GoName)
	case f.Kind == protoreflect.DoubleKind:
		return fmt.Sprintf("field.WriteDoubleProto(w, %d, %s, m.%s)", f.Number, presence, f.GoName)
	case isFixed64(f.Kind):
		return fmt.Sprintf("field.WriteFixed64Proto(w, %d, %s, uint64(m.%s))", f.Number, presence, f.GoName)
	case f.Kind == protoreflect.BoolKind:
		return fmt.Sprintf("field.WriteBoolProto(w, %d, %s, m.%s)", f.Number, presence, f.GoName)
	default:
		return fmt.Sprintf("field.WritePlainInt32Proto(w, %d, %s, int64(m.%s))", f.Number, presence, f.GoName)
	}
}

func writeProtoStmtForced(f FieldDef) string {
	if f.MessageRef != "" {
		return fmt.Sprintf("field.WriteEmbeddedMessageProto(w, %d, m.%s)", f.Number, f.GoName)
	}
	if f.Kind == protoreflect.StringKind || f.Kind == protoreflect.BytesKind {
		return fmt.Sprintf("field.WriteStringProto(w, %d, []byte(m.%s))", f.Number, f.GoName)
	}
	switch {
	case isZigZag(f.Kind):
		return fmt.Sprintf("field.WriteZigZagProto(w, %d, true, int64(m.%s))", f.Number, f.GoName)
	case f.Kind == protoreflect.FloatKind:
		return fmt.Sprintf("field.WriteFloatProto(w, %d, true, m.%s)", f.Number, f.GoName)
	case f.Kind == protoreflect.DoubleKind:
		return fmt.Sprintf("field.WriteDoubleProto(w, %d, true, m.%s)", f.Number, f.GoName)
	case isFixed32(f.Kind):
		return fmt.Sprintf("field.WriteFixed32Proto(w, %d, true, uint32(m.%s))", f.Number, f.GoName)
	case isFixed64(f.Kind):
		return fmt.Sprintf("field.WriteFixed64Proto(w, %d, true, uint64(m.%s))", f.Number, f.GoName)
	default:
		return fmt.Sprintf("field.WritePlainInt32Proto(w, %d, true, int64(m.%s))", f.Number, f.GoName)
	}
}

// ---- ParseProto ----

func emitParseProto(g *CodeBuilder, s *Schema, m MessageDef) {
	g.P("func (m *%s) ParseProto(r *pbcodec.Reader) error {", m.GoName)
	g.In()
	g.P("if err := m.Guard(); err != nil { return err }")
	g.P("for !r.Eof() {")
	g.In()
	g.P("fn, wt, err := r.Tag()")
	g.P("if err != nil { return err }")
	g.P("switch fn {")
	g.In()
	for _, f := range m.Fields {
		g.P("case %d:", f.Number)
		g.In()
		emitFieldParseProto(g, s, m, f)
		g.Out()
	}
	g.P("default:")
	g.In()
	g.P("if err := r.Skip(wt); err != nil { return err }")
	g.Out()
	g.Out()
	g.P("}")
	g.Out()
	g.P("}")
	g.P("m.MarkPopulated()")
	g.P("return nil")
	g.Out()
	g.P("}")
	g.P("")
}

func oneofGoNameFor(m MessageDef, f FieldDef) string {
	if f.OneofIndex < 0 || f.OneofIndex >= len(m.Oneofs) {
		return ""
	}
	return m.Oneofs[f.OneofIndex].GoName
}

func emitFieldParseProto(g *CodeBuilder, s *Schema, m MessageDef, f FieldDef) {
	ooName := oneofGoNameFor(m, f)
	if f.MessageRef != "" {
		goType := resolveMessageGoType(s, f.MessageRef)
		if f.Repeated {
			g.P("e := &%s{}", goType)
			g.P("if err := field.ParseEmbeddedMessageProto(r, e); err != nil { return err }")
			g.P("m.%s = append(m.%s, e)", f.GoName, f.GoName)
		} else {
			g.P("inner := &%s{}", goType)
			g.P("if err := field.ParseEmbeddedMessageProto(r, inner); err != nil { return err }")
			g.P("m.%s = inner", f.GoName)
		}
		if ooName != "" {
			g.P("m.%sDiscriminator = %d", ooName, f.Number)
		}
		return
	}
	switch {
	case f.Kind == protoreflect.StringKind || f.Kind == protoreflect.BytesKind:
		g.P("raw, err := field.ParseStringProto(r)")
		g.P("if err != nil { return err }")
		target := "string(raw)"
		if f.Kind == protoreflect.BytesKind {
			target = "raw"
		}
		if f.Repeated {
			g.P("m.%s = append(m.%s, %s)", f.GoName, f.GoName, target)
		} else {
			g.P("m.%s = %s", f.GoName, target)
		}
	case f.Repeated && (isVarint(f.Kind) || isZigZag(f.Kind)):
		emitRepeatedVarintParse(g, f)
	case f.Repeated && (isFixed32(f.Kind) || isFixed64(f.Kind)):
		emitRepeatedFixedParse(g, f)
	default:
		emitScalarParse(g, f)
	}
	if ooName != "" {
		g.P("m.%sDiscriminator = %d", ooName, f.Number)
	} else if !f.Repeated && f.Kind != protoreflect.StringKind && f.Kind != protoreflect.BytesKind {
		g.P("m.%sPresent = field.ForcePresence()", f.GoName)
	}
}

func emitRepeatedVarintParse(g *CodeBuilder, f FieldDef) {
	goType := goScalarType(f.Kind)
	g.P("switch wt {")
	g.In()
	g.P("case pbcodec.WireLengthDelimited:")
	g.In()
	g.P("vals, err := field.ParsePackedVarintProto(r, nil)")
	g.P("if err != nil { return err }")
	if isZigZag(f.Kind) {
		g.P("for _, v := range vals { m.%s = append(m.%s, %s(pbcodec.ZigZagDecode64(v))) }", f.GoName, f.GoName, goType)
	} else {
		g.P("for _, v := range vals { m.%s = append(m.%s, %s(v)) }", f.GoName, f.GoName, goType)
	}
	g.Out()
	g.P("default:")
	g.In()
	g.P("v, err := field.ParseUnpackedVarintElementProto(r)")
	g.P("if err != nil { return err }")
	if isZigZag(f.Kind) {
		g.P("m.%s = append(m.%s, %s(pbcodec.ZigZagDecode64(v)))", f.GoName, f.GoName, goType)
	} else {
		g.P("m.%s = append(m.%s, %s(v))", f.GoName, f.GoName, goType)
	}
	g.Out()
	g.Out()
	g.P("}")
}

// emitRepeatedFixedParse mirrors emitRepeatedVarintParse for the
// fixed-width kinds: a length-delimited tag holds a packed run (the
// only form WriteProto emits for these kinds, whatever the declared
// packing), any other wire type holds one
// unpacked element, and a decoder must accept either.
func emitRepeatedFixedParse(g *CodeBuilder, f FieldDef) {
	parsePacked, parseOne := "field.ParsePackedFixed32Proto", "field.ParseFixed32Proto"
	castFn := fixed32CastExpr
	if isFixed64(f.Kind) {
		parsePacked, parseOne = "field.ParsePackedFixed64Proto", "field.ParseFixed64Proto"
		castFn = fixed64CastExpr
	}
	g.P("switch wt {")
	g.In()
	g.P("case pbcodec.WireLengthDelimited:")
	g.In()
	g.P("vals, err := %s(r, nil)", parsePacked)
	g.P("if err != nil { return err }")
	g.P("for _, v := range vals { m.%s = append(m.%s, %s) }", f.GoName, f.GoName, castFn(f, "v"))
	g.Out()
	g.P("default:")
	g.In()
	g.P("v, err := %s(r)", parseOne)
	g.P("if err != nil { return err }")
	g.P("m.%s = append(m.%s, %s)", f.GoName, f.GoName, castFn(f, "v"))
	g.Out()
	g.Out()
	g.P("}")
}

// fixed32CastExpr converts the raw uint32 ParseFixed32Proto/
// ParsePackedFixed32Proto return into the field's Go element type.
func fixed32CastExpr(f FieldDef, v string) string {
	if f.Kind == protoreflect.FloatKind {
		return fmt.Sprintf("math.Float32frombits(%s)", v)
	}
	return fmt.Sprintf("%s(%s)", goScalarType(f.Kind), v)
}

// fixed64CastExpr converts the raw uint64 ParseFixed64Proto/
// ParsePackedFixed64Proto return into the field's Go element type.
func fixed64CastExpr(f FieldDef, v string) string {
	if f.Kind == protoreflect.DoubleKind {
		return fmt.Sprintf("math.Float64frombits(%s)", v)
	}
	return fmt.Sprintf("%s(%s)", goScalarType(f.Kind), v)
}

func emitScalarParse(g *CodeBuilder, f FieldDef) {
	goType := goScalarType(f.Kind)
	switch {
	case isZigZag(f.Kind):
		g.P("v, err := field.ParseZigZagProto(r)")
	case f.Kind == protoreflect.FloatKind:
		g.P("v, err := field.ParseFloatProto(r)")
	case isFixed32(f.Kind):
		g.P("v, err := field.ParseFixed32Proto(r)")
	case f.Kind == protoreflect.DoubleKind:
		g.P("v, err := field.ParseDoubleProto(r)")
	case isFixed64(f.Kind):
		g.P("v, err := field.ParseFixed64Proto(r)")
	case f.Kind == protoreflect.BoolKind:
		g.P("v, err := field.ParseBoolProto(r)")
	default:
		g.P("v, err := field.ParsePlainInt32Proto(r)")
	}
	g.P("if err != nil { return err }")
	needsCast := !(f.Kind == protoreflect.FloatKind || f.Kind == protoreflect.DoubleKind || f.Kind == protoreflect.BoolKind)
	assign := "v"
	if needsCast {
		assign = fmt.Sprintf("%s(v)", goType)
	}
	if f.Repeated {
		g.P("m.%s = append(m.%s, %s)", f.GoName, f.GoName, assign)
	} else {
		g.P("m.%s = %s", f.GoName, assign)
	}
}

// ---- ROSSize ----

// rosInnerVarFor names the temporary local holding a non-nil substitute
// for a singular message-typed field's pointer, used wherever ROS must
// emit every declared field unconditionally even when Protobuf presence
// left the pointer nil.
func rosInnerVarFor(f FieldDef) string { return "ros" + f.GoName }

func emitROSSize(g *CodeBuilder, s *Schema, m MessageDef) {
	g.P("func (m *%s) ROSSize() int {", m.GoName)
	g.In()
	emitROSInnerLocals(g, s, m)
	g.P("size := 0")
	for i, f := range m.Fields {
		if f.OneofIndex >= 0 {
			if isFirstOneofMember(m, i) {
				emitOneofROSSize(g, m, m.Oneofs[f.OneofIndex])
			}
			continue
		}
		emitFieldROSSizeAdd(g, f)
	}
	g.P("return size")
	g.Out()
	g.P("}")
	g.P("")
}

func emitOneofROSSize(g *CodeBuilder, m MessageDef, oo OneofDef) {
	g.P("size += field.OneofDiscriminatorROSSize")
	for _, idx := range oo.Members {
		f := m.Fields[idx]
		g.P("size += %s", rosSizeTermForOneofMember(oo, f))
	}
}

// emitROSInnerLocals declares, once per function, the nil-substituted
// local for every singular non-oneof message field, so ROSSize/WriteROS
// share the same substitution without repeating the nil check per call.
func emitROSInnerLocals(g *CodeBuilder, s *Schema, m MessageDef) {
	for _, f := range m.Fields {
		if f.MessageRef == "" || f.Repeated {
			continue
		}
		goType := resolveMessageGoType(s, f.MessageRef)
		g.P("%s := m.%s", rosInnerVarFor(f), f.GoName)
		g.P("if %s == nil { %s = &%s{} }", rosInnerVarFor(f), rosInnerVarFor(f), goType)
	}
}

func rosSizeTermForOneofMember(oo OneofDef, f FieldDef) string {
	if f.MessageRef != "" {
		return fmt.Sprintf("field.OneofMemberMessageROSSize(m.%sDiscriminator == %d, %s)", oo.GoName, f.Number, rosInnerVarFor(f))
	}
	if f.Kind == protoreflect.StringKind || f.Kind == protoreflect.BytesKind {
		return fmt.Sprintf("field.StringROSSize([]byte(m.%s))", f.GoName)
	}
	return rosFixedSizeTerm(f.Kind)
}

func rosFixedSizeTerm(k protoreflect.Kind) string {
	if isWide(k) {
		return "field.Fixed64ROSSize()"
	}
	if k == protoreflect.BoolKind {
		return "field.BoolROSSize()"
	}
	return "field.Fixed32ROSSize()"
}

func emitFieldROSSizeAdd(g *CodeBuilder, f FieldDef) {
	if f.MessageRef != "" {
		if f.Repeated {
			g.P("size += field.RepeatedMessageROSSize(field.ToROSMessageSlice(m.%s))", f.GoName)
		} else {
			g.P("size += field.EmbeddedMessageROSSize(%s)", rosInnerVarFor(f))
		}
		return
	}
	if f.Kind == protoreflect.StringKind || f.Kind == protoreflect.BytesKind {
		if f.Repeated {
			g.P("size += 4")
			g.P("for _, e := range m.%s { size += field.StringROSSize([]byte(e)) }", f.GoName)
		} else {
			g.P("size += field.StringROSSize([]byte(m.%s))", f.GoName)
		}
		return
	}
	if f.Repeated {
		g.P("size += field.SequenceROSSize(len(m.%s), %s)", f.GoName, rosElemSize(f.Kind))
		return
	}
	g.P("size += %s", rosFixedSizeTerm(f.Kind))
}

func rosElemSize(k protoreflect.Kind) string {
	if isWide(k) {
		return "8"
	}
	if k == protoreflect.BoolKind {
		return "1"
	}
	return "4"
}

// ---- WriteROS ----

func emitWriteROS(g *CodeBuilder, s *Schema, m MessageDef) {
	g.P("func (m *%s) WriteROS(w *roscodec.Writer) error {", m.GoName)
	g.In()
	emitROSInnerLocals(g, s, m)
	for i, f := range m.Fields {
		if f.OneofIndex >= 0 {
			if isFirstOneofMember(m, i) {
				emitOneofWriteROS(g, s, m, m.Oneofs[f.OneofIndex])
			}
			continue
		}
		emitFieldWriteROS(g, f)
	}
	g.P("return nil")
	g.Out()
	g.P("}")
	g.P("")
}

func emitOneofWriteROS(g *CodeBuilder, s *Schema, m MessageDef, oo OneofDef) {
	g.P("if err := field.WriteOneofDiscriminatorROS(w, m.%sDiscriminator); err != nil { return err }", oo.GoName)
	for _, idx := range oo.Members {
		f := m.Fields[idx]
		emitOneofMemberWriteROS(g, s, oo, f)
	}
}

func emitOneofMemberWriteROS(g *CodeBuilder, s *Schema, oo OneofDef, f FieldDef) {
	if f.MessageRef != "" {
		g.P("if err := field.WriteOneofMemberMessageROS(w, m.%sDiscriminator == %d, %s); err != nil { return err }", oo.GoName, f.Number, rosInnerVarFor(f))
		return
	}
	if f.Kind == protoreflect.StringKind || f.Kind == protoreflect.BytesKind {
		g.P("if err := field.WriteStringROS(w, []byte(m.%s)); err != nil { return err }", f.GoName)
		return
	}
	g.P("if err := %s; err != nil { return err }", rosWriteCall(f, false))
}

func rosWriteCall(f FieldDef, indexed bool) string {
	ref := fmt.Sprintf("m.%s", f.GoName)
	if indexed {
		ref = fmt.Sprintf("m.%s[i]", f.GoName)
	}
	switch {
	case f.Kind == protoreflect.BoolKind:
		return fmt.Sprintf("field.WriteBoolROS(w, %s)", ref)
	case f.Kind == protoreflect.FloatKind:
		return fmt.Sprintf("field.WriteFloatROS(w, %s)", ref)
	case f.Kind == protoreflect.DoubleKind:
		return fmt.Sprintf("field.WriteDoubleROS(w, %s)", ref)
	case f.Kind == protoreflect.Int64Kind || f.Kind == protoreflect.Sint64Kind || f.Kind == protoreflect.Sfixed64Kind:
		return fmt.Sprintf("field.WriteInt64ROS(w, int64(%s))", ref)
	case f.Kind == protoreflect.Uint64Kind || f.Kind == protoreflect.Fixed64Kind:
		return fmt.Sprintf("field.WriteUint64ROS(w, uint64(%s))", ref)
	case f.Kind == protoreflect.Uint32Kind || f.Kind == protoreflect.Fixed32Kind:
		return fmt.Sprintf("field.WriteUint32ROS(w, uint32(%s))", ref)
	default:
		return fmt.Sprintf("field.WriteInt32ROS(w, int32(%s))", ref)
	}
}

func emitFieldWriteROS(g *CodeBuilder, f FieldDef) {
	if f.MessageRef != "" {
		if f.Repeated {
			g.P("if err := field.WriteRepeatedMessageROS(w, field.ToROSMessageSlice(m.%s)); err != nil { return err }", f.GoName)
		} else {
			g.P("if err := field.WriteEmbeddedMessageROS(w, %s); err != nil { return err }", rosInnerVarFor(f))
		}
		return
	}
	if f.Kind == protoreflect.StringKind || f.Kind == protoreflect.BytesKind {
		if f.Repeated {
			g.P("if err := w.Count(len(m.%s)); err != nil { return err }", f.GoName)
			g.P("for _, e := range m.%s { if err := field.WriteStringROS(w, []byte(e)); err != nil { return err } }", f.GoName)
		} else {
			g.P("if err := field.WriteStringROS(w, []byte(m.%s)); err != nil { return err }", f.GoName)
		}
		return
	}
	if f.Repeated {
		g.P("if err := field.WriteSequenceHeaderROS(w, len(m.%s)); err != nil { return err }", f.GoName)
		g.P("for i := range m.%s { if err := %s; err != nil { return err } }", f.GoName, rosWriteCall(f, true))
		return
	}
	g.P("if err := %s; err != nil { return err }", rosWriteCall(f, false))
}

// ---- ParseROS ----

func emitParseROS(g *CodeBuilder, s *Schema, m MessageDef) {
	g.P("func (m *%s) ParseROS(r *roscodec.Reader) error {", m.GoName)
	g.In()
	g.P("if err := m.Guard(); err != nil { return err }")
	for i, f := range m.Fields {
		if f.OneofIndex >= 0 {
			if isFirstOneofMember(m, i) {
				emitOneofParseROS(g, s, m, m.Oneofs[f.OneofIndex])
			}
			continue
		}
		emitFieldParseROS(g, s, f)
	}
	g.P("m.MarkPopulated()")
	g.P("return nil")
	g.Out()
	g.P("}")
	g.P("")
}

func emitOneofParseROS(g *CodeBuilder, s *Schema, m MessageDef, oo OneofDef) {
	g.P("disc, err := field.ReadOneofDiscriminatorROS(r)")
	g.P("if err != nil { return err }")
	g.P("m.%sDiscriminator = disc", oo.GoName)
	for _, idx := range oo.Members {
		f := m.Fields[idx]
		emitOneofMemberParseROS(g, s, f)
	}
}

func emitOneofMemberParseROS(g *CodeBuilder, s *Schema, f FieldDef) {
	if f.MessageRef != "" {
		goType := resolveMessageGoType(s, f.MessageRef)
		g.P("%sMember := &%s{}", f.GoName, goType)
		g.P("if present, err := field.ParseOneofMemberMessageROS(r, %sMember); err != nil {", f.GoName)
		g.In()
		g.P("return err")
		g.Out()
		g.P("} else if present {")
		g.In()
		g.P("m.%s = %sMember", f.GoName, f.GoName)
		g.Out()
		g.P("}")
		return
	}
	if f.Kind == protoreflect.StringKind || f.Kind == protoreflect.BytesKind {
		g.P("if raw, err := field.ParseStringROS(r); err != nil { return err } else { m.%s = %s }", f.GoName, stringAssignExpr(f, "raw"))
		return
	}
	g.P("if v, err := %s; err != nil { return err } else { m.%s = %s }", rosParseCall(f), f.GoName, rosParseAssign(f))
}

func stringAssignExpr(f FieldDef, raw string) string {
	if f.Kind == protoreflect.BytesKind {
		return raw
	}
	return fmt.Sprintf("string(%s)", raw)
}

func rosParseCall(f FieldDef) string {
	switch {
	case f.Kind == protoreflect.BoolKind:
		return "field.ParseBoolROS(r)"
	case f.Kind == protoreflect.FloatKind:
		return "field.ParseFloatROS(r)"
	case f.Kind == protoreflect.DoubleKind:
		return "field.ParseDoubleROS(r)"
	case f.Kind == protoreflect.Int64Kind || f.Kind == protoreflect.Sint64Kind || f.Kind == protoreflect.Sfixed64Kind:
		return "field.ParseInt64ROS(r)"
	case f.Kind == protoreflect.Uint64Kind || f.Kind == protoreflect.Fixed64Kind:
		return "field.ParseUint64ROS(r)"
	case f.Kind == protoreflect.Uint32Kind || f.Kind == protoreflect.Fixed32Kind:
		return "field.ParseUint32ROS(r)"
	default:
		return "field.ParseInt32ROS(r)"
	}
}

func rosParseAssign(f FieldDef) string {
	goType := goScalarType(f.Kind)
	if f.Kind == protoreflect.BoolKind || f.Kind == protoreflect.FloatKind || f.Kind == protoreflect.DoubleKind {
		return "v"
	}
	return fmt.Sprintf("%s(v)", goType)
}

func emitFieldParseROS(g *CodeBuilder, s *Schema, f FieldDef) {
	if f.MessageRef != "" {
		goType := resolveMessageGoType(s, f.MessageRef)
		if f.Repeated {
			g.P("if n, err := field.ReadSequenceHeaderROS(r); err != nil {")
			g.In()
			g.P("return err")
			g.Out()
			g.P("} else {")
			g.In()
			g.P("for i := 0; i < n; i++ {")
			g.In()
			g.P("e := &%s{}", goType)
			g.P("if err := e.ParseROS(r); err != nil { return err }")
			g.P("m.%s = append(m.%s, e)", f.GoName, f.GoName)
			g.Out()
			g.P("}")
			g.Out()
			g.P("}")
		} else {
			g.P("inner := &%s{}", goType)
			g.P("if err := inner.ParseROS(r); err != nil { return err }")
			g.P("m.%s = inner", f.GoName)
		}
		return
	}
	if f.Kind == protoreflect.StringKind || f.Kind == protoreflect.BytesKind {
		if f.Repeated {
			g.P("if n, err := r.Count(); err != nil {")
			g.In()
			g.P("return err")
			g.Out()
			g.P("} else {")
			g.In()
			g.P("for i := 0; i < n; i++ {")
			g.In()
			g.P("raw, err := field.ParseStringROS(r)")
			g.P("if err != nil { return err }")
			g.P("m.%s = append(m.%s, %s)", f.GoName, f.GoName, stringAssignExpr(f, "raw"))
			g.Out()
			g.P("}")
			g.Out()
			g.P("}")
		} else {
			g.P("if raw, err := field.ParseStringROS(r); err != nil { return err } else { m.%s = %s }", f.GoName, stringAssignExpr(f, "raw"))
		}
		return
	}
	if f.Repeated {
		goType := goScalarType(f.Kind)
		g.P("if n, err := field.ReadSequenceHeaderROS(r); err != nil {")
		g.In()
		g.P("return err")
		g.Out()
		g.P("} else {")
		g.In()
		g.P("for i := 0; i < n; i++ {")
		g.In()
		g.P("v, err := %s", rosParseCall(f))
		g.P("if err != nil { return err }")
		g.P("m.%s = append(m.%s, %s(v))", f.GoName, f.GoName, goType)
		g.Out()
		g.P("}")
		g.Out()
		g.P("}")
		return
	}
	g.P("if v, err := %s; err != nil {", rosParseCall(f))
	g.In()
	g.P("return err")
	g.Out()
	g.P("} else {")
	g.In()
	g.P("m.%s = %s", f.GoName, rosParseAssign(f))
	g.P("m.%sPresent = field.ForcePresence()", f.GoName)
	g.Out()
	g.P("}")
}
