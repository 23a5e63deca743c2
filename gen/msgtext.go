package gen

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// rosTypeToken names the field type token used in a .msg line for a
// scalar kind, independent of the Go type chosen for the struct field.
func rosTypeToken(k protoreflect.Kind) string {
	switch k {
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind, protoreflect.EnumKind:
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
		return "uint8"
	default:
		return "int32"
	}
}

// MessageText renders one message's companion .msg text, per the
// field-per-line convention: "<ros_type> <name>", repeated fields as
// "<ros_type>[] <name>", and a oneof as its discriminator plus each
// member in declaration order (message-typed members as a zero-or-one
// array). Enum constants are rendered separately, by EnumText.
func MessageText(s *Schema, m MessageDef) string {
	var b strings.Builder
	for i, f := range m.Fields {
		if f.OneofIndex >= 0 {
			if isFirstOneofMember(m, i) {
				writeOneofLines(&b, s, m, m.Oneofs[f.OneofIndex])
			}
			continue
		}
		writeFieldLine(&b, s, f, false)
	}
	return b.String()
}

// writeOneofLines renders a oneof's discriminator followed by each
// member, in declaration order, at the position MessageText encounters
// the oneof's first member — matching the positional .msg layout a
// schema with the same field order would otherwise require by hand.
func writeOneofLines(b *strings.Builder, s *Schema, m MessageDef, oo OneofDef) {
	fmt.Fprintf(b, "int32 %s_discriminator\n", toSnake(oo.GoName))
	for _, idx := range oo.Members {
		writeFieldLine(b, s, m.Fields[idx], true)
	}
}

// writeFieldLine renders one field's .msg line. inOneof wraps a
// message-typed member as a zero-or-one array, matching the wire
// convention oneof.go implements for the same shape.
func writeFieldLine(b *strings.Builder, s *Schema, f FieldDef, inOneof bool) {
	typeTok := rosTypeToken(f.Kind)
	if f.MessageRef != "" {
		typeTok = rosShortNameFor(s, f.MessageRef)
	}
	array := f.Repeated || f.Kind == protoreflect.BytesKind || (inOneof && f.MessageRef != "")
	if array {
		fmt.Fprintf(b, "%s[] %s\n", typeTok, f.ProtoName)
		return
	}
	fmt.Fprintf(b, "%s %s\n", typeTok, f.ProtoName)
}

func rosShortNameFor(s *Schema, fullName string) string {
	if fullName == "google.protobuf.Any" {
		return "Any"
	}
	for _, m := range s.Messages {
		if m.FullName == fullName {
			return m.ROSShortName
		}
	}
	return lastSegment(fullName)
}

// EnumText renders an enum's constant block: one "int32
// <ENUM>_<VALUE> = <number>" line per value.
func EnumText(e EnumDef) string {
	var b strings.Builder
	for _, v := range e.Values {
		fmt.Fprintf(&b, "int32 %s_%s = %d\n", e.GoName, v.Name, v.Number)
	}
	return b.String()
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		if r >= 'A' && r <= 'Z' {
			b.WriteByte(byte(r - 'A' + 'a'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
