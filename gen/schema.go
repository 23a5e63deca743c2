package gen

import (
	"google.golang.org/protobuf/compiler/protogen"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// MessageDef is the flattened, Go-ready view of a schema message: the
// same information the teacher's hand-rolled CodegenManifest carried,
// now derived from real descriptors instead of a JSON intermediate.
type MessageDef struct {
	GoName      string // flattened, keyword-safe Go type name
	FullName    string // dotted fully-qualified proto name, registry key
	ROSShortName string // short name used in the companion .msg filename
	Fields      []FieldDef
	Oneofs      []OneofDef
}

// FieldDef describes one field slot, whether it belongs to a oneof or
// not (OneofIndex >= 0 identifies which).
type FieldDef struct {
	GoName     string
	ProtoName  string
	Number     int32
	Kind       protoreflect.Kind
	Repeated   bool
	Packed     bool
	MessageRef string // FullName of the referenced message, for Kind == MessageKind
	EnumRef    string // FullName of the referenced enum, for Kind == EnumKind
	OneofIndex int     // -1 if not part of a oneof
}

// OneofDef describes one oneof group; Members holds indices into the
// owning MessageDef.Fields slice, in declaration order.
type OneofDef struct {
	GoName  string
	Members []int
}

// EnumDef describes a flattened enum type and its constants.
type EnumDef struct {
	GoName   string
	FullName string
	Values   []EnumValueDef
}

// EnumValueDef is one `NAME = number` constant.
type EnumValueDef struct {
	Name   string
	Number int32
}

// Schema is everything the emitter needs for one .proto file: every
// message flattened (nested messages become siblings named
// Outer_Inner) and every enum flattened the same way.
type Schema struct {
	GoPackage string
	Messages  []MessageDef
	Enums     []EnumDef
}

// BuildSchema walks a protogen.File's message and enum tree, flattening
// nested types into siblings.
func BuildSchema(f *protogen.File) *Schema {
	s := &Schema{GoPackage: string(f.GoPackageName)}
	for _, m := range f.Messages {
		walkMessage(s, m, nil)
	}
	for _, e := range f.Enums {
		s.Enums = append(s.Enums, buildEnum(e, nil))
	}
	return s
}

func walkMessage(s *Schema, m *protogen.Message, path []string) {
	if m.Desc.IsMapEntry() {
		// Map fields have no ROS or field-library representation in this
		// system's data model; skip the synthetic *_MapEntry message
		// protoc-gen generates for them.
		return
	}
	namePath := append(append([]string{}, path...), string(m.Desc.Name()))
	goName := FlattenedName(namePath)

	def := MessageDef{
		GoName:       goName,
		FullName:     string(m.Desc.FullName()),
		ROSShortName: goName,
	}

	oneofIndexByProtoOneof := map[protoreflect.Name]int{}
	for _, oo := range m.Oneofs {
		if oo.Desc.IsSynthetic() {
			continue // synthetic oneofs back proto3 `optional` scalars, not real oneofs
		}
		oneofIndexByProtoOneof[oo.Desc.Name()] = len(def.Oneofs)
		def.Oneofs = append(def.Oneofs, OneofDef{GoName: GoFieldName(string(oo.Desc.Name()))})
	}

	for _, f := range m.Fields {
		fd := FieldDef{
			GoName:    GoFieldName(string(f.Desc.Name())),
			ProtoName: string(f.Desc.Name()),
			Number:    int32(f.Desc.Number()),
			Kind:      f.Desc.Kind(),
			Repeated:  f.Desc.IsList(),
			Packed:    f.Desc.IsPacked(),
			OneofIndex: -1,
		}
		if f.Desc.Kind() == protoreflect.MessageKind || f.Desc.Kind() == protoreflect.GroupKind {
			fd.MessageRef = string(f.Desc.Message().FullName())
		}
		if f.Desc.Kind() == protoreflect.EnumKind {
			fd.EnumRef = string(f.Desc.Enum().FullName())
		}
		if oo := f.Desc.ContainingOneof(); oo != nil && !oo.IsSynthetic() {
			idx, ok := oneofIndexByProtoOneof[oo.Name()]
			if ok {
				fd.OneofIndex = idx
			}
		}
		fieldIdx := len(def.Fields)
		def.Fields = append(def.Fields, fd)
		if fd.OneofIndex >= 0 {
			def.Oneofs[fd.OneofIndex].Members = append(def.Oneofs[fd.OneofIndex].Members, fieldIdx)
		}
	}

	s.Messages = append(s.Messages, def)

	for _, nested := range m.Messages {
		walkMessage(s, nested, namePath)
	}
	for _, e := range m.Enums {
		s.Enums = append(s.Enums, buildEnum(e, namePath))
	}
}

func buildEnum(e *protogen.Enum, path []string) EnumDef {
	namePath := append(append([]string{}, path...), string(e.Desc.Name()))
	def := EnumDef{
		GoName:   FlattenedName(namePath),
		FullName: string(e.Desc.FullName()),
	}
	for _, v := range e.Values {
		def.Values = append(def.Values, EnumValueDef{
			Name:   string(v.Desc.Name()),
			Number: int32(v.Desc.Number()),
		})
	}
	return def
}
