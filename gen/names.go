package gen

import (
	"strings"
	"sync"
)

// goKeywords are the identifiers a generated field or type name must
// not collide with.
var goKeywords = map[string]bool{
	"break": true, "default": true, "func": true, "interface": true, "select": true,
	"case": true, "defer": true, "go": true, "map": true, "struct": true,
	"chan": true, "else": true, "goto": true, "package": true, "switch": true,
	"const": true, "fallthrough": true, "if": true, "range": true, "type": true,
	"continue": true, "for": true, "import": true, "return": true, "var": true,
}

var (
	renameMu    sync.Mutex
	renameTable = map[string]string{}
)

// SanitizeIdent renames a reserved identifier by appending a trailing
// underscore, stably: the same input always maps to the same output for
// the lifetime of the process.
func SanitizeIdent(name string) string {
	if !goKeywords[name] {
		return name
	}
	renameMu.Lock()
	defer renameMu.Unlock()
	if renamed, ok := renameTable[name]; ok {
		return renamed
	}
	renamed := name + "_"
	renameTable[name] = renamed
	return renamed
}

// FlattenedName joins a message's nesting path with underscores, since
// ROS has no nested-type concept: Outer.Inner becomes Outer_Inner.
func FlattenedName(path []string) string {
	return SanitizeIdent(strings.Join(path, "_"))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// GoFieldName derives the exported Go struct field name for a proto
// field name (snake_case to CapitalCase, keyword-safe).
func GoFieldName(protoFieldName string) string {
	parts := strings.Split(protoFieldName, "_")
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(capitalize(p))
	}
	return SanitizeIdent(b.String())
}
