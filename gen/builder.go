// Package gen implements the schema-driven emitter: given Protobuf
// message and enum descriptors, it produces a Go source file containing
// message-aggregator instantiations plus the companion ROS .msg text
// those messages describe, ready to be zip-bundled by bundle.go.
package gen

import (
	"bytes"
	"fmt"
	"go/format"
)

// CodeBuilder accumulates generated Go source with explicit indentation
// tracking, gofmt-ing the result on Bytes. Mirrors the code-generation
// style used to emit the message types in this repository by hand.
type CodeBuilder struct {
	buf    bytes.Buffer
	indent int
}

// P writes one formatted, newline-terminated, indented line.
func (b *CodeBuilder) P(format string, args ...interface{}) {
	for i := 0; i < b.indent; i++ {
		b.buf.WriteString("\t")
	}
	fmt.Fprintf(&b.buf, format, args...)
	b.buf.WriteString("\n")
}

// In increases the indentation level for subsequent P calls.
func (b *CodeBuilder) In() { b.indent++ }

// Out decreases the indentation level for subsequent P calls.
func (b *CodeBuilder) Out() { b.indent-- }

// Bytes returns the accumulated source, gofmt'd.
func (b *CodeBuilder) Bytes() ([]byte, error) {
	return format.Source(b.buf.Bytes())
}

// Raw returns the accumulated source without formatting, for callers
// that want to inspect it before a failed format.Source call.
func (b *CodeBuilder) Raw() []byte { return b.buf.Bytes() }
