// Package message implements the message aggregator: the per-message
// populated-flag lifecycle every generated type embeds, and the
// process-wide name→factory registry ("the multiplexer") that resolves
// a google.protobuf.Any payload's concrete type at parse time.
package message

import "github.com/roswire/transcoder/txerr"

// Base tracks the populated flag shared by every generated message
// type. A message instance is created empty; exactly one parse call may
// populate it. Embed Base and call Guard at the top of ParseProto and
// ParseROS, then MarkPopulated once the parse succeeds.
type Base struct {
	populated bool
}

// Populated reports whether a parse has already succeeded on this
// instance.
func (b *Base) Populated() bool { return b.populated }

// MarkPopulated records that a parse has succeeded. Call exactly once,
// after the parse body completes without error.
func (b *Base) MarkPopulated() { b.populated = true }

// Guard returns AlreadyPopulated if a parse has already run on this
// instance, nil otherwise. Generated ParseProto/ParseROS methods call
// this before doing any work.
func (b *Base) Guard() error {
	if b.populated {
		return txerr.ErrAlreadyPopulated
	}
	return nil
}
