// Copyright © 2025 kala_telo <kala_telo@proton.me>
// SPDX-License-Identifier: MIT

package asm

import "github.com/kala-telo/pal8/image"

// backpatchEntry is a snapshot sufficient to resume assembly of a single
// deferred statement later: the token that caused the deferral, the
// address the statement's word belongs at, a value-copy of the lexer
// positioned at the start of the statement, and the Base in effect at that
// point. Nothing here is shared with the live lexer after the snapshot is
// taken — lexer is a plain value, not a pointer.
type backpatchEntry struct {
	cause Token
	addr  image.Address
	lexer lexer
	base  Base
}

// enqueue appends a deferred statement to the backpatch queue.
func (a *Assembler) enqueue(e backpatchEntry) {
	a.backpatch = append(a.backpatch, e)
}
