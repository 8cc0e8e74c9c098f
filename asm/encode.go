// Copyright © 2025 kala_telo <kala_telo@proton.me>
// SPDX-License-Identifier: MIT

package asm

import (
	"fmt"
	"strings"

	"github.com/kala-telo/pal8/image"
)

// indirectBit and pageBit are the two flag bits of a memory-reference
// instruction word, alongside the 3-bit opcode and the 7-bit page offset.
const (
	indirectBit image.Word = 0o400
	pageBit     image.Word = 0o200
)

// assembleMnemonic consumes one instruction token and encodes it.
//
// For a Default mnemonic, it returns the opcode unconditionally resolved.
// For a MemRef mnemonic it consumes an optional `I` prefix and an address
// expression, applies the indirect/page bits, and enforces the same-page
// constraint: a direct (non-indirect) reference outside page zero must
// target the same page as the instruction itself. If the address
// expression is unresolved, ok is false and cause names the token that
// failed to resolve; it is the caller's responsibility to queue a
// backpatch entry.
func (a *Assembler) assembleMnemonic(lx *lexer, base Base, addr image.Address) (value image.Word, ok bool, cause Token, err error) {
	tok, err := lx.next()
	if err != nil {
		return 0, false, Token{}, err
	}
	if tok.Kind != TokInst {
		return 0, false, Token{}, &SyntaxError{Loc: tok.Loc, Expected: []TokenKind{TokInst}, Got: tok}
	}
	mnem, found := findMnemonic(tok.Lexeme)
	if !found {
		// The lexer only tags a word as TokInst when it matches the
		// mnemonic table, so this can't happen outside of a lexer/table
		// mismatch bug.
		return 0, false, Token{}, &SyntaxError{Loc: tok.Loc, Msg: "internal error: instruction token with no mnemonic table entry"}
	}

	if mnem.Kind == Default {
		return mnem.Opcode, true, Token{}, nil
	}

	// MemRef: optional `I` indirect marker, then an address expression.
	var indirect image.Word
	pk, err := lx.peek()
	if err != nil {
		return 0, false, Token{}, err
	}
	if pk.Kind == TokName && pk.Lexeme == "I" {
		lx.next()
		indirect = indirectBit
	}

	exprStart := lx.pos
	res, err := a.parseExpr(lx, base, addr)
	if err != nil {
		return 0, false, Token{}, err
	}
	if !res.ok {
		return 0, false, res.cause, nil
	}

	var page image.Word
	if res.value >= 0o200 {
		page = pageBit
	}
	if page != 0 && indirect == 0 {
		if res.value/image.PageSize != int(addr)/image.PageSize {
			name := strings.TrimSpace(lx.src[exprStart:lx.pos])
			return 0, false, Token{}, &SemanticError{
				Loc: tok.Loc,
				Msg: fmt.Sprintf("`%s` (%o) is not on the same page as current address (%o)", name, res.value, addr),
			}
		}
	}

	return mnem.Opcode | indirect | page | image.Mask(res.value&0o177), true, Token{}, nil
}
