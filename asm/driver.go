// Copyright © 2025 kala_telo <kala_telo@proton.me>
// SPDX-License-Identifier: MIT

package asm

import (
	"fmt"

	"github.com/kala-telo/pal8/image"
)

// step consumes exactly one top-level construct from lx, dispatching on the
// kind of the next token, and updates base/addr accordingly. It is called
// once per statement during the first sweep, and once per queued entry
// during backpatch replay (each replay call operating on its own
// snapshotted lexer/base/addr).
func (a *Assembler) step(lx *lexer, base *Base, addr *image.Address) error {
	tok, err := lx.peek()
	if err != nil {
		return err
	}

	switch tok.Kind {
	case TokStar:
		return a.stepLocationCounter(lx, base, addr, tok)
	case TokInst:
		return a.stepInstruction(lx, base, addr)
	case TokName:
		return a.stepName(lx, base, addr)
	case TokInt:
		lx.next()
		a.img.Set(*addr, image.Mask(parseInt(tok.Lexeme, *base)))
		*addr++
		return nil
	case TokDot:
		return a.stepDataExpr(lx, base, addr)
	case TokMinus:
		return a.stepNegation(lx, base, addr, tok)
	case TokCharacter:
		lx.next()
		a.img.Set(*addr, image.Word(tok.Lexeme[0]))
		*addr++
		return nil
	case TokNewline:
		lx.next()
		return nil
	case TokEOF:
		return nil
	default:
		lx.next()
		return &SyntaxError{Loc: tok.Loc, Msg: fmt.Sprintf("unexpected %s at statement position", tok.Kind)}
	}
}

// stepLocationCounter handles `*expr`. The location counter cannot be
// deferred: an unresolved or out-of-range target is always a fatal error.
func (a *Assembler) stepLocationCounter(lx *lexer, base *Base, addr *image.Address, star Token) error {
	lx.next()
	res, err := a.parseExpr(lx, *base, *addr)
	if err != nil {
		return err
	}
	if !res.ok {
		return &SyntaxError{Loc: star.Loc, Msg: "location counter target must be fully resolved"}
	}
	if res.value < 0 || res.value >= image.Size {
		return &SyntaxError{Loc: star.Loc, Msg: fmt.Sprintf("location counter value %o is out of range", res.value)}
	}
	*addr = image.Address(res.value)
	return nil
}

// stepInstruction handles a statement beginning with an instruction
// mnemonic: either a "MNEM = expr" redefinition, or one or more
// OR-combined mnemonics terminated by newline/EOF.
func (a *Assembler) stepInstruction(lx *lexer, base *Base, addr *image.Address) error {
	snapshotAddr := *addr
	snapshotBase := *base
	snapshotLexer := *lx

	second, err := lx.peekN(2)
	if err != nil {
		return err
	}
	if second.Kind == TokEq {
		return a.stepMnemonicRedefinition(lx, base, addr, snapshotLexer, snapshotBase, snapshotAddr)
	}

	var word image.Word
	var deferred bool
	var deferCause Token
	for {
		pk, err := lx.peek()
		if err != nil {
			return err
		}
		if pk.Kind == TokNewline || pk.Kind == TokEOF {
			break
		}
		if pk.Kind != TokInst {
			return &SyntaxError{Loc: pk.Loc, Expected: []TokenKind{TokInst}, Got: pk}
		}
		v, ok, cause, err := a.assembleMnemonic(lx, *base, *addr)
		if err != nil {
			return err
		}
		if ok {
			word |= v
		} else if !deferred {
			deferred = true
			deferCause = cause
		}
	}

	if deferred {
		a.enqueue(backpatchEntry{cause: deferCause, addr: snapshotAddr, lexer: snapshotLexer, base: snapshotBase})
	} else {
		a.img.Set(*addr, word)
	}
	*addr++
	return nil
}

// stepMnemonicRedefinition handles "MNEM = expr". A redefinition to the
// mnemonic's own opcode is a harmless, silently-accepted alias; any other
// value is a fatal error.
func (a *Assembler) stepMnemonicRedefinition(lx *lexer, base *Base, addr *image.Address, snapshotLexer lexer, snapshotBase Base, snapshotAddr image.Address) error {
	mnemTok, _ := lx.next()
	lx.next() // consume '='

	mnem, _ := findMnemonic(mnemTok.Lexeme)

	res, err := a.parseExpr(lx, *base, *addr)
	if err != nil {
		return err
	}
	if !res.ok {
		a.enqueue(backpatchEntry{cause: res.cause, addr: snapshotAddr, lexer: snapshotLexer, base: snapshotBase})
		return nil
	}
	if image.Mask(res.value) != mnem.Opcode {
		return &SemanticError{Loc: mnemTok.Loc, Msg: fmt.Sprintf("redefining mnemonics is not supported (%s)", mnemTok.Lexeme)}
	}
	return nil
}

// stepName handles a statement beginning with a non-mnemonic identifier:
// the DECIMAL/OCTAL/PAGE pseudo-directives, a "NAME=expr" constant
// definition, a "NAME," label definition, or (falling through) a bare data
// expression that happens to start with a name.
func (a *Assembler) stepName(lx *lexer, base *Base, addr *image.Address) error {
	pk, _ := lx.peek()

	switch pk.Lexeme {
	case "DECIMAL":
		lx.next()
		*base = DecimalBase
		return nil
	case "OCTAL":
		lx.next()
		*base = OctalBase
		return nil
	case "PAGE":
		return a.stepPage(lx, base, addr)
	}

	snapshotAddr := *addr
	snapshotBase := *base
	snapshotLexer := *lx

	nameTok, _ := lx.next()

	next, err := lx.peek()
	if err != nil {
		return err
	}

	switch next.Kind {
	case TokEq:
		lx.next()
		valueTok, err := lx.peek()
		if err != nil {
			return err
		}
		var res evalResult
		switch valueTok.Kind {
		case TokInst:
			v, ok, cause, err := a.assembleMnemonic(lx, *base, *addr)
			if err != nil {
				return err
			}
			res = evalResult{ok: ok, value: int(v), cause: cause}
		case TokName, TokInt, TokDot:
			res, err = a.parseExpr(lx, *base, *addr)
			if err != nil {
				return err
			}
		default:
			return &SyntaxError{Loc: valueTok.Loc, Expected: []TokenKind{TokName, TokInt, TokDot, TokInst}, Got: valueTok}
		}
		if !res.ok {
			a.enqueue(backpatchEntry{cause: res.cause, addr: snapshotAddr, lexer: snapshotLexer, base: snapshotBase})
			return nil
		}
		a.symbols.define(nameTok.Lexeme, image.Mask(res.value))
		return nil

	case TokComma:
		lx.next()
		a.symbols.define(nameTok.Lexeme, image.Mask(int(*addr)))
		return nil

	default:
		// Not a binding after all: rewind to before the name token and
		// treat the whole construct as a one-word data expression.
		*lx = snapshotLexer
		*addr = snapshotAddr
		*base = snapshotBase
		res, err := a.parseExpr(lx, *base, *addr)
		if err != nil {
			return err
		}
		if !res.ok {
			a.enqueue(backpatchEntry{cause: res.cause, addr: snapshotAddr, lexer: snapshotLexer, base: snapshotBase})
			*addr++
			return nil
		}
		a.img.Set(*addr, image.Mask(res.value))
		*addr++
		return nil
	}
}

// pageModulus is the modulus the PAGE directive normalizes against: 36
// pages of 128 words, one page bank beyond the 4,096-word address space
// this assembler actually targets. The reference PAL assemblers this
// dialect is drawn from carry the same oversized page bank (it matches a
// PDP-8 variant with more core than a plain 4K machine), so PAGE's
// arithmetic is kept bit-for-bit rather than narrowed to image.Size; the
// result is still validated against image.Size below before it is ever
// used as an address.
const pageModulus = 36 * image.PageSize

// stepPage handles "PAGE" and "PAGE n". Like stepLocationCounter, the
// resulting address is validated before being accepted: PAGE's modulus
// reaches slightly past the 4,096-word address space on the last couple of
// pages, and an out-of-range result must be a diagnostic, not a write past
// the end of the memory image.
func (a *Assembler) stepPage(lx *lexer, base *Base, addr *image.Address) error {
	tok, _ := lx.next()
	pk, err := lx.peek()
	if err != nil {
		return err
	}
	var next int
	if pk.Kind == TokInt {
		intTok, _ := lx.next()
		n := parseInt(intTok.Lexeme, *base)
		next = (image.PageSize*n)%pageModulus + pageModulus
	} else {
		round := (int(*addr) / image.PageSize) * image.PageSize
		next = (round+image.PageSize)%pageModulus + pageModulus
	}
	next %= pageModulus
	if next < 0 || next >= image.Size {
		return &SemanticError{Loc: tok.Loc, Msg: fmt.Sprintf("PAGE target %o is out of range", next)}
	}
	*addr = image.Address(next)
	return nil
}

// stepDataExpr handles a statement beginning with `.`: evaluate it as a
// data expression (where `.` itself resolves to the current address) and
// store one word.
func (a *Assembler) stepDataExpr(lx *lexer, base *Base, addr *image.Address) error {
	snapshotAddr := *addr
	snapshotBase := *base
	snapshotLexer := *lx

	res, err := a.parseExpr(lx, *base, *addr)
	if err != nil {
		return err
	}
	if !res.ok {
		a.enqueue(backpatchEntry{cause: res.cause, addr: snapshotAddr, lexer: snapshotLexer, base: snapshotBase})
		*addr++
		return nil
	}
	a.img.Set(*addr, image.Mask(res.value))
	*addr++
	return nil
}

// stepNegation handles "-INT" with an optional "(+|-) expr" tail: a
// two's-complement negation within 12 bits, with an optional additive
// adjustment applied with the leading operator's sign.
func (a *Assembler) stepNegation(lx *lexer, base *Base, addr *image.Address, minus Token) error {
	snapshotAddr := *addr
	snapshotBase := *base
	snapshotLexer := *lx

	lx.next() // consume '-'
	intTok, err := lx.next()
	if err != nil {
		return err
	}
	if intTok.Kind != TokInt {
		return &SyntaxError{Loc: intTok.Loc, Expected: []TokenKind{TokInt}, Got: intTok}
	}
	v := parseInt(intTok.Lexeme, *base)

	dv := 0
	sign := 1
	pk, err := lx.peek()
	if err != nil {
		return err
	}
	if pk.isBinOp() {
		op, _ := lx.next()
		if op.Kind == TokMinus {
			sign = -1
		}
		res, err := a.parseExpr(lx, *base, *addr)
		if err != nil {
			return err
		}
		if !res.ok {
			a.enqueue(backpatchEntry{cause: res.cause, addr: snapshotAddr, lexer: snapshotLexer, base: snapshotBase})
			*addr++
			return nil
		}
		dv = res.value
	}

	result := (image.Size - v + dv*sign) % image.Size
	if result < 0 {
		result += image.Size
	}
	a.img.Set(*addr, image.Word(result))
	*addr++
	return nil
}
