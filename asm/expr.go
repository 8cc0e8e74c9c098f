// Copyright © 2025 kala_telo <kala_telo@proton.me>
// SPDX-License-Identifier: MIT

package asm

import "github.com/kala-telo/pal8/image"

// evalResult is the outcome of evaluating a term or expression: either a
// resolved value, or a deferred marker naming the token that first caused
// the deferral. This replaces a "-1 means unresolved" sentinel so an
// unresolved value cannot silently propagate into arithmetic — every
// consumer of evalResult has to check ok before touching value.
type evalResult struct {
	ok    bool
	value int
	cause Token
}

// parseTerm parses a single term: a name (resolved via the symbol table),
// an integer literal (interpreted in base), or `.` (the current location
// counter).
func (a *Assembler) parseTerm(lx *lexer, base Base, addr image.Address) (evalResult, error) {
	tok, err := lx.next()
	if err != nil {
		return evalResult{}, err
	}
	switch tok.Kind {
	case TokName:
		if v, ok := a.symbols.lookup(tok.Lexeme); ok {
			return evalResult{ok: true, value: int(v)}, nil
		}
		return evalResult{ok: false, cause: tok}, nil
	case TokInt:
		return evalResult{ok: true, value: parseInt(tok.Lexeme, base)}, nil
	case TokDot:
		return evalResult{ok: true, value: int(addr)}, nil
	default:
		return evalResult{}, &SyntaxError{
			Loc:      tok.Loc,
			Expected: []TokenKind{TokName, TokInt, TokDot},
			Got:      tok,
		}
	}
}

// parseExpr parses `term (('+' | '-') term)*`: a flat, left-to-right,
// additive-only expression with no precedence and no parentheses. It never
// advances past the first token that isn't part of the expression (a
// statement boundary, an instruction, etc.) — the binary-operator check
// peeks before consuming.
//
// If any term (the first or a later one) is unresolved, the whole
// expression is unresolved; the cause is the token of the first term that
// failed to resolve. Later terms are still parsed (and their tokens
// consumed) so the cursor ends up in the same place an assembled statement
// would leave it, even when the value itself is discarded.
func (a *Assembler) parseExpr(lx *lexer, base Base, addr image.Address) (evalResult, error) {
	v, err := a.parseTerm(lx, base, addr)
	if err != nil {
		return evalResult{}, err
	}
	for {
		pk, err := lx.peek()
		if err != nil {
			return evalResult{}, err
		}
		if !pk.isBinOp() {
			break
		}
		op, _ := lx.next()
		dv, err := a.parseTerm(lx, base, addr)
		if err != nil {
			return evalResult{}, err
		}
		if !v.ok {
			continue
		}
		if !dv.ok {
			v = evalResult{ok: false, cause: dv.cause}
			continue
		}
		switch op.Kind {
		case TokPlus:
			v.value += dv.value
		case TokMinus:
			v.value -= dv.value
		}
	}
	return v, nil
}
