// Copyright © 2025 kala_telo <kala_telo@proton.me>
// SPDX-License-Identifier: MIT

package asm

import (
	"fmt"
	"strings"
)

// LexError reports an unexpected byte or an EOF in the middle of a token.
// Lexical errors are always fatal.
type LexError struct {
	Loc Location
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
}

// SyntaxError reports an unexpected token kind, or an operator used where an
// operand was required. Syntax errors are always fatal.
type SyntaxError struct {
	Loc      Location
	Expected []TokenKind
	Got      Token
	Msg      string
}

func (e *SyntaxError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
	}
	names := make([]string, len(e.Expected))
	for i, k := range e.Expected {
		names[i] = k.String()
	}
	return fmt.Sprintf("%s: expected any of %s but got %s", e.Loc, strings.Join(names, ", "), e.Got.Kind)
}

// SemanticError reports a page-constraint violation, a mnemonic
// redefinition with a differing value, or a PAGE directive whose target
// lies outside the memory image. Semantic errors of this shape are
// fatal the moment they are detected.
type SemanticError struct {
	Loc Location
	Msg string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
}

// ErrAsm accumulates the undefined-name diagnostics produced while replaying
// the backpatch queue. Unlike LexError/SyntaxError/SemanticError, which are
// each reported and aborted on individually, every deferral that still
// cannot resolve during replay is collected and reported together so that a
// single source file reports every unresolved name in one pass.
type ErrAsm []error

func (e ErrAsm) Error() string {
	lines := make([]string, len(e))
	for i, err := range e {
		lines[i] = err.Error()
	}
	return strings.Join(lines, "\n")
}

// undefinedNameError is the element type ErrAsm accumulates.
type undefinedNameError struct {
	Loc  Location
	Name string
}

func (e *undefinedNameError) Error() string {
	return fmt.Sprintf("%s: Undefined name `%s`", e.Loc, e.Name)
}
