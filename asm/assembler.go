// Copyright © 2025 kala_telo <kala_telo@proton.me>
// SPDX-License-Identifier: MIT

// Package asm implements the core of a PDP-8 PAL-style assembler: the
// mnemonic table, lexer, symbol table, backpatch queue, expression parser,
// instruction encoder and statement-level driver described by this
// project's design document. Assemble is the package's main entry point;
// New and Assembler.Run also expose the final symbol table.
//
// Dialect summary:
//
//	- `/` begins a comment that runs to the next newline.
//	- `$` ends assembly.
//	- `*expr` sets the location counter.
//	- `NAME,` defines a label at the current address.
//	- `NAME=expr` defines a symbolic constant (or redefines a mnemonic with
//	  the same value, which is accepted silently as a harmless alias).
//	- `DECIMAL` and `OCTAL` toggle the integer base.
//	- `PAGE [n]` advances to the next (or n-th) 128-word page.
//	- Instruction mnemonics on one line combine by bitwise OR into a single
//	  word; memory-reference instructions accept an optional `I` (indirect)
//	  prefix and an address expression.
//	- `"c` is a one-byte character literal.
//	- Expressions are `term (('+' | '-') term)*` with no precedence and no
//	  parentheses; a term is a name, an integer literal, or `.` (the current
//	  location counter).
package asm

import (
	"io"

	"github.com/pkg/errors"

	"github.com/kala-telo/pal8/image"
)

// Assembler owns all of the mutable state of a single assembly: the memory
// image, the symbol table, and the backpatch queue. These are fields of one
// value rather than free-standing package globals, so nothing prevents two
// assemblies from running independently of one another; the driver's
// statement-level step function is a method on it.
type Assembler struct {
	img       *image.Image
	symbols   symbolTable
	backpatch []backpatchEntry
	startAddr image.Address
	startBase Base
}

// Option configures an Assembler at construction time.
type Option func(*Assembler)

// StartAddress overrides the default start-of-program address (octal 200).
func StartAddress(addr image.Address) Option {
	return func(a *Assembler) { a.startAddr = addr }
}

// InitialBase overrides the default initial integer Base (octal).
func InitialBase(b Base) Option {
	return func(a *Assembler) { a.startBase = b }
}

// New returns a ready-to-use Assembler with a zeroed memory image.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		img:       image.New(),
		startAddr: image.DefaultStart,
		startBase: OctalBase,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble reads the whole of r as PAL-style source named name, assembles
// it, and returns the resulting memory image. Reading the source fully into
// memory first is deliberate: the lexer's tokens are {pointer, length}
// views into the buffer, and that buffer must outlive every token and
// backpatch entry derived from it.
func Assemble(name string, r io.Reader, opts ...Option) (*image.Image, error) {
	a := New(opts...)
	if err := a.Run(name, r); err != nil {
		return nil, err
	}
	return a.img, nil
}

// Run assembles the whole of r as PAL-style source named name into a, in
// place. Callers that need more than the resulting image (the final symbol
// table, for debug tooling) use this directly instead of the Assemble
// convenience wrapper.
func (a *Assembler) Run(name string, r io.Reader) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "read source")
	}
	return a.assembleSource(name, string(src))
}

// Symbols exposes the final symbol table for debug tooling (the CLI's -S
// flag). It is meaningless to call before a successful Run.
func (a *Assembler) Symbols() []Symbol {
	return a.symbols.Symbols()
}

// Image returns the assembled memory image.
func (a *Assembler) Image() *image.Image {
	return a.img
}

func (a *Assembler) assembleSource(name, src string) error {
	lx := newLexer(name, src)
	base := a.startBase
	addr := a.startAddr

	for {
		tok, err := lx.peek()
		if err != nil {
			return err
		}
		if tok.Kind == TokEOF {
			break
		}
		if err := a.step(&lx, &base, &addr); err != nil {
			return err
		}
	}

	// Second (and only) sweep: replay every deferred statement exactly
	// once, each against its own snapshotted lexer/base/addr rather than
	// the (by-now unrelated) top-level cursor.
	bpCount := len(a.backpatch)
	for i := 0; i < bpCount; i++ {
		entry := a.backpatch[i]
		entryLexer := entry.lexer
		entryBase := entry.base
		entryAddr := entry.addr
		if err := a.step(&entryLexer, &entryBase, &entryAddr); err != nil {
			return err
		}
	}

	// Anything deferred during replay itself is now a hard error: there is
	// no third sweep.
	if len(a.backpatch) > bpCount {
		var errs ErrAsm
		for _, entry := range a.backpatch[bpCount:] {
			errs = append(errs, &undefinedNameError{Loc: entry.cause.Loc, Name: entry.cause.Lexeme})
		}
		a.backpatch = nil
		return errs
	}
	a.backpatch = nil
	return nil
}
