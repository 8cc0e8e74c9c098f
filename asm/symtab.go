// Copyright © 2025 kala_telo <kala_telo@proton.me>
// SPDX-License-Identifier: MIT

package asm

import "github.com/kala-telo/pal8/image"

// symbol is one append-only binding of a name to a 12-bit value.
type symbol struct {
	name  string
	value image.Word
}

// Symbol is the exported, read-only view of a symbol binding, for debug
// tooling (the CLI's -S flag).
type Symbol struct {
	Name  string
	Value image.Word
}

// symbolTable is an append-only list of bindings. Lookup favors the most
// recent binding, so redefinition shadows (rather than replaces) earlier
// ones — the old binding is still present for anything that resolved
// against it before the redefinition.
type symbolTable struct {
	syms []symbol
}

// define appends a new binding.
func (t *symbolTable) define(name string, value image.Word) {
	t.syms = append(t.syms, symbol{name, value})
}

// lookup scans from most-recent to oldest and returns the first match.
func (t *symbolTable) lookup(name string) (image.Word, bool) {
	for i := len(t.syms) - 1; i >= 0; i-- {
		if t.syms[i].name == name {
			return t.syms[i].value, true
		}
	}
	return 0, false
}

// Symbols returns a snapshot of every binding still visible (i.e. the most
// recent value for each distinct name), ordered by when each name was most
// recently bound, oldest first. This is
// used only by debug tooling (the CLI's -S flag); the assembler itself never
// needs a deduplicated view.
func (t *symbolTable) Symbols() []Symbol {
	seen := make(map[string]bool, len(t.syms))
	out := make([]Symbol, 0, len(t.syms))
	for i := len(t.syms) - 1; i >= 0; i-- {
		s := t.syms[i]
		if seen[s.name] {
			continue
		}
		seen[s.name] = true
		out = append(out, Symbol{Name: s.name, Value: s.value})
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
