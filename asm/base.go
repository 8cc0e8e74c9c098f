// Copyright © 2025 kala_telo <kala_telo@proton.me>
// SPDX-License-Identifier: MIT

package asm

// Base is the radix used to interpret unadorned integer literals.
//
// The reference dialect enumerates four bases (octal, binary, decimal,
// hex) but only octal and decimal are ever reachable: hex parsing is an
// explicit unimplemented stub, and nothing in the lexer or driver ever
// selects binary. Base therefore only exposes the two that the
// DECIMAL/OCTAL directives can actually select.
type Base int

const (
	// OctalBase is the default radix at the start of assembly.
	OctalBase Base = iota
	// DecimalBase is selected by the DECIMAL pseudo-directive.
	DecimalBase
)

func (b Base) String() string {
	if b == DecimalBase {
		return "DECIMAL"
	}
	return "OCTAL"
}

// parseInt interprets lexeme (the longest alphanumeric run starting with a
// digit, as produced by the lexer) according to base. It does not validate
// that every character is a legal digit for the base; neither did the
// original implementation, and nothing in the supported dialect relies on
// that being checked.
func parseInt(lexeme string, base Base) int {
	radix := 8
	if base == DecimalBase {
		radix = 10
	}
	v := 0
	for i := 0; i < len(lexeme); i++ {
		v = v*radix + int(lexeme[i]-'0')
	}
	return v
}
