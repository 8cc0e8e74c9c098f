// Copyright © 2025 kala_telo <kala_telo@proton.me>
// SPDX-License-Identifier: MIT

// Package image implements the PDP-8 memory image: a fixed 4,096-word
// array addressed in [0, Size), and its serialization to the DEC object
// (BIN, paper-tape) format.
package image

import "strconv"

// Size is the number of addressable words in a PDP-8 memory image.
const Size = 4096

// PageSize is the number of words in one PDP-8 memory page.
const PageSize = 128

// PageCount is the number of pages in the addressable image.
const PageCount = Size / PageSize

// Word is a 12-bit value stored in a 16-bit slot. Arithmetic on a Word is
// modulo 2^12; callers are responsible for masking (see Mask).
type Word uint16

// Mask keeps only the low 12 bits of v.
func Mask(v int) Word {
	return Word(v & 0o7777)
}

// String renders w in octal, the canonical PDP-8 display radix.
func (w Word) String() string {
	return strconv.FormatUint(uint64(w&0o7777), 8)
}

// Address is a word index into an Image, always in [0, Size).
type Address int

// Page returns the page number (0..31) that a lies on.
func (a Address) Page() int {
	return int(a) / PageSize
}

// String renders a in octal.
func (a Address) String() string {
	return strconv.FormatInt(int64(a), 8)
}

// DefaultStart is the conventional start-of-program address, octal 200.
const DefaultStart Address = 0o200

// Image is the PDP-8's 4,096-word memory, indexed by Address.
type Image struct {
	words [Size]Word
}

// New returns a freshly zeroed Image.
func New() *Image {
	return &Image{}
}

// At returns the word stored at addr.
func (img *Image) At(addr Address) Word {
	return img.words[addr]
}

// Set stores v at addr. The caller must have already validated that addr is
// in range; Set does not itself enforce the [0, Size) invariant so that
// range checks can carry a caller-specific diagnostic (see asm.Assembler).
func (img *Image) Set(addr Address, v Word) {
	img.words[addr] = v
}
