// Copyright © 2025 kala_telo <kala_telo@proton.me>
// SPDX-License-Identifier: MIT

package asm_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kala-telo/pal8/asm"
	"github.com/kala-telo/pal8/image"
)

func assemble(t *testing.T, src string) *image.Image {
	t.Helper()
	img, err := asm.Assemble(t.Name(), strings.NewReader(src))
	require.NoError(t, err)
	return img
}

func TestAssemble_minimalHalt(t *testing.T) {
	img := assemble(t, "HLT\n")
	assert.Equal(t, image.Word(0o7402), img.At(image.DefaultStart))
}

func TestAssemble_operateCombination(t *testing.T) {
	img := assemble(t, "CLA CLL\n")
	assert.Equal(t, image.Word(0o7200|0o7100), img.At(image.DefaultStart))
}

func TestAssemble_pageZeroReference(t *testing.T) {
	img := assemble(t, "*0020\nTAD 0010\n")
	assert.Equal(t, image.Word(0o1000|0o010), img.At(0o020))
}

func TestAssemble_samePageLabel(t *testing.T) {
	img := assemble(t, "*0600\nFOO,\tCLA\nTAD FOO\n")
	assert.Equal(t, image.Word(0o1000|0o200|0o000), img.At(0o601))
}

func TestAssemble_forwardReferenceBackpatch(t *testing.T) {
	img := assemble(t, "*0020\nJMP FOO\nFOO,\tHLT\n")
	assert.Equal(t, image.Word(0o5000|0o021), img.At(0o020))
	assert.Equal(t, image.Word(0o7402), img.At(0o021))
}

func TestAssemble_crossPageIndirectLegal(t *testing.T) {
	img := assemble(t, "*0020\nTAD I FARPTR\n*0400\nFARPTR,\t0\n")
	assert.Equal(t, image.Word(0o1000|0o400|0o200), img.At(0o020))
}

func TestAssemble_crossPageDirectFatal(t *testing.T) {
	_, err := asm.Assemble(t.Name(), strings.NewReader("*0020\nTAD FARPTR\n*0400\nFARPTR,\t0\n"))
	require.Error(t, err)
	var semErr *asm.SemanticError
	assert.ErrorAs(t, err, &semErr)
}

func TestAssemble_baseSwitch(t *testing.T) {
	img := assemble(t, "DECIMAL\n10\nOCTAL\n10\n")
	assert.Equal(t, image.Word(10), img.At(image.DefaultStart))
	assert.Equal(t, image.Word(0o10), img.At(image.DefaultStart+1))
}

func TestAssemble_undefinedName(t *testing.T) {
	_, err := asm.Assemble(t.Name(), strings.NewReader("TAD NOWHERE\n"))
	require.Error(t, err)
	errs, ok := err.(asm.ErrAsm)
	require.True(t, ok, "expected ErrAsm, got %T", err)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "NOWHERE")
}

// Idempotence: assembling the same source twice from scratch yields the
// same image.
func TestAssemble_idempotent(t *testing.T) {
	src := "*0200\nFOO,\tTAD BAR\nJMP FOO\nBAR,\t0\n"
	img1 := assemble(t, src)
	img2 := assemble(t, src)
	for addr := 0o200; addr < 0o210; addr++ {
		assert.Equal(t, img1.At(image.Address(addr)), img2.At(image.Address(addr)))
	}
}

// OR-composition: the word assembled from several Operate-group mnemonics
// on one statement equals the bitwise OR of their table opcodes.
func TestAssemble_orComposition(t *testing.T) {
	img := assemble(t, "CLA CLL CMA IAC\n")
	want := image.Word(0o7200) | image.Word(0o7100) | image.Word(0o7040) | image.Word(0o7001)
	assert.Equal(t, want, img.At(image.DefaultStart))
}

// Memory-reference encoding law: bits 0-2 are opcode, bit 3 indirect, bit 4
// page, bits 5-11 the low 7 bits of the target address.
func TestAssemble_memRefEncodingLaw(t *testing.T) {
	img := assemble(t, "*0200\nDCA I 0077\n")
	word := img.At(0o200)
	assert.Equal(t, image.Word(0o3000), word&0o7000, "opcode bits")
	assert.NotZero(t, word&0o400, "indirect bit")
	assert.Zero(t, word&0o200, "page bit must be 0 for page zero")
	assert.Equal(t, image.Word(0o077), word&0o177, "low 7 bits of target")
}

func TestAssemble_pageDirective(t *testing.T) {
	img := assemble(t, "*0010\nPAGE\nHLT\n")
	assert.Equal(t, image.Word(0o7402), img.At(0o200))
}

func TestAssemble_redefineMnemonicSameValue(t *testing.T) {
	_, err := asm.Assemble(t.Name(), strings.NewReader("HLT=7402\nHLT\n"))
	assert.NoError(t, err)
}

func TestAssemble_redefineMnemonicDifferentValue(t *testing.T) {
	_, err := asm.Assemble(t.Name(), strings.NewReader("HLT=1234\n"))
	require.Error(t, err)
	var semErr *asm.SemanticError
	assert.ErrorAs(t, err, &semErr)
}

func TestAssemble_negation(t *testing.T) {
	img := assemble(t, "*0200\n-5\n")
	assert.Equal(t, image.Word(image.Size-5), img.At(0o200))
}

func TestAssemble_negationWithTail(t *testing.T) {
	img := assemble(t, "*0200\nFIVE=5\n-10+FIVE\n")
	assert.Equal(t, image.Word(image.Size-0o10+5), img.At(0o200))
}

func TestAssemble_characterLiteral(t *testing.T) {
	img := assemble(t, "\"A\n")
	assert.Equal(t, image.Word('A'), img.At(image.DefaultStart))
}
