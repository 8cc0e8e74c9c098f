// Copyright © 2025 kala_telo <kala_telo@proton.me>
// SPDX-License-Identifier: MIT

package image

import (
	"io"

	"github.com/pkg/errors"

	"github.com/kala-telo/pal8/internal/pti"
)

// leaderLength is the number of 0x80 leader bytes emitted before the object
// payload, per the DEC object (BIN) format.
const leaderLength = 239

// objFieldByte and objOriginByte are the header bytes marking the field and origin
// fields of the DEC object format. This assembler only ever targets field 0,
// so these are always the same two bytes.
const (
	objFieldByte  = 0x10
	objOriginByte = 0x00
)

// trailerByte terminates the tape.
const trailerByte = 0x80

// Len is the exact length in bytes of a serialized object file: the leader,
// the two header bytes, two 6-bit halves per word for addresses 1..Size-1,
// the two checksum halves, and one trailing byte.
const Len = leaderLength + 2 + 2*(Size-1) + 2 + 1

// WriteObject serializes img to w in DEC object (BIN) format:
//
//  1. 239 bytes of 0x80 (leader).
//  2. A header: 0x10, 0x00.
//  3. For every address 1..Size-1 (address 0 is skipped), the high 6 bits
//     then the low 6 bits of the word.
//  4. The high and low 6-bit halves of the running checksum of every
//     payload byte emitted in steps 2-3.
//  5. One trailing byte of 0x80.
//
// The checksum is a 12-bit sum, modulo 2^12, of every byte written in steps
// 2 and 3; it does not include the leader or the trailer.
func WriteObject(w io.Writer, img *Image) error {
	ew := pti.NewErrWriter(w)

	for i := 0; i < leaderLength; i++ {
		_ = ew.WriteByte(trailerByte)
	}

	var checksum uint16
	emit := func(b byte) {
		checksum += uint16(b)
		_ = ew.WriteByte(b)
	}

	emit(objFieldByte)
	emit(objOriginByte)

	for addr := 1; addr < Size; addr++ {
		v := img.At(Address(addr))
		emit(byte((v >> 6) & 0o77))
		emit(byte(v & 0o77))
	}

	_ = ew.WriteByte(byte((checksum >> 6) & 0o77))
	_ = ew.WriteByte(byte(checksum & 0o77))
	_ = ew.WriteByte(trailerByte)

	if ew.Err != nil {
		return errors.Wrap(ew.Err, "write object file")
	}
	return nil
}
