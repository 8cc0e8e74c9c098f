// Copyright © 2025 kala_telo <kala_telo@proton.me>
// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"sort"
	"strconv"

	"github.com/kala-telo/pal8/asm"
)

// dumpSymbols writes one "NAME VALUE" line per resolved symbol, sorted by
// name, in octal — the radix every address and opcode in a pal8 listing is
// already expressed in.
func dumpSymbols(w io.Writer, syms []asm.Symbol) {
	sorted := make([]asm.Symbol, len(syms))
	copy(sorted, syms)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	b := make([]byte, 0, 32)
	for _, s := range sorted {
		b = b[:0]
		b = append(b, s.Name...)
		b = append(b, ' ')
		b = strconv.AppendInt(b, int64(s.Value), 8)
		b = append(b, '\n')
		_, _ = w.Write(b)
	}
}
