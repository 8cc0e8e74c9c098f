// Copyright © 2025 kala_telo <kala_telo@proton.me>
// SPDX-License-Identifier: MIT

package asm_test

import (
	"fmt"
	"strings"

	"github.com/kala-telo/pal8/asm"
	"github.com/kala-telo/pal8/image"
)

// ExampleAssemble assembles a short PAL program — an ISZ on a counter
// followed by a forward and a backward jump to labels — and prints the
// resulting memory image at each of its five addresses.
func ExampleAssemble() {
	const src = `*0200
LOOP,	ISZ CTR
	JMP DONE
	JMP LOOP
DONE,	HLT
CTR,	-5
`
	img, err := asm.Assemble("example", strings.NewReader(src))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(img.At(0o200))
	fmt.Println(img.At(0o201))
	fmt.Println(img.At(0o202))
	fmt.Println(img.At(0o203))
	fmt.Println(img.At(0o204))
	// Output:
	// 2204
	// 5203
	// 5200
	// 7402
	// 7773
}
