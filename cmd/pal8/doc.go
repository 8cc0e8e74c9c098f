// Copyright © 2025 kala_telo <kala_telo@proton.me>
// SPDX-License-Identifier: MIT

// The pal8 command line tool assembles a single PDP-8 PAL-style source file
// into a DEC object (BIN, paper-tape) image.
//
// Usage:
//
//	pal8 -o filename [flags] source
//
//	-o, --output filename
//		  output object file (required)
//	-S, --symbols
//		  print the resolved symbol table to stderr
//	-static, --static
//		  accepted for command-line compatibility; has no effect
//
// source is assembled in its entirety in one pass, and any undefined names
// still unresolved after the backpatch replay are reported together, one
// diagnostic line per name, before pal8 exits with a non-zero status.
package main
