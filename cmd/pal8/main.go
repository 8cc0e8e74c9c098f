// Copyright © 2025 kala_telo <kala_telo@proton.me>
// SPDX-License-Identifier: MIT

// Command pal8 assembles a single PAL-style source file into a DEC object
// (BIN, paper-tape) image.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kala-telo/pal8/asm"
	"github.com/kala-telo/pal8/image"
)

var (
	outFileName string
	staticFlag  bool
	symbolsFlag bool
)

func main() {
	root := &cobra.Command{
		Use:           "pal8 [flags] source",
		Short:         "pal8 assembles PDP-8 PAL source into a DEC object tape image",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runAssemble,
	}

	root.Flags().StringVarP(&outFileName, "output", "o", "", "output object file (required)")
	root.Flags().BoolVar(&staticFlag, "static", false, "accepted for command-line compatibility; has no effect")
	root.Flags().BoolVarP(&symbolsFlag, "symbols", "S", false, "print the resolved symbol table to stderr")
	_ = root.MarkFlagRequired("output")

	// pflag would read the single-dash -static as a cluster of shorthand
	// flags, so it is rewritten to --static before parsing.
	args := os.Args[1:]
	for i, arg := range args {
		if arg == "-static" {
			args[i] = "--static"
		}
	}
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAssemble(cmd *cobra.Command, args []string) error {
	srcName := args[0]

	in, err := os.Open(srcName)
	if err != nil {
		return err
	}
	defer in.Close()

	a := asm.New()
	if err := a.Run(srcName, in); err != nil {
		return err
	}

	out, err := os.Create(outFileName)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := image.WriteObject(out, a.Image()); err != nil {
		return err
	}

	if symbolsFlag {
		dumpSymbols(os.Stderr, a.Symbols())
	}

	return nil
}
