// Copyright © 2025 kala_telo <kala_telo@proton.me>
// SPDX-License-Identifier: MIT

// Package pti ("paper tape interface") holds small helpers shared by the
// object-file serializer.
package pti

import (
	"io"

	"github.com/pkg/errors"
)

// ErrWriter wraps an io.Writer and remembers the first error it sees. Every
// subsequent Write is a no-op that returns the same error, so a long
// sequence of unconditional byte emissions (the object-file serializer
// writes 8,434 of them) doesn't need an error check after every call.
type ErrWriter struct {
	w   io.Writer
	Err error
}

// NewErrWriter wraps w.
func NewErrWriter(w io.Writer) *ErrWriter {
	return &ErrWriter{w: w}
}

func (w *ErrWriter) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}

// WriteByte emits a single byte, tracking errors the same way as Write.
func (w *ErrWriter) WriteByte(b byte) error {
	if w.Err != nil {
		return w.Err
	}
	_, err := w.Write([]byte{b})
	return err
}
