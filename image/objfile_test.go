// Copyright © 2025 kala_telo <kala_telo@proton.me>
// SPDX-License-Identifier: MIT

package image_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kala-telo/pal8/image"
)

func TestWriteObject_length(t *testing.T) {
	img := image.New()
	var buf bytes.Buffer
	require.NoError(t, image.WriteObject(&buf, img))
	assert.Equal(t, image.Len, buf.Len())
	assert.Equal(t, 8434, buf.Len())
}

func TestWriteObject_leaderAndTrailer(t *testing.T) {
	img := image.New()
	var buf bytes.Buffer
	require.NoError(t, image.WriteObject(&buf, img))
	b := buf.Bytes()
	for i := 0; i < 239; i++ {
		require.Equal(t, byte(0x80), b[i], "leader byte %d", i)
	}
	assert.Equal(t, byte(0x80), b[len(b)-1], "trailing byte")
	assert.Equal(t, byte(0x10), b[239], "object field byte")
	assert.Equal(t, byte(0x00), b[240], "origin byte")
}

func TestWriteObject_checksum(t *testing.T) {
	img := image.New()
	img.Set(1, 0o7402)
	img.Set(2, 0o1234)
	var buf bytes.Buffer
	require.NoError(t, image.WriteObject(&buf, img))
	b := buf.Bytes()

	body := b[239 : len(b)-3]
	var want uint16
	for _, c := range body {
		want += uint16(c)
	}

	hi := uint16(b[len(b)-3])
	lo := uint16(b[len(b)-2])
	got := hi<<6 | lo
	assert.Equal(t, want&0o7777, got&0o7777)
}
