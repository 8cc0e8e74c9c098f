// Copyright © 2025 kala_telo <kala_telo@proton.me>
// SPDX-License-Identifier: MIT

package image_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kala-telo/pal8/image"
)

func TestMask(t *testing.T) {
	assert.Equal(t, image.Word(0o7777), image.Mask(0o17777))
	assert.Equal(t, image.Word(0), image.Mask(0o10000))
}

func TestImage_SetAt(t *testing.T) {
	img := image.New()
	img.Set(0o200, 0o7402)
	assert.Equal(t, image.Word(0o7402), img.At(0o200))
	assert.Equal(t, image.Word(0), img.At(0o201))
}

func TestAddress_Page(t *testing.T) {
	assert.Equal(t, 0, image.Address(0o177).Page())
	assert.Equal(t, 1, image.Address(0o200).Page())
	assert.Equal(t, 3, image.Address(0o600).Page())
}
