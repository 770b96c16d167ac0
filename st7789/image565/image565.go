// Copyright 2025 The Panels Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package image565

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"
)

// RGB565 is an opaque pixel with 5 bits red, 6 bits green and 5 bits blue.
type RGB565 uint16

// RGBA implements color.Color.
func (c RGB565) RGBA() (uint32, uint32, uint32, uint32) {
	r := uint32(c >> 11 & 0x1F)
	g := uint32(c >> 5 & 0x3F)
	b := uint32(c & 0x1F)
	// Replicate the channel bits down so full scale maps to 0xFFFF.
	r = r<<11 | r<<6 | r<<1 | r>>4
	g = g<<10 | g<<4 | g>>2
	b = b<<11 | b<<6 | b<<1 | b>>4
	return r, g, b, 0xFFFF
}

// From converts any color to the closest RGB565.
func From(c color.Color) RGB565 {
	r, g, b, _ := c.RGBA()
	return RGB565((r & 0xF800) | ((g & 0xFC00) >> 5) | ((b & 0xF800) >> 11))
}

// RGB565Model is the color model for RGB565.
var RGB565Model color.Model = color.ModelFunc(convert)

func convert(c color.Color) color.Color {
	if c, ok := c.(RGB565); ok {
		return c
	}
	return From(c)
}

// Image is an in-memory RGB565 image.
type Image struct {
	// Pix holds the pixels as two bytes each, high byte first.
	Pix []byte
	// Stride is the Pix stride (in bytes) between vertically adjacent
	// pixels.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

// New returns an initialized (all black) Image of the given bounds.
func New(r image.Rectangle) *Image {
	return &Image{
		Pix:    make([]byte, 2*r.Dx()*r.Dy()),
		Stride: 2 * r.Dx(),
		Rect:   r,
	}
}

// ColorModel implements image.Image.
func (i *Image) ColorModel() color.Model {
	return RGB565Model
}

// Bounds implements image.Image.
func (i *Image) Bounds() image.Rectangle {
	return i.Rect
}

// At implements image.Image.
func (i *Image) At(x, y int) color.Color {
	return i.RGB565At(x, y)
}

// RGB565At returns the pixel at (x, y) without boxing.
func (i *Image) RGB565At(x, y int) RGB565 {
	if !(image.Point{X: x, Y: y}.In(i.Rect)) {
		return 0
	}
	return RGB565(binary.BigEndian.Uint16(i.Pix[i.PixOffset(x, y):]))
}

// PixOffset returns the index into Pix of the first byte of the pixel at
// (x, y).
func (i *Image) PixOffset(x, y int) int {
	return (y-i.Rect.Min.Y)*i.Stride + 2*(x-i.Rect.Min.X)
}

// Set implements draw.Image.
func (i *Image) Set(x, y int, c color.Color) {
	i.SetRGB565(x, y, From(c))
}

// SetRGB565 sets the pixel at (x, y).
func (i *Image) SetRGB565(x, y int, c RGB565) {
	if !(image.Point{X: x, Y: y}.In(i.Rect)) {
		return
	}
	binary.BigEndian.PutUint16(i.Pix[i.PixOffset(x, y):], uint16(c))
}

// Opaque implements image.Image. RGB565 has no alpha channel.
func (i *Image) Opaque() bool {
	return true
}

var _ draw.Image = &Image{}
