// Copyright 2025 The Panels Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package image565

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestRGB565RGBA(t *testing.T) {
	for _, tc := range []struct {
		c          RGB565
		r, g, b, a uint32
	}{
		{0x0000, 0, 0, 0, 0xFFFF},
		{0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF},
		{0xF800, 0xFFFF, 0, 0, 0xFFFF},
		{0x07E0, 0, 0xFFFF, 0, 0xFFFF},
		{0x001F, 0, 0, 0xFFFF, 0xFFFF},
	} {
		r, g, b, a := tc.c.RGBA()
		if r != tc.r || g != tc.g || b != tc.b || a != tc.a {
			t.Errorf("RGB565(%#04x).RGBA() = %#x,%#x,%#x,%#x, want %#x,%#x,%#x,%#x",
				uint16(tc.c), r, g, b, a, tc.r, tc.g, tc.b, tc.a)
		}
	}
}

func TestFrom(t *testing.T) {
	for _, tc := range []struct {
		c    color.Color
		want RGB565
	}{
		{color.White, 0xFFFF},
		{color.Black, 0x0000},
		{color.NRGBA{R: 0xFF, A: 0xFF}, 0xF800},
		{color.NRGBA{G: 0xFF, A: 0xFF}, 0x07E0},
		{color.NRGBA{B: 0xFF, A: 0xFF}, 0x001F},
	} {
		if got := From(tc.c); got != tc.want {
			t.Errorf("From(%v) = %#04x, want %#04x", tc.c, uint16(got), uint16(tc.want))
		}
	}
}

func TestModelRoundTrip(t *testing.T) {
	c := RGB565(0x1234)
	if got := RGB565Model.Convert(c); got != c {
		t.Errorf("RGB565Model.Convert(%v) = %v", c, got)
	}
	// Converting a converted color is stable.
	n := color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xFF}
	first := From(n)
	if got := From(first); got != first {
		t.Errorf("From() is not idempotent: %#04x then %#04x", uint16(first), uint16(got))
	}
}

func TestImageSetAt(t *testing.T) {
	img := New(image.Rect(0, 0, 4, 3))
	if got, want := len(img.Pix), 4*3*2; got != want {
		t.Fatalf("len(Pix) = %d, want %d", got, want)
	}

	img.SetRGB565(1, 2, 0xF800)
	if got := img.RGB565At(1, 2); got != 0xF800 {
		t.Errorf("RGB565At(1, 2) = %#04x, want 0xF800", uint16(got))
	}
	// Big-endian backing store, the byte order a panel write consumes.
	o := img.PixOffset(1, 2)
	if img.Pix[o] != 0xF8 || img.Pix[o+1] != 0x00 {
		t.Errorf("Pix[%d:] = %02X%02X, want F800", o, img.Pix[o], img.Pix[o+1])
	}

	// Out of bounds accesses are ignored.
	img.SetRGB565(-1, 0, 0xFFFF)
	img.SetRGB565(4, 0, 0xFFFF)
	if got := img.RGB565At(4, 0); got != 0 {
		t.Errorf("RGB565At(4, 0) = %#04x, want 0", uint16(got))
	}
}

func TestImageDraw(t *testing.T) {
	img := New(image.Rect(0, 0, 2, 2))
	src := image.NewNRGBA(img.Bounds())
	src.SetNRGBA(0, 0, color.NRGBA{R: 0xFF, A: 0xFF})
	src.SetNRGBA(1, 1, color.NRGBA{B: 0xFF, A: 0xFF})

	draw.Src.Draw(img, img.Bounds(), src, image.Point{})

	if got := img.RGB565At(0, 0); got != 0xF800 {
		t.Errorf("RGB565At(0, 0) = %#04x, want 0xF800", uint16(got))
	}
	if got := img.RGB565At(1, 1); got != 0x001F {
		t.Errorf("RGB565At(1, 1) = %#04x, want 0x001F", uint16(got))
	}
	if !img.Opaque() {
		t.Error("Opaque() = false")
	}
}

func TestImageOffsetBounds(t *testing.T) {
	r := image.Rect(2, 3, 6, 5)
	img := New(r)
	if img.Bounds() != r {
		t.Errorf("Bounds() = %v, want %v", img.Bounds(), r)
	}
	img.SetRGB565(2, 3, 0x07E0)
	if got := img.PixOffset(2, 3); got != 0 {
		t.Errorf("PixOffset(2, 3) = %d, want 0", got)
	}
	if got := img.RGB565At(2, 3); got != 0x07E0 {
		t.Errorf("RGB565At(2, 3) = %#04x, want 0x07E0", uint16(got))
	}
}
