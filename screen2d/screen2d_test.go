// Copyright 2025 The Panels Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package screen2d

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{W: 4, H: 2, Out: &buf})
	if got, want := d.String(), "Screen2D{4x2}"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestBounds(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{W: 4, H: 2, Out: &buf})
	if got, want := d.Bounds(), image.Rect(0, 0, 4, 2); got != want {
		t.Fatalf("Bounds() = %v, want %v", got, want)
	}
	if d.ColorModel() != color.NRGBAModel {
		t.Fatal("unexpected color model")
	}
}

func TestDraw(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{W: 2, H: 2, Out: &buf})
	src := image.NewNRGBA(d.Bounds())
	src.SetNRGBA(0, 0, color.NRGBA{R: 0xFF, A: 0xFF})
	if err := d.Draw(d.Bounds(), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\033[H") {
		t.Errorf("frame does not home the cursor: %q", out)
	}
	// One color reset per row.
	if got, want := strings.Count(out, "\033[0m\n"), 2; got != want {
		t.Errorf("got %d row resets, want %d", got, want)
	}
	if d.pixels[0] != 0xFF || d.pixels[1] != 0 || d.pixels[2] != 0 {
		t.Errorf("pixel (0, 0) = %v, want red", d.pixels[:3])
	}
}

func TestDrawClipped(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{W: 2, H: 2, Out: &buf})
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	// A rectangle fully outside the display is a no-op.
	if err := d.Draw(image.Rect(4, 4, 8, 8), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestFlush(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{W: 2, H: 2, Out: &buf})
	called := false
	pixels := []uint16{0xF800, 0x07E0, 0x001F, 0xFFFF}
	if err := d.Flush(image.Rect(0, 0, 2, 2), pixels, func() { called = true }); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("done was not called")
	}
	want := []byte{
		0xFF, 0x00, 0x00,
		0x00, 0xFF, 0x00,
		0x00, 0x00, 0xFF,
		0xFF, 0xFF, 0xFF,
	}
	if !bytes.Equal(d.pixels, want) {
		t.Errorf("pixels = %v, want %v", d.pixels, want)
	}
	if buf.Len() == 0 {
		t.Error("no frame was painted")
	}
}

func TestFlushBadLength(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{W: 2, H: 2, Out: &buf})
	err := d.Flush(image.Rect(0, 0, 2, 2), []uint16{0xF800}, func() {
		t.Error("done called on error")
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestFlushNilDone(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{W: 1, H: 1, Out: &buf})
	if err := d.Flush(image.Rect(0, 0, 1, 1), []uint16{0}, nil); err != nil {
		t.Fatal(err)
	}
}

func TestHalt(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{W: 1, H: 1, Out: &buf})
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "\n\033[0m"; got != want {
		t.Errorf("Halt() wrote %q, want %q", got, want)
	}
}
