// Copyright 2025 The Panels Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen2d implements a 2D display.Drawer that outputs to terminal
// (stdout) using ANSI color codes.
//
// Useful to exercise the panel flush path while your LCD module is still in
// the mail: it accepts the same RGB565 dirty rectangles as the real panel
// driver.
package screen2d

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"

	"github.com/vernon-displays/panels/st7789"
	"github.com/vernon-displays/panels/st7789/image565"
)

// Opts represents the options available for this display.
type Opts struct {
	W, H    int
	Palette *ansi256.Palette
	// Out overrides the destination. Defaults to a colorable stdout.
	Out io.Writer

	_ struct{}
}

// Dev is an LCD panel emulator that draws at the console.
type Dev struct {
	w       io.Writer
	rect    image.Rectangle
	palette ansi256.Palette

	pixels []byte // 3 bytes per pixel, RGB
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
//
// Permits local testing of drawing and flush code without hardware.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Out
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Dev{
		w:       w,
		rect:    image.Rect(0, 0, opts.W, opts.H),
		palette: *p,
		pixels:  make([]byte, 3*opts.W*opts.H),
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("Screen2D{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so the shell is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.rect)
	if r.Empty() {
		return nil
	}
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			r16, g16, b16, _ := src.At(sp.X+x, sp.Y+y).RGBA()
			d.setRGB(r.Min.X+x, r.Min.Y+y, byte(r16>>8), byte(g16>>8), byte(b16>>8))
		}
	}
	return d.refresh()
}

// Flush accepts one RGB565 dirty rectangle. It implements the same contract
// a graphics library drives against the real panel driver.
func (d *Dev) Flush(r image.Rectangle, pixels []uint16, done func()) error {
	if len(pixels) != r.Dx()*r.Dy() {
		return errors.New("screen2d: pixel count does not match the rectangle")
	}
	for i, p := range pixels {
		x := r.Min.X + i%r.Dx()
		y := r.Min.Y + i/r.Dx()
		if !(image.Point{X: x, Y: y}.In(d.rect)) {
			continue
		}
		r16, g16, b16, _ := image565.RGB565(p).RGBA()
		d.setRGB(x, y, byte(r16>>8), byte(g16>>8), byte(b16>>8))
	}
	if err := d.refresh(); err != nil {
		return err
	}
	if done != nil {
		done()
	}
	return nil
}

func (d *Dev) setRGB(x, y int, r, g, b byte) {
	o := 3 * (y*d.rect.Dx() + x)
	d.pixels[o] = r
	d.pixels[o+1] = g
	d.pixels[o+2] = b
}

func (d *Dev) refresh() error {
	// Repaint the full frame from the home position; minimizes allocations
	// per call by reusing the scratch buffer.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\033[H")
	w := d.rect.Dx()
	for y := 0; y < d.rect.Dy(); y++ {
		for x := 0; x < w; x++ {
			o := 3 * (y*w + x)
			c := color.NRGBA{d.pixels[o], d.pixels[o+1], d.pixels[o+2], 255}
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ st7789.Flusher = &Dev{}
var _ fmt.Stringer = &Dev{}
