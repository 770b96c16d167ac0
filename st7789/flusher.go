// Copyright 2025 The Panels Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7789

import "image"

// Flusher is the contract a graphics library's flush callback drives:
// exactly one call per dirty rectangle, with done invoked once the rectangle
// reached the output so the library may reuse the pixel buffer.
//
// pixels holds r.Dx()*r.Dy() row-major RGB565 values. done may be nil.
type Flusher interface {
	Flush(r image.Rectangle, pixels []uint16, done func()) error
}

// PanelFlusher adapts a Dev to the Flusher contract.
//
// Calls must be serialized together with any direct use of the underlying
// Dev; neither holds a lock.
type PanelFlusher struct {
	d *Dev
}

// NewFlusher returns a PanelFlusher writing to d.
func NewFlusher(d *Dev) *PanelFlusher {
	return &PanelFlusher{d: d}
}

// Flush blits one dirty rectangle and signals completion.
//
// The transfer is synchronous, so done runs before Flush returns. On error
// done is not called; the library must not reuse the buffer.
func (f *PanelFlusher) Flush(r image.Rectangle, pixels []uint16, done func()) error {
	if err := f.d.DrawPixelBuffer(r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1, pixels); err != nil {
		return err
	}
	if done != nil {
		done()
	}
	return nil
}

var _ Flusher = &PanelFlusher{}
