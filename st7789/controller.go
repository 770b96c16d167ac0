// Copyright 2025 The Panels Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7789

import (
	"encoding/binary"
	"time"
)

// controller is the ordered command/data primitive the transaction layer is
// written against. Dev satisfies it through errorHandler.
type controller interface {
	sendCommand(byte)
	sendData([]byte)
	delay(time.Duration)
}

// initPanel replays a bring-up script in order.
func initPanel(ctrl controller, script []initCmd) {
	for _, c := range script {
		ctrl.sendCommand(c.cmd)
		if len(c.data) > 0 {
			ctrl.sendData(c.data)
		}
		if c.delay > 0 {
			ctrl.delay(c.delay)
		}
	}
}

// setAddressWindow addresses the inclusive rectangle (x1,y1)-(x2,y2) and arms
// the panel for the pixel burst that follows; the controller auto-increments
// through the rectangle.
//
// Each offset is applied to its own axis before the ranges swap roles for a
// vertical orientation. Swapping the axes without swapping which offset
// applies would shift the window on the glass.
func setAddressWindow(ctrl controller, o Orientation, offsetX, offsetY, x1, y1, x2, y2 int) {
	c1, c2 := x1+offsetX, x2+offsetX
	r1, r2 := y1+offsetY, y2+offsetY
	if o.swapAxes() {
		c1, c2, r1, r2 = y1+offsetY, y2+offsetY, x1+offsetX, x2+offsetX
	}

	cols := make([]byte, 4)
	binary.BigEndian.PutUint16(cols, uint16(c1))
	binary.BigEndian.PutUint16(cols[2:], uint16(c2))
	ctrl.sendCommand(cmdColumnAddressSet)
	ctrl.sendData(cols)

	rows := make([]byte, 4)
	binary.BigEndian.PutUint16(rows, uint16(r1))
	binary.BigEndian.PutUint16(rows[2:], uint16(r2))
	ctrl.sendCommand(cmdRowAddressSet)
	ctrl.sendData(rows)

	ctrl.sendCommand(cmdMemoryWrite)
}

// fillScreen floods the full panel with a single color, one scanline per
// transfer. Trades transaction count for not needing a frame-sized buffer;
// fine for a rare operation.
func fillScreen(ctrl controller, o Orientation, offsetX, offsetY, w, h int, c uint16) {
	line := make([]byte, 2*w)
	for i := 0; i < w; i++ {
		binary.BigEndian.PutUint16(line[2*i:], c)
	}
	setAddressWindow(ctrl, o, offsetX, offsetY, 0, 0, w-1, h-1)
	for y := 0; y < h; y++ {
		ctrl.sendData(line)
	}
}
