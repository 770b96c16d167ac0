// Copyright 2025 The Panels Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7789

import "time"

// Commands
const (
	cmdSleepOut            byte = 0x11
	cmdInversionOn         byte = 0x21
	cmdDisplayOff          byte = 0x28
	cmdDisplayOn           byte = 0x29
	cmdColumnAddressSet    byte = 0x2A
	cmdRowAddressSet       byte = 0x2B
	cmdMemoryWrite         byte = 0x2C
	cmdMemoryAccessControl byte = 0x36
	cmdPixelFormat         byte = 0x3A
	cmdRAMControl          byte = 0xB0
	cmdPorchControl        byte = 0xB2
	cmdGateControl         byte = 0xB7
	cmdVCOMSetting         byte = 0xBB
	cmdLCMControl          byte = 0xC0
	cmdVDVVRHEnable        byte = 0xC2
	cmdVRHSet              byte = 0xC3
	cmdVDVSet              byte = 0xC4
	cmdFrameRateControl    byte = 0xC6
	cmdPowerControl1       byte = 0xD0
	cmdGateAdjust          byte = 0xD6
	cmdPositiveGamma       byte = 0xE0
	cmdNegativeGamma       byte = 0xE1
)

// The controller's native addressable frame. Glass dimensions plus offsets
// must fit inside it.
const (
	nativeColumns = 240
	nativeRows    = 320
)

// Orientation selects how logical (x, y) coordinates map onto the
// controller's native column/row frame.
type Orientation uint8

const (
	// Horizontal addresses the panel in its native column/row order.
	Horizontal Orientation = iota
	// Vertical swaps the roles of rows and columns.
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// madctl returns the memory access control parameter byte selecting the
// row/column order for this orientation.
func (o Orientation) madctl() byte {
	if o == Vertical {
		return 0x70
	}
	return 0x00
}

// swapAxes reports whether window coordinates must be remapped onto the
// swapped column/row frame.
func (o Orientation) swapAxes() bool {
	return o == Vertical
}

// initCmd is one step of a panel bring-up script: a command, its parameter
// bytes and the settling time the controller requires before the next
// command.
type initCmd struct {
	cmd   byte
	data  []byte
	delay time.Duration
}

// initScript returns the ST7789T bring-up sequence. The parameter bytes are
// the vendor constants for this panel revision; supporting another revision
// means swapping this table, not the transaction logic.
//
// The two 120ms waits around sleep-out are datasheet minimums. Shortening
// them leaves the panel displaying garbage.
func initScript(o Orientation) []initCmd {
	return []initCmd{
		{cmd: cmdSleepOut, delay: 120 * time.Millisecond},
		{cmd: cmdMemoryAccessControl, data: []byte{o.madctl()}},
		{cmd: cmdPixelFormat, data: []byte{0x05}}, // 16 bits per pixel
		{cmd: cmdRAMControl, data: []byte{0x00, 0xE8}},
		{cmd: cmdPorchControl, data: []byte{0x0C, 0x0C, 0x00, 0x33, 0x33}},
		{cmd: cmdGateControl, data: []byte{0x35}},
		{cmd: cmdVCOMSetting, data: []byte{0x35}},
		{cmd: cmdLCMControl, data: []byte{0x2C}},
		{cmd: cmdVDVVRHEnable, data: []byte{0x01}},
		{cmd: cmdVRHSet, data: []byte{0x13}},
		{cmd: cmdVDVSet, data: []byte{0x20}},
		{cmd: cmdFrameRateControl, data: []byte{0x0F}},
		{cmd: cmdPowerControl1, data: []byte{0xA4, 0xA1}},
		{cmd: cmdGateAdjust, data: []byte{0xA1}},
		{cmd: cmdPositiveGamma, data: []byte{
			0xF0, 0x00, 0x04, 0x04, 0x04, 0x05, 0x29,
			0x33, 0x3E, 0x38, 0x12, 0x12, 0x28, 0x30,
		}},
		{cmd: cmdNegativeGamma, data: []byte{
			0xF0, 0x07, 0x0A, 0x0D, 0x0B, 0x07, 0x28,
			0x33, 0x3E, 0x36, 0x14, 0x14, 0x29, 0x32,
		}},
		{cmd: cmdInversionOn},
		{cmd: cmdSleepOut, delay: 120 * time.Millisecond},
		{cmd: cmdDisplayOn},
	}
}
