// Copyright 2025 The Panels Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7789

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/vernon-displays/panels/st7789/image565"
)

// LCD147 is the configuration for the 1.47" 172x320 panel. Its glass is
// centered on the native frame, 34 columns in.
var LCD147 = Opts{
	W:                   172,
	H:                   320,
	OffsetX:             34,
	OffsetY:             0,
	Orientation:         Horizontal,
	Freq:                80 * physic.MegaHertz,
	BacklightFreq:       physic.KiloHertz,
	BacklightResolution: 10,
	InitialBrightness:   10,
}

// LCD240x320 is the configuration for full-frame 240x320 glass.
var LCD240x320 = Opts{
	W:                   240,
	H:                   320,
	Orientation:         Horizontal,
	Freq:                80 * physic.MegaHertz,
	BacklightFreq:       physic.KiloHertz,
	BacklightResolution: 10,
	InitialBrightness:   10,
}

// Opts defines the options for the device. It is immutable after New.
type Opts struct {
	// W and H are the visible glass dimensions in pixels.
	W int
	H int
	// OffsetX and OffsetY position the glass inside the controller's native
	// 240x320 frame.
	OffsetX int
	OffsetY int
	// Orientation selects the row/column order the panel is addressed in.
	Orientation Orientation
	// Freq is the SPI clock. Defaults to 80MHz.
	Freq physic.Frequency
	// BacklightFreq is the backlight PWM frequency. Defaults to 1kHz.
	BacklightFreq physic.Frequency
	// BacklightResolution is the backlight PWM resolution in bits (1..16).
	// Defaults to 10.
	BacklightResolution int
	// InitialBrightness is the backlight percentage set at the end of Init.
	InitialBrightness int
}

// validate checks the options against the controller's native frame for the
// given orientation.
func (o *Opts) validate(or Orientation) error {
	if o.W <= 0 || o.H <= 0 {
		return errors.New("st7789: width and height must be positive")
	}
	if o.OffsetX < 0 || o.OffsetY < 0 {
		return errors.New("st7789: offsets must not be negative")
	}
	if o.BacklightResolution < 1 || o.BacklightResolution > 16 {
		return fmt.Errorf("st7789: invalid backlight resolution %d bits", o.BacklightResolution)
	}
	if o.InitialBrightness < 0 || o.InitialBrightness > 100 {
		return fmt.Errorf("st7789: invalid initial brightness %d%%", o.InitialBrightness)
	}
	cols, rows := o.OffsetX+o.W, o.OffsetY+o.H
	if or.swapAxes() {
		cols, rows = o.OffsetY+o.H, o.OffsetX+o.W
	}
	if cols > nativeColumns || rows > nativeRows {
		return fmt.Errorf("st7789: %dx%d with offset (%d,%d) exceeds the native %dx%d frame in %s orientation",
			o.W, o.H, o.OffsetX, o.OffsetY, nativeColumns, nativeRows, or)
	}
	return nil
}

// Dev is an open handle to the display controller.
//
// Dev holds no lock. If it is driven from more than one caller, for example
// a flush callback plus direct clears, the callers must serialize externally.
type Dev struct {
	// Communication.
	c   conn.Conn
	dc  gpio.PinOut
	cs  gpio.PinOut
	rst gpio.PinOut
	bl  gpio.PinOut

	rect  image.Rectangle
	opts  Opts
	sleep func(time.Duration)

	// Mutable.
	initialized bool
	orientation Orientation
	brightness  int
	pix         []byte // scratch for pixel encoding
}

// New returns a Dev that communicates over SPI with an ST7789 display
// controller.
//
// dc is the data/command select line, cs the chip select, rst the panel
// reset. bl gates the backlight through PWM and may be nil when the
// backlight is hardwired.
//
// New configures the SPI port but does not touch the panel; call Init to
// bring it up.
func New(p spi.Port, dc, cs, rst, bl gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		return nil, errors.New("st7789: options are required")
	}
	if dc == nil || cs == nil || rst == nil {
		return nil, errors.New("st7789: dc, cs and rst pins are required")
	}
	o := *opts
	if o.Freq == 0 {
		o.Freq = 80 * physic.MegaHertz
	}
	if o.BacklightFreq == 0 {
		o.BacklightFreq = physic.KiloHertz
	}
	if o.BacklightResolution == 0 {
		o.BacklightResolution = 10
	}
	if err := o.validate(o.Orientation); err != nil {
		return nil, err
	}
	c, err := p.Connect(o.Freq, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	return &Dev{
		c:           c,
		dc:          dc,
		cs:          cs,
		rst:         rst,
		bl:          bl,
		rect:        image.Rect(0, 0, o.W, o.H),
		opts:        o,
		sleep:       time.Sleep,
		orientation: o.Orientation,
	}, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("st7789.Dev{%s, %s, %dx%d}", d.c, d.dc, d.rect.Dx(), d.rect.Dy())
}

// Init resets the panel and runs the register bring-up script.
//
// Calling Init on an initialized device is a no-op returning nil. There are
// no retries: the first transport failure aborts the sequence and leaves the
// panel in an unspecified hardware state, and the only recovery is another
// full Init.
func (d *Dev) Init() error {
	if d.initialized {
		return nil
	}
	eh := &errorHandler{d: d}

	// Control lines to their idle levels.
	eh.pinOut(d.cs, gpio.High)
	eh.pinOut(d.dc, gpio.High)
	eh.pinOut(d.rst, gpio.High)

	// Arm the backlight PWM; the panel stays dark until bring-up completed.
	if d.bl != nil && eh.err == nil {
		eh.err = d.bl.PWM(0, d.opts.BacklightFreq)
	}

	// Hardware reset. The controller needs the settling time on both edges.
	eh.pinOut(d.cs, gpio.Low)
	eh.delay(resetHold)
	eh.pinOut(d.rst, gpio.Low)
	eh.delay(resetHold)
	eh.pinOut(d.rst, gpio.High)
	eh.delay(resetHold)

	initPanel(eh, initScript(d.orientation))

	if eh.err != nil {
		return fmt.Errorf("st7789: init: %w", eh.err)
	}
	d.initialized = true
	if d.bl == nil {
		return nil
	}
	return d.SetBacklight(d.opts.InitialBrightness)
}

const resetHold = 50 * time.Millisecond

// IsInitialized reports whether Init completed successfully.
func (d *Dev) IsInitialized() bool {
	return d.initialized
}

// Width returns the visible width in pixels.
func (d *Dev) Width() int {
	return d.rect.Dx()
}

// Height returns the visible height in pixels.
func (d *Dev) Height() int {
	return d.rect.Dy()
}

// Brightness returns the current backlight percentage.
func (d *Dev) Brightness() int {
	return d.brightness
}

// Orientation returns the active orientation.
func (d *Dev) Orientation() Orientation {
	return d.orientation
}

// SetWindow addresses the inclusive drawing rectangle (x1,y1)-(x2,y2) and
// arms the panel for the pixel burst that follows.
//
// Bounds are not checked; an out-of-range window produces garbage on the
// glass, not an error.
func (d *Dev) SetWindow(x1, y1, x2, y2 int) error {
	if !d.initialized {
		return errNotInitialized
	}
	eh := &errorHandler{d: d}
	setAddressWindow(eh, d.orientation, d.opts.OffsetX, d.opts.OffsetY, x1, y1, x2, y2)
	return eh.err
}

// DrawPixelBuffer blits a run of RGB565 pixels into the inclusive rectangle
// (x1,y1)-(x2,y2) as a single burst write.
//
// pixels must hold exactly (x2-x1+1)*(y2-y1+1) row-major values in the order
// the panel auto-increments through. The length is deliberately not checked
// on this hot path; a mismatch shows as garbage, not as an error.
func (d *Dev) DrawPixelBuffer(x1, y1, x2, y2 int, pixels []uint16) error {
	if !d.initialized {
		return errNotInitialized
	}
	n := 2 * len(pixels)
	if cap(d.pix) < n {
		d.pix = make([]byte, n)
	}
	buf := d.pix[:n]
	for i, p := range pixels {
		binary.BigEndian.PutUint16(buf[2*i:], p)
	}
	eh := &errorHandler{d: d}
	setAddressWindow(eh, d.orientation, d.opts.OffsetX, d.opts.OffsetY, x1, y1, x2, y2)
	eh.sendData(buf)
	return eh.err
}

// ClearScreen fills the whole panel with a single RGB565 color.
func (d *Dev) ClearScreen(c uint16) error {
	if !d.initialized {
		return errNotInitialized
	}
	eh := &errorHandler{d: d}
	fillScreen(eh, d.orientation, d.opts.OffsetX, d.opts.OffsetY, d.rect.Dx(), d.rect.Dy(), c)
	return eh.err
}

// SetBacklight sets the backlight brightness as a percentage. Values outside
// [0,100] clamp.
//
// The percentage maps linearly onto the duty range of the configured PWM
// resolution, then scales to the periph duty range.
func (d *Dev) SetBacklight(brightness int) error {
	if d.bl == nil {
		return errors.New("st7789: no backlight pin configured")
	}
	if brightness < 0 {
		brightness = 0
	}
	if brightness > 100 {
		brightness = 100
	}
	max := maxDuty(d.opts.BacklightResolution)
	scaled := gpio.Duty(int64(dutyCycle(brightness, d.opts.BacklightResolution)) * int64(gpio.DutyMax) / int64(max))
	if err := d.bl.PWM(scaled, d.opts.BacklightFreq); err != nil {
		return fmt.Errorf("st7789: backlight: %w", err)
	}
	d.brightness = brightness
	return nil
}

// SetOrientation reissues the memory access control command and remaps all
// subsequent window addressing.
//
// The glass plus offsets must also fit the native frame in the new
// orientation; 172x320 glass for example only fits horizontally.
func (d *Dev) SetOrientation(o Orientation) error {
	if !d.initialized {
		return errNotInitialized
	}
	if err := d.opts.validate(o); err != nil {
		return err
	}
	eh := &errorHandler{d: d}
	eh.sendCommand(cmdMemoryAccessControl)
	eh.sendData([]byte{o.madctl()})
	if eh.err != nil {
		return eh.err
	}
	d.orientation = o
	return nil
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image565.RGB565Model
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
//
// It draws synchronously; once it returns the rectangle is on the glass.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if !d.initialized {
		return errNotInitialized
	}
	r = r.Intersect(d.rect)
	if r.Empty() {
		return nil
	}
	var pix []byte
	if img, ok := src.(*image565.Image); ok && r == d.rect && img.Rect == d.rect && sp == (image.Point{}) {
		// Exact size, full frame, panel-native encoding: fast path.
		pix = img.Pix
	} else {
		tmp := image565.New(r)
		draw.Src.Draw(tmp, r, src, sp)
		pix = tmp.Pix
	}
	eh := &errorHandler{d: d}
	setAddressWindow(eh, d.orientation, d.opts.OffsetX, d.opts.OffsetY, r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1)
	eh.sendData(pix)
	return eh.err
}

// Halt turns the display and backlight off. Implements conn.Resource.
//
// Call Init to bring the panel back.
func (d *Dev) Halt() error {
	if !d.initialized {
		return nil
	}
	eh := &errorHandler{d: d}
	eh.sendCommand(cmdDisplayOff)
	if d.bl != nil && eh.err == nil {
		eh.err = d.bl.PWM(0, d.opts.BacklightFreq)
	}
	d.initialized = false
	d.brightness = 0
	return eh.err
}

// dutyCycle maps a brightness percentage onto the duty range of a PWM with
// the given resolution in bits. The mapping is linear: 0 maps to 0, 100 to
// the largest representable duty.
func dutyCycle(brightness, resolutionBits int) int {
	return brightness * maxDuty(resolutionBits) / 100
}

func maxDuty(resolutionBits int) int {
	return 1<<uint(resolutionBits) - 1
}

var errNotInitialized = errors.New("st7789: display not initialized")

var _ display.Drawer = &Dev{}
var _ conn.Resource = &Dev{}
