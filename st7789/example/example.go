// Copyright 2025 The Panels Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package example

import (
	"image"
	"log"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/vernon-displays/panels/st7789"
)

// Example renders a small status card with gg and pushes it to the panel.
func Example() {
	// Initialize the host.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use spireg SPI port registry to find the first available SPI bus.
	p, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	dev, err := st7789.New(p,
		gpioreg.ByName("GPIO15"), // data/command
		gpioreg.ByName("GPIO14"), // chip select
		gpioreg.ByName("GPIO21"), // reset
		gpioreg.ByName("GPIO22"), // backlight
		&st7789.LCD147)
	if err != nil {
		log.Fatal(err)
	}
	if err := dev.Init(); err != nil {
		log.Fatal(err)
	}

	dc := gg.NewContext(dev.Width(), dev.Height())
	dc.SetRGB(0.06, 0.08, 0.12)
	dc.Clear()

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Fatal(err)
	}
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: 24}))
	dc.SetRGB(0.9, 0.9, 0.9)
	dc.DrawStringAnchored(time.Now().Format("15:04"), float64(dev.Width())/2, 48, 0.5, 0.5)
	dc.SetRGB(0.98, 0.45, 0.1)
	dc.DrawCircle(float64(dev.Width())/2, 180, 48)
	dc.Fill()

	if err := dev.Draw(dev.Bounds(), dc.Image(), image.Point{}); err != nil {
		log.Fatal(err)
	}
	if err := dev.SetBacklight(80); err != nil {
		log.Fatal(err)
	}
}
