// Copyright 2025 The Panels Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package st7789 controls an ST7789T LCD panel over 4-wire SPI.
//
// The ST7789 is a 16-bit (RGB565) color TFT controller with a native
// addressable frame of 240x320 pixels. Panels with smaller glass, like the
// 172x320 1.47" module, expose a window of that frame selected by a per-axis
// pixel offset.
//
// The driver owns the command/transaction layer only: panel bring-up, window
// addressing, pixel bursts and backlight duty. Rendering is the caller's
// business; the Dev implements display.Drawer for image-based drawing and the
// Flusher contract for graphics libraries that push dirty rectangles.
//
// # Wiring
//
// Connect SDA to SPI_MOSI and SCL to SPI_CLK. CS, DC (data/command), RST and
// the backlight gate each take a GPIO output.
//
// Datasheet: https://www.waveshare.com/w/upload/a/ad/ST7789VW.pdf
package st7789
