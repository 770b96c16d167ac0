// Copyright 2025 The Panels Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package image565 implements a 16-bit RGB565 image, the pixel format
// ST7789-class panels consume.
//
// The backing store keeps pixels big-endian in row-major order, which is the
// exact byte sequence a panel memory write auto-increments through, so a
// frame can be burst-written without re-encoding.
package image565
