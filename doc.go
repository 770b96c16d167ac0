// Copyright 2025 The Panels Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package panels is a container for display panel drivers.
package panels
