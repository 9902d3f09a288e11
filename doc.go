// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package st7796 is a container for the ST7796S TFT controller driver and the
// tooling around it.
//
// The driver itself lives in package st7796s. The screen2d and tinygobus
// packages provide a terminal preview and TinyGo bus adapters.
package st7796
