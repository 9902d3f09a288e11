// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package st7796s controls an ST7796S TFT LCD controller over a 4-wire SPI
// interface.
//
// # Wiring
//
// Connect SCL to SPI_CLK, SDA to SPI_MOSI and SDO to SPI_MISO. CS, DC and RST
// go to GPIO pins driven by this package. CS may be left to the SPI port
// (pass nil) and RST may be tied high (pass nil), DC is mandatory.
//
// # Protocol
//
// Every command byte is sent in its own chip select frame with DC low. Its
// parameters, pixel data or the bytes read back follow in a second frame with
// DC high. Reads start with a dummy byte for RDDID, RNEDSI, RDDST and
// RDDISBV; the decoders skip it.
//
// The controller reads reliably only up to ~10MHz. A Dev connected faster
// than MaxReadFrequency refuses read commands with ErrReadRate.
//
// # Usage
//
// Call Init once after New. It pulses RST, wakes the controller, selects
// RGB565 and paints the window black. Dev implements display.Drawer so any
// image can then be drawn to it.
//
// # Datasheet
//
// https://www.displayfuture.com/Display/datasheet/controller/ST7796s.pdf
package st7796s
