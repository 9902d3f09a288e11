// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen2d implements a 2D display.Drawer that outputs to a terminal
// using ANSI color codes.
//
// Each terminal cell shows one block of Scale x Scale pixels, sampled at its
// top left corner. Useful to preview what a TFT panel would show.
package screen2d

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"strconv"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

// Opts represents the options available for this display.
type Opts struct {
	W int
	H int
	// Scale is the number of pixels per terminal cell in each direction.
	// Defaults to 1.
	Scale   int
	Palette *ansi256.Palette
	// Writer defaults to a colorable stdout.
	Writer io.Writer

	_ struct{}
}

// Dev is a 2D display emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	scale   int
	palette *ansi256.Palette

	img *image.NRGBA
	buf bytes.Buffer
	// rows is the number of lines printed by the previous refresh.
	rows int
}

// New returns a Dev that displays at the console.
func New(opts *Opts) (*Dev, error) {
	if opts.W <= 0 || opts.H <= 0 {
		return nil, fmt.Errorf("screen2d: invalid size %dx%d", opts.W, opts.H)
	}
	s := opts.Scale
	if s <= 0 {
		s = 1
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Writer
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Dev{
		w:       w,
		scale:   s,
		palette: p,
		img:     image.NewNRGBA(image.Rect(0, 0, opts.W, opts.H)),
	}, nil
}

func (d *Dev) String() string {
	return "Screen2D"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so the console is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.img.Rect
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Draw(d.img, r, src, sp, draw.Src)
	return d.refresh()
}

// Write accepts a stream of big endian RGB565 pixels, row by row from the top
// left corner, and writes it to the console.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels)%2 != 0 {
		return 0, errors.New("screen2d: invalid RGB565 stream length")
	}
	w := d.img.Rect.Dx()
	n := len(pixels) / 2
	if limit := w * d.img.Rect.Dy(); n > limit {
		n = limit
	}
	for i := 0; i < n; i++ {
		v := uint16(pixels[2*i])<<8 | uint16(pixels[2*i+1])
		d.img.SetNRGBA(i%w, i/w, expand(v))
	}
	return len(pixels), d.refresh()
}

// expand converts a RGB565 value to 8 bits per channel.
func expand(v uint16) color.NRGBA {
	r := uint8(v>>11) & 0x1F
	g := uint8(v>>5) & 0x3F
	b := uint8(v) & 0x1F
	return color.NRGBA{R: r<<3 | r>>2, G: g<<2 | g>>4, B: b<<3 | b>>2, A: 255}
}

func (d *Dev) refresh() error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	if d.rows != 0 {
		// Go back over the previous frame.
		_, _ = d.buf.WriteString("\r\033[")
		_, _ = d.buf.WriteString(strconv.Itoa(d.rows))
		_, _ = d.buf.WriteString("A")
	}
	rows := 0
	b := d.img.Rect
	for y := b.Min.Y; y < b.Max.Y; y += d.scale {
		_, _ = d.buf.WriteString("\033[0m")
		for x := b.Min.X; x < b.Max.X; x += d.scale {
			_, _ = io.WriteString(&d.buf, d.palette.Block(d.img.NRGBAAt(x, y)))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
		rows++
	}
	d.rows = rows
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
