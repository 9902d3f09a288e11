// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7796s

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/GermanBionicSystems/st7796/st7796s/rgb565"
	"periph.io/x/conn/v3/display"
)

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return rgb565.Model
}

// Bounds implements display.Drawer. It is the window set up by Init.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
//
// Only the part of r inside Bounds() is sent: the address window is narrowed
// to it and the pixels are streamed as one RAMWR.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	clipped := r.Intersect(d.rect)
	if clipped.Empty() {
		return nil
	}
	sp = sp.Add(clipped.Min.Sub(r.Min))

	var pix []byte
	if img, ok := src.(*rgb565.Image); ok && sp == clipped.Min && clipped.In(img.Rect) &&
		img.Rect.Min.X == clipped.Min.X && img.Stride == 2*clipped.Dx() {
		// Rows are contiguous: send the backing store as is.
		i := img.PixOffset(clipped.Min.X, clipped.Min.Y)
		pix = img.Pix[i : i+clipped.Dx()*clipped.Dy()*2]
	} else {
		next := rgb565.NewImage(clipped)
		draw.Draw(next, clipped, src, sp, draw.Src)
		pix = next.Pix
	}

	if err := d.window("draw", clipped); err != nil {
		return err
	}
	if err := d.send("draw", RAMWR, nil); err != nil {
		return err
	}
	return withOp("draw", d.t.writeData(pix))
}

// Fill paints the whole window with c.
func (d *Dev) Fill(c color.Color) error {
	if err := d.window("fill", d.rect); err != nil {
		return err
	}
	if err := d.send("fill", RAMWR, nil); err != nil {
		return err
	}
	b := rgb565.Model.Convert(c).(rgb565.Color).Bytes()
	return withOp("fill", d.t.writeRepeated(b[:], d.rect.Dx()*d.rect.Dy()))
}

// Halt implements conn.Resource. It turns the display off.
func (d *Dev) Halt() error {
	return d.DispOff()
}

func (d *Dev) window(op string, r image.Rectangle) error {
	if err := d.send(op, CASET, span(uint16(r.Min.X), uint16(r.Max.X-1))); err != nil {
		return err
	}
	return d.send(op, RASET, span(uint16(r.Min.Y), uint16(r.Max.Y-1)))
}

var _ display.Drawer = &Dev{}
