// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/GermanBionicSystems/st7796/st7796s/rgb565"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"
)

// textImage renders s in white on black, centered and wrapped to r.
func textImage(r image.Rectangle, s string, size float64) (image.Image, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	w, h := float64(r.Dx()), float64(r.Dy())
	dc := gg.NewContext(r.Dx(), r.Dy())
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB(1, 1, 1)
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: size}))
	padding := 8.0
	dc.DrawStringWrapped(s, w/2, h/2, 0.5, 0.5, w-2*padding, 1.5, gg.AlignCenter)
	return dc.Image(), nil
}

// patternImage draws color bars and circles, handy to check MADCTL and
// the RGB order.
func patternImage(r image.Rectangle) image.Image {
	w, h := float64(r.Dx()), float64(r.Dy())
	dc := gg.NewContext(r.Dx(), r.Dy())
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	bars := []string{"#ff0000", "#00ff00", "#0000ff", "#ffffff"}
	bw := w / float64(len(bars))
	for i, c := range bars {
		dc.SetHexColor(c)
		dc.DrawRectangle(float64(i)*bw, 0, bw, h/4)
		dc.Fill()
	}
	padding := 8.0
	dc.SetRGB(1, 1, 0)
	dc.SetLineWidth(2)
	dc.DrawRoundedRectangle(padding, h/4+padding, w-2*padding, 3*h/4-2*padding, 10)
	dc.Stroke()
	for radius := 5.0; radius < math.Min(w, 3*h/4)/2-padding; radius += 10 {
		dc.DrawCircle(w/2, 5*h/8, radius)
		dc.Stroke()
	}
	return dc.Image()
}

// loadImage decodes a PNG, JPEG, GIF or BMP file.
func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// fit scales src to r.
func fit(src image.Image, r image.Rectangle) *rgb565.Image {
	dst := rgb565.NewImage(r)
	draw.CatmullRom.Scale(dst, r, src, src.Bounds(), draw.Src, nil)
	return dst
}
