// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7796s_test

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"

	"github.com/GermanBionicSystems/st7796/st7796s"
	"github.com/GermanBionicSystems/st7796/st7796s/rgb565"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use spireg SPI port registry to find the first available SPI bus.
	p, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	cs := gpioreg.ByName("GPIO5")
	dc := gpioreg.ByName("GPIO8")
	rst := gpioreg.ByName("GPIO9")
	if dc == nil {
		log.Fatal("no DC pin")
	}

	dev, err := st7796s.New(p, cs, dc, rst, &st7796s.DefaultOpts)
	if err != nil {
		log.Fatalf("failed to initialize st7796s: %v", err)
	}
	if err := dev.Init(); err != nil {
		log.Fatal(err)
	}
	id, err := dev.RDDID()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s: %s\n", dev, id)

	// Draw nested rectangles.
	img := rgb565.NewImage(dev.Bounds())
	colors := []color.Color{rgb565.Red, rgb565.Green, rgb565.Blue, rgb565.White}
	r := img.Bounds()
	for i := 0; !r.Empty(); i++ {
		draw.Draw(img, r, &image.Uniform{C: colors[i%len(colors)]}, image.Point{}, draw.Src)
		r = r.Inset(8)
	}
	if err := dev.Draw(dev.Bounds(), img, image.Point{}); err != nil {
		log.Fatal(err)
	}
}
