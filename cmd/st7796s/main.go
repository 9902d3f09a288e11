// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// st7796s drives an ST7796S TFT panel from a Linux host.
//
// Hardware Setup:
//
//	Display    Raspberry Pi
//	GND        GND
//	VCC        3.3V
//	SCL        GPIO11 (SPI0 CLK)
//	SDA        GPIO10 (SPI0 MOSI)
//	SDO        GPIO9  (SPI0 MISO)
//	CS         GPIO8  (or leave -cs empty to use CE0)
//	DC         GPIO25
//	RST        GPIO24
//
// Usage:
//
//	st7796s [flags] info
//	st7796s [flags] fill ff0000
//	st7796s [flags] text "Hello"
//	st7796s [flags] image gopher.png
//	st7796s [flags] pattern
//	st7796s [flags] brightness 128
//	st7796s [flags] invert on|off
//	st7796s [flags] on|off|sleep|wake
//	st7796s [flags] exec 51 7f
//
// With -fake no hardware is touched: the commands run against an emulated
// panel which is previewed in the terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/GermanBionicSystems/st7796/screen2d"
	"github.com/GermanBionicSystems/st7796/st7796s"
	"github.com/GermanBionicSystems/st7796/st7796s/st7796stest"
	"golang.org/x/image/bmp"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// board is the bus and the lines the panel is wired to.
type board struct {
	port   spi.Port
	closer io.Closer
	cs     gpio.PinOut
	dc     gpio.PinOut
	rst    gpio.PinOut
	// panel is set in fake mode.
	panel *st7796stest.Panel
}

func (b *board) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

func pinByName(name string) (gpio.PinOut, error) {
	if name == "" {
		return nil, nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("pin %q not found", name)
	}
	return p, nil
}

func openBoard(spiName, csName, dcName, rstName string) (*board, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	p, err := spireg.Open(spiName)
	if err != nil {
		return nil, err
	}
	b := &board{port: p, closer: p}
	if b.cs, err = pinByName(csName); err != nil {
		b.Close()
		return nil, err
	}
	if dcName == "" {
		b.Close()
		return nil, errors.New("-dc is required")
	}
	if b.dc, err = pinByName(dcName); err != nil {
		b.Close()
		return nil, err
	}
	if b.rst, err = pinByName(rstName); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

func fakeBoard() *board {
	p := st7796stest.NewPanel(st7796s.NativeWidth, st7796s.NativeHeight)
	p.Responses[byte(st7796s.RDDID)] = []byte{0x00, 0x00, 0x7C, 0x89}
	p.Responses[byte(st7796s.RDDST)] = []byte{0x00, 0x00, 0x53, 0x04, 0x00}
	return &board{port: p, cs: p.CS, dc: p.DC, rst: p.RST, panel: p}
}

// preview renders the emulated panel to the terminal and optionally to a BMP
// file.
func preview(p *st7796stest.Panel, d *st7796s.Dev, scale int, out string) error {
	img := p.Image().SubImage(d.Bounds())
	s, err := screen2d.New(&screen2d.Opts{W: d.Bounds().Dx(), H: d.Bounds().Dy(), Scale: scale})
	if err != nil {
		return err
	}
	if err := s.Draw(s.Bounds(), img, d.Bounds().Min); err != nil {
		return err
	}
	if err := s.Halt(); err != nil {
		return err
	}
	if out == "" {
		return nil
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := bmp.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func mainImpl() error {
	spiName := flag.String("spi", "", "SPI port to use")
	csName := flag.String("cs", "", "CS pin, empty when the SPI port drives chip select")
	dcName := flag.String("dc", "GPIO25", "D/C pin")
	rstName := flag.String("rst", "GPIO24", "RST pin, empty when tied high")
	hz := physic.Frequency(0)
	flag.Var(&hz, "hz", "SPI clock, reads are refused above 10MHz")
	w := flag.Int("w", st7796s.DefaultOpts.W, "window width")
	h := flag.Int("h", st7796s.DefaultOpts.H, "window height")
	noInit := flag.Bool("noinit", false, "skip the reset and power up sequence")
	fake := flag.Bool("fake", false, "use an emulated panel and preview it in the terminal")
	scale := flag.Int("scale", 8, "pixels per terminal cell in -fake mode")
	out := flag.String("o", "", "write the emulated panel to this BMP file in -fake mode")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)
	if flag.NArg() == 0 {
		return errors.New("specify a command, see -help")
	}

	var b *board
	var err error
	if *fake {
		b = fakeBoard()
	} else if b, err = openBoard(*spiName, *csName, *dcName, *rstName); err != nil {
		return err
	}
	defer b.Close()

	opts := st7796s.Opts{W: *w, H: *h, Frequency: hz, Logf: log.Printf}
	if b.panel != nil {
		opts.Sleep = b.panel.Sleep
	}
	d, err := st7796s.New(b.port, b.cs, b.dc, b.rst, &opts)
	if err != nil {
		return err
	}
	if !*noInit {
		if err := d.Init(); err != nil {
			return err
		}
	}
	if err := run(d, flag.Arg(0), flag.Args()[1:], os.Stdout); err != nil {
		return err
	}
	if b.panel != nil {
		return preview(b.panel, d, *scale, *out)
	}
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "st7796s: %s.\n", err)
		os.Exit(1)
	}
}
