// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/GermanBionicSystems/st7796/st7796s"
	"github.com/GermanBionicSystems/st7796/st7796s/rgb565"
)

// run executes one command line against d.
func run(d *st7796s.Dev, cmd string, args []string, w io.Writer) error {
	switch cmd {
	case "info":
		return info(d, w)
	case "fill":
		if len(args) != 1 {
			return errors.New("fill takes one RRGGBB color")
		}
		c, err := parseColor(args[0])
		if err != nil {
			return err
		}
		return d.Fill(c)
	case "text":
		if len(args) == 0 {
			return errors.New("text takes the text to show")
		}
		img, err := textImage(d.Bounds(), strings.Join(args, " "), 32)
		if err != nil {
			return err
		}
		return d.Draw(d.Bounds(), img, image.Point{})
	case "image":
		if len(args) != 1 {
			return errors.New("image takes one file name")
		}
		src, err := loadImage(args[0])
		if err != nil {
			return err
		}
		return d.Draw(d.Bounds(), fit(src, d.Bounds()), d.Bounds().Min)
	case "pattern":
		return d.Draw(d.Bounds(), patternImage(d.Bounds()), image.Point{})
	case "brightness":
		if len(args) != 1 {
			return errors.New("brightness takes a value between 0 and 255")
		}
		v, err := strconv.ParseUint(args[0], 0, 8)
		if err != nil {
			return err
		}
		return d.WRDISBV(uint8(v))
	case "invert":
		if len(args) != 1 {
			return errors.New("invert takes on or off")
		}
		switch args[0] {
		case "on":
			return d.InvOn()
		case "off":
			return d.InvOff()
		}
		return fmt.Errorf("invert takes on or off, got %q", args[0])
	case "on":
		return d.DispOn()
	case "off":
		return d.DispOff()
	case "sleep":
		return d.SlpIn()
	case "wake":
		return d.SlpOut()
	case "exec":
		if len(args) == 0 {
			return errors.New("exec takes an opcode and its parameters, in hex")
		}
		b, err := parseHex(args)
		if err != nil {
			return err
		}
		c := st7796s.Command(b[0])
		if !c.Valid() {
			return fmt.Errorf("unknown command 0x%02X", b[0])
		}
		out, err := d.Exec(c, b[1:])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s: %s\n", c, out)
		return err
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func info(d *st7796s.Dev, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n", d); err != nil {
		return err
	}
	id, err := d.RDDID()
	if err != nil {
		return err
	}
	st, err := d.RDDST()
	if err != nil {
		return err
	}
	dsi, err := d.RNEDSI()
	if err != nil {
		return err
	}
	bv, err := d.RDDISBV()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n%s\n%s\n%+v\n", id, dsi, bv, st)
	return err
}

// parseColor parses RRGGBB, with or without a leading #.
func parseColor(s string) (rgb565.Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, fmt.Errorf("invalid color %q, want RRGGBB", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return rgb565.New(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// parseHex parses one byte per argument.
func parseHex(args []string) ([]byte, error) {
	out := make([]byte, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(a), "0x"), 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid byte %q: %w", a, err)
		}
		out = append(out, byte(v))
	}
	return out, nil
}
