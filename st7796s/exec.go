// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7796s

import (
	"encoding/binary"
	"fmt"
)

// Exec runs cmd by opcode.
//
// Commands that have a dedicated method go through it, taking their
// parameters from in: one byte for WRDISBV, MADCTL and COLMOD, two big endian
// uint16 for CASET and RASET, the pixel bytes for RAMWR. Every other command
// is sent alone and in is ignored.
func (d *Dev) Exec(cmd Command, in []byte) (Output, error) {
	switch cmd {
	case NOP:
		return done(d.Nop())
	case SWRESET:
		return done(d.SWReset())
	case RDDID:
		return result(d.RDDID())
	case RNEDSI:
		return result(d.RNEDSI())
	case RDDST:
		return result(d.RDDST())
	case RDDISBV:
		return result(d.RDDISBV())
	case SLPIN:
		return done(d.SlpIn())
	case SLPOUT:
		return done(d.SlpOut())
	case PTLON:
		return done(d.PtlOn())
	case NORON:
		return done(d.NorOn())
	case INVOFF:
		return done(d.InvOff())
	case INVON:
		return done(d.InvOn())
	case DISPOFF:
		return done(d.DispOff())
	case DISPON:
		return done(d.DispOn())
	case IDMOFF:
		return done(d.IdmOff())
	case IDMON:
		return done(d.IdmOn())
	case WRDISBV:
		if err := need(cmd, in, 1); err != nil {
			return nil, err
		}
		return done(d.WRDISBV(in[0]))
	case MADCTL:
		if err := need(cmd, in, 1); err != nil {
			return nil, err
		}
		return done(d.MADCTL(in[0]))
	case COLMOD:
		if err := need(cmd, in, 1); err != nil {
			return nil, err
		}
		return done(d.COLMOD(in[0]))
	case CASET:
		if err := need(cmd, in, 4); err != nil {
			return nil, err
		}
		return done(d.CASET(binary.BigEndian.Uint16(in), binary.BigEndian.Uint16(in[2:])))
	case RASET:
		if err := need(cmd, in, 4); err != nil {
			return nil, err
		}
		return done(d.RASET(binary.BigEndian.Uint16(in), binary.BigEndian.Uint16(in[2:])))
	case RAMWR:
		return done(d.RAMWR(in))
	default:
		return done(d.send("exec", cmd, nil))
	}
}

func result(v Output, err error) (Output, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

func need(cmd Command, in []byte, n int) error {
	if len(in) < n {
		return &Error{Op: "exec", Code: ErrInput, Err: fmt.Errorf("%s needs %d parameter bytes, got %d", cmd, n, len(in))}
	}
	return nil
}

func done(err error) (Output, error) {
	if err != nil {
		return nil, err
	}
	return NoReturn{}, nil
}
