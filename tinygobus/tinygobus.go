// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tinygobus exposes TinyGo buses and pins as periph.io interfaces.
//
// It lets drivers written against spi.Port and gpio.PinOut run on a
// microcontroller, where machine.SPI0 satisfies drivers.SPI and a pin's Set
// method is an OutputPin.
//
// The bus must already be configured with machine.SPIConfig; clock, mode and
// word size cannot be changed through this package.
package tinygobus

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"tinygo.org/x/drivers"
)

// Port wraps a configured TinyGo SPI bus.
type Port struct {
	Bus drivers.SPI
	// Name is returned by String.
	Name string
	// Mode and Frequency are what the bus was configured with. Connect
	// refuses any other mode and any frequency above Frequency. A zero
	// Frequency accepts any value.
	Mode      spi.Mode
	Frequency physic.Frequency

	connected bool
}

func (p *Port) String() string {
	if p.Name == "" {
		return "tinygobus"
	}
	return p.Name
}

// Connect implements spi.Port.
func (p *Port) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	if p.connected {
		return nil, errors.New("tinygobus: Connect cannot be called twice")
	}
	if bits != 8 {
		return nil, fmt.Errorf("tinygobus: only 8 bit words are supported, got %d", bits)
	}
	if mode != p.Mode {
		return nil, fmt.Errorf("tinygobus: bus is configured for %s, got %s", p.Mode, mode)
	}
	if p.Frequency != 0 && f > p.Frequency {
		return nil, fmt.Errorf("tinygobus: bus is configured for %s, got %s", p.Frequency, f)
	}
	p.connected = true
	return &spiConn{p: p}, nil
}

// LimitSpeed implements spi.Port.
func (p *Port) LimitSpeed(f physic.Frequency) error {
	return errors.New("tinygobus: speed is set by machine.SPIConfig")
}

type spiConn struct {
	p *Port
}

func (c *spiConn) String() string {
	return c.p.String()
}

func (c *spiConn) Duplex() conn.Duplex {
	return conn.Full
}

func (c *spiConn) Tx(w, r []byte) error {
	if len(r) != 0 && len(w) != len(r) {
		return errors.New("tinygobus: w and r must have the same length")
	}
	return c.p.Bus.Tx(w, r)
}

func (c *spiConn) TxPackets(pkts []spi.Packet) error {
	for _, pkt := range pkts {
		if pkt.BitsPerWord != 0 && pkt.BitsPerWord != 8 {
			return fmt.Errorf("tinygobus: only 8 bit words are supported, got %d", pkt.BitsPerWord)
		}
		if err := c.Tx(pkt.W, pkt.R); err != nil {
			return err
		}
	}
	return nil
}

// OutputPin drives a line, e.g. machine.Pin.Set.
type OutputPin func(level bool)

// Pin is a push-pull output.
type Pin struct {
	N   string
	Num int
	Set OutputPin
}

func (p *Pin) String() string {
	return p.N
}

// Halt implements conn.Resource.
func (p *Pin) Halt() error {
	return nil
}

// Name implements pin.Pin.
func (p *Pin) Name() string {
	return p.N
}

// Number implements pin.Pin.
func (p *Pin) Number() int {
	return p.Num
}

// Function implements pin.Pin.
func (p *Pin) Function() string {
	return "Out"
}

// Out implements gpio.PinOut.
func (p *Pin) Out(l gpio.Level) error {
	if p.Set == nil {
		return fmt.Errorf("tinygobus: %s has no output", p.N)
	}
	p.Set(bool(l))
	return nil
}

// PWM implements gpio.PinOut.
func (p *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return fmt.Errorf("tinygobus: %s does not support PWM", p.N)
}

var _ spi.Port = &Port{}
var _ spi.Conn = &spiConn{}
var _ gpio.PinOut = &Pin{}
