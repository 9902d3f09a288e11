// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build tinygo

// pico2 brings up an ST7796S panel on a Raspberry Pi Pico 2 and keeps the bus
// alive with a NOP every 500ms, printing a heartbeat on the serial console.
//
// Build with:
//
//	tinygo flash -target=pico2 ./cmd/pico2
//
// Wiring:
//
//	Display    Pico 2
//	SCL        GPIO6 (SPI0 SCK)
//	SDA        GPIO7 (SPI0 TX)
//	SDO        GPIO4 (SPI0 RX)
//	CS         GPIO5
//	DC         GPIO8
//	RST        GPIO9
package main

import (
	"fmt"
	"machine"
	"time"

	"github.com/GermanBionicSystems/st7796/st7796s"
	"github.com/GermanBionicSystems/st7796/tinygobus"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

const (
	sckPin = machine.GPIO6
	sdoPin = machine.GPIO7
	sdiPin = machine.GPIO4
	csPin  = machine.GPIO5
	dcPin  = machine.GPIO8
	rstPin = machine.GPIO9

	busHz = 8 * physic.MegaHertz
)

func outputPin(name string, num int, p machine.Pin) *tinygobus.Pin {
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.High()
	return &tinygobus.Pin{N: name, Num: num, Set: p.Set}
}

func main() {
	time.Sleep(2 * time.Second)
	println("Configuring SPI0")
	err := machine.SPI0.Configure(machine.SPIConfig{
		Frequency: uint32(busHz / physic.Hertz),
		SCK:       sckPin,
		SDO:       sdoPin,
		SDI:       sdiPin,
		Mode:      0,
	})
	if err != nil {
		panic(err.Error())
	}
	bus := &tinygobus.Port{Bus: machine.SPI0, Name: "SPI0", Mode: spi.Mode0, Frequency: busHz}

	display, err := st7796s.New(bus,
		outputPin("GPIO5", 5, csPin),
		outputPin("GPIO8", 8, dcPin),
		outputPin("GPIO9", 9, rstPin),
		&st7796s.Opts{
			Frequency: busHz,
			Logf: func(format string, v ...any) {
				fmt.Printf(format+"\n", v...)
			},
		})
	if err != nil {
		panic(err.Error())
	}
	println("Initializing Display")
	if err := display.Init(); err != nil {
		panic(err.Error())
	}

	for {
		_ = display.Nop()
		println("Hello there!")
		time.Sleep(500 * time.Millisecond)
	}
}
