// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7796s

import (
	"errors"
	"fmt"
	"image"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Panel geometry and bus limits.
const (
	NativeWidth  = 320
	NativeHeight = 480

	// MaxFrequency is the fastest write clock the controller accepts.
	MaxFrequency = 62500 * physic.KiloHertz
	// MaxReadFrequency is the fastest clock at which reads are reliable.
	MaxReadFrequency = 10 * physic.MegaHertz
)

// Init sequence delays.
const (
	swresetDelay = 10 * time.Millisecond
	slpoutDelay  = 120 * time.Millisecond
	disponDelay  = 20 * time.Millisecond
)

// DefaultOpts is the configuration used when New is given nil.
//
// The 240x480 window matches the sequence the panel was brought up with; set
// W to NativeWidth to use the whole glass.
var DefaultOpts = Opts{
	W:         240,
	H:         480,
	Frequency: 8 * physic.MegaHertz,
}

// Opts defines the options for the device.
type Opts struct {
	// W and H are the size of the address window set by Init.
	W int
	H int
	// Frequency is the SPI clock. Reads are refused above MaxReadFrequency.
	Frequency physic.Frequency
	// Sleep blocks for the given duration. Defaults to time.Sleep.
	Sleep func(time.Duration)
	// Logf receives a few lifecycle messages. nil discards them.
	Logf func(format string, v ...any)
}

// State is the lifecycle stage of a Dev.
type State uint8

// States.
const (
	Uninitialised State = iota
	Ready
	Operating
)

func (s State) String() string {
	switch s {
	case Ready:
		return "Ready"
	case Operating:
		return "Operating"
	default:
		return "Uninitialised"
	}
}

// Cmd is one step of a command sequence.
type Cmd struct {
	Command Command
	Data    []byte
	Delay   time.Duration
}

// Dev is a handle to an ST7796S controller.
//
// It is not safe for concurrent use.
type Dev struct {
	t        transport
	rect     image.Rectangle
	freq     physic.Frequency
	readable bool
	logf     func(format string, v ...any)
	state    State
}

// New connects to an ST7796S on p.
//
// dc is required. cs may be nil when the SPI port drives chip select and rst
// may be nil when the reset line is tied high. The bus is configured once, in
// SPI mode 0 with 8 bit words, and never reconfigured.
//
// The controller is not touched; call Init before anything else.
func New(p spi.Port, cs, dc, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	o := *opts
	if o.W == 0 {
		o.W = DefaultOpts.W
	}
	if o.H == 0 {
		o.H = DefaultOpts.H
	}
	if o.Frequency == 0 {
		o.Frequency = DefaultOpts.Frequency
	}
	if o.W < 0 || o.W > NativeWidth {
		return nil, fmt.Errorf("st7796s: width must be between 1 and %d, got %d", NativeWidth, o.W)
	}
	if o.H < 0 || o.H > NativeHeight {
		return nil, fmt.Errorf("st7796s: height must be between 1 and %d, got %d", NativeHeight, o.H)
	}
	if o.Frequency < 0 || o.Frequency > MaxFrequency {
		return nil, fmt.Errorf("st7796s: frequency must be at most %s, got %s", MaxFrequency, o.Frequency)
	}
	if dc == nil || dc == gpio.INVALID {
		return nil, errors.New("st7796s: dc pin is required")
	}
	if cs == gpio.INVALID {
		return nil, errors.New("st7796s: use nil for cs when the port drives chip select, do not use gpio.INVALID")
	}
	if rst == gpio.INVALID {
		return nil, errors.New("st7796s: use nil for rst when it is not wired, do not use gpio.INVALID")
	}
	if o.Sleep == nil {
		o.Sleep = time.Sleep
	}
	if o.Logf == nil {
		o.Logf = func(string, ...any) {}
	}

	c, err := p.Connect(o.Frequency, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("st7796s: %w", err)
	}

	// Get the maxTxSize from the conn if it implements the conn.Limits
	// interface, otherwise use 4096 bytes.
	maxTxSize := 0
	if limits, ok := c.(conn.Limits); ok {
		maxTxSize = limits.MaxTxSize()
	}
	if maxTxSize <= 0 {
		maxTxSize = 4096
	}

	d := &Dev{
		t: transport{
			c:         c,
			cs:        cs,
			dc:        dc,
			rst:       rst,
			sleep:     o.Sleep,
			maxTxSize: maxTxSize,
		},
		rect:     image.Rect(0, 0, o.W, o.H),
		freq:     o.Frequency,
		readable: o.Frequency <= MaxReadFrequency,
		logf:     o.Logf,
		state:    Ready,
	}
	d.logf("st7796s: connected %s at %s, window %dx%d", c, o.Frequency, o.W, o.H)
	return d, nil
}

// String returns a string containing configuration information.
func (d *Dev) String() string {
	return fmt.Sprintf("st7796s.Dev{%s, %s, %dx%d}", d.t.c, d.t.dc, d.rect.Dx(), d.rect.Dy())
}

// State returns the lifecycle stage of the device.
func (d *Dev) State() State {
	return d.state
}

// initSequence is the power-up sequence run after the reset pulse, up to but
// not including the memory write.
func initSequence(w, h int) []Cmd {
	return []Cmd{
		{Command: SWRESET, Delay: swresetDelay},
		{Command: SLPOUT, Delay: slpoutDelay},
		{Command: DISPON, Delay: disponDelay},
		// 16 bit RGB565.
		{Command: COLMOD, Data: []byte{0x55}},
		{Command: MADCTL, Data: []byte{0x00}},
		{Command: CASET, Data: span(0, uint16(w-1))},
		{Command: RASET, Data: span(0, uint16(h-1))},
	}
}

// Init resets the controller, wakes it up and paints the window black.
//
// It may be called again at any time and sends the same sequence each time.
func (d *Dev) Init() error {
	d.logf("st7796s: reset")
	if err := d.t.resetPulse(); err != nil {
		return withOp("init", err)
	}
	d.logf("st7796s: power up")
	if err := d.run("init", initSequence(d.rect.Dx(), d.rect.Dy())); err != nil {
		return err
	}
	d.logf("st7796s: clearing %dx%d", d.rect.Dx(), d.rect.Dy())
	if err := d.send("init", RAMWR, nil); err != nil {
		return err
	}
	if err := d.t.writeRepeated([]byte{0x00, 0x00}, d.rect.Dx()*d.rect.Dy()); err != nil {
		return withOp("init", err)
	}
	d.state = Operating
	return nil
}

// Run sends each command with its data and waits for its delay.
func (d *Dev) Run(cmds ...Cmd) error {
	return d.run("run", cmds)
}

func (d *Dev) run(op string, cmds []Cmd) error {
	for _, c := range cmds {
		if err := d.send(op, c.Command, c.Data); err != nil {
			return err
		}
		if c.Delay != 0 {
			d.t.sleep(c.Delay)
		}
	}
	return nil
}

// Nop sends NOP.
func (d *Dev) Nop() error {
	return d.send("nop", NOP, nil)
}

// SWReset sends SWRESET. Wait at least 5ms before sending anything else.
func (d *Dev) SWReset() error {
	return d.send("swreset", SWRESET, nil)
}

// RDDID reads the display ID.
func (d *Dev) RDDID() (RDDIDResult, error) {
	var b [4]byte
	if err := d.read("rddid", RDDID, b[:]); err != nil {
		return RDDIDResult{}, err
	}
	return decodeRDDID(b[:]), nil
}

// RNEDSI reads the number of DSI errors.
func (d *Dev) RNEDSI() (RNEDSIResult, error) {
	var b [2]byte
	if err := d.read("rnedsi", RNEDSI, b[:]); err != nil {
		return RNEDSIResult{}, err
	}
	return decodeRNEDSI(b[:]), nil
}

// RDDST reads the display status.
func (d *Dev) RDDST() (RDDSTResult, error) {
	var b [5]byte
	if err := d.read("rddst", RDDST, b[:]); err != nil {
		return RDDSTResult{}, err
	}
	return decodeRDDST(b[:]), nil
}

// RDDISBV reads the display brightness.
func (d *Dev) RDDISBV() (Brightness, error) {
	var b [2]byte
	if err := d.read("rddisbv", RDDISBV, b[:]); err != nil {
		return 0, err
	}
	return Brightness(b[1]), nil
}

// InvOff disables colour inversion.
func (d *Dev) InvOff() error {
	return d.send("invoff", INVOFF, nil)
}

// InvOn enables colour inversion.
func (d *Dev) InvOn() error {
	return d.send("invon", INVON, nil)
}

// DispOff blanks the panel. Memory content is kept.
func (d *Dev) DispOff() error {
	return d.send("dispoff", DISPOFF, nil)
}

// DispOn shows the memory content.
func (d *Dev) DispOn() error {
	return d.send("dispon", DISPON, nil)
}

// WRDISBV sets the display brightness.
func (d *Dev) WRDISBV(brightness uint8) error {
	return d.send("wrdisbv", WRDISBV, []byte{brightness})
}

// SlpIn enters sleep mode. Wait 120ms before SlpOut.
func (d *Dev) SlpIn() error {
	return d.send("slpin", SLPIN, nil)
}

// SlpOut leaves sleep mode. Wait 120ms before SlpIn.
func (d *Dev) SlpOut() error {
	return d.send("slpout", SLPOUT, nil)
}

// NorOn selects normal display mode.
func (d *Dev) NorOn() error {
	return d.send("noron", NORON, nil)
}

// PtlOn selects partial display mode.
func (d *Dev) PtlOn() error {
	return d.send("ptlon", PTLON, nil)
}

// IdmOff leaves idle mode.
func (d *Dev) IdmOff() error {
	return d.send("idmoff", IDMOFF, nil)
}

// IdmOn enters idle (8 colour) mode.
func (d *Dev) IdmOn() error {
	return d.send("idmon", IDMON, nil)
}

// MADCTL sets the memory access control register.
func (d *Dev) MADCTL(v byte) error {
	return d.send("madctl", MADCTL, []byte{v})
}

// COLMOD sets the interface pixel format. 0x55 is RGB565.
func (d *Dev) COLMOD(v byte) error {
	return d.send("colmod", COLMOD, []byte{v})
}

// CASET sets the column range of the write window, both ends inclusive.
func (d *Dev) CASET(start, end uint16) error {
	return d.send("caset", CASET, span(start, end))
}

// RASET sets the row range of the write window, both ends inclusive.
func (d *Dev) RASET(start, end uint16) error {
	return d.send("raset", RASET, span(start, end))
}

// RAMWR writes pixel bytes into the current window, starting at its top left
// corner.
func (d *Dev) RAMWR(pixels []byte) error {
	if err := d.send("ramwr", RAMWR, nil); err != nil {
		return err
	}
	return withOp("ramwr", d.t.writeData(pixels))
}

func (d *Dev) send(op string, c Command, data []byte) error {
	if err := d.t.writeCommand(c.Byte()); err != nil {
		return withOp(op, err)
	}
	return withOp(op, d.t.writeData(data))
}

func (d *Dev) read(op string, c Command, buf []byte) error {
	if !d.readable {
		return &Error{Op: op, Code: ErrReadRate, Err: fmt.Errorf("bus clock %s is above %s", d.freq, MaxReadFrequency)}
	}
	if err := d.t.writeCommand(c.Byte()); err != nil {
		return withOp(op, err)
	}
	return withOp(op, d.t.readData(buf))
}

// withOp names the operation in a transport error.
func withOp(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		e.Op = op
		return e
	}
	return &Error{Op: op, Err: err}
}

// span encodes an inclusive address range as CASET and RASET expect it.
func span(start, end uint16) []byte {
	return []byte{byte(start >> 8), byte(start), byte(end >> 8), byte(end)}
}
