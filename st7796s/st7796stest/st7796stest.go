// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package st7796stest is meant to be used to test drivers and programs using
// an ST7796S without the hardware.
//
// Panel stands in for both the SPI port and the CS, DC and RST lines. It
// records a trace of line transitions, transfers and delays, answers read
// commands from a table and keeps a framebuffer fed by CASET, RASET and RAMWR.
package st7796stest

import (
	"bytes"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/GermanBionicSystems/st7796/st7796s/rgb565"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Opcodes the panel interprets.
const (
	opCASET  = 0x2A
	opRASET  = 0x2B
	opRAMWR  = 0x2C
	opRAMWRC = 0x3C
)

// Kind is the type of an Event.
type Kind uint8

// Event kinds.
const (
	LineEvent  Kind = iota // a line was driven
	TxEvent                // a bus transfer
	DelayEvent             // the driver slept
)

func (k Kind) String() string {
	switch k {
	case LineEvent:
		return "line"
	case TxEvent:
		return "tx"
	case DelayEvent:
		return "delay"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Event is one entry of the trace.
type Event struct {
	Kind Kind
	// At is the sum of the delays recorded before this event.
	At time.Duration

	// LineEvent.
	Line  string
	Level gpio.Level

	// TxEvent. CS and DC are the line levels while the bytes were clocked.
	CS gpio.Level
	DC gpio.Level
	W  []byte
	R  []byte

	// DelayEvent.
	Delay time.Duration
}

// Frame is the bytes clocked during one chip select assertion.
type Frame struct {
	DC    gpio.Level
	Bytes []byte
	// Mixed is set when DC changed inside the frame.
	Mixed bool
}

// Record is a command with the data frames that followed it.
type Record struct {
	Cmd  byte
	Data []byte
}

// Panel is a fake ST7796S. Use CS, DC and RST as the pins and the Panel
// itself as the spi.Port.
type Panel struct {
	sync.Mutex

	// Responses holds the bytes returned by read commands, dummy byte
	// included. Reads of unknown commands return zeroes.
	Responses map[byte][]byte
	// Loopback echoes every written byte back, as a MISO-MOSI jumper would.
	Loopback bool
	// TxErr, when set, is returned by every transfer.
	TxErr error

	CS  *Line
	DC  *Line
	RST *Line

	Trace   []Event
	Elapsed time.Duration

	// Freq, Mode and Bits are the values given to Connect.
	Freq        physic.Frequency
	Mode        spi.Mode
	Bits        int
	Initialized bool

	fb      *rgb565.Image
	last    byte
	params  []byte
	x0, x1  int
	y0, y1  int
	cx, cy  int
	half    []byte
	writing bool
}

// NewPanel returns a Panel with a w x h framebuffer.
func NewPanel(w, h int) *Panel {
	p := &Panel{Responses: map[byte][]byte{}}
	p.CS = p.newLine("CS", 0)
	p.DC = p.newLine("DC", 1)
	p.RST = p.newLine("RST", 2)
	p.fb = rgb565.NewImage(image.Rect(0, 0, w, h))
	p.x1, p.y1 = w-1, h-1
	return p
}

// String implements conn.Resource.
func (p *Panel) String() string {
	return "st7796stest"
}

// Halt implements conn.Resource.
func (p *Panel) Halt() error {
	return nil
}

// Connect implements spi.Port.
func (p *Panel) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	p.Lock()
	defer p.Unlock()
	if p.Initialized {
		return nil, fmt.Errorf("st7796stest: Connect cannot be called twice")
	}
	p.Initialized = true
	p.Freq, p.Mode, p.Bits = f, mode, bits
	return p, nil
}

// LimitSpeed implements spi.Port.
func (p *Panel) LimitSpeed(f physic.Frequency) error {
	return nil
}

// Duplex implements conn.Conn.
func (p *Panel) Duplex() conn.Duplex {
	return conn.Full
}

// TxPackets implements spi.Conn.
func (p *Panel) TxPackets(pkts []spi.Packet) error {
	for _, pkt := range pkts {
		if err := p.Tx(pkt.W, pkt.R); err != nil {
			return err
		}
	}
	return nil
}

// Tx implements conn.Conn.
func (p *Panel) Tx(w, r []byte) error {
	p.Lock()
	defer p.Unlock()
	if p.TxErr != nil {
		return p.TxErr
	}
	cs, dc := p.CS.Read(), p.DC.Read()
	if r != nil {
		switch {
		case p.Loopback:
			copy(r, w)
		case cs == gpio.Low && dc == gpio.High:
			resp := p.Responses[p.last]
			for i := range r {
				r[i] = 0
			}
			copy(r, resp)
		}
	}
	e := Event{Kind: TxEvent, At: p.Elapsed, CS: cs, DC: dc, W: append([]byte(nil), w...)}
	if r != nil {
		e.R = append([]byte(nil), r...)
	}
	p.Trace = append(p.Trace, e)
	if cs == gpio.Low && r == nil {
		if dc == gpio.Low {
			for _, b := range w {
				p.command(b)
			}
		} else {
			p.data(w)
		}
	}
	return nil
}

// Sleep records a delay. Pass it as the driver's sleep function.
func (p *Panel) Sleep(d time.Duration) {
	p.Lock()
	defer p.Unlock()
	p.Trace = append(p.Trace, Event{Kind: DelayEvent, At: p.Elapsed, Delay: d})
	p.Elapsed += d
}

// Image returns the framebuffer.
func (p *Panel) Image() *rgb565.Image {
	return p.fb
}

// Reset forgets the trace, keeping the framebuffer and responses.
func (p *Panel) Reset() {
	p.Lock()
	defer p.Unlock()
	p.Trace = nil
	p.Elapsed = 0
}

// Frames groups the transfers of the trace by chip select assertion.
func (p *Panel) Frames() []Frame {
	p.Lock()
	defer p.Unlock()
	var out []Frame
	var cur *Frame
	for _, e := range p.Trace {
		switch {
		case e.Kind == LineEvent && e.Line == "CS" && e.Level == gpio.Low:
			out = append(out, Frame{})
			cur = &out[len(out)-1]
		case e.Kind == LineEvent && e.Line == "CS" && e.Level == gpio.High:
			cur = nil
		case e.Kind == TxEvent && cur != nil:
			if len(cur.Bytes) == 0 {
				cur.DC = e.DC
			} else if cur.DC != e.DC {
				cur.Mixed = true
			}
			cur.Bytes = append(cur.Bytes, e.W...)
		}
	}
	// Frames opened without any transfer carry no information.
	n := 0
	for _, f := range out {
		if len(f.Bytes) != 0 {
			out[n] = f
			n++
		}
	}
	return out[:n]
}

// Records folds the frames into commands and their data.
func (p *Panel) Records() []Record {
	var out []Record
	for _, f := range p.Frames() {
		if f.DC == gpio.Low {
			for _, b := range f.Bytes {
				out = append(out, Record{Cmd: b})
			}
			continue
		}
		if len(out) == 0 {
			out = append(out, Record{})
		}
		cur := &out[len(out)-1]
		cur.Data = append(cur.Data, f.Bytes...)
	}
	return out
}

// Levels returns the successive levels driven on the named line.
func (p *Panel) Levels(line string) []gpio.Level {
	p.Lock()
	defer p.Unlock()
	var out []gpio.Level
	for _, e := range p.Trace {
		if e.Kind == LineEvent && e.Line == line {
			out = append(out, e.Level)
		}
	}
	return out
}

func (p *Panel) command(b byte) {
	if len(p.half) != 0 {
		p.half = p.half[:0]
	}
	p.last = b
	p.params = p.params[:0]
	switch b {
	case opRAMWR:
		p.cx, p.cy = p.x0, p.y0
		p.writing = true
	case opRAMWRC:
		p.writing = true
	default:
		p.writing = false
	}
}

func (p *Panel) data(w []byte) {
	if p.writing {
		p.pixels(w)
		return
	}
	p.params = append(p.params, w...)
	if len(p.params) < 4 {
		return
	}
	lo := int(p.params[0])<<8 | int(p.params[1])
	hi := int(p.params[2])<<8 | int(p.params[3])
	switch p.last {
	case opCASET:
		p.x0, p.x1 = lo, hi
	case opRASET:
		p.y0, p.y1 = lo, hi
	}
}

func (p *Panel) pixels(w []byte) {
	if len(p.half) != 0 {
		w = append(append([]byte(nil), p.half...), w...)
		p.half = p.half[:0]
	}
	for ; len(w) >= 2; w = w[2:] {
		p.fb.SetRGB565(p.cx, p.cy, rgb565.Color(uint16(w[0])<<8|uint16(w[1])))
		p.cx++
		if p.cx > p.x1 {
			p.cx = p.x0
			p.cy++
			if p.cy > p.y1 {
				p.cy = p.y0
			}
		}
	}
	p.half = append(p.half, w...)
}

// Line is a GPIO output that reports its transitions to the Panel.
type Line struct {
	gpiotest.Pin
	p *Panel
	// Err, when set, is returned by Out and the level is left unchanged.
	Err error
}

func (p *Panel) newLine(name string, num int) *Line {
	l := &Line{p: p}
	l.N = name
	l.Num = num
	l.L = gpio.High
	return l
}

// Out implements gpio.PinOut.
func (l *Line) Out(v gpio.Level) error {
	if l.Err != nil {
		return l.Err
	}
	if err := l.Pin.Out(v); err != nil {
		return err
	}
	l.p.Lock()
	defer l.p.Unlock()
	l.p.Trace = append(l.p.Trace, Event{Kind: LineEvent, At: l.p.Elapsed, Line: l.N, Level: v})
	if l == l.p.RST && v == gpio.Low {
		l.p.x0, l.p.y0 = 0, 0
		l.p.x1, l.p.y1 = l.p.fb.Rect.Dx()-1, l.p.fb.Rect.Dy()-1
		l.p.writing = false
	}
	return nil
}

// MismatchError is returned by Loopback when the bytes read back differ from
// the ones written.
type MismatchError struct {
	Want []byte
	Got  []byte
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("st7796stest: loopback mismatch: wrote % X, read % X", e.Want, e.Got)
}

// DefaultPattern is the pattern used by Loopback when none is given.
var DefaultPattern = []byte{0xA5, 0x5A, 0xF0, 0x0F}

// Loopback writes pattern on c and checks that the same bytes come back.
//
// It only passes when MISO is wired to MOSI, or against a Panel in Loopback
// mode. It is a harness diagnostic, not something to run against a panel.
func Loopback(c conn.Conn, pattern []byte) error {
	if len(pattern) == 0 {
		pattern = DefaultPattern
	}
	r := make([]byte, len(pattern))
	if err := c.Tx(pattern, r); err != nil {
		return err
	}
	if !bytes.Equal(pattern, r) {
		return &MismatchError{Want: append([]byte(nil), pattern...), Got: r}
	}
	return nil
}

var _ spi.Port = &Panel{}
var _ spi.Conn = &Panel{}
var _ gpio.PinOut = &Line{}
