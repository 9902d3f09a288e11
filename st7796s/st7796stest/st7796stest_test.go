// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7796stest

import (
	"errors"
	"testing"
	"time"

	"github.com/GermanBionicSystems/st7796/st7796s/rgb565"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// frame drives CS and DC around one transfer the way a driver would.
func frame(t *testing.T, p *Panel, dc gpio.Level, w, r []byte) {
	t.Helper()
	if err := p.CS.Out(gpio.Low); err != nil {
		t.Fatal(err)
	}
	if err := p.DC.Out(dc); err != nil {
		t.Fatal(err)
	}
	if err := p.Tx(w, r); err != nil {
		t.Fatal(err)
	}
	if err := p.CS.Out(gpio.High); err != nil {
		t.Fatal(err)
	}
}

func TestConnect(t *testing.T) {
	p := NewPanel(4, 4)
	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		t.Fatal(err)
	}
	if c != p || p.Freq != 10*physic.MegaHertz || p.Bits != 8 {
		t.Errorf("Connect() = %v, freq %s, bits %d", c, p.Freq, p.Bits)
	}
	if _, err := p.Connect(physic.MegaHertz, spi.Mode0, 8); err == nil {
		t.Error("second Connect succeeded")
	}
}

func TestResponses(t *testing.T) {
	p := NewPanel(4, 4)
	p.Responses[0x04] = []byte{0xAA, 0x54, 0x80, 0xDE}

	frame(t, p, gpio.Low, []byte{0x04}, nil)
	r := make([]byte, 5)
	frame(t, p, gpio.High, make([]byte, 5), r)

	if diff := cmp.Diff(r, []byte{0xAA, 0x54, 0x80, 0xDE, 0x00}); diff != "" {
		t.Errorf("read difference (-got +want):\n%s", diff)
	}

	// Unknown reads return zeroes.
	frame(t, p, gpio.Low, []byte{0x0A}, nil)
	r = []byte{1, 2}
	frame(t, p, gpio.High, make([]byte, 2), r)
	if diff := cmp.Diff(r, []byte{0, 0}); diff != "" {
		t.Errorf("read difference (-got +want):\n%s", diff)
	}
}

func TestFramesAndRecords(t *testing.T) {
	p := NewPanel(4, 4)
	frame(t, p, gpio.Low, []byte{0x51}, nil)
	frame(t, p, gpio.High, []byte{0x7F}, nil)
	frame(t, p, gpio.Low, []byte{0x29}, nil)
	// A frame with no transfer is dropped.
	if err := p.CS.Out(gpio.Low); err != nil {
		t.Fatal(err)
	}
	if err := p.CS.Out(gpio.High); err != nil {
		t.Fatal(err)
	}

	wantFrames := []Frame{
		{DC: gpio.Low, Bytes: []byte{0x51}},
		{DC: gpio.High, Bytes: []byte{0x7F}},
		{DC: gpio.Low, Bytes: []byte{0x29}},
	}
	if diff := cmp.Diff(p.Frames(), wantFrames); diff != "" {
		t.Errorf("Frames() difference (-got +want):\n%s", diff)
	}
	wantRecords := []Record{
		{Cmd: 0x51, Data: []byte{0x7F}},
		{Cmd: 0x29},
	}
	if diff := cmp.Diff(p.Records(), wantRecords, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Records() difference (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(p.Levels("CS"), []gpio.Level{gpio.Low, gpio.High, gpio.Low, gpio.High, gpio.Low, gpio.High, gpio.Low, gpio.High}); diff != "" {
		t.Errorf("Levels() difference (-got +want):\n%s", diff)
	}
}

func TestMixedFrame(t *testing.T) {
	p := NewPanel(4, 4)
	if err := p.CS.Out(gpio.Low); err != nil {
		t.Fatal(err)
	}
	if err := p.DC.Out(gpio.Low); err != nil {
		t.Fatal(err)
	}
	if err := p.Tx([]byte{0x51}, nil); err != nil {
		t.Fatal(err)
	}
	if err := p.DC.Out(gpio.High); err != nil {
		t.Fatal(err)
	}
	if err := p.Tx([]byte{0x10}, nil); err != nil {
		t.Fatal(err)
	}
	if err := p.CS.Out(gpio.High); err != nil {
		t.Fatal(err)
	}

	want := []Frame{{DC: gpio.Low, Bytes: []byte{0x51, 0x10}, Mixed: true}}
	if diff := cmp.Diff(p.Frames(), want); diff != "" {
		t.Errorf("Frames() difference (-got +want):\n%s", diff)
	}
}

func TestFramebuffer(t *testing.T) {
	p := NewPanel(4, 4)
	frame(t, p, gpio.Low, []byte{0x2A}, nil)
	frame(t, p, gpio.High, []byte{0, 1, 0, 2}, nil)
	frame(t, p, gpio.Low, []byte{0x2B}, nil)
	frame(t, p, gpio.High, []byte{0, 2, 0, 3}, nil)
	frame(t, p, gpio.Low, []byte{0x2C}, nil)
	// Odd sized transfers split pixels across calls.
	frame(t, p, gpio.High, []byte{0xF8, 0x00, 0x07}, nil)
	frame(t, p, gpio.High, []byte{0xE0, 0x00, 0x1F, 0xFF, 0xFF}, nil)

	img := p.Image()
	for _, tc := range []struct {
		x, y int
		want rgb565.Color
	}{
		{1, 2, rgb565.Red},
		{2, 2, rgb565.Green},
		{1, 3, rgb565.Blue},
		{2, 3, rgb565.White},
		{0, 2, rgb565.Black},
		{3, 3, rgb565.Black},
	} {
		if got := img.RGB565At(tc.x, tc.y); got != tc.want {
			t.Errorf("pixel (%d, %d) = %#04x, want %#04x", tc.x, tc.y, uint16(got), uint16(tc.want))
		}
	}

	// RAMWRC continues where RAMWR stopped, wrapping to the window start.
	frame(t, p, gpio.Low, []byte{0x3C}, nil)
	frame(t, p, gpio.High, []byte{0x07, 0xE0}, nil)
	if got := img.RGB565At(1, 2); got != rgb565.Green {
		t.Errorf("pixel (1, 2) = %#04x after RAMWRC", uint16(got))
	}
}

func TestResetLine(t *testing.T) {
	p := NewPanel(4, 4)
	frame(t, p, gpio.Low, []byte{0x2A}, nil)
	frame(t, p, gpio.High, []byte{0, 3, 0, 3}, nil)
	if err := p.RST.Out(gpio.Low); err != nil {
		t.Fatal(err)
	}
	if err := p.RST.Out(gpio.High); err != nil {
		t.Fatal(err)
	}
	frame(t, p, gpio.Low, []byte{0x2C}, nil)
	frame(t, p, gpio.High, []byte{0xFF, 0xFF}, nil)

	if got := p.Image().RGB565At(0, 0); got != rgb565.White {
		t.Errorf("reset did not restore the window: %#04x", uint16(got))
	}
}

func TestSleep(t *testing.T) {
	p := NewPanel(1, 1)
	p.Sleep(50 * time.Millisecond)
	frame(t, p, gpio.Low, []byte{0x00}, nil)
	p.Sleep(20 * time.Millisecond)

	if p.Elapsed != 70*time.Millisecond {
		t.Errorf("Elapsed = %s", p.Elapsed)
	}
	last := p.Trace[len(p.Trace)-1]
	if last.Kind != DelayEvent || last.At != 50*time.Millisecond || last.Delay != 20*time.Millisecond {
		t.Errorf("last event = %+v", last)
	}
	p.Reset()
	if len(p.Trace) != 0 || p.Elapsed != 0 {
		t.Error("Reset() kept the trace")
	}
}

func TestErrors(t *testing.T) {
	p := NewPanel(1, 1)
	boom := errors.New("boom")
	p.TxErr = boom
	if err := p.Tx([]byte{0}, nil); err != boom {
		t.Errorf("Tx() = %v", err)
	}
	p.DC.Err = boom
	if err := p.DC.Out(gpio.Low); err != boom {
		t.Errorf("Out() = %v", err)
	}
	if p.DC.Read() != gpio.High {
		t.Error("failed Out changed the level")
	}
	if len(p.Trace) != 0 {
		t.Errorf("failures were traced: %v", p.Trace)
	}
}

func TestLoopback(t *testing.T) {
	p := NewPanel(1, 1)
	p.Loopback = true
	if err := Loopback(p, nil); err != nil {
		t.Error(err)
	}
	if err := Loopback(p, []byte{1, 2, 3}); err != nil {
		t.Error(err)
	}

	p.Loopback = false
	err := Loopback(p, nil)
	var m *MismatchError
	if !errors.As(err, &m) {
		t.Fatalf("Loopback() = %v, want *MismatchError", err)
	}
	if diff := cmp.Diff(m.Want, DefaultPattern); diff != "" {
		t.Errorf("Want difference (-got +want):\n%s", diff)
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{LineEvent: "line", TxEvent: "tx", DelayEvent: "delay", 9: "Kind(9)"} {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}
