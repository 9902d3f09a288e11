// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7796s

import (
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

// Reset pulse timing.
const (
	resetHigh   = 50 * time.Millisecond
	resetLow    = 50 * time.Millisecond
	resetSettle = 120 * time.Millisecond
)

// transport frames bytes on the 4-wire interface.
//
// CS is low only for the duration of one call. D/C is low for command bytes
// and high for data and read phases.
type transport struct {
	c conn.Conn

	// cs is nil when the SPI port asserts chip select itself.
	cs gpio.PinOut
	dc gpio.PinOut
	// rst is nil when the reset line is tied high.
	rst gpio.PinOut

	sleep     func(time.Duration)
	maxTxSize int
}

// errorHandler keeps the first failure of a frame.
type errorHandler struct {
	t    *transport
	code ErrCode
	err  error
}

func (eh *errorHandler) fail(code ErrCode, err error) {
	if err != nil && eh.err == nil {
		eh.code, eh.err = code, err
	}
}

func (eh *errorHandler) csOut(l gpio.Level) {
	if eh.err != nil || eh.t.cs == nil {
		return
	}
	eh.fail(ErrCS, eh.t.cs.Out(l))
}

func (eh *errorHandler) dcOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.fail(ErrDC, eh.t.dc.Out(l))
}

func (eh *errorHandler) rstOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.fail(ErrRST, eh.t.rst.Out(l))
}

func (eh *errorHandler) cTx(code ErrCode, w, r []byte) {
	if eh.err != nil {
		return
	}
	eh.fail(code, eh.t.c.Tx(w, r))
}

func (eh *errorHandler) sleep(d time.Duration) {
	if eh.err != nil {
		return
	}
	eh.t.sleep(d)
}

// deselect raises CS even when the frame failed.
func (eh *errorHandler) deselect() {
	if eh.t.cs == nil {
		return
	}
	eh.fail(ErrCS, eh.t.cs.Out(gpio.High))
}

func (eh *errorHandler) result() error {
	if eh.err == nil {
		return nil
	}
	return &Error{Code: eh.code, Err: eh.err}
}

func (t *transport) writeCommand(cmd byte) error {
	eh := errorHandler{t: t}
	eh.csOut(gpio.Low)
	eh.dcOut(gpio.Low)
	eh.cTx(ErrCommand, []byte{cmd}, nil)
	eh.deselect()
	return eh.result()
}

func (t *transport) writeData(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	eh := errorHandler{t: t}
	eh.csOut(gpio.Low)
	eh.dcOut(gpio.High)
	for len(data) != 0 && eh.err == nil {
		chunk := data
		if len(chunk) > t.maxTxSize {
			chunk = chunk[:t.maxTxSize]
		}
		eh.cTx(ErrData, chunk, nil)
		data = data[len(chunk):]
	}
	eh.deselect()
	return eh.result()
}

// writeRepeated sends pattern n times in a single data phase without
// materializing the whole payload.
func (t *transport) writeRepeated(pattern []byte, n int) error {
	if len(pattern) == 0 || n <= 0 {
		return nil
	}
	per := t.maxTxSize / len(pattern)
	if per == 0 {
		per = 1
	}
	if per > n {
		per = n
	}
	chunk := make([]byte, 0, per*len(pattern))
	for i := 0; i < per; i++ {
		chunk = append(chunk, pattern...)
	}
	eh := errorHandler{t: t}
	eh.csOut(gpio.Low)
	eh.dcOut(gpio.High)
	for n > 0 && eh.err == nil {
		k := per
		if k > n {
			k = n
		}
		eh.cTx(ErrData, chunk[:k*len(pattern)], nil)
		n -= k
	}
	eh.deselect()
	return eh.result()
}

// readData clocks out zeroes and captures len(buf) bytes. Commands with a
// dummy byte leave it in buf[0].
func (t *transport) readData(buf []byte) error {
	eh := errorHandler{t: t}
	eh.csOut(gpio.Low)
	eh.dcOut(gpio.High)
	eh.cTx(ErrRead, make([]byte, len(buf)), buf)
	eh.deselect()
	return eh.result()
}

// resetPulse toggles RST high, low, high and waits for the controller to
// settle.
func (t *transport) resetPulse() error {
	if t.rst == nil {
		return nil
	}
	eh := errorHandler{t: t}
	eh.rstOut(gpio.High)
	eh.sleep(resetHigh)
	eh.rstOut(gpio.Low)
	eh.sleep(resetLow)
	eh.rstOut(gpio.High)
	eh.sleep(resetSettle)
	return eh.result()
}
