// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7796s

import "fmt"

// ErrCode identifies where on the wire an operation failed.
//
// The values are stable and never zero.
type ErrCode uint8

// Error codes.
const (
	ErrCS       ErrCode = 1 // driving the chip select line
	ErrDC       ErrCode = 2 // driving the data/command line
	ErrRST      ErrCode = 3 // driving the reset line
	ErrCommand  ErrCode = 4 // SPI write of a command byte
	ErrData     ErrCode = 5 // SPI write of a data phase
	ErrRead     ErrCode = 6 // SPI transfer of a read phase
	ErrReadRate ErrCode = 7 // read refused, bus clock above MaxReadFrequency
	ErrInput    ErrCode = 8 // missing or malformed parameters
)

func (c ErrCode) String() string {
	switch c {
	case ErrCS:
		return "cs"
	case ErrDC:
		return "dc"
	case ErrRST:
		return "rst"
	case ErrCommand:
		return "command"
	case ErrData:
		return "data"
	case ErrRead:
		return "read"
	case ErrReadRate:
		return "read rate"
	case ErrInput:
		return "input"
	default:
		return fmt.Sprintf("ErrCode(%d)", uint8(c))
	}
}

// Error is returned by every Dev operation that fails.
type Error struct {
	Op   string  // operation, e.g. "rddid"
	Code ErrCode // failing call site
	Err  error   // underlying error, may be nil
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("st7796s: %s: %s failed (code %d)", e.Op, e.Code, uint8(e.Code))
	}
	return fmt.Sprintf("st7796s: %s: %s failed (code %d): %v", e.Op, e.Code, uint8(e.Code), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
