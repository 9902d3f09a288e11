// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7796s

import "fmt"

// Output is the decoded result of a command run through Dev.Exec.
type Output interface {
	fmt.Stringer
	output()
}

// NoReturn is the Output of commands that read nothing back.
type NoReturn struct{}

func (NoReturn) String() string { return "NoReturn" }

func (NoReturn) output() {}

// RDDIDResult is the decoded answer to RDDID.
type RDDIDResult struct {
	ManufacturerID uint8
	DriverVersion  uint8
	DriverID       uint8
}

func (r RDDIDResult) String() string {
	return fmt.Sprintf("RDDID{manufacturer: 0x%02X, version: 0x%02X, driver: 0x%02X}", r.ManufacturerID, r.DriverVersion, r.DriverID)
}

func (RDDIDResult) output() {}

// RNEDSIResult is the decoded answer to RNEDSI.
type RNEDSIResult struct {
	NumErrors   uint8 // 0..127
	HasOverflow bool
}

func (r RNEDSIResult) String() string {
	return fmt.Sprintf("RNEDSI{errors: %d, overflow: %t}", r.NumErrors, r.HasOverflow)
}

func (RNEDSIResult) output() {}

// Brightness is the decoded answer to RDDISBV.
type Brightness uint8

func (b Brightness) String() string { return fmt.Sprintf("Brightness(%d)", uint8(b)) }

func (Brightness) output() {}

// BoosterVoltageStatus is the BSTON status bit.
type BoosterVoltageStatus uint8

// BoosterVoltageStatus values.
const (
	BoosterOff BoosterVoltageStatus = iota
	BoosterOn
)

func (b BoosterVoltageStatus) String() string {
	if b == BoosterOn {
		return "ON"
	}
	return "OFF"
}

// AddressOrder is the scan direction reported by MY, MX and ML.
type AddressOrder uint8

// AddressOrder values.
const (
	Increment AddressOrder = iota
	Decrement
)

func (a AddressOrder) String() string {
	if a == Decrement {
		return "DECREMENT"
	}
	return "INCREMENT"
}

// RowColumnExchange is the MV status bit.
type RowColumnExchange uint8

// RowColumnExchange values.
const (
	NoExchange RowColumnExchange = iota
	Exchange
)

func (r RowColumnExchange) String() string {
	if r == Exchange {
		return "EXCHANGE"
	}
	return "NORMAL"
}

// RGBOrder is the colour component order of the panel.
type RGBOrder uint8

// RGBOrder values.
const (
	OrderRGB RGBOrder = iota
	OrderBGR
)

func (o RGBOrder) String() string {
	if o == OrderBGR {
		return "BGR"
	}
	return "RGB"
}

// PixelFormat is the interface pixel format reported by IFPF.
type PixelFormat uint8

// PixelFormat values.
const (
	PixelFormatUndefined PixelFormat = iota
	Bit16
	Bit18
	Bit24
)

func (p PixelFormat) String() string {
	switch p {
	case Bit16:
		return "Bit16"
	case Bit18:
		return "Bit18"
	case Bit24:
		return "Bit24"
	default:
		return "Undefined"
	}
}

// OnOff is a generic status flag.
type OnOff uint8

// OnOff values.
const (
	Off OnOff = iota
	On
)

func (o OnOff) String() string {
	if o == On {
		return "ON"
	}
	return "OFF"
}

// InOut is the sleep status, Out meaning the panel is awake.
type InOut uint8

// InOut values.
const (
	In InOut = iota
	Out
)

func (i InOut) String() string {
	if i == Out {
		return "OUT"
	}
	return "IN"
}

// DisplayMode is the NORON status bit.
type DisplayMode uint8

// DisplayMode values.
const (
	Partial DisplayMode = iota
	Normal
)

func (m DisplayMode) String() string {
	if m == Normal {
		return "NORMAL"
	}
	return "PARTIAL"
}

// GammaCurveSelect is the active gamma curve.
type GammaCurveSelect uint8

// GammaCurveSelect values.
const (
	GammaUndefined GammaCurveSelect = iota
	GC0
	GC1
	GC2
	GC3
)

func (g GammaCurveSelect) String() string {
	switch g {
	case GC0:
		return "GC0"
	case GC1:
		return "GC1"
	case GC2:
		return "GC2"
	case GC3:
		return "GC3"
	default:
		return "Undefined"
	}
}

// TearingEffect is the tearing effect line mode.
type TearingEffect uint8

// TearingEffect values.
const (
	Mode1 TearingEffect = iota
	Mode2
)

func (t TearingEffect) String() string {
	if t == Mode2 {
		return "MODE2"
	}
	return "MODE1"
}

// RDDSTResult is the decoded 32 bit status word returned by RDDST.
type RDDSTResult struct {
	BSTON  BoosterVoltageStatus
	MY     AddressOrder // row address order
	MX     AddressOrder // column address order
	MV     RowColumnExchange
	ML     AddressOrder // vertical refresh order
	RGB    RGBOrder
	IFPF   PixelFormat
	IDMON  OnOff // idle mode
	PTLON  OnOff // partial mode
	SLPOUT InOut
	NORON  DisplayMode
	ST     OnOff // vertical scrolling
	INVON  OnOff
	DISON  OnOff
	TEON   OnOff
	GCSEL  GammaCurveSelect
	TEM    TearingEffect
}

func (r RDDSTResult) String() string {
	return fmt.Sprintf("RDDST{bston: %s, my: %s, mx: %s, mv: %s, ml: %s, rgb: %s, ifpf: %s, idmon: %s, ptlon: %s, slpout: %s, noron: %s, st: %s, invon: %s, dison: %s, teon: %s, gcsel: %s, tem: %s}",
		r.BSTON, r.MY, r.MX, r.MV, r.ML, r.RGB, r.IFPF, r.IDMON, r.PTLON, r.SLPOUT, r.NORON, r.ST, r.INVON, r.DISON, r.TEON, r.GCSEL, r.TEM)
}

func (RDDSTResult) output() {}

// decodeRDDID decodes a 4 byte RDDID read. b[0] is the dummy byte.
func decodeRDDID(b []byte) RDDIDResult {
	return RDDIDResult{ManufacturerID: b[1], DriverVersion: b[2], DriverID: b[3]}
}

// decodeRNEDSI decodes a 2 byte RNEDSI read. b[0] is the dummy byte.
func decodeRNEDSI(b []byte) RNEDSIResult {
	return RNEDSIResult{NumErrors: b[1] & 0x7F, HasOverflow: b[1]&0x80 != 0}
}

// bit returns 1 when bit n of v is set.
func bit(v byte, n uint) uint8 {
	return (v >> n) & 1
}

// decodeRDDST decodes a 5 byte RDDST read. b[0] is the dummy byte.
func decodeRDDST(b []byte) RDDSTResult {
	r := RDDSTResult{
		BSTON:  BoosterVoltageStatus(bit(b[1], 7)),
		MY:     AddressOrder(bit(b[1], 6)),
		MX:     AddressOrder(bit(b[1], 5)),
		MV:     RowColumnExchange(bit(b[1], 4)),
		ML:     AddressOrder(bit(b[1], 3)),
		RGB:    RGBOrder(bit(b[1], 2)),
		IDMON:  OnOff(bit(b[2], 3)),
		PTLON:  OnOff(bit(b[2], 2)),
		SLPOUT: InOut(bit(b[2], 1)),
		NORON:  DisplayMode(bit(b[2], 0)),
		ST:     OnOff(bit(b[3], 7)),
		INVON:  OnOff(bit(b[3], 5)),
		DISON:  OnOff(bit(b[3], 2)),
		TEON:   OnOff(bit(b[3], 1)),
		TEM:    TearingEffect(bit(b[4], 5)),
	}
	switch (b[2] >> 4) & 0x07 {
	case 0x5:
		r.IFPF = Bit16
	case 0x6:
		r.IFPF = Bit18
	case 0x7:
		r.IFPF = Bit24
	}
	if bit(b[3], 0) == 0 {
		switch b[4] & 0xC0 {
		case 0x00:
			r.GCSEL = GC0
		case 0x40:
			r.GCSEL = GC1
		case 0x80:
			r.GCSEL = GC2
		case 0xC0:
			r.GCSEL = GC3
		}
	}
	return r
}
