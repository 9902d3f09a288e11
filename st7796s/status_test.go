// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7796s

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeRDDID(t *testing.T) {
	got := decodeRDDID([]byte{0xAA, 0x54, 0x80, 0xDE})
	want := RDDIDResult{ManufacturerID: 0x54, DriverVersion: 0x80, DriverID: 0xDE}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("decodeRDDID() difference (-got +want):\n%s", diff)
	}
}

func TestDecodeRNEDSI(t *testing.T) {
	for _, tc := range []struct {
		in   byte
		want RNEDSIResult
	}{
		{0x00, RNEDSIResult{}},
		{0x87, RNEDSIResult{NumErrors: 7, HasOverflow: true}},
		{0x7F, RNEDSIResult{NumErrors: 127}},
		{0x80, RNEDSIResult{HasOverflow: true}},
	} {
		if diff := cmp.Diff(decodeRNEDSI([]byte{0xAA, tc.in}), tc.want); diff != "" {
			t.Errorf("decodeRNEDSI(0x%02X) difference (-got +want):\n%s", tc.in, diff)
		}
	}
}

func TestDecodeRDDSTFields(t *testing.T) {
	for _, tc := range []struct {
		name  string
		in    [5]byte
		field func(RDDSTResult) fmt.Stringer
		want  fmt.Stringer
	}{
		{"bston off", [5]byte{}, func(r RDDSTResult) fmt.Stringer { return r.BSTON }, BoosterOff},
		{"bston on", [5]byte{1: 0x80}, func(r RDDSTResult) fmt.Stringer { return r.BSTON }, BoosterOn},
		{"my increment", [5]byte{}, func(r RDDSTResult) fmt.Stringer { return r.MY }, Increment},
		{"my decrement", [5]byte{1: 0x40}, func(r RDDSTResult) fmt.Stringer { return r.MY }, Decrement},
		{"mx decrement", [5]byte{1: 0x20}, func(r RDDSTResult) fmt.Stringer { return r.MX }, Decrement},
		{"mv normal", [5]byte{}, func(r RDDSTResult) fmt.Stringer { return r.MV }, NoExchange},
		{"mv exchange", [5]byte{1: 0x10}, func(r RDDSTResult) fmt.Stringer { return r.MV }, Exchange},
		{"ml decrement", [5]byte{1: 0x08}, func(r RDDSTResult) fmt.Stringer { return r.ML }, Decrement},
		{"rgb", [5]byte{}, func(r RDDSTResult) fmt.Stringer { return r.RGB }, OrderRGB},
		{"bgr", [5]byte{1: 0x04}, func(r RDDSTResult) fmt.Stringer { return r.RGB }, OrderBGR},
		{"ifpf undefined", [5]byte{}, func(r RDDSTResult) fmt.Stringer { return r.IFPF }, PixelFormatUndefined},
		{"ifpf 16", [5]byte{2: 0x50}, func(r RDDSTResult) fmt.Stringer { return r.IFPF }, Bit16},
		{"ifpf 18", [5]byte{2: 0x60}, func(r RDDSTResult) fmt.Stringer { return r.IFPF }, Bit18},
		{"ifpf 24", [5]byte{2: 0x70}, func(r RDDSTResult) fmt.Stringer { return r.IFPF }, Bit24},
		{"ifpf 0x3", [5]byte{2: 0x30}, func(r RDDSTResult) fmt.Stringer { return r.IFPF }, PixelFormatUndefined},
		{"ifpf ignores bit 7", [5]byte{2: 0xD0}, func(r RDDSTResult) fmt.Stringer { return r.IFPF }, Bit16},
		{"idmon", [5]byte{2: 0x08}, func(r RDDSTResult) fmt.Stringer { return r.IDMON }, On},
		{"ptlon", [5]byte{2: 0x04}, func(r RDDSTResult) fmt.Stringer { return r.PTLON }, On},
		{"slpin", [5]byte{}, func(r RDDSTResult) fmt.Stringer { return r.SLPOUT }, In},
		{"slpout", [5]byte{2: 0x02}, func(r RDDSTResult) fmt.Stringer { return r.SLPOUT }, Out},
		{"partial", [5]byte{}, func(r RDDSTResult) fmt.Stringer { return r.NORON }, Partial},
		{"normal", [5]byte{2: 0x01}, func(r RDDSTResult) fmt.Stringer { return r.NORON }, Normal},
		{"st", [5]byte{3: 0x80}, func(r RDDSTResult) fmt.Stringer { return r.ST }, On},
		{"invon", [5]byte{3: 0x20}, func(r RDDSTResult) fmt.Stringer { return r.INVON }, On},
		{"dison", [5]byte{3: 0x04}, func(r RDDSTResult) fmt.Stringer { return r.DISON }, On},
		{"teon", [5]byte{3: 0x02}, func(r RDDSTResult) fmt.Stringer { return r.TEON }, On},
		{"gc0", [5]byte{}, func(r RDDSTResult) fmt.Stringer { return r.GCSEL }, GC0},
		{"gc1", [5]byte{4: 0x40}, func(r RDDSTResult) fmt.Stringer { return r.GCSEL }, GC1},
		{"gc2", [5]byte{4: 0x80}, func(r RDDSTResult) fmt.Stringer { return r.GCSEL }, GC2},
		{"gc3", [5]byte{4: 0xC0}, func(r RDDSTResult) fmt.Stringer { return r.GCSEL }, GC3},
		{"gcsel undefined", [5]byte{3: 0x01, 4: 0xC0}, func(r RDDSTResult) fmt.Stringer { return r.GCSEL }, GammaUndefined},
		{"tem mode1", [5]byte{}, func(r RDDSTResult) fmt.Stringer { return r.TEM }, Mode1},
		{"tem mode2", [5]byte{4: 0x20}, func(r RDDSTResult) fmt.Stringer { return r.TEM }, Mode2},
		{"dummy byte ignored", [5]byte{0: 0xFF}, func(r RDDSTResult) fmt.Stringer { return r.BSTON }, BoosterOff},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.field(decodeRDDST(tc.in[:]))
			if got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestDecodeRDDST(t *testing.T) {
	got := decodeRDDST([]byte{0x00, 0x84, 0x51, 0x84, 0x00})
	want := RDDSTResult{
		BSTON:  BoosterOn,
		MY:     Increment,
		MX:     Increment,
		MV:     NoExchange,
		ML:     Increment,
		RGB:    OrderBGR,
		IFPF:   Bit16,
		IDMON:  Off,
		PTLON:  Off,
		SLPOUT: In,
		NORON:  Normal,
		ST:     On,
		INVON:  Off,
		DISON:  On,
		TEON:   Off,
		GCSEL:  GC0,
		TEM:    Mode1,
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("decodeRDDST() difference (-got +want):\n%s", diff)
	}
}

func TestOutputString(t *testing.T) {
	for _, tc := range []struct {
		out  Output
		want string
	}{
		{NoReturn{}, "NoReturn"},
		{RDDIDResult{ManufacturerID: 0x54, DriverVersion: 0x80, DriverID: 0xDE}, "RDDID{manufacturer: 0x54, version: 0x80, driver: 0xDE}"},
		{RNEDSIResult{NumErrors: 7, HasOverflow: true}, "RNEDSI{errors: 7, overflow: true}"},
		{Brightness(127), "Brightness(127)"},
	} {
		if got := tc.out.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}
