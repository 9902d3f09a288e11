// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7796s

import "fmt"

// Command is an ST7796S instruction opcode.
type Command byte

// Commands understood by the controller.
const (
	NOP     Command = 0x00 // No operation
	SWRESET Command = 0x01 // Software reset

	RDDID     Command = 0x04 // Read display ID
	RNEDSI    Command = 0x05 // Read number of errors on DSI
	RDDST     Command = 0x09 // Read display status
	RDDPM     Command = 0x0A // Read display power mode
	RDDMADCTL Command = 0x0B // Read display MADCTL
	RDDPIXFMT Command = 0x0C // Read display pixel format
	RDDIM     Command = 0x0D // Read display image mode
	RDDSM     Command = 0x0E // Read display signal mode
	RDDSDR    Command = 0x0F // Read display self-diagnostic result

	SLPIN  Command = 0x10 // Sleep in
	SLPOUT Command = 0x11 // Sleep out
	PTLON  Command = 0x12 // Partial mode on
	NORON  Command = 0x13 // Normal mode on

	INVOFF  Command = 0x20 // Display inversion off
	INVON   Command = 0x21 // Display inversion on
	DISPOFF Command = 0x28 // Display off
	DISPON  Command = 0x29 // Display on

	CASET Command = 0x2A // Column address set
	RASET Command = 0x2B // Row address set
	RAMWR Command = 0x2C // Memory write
	RAMRD Command = 0x2E // Memory read

	PTLAR    Command = 0x30 // Partial area
	VSCRDEF  Command = 0x33 // Vertical scrolling definition
	TEOFF    Command = 0x34 // Tearing effect line off
	TEON     Command = 0x35 // Tearing effect line on
	MADCTL   Command = 0x36 // Memory data access control
	VSCRSADD Command = 0x37 // Vertical scroll start address
	IDMOFF   Command = 0x38 // Idle mode off
	IDMON    Command = 0x39 // Idle mode on
	COLMOD   Command = 0x3A // Interface pixel format
	RAMWRC   Command = 0x3C // Memory write continue
	RAMRDC   Command = 0x3E // Memory read continue

	TESCAN   Command = 0x44 // Set tear scanline
	RDTESCAN Command = 0x45 // Get scanline

	WRDISBV  Command = 0x51 // Write display brightness
	RDDISBV  Command = 0x52 // Read display brightness
	WRCTRLD  Command = 0x53 // Write CTRL display
	RDCTRLD  Command = 0x54 // Read CTRL display
	WRCABC   Command = 0x55 // Write content adaptive brightness control
	RDCABC   Command = 0x56 // Read content adaptive brightness control
	WRCABCMB Command = 0x5E // Write CABC minimum brightness
	RDCABCMB Command = 0x5F // Read CABC minimum brightness

	RDFCHKSUM Command = 0xAA // Read first checksum
	RDCCHKSUM Command = 0xAF // Read continue checksum

	IFMODE  Command = 0xB0 // Interface mode control
	FRMCTR1 Command = 0xB1 // Frame rate control, normal mode
	FRMCTR2 Command = 0xB2 // Frame rate control, idle mode
	FRMCTR3 Command = 0xB3 // Frame rate control, partial mode
	DIC     Command = 0xB4 // Display inversion control
	BPC     Command = 0xB5 // Blanking porch control
	DFC     Command = 0xB6 // Display function control
	EM      Command = 0xB7 // Entry mode set

	PWR1      Command = 0xC0 // Power control 1
	PWR2      Command = 0xC1 // Power control 2
	PWR3      Command = 0xC2 // Power control 3
	VCMPCTL   Command = 0xC5 // VCOM control
	VCMOFFSET Command = 0xC6 // VCOM offset

	NVADW   Command = 0xD0 // NVM address/data
	NVBPROG Command = 0xD1 // NVM byte program control
	NVSTRD  Command = 0xD2 // NVM status read
	RDID4   Command = 0xD3 // Read ID4

	RDID1 Command = 0xDA // Read ID1
	RDID2 Command = 0xDB // Read ID2
	RDID3 Command = 0xDC // Read ID3

	PGC   Command = 0xE0 // Positive gamma control
	NGC   Command = 0xE1 // Negative gamma control
	DGC1  Command = 0xE2 // Digital gamma control 1
	DGC2  Command = 0xE3 // Digital gamma control 2
	DOCA  Command = 0xE8 // Display output CTRL adjust
	CSCON Command = 0xF0 // Command set control
	SPIRC Command = 0xFB // SPI read control
)

var commandNames = map[Command]string{
	NOP: "NOP", SWRESET: "SWRESET",
	RDDID: "RDDID", RNEDSI: "RNEDSI", RDDST: "RDDST", RDDPM: "RDDPM",
	RDDMADCTL: "RDDMADCTL", RDDPIXFMT: "RDDPIXFMT", RDDIM: "RDDIM",
	RDDSM: "RDDSM", RDDSDR: "RDDSDR",
	SLPIN: "SLPIN", SLPOUT: "SLPOUT", PTLON: "PTLON", NORON: "NORON",
	INVOFF: "INVOFF", INVON: "INVON", DISPOFF: "DISPOFF", DISPON: "DISPON",
	CASET: "CASET", RASET: "RASET", RAMWR: "RAMWR", RAMRD: "RAMRD",
	PTLAR: "PTLAR", VSCRDEF: "VSCRDEF", TEOFF: "TEOFF", TEON: "TEON",
	MADCTL: "MADCTL", VSCRSADD: "VSCRSADD", IDMOFF: "IDMOFF", IDMON: "IDMON",
	COLMOD: "COLMOD", RAMWRC: "RAMWRC", RAMRDC: "RAMRDC",
	TESCAN: "TESCAN", RDTESCAN: "RDTESCAN",
	WRDISBV: "WRDISBV", RDDISBV: "RDDISBV", WRCTRLD: "WRCTRLD",
	RDCTRLD: "RDCTRLD", WRCABC: "WRCABC", RDCABC: "RDCABC",
	WRCABCMB: "WRCABCMB", RDCABCMB: "RDCABCMB",
	RDFCHKSUM: "RDFCHKSUM", RDCCHKSUM: "RDCCHKSUM",
	IFMODE: "IFMODE", FRMCTR1: "FRMCTR1", FRMCTR2: "FRMCTR2",
	FRMCTR3: "FRMCTR3", DIC: "DIC", BPC: "BPC", DFC: "DFC", EM: "EM",
	PWR1: "PWR1", PWR2: "PWR2", PWR3: "PWR3", VCMPCTL: "VCMPCTL",
	VCMOFFSET: "VCMOFFSET",
	NVADW: "NVADW", NVBPROG: "NVBPROG", NVSTRD: "NVSTRD", RDID4: "RDID4",
	RDID1: "RDID1", RDID2: "RDID2", RDID3: "RDID3",
	PGC: "PGC", NGC: "NGC", DGC1: "DGC1", DGC2: "DGC2", DOCA: "DOCA",
	CSCON: "CSCON", SPIRC: "SPIRC",
}

// known is indexed by opcode.
var known [256]bool

func init() {
	for c := range commandNames {
		known[c] = true
	}
}

// Byte returns the opcode sent on the wire.
func (c Command) Byte() byte {
	return byte(c)
}

// Valid reports whether c is one of the controller's documented opcodes.
func (c Command) Valid() bool {
	return known[c]
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Command(0x%02X)", byte(c))
}

// CommandFromByte returns the command for opcode b.
//
// Opcodes the controller does not document map to NOP, so a stray byte never
// turns into an instruction the driver would not have sent itself.
func CommandFromByte(b byte) Command {
	if known[b] {
		return Command(b)
	}
	return NOP
}

// Commands returns every documented command in opcode order.
func Commands() []Command {
	out := make([]Command, 0, len(commandNames))
	for b := 0; b < len(known); b++ {
		if known[b] {
			out = append(out, Command(b))
		}
	}
	return out
}
