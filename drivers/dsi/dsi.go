// Package dsi frames MIPI-DSI generic and DCS writes for a display bridge.
//
// The bridge supplies a single packet primitive (Transmitter). This package
// picks the packet kind from the payload length and issues exactly one
// PacketWrite per call:
//
//	GenericWrite(tx, []byte{0xFE, 0x00})     // generic short write, 2 params
//	f.DCSWrite(DCSSetPixelFormat, 0x77)      // DCS short write with param
//
// Nothing here retries or queues; the bridge result is returned as-is.
package dsi

import "bringup-go/errcode"

// Kind is the DSI data type placed in the packet header.
type Kind uint8

const (
	GenericShortWrite0 Kind = 0x03
	GenericShortWrite1 Kind = 0x13
	GenericShortWrite2 Kind = 0x23
	GenericLongWrite   Kind = 0x29
	DCSShortWrite      Kind = 0x05
	DCSShortWriteParam Kind = 0x15
	DCSLongWrite       Kind = 0x39
)

func (k Kind) String() string {
	switch k {
	case GenericShortWrite0:
		return "generic_short_write_0"
	case GenericShortWrite1:
		return "generic_short_write_1"
	case GenericShortWrite2:
		return "generic_short_write_2"
	case GenericLongWrite:
		return "generic_long_write"
	case DCSShortWrite:
		return "dcs_short_write"
	case DCSShortWriteParam:
		return "dcs_short_write_param"
	case DCSLongWrite:
		return "dcs_long_write"
	default:
		return "unknown"
	}
}

// Long reports whether k carries an explicit length.
func (k Kind) Long() bool { return k == GenericLongWrite || k == DCSLongWrite }

// Transmitter is the bridge's packet primitive. length is 0 for short
// packets and the payload length for long ones.
type Transmitter interface {
	PacketWrite(kind Kind, data []byte, length int) error
}

// TransmitterFunc adapts a function to Transmitter.
type TransmitterFunc func(kind Kind, data []byte, length int) error

func (f TransmitterFunc) PacketWrite(kind Kind, data []byte, length int) error {
	return f(kind, data, length)
}

// DCS commands used during panel bring-up.
const (
	DCSSoftReset            = 0x01
	DCSExitSleepMode        = 0x11
	DCSSetDisplayOn         = 0x29
	DCSSetTearOn            = 0x35
	DCSSetTearScanline      = 0x44
	DCSSetPixelFormat       = 0x3A
	DCSSetDisplayBrightness = 0x51
)

// GenericWrite sends payload as a generic write. Short packets always carry
// a two byte body; unused bytes are zero.
func GenericWrite(tx Transmitter, payload ...byte) error {
	var body [2]byte
	switch len(payload) {
	case 0:
		return tx.PacketWrite(GenericShortWrite0, body[:], 0)
	case 1:
		body[0] = payload[0]
		return tx.PacketWrite(GenericShortWrite1, body[:], 0)
	case 2:
		return tx.PacketWrite(GenericShortWrite2, payload, 0)
	default:
		return tx.PacketWrite(GenericLongWrite, payload, len(payload))
	}
}

// Framer issues DCS writes. Long writes need a concatenation buffer which
// is taken from Alloc and handed back after the transmit.
type Framer struct {
	tx    Transmitter
	alloc Allocator
}

// NewFramer returns a Framer over tx. A nil alloc selects HeapAllocator.
func NewFramer(tx Transmitter, alloc Allocator) *Framer {
	if alloc == nil {
		alloc = HeapAllocator{}
	}
	return &Framer{tx: tx, alloc: alloc}
}

// GenericWrite forwards to the package-level GenericWrite on f's bridge.
func (f *Framer) GenericWrite(payload ...byte) error {
	return GenericWrite(f.tx, payload...)
}

// DCSWrite sends cmd followed by data.
//
// 1 byte total goes out as a DCS short write, 2 bytes as a short write with
// parameter, anything longer as a DCS long write whose body is cmd
// followed by data. An allocation failure returns errcode.NoMemory and
// nothing is sent.
func (f *Framer) DCSWrite(cmd byte, data ...byte) error {
	switch len(data) {
	case 0:
		return f.tx.PacketWrite(DCSShortWrite, []byte{cmd, 0}, 0)
	case 1:
		return f.tx.PacketWrite(DCSShortWriteParam, []byte{cmd, data[0]}, 0)
	}

	size := 1 + len(data)
	buf, err := f.alloc.Alloc(size)
	if err != nil {
		return errcode.Wrap(errcode.NoMemory, "dsi.dcs_write", "", err)
	}
	defer f.alloc.Free(buf)
	if len(buf) < size {
		return errcode.Wrap(errcode.NoMemory, "dsi.dcs_write", "short buffer", nil)
	}

	buf[0] = cmd
	copy(buf[1:], data)
	return f.tx.PacketWrite(DCSLongWrite, buf[:size], size)
}
