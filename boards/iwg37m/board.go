// Package iwg37m describes the iWave iWG37M SOM (i.MX8M Nano): pad tables,
// revision straps, DRAM sizing and the peripheral reset line.
package iwg37m

import (
	"fmt"
	"io"
	"time"
)

// Name of the board.
const Name = "iwg37m"

// GPIO returns the linear GPIO number for bank (1-based) and index.
func GPIO(bank, idx int) int { return (bank-1)*32 + idx }

// Revision straps in bit order.
var RevisionGPIOs = []int{
	GPIO(1, 9),
	GPIO(5, 1),
	GPIO(4, 25),
	GPIO(4, 26),
	GPIO(4, 27),
	GPIO(2, 19),
	GPIO(2, 20),
}

// PeripheralResetGPIO is the active-low carrier reset.
var PeripheralResetGPIO = GPIO(5, 2)

const peripheralResetHold = 100 * time.Millisecond

// SPIChipSelect returns the chip select GPIO for an ECSPI bus.
func SPIChipSelect(bus int) int {
	if bus == 0 {
		return GPIO(5, 9)
	}
	return GPIO(5, 13)
}

// PinInput returns logical level of an input pin.
type PinInput func() bool

// PinOutput drives an output pin.
type PinOutput func(high bool)

// Revision is the strap word; bit i is the level of RevisionGPIOs[i].
type Revision uint8

// DecodeRevision packs strap levels, bit 0 first.
func DecodeRevision(levels []bool) Revision {
	var r Revision
	for i, hi := range levels {
		if hi && i < 8 {
			r |= 1 << i
		}
	}
	return r
}

// ReadRevision samples each strap once.
func ReadRevision(pins []PinInput) Revision {
	levels := make([]bool, len(pins))
	for i, p := range pins {
		levels[i] = p()
	}
	return DecodeRevision(levels)
}

// PCB revision, 1-based.
func (r Revision) PCB() int { return int(r&0x03) + 1 }

// BOM revision.
func (r Revision) BOM() int { return int(r&0x78) >> 3 }

// SOMVersion is the part number printed on the banner.
func (r Revision) SOMVersion() string {
	return fmt.Sprintf("iW-PRGJZ-AP-01-R%x.%x", r.PCB(), r.BOM())
}

// WriteInfo prints the board banner.
func WriteInfo(w io.Writer, bspVersion string, r Revision) error {
	_, err := fmt.Fprintf(w, "\nBoard Info:\n\tBSP Version     : %s\n\tSOM Version     : %s\n\n",
		bspVersion, r.SOMVersion())
	return err
}

// RAMSize is the DRAM left to the OS after the TEE carve-out.
func RAMSize(physSize, teeSize uint64) uint64 {
	if teeSize == 0 || teeSize >= physSize {
		return physSize
	}
	return physSize - teeSize
}

// PeripheralReset pulses the carrier reset low for 100 ms.
func PeripheralReset(out PinOutput, sleep func(time.Duration)) {
	if sleep == nil {
		sleep = time.Sleep
	}
	out(false)
	sleep(peripheralResetHold)
	out(true)
}

// Features selects optional interfaces fitted on the carrier.
type Features struct {
	NAND bool
	SPI  bool
	QSPI bool
}

// EarlyInit routes the console pads and, if fitted, raw NAND.
func EarlyInit(m Muxer, f Features) error {
	if err := m.SetupPads(UARTPads); err != nil {
		return err
	}
	if f.NAND {
		return m.SetupPads(NANDPads)
	}
	return nil
}

// Init routes the watchdog and the optional SPI and QSPI pads.
func Init(m Muxer, f Features) error {
	if err := m.SetupPads(WdogPads); err != nil {
		return err
	}
	if f.SPI {
		if err := m.SetupPads(ECSPI1Pads); err != nil {
			return err
		}
		if err := m.SetupPads(ECSPI2Pads); err != nil {
			return err
		}
	}
	if f.QSPI {
		return m.SetupPads(QSPIPads)
	}
	return nil
}

// ConfigPadsInit routes the revision straps as inputs.
func ConfigPadsInit(m Muxer) error { return m.SetupPads(BoardConfigPads) }
