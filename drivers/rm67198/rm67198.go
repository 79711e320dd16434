// Package rm67198 brings up a Raydium RM67198 OLED panel over MIPI-DSI.
//
// Setup runs a fixed sequence and stops at the first failed packet. Every
// failure is reported as errcode.IO; the message names the step.
package rm67198

import (
	"time"

	"bringup-go/drivers/dsi"
	"bringup-go/errcode"
)

// Name identifies the panel driver to the boot sequencer.
const Name = "RM67198_OLED"

// Settle delays.
const (
	resetSettle = 10 * time.Millisecond
	wakeSettle  = 5 * time.Millisecond
)

// Register values written after the reset.
const (
	regDSIMode     = 0xC2
	dsiModeVideo   = 0x0B
	tearScanlineHi = 0x03
	tearScanlineLo = 0x80
	maxBrightness  = 0x00FF
)

// Config controls non-hardware behaviour. All fields are optional.
type Config struct {
	Format dsi.PixelFormat
	// Alloc backs DCS long writes. Defaults to dsi.HeapAllocator.
	Alloc dsi.Allocator
	// Sleep performs the settle delays. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

// Device drives one panel behind a DSI bridge.
type Device struct {
	tx     dsi.Transmitter
	f      *dsi.Framer
	format dsi.PixelFormat
	sleep  func(time.Duration)
}

// New binds the panel driver to a bridge. It does not touch the panel.
func New(tx dsi.Transmitter, cfg Config) *Device {
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Device{
		tx:     tx,
		f:      dsi.NewFramer(tx, cfg.Alloc),
		format: cfg.Format,
		sleep:  sleep,
	}
}

func (d *Device) Name() string { return Name }

func ioErr(step string, err error) error {
	return errcode.Wrap(errcode.IO, "rm67198.setup", step, err)
}

// PushCmdList sends every manufacturer command as a two byte generic write,
// in table order. The first failure is returned unchanged and no further
// entries are sent.
func (d *Device) PushCmdList() error {
	for _, c := range manufacturerCmds {
		if err := dsi.GenericWrite(d.tx, c.Reg, c.Val); err != nil {
			return err
		}
	}
	return nil
}

// Setup initialises the panel and turns the display on.
func (d *Device) Setup() error {
	if err := d.PushCmdList(); err != nil {
		return ioErr("send manufacturer command set", err)
	}

	if err := d.f.GenericWrite(regPageSelect, pageUser); err != nil {
		return ioErr("select user command set", err)
	}

	if err := d.f.DCSWrite(dsi.DCSSoftReset); err != nil {
		return ioErr("software reset", err)
	}
	d.sleep(resetSettle)

	if err := d.f.GenericWrite(regDSIMode, dsiModeVideo); err != nil {
		return ioErr("set DSI mode", err)
	}
	if err := d.f.DCSWrite(dsi.DCSSetTearOn, 0x00); err != nil {
		return ioErr("set tear on", err)
	}
	if err := d.f.GenericWrite(dsi.DCSSetTearScanline, tearScanlineHi, tearScanlineLo); err != nil {
		return ioErr("set tear scanline", err)
	}
	if err := d.f.DCSWrite(dsi.DCSSetPixelFormat, dsi.ColorFormat(d.format)); err != nil {
		return ioErr("set pixel format", err)
	}
	// Brightness is a 16-bit value sent low byte first.
	if err := d.f.DCSWrite(dsi.DCSSetDisplayBrightness, byte(maxBrightness), byte(maxBrightness>>8)); err != nil {
		return ioErr("set display brightness", err)
	}

	if err := d.f.DCSWrite(dsi.DCSExitSleepMode); err != nil {
		return ioErr("exit sleep mode", err)
	}
	d.sleep(wakeSettle)

	if err := d.f.DCSWrite(dsi.DCSSetDisplayOn); err != nil {
		return ioErr("set display on", err)
	}
	return nil
}
