package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"

	"bringup-go/boards/iwg37m"
	"bringup-go/drivers/bd718xx"
	"bringup-go/drivers/dsi"
	"bringup-go/services/config"
)

// hardware is what the sequencer needs from the host.
type hardware interface {
	I2C() drivers.I2C
	RevisionPins() []iwg37m.PinInput
	ResetPin() iwg37m.PinOutput
	Close() error
}

// ---- periph.io backed host ----

type hostHardware struct {
	bus   i2c.BusCloser
	revs  []gpio.PinIO
	reset gpio.PinIO
	log   *zap.SugaredLogger
}

func openHostHardware(p config.Profile, log *zap.SugaredLogger) (*hostHardware, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	bus, err := i2creg.Open(p.PMIC.Bus)
	if err != nil {
		return nil, fmt.Errorf("i2c %q: %w", p.PMIC.Bus, err)
	}
	h := &hostHardware{bus: bus, log: log}
	for _, name := range revisionPinNames(p) {
		pin := gpioreg.ByName(name)
		if pin == nil {
			_ = bus.Close()
			return nil, fmt.Errorf("revision pin %q not found", name)
		}
		if err := pin.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
			_ = bus.Close()
			return nil, fmt.Errorf("revision pin %q: %w", name, err)
		}
		h.revs = append(h.revs, pin)
	}
	reset := p.ResetPin
	if reset == "" {
		reset = strconv.Itoa(iwg37m.PeripheralResetGPIO)
	}
	if h.reset = gpioreg.ByName(reset); h.reset == nil {
		log.Warnw("reset pin not found; skipping peripheral reset", "pin", reset)
	}
	return h, nil
}

// revisionPinNames falls back to the SOM's linear GPIO numbers, which
// gpioreg resolves like names.
func revisionPinNames(p config.Profile) []string {
	if len(p.RevisionPins) > 0 {
		return p.RevisionPins
	}
	names := make([]string, len(iwg37m.RevisionGPIOs))
	for i, n := range iwg37m.RevisionGPIOs {
		names[i] = strconv.Itoa(n)
	}
	return names
}

func (h *hostHardware) I2C() drivers.I2C { return h.bus }

func (h *hostHardware) RevisionPins() []iwg37m.PinInput {
	out := make([]iwg37m.PinInput, len(h.revs))
	for i, p := range h.revs {
		p := p
		out[i] = func() bool { return p.Read() == gpio.High }
	}
	return out
}

func (h *hostHardware) ResetPin() iwg37m.PinOutput {
	if h.reset == nil {
		return nil
	}
	pin := h.reset
	return func(high bool) {
		if err := pin.Out(gpio.Level(high)); err != nil {
			h.log.Warnw("reset pin", "pin", pin.Name(), "err", err)
		}
	}
}

func (h *hostHardware) Close() error { return h.bus.Close() }

// ---- simulated host for dry runs ----

type simHardware struct {
	regs   [256]byte
	straps uint8
	log    *zap.SugaredLogger
	addr   uint16
}

func newSimHardware(p config.Profile, straps uint8, log *zap.SugaredLogger) *simHardware {
	s := &simHardware{straps: straps, log: log, addr: p.PMIC.Address}
	s.regs[bd718xx.RegLock] = bd718xx.RegLockPwrSeq | bd718xx.RegLockVReg
	return s
}

func (s *simHardware) I2C() drivers.I2C { return s }

// Tx implements drivers.I2C over an in-memory register file.
func (s *simHardware) Tx(addr uint16, w, r []byte) error {
	if addr != s.addr || len(w) == 0 {
		return fmt.Errorf("sim i2c: no device at 0x%02x", addr)
	}
	reg := int(w[0])
	if len(r) > 0 {
		copy(r, s.regs[reg:])
		s.log.Debugw("sim i2c read", "reg", reg, "n", len(r))
		return nil
	}
	copy(s.regs[reg:], w[1:])
	s.log.Debugw("sim i2c write", "reg", reg, "data", fmt.Sprintf("% x", w[1:]))
	return nil
}

func (s *simHardware) RevisionPins() []iwg37m.PinInput {
	out := make([]iwg37m.PinInput, len(iwg37m.RevisionGPIOs))
	for i := range out {
		bit := uint8(1) << i
		out[i] = func() bool { return s.straps&bit != 0 }
	}
	return out
}

func (s *simHardware) ResetPin() iwg37m.PinOutput {
	return func(high bool) { s.log.Debugw("sim peripheral reset", "level", high) }
}

func (s *simHardware) Close() error { return nil }

// ---- pad and DSI sinks ----

// logMuxer records pad routing; the SoC IOMUXC is owned by the bootloader.
type logMuxer struct{ log *zap.SugaredLogger }

func (m logMuxer) SetupPads(pads []iwg37m.Pad) error {
	for _, p := range pads {
		m.log.Debugw("pad", "pad", p.Name, "func", p.Func, "ctl", fmt.Sprintf("0x%05x", uint32(p.Ctl)), "sion", p.SION)
	}
	return nil
}

// traceTransmitter writes one line per DSI packet.
type traceTransmitter struct{ w io.Writer }

func (t traceTransmitter) PacketWrite(kind dsi.Kind, data []byte, length int) error {
	_, err := fmt.Fprintf(t.w, "%02x %-22s len=%-3d % x\n", uint8(kind), kind, length, data)
	return err
}

func openTrace(path string) (dsi.Transmitter, func(), error) {
	if path == "" || path == "-" {
		return traceTransmitter{w: os.Stdout}, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return traceTransmitter{w: f}, func() { _ = f.Close() }, nil
}
