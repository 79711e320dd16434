// Package bd718xx is a register gateway for ROHM BD71837/BD71847 PMICs.
//
// The device goes through bind (discover regulator children from the
// configuration tree), probe (unlock the regulator registers where the
// variant needs it) and ready (children may be handed to their drivers):
//
//	Unbound -> Bound -> Probed -> Ready
//	                 \-> ProbeFailed
//
// All transfers are single-shot; nothing is retried.
package bd718xx

import (
	"errors"
	"strconv"
	"strings"

	"tinygo.org/x/drivers"

	"bringup-go/devtree"
	"bringup-go/errcode"
)

// State of one device.
type State uint8

const (
	StateUnbound State = iota
	StateBound
	StateProbed
	StateReady
	StateProbeFailed
)

func (s State) String() string {
	switch s {
	case StateUnbound:
		return "unbound"
	case StateBound:
		return "bound"
	case StateProbed:
		return "probed"
	case StateReady:
		return "ready"
	case StateProbeFailed:
		return "probe_failed"
	default:
		return "unknown"
	}
}

// ChildKind is the regulator class matched from the node name prefix.
type ChildKind uint8

const (
	ChildBuck ChildKind = iota
	ChildLDO
)

func (k ChildKind) String() string {
	if k == ChildLDO {
		return "ldo"
	}
	return "buck"
}

// Child is one regulator rail found under the "regulators" node.
type Child struct {
	Name   string
	Kind   ChildKind
	Driver string
}

var childPrefixes = [...]struct {
	prefix string
	kind   ChildKind
}{
	{"b", ChildBuck},
	{"l", ChildLDO},
}

// Config for one PMIC instance.
type Config struct {
	Address uint16
	Variant Variant
	// Name is used in error messages. Defaults to the variant name.
	Name string
}

// DefaultConfig returns the iWG37M wiring.
func DefaultConfig() Config {
	return Config{
		Address: AddressDefault,
		Variant: VariantBD718x7,
	}
}

// Validate basic required fields.
func (c Config) Validate() error {
	if c.Address == 0 || c.Address > 0x7F {
		return errors.New("Address must be a 7-bit I2C address")
	}
	if int(c.Variant) >= len(variants) {
		return errors.New("unknown Variant")
	}
	return nil
}

const maxWrite = 16

// Device is one PMIC on an I2C bus. Not safe for concurrent use.
type Device struct {
	i2c     drivers.I2C
	addr    uint16
	name    string
	variant Variant
	chip    ChipType

	state    State
	children []Child

	// Fixed buffers to avoid per-call heap allocations.
	w [1 + maxWrite]byte
	r [1]byte
}

// New constructs a Device. It does not touch the bus.
func New(i2c drivers.I2C, cfg Config) *Device {
	addr := cfg.Address
	if addr == 0 {
		addr = AddressDefault
	}
	name := cfg.Name
	if name == "" {
		name = cfg.Variant.String()
	}
	return &Device{
		i2c:     i2c,
		addr:    addr,
		name:    name,
		variant: cfg.Variant,
	}
}

// Introspection.
func (d *Device) Name() string      { return d.name }
func (d *Device) Address() uint16   { return d.addr }
func (d *Device) Variant() Variant  { return d.variant }
func (d *Device) Chip() ChipType    { return d.chip }
func (d *Device) State() State      { return d.state }
func (d *Device) Children() []Child { return append([]Child(nil), d.children...) }

// RegCount returns the size of the register map for the variant.
func (d *Device) RegCount() int { return d.variant.info().regCount }

func (d *Device) ioErr(op string, reg uint8, err error) error {
	return errcode.Wrap(errcode.IO, "bd718xx."+op, d.name+" register 0x"+strconv.FormatUint(uint64(reg), 16), err)
}

// Write writes buf to consecutive registers starting at reg in one
// transaction.
func (d *Device) Write(reg uint8, buf []byte) error {
	var w []byte
	if len(buf) <= maxWrite {
		w = d.w[:1+len(buf)]
	} else {
		w = make([]byte, 1+len(buf))
	}
	w[0] = reg
	copy(w[1:], buf)
	if err := d.i2c.Tx(d.addr, w, nil); err != nil {
		return d.ioErr("write", reg, err)
	}
	return nil
}

// Read fills buf from consecutive registers starting at reg in one
// transaction.
func (d *Device) Read(reg uint8, buf []byte) error {
	d.w[0] = reg
	if err := d.i2c.Tx(d.addr, d.w[:1], buf); err != nil {
		return d.ioErr("read", reg, err)
	}
	return nil
}

// ReadReg reads a single register.
func (d *Device) ReadReg(reg uint8) (byte, error) {
	if err := d.Read(reg, d.r[:]); err != nil {
		return 0, err
	}
	return d.r[0], nil
}

// Revision reads the silicon revision register.
func (d *Device) Revision() (byte, error) { return d.ReadReg(RegRev) }

// WriteReg writes a single register.
func (d *Device) WriteReg(reg uint8, v byte) error {
	return d.Write(reg, []byte{v})
}

// Bind records the chip type from the node's compatible list and creates
// one child per regulator subnode whose name starts with a known prefix.
//
// A missing "regulators" node returns errcode.MissingResource. That is not
// fatal: the device is still Bound, with no children. Zero matching
// subnodes is not an error either; callers may warn on len(Children()) == 0.
func (d *Device) Bind(n devtree.Node) error {
	if d.state != StateUnbound {
		return errcode.Wrap(errcode.InvalidParams, "bd718xx.bind", d.name+" already bound", nil)
	}
	d.state = StateBound
	d.children = nil
	if n == nil {
		return errcode.Wrap(errcode.MissingResource, "bd718xx.bind", d.name+": no configuration node", nil)
	}

	for _, c := range n.Compatible() {
		if chip, ok := d.variant.MatchCompatible(c); ok {
			d.chip = chip
			break
		}
	}

	regs, ok := n.Subnode("regulators")
	if !ok {
		return errcode.Wrap(errcode.MissingResource, "bd718xx.bind", d.name+": regulators subnode not found", nil)
	}

	drv := d.variant.info().regulator
	for _, c := range regs.Children() {
		name := c.Name()
		for _, p := range childPrefixes {
			if strings.HasPrefix(name, p.prefix) {
				d.children = append(d.children, Child{Name: name, Kind: p.kind, Driver: drv})
				break
			}
		}
	}
	return nil
}

// clearLock drops mask from a REGLOCK value.
func clearLock(v, mask byte) byte { return v &^ mask }

// Probe unlocks the regulator control registers on variants that need it.
// A read or write failure leaves the device in StateProbeFailed and returns
// the I/O error.
func (d *Device) Probe() error {
	if d.state != StateBound {
		return errcode.Wrap(errcode.NotBound, "bd718xx.probe", d.name+" is "+d.state.String(), nil)
	}
	if !d.variant.info().probe {
		d.state = StateProbed
		return nil
	}

	v, err := d.ReadReg(RegLock)
	if err != nil {
		d.state = StateProbeFailed
		return err
	}
	if err := d.WriteReg(RegLock, clearLock(v, RegLockPwrSeq|RegLockVReg)); err != nil {
		d.state = StateProbeFailed
		return err
	}
	d.state = StateProbed
	return nil
}

// Ready marks a probed device as usable by its regulator children.
func (d *Device) Ready() error {
	if d.state != StateProbed {
		return errcode.Wrap(errcode.NotBound, "bd718xx.ready", d.name+" is "+d.state.String(), nil)
	}
	d.state = StateReady
	return nil
}
