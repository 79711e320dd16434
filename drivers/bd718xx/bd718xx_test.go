package bd718xx

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/platinasystems/fdt"

	"bringup-go/devtree"
	"bringup-go/errcode"
)

// fakeBus is a register file behind a single I2C address.
type fakeBus struct {
	addr      uint16
	regs      [256]byte
	txs       int
	failRead  bool
	failWrite bool
	writes    [][]byte
}

var errNak = errors.New("nak")

func (b *fakeBus) Tx(addr uint16, w, r []byte) error {
	b.txs++
	if addr != b.addr || len(w) == 0 {
		return errNak
	}
	reg := w[0]
	if len(r) > 0 {
		if b.failRead {
			return errNak
		}
		for i := range r {
			r[i] = b.regs[int(reg)+i]
		}
		return nil
	}
	if b.failWrite {
		return errNak
	}
	b.writes = append(b.writes, append([]byte(nil), w...))
	copy(b.regs[reg:], w[1:])
	return nil
}

func newBus() *fakeBus { return &fakeBus{addr: AddressDefault} }

func node(name string, compat []byte, children ...*fdt.Node) *fdt.Node {
	n := &fdt.Node{Name: name, Children: map[string]*fdt.Node{}}
	if compat != nil {
		n.Properties = map[string][]byte{"compatible": compat}
	}
	for _, c := range children {
		n.Children[c.Name] = c
	}
	return n
}

func TestReadWrite(t *testing.T) {
	b := newBus()
	d := New(b, DefaultConfig())

	if err := d.Write(0x10, []byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	got := make([]byte, 3)
	if err := d.Read(0x10, got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{1, 2, 3}, got); diff != "" {
		t.Fatalf("read back mismatch (-want +got):\n%s", diff)
	}
	if b.txs != 2 {
		t.Fatalf("issued %d transactions, want 2", b.txs)
	}

	long := make([]byte, maxWrite+4)
	for i := range long {
		long[i] = byte(i)
	}
	if err := d.Write(0x20, long); err != nil {
		t.Fatal(err)
	}
	if got := b.writes[len(b.writes)-1]; len(got) != 1+len(long) || got[0] != 0x20 {
		t.Fatalf("long write framed as % x", got)
	}
}

func TestReadWriteErrorsAreIO(t *testing.T) {
	b := newBus()
	b.failRead, b.failWrite = true, true
	d := New(b, DefaultConfig())

	if err := d.Write(RegLock, []byte{0}); errcode.Of(err) != errcode.IO || !errors.Is(err, errNak) {
		t.Fatalf("Write err = %v, want io wrapping nak", err)
	}
	if _, err := d.ReadReg(RegLock); errcode.Of(err) != errcode.IO {
		t.Fatalf("ReadReg err = %v, want io", err)
	}
	if b.txs != 2 {
		t.Fatalf("issued %d transactions, want 2 (no retries)", b.txs)
	}
}

func TestRegCountPerVariant(t *testing.T) {
	for v, want := range map[Variant]int{
		VariantBD71837: RegNumBD71837,
		VariantBD718x7: MaxRegisterBD718xx - 1,
	} {
		d := New(newBus(), Config{Variant: v})
		for i := 0; i < 3; i++ {
			if got := d.RegCount(); got != want {
				t.Fatalf("%v: RegCount = %d, want %d", v, got, want)
			}
		}
		_ = d.Bind(nil)
		_ = d.Probe()
		if got := d.RegCount(); got != want {
			t.Fatalf("%v after probe: RegCount = %d, want %d", v, got, want)
		}
	}
}

func TestBindMissingRegulators(t *testing.T) {
	d := New(newBus(), DefaultConfig())
	err := d.Bind(devtree.FromFDT(node("pmic@4b", devtreeStr("rohm,bd71847"))))
	if errcode.Of(err) != errcode.MissingResource {
		t.Fatalf("err = %v, want missing_resource", err)
	}
	if d.State() != StateBound {
		t.Fatalf("state = %v, want bound", d.State())
	}
	if n := len(d.Children()); n != 0 {
		t.Fatalf("bound %d children, want 0", n)
	}
	if d.Chip() != ChipBD71847 {
		t.Fatalf("chip = %v, want bd71847", d.Chip())
	}
}

func TestBindChildrenByPrefix(t *testing.T) {
	regs := node("regulators", nil,
		node("buck1", nil), node("buck2", nil),
		node("ldo1", nil), node("ldo2", nil), node("ldo3", nil),
		node("pinctrl", nil),
	)
	d := New(newBus(), DefaultConfig())
	if err := d.Bind(devtree.FromFDT(node("pmic@4b", devtreeStr("rohm,bd71837"), regs))); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	want := []Child{
		{"buck1", ChildBuck, "bd718xx_regulator"},
		{"buck2", ChildBuck, "bd718xx_regulator"},
		{"ldo1", ChildLDO, "bd718xx_regulator"},
		{"ldo2", ChildLDO, "bd718xx_regulator"},
		{"ldo3", ChildLDO, "bd718xx_regulator"},
	}
	if diff := cmp.Diff(want, d.Children()); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestBindNoMatchesIsNotAnError(t *testing.T) {
	regs := node("regulators", nil, node("pinctrl", nil))
	d := New(newBus(), Config{Variant: VariantBD71837})
	if err := d.Bind(devtree.FromFDT(node("pmic", nil, regs))); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if len(d.Children()) != 0 {
		t.Fatalf("children = %v, want none", d.Children())
	}
}

func TestProbeUnlocks(t *testing.T) {
	b := newBus()
	b.regs[RegLock] = 0xFF
	d := New(b, DefaultConfig())
	_ = d.Bind(nil)

	if err := d.Probe(); err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if got, want := b.regs[RegLock], byte(0xFF&^(RegLockPwrSeq|RegLockVReg)); got != want {
		t.Fatalf("REGLOCK = %#x, want %#x", got, want)
	}
	if d.State() != StateProbed {
		t.Fatalf("state = %v, want probed", d.State())
	}
	if err := d.Ready(); err != nil || d.State() != StateReady {
		t.Fatalf("Ready: %v, state %v", err, d.State())
	}
}

func TestClearLock(t *testing.T) {
	if got := clearLock(0xFF, 0x01|0x02); got != 0xFC {
		t.Fatalf("clearLock(0xFF, 0x03) = %#x, want 0xfc", got)
	}
	if got := clearLock(0xFF, RegLockPwrSeq|RegLockVReg); got != 0xEE {
		t.Fatalf("clearLock(0xFF, pwrseq|vreg) = %#x, want 0xee", got)
	}
}

func TestProbeFailures(t *testing.T) {
	for _, c := range []struct {
		name                string
		failRead, failWrite bool
		wantWrites          int
	}{
		{"read", true, false, 0},
		{"write", false, true, 0},
	} {
		b := newBus()
		b.failRead, b.failWrite = c.failRead, c.failWrite
		d := New(b, DefaultConfig())
		_ = d.Bind(nil)
		err := d.Probe()
		if errcode.Of(err) != errcode.IO {
			t.Fatalf("%s: err = %v, want io", c.name, err)
		}
		if d.State() != StateProbeFailed {
			t.Fatalf("%s: state = %v, want probe_failed", c.name, d.State())
		}
		if len(b.writes) != c.wantWrites {
			t.Fatalf("%s: %d writes landed", c.name, len(b.writes))
		}
		if err := d.Ready(); err == nil {
			t.Fatalf("%s: Ready succeeded after failed probe", c.name)
		}
	}
}

func TestProbeSkippedForPlainVariant(t *testing.T) {
	b := newBus()
	d := New(b, Config{Variant: VariantBD71837})
	_ = d.Bind(nil)
	if err := d.Probe(); err != nil {
		t.Fatal(err)
	}
	if b.txs != 0 {
		t.Fatalf("plain variant touched the bus %d times", b.txs)
	}
}

func TestProbeRequiresBind(t *testing.T) {
	d := New(newBus(), DefaultConfig())
	if err := d.Probe(); errcode.Of(err) != errcode.NotBound {
		t.Fatalf("err = %v, want not_bound", err)
	}
	_ = d.Bind(nil)
	if err := d.Bind(nil); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("second Bind err = %v, want invalid_params", err)
	}
}

func TestVariantLookup(t *testing.T) {
	v, ok := ParseVariant("bd71837")
	if !ok || v != VariantBD71837 {
		t.Fatalf("ParseVariant(bd71837) = %v, %v", v, ok)
	}
	if _, ok := VariantBD71837.MatchCompatible("rohm,bd71847"); ok {
		t.Fatal("plain variant matched bd71847")
	}
	if diff := cmp.Diff([]string{"rohm,bd71837", "rohm,bd71847"}, VariantBD718x7.Compatibles()); diff != "" {
		t.Fatal(diff)
	}
	if err := (Config{Address: 0x80}).Validate(); err == nil {
		t.Fatal("Validate accepted 8-bit address")
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
}

func devtreeStr(s string) []byte { return append([]byte(s), 0) }

func TestRevisionReadsRevRegister(t *testing.T) {
	bus := newBus()
	bus.regs[RegRev] = 0xA3
	d := New(bus, DefaultConfig())
	rev, err := d.Revision()
	if err != nil || rev != 0xA3 {
		t.Fatalf("Revision = %#x, %v", rev, err)
	}
	bus.failRead = true
	if _, err := d.Revision(); errcode.Of(err) != errcode.IO {
		t.Fatalf("err = %v, want io", err)
	}
}
