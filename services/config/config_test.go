package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bringup-go/drivers/bd718xx"
	"bringup-go/drivers/dsi"
)

func TestDefaultProfile(t *testing.T) {
	p, err := Default("iwg37m")
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if p.PMIC.Address != 0x4B || p.PMIC.Bus != "I2C1" {
		t.Fatalf("pmic = %+v", p.PMIC)
	}
	if cfg := p.PMICConfig(); cfg.Variant != bd718xx.VariantBD718x7 || cfg.Address != 0x4B {
		t.Fatalf("PMICConfig = %+v", cfg)
	}
	if len(p.RevisionPins) != 7 {
		t.Fatalf("revision pins = %d, want 7", len(p.RevisionPins))
	}
	if p.DRAM.PhysSize != 0x80000000 || p.DRAM.TEESize != 0x2000000 {
		t.Fatalf("dram = %+v", p.DRAM)
	}
	if p.PixelFormat() != dsi.FormatRGB888 {
		t.Fatalf("format = %v", p.PixelFormat())
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	if err := os.WriteFile(path, []byte("pmic:\n  variant: bd71837\npanel:\n  format: rgb565\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Load("iwg37m", path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.PMIC.Variant != "bd71837" {
		t.Fatalf("variant = %q, want file value", p.PMIC.Variant)
	}
	if p.PMIC.Address != 0x4B {
		t.Fatalf("address = %#x, want embedded default kept", p.PMIC.Address)
	}
	if p.PixelFormat() != dsi.FormatRGB565 || !p.Panel.Enabled {
		t.Fatalf("panel = %+v", p.Panel)
	}
}

func TestValidateRejects(t *testing.T) {
	base, err := Default("iwg37m")
	if err != nil {
		t.Fatal(err)
	}
	for name, mut := range map[string]func(p *Profile){
		"board":   func(p *Profile) { p.Board = "" },
		"variant": func(p *Profile) { p.PMIC.Variant = "bd9571" },
		"address": func(p *Profile) { p.PMIC.Address = 0x96 },
		"no addr": func(p *Profile) { p.PMIC.Address = 0 },
		"format":  func(p *Profile) { p.Panel.Format = "yuv" },
		"dram":    func(p *Profile) { p.DRAM.PhysSize = 0 },
	} {
		p := base
		mut(&p)
		if err := p.Validate(); err == nil {
			t.Fatalf("%s: Validate accepted bad profile", name)
		}
	}
}

func TestValidateUsesDriverConfig(t *testing.T) {
	p, err := Default("iwg37m")
	if err != nil {
		t.Fatal(err)
	}
	p.PMIC.Address = 0x80
	want := p.PMICConfig().Validate()
	err = p.Validate()
	if want == nil || err == nil || !strings.Contains(err.Error(), want.Error()) {
		t.Fatalf("Validate = %v, driver says %v", err, want)
	}
}

func TestUnknownBoard(t *testing.T) {
	old := EmbeddedLookup
	EmbeddedLookup = func(string) ([]byte, bool) { return nil, false }
	t.Cleanup(func() { EmbeddedLookup = old })

	if _, err := Load("iwg37m", ""); err == nil {
		t.Fatal("Load succeeded without an embedded profile")
	}
}
