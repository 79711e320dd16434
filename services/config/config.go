// Package config loads the board profile used by the boot sequencer.
//
// A profile is YAML. The embedded default for the board is decoded first
// and a file, if given, is decoded on top of it, so a file only needs the
// fields it changes.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"bringup-go/drivers/bd718xx"
	"bringup-go/drivers/dsi"
)

// Profile describes one board build.
type Profile struct {
	Board        string   `yaml:"board"`
	BSPVersion   string   `yaml:"bsp_version"`
	PMIC         PMIC     `yaml:"pmic"`
	Panel        Panel    `yaml:"panel"`
	RevisionPins []string `yaml:"revision_pins"`
	ResetPin     string   `yaml:"reset_pin"`
	DRAM         DRAM     `yaml:"dram"`
	Features     Features `yaml:"features"`
}

type PMIC struct {
	Variant string `yaml:"variant"`
	Bus     string `yaml:"bus"`
	Address uint16 `yaml:"address"`
}

type Panel struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"`
}

type DRAM struct {
	PhysSize uint64 `yaml:"phys_size"`
	TEESize  uint64 `yaml:"tee_size"`
}

type Features struct {
	NAND bool `yaml:"nand"`
	SPI  bool `yaml:"spi"`
	QSPI bool `yaml:"qspi"`
}

// EmbeddedLookup allows overriding how built-in profiles are resolved.
var EmbeddedLookup = func(board string) ([]byte, bool) {
	b, ok := embeddedProfiles[board]
	return b, ok
}

// Default returns the embedded profile for board.
func Default(board string) (Profile, error) {
	raw, ok := EmbeddedLookup(board)
	if !ok || len(raw) == 0 {
		return Profile{}, errors.New("no embedded profile for board: " + board)
	}
	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Profile{}, fmt.Errorf("embedded profile %s: %w", board, err)
	}
	return p, nil
}

// Load decodes path over the embedded profile for board. An empty path
// returns the embedded profile.
func Load(board, path string) (Profile, error) {
	p, err := Default(board)
	if err != nil {
		return Profile{}, err
	}
	if path == "" {
		return p, p.Validate()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Profile{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, p.Validate()
}

// Validate checks the fields the sequencer relies on.
func (p Profile) Validate() error {
	if p.Board == "" {
		return errors.New("board must be set")
	}
	if _, ok := bd718xx.ParseVariant(p.PMIC.Variant); !ok {
		return fmt.Errorf("pmic.variant %q unknown", p.PMIC.Variant)
	}
	if err := p.PMICConfig().Validate(); err != nil {
		return fmt.Errorf("pmic: %w", err)
	}
	if p.Panel.Enabled {
		if _, ok := dsi.ParsePixelFormat(p.Panel.Format); !ok {
			return fmt.Errorf("panel.format %q unknown", p.Panel.Format)
		}
	}
	if p.DRAM.PhysSize == 0 {
		return errors.New("dram.phys_size must be set")
	}
	return nil
}

// PMICConfig converts the profile into a driver config.
func (p Profile) PMICConfig() bd718xx.Config {
	v, _ := bd718xx.ParseVariant(p.PMIC.Variant)
	return bd718xx.Config{Address: p.PMIC.Address, Variant: v}
}

// PixelFormat returns the panel pixel format, RGB888 if unset.
func (p Profile) PixelFormat() dsi.PixelFormat {
	f, _ := dsi.ParsePixelFormat(p.Panel.Format)
	return f
}
