package bd718xx

// Variant selects the chip family the driver is built for.
type Variant uint8

const (
	// VariantBD71837 is the plain BD71837 driver: no register unlock.
	VariantBD71837 Variant = iota
	// VariantBD718x7 covers BD71837 and BD71847 and unlocks REGLOCK
	// before the regulators are probed.
	VariantBD718x7
)

// ChipType identifies the part matched from the compatible string.
type ChipType uint8

const (
	ChipBD71837 ChipType = iota
	ChipBD71847
)

func (c ChipType) String() string {
	switch c {
	case ChipBD71837:
		return "bd71837"
	case ChipBD71847:
		return "bd71847"
	default:
		return "unknown"
	}
}

type compatible struct {
	name string
	chip ChipType
}

type variantInfo struct {
	name       string
	regCount   int
	probe      bool
	regulator  string // child driver name
	compatible []compatible
}

var variants = [...]variantInfo{
	VariantBD71837: {
		name:      "bd71837",
		regCount:  RegNumBD71837,
		probe:     false,
		regulator: "bd71837_regulator",
		compatible: []compatible{
			{"rohm,bd71837", ChipBD71837},
		},
	},
	VariantBD718x7: {
		name:      "bd718x7",
		regCount:  MaxRegisterBD718xx - 1,
		probe:     true,
		regulator: "bd718xx_regulator",
		compatible: []compatible{
			{"rohm,bd71837", ChipBD71837},
			{"rohm,bd71847", ChipBD71847},
		},
	},
}

func (v Variant) info() variantInfo {
	if int(v) < len(variants) {
		return variants[v]
	}
	return variants[VariantBD718x7]
}

func (v Variant) String() string { return v.info().name }

// ParseVariant is the inverse of String.
func ParseVariant(s string) (Variant, bool) {
	for i, vi := range variants {
		if vi.name == s {
			return Variant(i), true
		}
	}
	return VariantBD718x7, false
}

// Compatibles lists the compatible strings v binds to.
func (v Variant) Compatibles() []string {
	cs := v.info().compatible
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.name
	}
	return out
}

// MatchCompatible reports the chip type for a compatible string.
func (v Variant) MatchCompatible(s string) (ChipType, bool) {
	for _, c := range v.info().compatible {
		if c.name == s {
			return c.chip, true
		}
	}
	return 0, false
}
