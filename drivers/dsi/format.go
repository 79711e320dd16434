package dsi

// PixelFormat is the pixel format negotiated on the DSI link.
type PixelFormat uint8

const (
	FormatRGB888 PixelFormat = iota
	FormatRGB666
	FormatRGB666Packed
	FormatRGB565
)

func (p PixelFormat) String() string {
	switch p {
	case FormatRGB888:
		return "rgb888"
	case FormatRGB666:
		return "rgb666"
	case FormatRGB666Packed:
		return "rgb666_packed"
	case FormatRGB565:
		return "rgb565"
	default:
		return "unknown"
	}
}

// ParsePixelFormat is the inverse of String.
func ParsePixelFormat(s string) (PixelFormat, bool) {
	switch s {
	case "rgb888":
		return FormatRGB888, true
	case "rgb666":
		return FormatRGB666, true
	case "rgb666_packed":
		return FormatRGB666Packed, true
	case "rgb565":
		return FormatRGB565, true
	}
	return FormatRGB888, false
}

// ColorFormat returns the DCS set_pixel_format argument for p.
// Unknown formats fall back to 24bpp.
func ColorFormat(p PixelFormat) byte {
	switch p {
	case FormatRGB565:
		return 0x55
	case FormatRGB666, FormatRGB666Packed:
		return 0x66
	default:
		return 0x77
	}
}
