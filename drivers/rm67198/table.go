package rm67198

// Cmd sets one register in the currently selected command page.
type Cmd struct {
	Reg, Val byte
}

// regPageSelect (WRMAUCCTR) selects the command page for the entries that
// follow it.
const regPageSelect = 0xFE

const (
	pageUser = 0x00 // CMD1
)

// Manufacturer command set (CMD2 pages). Order matters: each 0xFE entry
// switches the page the following entries land in.
var manufacturerCmds = [...]Cmd{
	{0xFE, 0xD0},
	{0x40, 0x02},
	{0x4B, 0x4C},
	{0x49, 0x01},
	{0xFE, 0x70},
	{0x48, 0x05},
	{0x52, 0x00},
	{0x5A, 0xFF},
	{0x5C, 0xF6},
	{0x5D, 0x07},
	{0x7D, 0x35},
	{0x86, 0x07},
	{0xA7, 0x02},
	{0xA9, 0x2C},
	{0xFE, 0xA0},
	{0x2B, 0x18},
	{0xFE, 0x90},
	{0x26, 0x10},
	{0x28, 0x20},
	{0x2A, 0x40},
	{0x2D, 0x60},
	{0x30, 0x70},
	{0x32, 0x80},
	{0x34, 0x90},
	{0x36, 0x98},
	{0x38, 0xA0},
	{0x3A, 0xC0},
	{0x3D, 0xE0},
	{0x40, 0xF0},
	{0x42, 0x00},
	{0x43, 0x01},
	{0x44, 0x40},
	{0x45, 0x01},
	{0x46, 0x80},
	{0x47, 0x01},
	{0x48, 0xC0},
	{0x49, 0x01},
	{0x4A, 0x00},
	{0x4B, 0x02},
	{0x4C, 0x40},
	{0x4D, 0x02},
	{0x4E, 0x80},
	{0x4F, 0x02},
	{0x50, 0x00},
	{0x51, 0x03},
	{0x52, 0x80},
	{0x53, 0x03},
	{0x54, 0x00},
	{0x55, 0x04},
	{0x56, 0x8D},
	{0x58, 0x04},
	{0x59, 0x20},
	{0x5A, 0x05},
	{0x5B, 0xBD},
	{0x5C, 0x05},
	{0x5D, 0x63},
	{0x5E, 0x06},
	{0x5F, 0x13},
	{0x60, 0x07},
	{0x61, 0xCD},
	{0x62, 0x07},
	{0x63, 0x91},
	{0x64, 0x08},
	{0x65, 0x60},
	{0x66, 0x09},
	{0x67, 0x38},
	{0x68, 0x0A},
	{0x69, 0x1A},
	{0x6A, 0x0B},
	{0x6B, 0x07},
	{0x6C, 0x0C},
	{0x6D, 0xFE},
	{0x6E, 0x0C},
	{0x6F, 0x00},
	{0x70, 0x0E},
	{0x71, 0x0C},
	{0x72, 0x0F},
	{0x73, 0x96},
	{0x74, 0x0F},
	{0x75, 0xDC},
	{0x76, 0x0F},
	{0x77, 0xFF},
	{0x78, 0x0F},
	{0x79, 0x00},
	{0x7A, 0x00},
	{0x7B, 0x00},
	{0x7C, 0x01},
	{0x7D, 0x02},
	{0x7E, 0x04},
	{0x7F, 0x08},
	{0x80, 0x10},
	{0x81, 0x20},
	{0x82, 0x30},
	{0x83, 0x40},
	{0x84, 0x50},
	{0x85, 0x60},
	{0x86, 0x70},
	{0x87, 0x78},
	{0x88, 0x88},
	{0x89, 0x96},
	{0x8A, 0xA3},
	{0x8B, 0xAF},
	{0x8C, 0xBA},
	{0x8D, 0xC4},
	{0x8E, 0xCE},
	{0x8F, 0xD7},
	{0x90, 0xE0},
	{0x91, 0xE8},
	{0x92, 0xF0},
	{0x93, 0xF8},
	{0x94, 0xFF},
	{0x99, 0x20},
	{0xFE, 0x00},
	{0xC2, 0x08},
	{0x35, 0x00},
	{0x36, 0x02},
	{0x11, 0x00},
	{0x29, 0x00},
}

// ManufacturerCmds returns a copy of the manufacturer command set.
func ManufacturerCmds() []Cmd {
	out := make([]Cmd, len(manufacturerCmds))
	copy(out, manufacturerCmds[:])
	return out
}
