package iwg37m

// PadCtl is an i.MX8M IOMUXC pad control word.
type PadCtl uint32

const (
	PadDSE0  PadCtl = 0x0
	PadDSE2  PadCtl = 0x2
	PadDSE6  PadCtl = 0x6
	PadFSEL1 PadCtl = 0x1 << 3
	PadFSEL2 PadCtl = 0x2 << 3
	PadODE   PadCtl = 1 << 5
	PadPUE   PadCtl = 1 << 6
	PadHYS   PadCtl = 1 << 7
	PadPE    PadCtl = 1 << 8

	NoPadCtl PadCtl = 1 << 17
)

// Pad control presets.
const (
	uartPadCtl      = PadDSE6 | PadFSEL1
	wdogPadCtl      = PadDSE6 | PadODE | PadPUE | PadPE
	qspiPadCtl      = PadDSE2 | PadHYS
	spiPadCtl       = PadDSE2 | PadHYS
	nandPadCtl      = PadDSE6 | PadFSEL2 | PadHYS
	nandReadyPadCtl = PadDSE6 | PadFSEL2 | PadPUE
	gpioCfgPadCtl   = PadDSE0 | PadODE | PadPUE
)

// Pad routes one SoC pad to a function.
type Pad struct {
	Name string // SoC pad
	Func string // selected function
	Ctl  PadCtl
	SION bool // force input path on
}

// Muxer applies pad settings; supplied by the SoC layer.
type Muxer interface {
	SetupPads(pads []Pad) error
}

var UARTPads = []Pad{
	{"UART4_RXD", "UART4_DCE_RX", uartPadCtl, false},
	{"UART4_TXD", "UART4_DCE_TX", uartPadCtl, false},
}

var WdogPads = []Pad{
	{"GPIO1_IO02", "WDOG1_WDOG_B", wdogPadCtl, false},
}

var QSPIPads = []Pad{
	{"NAND_ALE", "QSPI_A_SCLK", qspiPadCtl | PadPE | PadPUE, false},
	{"NAND_CE0_B", "QSPI_A_SS0_B", qspiPadCtl, false},
	{"NAND_DQS", "QSPI_A_DQS", qspiPadCtl, true},
	{"NAND_DATA00", "QSPI_A_DATA0", qspiPadCtl, false},
	{"NAND_DATA01", "QSPI_A_DATA1", qspiPadCtl, false},
	{"NAND_DATA02", "QSPI_A_DATA2", qspiPadCtl, false},
	{"NAND_DATA03", "QSPI_A_DATA3", qspiPadCtl, false},
}

var ECSPI1Pads = []Pad{
	{"ECSPI1_SCLK", "ECSPI1_SCLK", spiPadCtl, false},
	{"ECSPI1_MOSI", "ECSPI1_MOSI", spiPadCtl, false},
	{"ECSPI1_MISO", "ECSPI1_MISO", spiPadCtl, false},
	{"ECSPI1_SS0", "GPIO5_IO9", NoPadCtl, false},
}

var ECSPI2Pads = []Pad{
	{"ECSPI2_SCLK", "ECSPI2_SCLK", spiPadCtl, false},
	{"ECSPI2_MOSI", "ECSPI2_MOSI", spiPadCtl, false},
	{"ECSPI2_MISO", "ECSPI2_MISO", spiPadCtl, false},
	{"ECSPI2_SS0", "GPIO5_IO13", NoPadCtl, false},
}

var NANDPads = []Pad{
	{"NAND_ALE", "RAWNAND_ALE", nandPadCtl, false},
	{"NAND_CE0_B", "RAWNAND_CE0_B", nandPadCtl, false},
	{"NAND_CLE", "RAWNAND_CLE", nandPadCtl, false},
	{"NAND_DATA00", "RAWNAND_DATA00", nandPadCtl, false},
	{"NAND_DATA01", "RAWNAND_DATA01", nandPadCtl, false},
	{"NAND_DATA02", "RAWNAND_DATA02", nandPadCtl, false},
	{"NAND_DATA03", "RAWNAND_DATA03", nandPadCtl, false},
	{"NAND_DATA04", "RAWNAND_DATA04", nandPadCtl, false},
	{"NAND_DATA05", "RAWNAND_DATA05", nandPadCtl, false},
	{"NAND_DATA06", "RAWNAND_DATA06", nandPadCtl, false},
	{"NAND_DATA07", "RAWNAND_DATA07", nandPadCtl, false},
	{"NAND_RE_B", "RAWNAND_RE_B", nandPadCtl, false},
	{"NAND_READY_B", "RAWNAND_READY_B", nandReadyPadCtl, false},
	{"NAND_WE_B", "RAWNAND_WE_B", nandPadCtl, false},
	{"NAND_WP_B", "RAWNAND_WP_B", nandPadCtl, false},
}

// BoardConfigPads are the SOM revision straps, bit 0 first.
var BoardConfigPads = []Pad{
	{"GPIO1_IO09", "GPIO1_IO9", gpioCfgPadCtl, false},
	{"SAI3_TXD", "GPIO5_IO1", gpioCfgPadCtl, false},
	{"SAI2_TXC", "GPIO4_IO25", gpioCfgPadCtl, false},
	{"SAI2_TXD0", "GPIO4_IO26", gpioCfgPadCtl, false},
	{"SAI2_MCLK", "GPIO4_IO27", gpioCfgPadCtl, false},
	{"SD2_RESET_B", "GPIO2_IO19", gpioCfgPadCtl, false},
	{"SD2_WP", "GPIO2_IO20", gpioCfgPadCtl, false},
}
