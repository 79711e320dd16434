package config

// Built-in board profiles. Key: board name.

const profileIWG37M = `
board: iwg37m
bsp_version: iW-PRGJZ-SC-01-R1.0-REL1.0
pmic:
  variant: bd718x7
  bus: I2C1
  address: 0x4b
panel:
  enabled: true
  format: rgb888
revision_pins:
  - GPIO1_IO09
  - GPIO5_IO01
  - GPIO4_IO25
  - GPIO4_IO26
  - GPIO4_IO27
  - GPIO2_IO19
  - GPIO2_IO20
reset_pin: GPIO5_IO02
dram:
  phys_size: 0x80000000
  tee_size: 0x2000000
features:
  nand: false
  spi: true
  qspi: false
`

var embeddedProfiles = map[string][]byte{
	"iwg37m": []byte(profileIWG37M),
}
