package bd718xx

// I2C address (7-bit).
const AddressDefault = 0x4B

// Register map sizes.
const (
	RegNumBD71837      = 0x3F
	MaxRegisterBD718xx = 0x64
)

// Registers used during bring-up.
const (
	RegRev  = 0x00
	RegLock = 0x2F
)

// REGLOCK bits. Set bits write-protect the power sequencer and the
// regulator voltage registers.
const (
	RegLockPwrSeq = 0x01
	RegLockVReg   = 0x10
)
