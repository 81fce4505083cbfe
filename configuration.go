package cc2500

import (
	"fmt"
	"strings"
)

// ConfigRegisterCount is the number of registers written by the bulk
// configuration load, IOCFG2 through RCCTRL0.
const ConfigRegisterCount = int(RCCTRL0-IOCFG2) + 1

// DefaultPowerLevel is written to PATABLE when RadioConfig.PowerLevel is nil.
const DefaultPowerLevel byte = 0xFF

// Power returns a pointer to level, for RadioConfig.PowerLevel.
// 0x00 is a valid PATABLE setting and is written as given.
func Power(level byte) *byte {
	return &level
}

// Configuration holds one value per configuration register, indexed by
// register address. The bulk load streams it as a single burst starting at
// IOCFG2, so index i always lands in register i.
type Configuration [ConfigRegisterCount]byte

var defaultConfiguration = Configuration{
	IOCFG2:   0x29,
	IOCFG1:   0x2E,
	IOCFG0:   0x07,
	FIFOTHR:  0x07,
	SYNC1:    0xD3,
	SYNC0:    0x91,
	PKTLEN:   0xFF,
	PKTCTRL1: 0x04,
	PKTCTRL0: 0x05,
	ADDR:     0x01,
	CHANNR:   0x00,
	FSCTRL1:  0x07,
	FSCTRL0:  0x00,
	FREQ2:    0x5D,
	FREQ1:    0x93,
	FREQ0:    0xB1,
	MDMCFG4:  0x2D,
	MDMCFG3:  0x3B,
	MDMCFG2:  0x73,
	MDMCFG1:  0x22,
	MDMCFG0:  0xF8,
	DEVIATN:  0x00,
	MCSM2:    0x07,
	MCSM1:    0x3F,
	MCSM0:    0x18,
	FOCCFG:   0x1D,
	BSCFG:    0x1C,
	AGCCTRL2: 0xC7,
	AGCCTRL1: 0x00,
	AGCCTRL0: 0xB2,
	WOREVT1:  0x87,
	WOREVT0:  0x6B,
	WORCTRL:  0xF8,
	FREND1:   0xB6,
	FREND0:   0x10,
	FSCAL3:   0xEA,
	FSCAL2:   0x0A,
	FSCAL1:   0x00,
	FSCAL0:   0x11,
	RCCTRL1:  0x41,
	RCCTRL0:  0x00,
}

// DefaultConfiguration returns a copy of the shipped register configuration.
func DefaultConfiguration() Configuration {
	return defaultConfiguration
}

// Setting is a single (address, value) pair of a Configuration.
type Setting struct {
	Register Register
	Value    byte
}

// Settings returns the configuration as (address, value) pairs in ascending
// address order.
func (c *Configuration) Settings() []Setting {
	s := make([]Setting, len(c))
	for i, v := range c {
		s[i] = Setting{Register: IOCFG2 + Register(i), Value: v}
	}
	return s
}

// Get returns the value held for reg.
func (c *Configuration) Get(reg Register) (byte, error) {
	if !isConfigRegister(reg) {
		return 0, fmt.Errorf("%w: %w: 0x%02X is not a configuration register", ErrPkg, ErrInvalidRegister, byte(reg))
	}
	return c[reg-IOCFG2], nil
}

// Set replaces the value held for reg.
func (c *Configuration) Set(reg Register, v byte) error {
	if !isConfigRegister(reg) {
		return fmt.Errorf("%w: %w: 0x%02X is not a configuration register", ErrPkg, ErrInvalidRegister, byte(reg))
	}
	c[reg-IOCFG2] = v
	return nil
}

// Mismatch is a register whose value differs between two configurations.
type Mismatch struct {
	Register Register
	Want     byte
	Got      byte
}

func (m Mismatch) String() string {
	return fmt.Sprintf("0x%02X: want 0x%02X, got 0x%02X", byte(m.Register), m.Want, m.Got)
}

// Diff compares c (expected) against got and returns every differing
// register in address order.
func (c *Configuration) Diff(got *Configuration) []Mismatch {
	var out []Mismatch
	for i := range c {
		if c[i] != got[i] {
			out = append(out, Mismatch{Register: IOCFG2 + Register(i), Want: c[i], Got: got[i]})
		}
	}
	return out
}

// MismatchError is returned by VerifyConfiguration when the readback
// differs from what was loaded.
type MismatchError struct {
	Mismatches []Mismatch
}

func (e *MismatchError) Error() string {
	parts := make([]string, len(e.Mismatches))
	for i, m := range e.Mismatches {
		parts[i] = m.String()
	}
	return fmt.Sprintf("%d register(s) differ: %s", len(e.Mismatches), strings.Join(parts, ", "))
}

func (e *MismatchError) Unwrap() error { return ErrConfigMismatch }

func isConfigRegister(reg Register) bool {
	return reg <= RCCTRL0
}
