//go:build tinygo

package cc2500

import (
	"machine"
)

// tinygoPin wraps a machine.Pin to satisfy the Pin interface.
type tinygoPin struct {
	pin machine.Pin
}

func (p *tinygoPin) Out(l Level) error {
	p.pin.Set(bool(l))
	return nil
}

func (p *tinygoPin) Read() Level {
	return Level(p.pin.Get())
}

// NewTinyGo creates a new CC2500 driver for TinyGo systems.
// bus must already be configured (mode 0). readyPin is the SPI SDI pin; it
// is sampled as-is and never reconfigured.
func NewTinyGo(c RadioConfig, bus *machine.SPI, csPin, readyPin machine.Pin) (*Device, error) {
	// Configure CS pin as output and set high (inactive)
	csPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	csPin.High()

	hwConfig := HardwareConfig{
		RadioConfig: c,
		CS:          &tinygoPin{pin: csPin},
		Ready:       &tinygoPin{pin: readyPin},
	}
	return NewWithHardware(hwConfig, bus)
}
