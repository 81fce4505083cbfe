//go:build !tinygo

package cc2500

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// realPin wraps a gpio.PinIO to satisfy the Pin interface.
type realPin struct {
	gpio.PinIO
}

func (p *realPin) Out(l Level) error {
	if l == High {
		return p.PinIO.Out(gpio.High)
	}
	return p.PinIO.Out(gpio.Low)
}

func (p *realPin) Read() Level {
	if p.PinIO.Read() == gpio.High {
		return High
	}
	return Low
}

// realSPI exchanges one byte per spi.Conn transaction. The kernel chip
// select of the port is left unconnected; CSn is driven through CSPin.
type realSPI struct {
	conn spi.Conn
	w, r [1]byte
}

func (s *realSPI) Transfer(b byte) (byte, error) {
	s.w[0] = b
	if err := s.conn.Tx(s.w[:], s.r[:]); err != nil {
		return 0, err
	}
	return s.r[0], nil
}

// Config holds the configuration for the Linux/periph.io driver.
type Config struct {
	RadioConfig
	// CSPin is the GPIO pin number (BCM numbering) wired to CSn.
	// Defaults to 25 if not provided.
	CSPin int
	// ReadyPin is the GPIO pin number (BCM numbering) sampled for the ready
	// handshake. It is the SPI MISO line, read while the port owns it.
	// Defaults to 9 if not provided.
	ReadyPin int
	// SpiBusPath is the path to the SPI bus (e.g., "/dev/spidev0.0").
	// Defaults to "/dev/spidev0.0" if not provided.
	SpiBusPath string
	// SpiClockHz is the SPI clock frequency in Hz.
	// Defaults to 1000000 (1MHz) if not provided.
	SpiClockHz int
	// ReadyTimeout bounds the ready handshake when Waiter is not set.
	// Zero keeps the unbounded wait.
	ReadyTimeout time.Duration
}

// New creates and initializes a new CC2500 driver for Linux systems.
// It applies configuration defaults, opens the SPI port and GPIO lines using
// periph.io, and runs the bring-up sequence.
// It returns the initialized driver or an error if hardware initialization fails.
func New(c Config) (*Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph.io host: %w", err)
	}

	if c.SpiBusPath == "" {
		c.SpiBusPath = "/dev/spidev0.0"
	}
	p, err := spireg.Open(c.SpiBusPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SPI port: %w", err)
	}

	if c.SpiClockHz == 0 {
		c.SpiClockHz = 1000000
	}
	// CC2500 samples on the rising edge, SCLK idles low.
	conn, err := p.Connect(physic.Frequency(c.SpiClockHz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to create SPI connection: %w", err)
	}

	if c.CSPin == 0 {
		c.CSPin = 25
	}
	csName := fmt.Sprintf("GPIO%d", c.CSPin)
	realCS := gpioreg.ByName(csName)
	if realCS == nil {
		p.Close()
		return nil, fmt.Errorf("failed to open CS pin %s", csName)
	}

	if c.ReadyPin == 0 {
		c.ReadyPin = 9
	}
	readyName := fmt.Sprintf("GPIO%d", c.ReadyPin)
	realReady := gpioreg.ByName(readyName)
	if realReady == nil {
		p.Close()
		return nil, fmt.Errorf("failed to open ready pin %s", readyName)
	}

	if c.Waiter == nil && c.ReadyTimeout > 0 {
		c.Waiter = TimeoutWait{Timeout: c.ReadyTimeout}
	}

	hwConfig := HardwareConfig{
		RadioConfig: c.RadioConfig,
		CS:          &realPin{PinIO: realCS},
		Ready:       &realPin{PinIO: realReady},
	}
	dev, err := NewWithHardware(hwConfig, &realSPI{conn: conn})
	if err != nil {
		p.Close()
		return nil, err
	}

	dev.port = p
	return dev, nil
}
