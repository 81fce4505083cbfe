package cc2500

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

var (
	ErrPkg                 = errors.New("cc2500")
	ErrDeviceNotResponding = errors.New("device not responding")
	ErrInvalidRegister     = errors.New("invalid register address")
	ErrPayloadTooLarge     = errors.New("payload too large")
	ErrConfigMismatch      = errors.New("configuration readback mismatch")
)

// MaxPayloadBytes is the largest payload SendPayload accepts: the length is
// sent as one byte ahead of the data. The TX FIFO holds 64 bytes, the caller
// must keep payloads within it.
const MaxPayloadBytes = 255

type RadioConfig struct {
	// Configuration is streamed into IOCFG2..RCCTRL0 during initialization.
	// Defaults to DefaultConfiguration() if not provided.
	Configuration *Configuration
	// PowerLevel is written to PATABLE after the configuration load.
	// Defaults to DefaultPowerLevel (0xFF) if nil. See Power.
	PowerLevel *byte
	// Waiter decides how the driver waits for the ready handshake.
	// Defaults to SpinWait, which waits forever.
	Waiter ReadyWaiter
}

type Device struct {
	config     HardwareConfig
	conn       SPI
	port       io.Closer
	mu         sync.Mutex
	powerLevel byte
	lastCfg    Configuration
}

// NewWithHardware creates a CC2500 driver on the provided bus and lines and
// runs the bring-up sequence: chip reset, bulk configuration load and
// PATABLE write.
func NewWithHardware(c HardwareConfig, conn SPI) (*Device, error) {
	if conn == nil {
		return nil, fmt.Errorf("SPI bus not configured")
	}
	if c.CS == nil {
		return nil, fmt.Errorf("CS pin not configured")
	}
	if c.Ready == nil {
		return nil, fmt.Errorf("Ready pin not configured")
	}
	if c.Configuration == nil {
		cfg := DefaultConfiguration()
		c.Configuration = &cfg
	}
	powerLevel := DefaultPowerLevel
	if c.PowerLevel != nil {
		powerLevel = *c.PowerLevel
	}
	if c.Waiter == nil {
		c.Waiter = SpinWait{}
	}
	if c.Delay == nil {
		c.Delay = time.Sleep
	}

	dev := &Device{
		config:     c,
		conn:       conn,
		powerLevel: powerLevel,
	}

	globalLogger.Info("Initializing CC2500 SPI communication...")

	// Idle level for CSn before the reset pulse.
	if err := dev.releaseChip(); err != nil {
		return nil, err
	}

	if err := dev.initialize(); err != nil {
		return nil, err
	}

	globalLogger.Info("CC2500 configured and idle. Ready to operate.")
	return dev, nil
}

func (d *Device) String() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return fmt.Sprintf("CC2500(Channel=%d, Freq=%02X%02X%02X, PATABLE=0x%02X)",
		d.lastCfg[CHANNR],
		d.lastCfg[FREQ2], d.lastCfg[FREQ1], d.lastCfg[FREQ0],
		d.powerLevel,
	)
}

// Close idles the radio, puts it into power down and closes the SPI port
// when the driver opened it.
// This method is concurrent safe.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []error
	if _, err := d.writeStrobe(SIDLE); err != nil {
		errs = append(errs, err)
	}
	if _, err := d.writeStrobe(SPWD); err != nil {
		errs = append(errs, err)
	} else {
		globalLogger.Info("CC2500 powered down.")
	}

	if d.port != nil {
		if err := d.port.Close(); err != nil {
			globalLogger.Warn("Failed to close SPI port")
			errs = append(errs, err)
		} else {
			globalLogger.Info("SPI bus closed.")
		}
		d.port = nil
	}
	return errors.Join(errs...)
}

// --- Register access engine ---

// singleAccess exchanges a header and one data byte.
func (d *Device) singleAccess(header, data byte) (status Status, out byte, err error) {
	err = d.transaction(func() error {
		s, err := d.transfer(header)
		if err != nil {
			return err
		}
		status = Status(s)
		out, err = d.transfer(data)
		return err
	})
	return status, out, err
}

// burstAccess exchanges a header followed by len(buf) data bytes. In read
// mode buf is filled in transfer order, in write mode it is sent in order.
func (d *Device) burstAccess(header byte, buf []byte) (status Status, err error) {
	err = d.transaction(func() error {
		s, err := d.transfer(header)
		if err != nil {
			return err
		}
		status = Status(s)
		if header&byte(Read) != 0 {
			for i := range buf {
				if buf[i], err = d.transfer(0x00); err != nil {
					return err
				}
			}
			return nil
		}
		for _, b := range buf {
			if _, err = d.transfer(b); err != nil {
				return err
			}
		}
		return nil
	})
	return status, err
}

func (d *Device) writeStrobe(s Strobe) (Status, error) {
	var status Status
	err := d.transaction(func() error {
		b, err := d.transfer(byte(s))
		status = Status(b)
		return err
	})
	return status, err
}

func (d *Device) writeRegister(reg Register, val byte) error {
	_, _, err := d.singleAccess(Header(reg, Write), val)
	return err
}

func (d *Device) readRegister(reg Register) (byte, error) {
	_, v, err := d.singleAccess(Header(reg, Read), 0x00)
	return v, err
}

func checkRegister(reg Register) error {
	if !reg.valid() {
		return fmt.Errorf("%w: %w: 0x%02X", ErrPkg, ErrInvalidRegister, byte(reg))
	}
	return nil
}

// checkSingleRegister also rejects PARTNUM..RCCTRL0_STATUS: without the
// burst bit the chip decodes those addresses as command strobes.
func checkSingleRegister(reg Register) error {
	if err := checkRegister(reg); err != nil {
		return err
	}
	if isStatusRegister(reg) {
		return fmt.Errorf("%w: %w: 0x%02X is a status register, use ReadStatusRegister or WriteStrobe",
			ErrPkg, ErrInvalidRegister, byte(reg))
	}
	return nil
}

func isStatusRegister(reg Register) bool {
	return reg >= PARTNUM && reg <= RCCTRL0_STATUS
}

// ReadRegister reads a single configuration register, PATABLE or the RX
// FIFO. Status registers are read with ReadStatusRegister.
// This method is concurrent safe.
func (d *Device) ReadRegister(reg Register) (byte, error) {
	if err := checkSingleRegister(reg); err != nil {
		return 0, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readRegister(reg)
}

// WriteRegister writes a single configuration register, PATABLE or the TX
// FIFO.
// This method is concurrent safe.
func (d *Device) WriteRegister(reg Register, val byte) error {
	if err := checkSingleRegister(reg); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeRegister(reg, val)
}

// ReadStatusRegister reads one of the status registers (PARTNUM..RCCTRL0_STATUS).
// The burst bit selects the status register instead of the strobe at the
// same address.
// This method is concurrent safe.
func (d *Device) ReadStatusRegister(reg Register) (byte, error) {
	if err := checkRegister(reg); err != nil {
		return 0, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	_, v, err := d.singleAccess(Header(reg, Read|Burst), 0x00)
	return v, err
}

// ReadBurst reads n consecutive bytes starting at reg. The chip increments
// its address after each byte, except on FIFO where it keeps popping.
// This method is concurrent safe.
func (d *Device) ReadBurst(reg Register, n int) ([]byte, error) {
	if err := checkRegister(reg); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative burst length %d", ErrPkg, n)
	}
	buf := make([]byte, n)

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.burstAccess(Header(reg, Read|Burst), buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteBurst writes p to consecutive registers starting at reg, or pushes
// it into the TX FIFO when reg is FIFO.
// This method is concurrent safe.
func (d *Device) WriteBurst(reg Register, p []byte) error {
	if err := checkRegister(reg); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.burstAccess(Header(reg, Write|Burst), p)
	return err
}

// --- Strobes ---

// WriteStrobe issues a command strobe and returns the status byte clocked
// out while the strobe was shifted in.
// This method is concurrent safe.
func (d *Device) WriteStrobe(s Strobe) (Status, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeStrobe(s)
}

// Status returns the chip status without changing state (SNOP).
// This method is concurrent safe.
func (d *Device) Status() (Status, error) {
	return d.WriteStrobe(SNOP)
}

// Idle exits RX/TX and turns off the frequency synthesizer.
// This method is concurrent safe.
func (d *Device) Idle() (Status, error) {
	return d.WriteStrobe(SIDLE)
}

// FlushTX clears the transmit FIFO. Only valid in IDLE or TXFIFO_UNDERFLOW.
// This method is concurrent safe.
func (d *Device) FlushTX() (Status, error) {
	return d.WriteStrobe(SFTX)
}

// FlushRX clears the receive FIFO. Only valid in IDLE or RXFIFO_OVERFLOW.
// This method is concurrent safe.
func (d *Device) FlushRX() (Status, error) {
	return d.WriteStrobe(SFRX)
}

// --- Initialization ---

// Initialize runs the bring-up sequence again: chip reset, bulk load of the
// configuration table and PATABLE write. The device ends in IDLE.
// This method is concurrent safe.
func (d *Device) Initialize() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.initialize()
}

func (d *Device) initialize() error {
	if err := d.chipReset(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err := d.loadConfiguration(d.config.Configuration); err != nil {
		return fmt.Errorf("configuration load: %w", err)
	}
	if err := d.writeRegister(PATABLE, d.powerLevel); err != nil {
		return fmt.Errorf("PATABLE write: %w", err)
	}
	return nil
}

// chipReset performs the manual power-on reset: pulse CSn low, then SRES
// followed by SIDLE.
func (d *Device) chipReset() error {
	if err := d.config.CS.Out(Low); err != nil {
		return fmt.Errorf("%w: reset pulse: %w", ErrPkg, err)
	}
	d.config.Delay(resetLowDelay)
	if err := d.config.CS.Out(High); err != nil {
		return fmt.Errorf("%w: reset pulse: %w", ErrPkg, err)
	}
	d.config.Delay(resetHighDelay)

	if _, err := d.writeStrobe(SRES); err != nil {
		return err
	}
	_, err := d.writeStrobe(SIDLE)
	return err
}

// loadConfiguration writes every configuration register in one burst
// starting at IOCFG2.
func (d *Device) loadConfiguration(cfg *Configuration) error {
	if _, err := d.burstAccess(Header(IOCFG2, Write|Burst), cfg[:]); err != nil {
		return err
	}
	d.lastCfg = *cfg
	globalLogger.Debug("CC2500 configuration registers loaded")
	return nil
}

// ReadConfiguration reads IOCFG2..RCCTRL0 back in one burst.
// This method is concurrent safe.
func (d *Device) ReadConfiguration() (Configuration, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readConfiguration()
}

func (d *Device) readConfiguration() (Configuration, error) {
	var cfg Configuration
	if _, err := d.burstAccess(Header(IOCFG2, Read|Burst), cfg[:]); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}

// VerifyConfiguration reads the configuration registers back and compares
// them with the last loaded table. The driver never does this on its own.
// A mismatch is reported as a *MismatchError wrapping ErrConfigMismatch.
// This method is concurrent safe.
func (d *Device) VerifyConfiguration() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	got, err := d.readConfiguration()
	if err != nil {
		return err
	}
	if m := d.lastCfg.Diff(&got); len(m) > 0 {
		globalLogger.Warn("CC2500 configuration readback mismatch")
		return fmt.Errorf("%w: %w", ErrPkg, &MismatchError{Mismatches: m})
	}
	return nil
}

// PartInfo returns the PARTNUM and VERSION status registers.
// This method is concurrent safe.
func (d *Device) PartInfo() (partNum, version byte, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, partNum, err = d.singleAccess(Header(PARTNUM, Read|Burst), 0x00); err != nil {
		return 0, 0, err
	}
	if _, version, err = d.singleAccess(Header(VERSION, Read|Burst), 0x00); err != nil {
		return 0, 0, err
	}
	return partNum, version, nil
}

// --- Transmit ---

// SendPayload queues p as one variable-length packet and starts
// transmission: SIDLE, SFTX, length byte into the FIFO, burst of p into the
// FIFO, STX. It does not wait for the packet to leave the air.
// This method is concurrent safe.
func (d *Device) SendPayload(p []byte) error {
	if len(p) > MaxPayloadBytes {
		return fmt.Errorf("%w: %w (%d bytes), limit is %d", ErrPkg, ErrPayloadTooLarge, len(p), MaxPayloadBytes)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.writeStrobe(SIDLE); err != nil {
		return fmt.Errorf("failed to send data: %w", err)
	}
	if _, err := d.writeStrobe(SFTX); err != nil {
		return fmt.Errorf("failed to send data: %w", err)
	}
	if err := d.writeRegister(FIFO, byte(len(p))); err != nil {
		return fmt.Errorf("failed to send data: %w", err)
	}
	if _, err := d.burstAccess(Header(FIFO, Write|Burst), p); err != nil {
		return fmt.Errorf("failed to send data: %w", err)
	}
	if _, err := d.writeStrobe(STX); err != nil {
		return fmt.Errorf("failed to send data: %w", err)
	}
	return nil
}
