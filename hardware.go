package cc2500

import (
	"errors"
	"fmt"
	"time"
)

// Datasheet timings.
const (
	// csSettleDelay brackets every chip select edge of a transaction.
	csSettleDelay = 200 * time.Microsecond
	// resetLowDelay and resetHighDelay time the manual power-on reset pulse.
	resetLowDelay  = 2 * time.Microsecond
	resetHighDelay = 40 * time.Microsecond
)

type HardwareConfig struct {
	RadioConfig
	// CS is the chip select line (CSn, active low).
	CS Pin
	// Ready is the line the chip pulls low when it can accept a transaction.
	// On the CC2500 this is SO (MISO) read back as a GPIO.
	Ready Pin
	// Delay is used for every settling delay.
	// Defaults to time.Sleep if not provided.
	Delay func(time.Duration)
}

// selectChip asserts CSn.
func (d *Device) selectChip() error {
	d.config.Delay(csSettleDelay)
	err := d.config.CS.Out(Low)
	d.config.Delay(csSettleDelay)
	if err != nil {
		return fmt.Errorf("%w: assert chip select: %w", ErrPkg, err)
	}
	return nil
}

// releaseChip deasserts CSn.
func (d *Device) releaseChip() error {
	d.config.Delay(csSettleDelay)
	err := d.config.CS.Out(High)
	d.config.Delay(csSettleDelay)
	if err != nil {
		return fmt.Errorf("%w: release chip select: %w", ErrPkg, err)
	}
	return nil
}

// transaction runs fn between chip select assertion and release, after the
// ready handshake. CSn is released on every path once asserted.
// Call with lock held.
func (d *Device) transaction(fn func() error) (err error) {
	if err = d.selectChip(); err != nil {
		return errors.Join(err, d.releaseChip())
	}
	defer func() {
		if rerr := d.releaseChip(); err == nil {
			err = rerr
		}
	}()

	if err = d.config.Waiter.WaitReady(d.config.Ready); err != nil {
		globalLogger.Error("CC2500 did not signal ready")
		return err
	}
	return fn()
}

func (d *Device) transfer(b byte) (byte, error) {
	r, err := d.conn.Transfer(b)
	if err != nil {
		globalLogger.Error("SPI Transfer Error")
		return 0, fmt.Errorf("%w: spi transfer: %w", ErrPkg, err)
	}
	return r, nil
}
