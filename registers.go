package cc2500

import "fmt"

// Register is a 6-bit CC2500 register address.
type Register byte

// Configuration registers.
const (
	IOCFG2   Register = 0x00 // GDO2 output pin configuration
	IOCFG1   Register = 0x01 // GDO1 output pin configuration
	IOCFG0   Register = 0x02 // GDO0 output pin configuration
	FIFOTHR  Register = 0x03 // RX FIFO and TX FIFO thresholds
	SYNC1    Register = 0x04 // Sync word, high byte
	SYNC0    Register = 0x05 // Sync word, low byte
	PKTLEN   Register = 0x06 // Packet length
	PKTCTRL1 Register = 0x07 // Packet automation control
	PKTCTRL0 Register = 0x08 // Packet automation control
	ADDR     Register = 0x09 // Device address
	CHANNR   Register = 0x0A // Channel number
	FSCTRL1  Register = 0x0B // Frequency synthesizer control
	FSCTRL0  Register = 0x0C // Frequency synthesizer control
	FREQ2    Register = 0x0D // Frequency control word, high byte
	FREQ1    Register = 0x0E // Frequency control word, middle byte
	FREQ0    Register = 0x0F // Frequency control word, low byte
	MDMCFG4  Register = 0x10 // Modem configuration
	MDMCFG3  Register = 0x11 // Modem configuration
	MDMCFG2  Register = 0x12 // Modem configuration
	MDMCFG1  Register = 0x13 // Modem configuration
	MDMCFG0  Register = 0x14 // Modem configuration
	DEVIATN  Register = 0x15 // Modem deviation setting
	MCSM2    Register = 0x16 // Main radio control state machine configuration
	MCSM1    Register = 0x17 // Main radio control state machine configuration
	MCSM0    Register = 0x18 // Main radio control state machine configuration
	FOCCFG   Register = 0x19 // Frequency offset compensation configuration
	BSCFG    Register = 0x1A // Bit synchronization configuration
	AGCCTRL2 Register = 0x1B // AGC control
	AGCCTRL1 Register = 0x1C // AGC control
	AGCCTRL0 Register = 0x1D // AGC control
	WOREVT1  Register = 0x1E // High byte event 0 timeout
	WOREVT0  Register = 0x1F // Low byte event 0 timeout
	WORCTRL  Register = 0x20 // Wake on radio control
	FREND1   Register = 0x21 // Front end RX configuration
	FREND0   Register = 0x22 // Front end TX configuration
	FSCAL3   Register = 0x23 // Frequency synthesizer calibration
	FSCAL2   Register = 0x24 // Frequency synthesizer calibration
	FSCAL1   Register = 0x25 // Frequency synthesizer calibration
	FSCAL0   Register = 0x26 // Frequency synthesizer calibration
	RCCTRL1  Register = 0x27 // RC oscillator configuration
	RCCTRL0  Register = 0x28 // RC oscillator configuration
	FSTEST   Register = 0x29 // Frequency synthesizer calibration control
	PTEST    Register = 0x2A // Production test
	AGCTEST  Register = 0x2B // AGC test
	TEST2    Register = 0x2C // Various test settings
	TEST1    Register = 0x2D // Various test settings
	TEST0    Register = 0x2E // Various test settings
)

// Status registers. They share addresses with the strobes and are only
// reachable with Read|Burst.
const (
	PARTNUM        Register = 0x30 // Part number
	VERSION        Register = 0x31 // Current version number
	FREQEST        Register = 0x32 // Frequency offset estimate
	LQI            Register = 0x33 // Demodulator estimate for link quality
	RSSI           Register = 0x34 // Received signal strength indication
	MARCSTATE      Register = 0x35 // Control state machine state
	WORTIME1       Register = 0x36 // High byte of WOR timer
	WORTIME0       Register = 0x37 // Low byte of WOR timer
	PKTSTATUS      Register = 0x38 // Current GDOx status and packet status
	VCO_VC_DAC     Register = 0x39 // Current setting from PLL calibration module
	TXBYTES        Register = 0x3A // Underflow and number of bytes in the TX FIFO
	RXBYTES        Register = 0x3B // Overflow and number of bytes in the RX FIFO
	RCCTRL1_STATUS Register = 0x3C // Last RC oscillator calibration result
	RCCTRL0_STATUS Register = 0x3D // Last RC oscillator calibration result
)

// Pseudo-registers.
const (
	PATABLE Register = 0x3E // Power amplifier table
	FIFO    Register = 0x3F // TX/RX FIFO
)

const addressMask = 0x3F

func (r Register) valid() bool { return r&^addressMask == 0 }

// AccessMode holds the two mode bits of a transaction header.
type AccessMode byte

const (
	Write AccessMode = 0x00
	Read  AccessMode = 0x80
	Burst AccessMode = 0x40

	modeMask = 0xC0
)

// Header builds the first byte of a transaction: the address in bits 0-5,
// R/W in bit 7 and burst in bit 6.
func Header(addr Register, mode AccessMode) byte {
	return byte(addr)&addressMask | byte(mode)&modeMask
}

// Strobe is a single-byte command.
type Strobe byte

const (
	SRES    Strobe = 0x30 // Reset chip
	SFSTXON Strobe = 0x31 // Enable and calibrate frequency synthesizer
	SXOFF   Strobe = 0x32 // Turn off crystal oscillator
	SCAL    Strobe = 0x33 // Calibrate frequency synthesizer and turn it off
	SRX     Strobe = 0x34 // Enable RX
	STX     Strobe = 0x35 // Enable TX
	SIDLE   Strobe = 0x36 // Exit RX/TX, turn off frequency synthesizer
	SAFC    Strobe = 0x37 // Perform AFC adjustment of the frequency synthesizer
	SWOR    Strobe = 0x38 // Start automatic RX polling sequence (wake on radio)
	SPWD    Strobe = 0x39 // Enter power down mode when CSn goes high
	SFRX    Strobe = 0x3A // Flush the RX FIFO
	SFTX    Strobe = 0x3B // Flush the TX FIFO
	SWORRST Strobe = 0x3C // Reset real time clock
	SNOP    Strobe = 0x3D // No operation
)

var strobeNames = [...]string{
	"SRES", "SFSTXON", "SXOFF", "SCAL", "SRX", "STX", "SIDLE",
	"SAFC", "SWOR", "SPWD", "SFRX", "SFTX", "SWORRST", "SNOP",
}

func (s Strobe) String() string {
	if s < SRES || s > SNOP {
		return fmt.Sprintf("Strobe(0x%02X)", byte(s))
	}
	return strobeNames[s-SRES]
}

// State is the main radio control state reported in a status byte.
type State byte

const (
	StateIdle State = iota
	StateRX
	StateTX
	StateFSTXON
	StateCalibrate
	StateSettling
	StateRXFIFOOverflow
	StateTXFIFOUnderflow
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRX:
		return "RX"
	case StateTX:
		return "TX"
	case StateFSTXON:
		return "FSTXON"
	case StateCalibrate:
		return "CALIBRATE"
	case StateSettling:
		return "SETTLING"
	case StateRXFIFOOverflow:
		return "RXFIFO_OVERFLOW"
	case StateTXFIFOUnderflow:
		return "TXFIFO_UNDERFLOW"
	default:
		return "unknown"
	}
}

// Status is the chip status byte clocked out during every header or strobe.
type Status byte

// Status byte fields
const (
	statusChipNotReady = 1 << 7
	statusStateShift   = 4
	statusStateMask    = 0x07
	statusFIFOMask     = 0x0F
)

// ChipReady reports whether power and crystal have stabilized. CHIP_RDYn is
// active low.
func (s Status) ChipReady() bool { return s&statusChipNotReady == 0 }

// State returns the main radio control state.
func (s Status) State() State { return State(s>>statusStateShift) & statusStateMask }

// FIFOBytes returns the bytes available in the RX FIFO after a read header,
// or the free bytes in the TX FIFO after a write header.
func (s Status) FIFOBytes() int { return int(s & statusFIFOMask) }

func (s Status) String() string {
	return fmt.Sprintf("Status(ready=%v, state=%s, fifo=%d)", s.ChipReady(), s.State(), s.FIFOBytes())
}
