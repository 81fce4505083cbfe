package cc2500

// Level represents the logical level of a pin (Low or High).
type Level bool

const (
	Low  Level = false
	High Level = true
)

// SPI represents a full-duplex byte exchange on the bus the CC2500 sits on.
// The driver drives chip select itself, so the implementation must not
// toggle it between calls.
type SPI interface {
	// Transfer shifts w out and returns the byte shifted in at the same time.
	Transfer(w byte) (byte, error)
}

// Pin represents a generic GPIO line.
type Pin interface {
	// Out drives the pin to the given level.
	Out(l Level) error
	// Read returns the current level of the pin.
	Read() Level
}
