package snapshot

import (
	"fmt"
	"time"

	"github.com/michcald/cc2500"
)

// Snapshot is one readback of the CC2500 configuration registers.
type Snapshot struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Label      string    `gorm:"index;size:64;not null" json:"label"`
	PartNum    uint8     `json:"part_num"`
	Version    uint8     `json:"version"`
	PowerLevel uint8     `json:"power_level"`
	Registers  []byte    `gorm:"not null" json:"registers"`
	Verified   bool      `json:"verified"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Snapshot) TableName() string {
	return "register_snapshots"
}

// New builds a snapshot from a configuration readback.
func New(label string, cfg cc2500.Configuration, partNum, version, powerLevel byte) *Snapshot {
	return &Snapshot{
		Label:      label,
		PartNum:    partNum,
		Version:    version,
		PowerLevel: powerLevel,
		Registers:  append([]byte(nil), cfg[:]...),
	}
}

// Configuration returns the stored registers as a cc2500.Configuration.
func (s *Snapshot) Configuration() (cc2500.Configuration, error) {
	var cfg cc2500.Configuration
	if len(s.Registers) != len(cfg) {
		return cfg, fmt.Errorf("snapshot %d holds %d registers, want %d", s.ID, len(s.Registers), len(cfg))
	}
	copy(cfg[:], s.Registers)
	return cfg, nil
}

// IsValid checks if the snapshot can be stored
func (s *Snapshot) IsValid() bool {
	return s.Label != "" && len(s.Registers) == cc2500.ConfigRegisterCount
}
