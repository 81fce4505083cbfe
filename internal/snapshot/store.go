package snapshot

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no snapshot exists for a label.
var ErrNotFound = errors.New("snapshot not found")

// Config holds database configuration
type Config struct {
	Path string // Path to SQLite database file
}

// Store keeps register snapshots in SQLite.
type Store struct {
	db *gorm.DB
}

// Open creates the database connection with the pure Go SQLite driver and
// migrates the schema.
func Open(config Config, log *log.Logger) (*Store, error) {
	var gormLog logger.Interface
	if log != nil {
		gormLog = logger.New(
			log,
			logger.Config{
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		)
	} else {
		gormLog = logger.Default.LogMode(logger.Silent)
	}

	dialector := sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        config.Path,
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLog,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := configureSQLite(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		sqlDB.Close()
		return nil, err
	}

	if log != nil {
		log.Printf("Snapshot store initialized: %s", config.Path)
	}
	return &Store{db: db}, nil
}

func configureSQLite(sqlDB *sql.DB) error {
	pragmaSettings := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmaSettings {
		if _, err := sqlDB.Exec(pragma); err != nil {
			return err
		}
	}
	return nil
}

// Save stores a new snapshot.
func (s *Store) Save(snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}
	if !snap.IsValid() {
		return fmt.Errorf("snapshot is not valid: label=%q, registers=%d", snap.Label, len(snap.Registers))
	}
	return s.db.Create(snap).Error
}

// Latest returns the most recent snapshot stored under label.
func (s *Store) Latest(label string) (*Snapshot, error) {
	var snap Snapshot
	err := s.db.Where("label = ?", label).Order("id DESC").First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, label)
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// List returns up to limit snapshots for label, newest first.
func (s *Store) List(label string, limit int) ([]Snapshot, error) {
	var snaps []Snapshot
	q := s.db.Where("label = ?", label).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&snaps).Error; err != nil {
		return nil, err
	}
	return snaps, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
