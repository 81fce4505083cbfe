//go:build !tinygo

package cc2500

import (
	"log"
	"os"
)

func init() {
	globalLogger = &stdLogger{l: log.New(os.Stderr, "cc2500 ", log.LstdFlags|log.Lmicroseconds)}
}

// stdLogger is a default logger that uses the standard library log package.
type stdLogger struct {
	l *log.Logger
}

func (s *stdLogger) Debug(msg string) { s.l.Print("[DEBUG] " + msg) }
func (s *stdLogger) Info(msg string)  { s.l.Print("[INFO]  " + msg) }
func (s *stdLogger) Warn(msg string)  { s.l.Print("[WARN]  " + msg) }
func (s *stdLogger) Error(msg string) { s.l.Print("[ERROR] " + msg) }
