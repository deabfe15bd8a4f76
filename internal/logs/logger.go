package logs

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const (
	logFileName = "debug.log"
	logPrefix   = "[calnotes] "
)

var (
	Logger  *log.Logger
	logFile *os.File
	mu      sync.Mutex
)

// Logs are dropped until Initialize points them at a file, so nothing
// reaches the terminal.
func init() {
	Logger = log.New(io.Discard, logPrefix, log.LstdFlags|log.Lshortfile)
}

// Initialize redirects the logger to debug.log inside logDir.
func Initialize(logDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if logDir == "" {
		return nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, logFileName)

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		Logger.Printf("Failed to open log file at %s: %v", logPath, err)
		return err
	}

	if logFile != nil {
		logFile.Close()
	}

	logFile = f
	Logger = log.New(f, logPrefix, log.LstdFlags|log.Lshortfile)

	Logger.Printf("Logger initialized at: %s", logPath)

	return nil
}

// Close closes the log file and drops further output.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	Logger = log.New(io.Discard, logPrefix, log.LstdFlags|log.Lshortfile)
	return err
}
