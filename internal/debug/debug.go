package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// EnvVar names the environment variable that enables debug logging.
const EnvVar = "GUIDE_DEBUG"

var (
	mu      sync.Mutex
	logFile *os.File
	logger  *slog.Logger
	loaded  bool
)

// Init directs debug logging to the file at path, creating parent
// directories as needed. An empty path disables logging.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked(path)
}

// initLocked does the actual init work. Caller must hold mu.
func initLocked(path string) error {
	loaded = true
	closeLocked()

	if path == "" {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}

	logFile = f
	logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return nil
}

// SetOutput sends debug records to w. Used by tests and embedders that
// already own a writer.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	loaded = true
	closeLocked()
	logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Close closes the debug log file and disables logging.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	err := closeLocked()
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return err
}

func closeLocked() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// Logger returns the structured logger, initializing it from GUIDE_DEBUG on
// first use.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if !loaded {
		if err := initLocked(os.Getenv(EnvVar)); err != nil {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
	}
	return logger
}

// Log writes a formatted debug message.
func Log(format string, args ...any) {
	Logger().Debug(fmt.Sprintf(format, args...))
}

// Warn writes a formatted warning with structured attributes.
func Warn(msg string, attrs ...any) {
	Logger().Warn(msg, attrs...)
}
