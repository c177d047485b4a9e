package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// JournalLogger writes the call audit trail to a timestamped file under
// logs/ and mirrors it to stdout.
type JournalLogger struct {
	file       *os.File
	logger     *log.Logger
	multiWrite io.Writer
}

func NewJournalLogger(logsDir string) (*JournalLogger, error) {
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join(logsDir, fmt.Sprintf("journal_%s.log", timestamp))

	file, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	// Create multi-writer for both file and stdout
	multiWrite := io.MultiWriter(os.Stdout, file)
	logger := log.New(multiWrite, "", log.Ldate|log.Ltime|log.Lmicroseconds)

	return &JournalLogger{
		file:       file,
		logger:     logger,
		multiWrite: multiWrite,
	}, nil
}

func (jl *JournalLogger) LogInfo(format string, v ...interface{}) {
	jl.log("INFO", format, v...)
}

func (jl *JournalLogger) LogError(format string, v ...interface{}) {
	jl.log("ERROR", format, v...)
}

func (jl *JournalLogger) LogCall(caller, method, path string, status int) {
	jl.log("CALL", "%s %s caller=%s status=%d", method, path, caller, status)
}

func (jl *JournalLogger) log(level string, format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	jl.logger.Printf("[%s] %s", level, message)
}

func (jl *JournalLogger) Close() error {
	return jl.file.Close()
}
