package config

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogWriter is the writer used for application and database logs.
var LogWriter io.Writer = os.Stdout

// InitLogging opens path for appending and tees logs to it and stdout. An
// empty path keeps logging on stdout only.
func InitLogging(path string) (*os.File, io.Writer) {
	if path == "" {
		return nil, LogWriter
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		log.Printf("Warning: Failed to create logs directory: %v", err)
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("Warning: Failed to open log file: %v", err)
		LogWriter = os.Stdout
		log.SetOutput(LogWriter)
		return nil, LogWriter
	}

	LogWriter = io.MultiWriter(os.Stdout, logFile)
	log.SetOutput(LogWriter)
	return logFile, LogWriter
}

// NewLogger builds the process logger on top of LogWriter: JSON at info level
// in production, console output at debug level otherwise.
func NewLogger(cfg *Config) *zap.Logger {
	var (
		encoder zapcore.Encoder
		level   zapcore.Level
	)
	if cfg.IsProduction() {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		level = zapcore.InfoLevel
	} else {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(LogWriter), level)
	return zap.New(core, zap.AddCaller()).With(zap.String("service", cfg.ServiceName))
}
