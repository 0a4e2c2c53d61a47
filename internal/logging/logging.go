// Package logging builds the process logger: human-readable console output
// on stderr, optionally teed into a JSON-lines run log.
package logging

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Level string
	// RunLogPath enables the JSON run log when non-empty.
	RunLogPath string
}

func ParseLevel(level string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE", "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New returns the logger and a cleanup func that flushes and closes the run
// log. The cleanup is safe to call when no run log was opened.
func New(opts Options) (*zap.Logger, func(), error) {
	level := zap.NewAtomicLevelAt(ParseLevel(opts.Level))

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stderr), level),
	}

	var runLog *os.File
	if strings.TrimSpace(opts.RunLogPath) != "" {
		dir := filepath.Dir(opts.RunLogPath)
		if err := os.MkdirAll(dir, 0o755); err != nil && dir != "." {
			return nil, nil, errors.Wrapf(err, "create run log dir %s", dir)
		}
		f, err := os.OpenFile(opts.RunLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "open run log %s", opts.RunLogPath)
		}
		runLog = f
		jsonCfg := zap.NewProductionEncoderConfig()
		jsonCfg.TimeKey = "timestamp"
		jsonCfg.MessageKey = "event"
		jsonCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), zapcore.AddSync(f), level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	cleanup := func() {
		_ = logger.Sync()
		if runLog != nil {
			_ = runLog.Close()
		}
	}
	return logger, cleanup, nil
}
