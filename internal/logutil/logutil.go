// Package logutil builds the process logger.
package logutil

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLevel names the environment variable consulted when no level is given.
const EnvLevel = "SCADFMT_LOG_LEVEL"

const defaultLevel = zapcore.ErrorLevel

// ResolveLevel parses level, falling back to $SCADFMT_LOG_LEVEL and then to
// error. An unparsable explicit level is an error; a bad env value is not.
func ResolveLevel(level string) (zapcore.Level, error) {
	if s := strings.TrimSpace(level); s != "" {
		lvl, err := zapcore.ParseLevel(s)
		if err != nil {
			return defaultLevel, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		return lvl, nil
	}
	if s := strings.TrimSpace(os.Getenv(EnvLevel)); s != "" {
		if lvl, err := zapcore.ParseLevel(s); err == nil {
			return lvl, nil
		}
	}
	return defaultLevel, nil
}

// New builds a console logger writing to w. Time is omitted; caller and
// stack traces are added only at debug level.
func New(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := ResolveLevel(level)
	if err != nil {
		return nil, err
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	if lvl > zapcore.DebugLevel {
		encCfg.CallerKey = ""
		encCfg.StacktraceKey = ""
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)

	var opts []zap.Option
	if lvl == zapcore.DebugLevel {
		opts = append(opts, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	}
	return zap.New(core, opts...), nil
}

// Configure installs a stderr logger as the zap global and returns it.
func Configure(level string) (*zap.Logger, error) {
	logger, err := New(level, os.Stderr)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
