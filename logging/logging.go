package logging

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/storeops/networking"
)

const (
	// OutputStderr writes to standard error.
	OutputStderr = "stderr"
	// OutputStdout writes to standard output.
	OutputStdout = "stdout"
	// OutputHost forwards entries to the host logging capability.
	OutputHost = "host"

	// FormatConsole is the human readable encoding.
	FormatConsole = "console"
	// FormatJSON is the structured encoding.
	FormatJSON = "json"
)

var (
	// ErrInvalidLevel indicates a level zap does not recognise.
	ErrInvalidLevel = errors.New("invalid log level")

	// ErrInvalidFormat indicates an encoding other than console or json.
	ErrInvalidFormat = errors.New("invalid log format")
)

// HostCall defines the waPC host function signature used by the host output.
type HostCall func(string, string, string, []byte) ([]byte, error)

// Config controls logger construction.
type Config struct {
	// Level is the minimum level: debug, info, warn or error. Defaults to info.
	Level string `mapstructure:"level"`

	// Format is console or json. Defaults to console.
	Format string `mapstructure:"format"`

	// Output is stderr, stdout, host or a file path. Defaults to stderr.
	Output string `mapstructure:"output"`

	// MaxSize is the size in megabytes at which a log file is rotated.
	MaxSize int `mapstructure:"max_size"`
	// MaxBackups is the number of rotated files kept.
	MaxBackups int `mapstructure:"max_backups"`
	// MaxAge is the number of days rotated files are kept.
	MaxAge int `mapstructure:"max_age"`
	// Compress gzips rotated files.
	Compress bool `mapstructure:"compress"`

	// SDKConfig provides the runtime namespace used by the host output.
	SDKConfig networking.RuntimeConfig `mapstructure:"-"`

	// HostCall overrides the waPC host function used by the host output.
	HostCall HostCall `mapstructure:"-"`
}

// New builds a logger from cfg.
func New(cfg Config) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, errors.Join(ErrInvalidLevel, err)
		}
	}

	enc, err := encoder(cfg.Format)
	if err != nil {
		return nil, err
	}

	var core zapcore.Core
	switch output := strings.TrimSpace(cfg.Output); output {
	case "", OutputStderr:
		core = zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)
	case OutputStdout:
		core = zapcore.NewCore(enc, zapcore.Lock(os.Stdout), level)
	case OutputHost:
		core = newHostCore(cfg, enc, level)
	default:
		// lumberjack serializes writes and handles rotation.
		core = zapcore.NewCore(enc, zapcore.AddSync(&lumberjack.Logger{
			Filename:   output,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}), level)
	}

	return zap.New(core, zap.AddStacktrace(zap.ErrorLevel)), nil
}

func encoder(format string) (zapcore.Encoder, error) {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "ts"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder

	switch format {
	case "", FormatConsole:
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(ec), nil
	case FormatJSON:
		return zapcore.NewJSONEncoder(ec), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
}
