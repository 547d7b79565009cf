// Package logging builds the zap logger shared by the generator commands.
package logging

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the encoding and level of a logger.
type Options struct {
	Format string // "console" (default) or "json"
	Level  string // zap level name, default "info"
	// Output defaults to stderr; stdout carries diagnostics.
	Output io.Writer
}

// New builds a logger. Console output is meant for humans, JSON output for
// machines.
func New(opts Options) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if opts.Level != "" {
		l, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, errors.WithHint(errors.Wrap(err, "invalid log level"),
				"use debug, info, warn or error")
		}

		level.SetLevel(l)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var enc zapcore.Encoder

	switch opts.Format {
	case "", "console":
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	case "json":
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		return nil, errors.Newf("unknown log format %q", opts.Format)
	}

	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(out), level)), nil
}
