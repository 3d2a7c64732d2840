// Package logging builds the zap loggers used by the hosts and the CLI.
package logging

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/trackball/internal/trackball"
)

var ErrInvalidEncoding = errors.New("logging: encoding must be json or console")

type Options struct {
	Level    string
	Encoding string
	// File receives log output instead of stderr when set. The terminal host
	// always sets it, since stderr shares the alternate screen.
	File string
}

func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		l, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		level = l
	}

	encoding := opts.Encoding
	if encoding == "" {
		encoding = "console"
	}
	if encoding != "console" && encoding != "json" {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidEncoding, encoding)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if encoding == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	output := "stderr"
	if opts.File != "" {
		output = opts.File
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      false,
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{output},
		DisableCaller:    true,
	}
	return config.Build()
}

func Nop() *zap.Logger { return zap.NewNop() }

// Object tags a log line with an object id.
func Object(id trackball.ObjectID) zap.Field {
	return zap.Stringer("object", id)
}

// StepLogger logs every rotation at debug level.
type StepLogger struct {
	Log *zap.Logger
}

func (l StepLogger) OnStep(s trackball.Step) {
	if !s.Rotated {
		return
	}
	l.Log.Debug("rotate",
		Object(s.Object),
		zap.Float64("angle", s.Angle),
		zap.Float64("w", s.Orientation.W),
		zap.Float64("x", s.Orientation.V.X()),
		zap.Float64("y", s.Orientation.V.Y()),
		zap.Float64("z", s.Orientation.V.Z()),
	)
}

// Warn logs a sink failure and reports whether err was one. Hosts call it
// for every error Dispatch returns and keep running.
func Warn(log *zap.Logger, err error) bool {
	if err == nil {
		return false
	}
	var ue *trackball.UpdateError
	if errors.As(err, &ue) {
		log.Warn("orientation not applied", Object(ue.Object), zap.Error(ue.Wrapped))
		return true
	}
	log.Warn("dispatch failed", zap.Error(err))
	return true
}
