// Package log provides the structured logger used across the station.
package log

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type (
	// Logger is a contract for the logger.
	Logger interface {
		Debugf(format string, args ...interface{})
		Infof(format string, args ...interface{})
		Info(args ...interface{})
		Warnf(format string, args ...interface{})
		Errorf(format string, args ...interface{})
		Error(args ...interface{})
		Fatalf(format string, args ...interface{})
		With(args ...interface{}) Logger
		Flush() error
	}

	zapLogger struct {
		log *zap.SugaredLogger
	}
)

// New initializes and returns a new instance of a logger writing JSON lines to stdout.
func New(appID, logLevel string) Logger {
	return newLogger(appID, logLevel, os.Stdout)
}

// NewWithWriter is the same as New but writes to w.
func NewWithWriter(appID, logLevel string, w io.Writer) Logger {
	return newLogger(appID, logLevel, w)
}

// NewNop returns a logger that drops everything.
func NewNop() Logger {
	return &zapLogger{log: zap.NewNop().Sugar()}
}

func newLogger(appID, logLevel string, w io.Writer) *zapLogger {
	atom := zap.NewAtomicLevel()

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	log := zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		atom,
	))

	atom.SetLevel(zap.InfoLevel)
	if logLevel != "" {
		if err := atom.UnmarshalText([]byte(strings.ToLower(logLevel))); err != nil {
			log.Error("invalid log level", zap.String("level", logLevel))
		}
	}

	return &zapLogger{log: log.Sugar().With("app", appID)}
}

func (l *zapLogger) Debugf(format string, args ...interface{}) {
	l.log.Debugf(format, args...)
}

func (l *zapLogger) Infof(format string, args ...interface{}) {
	l.log.Infof(format, args...)
}

func (l *zapLogger) Info(args ...interface{}) {
	l.log.Info(args...)
}

func (l *zapLogger) Warnf(format string, args ...interface{}) {
	l.log.Warnf(format, args...)
}

func (l *zapLogger) Errorf(format string, args ...interface{}) {
	l.log.Errorf(format, args...)
}

func (l *zapLogger) Error(args ...interface{}) {
	l.log.Error(args...)
}

func (l *zapLogger) Fatalf(format string, args ...interface{}) {
	l.log.Fatalf(format, args...)
}

// With returns a child logger carrying the given key-value pairs.
func (l *zapLogger) With(args ...interface{}) Logger {
	return &zapLogger{l.log.With(args...)}
}

// Flush flushes buffered entries.
func (l *zapLogger) Flush() error {
	return l.log.Sync()
}
