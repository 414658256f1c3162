// Package logger sets up the global zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ErrAppNameIsEmpty is returned if Config.AppName was not set
var ErrAppNameIsEmpty = errors.New("logger app name can not be empty")

// LevelWriter sends warnings and worse to ErrorWriter and everything else
// to InfoWriter
type LevelWriter struct {
	io.Writer
	ErrorWriter io.Writer
	InfoWriter  io.Writer
}

// WriteLevel implements zerolog.LevelWriter
func (lw *LevelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l == zerolog.Disabled {
		return 0, nil
	}
	if l >= zerolog.WarnLevel {
		return lw.ErrorWriter.Write(p) //nolint:wrapcheck
	}
	return lw.InfoWriter.Write(p) //nolint:wrapcheck
}

// Init replaces the global logger. With neither console nor file output
// enabled, logging is discarded. The terminal UI owns stdout, so it runs
// with the console disabled.
func Init(cfg Config) error {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		var err error
		if level, err = zerolog.ParseLevel(cfg.Level); err != nil {
			return errors.Wrap(err, fmt.Sprintf("loglevel %s is not supported", cfg.Level))
		}
	}
	if cfg.AppName == "" {
		return ErrAppNameIsEmpty
	}

	stack := false
	if level == zerolog.TraceLevel {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
		stack = true
	}
	zerolog.SetGlobalLevel(level)

	var writers []io.Writer
	if cfg.Console.Enabled {
		writers = append(writers, newConsoleWriter(cfg.Console))
	}
	if cfg.File.Enabled {
		w, err := newRollingFile(cfg.File)
		if err != nil {
			return err
		}
		writers = append(writers, w)
	}

	var out io.Writer = io.Discard
	if len(writers) > 0 {
		out = zerolog.MultiLevelWriter(writers...)
	}

	ctx := zerolog.New(out).Hook(NewPrometheusHook()).With().Timestamp().Str("app", cfg.AppName)
	if cfg.ReportCaller {
		ctx = ctx.Caller()
	}
	if stack {
		ctx = ctx.Stack()
	}
	log.Logger = ctx.Logger()

	return nil
}

func newRollingFile(cfg File) (io.Writer, error) {
	if err := os.MkdirAll(cfg.Path, 0o750); err != nil { //nolint:mnd
		return nil, errors.Wrapf(err, "create log directory %s", cfg.Path)
	}

	return &LevelWriter{
		ErrorWriter: &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Path, cfg.ErrorLog),
			MaxSize:    cfg.MaxSize,
			MaxAge:     cfg.MaxAge,
			MaxBackups: cfg.MaxBackups,
		},
		InfoWriter: &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Path, cfg.InfoLog),
			MaxSize:    cfg.MaxSize,
			MaxAge:     cfg.MaxAge,
			MaxBackups: cfg.MaxBackups,
		},
	}, nil
}

func newConsoleWriter(cfg Console) io.Writer {
	if cfg.Pretty {
		return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}
	return os.Stderr
}
