// Package logging provides the leveled loggers used across the program.
//
// Output goes through log/slog. Init wires a console writer and a size-rotated
// log file; before Init is called InfoLog and ErrLog write to stdout/stderr.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DefaultMaxSizeMB  = 5
	DefaultMaxBackups = 5
)

var (
	InfoLog = New(os.Stdout, slog.LevelInfo)
	ErrLog  = New(os.Stderr, slog.LevelInfo)
)

type Options struct {
	// Name is attached to every record as the 'logger' attribute
	Name string

	// File is the path of the rotated log file. Empty disables file output.
	File       string
	MaxSizeMB  int
	MaxBackups int

	Console bool
	Level   slog.Level
}

// Logger is a printf style wrapper around a slog.Logger.
// It satisfies shaders.Logger.
type Logger struct {
	sl *slog.Logger
}

func New(w io.Writer, level slog.Level) *Logger {
	return NewFromHandler(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level, AddSource: true}))
}

func NewFromHandler(h slog.Handler) *Logger {
	return &Logger{sl: slog.New(h)}
}

// NewWithOptions builds a logger from opts. The returned closer releases the log file
// and must be called on shutdown.
func NewWithOptions(opts Options) (*Logger, io.Closer) {

	writers := make([]io.Writer, 0, 2)
	if opts.Console {
		writers = append(writers, os.Stdout)
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {

		if opts.MaxSizeMB <= 0 {
			opts.MaxSizeMB = DefaultMaxSizeMB
		}

		if opts.MaxBackups <= 0 {
			opts.MaxBackups = DefaultMaxBackups
		}

		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			LocalTime:  true,
		}
		writers = append(writers, rotator)
		closer = rotator
	}

	var w io.Writer = io.Discard
	if len(writers) > 0 {
		w = io.MultiWriter(writers...)
	}

	l := New(w, opts.Level)
	if opts.Name != "" {
		l = l.With("logger", opts.Name)
	}

	return l, closer
}

// Init replaces InfoLog, ErrLog and the slog default with a logger built from opts
func Init(opts Options) io.Closer {

	l, closer := NewWithOptions(opts)

	InfoLog = l
	ErrLog = l
	slog.SetDefault(l.sl)

	return closer
}

// ParseLevel accepts debug, info, warn and error (case insensitive)
func ParseLevel(s string) (slog.Level, error) {

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level '%s': %w", s, err)
	}

	return lvl, nil
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{sl: l.sl.With(args...)}
}

func (l *Logger) Slog() *slog.Logger {
	return l.sl
}

func (l *Logger) Debugf(format string, args ...any) {
	l.log(slog.LevelDebug, format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.log(slog.LevelInfo, format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.log(slog.LevelWarn, format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.log(slog.LevelError, format, args...)
}

// Fatalf logs at error level then exits the process with status 1
func (l *Logger) Fatalf(format string, args ...any) {
	l.log(slog.LevelError, format, args...)
	os.Exit(1)
}

func (l *Logger) log(level slog.Level, format string, args ...any) {

	ctx := context.Background()
	if !l.sl.Enabled(ctx, level) {
		return
	}

	// Skip runtime.Callers, log and the exported method so the record points at the caller
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	_ = l.sl.Handler().Handle(ctx, r)
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}
