package logger

import (
	"io"
	"os"
	"strings"
	"syscall"
	"time"

	"codeberg.org/mutker/visionarypub/internal/errors"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log = zerolog.New(io.Discard)

type LogLevel int8

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

const (
	defaultMaxSizeMB  = 64
	defaultMaxBackups = 3
)

type LogEvent struct {
	*zerolog.Event
}

func (e *LogEvent) Msg(msg string) {
	e.Event.Msg(msg)
}

func (e *LogEvent) Send() {
	e.Event.Send()
}

// Options controls where and how log output is written.
type Options struct {
	Level     string
	File      string
	MaxSizeMB int
	IsService bool
}

// Init initializes the global logger. Output goes to a rotating file when
// opts.File is set, otherwise to a console writer on stdout.
func Init(opts Options) {
	log = zerolog.New(newWriter(opts)).With().Timestamp().Logger()

	level, ok := ParseLevel(opts.Level)
	if !ok {
		level = WarnLevel
	}
	SetLogLevel(level)
}

// InitWithWriter initializes the global logger on w with JSON output.
func InitWithWriter(w io.Writer, level LogLevel) {
	log = zerolog.New(w).With().Timestamp().Logger()
	SetLogLevel(level)
}

func newWriter(opts Options) io.Writer {
	if opts.File != "" {
		maxSize := opts.MaxSizeMB
		if maxSize <= 0 {
			maxSize = defaultMaxSizeMB
		}
		return &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSize,
			MaxBackups: defaultMaxBackups,
			Compress:   true,
		}
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}

	if opts.IsService {
		output.TimeFormat = ""
		output.FormatTimestamp = func(_ interface{}) string {
			return ""
		}
	}

	return output
}

// ParseLevel maps a configured level name to a LogLevel.
func ParseLevel(level string) (LogLevel, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel, true
	case "info":
		return InfoLevel, true
	case "warn", "warning":
		return WarnLevel, true
	case "error":
		return ErrorLevel, true
	default:
		return WarnLevel, false
	}
}

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	zerolog.SetGlobalLevel(zerolog.Level(level))
}

// IsService checks if the application is running as a service
func IsService() bool {
	if _, err := os.Stdin.Stat(); err != nil {
		return true
	}
	if os.Getenv("SERVICE_NAME") != "" || os.Getenv("INVOCATION_ID") != "" {
		return true
	}
	if os.Getppid() == 1 {
		return true
	}

	return syscall.Getpgrp() == syscall.Getpid()
}

// Debug logs a debug message
func Debug() *LogEvent {
	return &LogEvent{log.Debug()}
}

// Info logs an info message
func Info() *LogEvent {
	return &LogEvent{log.Info()}
}

// Warn logs a warning message
func Warn() *LogEvent {
	return &LogEvent{log.Warn()}
}

// Error logs an error message
func Error() *LogEvent {
	return &LogEvent{log.Error()}
}

// ErrorWithCode logs an error message with a specific error code
func ErrorWithCode(err errors.Error) *LogEvent {
	return &LogEvent{withCode(log.Error(), err)}
}

// Fatal logs a fatal message and exits the program
func Fatal() *LogEvent {
	return &LogEvent{log.Fatal()}
}

// FatalWithCode logs a fatal message with a specific error code and exits the program
func FatalWithCode(err errors.Error) *LogEvent {
	return &LogEvent{withCode(log.Fatal(), err)}
}

func withCode(e *zerolog.Event, err errors.Error) *zerolog.Event {
	return e.
		Str("error_code", string(err.Code())).
		Str("error_message", err.Error()).
		AnErr("error", err.Unwrap())
}

// component is a Logger bound to a component name. It reads the global
// logger on every call so components created before Init still log.
type component struct {
	name string
}

// Default returns a Logger backed by the global logger.
func Default() Logger {
	return &component{}
}

func (c *component) event(e *zerolog.Event) *LogEvent {
	if c.name != "" {
		e = e.Str("component", c.name)
	}
	return &LogEvent{e}
}

func (c *component) Debug() *LogEvent { return c.event(log.Debug()) }
func (c *component) Info() *LogEvent  { return c.event(log.Info()) }
func (c *component) Warn() *LogEvent  { return c.event(log.Warn()) }
func (c *component) Error() *LogEvent { return c.event(log.Error()) }

func (c *component) ErrorWithCode(err errors.Error) *LogEvent {
	return c.event(withCode(log.Error(), err))
}

func (c *component) WithComponent(name string) Logger {
	return &component{name: name}
}
