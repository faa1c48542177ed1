package logger

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/natefinch/lumberjack"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Settings configures the process-wide logger. An empty FilePath logs to stdout.
type Settings struct {
	Level      string `validate:"required,oneof=debug info warn error"`
	FilePath   string
	MaxSizeMB  int `validate:"gte=0,lte=1024"`
	MaxBackups int `validate:"gte=0,lte=100"`
	MaxAgeDays int `validate:"gte=0,lte=365"`
}

func (s Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("invalid logger settings: %w", err)
	}
	return nil
}

// New builds a slog logger: text on the console, JSON into a rotating file.
func New(s Settings) (*slog.Logger, io.Writer, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(s.Level)}
	if s.FilePath == "" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts)), os.Stdout, nil
	}

	w := &lumberjack.Logger{
		Filename:   s.FilePath,
		MaxSize:    s.MaxSizeMB,
		MaxBackups: s.MaxBackups,
		MaxAge:     s.MaxAgeDays,
		Compress:   true,
	}
	return slog.New(slog.NewJSONHandler(w, opts)), w, nil
}

// Setup installs the logger as slog default and routes the std log package
// into the same sink.
func Setup(s Settings) (*slog.Logger, error) {
	l, w, err := New(s)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(l)
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.LUTC)
	return l, nil
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn, "warning":
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Printf adapts a slog logger to the func(format, args...) shape some services take.
func Printf(l *slog.Logger) func(format string, args ...interface{}) {
	if l == nil {
		l = slog.Default()
	}
	return func(format string, args ...interface{}) {
		l.Info(fmt.Sprintf(format, args...))
	}
}
