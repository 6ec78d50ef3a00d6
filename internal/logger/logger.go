package logger

import (
	"alumni-office/internal/config"
	"alumni-office/internal/platform/paths"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type LoggerService interface {
	Debug(msg string)
	Info(msg string)
	Error(msg string, err error)
	Warn(msg string)
	Success(msg string)
	WithFields(fields map[string]any) LoggerService
	Close() error
}

type service struct {
	logger zerolog.Logger
	file   *os.File
}

// New writes to the server log file, mirrored to stderr in debug mode.
func New(cfg config.Config) (LoggerService, error) {
	logPath, err := paths.LoggerFilePath()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	var out io.Writer = f
	if cfg.Debug {
		out = io.MultiWriter(formatWriter(os.Stderr, cfg.Log.Format), f)
	}

	level := parseLevel(cfg.Log.Level)
	if cfg.Debug && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	return &service{
		logger: newZerolog(out, level),
		file:   f,
	}, nil
}

func NewStderr() LoggerService {
	return &service{
		logger: newZerolog(formatWriter(os.Stderr, config.LogFormatConsole), zerolog.InfoLevel),
	}
}

// NewWriter logs JSON lines to w; used by tests and embedding callers.
func NewWriter(w io.Writer, level string) LoggerService {
	return &service{logger: newZerolog(w, parseLevel(level))}
}

func NewNop() LoggerService {
	return &service{logger: zerolog.Nop()}
}

func newZerolog(out io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func formatWriter(w io.Writer, format config.LogFormat) io.Writer {
	if format == config.LogFormatConsole {
		return zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return w
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (s *service) Debug(msg string) {
	s.write(s.logger.Debug(), msg)
}

func (s *service) Info(msg string) {
	s.write(s.logger.Info(), msg)
}

func (s *service) Error(msg string, err error) {
	ev := s.logger.Error()
	if err != nil {
		ev = ev.Err(err)
		if strings.TrimSpace(msg) == "" {
			msg = err.Error()
		}
	}
	s.write(ev, msg)
}

func (s *service) Warn(msg string) {
	s.write(s.logger.Warn(), msg)
}

func (s *service) Success(msg string) {
	s.write(s.logger.Info().Bool("ok", true), msg)
}

func (s *service) WithFields(fields map[string]any) LoggerService {
	return &service{
		logger: s.logger.With().Fields(fields).Logger(),
	}
}

// Close releases the log file; derived loggers never own it.
func (s *service) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

func (s *service) write(ev *zerolog.Event, msg string) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return
	}
	ev.Msg(msg)
}
