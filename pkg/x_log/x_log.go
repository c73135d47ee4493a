// Package x_log wraps the zerolog global logger with styled console output,
// rotated file output and per-module scoping.
package x_log

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Level = zerolog.Level

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

var (
	mu      sync.Mutex
	rotator *lumberjack.Logger
)

//
// ---------- Init ----------

// Init configures the global logger from LoadConfig("").
func Init() {
	cfg, err := LoadConfig("")
	if err != nil {
		cfg = DefaultConfig()
	}
	InitWithConfig(cfg, "")
}

// InitWithConfig configures the global logger. A non-empty module is attached to every line.
func InitWithConfig(cfg *Config, module string) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	applyDefaults(cfg)

	mu.Lock()
	defer mu.Unlock()

	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))

	var writers []io.Writer
	if cfg.ToConsole || !cfg.ToFile {
		writers = append(writers, consoleWriter(cfg, os.Stdout))
	}
	if cfg.ToFile {
		if rotator != nil {
			_ = rotator.Close()
		}
		rotator = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		writers = append(writers, rotator)
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp()
	if module != "" {
		ctx = ctx.Str("module", module)
	}
	log.Logger = ctx.Logger()
}

// consoleWriter picks JSON, a styled console or a plain console for out.
func consoleWriter(cfg *Config, out *os.File) io.Writer {
	if strings.EqualFold(cfg.Format, "json") {
		return out
	}
	styles := DefaultStylesByName(cfg.Style)
	styles.Out = out
	w := ConsoleWriterWithStyles(styles)
	if !isatty.IsTerminal(out.Fd()) && !isatty.IsCygwinTerminal(out.Fd()) {
		w.NoColor = true
		w.FormatLevel = nil
		w.FormatTimestamp = nil
		w.FormatFieldName = nil
		w.FormatMessage = nil
	}
	return w
}

// Close flushes and closes the rotated log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

//
// ---------- Scoped Loggers ----------

// New returns a child of the global logger tagged with module.
func New(module string) zerolog.Logger {
	return log.Logger.With().Str("module", module).Logger()
}

type ctxKey struct{}

// WithLogger stores l in ctx.
func WithLogger(ctx context.Context, l *zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From returns the logger stored in ctx or the global logger.
func From(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zerolog.Logger); ok && l != nil {
			return l
		}
	}
	return &log.Logger
}

//
// ---------- Global Shorthands ----------

func Debug() *zerolog.Event { return log.Debug() }
func Info() *zerolog.Event  { return log.Info() }
func Warn() *zerolog.Event  { return log.Warn() }
func Error() *zerolog.Event { return log.Error() }
