package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog with typed fields and an optional error collector.
type Logger struct {
	zl        zerolog.Logger
	collector *LogCollector
}

type Config struct {
	Level      string // trace, debug, info, warn, error, fatal, panic
	Format     string // json or console
	Output     string // stdout, stderr or a file path
	TimeFormat string
}

func New(cfg *Config) (*Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	out, err := openOutput(cfg.Output)
	if err != nil {
		return nil, err
	}

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339Nano
	}
	zerolog.TimeFieldFormat = timeFormat
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat}
	}

	zl := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		CallerWithSkipFrameCount(4).
		Logger()
	return &Logger{zl: zl}, nil
}

func openOutput(dst string) (io.Writer, error) {
	switch dst {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}
	f, err := os.OpenFile(dst, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// With returns a child logger that carries fields on every line.
func (l *Logger) With(fields ...Field) *Logger {
	ctx := l.zl.With()
	for _, f := range fields {
		ctx = ctx.Interface(f.Key, f.value())
	}
	return &Logger{zl: ctx.Logger(), collector: l.collector}
}

func (l *Logger) Debug(msg string, fields ...Field) { l.emit(zerolog.DebugLevel, msg, fields) }
func (l *Logger) Info(msg string, fields ...Field)  { l.emit(zerolog.InfoLevel, msg, fields) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.emit(zerolog.WarnLevel, msg, fields) }
func (l *Logger) Error(msg string, fields ...Field) { l.emit(zerolog.ErrorLevel, msg, fields) }

func (l *Logger) emit(level zerolog.Level, msg string, fields []Field) {
	if ev := l.zl.WithLevel(level); ev != nil {
		for _, f := range fields {
			f.apply(ev)
		}
		ev.Msg(msg)
	}
	if l.collector != nil && l.collector.Accepts(level) {
		l.collector.AddLog(level.String(), msg, fieldMap(fields), caller(3))
	}
}

// caller reports file:line relative to the module root.
func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	if i := strings.LastIndex(file, "/CoinSignals/"); i >= 0 {
		file = file[i+len("/CoinSignals/"):]
	} else {
		file = filepath.Base(file)
	}
	return fmt.Sprintf("%s:%d", file, line)
}

func fieldMap(fields []Field) map[string]interface{} {
	if len(fields) == 0 {
		return nil
	}
	m := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		m[f.Key] = f.value()
	}
	return m
}

// AddCollector starts aggregating lines into config.Publisher, replacing any
// previous collector.
func (l *Logger) AddCollector(config *CollectionConfig) {
	l.RemoveCollector()
	l.collector = NewLogCollector(config)
}

func (l *Logger) RemoveCollector() {
	if l.collector != nil {
		l.collector.Close()
		l.collector = nil
	}
}

type fieldKind uint8

const (
	kindString fieldKind = iota
	kindInt
	kindFloat
	kindBool
	kindError
	kindAny
)

// Field is a typed key/value attached to a log line.
type Field struct {
	Key  string
	kind fieldKind
	str  string
	num  int64
	flt  float64
	val  interface{}
}

func (f Field) apply(ev *zerolog.Event) {
	switch f.kind {
	case kindString:
		ev.Str(f.Key, f.str)
	case kindInt:
		ev.Int64(f.Key, f.num)
	case kindFloat:
		ev.Float64(f.Key, f.flt)
	case kindBool:
		ev.Bool(f.Key, f.num != 0)
	case kindError:
		if err, _ := f.val.(error); err != nil {
			ev.AnErr(f.Key, err)
		}
	default:
		ev.Interface(f.Key, f.val)
	}
}

func (f Field) value() interface{} {
	switch f.kind {
	case kindString:
		return f.str
	case kindInt:
		return f.num
	case kindFloat:
		return f.flt
	case kindBool:
		return f.num != 0
	case kindError:
		if err, _ := f.val.(error); err != nil {
			return err.Error()
		}
		return ""
	default:
		return f.val
	}
}

func String(key, value string) Field { return Field{Key: key, kind: kindString, str: value} }

func Strings(key string, value []string) Field { return String(key, strings.Join(value, ", ")) }

func Int(key string, value int) Field { return Field{Key: key, kind: kindInt, num: int64(value)} }

func Int64(key string, value int64) Field { return Field{Key: key, kind: kindInt, num: value} }

func Float64(key string, value float64) Field { return Field{Key: key, kind: kindFloat, flt: value} }

func Bool(key string, value bool) Field {
	f := Field{Key: key, kind: kindBool}
	if value {
		f.num = 1
	}
	return f
}

// Duration logs d in whole milliseconds.
func Duration(key string, d time.Duration) Field { return Int64(key, d.Milliseconds()) }

func Error(err error) Field { return Field{Key: zerolog.ErrorFieldName, kind: kindError, val: err} }

func Any(key string, value interface{}) Field { return Field{Key: key, kind: kindAny, val: value} }
