package logging

import (
	"context"
	"os"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// Logger wraps zap with keyvalue-style arguments and context-aware variants
// that attach the active trace/span IDs.
type Logger struct {
	zap    *zap.Logger
	synced atomic.Bool
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(NewNop())
}

// NewJSON builds a production JSON logger writing to stdout. Entries at or
// above error level carry a stacktrace.
func NewJSON(level Level) *Logger {
	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "component",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		level,
	)

	return FromZap(zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)))
}

func NewNop() *Logger {
	return FromZap(zap.NewNop())
}

func FromZap(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{zap: z}
}

func Default() *Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	return NewNop()
}

func SetDefault(logger *Logger) {
	if logger == nil {
		logger = NewNop()
	}
	defaultLogger.Store(logger)
}

func (l *Logger) Zap() *zap.Logger {
	if l == nil || l.zap == nil {
		return zap.NewNop()
	}
	return l.zap
}

// Sync flushes buffered entries. Safe to call more than once; only the first
// call reaches the underlying sink.
func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	if l.synced.CompareAndSwap(false, true) {
		return l.zap.Sync()
	}
	return nil
}

// Named tags every entry from the returned logger with the component name.
func (l *Logger) Named(name string) *Logger {
	if l == nil {
		return NewNop()
	}
	return &Logger{zap: l.zap.Named(name)}
}

func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return NewNop()
	}
	return &Logger{zap: l.zap.With(fields(args)...)}
}

func (l *Logger) Debug(msg string, args ...any) {
	l.write(nil, zap.DebugLevel, msg, args)
}

func (l *Logger) Info(msg string, args ...any) {
	l.write(nil, zap.InfoLevel, msg, args)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.write(nil, zap.WarnLevel, msg, args)
}

func (l *Logger) Error(msg string, args ...any) {
	l.write(nil, zap.ErrorLevel, msg, args)
}

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, zap.DebugLevel, msg, args)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, zap.InfoLevel, msg, args)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, zap.WarnLevel, msg, args)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, zap.ErrorLevel, msg, args)
}

func (l *Logger) write(ctx context.Context, level zapcore.Level, msg string, args []any) {
	logger := l
	if logger == nil {
		logger = Default()
	}
	ce := logger.zap.Check(level, msg)
	if ce == nil {
		return
	}
	ce.Write(append(fields(args), spanFields(ctx)...)...)
}

func spanFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	}
}

// fields converts alternating key/value arguments into zap fields. A non-string
// key or a dangling value is logged under "arg" rather than dropped.
func fields(args []any) []zap.Field {
	out := make([]zap.Field, 0, (len(args)+1)/2)
	for len(args) > 0 {
		key, ok := args[0].(string)
		if !ok || key == "" {
			key = "arg"
		}

		if len(args) == 1 {
			out = append(out, zap.Any(key, nil))
			break
		}

		switch v := args[1].(type) {
		case error:
			out = append(out, zap.NamedError(key, v))
		default:
			out = append(out, zap.Any(key, v))
		}
		args = args[2:]
	}
	return out
}
