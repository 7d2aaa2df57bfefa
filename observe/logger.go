package observe

import (
	"context"
	"encoding/json"
	"io"
	"maps"
	"os"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// LogLevel represents a logging level.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLogLevel parses a level name case-insensitively. Unknown names mean info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// jsonLogger writes one JSON object per line. Loggers derived with
// WithRender share the sink of their parent.
type jsonLogger struct {
	level LogLevel
	sink  *sink
	base  map[string]any
}

type sink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *sink) write(line []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.w.Write(line)
}

// NewLogger creates a JSON logger writing to stderr.
func NewLogger(level string) Logger {
	return NewLoggerWithWriter(level, os.Stderr)
}

// NewLoggerWithWriter creates a JSON logger writing to w. Every entry
// carries attrs.
func NewLoggerWithWriter(level string, w io.Writer, attrs ...Field) Logger {
	base := make(map[string]any, len(attrs))
	for _, f := range attrs {
		base[f.Key] = f.Value
	}
	return &jsonLogger{level: ParseLogLevel(level), sink: &sink{w: w}, base: base}
}

// WithRender returns a logger that tags every entry with the render.
func (l *jsonLogger) WithRender(meta RenderMeta) Logger {
	base := maps.Clone(l.base)
	base["template"] = meta.Template
	if meta.Key != "" {
		base["cache_key"] = meta.Key
	}
	if meta.Preview {
		base["preview"] = true
	}
	return &jsonLogger{level: l.level, sink: l.sink, base: base}
}

func (l *jsonLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelDebug, msg, fields)
}

func (l *jsonLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelInfo, msg, fields)
}

func (l *jsonLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelWarn, msg, fields)
}

func (l *jsonLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelError, msg, fields)
}

func (l *jsonLogger) log(ctx context.Context, level LogLevel, msg string, fields []Field) {
	if level < l.level {
		return
	}

	entry := make(map[string]any, len(l.base)+len(fields)+5)
	maps.Copy(entry, l.base)
	for _, f := range fields {
		entry[f.Key] = redact(f)
	}
	if ctx != nil {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			entry["trace_id"] = sc.TraceID().String()
			entry["span_id"] = sc.SpanID().String()
		}
	}
	entry["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	entry["level"] = level.String()
	entry["msg"] = msg

	line, err := json.Marshal(entry)
	if err != nil {
		return // unencodable field values drop the entry
	}
	l.sink.write(append(line, '\n'))
}

// redact hides the value of fields whose key names a credential.
func redact(f Field) any {
	for _, k := range RedactedFields {
		if strings.EqualFold(f.Key, k) {
			return "[REDACTED]"
		}
	}
	return f.Value
}

// Ensure jsonLogger implements Logger
var _ Logger = (*jsonLogger)(nil)
