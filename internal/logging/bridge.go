package logging

import (
	"context"
	"log/slog"
	"runtime"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// handler adapts a zapcore.Core to slog.Handler so the rest of the code
// keeps logging through the standard library facade. Groups flatten into
// dotted key prefixes.
type handler struct {
	core   zapcore.Core
	name   string
	prefix string
	fields []zapcore.Field
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.core.Enabled(zapLevel(level))
}

func (h *handler) Handle(_ context.Context, rec slog.Record) error {
	entry := zapcore.Entry{
		LoggerName: h.name,
		Time:       rec.Time,
		Level:      zapLevel(rec.Level),
		Message:    rec.Message,
	}
	if rec.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{rec.PC}).Next()
		entry.Caller = zapcore.EntryCaller{
			Defined:  frame.PC != 0,
			PC:       frame.PC,
			File:     frame.File,
			Line:     frame.Line,
			Function: frame.Function,
		}
	}

	ce := h.core.Check(entry, nil)
	if ce == nil {
		return nil
	}
	fields := make([]zapcore.Field, 0, len(h.fields)+rec.NumAttrs())
	fields = append(fields, h.fields...)
	rec.Attrs(func(a slog.Attr) bool {
		fields = h.appendAttr(fields, a)
		return true
	})
	ce.Write(fields...)
	return nil
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := h.clone()
	for _, a := range attrs {
		next.fields = next.appendAttr(next.fields, a)
	}
	return next
}

func (h *handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.prefix = next.prefix + name + "."
	return next
}

func (h *handler) clone() *handler {
	next := *h
	next.fields = make([]zapcore.Field, len(h.fields), len(h.fields)+4)
	copy(next.fields, h.fields)
	return &next
}

func (h *handler) appendAttr(fields []zapcore.Field, a slog.Attr) []zapcore.Field {
	v := a.Value.Resolve()
	if a.Key == "" && v.Kind() != slog.KindGroup {
		return fields
	}
	key := h.prefix + a.Key
	switch v.Kind() {
	case slog.KindString:
		return append(fields, zap.String(key, v.String()))
	case slog.KindInt64:
		return append(fields, zap.Int64(key, v.Int64()))
	case slog.KindUint64:
		return append(fields, zap.Uint64(key, v.Uint64()))
	case slog.KindFloat64:
		return append(fields, zap.Float64(key, v.Float64()))
	case slog.KindBool:
		return append(fields, zap.Bool(key, v.Bool()))
	case slog.KindDuration:
		return append(fields, zap.Duration(key, v.Duration()))
	case slog.KindTime:
		return append(fields, zap.Time(key, v.Time()))
	case slog.KindGroup:
		sub := handler{prefix: h.prefix}
		if a.Key != "" {
			sub.prefix = key + "."
		}
		for _, ga := range v.Group() {
			fields = sub.appendAttr(fields, ga)
		}
		return fields
	default:
		return append(fields, zap.Any(key, v.Any()))
	}
}

func zapLevel(l slog.Level) zapcore.Level {
	switch {
	case l < slog.LevelInfo:
		return zapcore.DebugLevel
	case l < slog.LevelWarn:
		return zapcore.InfoLevel
	case l < slog.LevelError:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
