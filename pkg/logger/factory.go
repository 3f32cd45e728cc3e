package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the record encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Option tunes New.
type Option func(*settings)

type settings struct {
	level    slog.Leveler
	format   Format
	w        io.Writer
	service  string
	contexts []ContextExtractor
}

// WithLevel sets the minimum level. INFO by default.
func WithLevel(l slog.Level) Option {
	return func(s *settings) { s.level = l }
}

// WithLevelName parses names like "debug" or "WARN+2", as found in a
// LOG_LEVEL variable. Unknown names keep the current level.
func WithLevelName(name string) Option {
	return func(s *settings) {
		var l slog.Level
		if l.UnmarshalText([]byte(strings.TrimSpace(name))) == nil {
			s.level = l
		}
	}
}

// WithFormat panics on anything but FormatJSON or FormatText.
func WithFormat(f Format) Option {
	if f != FormatJSON && f != FormatText {
		panic(fmt.Sprintf("logger: unknown format %q", f))
	}
	return func(s *settings) { s.format = f }
}

// WithTextFormatter is WithFormat(FormatText).
func WithTextFormatter() Option {
	return WithFormat(FormatText)
}

// WithOutput redirects records to w. Nil is ignored.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		if w != nil {
			s.w = w
		}
	}
}

// WithService adds a "service" attribute to every record.
func WithService(name string) Option {
	return func(s *settings) { s.service = name }
}

// WithContextExtractors registers functions consulted on every *Context
// call, e.g. authtoken.LogContextExtractor.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(s *settings) {
		for _, ex := range extractors {
			if ex != nil {
				s.contexts = append(s.contexts, ex)
			}
		}
	}
}

// WithContextValue logs ctx.Value(key) under name when present.
func WithContextValue(name string, key any) Option {
	if name == "" || key == nil {
		return func(*settings) {}
	}
	return WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
		v := ctx.Value(key)
		if v == nil {
			return slog.Attr{}, false
		}
		return slog.Any(name, v), true
	})
}

// New builds a logger. Without options it writes JSON at INFO to stdout.
func New(opts ...Option) *slog.Logger {
	s := settings{level: slog.LevelInfo, format: FormatJSON, w: os.Stdout}
	for _, opt := range opts {
		opt(&s)
	}
	return slog.New(newContextHandler(s.handler(), s.contexts))
}

func (s settings) handler() slog.Handler {
	ho := &slog.HandlerOptions{Level: s.level}

	var h slog.Handler = slog.NewJSONHandler(s.w, ho)
	if s.format == FormatText {
		h = slog.NewTextHandler(s.w, ho)
	}
	if s.service != "" {
		h = h.WithAttrs([]slog.Attr{slog.String("service", s.service)})
	}
	return h
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Or returns l, or Discard when l is nil.
func Or(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return Discard()
}
