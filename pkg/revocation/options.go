package revocation

import (
	"log/slog"
	"time"
)

// Ledger defaults.
const (
	DefaultKeyPrefix = "jtir:"
	DefaultTimeout   = 500 * time.Millisecond
	DefaultMaxTTL    = 365 * 24 * time.Hour
)

// Option configures a Ledger.
type Option func(*Ledger)

// WithKeyPrefix changes the namespace of revocation keys.
func WithKeyPrefix(prefix string) Option {
	return func(l *Ledger) { l.prefix = prefix }
}

// WithTimeout bounds every store call. Zero or negative disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(l *Ledger) { l.timeout = d }
}

// WithMaxTTL sets how long tokens without an exp claim stay revoked.
func WithMaxTTL(d time.Duration) Option {
	return func(l *Ledger) {
		if d > 0 {
			l.maxTTL = d
		}
	}
}

// WithClock sets the time source for revocation timestamps and exp math.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithLogger sets the logger. Nil keeps the discard logger.
func WithLogger(log *slog.Logger) Option {
	return func(l *Ledger) {
		if log != nil {
			l.logger = log
		}
	}
}
