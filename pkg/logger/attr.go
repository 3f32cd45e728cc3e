package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component names the subsystem producing the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// TokenID records a token's jti claim.
func TokenID(jti string) slog.Attr {
	return optionalString("token_id", jti)
}

// TenantID records the tenant a token was issued by.
func TenantID(id string) slog.Attr {
	return optionalString("tenant_id", id)
}

// UserID records the token subject.
func UserID(id string) slog.Attr {
	return optionalString("user_id", id)
}

// Algorithm records a signing algorithm identifier.
func Algorithm(name string) slog.Attr {
	return optionalString("algorithm", name)
}

// Duration logs d under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Event records a short machine-readable event name.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

func optionalString(key, value string) slog.Attr {
	if value == "" {
		return slog.Attr{}
	}
	return slog.String(key, value)
}
