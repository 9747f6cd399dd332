package contextutil

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	loggerKey       contextKey = "logger"
	principalKey    contextKey = "principal"
	capabilitiesKey contextKey = "capabilities"
)

// WithLogger returns a context carrying the given logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts a logger from context if available, otherwise returns the default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctxLogger := ctx.Value(loggerKey); ctxLogger != nil {
		if l, ok := ctxLogger.(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}

// WithPrincipal returns a context carrying the acting principal's identifier.
// Authentication itself happens outside this process; the transport layer
// forwards whatever identity the gateway established.
func WithPrincipal(ctx context.Context, principal string) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// PrincipalFromContext extracts the acting principal from context.
// Returns the empty string if no principal was set.
func PrincipalFromContext(ctx context.Context) string {
	if v := ctx.Value(principalKey); v != nil {
		if p, ok := v.(string); ok {
			return p
		}
	}
	return ""
}

// WithCapabilities returns a context carrying the capability set granted to
// the caller by the external authorization gate.
func WithCapabilities(ctx context.Context, caps []string) context.Context {
	return context.WithValue(ctx, capabilitiesKey, caps)
}

// CapabilitiesFromContext extracts the caller's capability set from context.
// Returns nil if none was set.
func CapabilitiesFromContext(ctx context.Context) []string {
	if v := ctx.Value(capabilitiesKey); v != nil {
		if caps, ok := v.([]string); ok {
			return caps
		}
	}
	return nil
}
