// Package observability provides the engine's structured logger.
//
// Logger wraps slog and optionally forwards captured errors to Sentry,
// rate-limited so a chart failing on every redraw does not flood the
// reporting backend.
package observability

import (
	"io"
	"log/slog"

	"github.com/getsentry/sentry-go"
)

// Params configures optional Logger behavior.
type Params struct {
	// Hub receives captured errors. Nil disables error reporting.
	Hub *sentry.Hub

	// CaptureLimit rate-limits repeated captures. Nil lets every
	// capture through.
	CaptureLimit *CaptureRateLimiter
}

// Logger is a slog.Logger that can additionally capture errors to Sentry.
type Logger struct {
	*slog.Logger

	hub          *sentry.Hub
	captureLimit *CaptureRateLimiter
}

// NewLogger wraps a slog logger.
func NewLogger(base *slog.Logger, params *Params) *Logger {
	if params == nil {
		params = &Params{}
	}
	return &Logger{
		Logger:       base,
		hub:          params.Hub,
		captureLimit: params.CaptureLimit,
	}
}

// NewNoOpLogger returns a logger that discards everything, for tests and
// for callers that leave logging unconfigured.
func NewNoOpLogger() *Logger {
	return NewLogger(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		nil,
	)
}

// With returns a derived logger that includes the given attributes in
// every message.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger:       l.Logger.With(args...),
		hub:          l.hub,
		captureLimit: l.captureLimit,
	}
}

// CaptureError logs an error and reports it to Sentry if configured.
func (l *Logger) CaptureError(err error, args ...any) {
	l.Error(err.Error(), args...)

	if l.hub != nil && l.captureLimit.Allow(err.Error()) {
		l.hub.CaptureException(err)
	}
}

// CaptureWarn logs a warning and reports it to Sentry if configured.
func (l *Logger) CaptureWarn(msg string, args ...any) {
	l.Warn(msg, args...)

	if l.hub != nil && l.captureLimit.Allow(msg) {
		l.hub.CaptureMessage(msg)
	}
}
