// Package observabilitytest provides loggers for use in tests.
package observabilitytest

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/chartlink/chartlink/internal/observability"
)

// NewTestLogger returns a logger captured by the testing framework, so
// messages show up in the output of failing tests.
func NewTestLogger(t *testing.T) *observability.Logger {
	t.Helper()
	return observability.NewLogger(
		slog.New(slog.NewTextHandler(t.Output(), nil)),
		nil,
	)
}

// NewRecordingTestLogger is like NewTestLogger but also returns a buffer
// holding everything that was logged.
func NewRecordingTestLogger(t *testing.T) (
	*observability.Logger,
	*bytes.Buffer,
) {
	t.Helper()

	recorded := &bytes.Buffer{}
	writer := io.MultiWriter(t.Output(), recorded)

	return observability.NewLogger(
		slog.New(slog.NewTextHandler(writer, nil)),
		nil,
	), recorded
}
