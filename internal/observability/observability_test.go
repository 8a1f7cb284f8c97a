package observability_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartlink/chartlink/internal/observability"
)

func newSentryLogger(t *testing.T) (*observability.Logger, *sentry.MockTransport) {
	t.Helper()

	transport := &sentry.MockTransport{}
	client, err := sentry.NewClient(sentry.ClientOptions{Transport: transport})
	require.NoError(t, err)

	limit, err := observability.NewCaptureRateLimiter(16, time.Minute)
	require.NoError(t, err)

	logger := observability.NewLogger(
		slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
		&observability.Params{
			Hub:          sentry.NewHub(client, sentry.NewScope()),
			CaptureLimit: limit,
		},
	)
	return logger, transport
}

func TestCaptureErrorLogsAndReports(t *testing.T) {
	logs := &bytes.Buffer{}
	transport := &sentry.MockTransport{}
	client, err := sentry.NewClient(sentry.ClientOptions{Transport: transport})
	require.NoError(t, err)

	logger := observability.NewLogger(
		slog.New(slog.NewTextHandler(logs, nil)),
		&observability.Params{Hub: sentry.NewHub(client, sentry.NewScope())},
	)

	logger.CaptureError(errors.New("drawer exploded"))

	assert.Contains(t, logs.String(), "drawer exploded")
	assert.Len(t, transport.Events(), 1)
}

func TestCaptureErrorWithoutHubOnlyLogs(t *testing.T) {
	logs := &bytes.Buffer{}
	logger := observability.NewLogger(
		slog.New(slog.NewTextHandler(logs, nil)), nil)

	assert.NotPanics(t, func() {
		logger.CaptureError(errors.New("no hub configured"))
	})
	assert.Contains(t, logs.String(), "no hub configured")
}

func TestRepeatedCapturesAreRateLimited(t *testing.T) {
	logger, transport := newSentryLogger(t)

	err := errors.New("same failure")
	logger.CaptureError(err)
	logger.CaptureError(err)
	logger.CaptureError(err)

	assert.Len(t, transport.Events(), 1)
}

func TestDistinctCapturesAreNotRateLimited(t *testing.T) {
	logger, transport := newSentryLogger(t)

	logger.CaptureError(errors.New("failure one"))
	logger.CaptureError(errors.New("failure two"))

	assert.Len(t, transport.Events(), 2)
}

func TestNilRateLimiterAllowsEverything(t *testing.T) {
	var limit *observability.CaptureRateLimiter

	assert.True(t, limit.Allow("anything"))
	assert.True(t, limit.Allow("anything"))
}

func TestWithAddsAttributes(t *testing.T) {
	logs := &bytes.Buffer{}
	logger := observability.NewLogger(
		slog.New(slog.NewTextHandler(logs, nil)), nil)

	logger.With("chart", "bar-1").Info("redraw complete")

	assert.Contains(t, logs.String(), "chart=bar-1")
}

func TestNoOpLoggerDiscards(t *testing.T) {
	logger := observability.NewNoOpLogger()

	assert.NotPanics(t, func() {
		logger.Info("into the void")
		logger.CaptureWarn("still nothing")
	})
}
