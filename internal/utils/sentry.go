package utils

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

var sentryEnabled bool

// InitSentry initializes Sentry for error tracking. An empty DSN disables it.
func InitSentry(dsn, environment string) error {
	if dsn == "" {
		logrus.Info("Sentry disabled (SENTRY_DSN not set)")
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		EnableTracing:    true,
		TracesSampleRate: 0.2,
	})
	if err != nil {
		return fmt.Errorf("sentry.Init: %w", err)
	}

	sentryEnabled = true
	logrus.Info("Sentry initialized")
	return nil
}

// CaptureError reports an internal error with request tags when Sentry is on
func CaptureError(err error, tags map[string]string) {
	if !sentryEnabled || err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CaptureException(err)
	})
}

// FlushSentry waits for buffered events before shutdown
func FlushSentry(timeout time.Duration) {
	if sentryEnabled {
		sentry.Flush(timeout)
	}
}
