package session

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	cfg "github.com/automoto/duelsync/config"
)

// NewLogger returns a logger configured from cfg.Telemetry.
func NewLogger() (*logrus.Logger, error) {
	lg := logrus.New()
	lg.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	level, err := logrus.ParseLevel(cfg.Telemetry.LogLevel)
	if err != nil {
		return lg, fmt.Errorf("log level: %w", err)
	}
	lg.SetLevel(level)
	return lg, nil
}

// InitSentry enables crash reporting when a DSN is configured. The
// returned func flushes pending events and is safe to call either way.
func InitSentry() (func(), error) {
	if cfg.Telemetry.SentryDSN == "" {
		return func() {}, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.Telemetry.SentryDSN,
		Environment: cfg.Telemetry.Environment,
	})
	if err != nil {
		return func() {}, fmt.Errorf("sentry init: %w", err)
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}
