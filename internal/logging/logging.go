// Package logging builds the logrus logger used across the CLI.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"taskmgr/internal/config"
)

// New returns a logger writing to w at the level implied by cfg.
// --debug wins over --quiet; --quiet raises the level to warn.
func New(cfg *config.Config, w io.Writer) *log.Logger {
	logger := log.New()
	logger.SetOutput(w)
	logger.SetFormatter(&log.TextFormatter{
		DisableQuote:    true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	logger.SetLevel(Level(cfg))
	return logger
}

// Level resolves the effective log level.
func Level(cfg *config.Config) log.Level {
	if cfg.Debug {
		return log.DebugLevel
	}
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.LogLevel)))
	if err != nil {
		level = log.InfoLevel
	}
	if cfg.Quiet && level > log.WarnLevel {
		level = log.WarnLevel
	}
	return level
}

// AttachSentry installs a Sentry hook when SENTRY_DSN is set.
// The returned function flushes pending events and is safe to call
// when no hook was installed.
func AttachSentry(logger *log.Logger, release string) (func(), error) {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		return func() {}, nil
	}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:              dsn,
		Release:          release,
		AttachStacktrace: true,
		Debug:            os.Getenv("SENTRY_DEBUG") == "true",
	})
	if err != nil {
		return func() {}, err
	}

	hub := sentry.NewHub(client, sentry.NewScope())
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("module", config.AppName)
	})
	logger.AddHook(NewSentryHook(hub))

	return func() { hub.Flush(2 * time.Second) }, nil
}
