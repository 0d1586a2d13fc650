package logging

import (
	"errors"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
)

// SentryHook forwards error-level log entries to a Sentry hub.
type SentryHook struct {
	hub *sentry.Hub
}

// NewSentryHook creates a hook for hub.
func NewSentryHook(hub *sentry.Hub) *SentryHook {
	return &SentryHook{hub: hub}
}

// Levels implements log.Hook.
func (h *SentryHook) Levels() []log.Level {
	return []log.Level{log.PanicLevel, log.FatalLevel, log.ErrorLevel}
}

// Fire implements log.Hook.
func (h *SentryHook) Fire(entry *log.Entry) error {
	if h.hub == nil {
		return nil
	}

	err, _ := entry.Data[log.ErrorKey].(error)
	if err == nil {
		err = errors.New(entry.Message)
	}

	h.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelError)
		scope.SetExtra("message", entry.Message)
		for k, v := range entry.Data {
			if k == log.ErrorKey {
				continue
			}
			scope.SetExtra(k, v)
		}
		h.hub.CaptureException(err)
	})
	return nil
}
