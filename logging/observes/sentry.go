// Package observes forwards error-level log entries to Sentry.
package observes

import (
	"errors"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

type SentryOptions struct {
	Dsn         string
	Name        string
	Release     string
	Environment string
	SampleRate  float64
}

// NewSentry initializes the global Sentry client and returns a flush function.
func NewSentry(opt *SentryOptions) (func(), error) {
	if opt == nil || opt.Dsn == "" {
		return nil, errors.New("sentry dsn is empty")
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         opt.Dsn,
		ServerName:  opt.Name,
		Release:     opt.Release,
		Environment: opt.Environment,
		SampleRate:  opt.SampleRate,
	})
	if err != nil {
		return nil, err
	}

	return func() { sentry.Flush(2 * time.Second) }, nil
}

// SentryHook sends error, fatal and panic entries to Sentry.
type SentryHook struct {
	hub *sentry.Hub
}

// NewSentryHook creates a hook bound to the current Sentry hub.
func NewSentryHook() *SentryHook {
	return &SentryHook{hub: sentry.CurrentHub()}
}

func (h *SentryHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel}
}

func (h *SentryHook) Fire(entry *logrus.Entry) error {
	h.hub.WithScope(func(scope *sentry.Scope) {
		for k, v := range entry.Data {
			scope.SetExtra(k, v)
		}
		if traceID, ok := entry.Data["trace_id"].(string); ok {
			scope.SetTag("trace_id", traceID)
		}
		scope.SetLevel(sentryLevel(entry.Level))
		h.hub.CaptureMessage(entry.Message)
	})
	return nil
}

func sentryLevel(l logrus.Level) sentry.Level {
	switch l {
	case logrus.FatalLevel, logrus.PanicLevel:
		return sentry.LevelFatal
	default:
		return sentry.LevelError
	}
}
