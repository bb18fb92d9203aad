package client

import log "github.com/sirupsen/logrus"

// Notifier receives non-blocking, user-facing notices (toast analogue).
// Implementations must not block; they are called from request goroutines.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// LogNotifier writes notices to the structured log. It is the default when no
// UI-bound notifier is injected.
type LogNotifier struct{}

func (LogNotifier) Success(msg string) { log.WithField("notice", "success").Info(msg) }
func (LogNotifier) Error(msg string)   { log.WithField("notice", "error").Warn(msg) }
func (LogNotifier) Info(msg string)    { log.WithField("notice", "info").Info(msg) }
