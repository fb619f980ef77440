package client

import (
	"log/slog"
	"time"
)

// NoticeDuration is how long terminal-failure notifications stay visible.
const NoticeDuration = 5 * time.Second

// Notifier surfaces terminal request failures to the user.
type Notifier interface {
	Notify(message string, duration time.Duration)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string, duration time.Duration)

// Notify implements Notifier
func (f NotifierFunc) Notify(message string, duration time.Duration) {
	f(message, duration)
}

// slogNotifier is the default sink when no UI is attached.
type slogNotifier struct {
	log *slog.Logger
}

func (n slogNotifier) Notify(message string, duration time.Duration) {
	n.log.Warn("notice", "message", message, "duration", duration)
}
