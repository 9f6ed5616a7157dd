package app

import (
	"time"

	"github.com/llehouerou/dancefloor/internal/errmsg"
	"github.com/llehouerou/dancefloor/internal/notify"
)

const (
	toastTTL  = 6 * time.Second
	maxToasts = 3
)

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastError
)

type toast struct {
	text  string
	level toastLevel
	at    time.Time
}

func (m *Model) pushToast(text string, level toastLevel) {
	if text == "" {
		return
	}
	m.toasts = append(m.toasts, toast{text: text, level: level, at: m.now})
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}
}

func (m *Model) pushError(op errmsg.Op, context string, err error) {
	m.deps.Logger.Error().Err(err).Str("op", string(op)).Str("context", context).Msg("operation failed")
	m.pushToast(errmsg.FormatWith(op, context, err), toastError)
}

// drainNotifications moves collected notifications into toasts.
func (m *Model) drainNotifications() {
	if m.deps.Toasts == nil {
		return
	}
	for _, n := range m.deps.Toasts.Drain() {
		text := n.Title
		if n.Body != "" {
			text += ": " + n.Body
		}
		level := toastInfo
		if n.Urgency >= notify.UrgencyNormal {
			level = toastError
		}
		m.pushToast(text, level)
	}
}

func (m *Model) expireToasts() {
	var kept []toast
	for _, t := range m.toasts {
		if m.now.Sub(t.at) < toastTTL {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

// dismissToast drops the oldest toast.
func (m *Model) dismissToast() {
	if len(m.toasts) > 0 {
		m.toasts = m.toasts[1:]
	}
}
