// Package notify delivers user-facing notifications: toasts collected for
// the terminal UI and, on Linux, desktop notifications via D-Bus.
package notify

// Urgency is the freedesktop notification urgency level.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a user notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional)
	Icon       string  // Icon name (desktop only)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// Multi fans a notification out to several notifiers.
// The first error is returned; every notifier is still tried.
type Multi []Notifier

func (m Multi) Notify(n Notification) (uint32, error) {
	var id uint32
	var firstErr error
	for _, nt := range m {
		got, err := nt.Notify(n)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if id == 0 {
			id = got
		}
	}
	return id, firstErr
}

func (m Multi) Close(id uint32) error {
	var firstErr error
	for _, nt := range m {
		if err := nt.Close(id); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Notify(Notification) (uint32, error) { return 0, nil }

func (Nop) Close(uint32) error { return nil }
