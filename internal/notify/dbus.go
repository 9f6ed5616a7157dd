//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

const (
	fdoDest   = "org.freedesktop.Notifications"
	fdoPath   = "/org/freedesktop/Notifications"
	fdoNotify = fdoDest + ".Notify"
	fdoClose  = fdoDest + ".CloseNotification"

	appName = "dancefloor"
)

// caller is the part of dbus.BusObject the desktop notifier uses.
type caller interface {
	Call(method string, flags dbus.Flags, args ...any) *dbus.Call
}

// desktop shows notifications through the freedesktop notification
// service on the session bus.
type desktop struct {
	obj caller
}

// New returns a desktop notifier, or Nop when there is no session bus.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return Nop{}, nil //nolint:nilerr // headless sessions run without desktop notifications
	}
	return &desktop{obj: conn.Object(fdoDest, fdoPath)}, nil
}

func (d *desktop) Notify(n Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(appName),
	}
	call := d.obj.Call(fdoNotify, 0,
		appName, n.ReplacesID, n.Icon, n.Title, n.Body,
		[]string{}, hints, n.Timeout,
	)
	if call.Err != nil {
		return 0, call.Err
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (d *desktop) Close(id uint32) error {
	return d.obj.Call(fdoClose, 0, id).Err
}
