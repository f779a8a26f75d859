//go:build linux

package notify

import (
	"github.com/cockroachdb/errors"
	"github.com/godbus/dbus/v5"
	zlog "github.com/rs/zerolog/log"
)

const (
	busName   = "org.freedesktop.Notifications"
	busPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	appName   = "Cadence"
	desktopID = "cadence"
)

type busNotifier struct {
	obj dbus.BusObject
}

// New returns a Notifier on the session bus. Without a session bus it
// returns a Notifier that drops everything.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		zlog.Info().Err(err).Msg("notify: no session bus, notifications disabled")
		return discard{}, nil //nolint:nilerr // notifications are optional
	}
	return &busNotifier{obj: conn.Object(busName, busPath)}, nil
}

func (b *busNotifier) Notify(n Notification) (uint32, error) {
	var id uint32
	call := b.obj.Call(busName+".Notify", 0, notifyArgs(n)...)
	if err := call.Store(&id); err != nil {
		return 0, errors.Wrap(err, "notify")
	}
	return id, nil
}

func (b *busNotifier) Close(id uint32) error {
	return errors.Wrap(b.obj.Call(busName+".CloseNotification", 0, id).Err, "close notification")
}

// notifyArgs orders n as the Notify method expects: app name, replaced
// id, icon, summary, body, actions, hints, timeout.
func notifyArgs(n Notification) []any {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(desktopID),
	}
	return []any{appName, n.ReplacesID, n.Icon, n.Title, n.Body, []string{}, hints, n.Timeout}
}
