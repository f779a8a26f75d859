//go:build linux

// Package mpris exposes the player on the D-Bus session bus as
// org.mpris.MediaPlayer2.cadence.
package mpris

import (
	"github.com/cockroachdb/errors"
	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/cadence/internal/command"
	"github.com/llehouerou/cadence/internal/playback"
)

const busName = "cadence"

// sessionBus is swapped in tests.
var sessionBus = dbus.SessionBus

// Adapter connects the playback state and command queue to MPRIS.
type Adapter struct {
	server *server.Server
	events *events.EventHandler
	sub    *playback.Subscription
	done   chan struct{}
}

// New starts serving MPRIS. Method calls become commands pushed onto
// commands; property reads take snapshots of state. Changes announced on
// sub, and shuffle or loop writes from MPRIS clients, are forwarded as
// PropertiesChanged signals. It fails when no session bus is reachable.
func New(state *playback.Shared, commands *command.Queue, sub *playback.Subscription) (*Adapter, error) {
	if _, err := sessionBus(); err != nil {
		return nil, errors.Wrap(err, "connect session bus")
	}

	a := &Adapter{
		sub:  sub,
		done: make(chan struct{}),
	}

	root := &rootAdapter{commands: commands}
	player := &playerAdapter{state: state, commands: commands}
	player.optionsChanged = a.emitOptions

	a.server = server.NewServer(busName, root, player)
	a.events = events.NewEventHandler(a.server)

	go func() {
		if err := a.server.Listen(); err != nil {
			zlog.Warn().Err(err).Msg("mpris: server stopped")
		}
	}()
	go a.forward()

	return a, nil
}

// forward relays engine events until the subscription or the adapter
// is closed.
func (a *Adapter) forward() {
	for {
		var err error
		select {
		case <-a.done:
			return
		case <-a.sub.Done:
			return
		case <-a.sub.StatusChanged:
			err = a.events.Player.OnPlayPause()
		case <-a.sub.TrackChanged:
			err = a.events.Player.OnTitle()
		case <-a.sub.ModeChanged:
			err = a.events.Player.OnOptions()
		}
		if err != nil {
			zlog.Debug().Err(err).Msg("mpris: emit properties changed")
		}
	}
}

func (a *Adapter) emitOptions() {
	if err := a.events.Player.OnOptions(); err != nil {
		zlog.Debug().Err(err).Msg("mpris: emit options changed")
	}
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	close(a.done)
	return a.server.Stop()
}
