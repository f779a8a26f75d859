// Package notify sends "now playing" desktop notifications.
package notify

import (
	"strings"

	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/cadence/internal/library"
	"github.com/llehouerou/cadence/internal/playback"
)

// Urgency represents notification priority levels per freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

type discard struct{}

func (discard) Notify(Notification) (uint32, error) { return 0, nil }
func (discard) Close(uint32) error                  { return nil }

const nowPlayingTimeout = 5000

// NowPlaying builds the notification announcing track.
func NowPlaying(track library.Track) Notification {
	var body []string
	if track.Artist != "" {
		body = append(body, track.Artist)
	}
	if track.Album != "" {
		body = append(body, track.Album)
	}
	return Notification{
		Title:   track.DisplayTitle(),
		Body:    strings.Join(body, " · "),
		Icon:    library.CoverArt(track.Path),
		Timeout: nowPlayingTimeout,
		Urgency: UrgencyLow,
	}
}

// Follow announces every track change on sub until it is closed. Each
// notification replaces the previous one.
func Follow(sub *playback.Subscription, n Notifier) {
	var lastID uint32
	for {
		select {
		case <-sub.Done:
			return
		case ev := <-sub.TrackChanged:
			notif := NowPlaying(ev.Current)
			notif.ReplacesID = lastID
			id, err := n.Notify(notif)
			if err != nil {
				zlog.Debug().Err(err).Str("path", ev.Current.Path).Msg("notify: send failed")
				continue
			}
			lastID = id
		}
	}
}
