//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/cadence/internal/command"
	"github.com/llehouerou/cadence/internal/library"
	"github.com/llehouerou/cadence/internal/playback"
)

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct {
	commands *command.Queue
}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	r.commands.Push(command.New(command.Quit))
	return nil
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return true, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Cadence", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/ogg", "audio/wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter plus the
// loop status and shuffle extensions. Transport calls are queued and
// applied by the dispatch loop on its next tick.
type playerAdapter struct {
	state    *playback.Shared
	commands *command.Queue
	// optionsChanged announces shuffle and loop writes made over MPRIS,
	// which bypass the engine and so emit no engine event.
	optionsChanged func()
}

func (p *playerAdapter) announceOptions() {
	if p.optionsChanged != nil {
		p.optionsChanged()
	}
}

func (p *playerAdapter) push(k command.Kind) error {
	p.commands.Push(command.New(k))
	return nil
}

func (p *playerAdapter) Next() error      { return p.push(command.NextTrack) }
func (p *playerAdapter) Previous() error  { return p.push(command.PrevTrack) }
func (p *playerAdapter) Pause() error     { return p.push(command.Pause) }
func (p *playerAdapter) PlayPause() error { return p.push(command.TogglePlay) }
func (p *playerAdapter) Stop() error      { return p.push(command.Stop) }
func (p *playerAdapter) Play() error      { return p.push(command.Play) }

func (p *playerAdapter) Seek(_ types.Microseconds) error {
	return nil // Not supported
}

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error {
	return nil // Not supported
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.state.Snapshot().Status() {
	case playback.StatusPlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatusPaused:
		return types.PlaybackStatusPaused, nil
	default:
		return types.PlaybackStatusStopped, nil
	}
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	snap := p.state.Snapshot()
	if snap.Track == nil {
		return types.Metadata{}, nil
	}
	return metadata(*snap.Track, snap), nil
}

func metadata(track library.Track, snap playback.Snapshot) types.Metadata {
	meta := types.Metadata{
		TrackId:     dbus.ObjectPath(formatTrackID(track.Path)),
		Length:      types.Microseconds(snap.Length.Microseconds()),
		Title:       track.DisplayTitle(),
		Artist:      []string{track.Artist},
		Album:       track.Album,
		TrackNumber: track.Number,
	}
	if art := library.CoverArt(track.Path); art != "" {
		meta.ArtUrl = "file://" + art
	}
	return meta
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	snap := p.state.Snapshot()
	if !snap.HasProgress {
		return 0, nil
	}
	return snap.Progress.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.state.Snapshot().Track != nil, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	switch p.state.Snapshot().Repeat {
	case playback.RepeatOne:
		return types.LoopStatusTrack, nil
	case playback.RepeatAll:
		return types.LoopStatusPlaylist, nil
	default:
		return types.LoopStatusNone, nil
	}
}

// SetLoopStatus writes the repeat mode directly, without queueing.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	switch status {
	case types.LoopStatusNone:
		p.state.SetRepeat(playback.RepeatOff)
	case types.LoopStatusTrack:
		p.state.SetRepeat(playback.RepeatOne)
	case types.LoopStatusPlaylist:
		p.state.SetRepeat(playback.RepeatAll)
	default:
		return nil
	}
	p.announceOptions()
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.state.Snapshot().Shuffle, nil
}

// SetShuffle writes the flag only; the queue order is untouched.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	p.state.SetShuffle(shuffle)
	p.announceOptions()
	return nil
}

func formatTrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
