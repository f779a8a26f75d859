// Package command defines the requests control surfaces send to the
// dispatch loop and the queue carrying them.
package command

import (
	"github.com/llehouerou/cadence/internal/library"
	"github.com/llehouerou/cadence/internal/playback"
)

// Kind identifies a command.
type Kind int

const (
	Nop Kind = iota
	Quit
	Play
	Pause
	Stop
	TogglePlay
	ToggleShuffle
	ToggleRepeat
	EnqueueAndPlay
	Enqueue
	PlayTrack
	PlayPath
	NextTrack
	PrevTrack
	AddPath
	NewPlaylist
	GotoScreen
)

// Screen names carried by GotoScreen.
const (
	ScreenMain      = "main"
	ScreenPlaylists = "playlists"
	ScreenHelp      = "help"
)

var kindNames = [...]string{
	Nop:            "Nop",
	Quit:           "Quit",
	Play:           "Play",
	Pause:          "Pause",
	Stop:           "Stop",
	TogglePlay:     "TogglePlay",
	ToggleShuffle:  "ToggleShuffle",
	ToggleRepeat:   "ToggleRepeat",
	EnqueueAndPlay: "EnqueueAndPlay",
	Enqueue:        "Enqueue",
	PlayTrack:      "PlayTrack",
	PlayPath:       "PlayPath",
	NextTrack:      "NextTrack",
	PrevTrack:      "PrevTrack",
	AddPath:        "AddPath",
	NewPlaylist:    "NewPlaylist",
	GotoScreen:     "GotoScreen",
}

// String returns the command name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Command is one request for the dispatch loop. Only the payload field
// matching Kind is set.
type Command struct {
	Kind Kind
	// Queueable for EnqueueAndPlay and Enqueue.
	Queueable playback.Queueable
	// Track for PlayTrack.
	Track library.Track
	// Arg is the path for PlayPath and AddPath, the name for NewPlaylist
	// (empty asks the user for one) and the screen for GotoScreen.
	Arg string
}

// New returns a command without payload.
func New(k Kind) Command {
	return Command{Kind: k}
}

// EnqueueAndPlayOf returns a command replacing the queue with q.
func EnqueueAndPlayOf(q playback.Queueable) Command {
	return Command{Kind: EnqueueAndPlay, Queueable: q}
}

// EnqueueOf returns a command appending q to the queue.
func EnqueueOf(q playback.Queueable) Command {
	return Command{Kind: Enqueue, Queueable: q}
}

// PlayTrackOf returns a command playing t immediately.
func PlayTrackOf(t library.Track) Command {
	return Command{Kind: PlayTrack, Track: t}
}

// Local reports whether c is handled by the interface that parsed it
// rather than by the dispatch loop.
func (c Command) Local() bool {
	return c.Kind == GotoScreen || (c.Kind == NewPlaylist && c.Arg == "")
}

// WithArg returns a command carrying a path or a name.
func WithArg(k Kind, arg string) Command {
	return Command{Kind: k, Arg: arg}
}
