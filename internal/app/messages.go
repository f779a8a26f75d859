package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/library"
	"github.com/llehouerou/cadence/internal/playlist"
)

// statusTTL is how long a status message stays on screen.
const statusTTL = 5 * time.Second

// TickMsg triggers a redraw from a fresh playback snapshot.
type TickMsg time.Time

// StatusMsg shows a message in the status line.
type StatusMsg struct {
	Text  string
	Error bool
}

// LibraryMsg replaces the browsed library after a scan.
type LibraryMsg struct {
	Library *library.Library
	Path    string
	Added   int
}

// PlaylistsMsg replaces the playlist list.
type PlaylistsMsg []*playlist.Playlist

// QuitMsg ends the program.
type QuitMsg struct{}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
