// Package app is the terminal front-end: library and playlist browsers,
// the player bar and the command line. It only reads playback state and
// pushes commands; the dispatch loop does the rest.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/command"
	"github.com/llehouerou/cadence/internal/icons"
	"github.com/llehouerou/cadence/internal/keymap"
	"github.com/llehouerou/cadence/internal/library"
	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/playlist"
	"github.com/llehouerou/cadence/internal/state"
	"github.com/llehouerou/cadence/internal/ui/help"
	"github.com/llehouerou/cadence/internal/ui/list"
	"github.com/llehouerou/cadence/internal/ui/prompt"
)

// Screen identifies what fills the browser area.
type Screen string

const (
	ScreenMain      Screen = "main"
	ScreenPlaylists Screen = "playlists"
	ScreenHelp      Screen = "help"
)

// Options wires the model to the rest of the program.
type Options struct {
	State     *playback.Shared
	Commands  *command.Queue
	Store     state.Interface
	Library   *library.Library
	Playlists []*playlist.Playlist
	Bindings  []keymap.Binding
	// Tick is the redraw period. Defaults to 100ms.
	Tick time.Duration
}

// Model is the root bubbletea model.
type Model struct {
	state    *playback.Shared
	commands *command.Queue
	store    state.Interface
	resolver *keymap.Resolver
	tick     time.Duration

	lib *library.Library

	screen Screen
	back   Screen // screen to return to from help
	focus  int    // focused panel of the current screen

	artists   list.Model[library.Artist]
	albums    list.Model[library.Album]
	tracks    list.Model[library.Track]
	playlists list.Model[*playlist.Playlist]
	plTracks  list.Model[library.Track]
	target    string // path of the playlist add_to_playlist writes to

	help   help.Model
	prompt prompt.Model

	snap     playback.Snapshot
	status   StatusMsg
	statusAt time.Time

	width, height int
}

// New builds the model and restores the saved browser position.
func New(opts Options) Model {
	bindings := opts.Bindings
	if bindings == nil {
		bindings = keymap.Bindings
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = 100 * time.Millisecond
	}
	lib := opts.Library
	if lib == nil {
		lib = library.New()
	}

	m := Model{
		state:    opts.State,
		commands: opts.Commands,
		store:    opts.Store,
		resolver: keymap.NewResolver(bindings),
		tick:     tick,
		screen:   ScreenMain,
		back:     ScreenMain,

		artists: list.New("Artists", func(a library.Artist) string {
			return icons.FormatArtist(a.Name)
		}),
		albums:    list.New("Albums", albumLabel),
		tracks:    list.New("Tracks", trackLabel),
		playlists: list.New("Playlists", playlistLabel),
		plTracks:  list.New("Tracks", trackLabel),

		help:   help.New(bindings),
		prompt: prompt.New(),
	}
	m.setLibrary(lib)
	m.setPlaylists(opts.Playlists)
	m.restoreNavigation()
	m.applyFocus()
	return m
}

// Init starts the redraw ticker.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tick)
}
