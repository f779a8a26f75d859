package app

import (
	"os"
	"sync"

	"github.com/cockroachdb/errors"
	tea "github.com/charmbracelet/bubbletea"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/cadence/internal/dispatch"
	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/library"
	"github.com/llehouerou/cadence/internal/playlist"
	"github.com/llehouerou/cadence/internal/state"
)

var _ dispatch.Host = (*Host)(nil)

// Host carries out the commands that reach beyond the engine: library
// scans, playlist creation and quitting. Results are sent to the
// program as messages, so it may be called from any goroutine.
type Host struct {
	store       state.Interface
	playlistDir string

	mu   sync.Mutex
	lib  *library.Library
	send func(tea.Msg)

	scanMu sync.Mutex
	scans  sync.WaitGroup
}

// NewHost creates a host owning lib.
func NewHost(lib *library.Library, store state.Interface, playlistDir string) *Host {
	return &Host{
		store:       store,
		playlistDir: playlistDir,
		lib:         lib,
		send:        func(tea.Msg) {},
	}
}

// Attach routes messages to send, usually tea.Program.Send.
func (h *Host) Attach(send func(tea.Msg)) {
	h.mu.Lock()
	h.send = send
	h.mu.Unlock()
}

func (h *Host) emit(msg tea.Msg) {
	h.mu.Lock()
	send := h.send
	h.mu.Unlock()
	send(msg)
}

// Library returns the current library. It must not be modified.
func (h *Host) Library() *library.Library {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lib
}

// AddPath checks path exists and scans it in the background. Scans run
// one at a time on a copy that replaces the library once complete.
func (h *Host) AddPath(path string) error {
	if _, err := os.Stat(path); err != nil {
		return errors.Wrapf(err, "add %s", path)
	}
	h.scans.Add(1)
	go func() {
		defer h.scans.Done()
		h.scan(path)
	}()
	return nil
}

func (h *Host) scan(path string) {
	h.scanMu.Lock()
	defer h.scanMu.Unlock()

	lib := h.Library().Clone()
	added, err := lib.AddPath(path)
	if err != nil {
		h.Status(errmsg.FormatWith(errmsg.OpLibraryAdd, path, err))
		return
	}

	h.mu.Lock()
	h.lib = lib
	h.mu.Unlock()

	if added > 0 {
		if err := h.store.SaveLibrary(lib.Tracks()); err != nil {
			zlog.Warn().Err(err).Msg("host: saving library failed")
			h.Status(errmsg.Format(errmsg.OpLibrarySave, err))
		}
	}
	h.emit(LibraryMsg{Library: lib, Path: path, Added: added})
}

// Wait blocks until running scans are done.
func (h *Host) Wait() {
	h.scans.Wait()
}

// NewPlaylist creates an empty playlist file and reloads the list.
func (h *Host) NewPlaylist(name string) error {
	p, err := playlist.Create(h.playlistDir, name)
	if err != nil {
		return err
	}
	zlog.Info().Str("path", p.Path).Msg("host: playlist created")
	h.ReloadPlaylists()
	return nil
}

// ReloadPlaylists reads the playlist directory and sends the result.
func (h *Host) ReloadPlaylists() {
	playlists, err := playlist.LoadDir(h.playlistDir)
	if err != nil {
		h.Status(errmsg.Format(errmsg.OpPlaylistLoad, err))
		return
	}
	h.emit(PlaylistsMsg(playlists))
}

// PlaylistsChanged forwards a reloaded playlist list.
func (h *Host) PlaylistsChanged(playlists []*playlist.Playlist) {
	h.emit(PlaylistsMsg(playlists))
}

// Status shows an error message in the status line.
func (h *Host) Status(text string) {
	h.emit(StatusMsg{Text: text, Error: true})
}

// Quit ends the program.
func (h *Host) Quit() {
	h.emit(QuitMsg{})
}
