package app

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/llehouerou/cadence/internal/icons"
	"github.com/llehouerou/cadence/internal/keymap"
	"github.com/llehouerou/cadence/internal/library"
	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/playlist"
	"github.com/llehouerou/cadence/internal/state"
)

// panel is the part of list.Model the browser drives generically.
type panel interface {
	HandleAction(a keymap.Action) bool
	SetFocused(focused bool)
	SetSize(width, height int)
}

func albumLabel(a library.Album) string {
	if a.Year > 0 {
		return icons.FormatAlbum(fmt.Sprintf("%s (%d)", a.Name, a.Year))
	}
	return icons.FormatAlbum(a.Name)
}

func trackLabel(t library.Track) string {
	if t.Number > 0 {
		return icons.FormatTrack(fmt.Sprintf("%02d %s", t.Number, t.DisplayTitle()))
	}
	return icons.FormatTrack(t.DisplayTitle())
}

func playlistLabel(p *playlist.Playlist) string {
	return icons.FormatPlaylist(p.Name)
}

// panels returns the panels of the current screen, left to right.
func (m *Model) panels() []panel {
	switch m.screen {
	case ScreenMain:
		return []panel{&m.artists, &m.albums, &m.tracks}
	case ScreenPlaylists:
		return []panel{&m.playlists, &m.plTracks}
	}
	return nil
}

func (m *Model) applyFocus() {
	for _, p := range []panel{&m.artists, &m.albums, &m.tracks, &m.playlists, &m.plTracks} {
		p.SetFocused(false)
	}
	panels := m.panels()
	if len(panels) == 0 {
		return
	}
	m.focus = max(0, min(m.focus, len(panels)-1))
	panels[m.focus].SetFocused(true)
}

func (m *Model) cycleFocus(delta int) {
	n := len(m.panels())
	if n == 0 {
		return
	}
	m.focus = (m.focus + delta + n) % n
	m.applyFocus()
}

func (m *Model) setLibrary(lib *library.Library) {
	artist, _ := m.artists.Selected()
	album, _ := m.albums.Selected()
	track, _ := m.tracks.Selected()

	m.lib = lib
	m.artists.SetItems(lib.Artists())
	m.selectByName(artist.Name, album.Name, track.Path)
}

// selectByName moves the main browser to the named entries, falling
// back to the first row when one is gone.
func (m *Model) selectByName(artist, album, trackPath string) {
	m.artists.Select(lo.IndexOf(lo.Map(m.artists.Items(), func(a library.Artist, _ int) string {
		return a.Name
	}), artist))
	m.artistChanged()
	m.albums.Select(lo.IndexOf(lo.Map(m.albums.Items(), func(a library.Album, _ int) string {
		return a.Name
	}), album))
	m.albumChanged()
	m.tracks.Select(slices.IndexFunc(m.tracks.Items(), func(t library.Track) bool {
		return t.Path == trackPath
	}))
}

func (m *Model) artistChanged() {
	a, _ := m.artists.Selected()
	m.albums.SetItems(a.Albums)
	m.albums.Select(0)
	m.albumChanged()
}

func (m *Model) albumChanged() {
	a, _ := m.albums.Selected()
	m.tracks.SetItems(a.Tracks)
	m.tracks.Select(0)
}

func (m *Model) setPlaylists(playlists []*playlist.Playlist) {
	current, _ := m.playlists.Selected()
	m.playlists.SetItems(playlists)
	if current != nil {
		m.playlists.Select(slices.IndexFunc(playlists, func(p *playlist.Playlist) bool {
			return p.Path == current.Path
		}))
	}
	if m.target != "" && !slices.ContainsFunc(playlists, func(p *playlist.Playlist) bool {
		return p.Path == m.target
	}) {
		m.target = ""
	}
	m.playlistChanged()
}

func (m *Model) playlistChanged() {
	var tracks []library.Track
	if p, ok := m.playlists.Selected(); ok {
		tracks = p.Tracks
	}
	pos := m.plTracks.SelectedIndex()
	m.plTracks.SetItems(tracks)
	m.plTracks.Select(pos)
}

// selectionChanged refreshes the panels right of the focused one.
func (m *Model) selectionChanged() {
	switch {
	case m.screen == ScreenMain && m.focus == 0:
		m.artistChanged()
	case m.screen == ScreenMain && m.focus == 1:
		m.albumChanged()
	case m.screen == ScreenPlaylists && m.focus == 0:
		m.plTracks.Select(0)
		m.playlistChanged()
	}
}

// selection returns the queueable under the cursor of the focused panel.
// A track expands to the rest of its list, wrapped around, so play
// starts at the track and continues through its neighbours. With single
// set a track yields only itself.
func (m *Model) selection(single bool) (playback.Queueable, bool) {
	trackList := func(l []library.Track, i int) playback.Queueable {
		if single {
			return playback.TrackListOf([]library.Track{l[i]})
		}
		return playback.TrackListOf(Rotate(l, i))
	}

	switch m.screen {
	case ScreenMain:
		switch m.focus {
		case 0:
			a, ok := m.artists.Selected()
			return playback.ArtistOf(a), ok
		case 1:
			a, ok := m.albums.Selected()
			return playback.AlbumOf(a), ok
		case 2:
			if m.tracks.Len() == 0 {
				return playback.Queueable{}, false
			}
			return trackList(m.tracks.Items(), m.tracks.SelectedIndex()), true
		}
	case ScreenPlaylists:
		switch m.focus {
		case 0:
			p, ok := m.playlists.Selected()
			if !ok {
				return playback.Queueable{}, false
			}
			return playback.PlaylistOf(p.Tracks), true
		case 1:
			if m.plTracks.Len() == 0 {
				return playback.Queueable{}, false
			}
			return trackList(m.plTracks.Items(), m.plTracks.SelectedIndex()), true
		}
	}
	return playback.Queueable{}, false
}

// Rotate returns tracks[i:] followed by tracks[:i].
func Rotate(tracks []library.Track, i int) []library.Track {
	out := make([]library.Track, 0, len(tracks))
	out = append(out, tracks[i:]...)
	return append(out, tracks[:i]...)
}

func (m *Model) targetPlaylist() (*playlist.Playlist, bool) {
	return lo.Find(m.playlists.Items(), func(p *playlist.Playlist) bool {
		return p.Path == m.target
	})
}

func (m *Model) navigation() state.Navigation {
	nav := state.Navigation{View: string(m.screen)}
	if m.screen == ScreenHelp {
		nav.View = string(m.back)
	}
	if a, ok := m.artists.Selected(); ok {
		nav.Artist = a.Name
	}
	if a, ok := m.albums.Selected(); ok {
		nav.Album = a.Name
	}
	if t, ok := m.tracks.Selected(); ok {
		nav.TrackPath = t.Path
	}
	if p, ok := m.playlists.Selected(); ok {
		nav.Playlist = p.Path
	}
	return nav
}

func (m *Model) saveNavigation() {
	if m.store != nil {
		m.store.SaveNavigation(m.navigation())
	}
}

func (m *Model) restoreNavigation() {
	if m.store == nil {
		return
	}
	nav, err := m.store.GetNavigation()
	if err != nil || nav == nil {
		return
	}
	if Screen(nav.View) == ScreenPlaylists {
		m.screen = ScreenPlaylists
		m.back = ScreenPlaylists
	}
	m.selectByName(nav.Artist, nav.Album, nav.TrackPath)
	m.playlists.Select(slices.IndexFunc(m.playlists.Items(), func(p *playlist.Playlist) bool {
		return p.Path == nav.Playlist
	}))
	m.playlistChanged()
}
