package app

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/cadence/internal/keymap"
	"github.com/llehouerou/cadence/internal/library"
	"github.com/llehouerou/cadence/internal/ui/headerbar"
	"github.com/llehouerou/cadence/internal/ui/playerbar"
	"github.com/llehouerou/cadence/internal/ui/render"
	"github.com/llehouerou/cadence/internal/ui/styles"
)

const statusHeight = 1

func (m Model) bodyHeight() int {
	return max(m.height-headerbar.Height-playerbar.Height-statusHeight, 0)
}

// layout sizes every panel for the current window.
func (m *Model) layout() {
	h := m.bodyHeight()

	quarter := m.width / 4
	m.artists.SetSize(quarter, h)
	m.albums.SetSize(quarter, h)
	m.tracks.SetSize(m.width-2*quarter, h)

	third := m.width / 3
	m.playlists.SetSize(third, h)
	m.plTracks.SetSize(m.width-third, h)

	m.help.SetSize(m.width, h)
	m.prompt.SetWidth(m.width)
}

// View renders the screen.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderBody(),
		playerbar.Render(m.snap, m.width),
		m.renderStatus(),
	)
}

func (m Model) renderHeader() string {
	tab := func(a keymap.Action, name string, s Screen) headerbar.Tab {
		key := ""
		if keys := m.resolver.KeysFor(a); len(keys) > 0 {
			key = keymap.DisplayKey(keys[0])
		}
		return headerbar.Tab{Key: key, Name: name, Active: m.screen == s}
	}
	return headerbar.Render([]headerbar.Tab{
		tab(keymap.ActionViewMain, "Library", ScreenMain),
		tab(keymap.ActionViewPlaylists, "Playlists", ScreenPlaylists),
		tab(keymap.ActionHelp, "Help", ScreenHelp),
	}, m.width)
}

func (m Model) renderBody() string {
	playing := func(tr library.Track) bool {
		return m.snap.Track != nil && m.snap.Track.Path == tr.Path
	}
	switch m.screen {
	case ScreenPlaylists:
		return lipgloss.JoinHorizontal(lipgloss.Top,
			m.playlists.View(nil),
			m.plTracks.View(playing),
		)
	case ScreenHelp:
		return m.help.View()
	default:
		return lipgloss.JoinHorizontal(lipgloss.Top,
			m.artists.View(func(a library.Artist) bool {
				return m.snap.Track != nil && a.Name == m.snap.Track.Artist
			}),
			m.albums.View(func(a library.Album) bool {
				return m.snap.Track != nil && a.Name == m.snap.Track.Album
			}),
			m.tracks.View(playing),
		)
	}
}

func (m Model) renderStatus() string {
	if m.prompt.Active() {
		return m.prompt.View()
	}
	s := styles.T().S()
	if m.status.Text != "" {
		text := render.Truncate(m.status.Text, m.width)
		if m.status.Error {
			return s.Error.Render(text)
		}
		return s.Success.Render(text)
	}

	stats := humanize.Comma(int64(m.lib.Len())) + " tracks · " +
		humanize.Comma(int64(max(len(m.lib.Artists())-1, 0))) + " artists · " +
		humanize.Comma(int64(m.playlists.Len())) + " playlists"
	right := ""
	if p, ok := m.targetPlaylist(); ok {
		right = "→ " + p.Name
	}
	return s.Muted.Render(render.Row(stats, right, m.width))
}
