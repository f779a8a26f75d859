package app

import (
	"time"

	"github.com/cockroachdb/errors"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/cadence/internal/command"
	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/keymap"
	"github.com/llehouerou/cadence/internal/playlist"
	"github.com/llehouerou/cadence/internal/ui/prompt"
)

// errNoTarget is reported by add_to_playlist before a target is chosen.
var errNoTarget = errors.New("no target playlist, select one first")

// Update handles a message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case TickMsg:
		if m.state != nil {
			m.snap = m.state.Snapshot()
		}
		if m.status.Text != "" && time.Time(msg).Sub(m.statusAt) > statusTTL {
			m.status = StatusMsg{}
		}
		return m, tickCmd(m.tick)

	case StatusMsg:
		m.setStatus(msg)
		return m, nil

	case LibraryMsg:
		m.setLibrary(msg.Library)
		m.setStatus(StatusMsg{Text: "Added " + humanize.Comma(int64(msg.Added)) + " tracks from " + msg.Path})
		return m, nil

	case PlaylistsMsg:
		m.setPlaylists(msg)
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case prompt.SubmitMsg:
		return m, m.submit(msg)

	case prompt.CancelMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.prompt.Active() {
		return m, m.prompt.Update(msg)
	}
	return m, nil
}

func (m *Model) setStatus(s StatusMsg) {
	m.status = s
	m.statusAt = time.Now()
}

func (m *Model) push(c command.Command) {
	if m.commands != nil {
		m.commands.Push(c)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt.Active() {
		return m, m.prompt.Update(msg)
	}
	if m.screen == ScreenHelp && msg.Type == tea.KeyEsc {
		m.screen = m.back
		m.applyFocus()
		return m, nil
	}

	action := m.resolver.Resolve(msg.String())
	switch action {
	case keymap.ActionQuit:
		m.push(command.New(command.Quit))
		return m, nil
	case keymap.ActionHelp:
		m.toggleHelp()
		return m, nil
	case keymap.ActionViewMain:
		m.show(ScreenMain)
		return m, nil
	case keymap.ActionViewPlaylists:
		m.show(ScreenPlaylists)
		return m, nil
	case keymap.ActionCommand:
		m.prompt.SetWidth(m.width)
		return m, m.prompt.Open(prompt.Command)

	case keymap.ActionPlayPause:
		m.push(command.New(command.TogglePlay))
		return m, nil
	case keymap.ActionStop:
		m.push(command.New(command.Stop))
		return m, nil
	case keymap.ActionNextTrack:
		m.push(command.New(command.NextTrack))
		return m, nil
	case keymap.ActionPrevTrack:
		m.push(command.New(command.PrevTrack))
		return m, nil
	case keymap.ActionCycleRepeat:
		m.push(command.New(command.ToggleRepeat))
		return m, nil
	case keymap.ActionToggleShuffle:
		m.push(command.New(command.ToggleShuffle))
		return m, nil
	}

	if m.screen == ScreenHelp {
		m.help.HandleAction(action)
		return m, nil
	}
	return m.handleBrowserAction(action)
}

func (m Model) handleBrowserAction(action keymap.Action) (tea.Model, tea.Cmd) {
	switch action {
	case keymap.ActionNextPanel:
		m.cycleFocus(1)
	case keymap.ActionPrevPanel:
		m.cycleFocus(-1)

	case keymap.ActionMoveUp, keymap.ActionMoveDown, keymap.ActionJumpStart, keymap.ActionJumpEnd:
		if panels := m.panels(); len(panels) > 0 && panels[m.focus].HandleAction(action) {
			m.selectionChanged()
			m.saveNavigation()
		}

	case keymap.ActionSelect:
		if q, ok := m.selection(false); ok {
			m.push(command.EnqueueAndPlayOf(q))
		}
	case keymap.ActionAdd:
		if q, ok := m.selection(true); ok {
			m.push(command.EnqueueOf(q))
			m.setStatus(StatusMsg{Text: "Queued " + humanize.Comma(int64(len(q.Tracks()))) + " tracks"})
		}

	case keymap.ActionNewPlaylist:
		m.prompt.SetWidth(m.width)
		return m, m.prompt.Open(prompt.NewPlaylist)
	case keymap.ActionSelectPlaylist:
		if m.screen == ScreenPlaylists {
			if p, ok := m.playlists.Selected(); ok {
				m.target = p.Path
				m.setStatus(StatusMsg{Text: "Adding to " + p.Name})
			}
		}
	case keymap.ActionAddToPlaylist:
		m.addToTarget()
	}
	return m, nil
}

func (m *Model) toggleHelp() {
	if m.screen == ScreenHelp {
		m.screen = m.back
	} else {
		m.back = m.screen
		m.screen = ScreenHelp
	}
	m.applyFocus()
}

func (m *Model) show(s Screen) {
	if m.screen == s {
		return
	}
	m.screen = s
	m.back = s
	m.focus = 0
	m.applyFocus()
	m.saveNavigation()
}

// addToTarget appends the selection to the target playlist and saves it.
func (m *Model) addToTarget() {
	target, ok := m.targetPlaylist()
	if !ok {
		m.setStatus(StatusMsg{Text: errmsg.Format(errmsg.OpPlaylistAddTrack, errNoTarget), Error: true})
		return
	}
	q, ok := m.selection(true)
	if !ok {
		return
	}
	tracks := q.Tracks()

	updated := &playlist.Playlist{Name: target.Name, Path: target.Path}
	updated.Add(target.Tracks...)
	updated.Add(tracks...)
	if err := updated.Save(target.Path); err != nil {
		zlog.Warn().Err(err).Str("path", target.Path).Msg("app: saving playlist failed")
		m.setStatus(StatusMsg{Text: errmsg.FormatWith(errmsg.OpPlaylistAddTrack, target.Name, err), Error: true})
		return
	}

	items := make([]*playlist.Playlist, 0, m.playlists.Len())
	for _, p := range m.playlists.Items() {
		if p.Path == updated.Path {
			p = updated
		}
		items = append(items, p)
	}
	m.setPlaylists(items)
	m.setStatus(StatusMsg{Text: "Added " + humanize.Comma(int64(len(tracks))) + " tracks to " + target.Name})
}

func (m *Model) submit(s prompt.SubmitMsg) tea.Cmd {
	switch s.Kind {
	case prompt.NewPlaylist:
		if s.Text != "" {
			m.push(command.WithArg(command.NewPlaylist, s.Text))
		}
	case prompt.Command:
		c, err := command.Parse(s.Text)
		if err != nil {
			m.setStatus(StatusMsg{Text: errmsg.Format(errmsg.OpCommand, err), Error: true})
			return nil
		}
		if c.Local() {
			return m.runLocal(c)
		}
		m.push(c)
	}
	return nil
}

// runLocal applies a command that only changes the interface.
func (m *Model) runLocal(c command.Command) tea.Cmd {
	switch c.Kind {
	case command.NewPlaylist:
		m.prompt.SetWidth(m.width)
		return m.prompt.Open(prompt.NewPlaylist)
	case command.GotoScreen:
		if s := Screen(c.Arg); s == ScreenHelp {
			if m.screen != ScreenHelp {
				m.toggleHelp()
			}
		} else {
			m.show(s)
		}
	}
	return nil
}
