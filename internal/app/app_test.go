package app

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/cadence/internal/command"
	"github.com/llehouerou/cadence/internal/library"
	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/playlist"
	"github.com/llehouerou/cadence/internal/state"
	"github.com/llehouerou/cadence/internal/ui/prompt"
	"github.com/llehouerou/cadence/internal/ui/testutil"
)

var (
	a1 = library.Track{Title: "One", Artist: "A", Album: "X", Number: 1, Path: "/a/1.mp3"}
	a2 = library.Track{Title: "Two", Artist: "A", Album: "X", Number: 2, Path: "/a/2.mp3"}
	b1 = library.Track{Title: "Solo", Artist: "B", Album: "Y", Number: 1, Path: "/b/1.mp3"}
)

type harness struct {
	t        *testing.T
	m        Model
	commands *command.Queue
	store    *state.Mock
	shared   *playback.Shared
}

func newHarness(t *testing.T, playlists ...*playlist.Playlist) *harness {
	t.Helper()
	h := &harness{
		t:        t,
		commands: command.NewQueue(),
		store:    state.NewMock(),
		shared:   playback.NewShared(),
	}
	h.m = New(Options{
		State:     h.shared,
		Commands:  h.commands,
		Store:     h.store,
		Library:   library.New(a1, a2, b1),
		Playlists: playlists,
	})
	h.send(tea.WindowSizeMsg{Width: 120, Height: 30})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

// keys sends each key; named keys are written in angle brackets.
func (h *harness) keys(keys ...string) {
	h.t.Helper()
	for _, k := range keys {
		switch k {
		case "<enter>":
			h.send(tea.KeyMsg{Type: tea.KeyEnter})
		case "<esc>":
			h.send(tea.KeyMsg{Type: tea.KeyEsc})
		case "<tab>":
			h.send(tea.KeyMsg{Type: tea.KeyTab})
		case "<space>":
			h.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		default:
			h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

// typeAndSubmit types text into the open prompt and submits it.
func (h *harness) typeAndSubmit(text string) {
	h.t.Helper()
	for _, r := range text {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	cmd := h.send(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(h.t, cmd)
	h.send(cmd())
}

func (h *harness) pop() command.Command {
	h.t.Helper()
	c, ok := h.commands.Pop()
	require.True(h.t, ok, "no command queued")
	return c
}

func (h *harness) view() string {
	return testutil.StripANSI(h.m.View())
}

func TestPlaybackKeysPushCommands(t *testing.T) {
	tests := []struct {
		key  string
		want command.Kind
	}{
		{"<space>", command.TogglePlay},
		{".", command.NextTrack},
		{",", command.PrevTrack},
		{"s", command.ToggleShuffle},
		{"r", command.ToggleRepeat},
		{"S", command.Stop},
		{"q", command.Quit},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			h := newHarness(t)
			h.keys(tt.key)
			assert.Equal(t, tt.want, h.pop().Kind)
			assert.Equal(t, 0, h.commands.Len())
		})
	}
}

func TestSelectArtist(t *testing.T) {
	h := newHarness(t)

	h.keys("j", "<enter>")

	c := h.pop()
	assert.Equal(t, command.EnqueueAndPlay, c.Kind)
	assert.Equal(t, playback.KindArtist, c.Queueable.Kind)
	assert.Equal(t, "A", c.Queueable.Artist.Name)
}

func TestSelectAlbum(t *testing.T) {
	h := newHarness(t)

	h.keys("j", "j", "<tab>", "j", "<enter>")

	c := h.pop()
	assert.Equal(t, playback.KindAlbum, c.Queueable.Kind)
	assert.Equal(t, "Y", c.Queueable.Album.Name)
}

func TestSelectTrack_StartsAtTrackAndWraps(t *testing.T) {
	h := newHarness(t)

	h.keys("<tab>", "<tab>", "j", "<enter>")

	c := h.pop()
	assert.Equal(t, playback.KindTrackList, c.Queueable.Kind)
	assert.Equal(t, []library.Track{a2, b1, a1}, c.Queueable.List)
}

func TestAdd_TrackQueuesOnlyTrack(t *testing.T) {
	h := newHarness(t)

	h.keys("<tab>", "<tab>", "G", "a")

	c := h.pop()
	assert.Equal(t, command.Enqueue, c.Kind)
	assert.Equal(t, []library.Track{b1}, c.Queueable.List)
	assert.Contains(t, h.view(), "Queued 1 tracks")
}

func TestPanelFocusWraps(t *testing.T) {
	h := newHarness(t)

	h.keys("h", "<enter>")

	c := h.pop()
	assert.Equal(t, playback.KindTrackList, c.Queueable.Kind, "focus wrapped to the tracks panel")
}

func TestCommandLine(t *testing.T) {
	h := newHarness(t)

	h.keys(":")
	require.True(t, h.m.prompt.Active())
	h.typeAndSubmit("add /music")

	c := h.pop()
	assert.Equal(t, command.AddPath, c.Kind)
	assert.Equal(t, "/music", c.Arg)
	assert.False(t, h.m.prompt.Active())
}

func TestCommandLine_KeysGoToPrompt(t *testing.T) {
	h := newHarness(t)

	h.keys(":", "q", "<esc>")

	assert.Equal(t, 0, h.commands.Len(), "q typed into the prompt must not quit")
}

func TestCommandLine_Invalid(t *testing.T) {
	h := newHarness(t)

	h.keys(":")
	h.typeAndSubmit("dance")

	assert.Equal(t, 0, h.commands.Len())
	assert.True(t, h.m.status.Error)
	assert.Contains(t, h.view(), "Failed to run command")
}

func TestCommandLine_NewPlaylistWithoutNameAsksForOne(t *testing.T) {
	h := newHarness(t)

	h.keys(":")
	h.typeAndSubmit("np")

	assert.Equal(t, 0, h.commands.Len())
	require.True(t, h.m.prompt.Active())
	assert.Equal(t, prompt.NewPlaylist, h.m.prompt.Kind())

	h.typeAndSubmit("Mix")
	c := h.pop()
	assert.Equal(t, command.NewPlaylist, c.Kind)
	assert.Equal(t, "Mix", c.Arg)
}

func TestCommandLine_Screens(t *testing.T) {
	h := newHarness(t)

	h.keys(":")
	h.typeAndSubmit("screen 2")
	assert.Equal(t, ScreenPlaylists, h.m.screen)

	h.keys(":")
	h.typeAndSubmit("help")
	assert.Equal(t, ScreenHelp, h.m.screen)

	h.keys(":")
	h.typeAndSubmit("h")
	assert.Equal(t, ScreenHelp, h.m.screen, "help stays open")

	h.keys(":")
	h.typeAndSubmit("screen main")
	assert.Equal(t, ScreenMain, h.m.screen)
	assert.Equal(t, 0, h.commands.Len())
}

func TestNewPlaylistPrompt(t *testing.T) {
	h := newHarness(t)

	h.keys("n")
	h.typeAndSubmit("Mix")

	c := h.pop()
	assert.Equal(t, command.NewPlaylist, c.Kind)
	assert.Equal(t, "Mix", c.Arg)
}

func TestNewPlaylistPrompt_EmptyName(t *testing.T) {
	h := newHarness(t)

	h.keys("n")
	h.typeAndSubmit("   ")

	assert.Equal(t, 0, h.commands.Len())
}

func TestAddToPlaylist(t *testing.T) {
	dir := t.TempDir()
	mix, err := playlist.Create(dir, "Mix")
	require.NoError(t, err)
	h := newHarness(t, mix)

	h.keys("p")
	assert.True(t, h.m.status.Error, "no target yet")

	h.keys("2", "x", "1", "<tab>", "<tab>", "G")
	h.keys("p")

	saved, err := playlist.Load(filepath.Join(dir, "Mix.m3u8"))
	require.NoError(t, err)
	assert.Equal(t, []library.Track{b1}, saved.Tracks)
	assert.Contains(t, h.view(), "Added 1 tracks to Mix")
	assert.Equal(t, mix.Path, h.m.target)

	p, ok := h.m.playlists.Selected()
	require.True(t, ok)
	assert.Len(t, p.Tracks, 1, "browser shows the saved playlist")
}

func TestSelectPlaylist(t *testing.T) {
	p := playlist.New("Evening")
	p.Path = "/p/evening.m3u8"
	p.Add(b1, a1)
	h := newHarness(t, p)

	h.keys("2", "<enter>")
	c := h.pop()
	assert.Equal(t, playback.KindPlaylist, c.Queueable.Kind)
	assert.Equal(t, []library.Track{b1, a1}, c.Queueable.Playlist)

	h.keys("<tab>", "j", "<enter>")
	c = h.pop()
	assert.Equal(t, []library.Track{a1, b1}, c.Queueable.List)
}

func TestPlaylistsMsg_DropsMissingTarget(t *testing.T) {
	p := playlist.New("Evening")
	p.Path = "/p/evening.m3u8"
	h := newHarness(t, p)
	h.keys("2", "x")
	require.Equal(t, p.Path, h.m.target)

	h.send(PlaylistsMsg(nil))

	assert.Empty(t, h.m.target)
	assert.Equal(t, 0, h.m.playlists.Len())
}

func TestHelpScreen(t *testing.T) {
	h := newHarness(t)
	h.keys("2", "?")
	require.Equal(t, ScreenHelp, h.m.screen)
	assert.Contains(t, h.view(), "Play/pause")

	h.keys("<esc>")
	assert.Equal(t, ScreenPlaylists, h.m.screen)

	h.keys("?", "?")
	assert.Equal(t, ScreenPlaylists, h.m.screen)
}

func TestNavigationSavedAndRestored(t *testing.T) {
	h := newHarness(t)
	h.keys("j", "j", "<tab>", "j", "2")

	nav := h.store.Navigation()
	require.NotNil(t, nav)
	assert.Equal(t, state.Navigation{View: "playlists", Artist: "B", Album: "Y", TrackPath: b1.Path}, *nav)

	restored := New(Options{Store: h.store, Library: library.New(a1, a2, b1)})
	assert.Equal(t, ScreenPlaylists, restored.screen)
	artist, _ := restored.artists.Selected()
	album, _ := restored.albums.Selected()
	assert.Equal(t, "B", artist.Name)
	assert.Equal(t, "Y", album.Name)
}

func TestLibraryMsg_KeepsSelection(t *testing.T) {
	h := newHarness(t)
	h.keys("j", "j")

	c1 := library.Track{Title: "New", Artist: "AA", Album: "Z", Path: "/aa/1.mp3"}
	h.send(LibraryMsg{Library: library.New(a1, a2, b1, c1), Path: "/aa", Added: 1})

	artist, _ := h.m.artists.Selected()
	assert.Equal(t, "B", artist.Name)
	assert.Contains(t, h.view(), "Added 1 tracks from /aa")
	assert.Contains(t, h.view(), "AA")
}

func TestTick_ReadsSnapshotAndExpiresStatus(t *testing.T) {
	h := newHarness(t)
	h.send(StatusMsg{Text: "hello"})
	h.shared.SetShuffle(true)

	cmd := h.send(TickMsg(time.Now()))
	assert.NotNil(t, cmd, "tick reschedules itself")
	assert.True(t, h.m.snap.Shuffle)
	assert.Equal(t, "hello", h.m.status.Text)

	h.send(TickMsg(time.Now().Add(statusTTL + time.Second)))
	assert.Empty(t, h.m.status.Text)
}

func TestView_Layout(t *testing.T) {
	h := newHarness(t)

	lines := testutil.Lines(h.m.View())

	assert.Len(t, lines, 30)
	assert.Contains(t, lines[0], "cadence")
	assert.Contains(t, lines[0], "1 Library")
	assert.Contains(t, h.view(), "Stopped")
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "3 tracks · 2 artists · 0 playlists"))
}

func TestQuitMsg(t *testing.T) {
	h := newHarness(t)

	cmd := h.send(QuitMsg{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestPromptCancelMsgIsIgnored(t *testing.T) {
	h := newHarness(t)
	assert.Nil(t, h.send(prompt.CancelMsg{Kind: prompt.Command}))
}
