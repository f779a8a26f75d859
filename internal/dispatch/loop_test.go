package dispatch

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/cadence/internal/command"
	"github.com/llehouerou/cadence/internal/library"
	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/player"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type fakeHost struct {
	mu        sync.Mutex
	added     []string
	playlists []string
	quit      int
	addErr    error
}

func (h *fakeHost) AddPath(path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.added = append(h.added, path)
	return h.addErr
}

func (h *fakeHost) NewPlaylist(name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.playlists = append(h.playlists, name)
	return nil
}

func (h *fakeHost) Quit() {
	h.mu.Lock()
	h.quit++
	h.mu.Unlock()
}

func tr(name string) library.Track {
	return library.Track{Title: name, Length: 3 * time.Minute, Path: "/music/" + name + ".mp3"}
}

type fixture struct {
	engine   *playback.Engine
	device   *player.MockDevice
	commands *command.Queue
	clock    *fakeClock
	host     *fakeHost
	status   []string
	loop     *Loop
}

func newFixture(t *testing.T, gapless bool) *fixture {
	t.Helper()
	f := &fixture{
		device:   player.NewMockDevice(),
		commands: command.NewQueue(),
		clock:    &fakeClock{t: time.Unix(1_700_000_000, 0)},
		host:     &fakeHost{},
	}
	e, err := playback.New(playback.NewShared(), playback.Config{
		Device:  f.device,
		Open:    f.device.Open,
		Gapless: gapless,
		Shuffle: func(ts []library.Track) { slices.Reverse(ts) },
	})
	require.NoError(t, err)
	f.engine = e
	f.loop = New(e, f.commands, Options{
		Host: f.host,
		Resolve: func(path string) (library.Track, error) {
			if path == "/missing.mp3" {
				return library.Track{}, errors.New("no such file")
			}
			return library.Track{Title: "resolved", Path: path, Length: time.Minute}, nil
		},
		Status: func(msg string) { f.status = append(f.status, msg) },
		Now:    f.clock.Now,
	})
	return f
}

func (f *fixture) current() string {
	s := f.engine.State().Snapshot()
	if s.Track == nil {
		return ""
	}
	return s.Track.Title
}

func TestShouldAdvance(t *testing.T) {
	tests := []struct {
		name       string
		gapless    bool
		remaining  time.Duration
		sinkEmpty  bool
		queueEmpty bool
		want       bool
	}{
		{"gapless under threshold", true, 50 * time.Millisecond, false, false, true},
		{"gapless at threshold", true, GaplessThreshold, false, false, false},
		{"gapless nothing loaded", true, 0, true, false, true},
		{"gapless empty queue", true, 0, true, true, false},
		{"gapless plenty left", true, time.Minute, false, false, false},
		{"gapless off sink busy", false, 0, false, false, false},
		{"gapless off sink empty", false, time.Minute, true, false, true},
		{"gapless off empty queue", false, 0, true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShouldAdvance(tt.gapless, tt.remaining, tt.sinkEmpty, tt.queueEmpty)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStep_OneCommandPerTick(t *testing.T) {
	f := newFixture(t, true)
	f.commands.Push(command.New(command.ToggleRepeat))
	f.commands.Push(command.New(command.ToggleRepeat))
	f.commands.Push(command.New(command.ToggleShuffle))

	f.loop.Step()
	assert.Equal(t, playback.RepeatOne, f.engine.State().Snapshot().Repeat)
	assert.Equal(t, 2, f.commands.Len())

	f.loop.Step()
	f.loop.Step()
	s := f.engine.State().Snapshot()
	assert.Equal(t, playback.RepeatAll, s.Repeat)
	assert.True(t, s.Shuffle)
	assert.Equal(t, 0, f.commands.Len())
}

func TestStep_GaplessAdvanceAppendsNextTrack(t *testing.T) {
	f := newFixture(t, true)
	f.commands.Push(command.EnqueueAndPlayOf(playback.TrackListOf([]library.Track{tr("A"), tr("B")})))
	f.loop.Step()
	require.Equal(t, "A", f.current())

	f.clock.Advance(2*time.Minute + 59*time.Second + 950*time.Millisecond)
	f.loop.Step()

	assert.Equal(t, "B", f.current())
	assert.Equal(t, 1, f.device.SinkCount(), "gapless advance must not interrupt")
	assert.Equal(t, []string{"/music/A.mp3", "/music/B.mp3"}, f.device.Sink().Pending())
	assert.Equal(t, []string{"A"}, titles(f.engine.History()))
}

func TestStep_GaplessWaitsUntilThreshold(t *testing.T) {
	f := newFixture(t, true)
	f.commands.Push(command.EnqueueAndPlayOf(playback.TrackListOf([]library.Track{tr("A"), tr("B")})))
	f.loop.Step()

	f.clock.Advance(2*time.Minute + 59*time.Second)
	f.loop.Step()

	assert.Equal(t, "A", f.current())
	assert.Equal(t, time.Second, f.engine.TimeRemaining())
}

func TestStep_NonGaplessAdvancesWhenSinkDrains(t *testing.T) {
	f := newFixture(t, false)
	f.commands.Push(command.EnqueueAndPlayOf(playback.TrackListOf([]library.Track{tr("A"), tr("B")})))
	f.loop.Step()

	f.clock.Advance(time.Minute)
	f.loop.Step()
	assert.Equal(t, "A", f.current(), "sink still busy")

	f.device.Sink().Drain()
	f.clock.Advance(2 * time.Minute)
	f.loop.Step()

	assert.Equal(t, "B", f.current())
	assert.Equal(t, []string{"A"}, titles(f.engine.History()))
	assert.True(t, f.engine.Playing())
}

func TestStep_NoAdvanceWithEmptyQueue(t *testing.T) {
	f := newFixture(t, true)
	f.commands.Push(command.PlayTrackOf(tr("A")))
	f.loop.Step()

	f.device.Sink().Drain()
	f.clock.Advance(time.Second)
	f.loop.Step()

	assert.Equal(t, "", f.current())
	assert.False(t, f.engine.Playing())
	assert.Len(t, f.device.Opened(), 1)
}

func TestStep_ProgressOnlyWhilePlaying(t *testing.T) {
	f := newFixture(t, true)
	f.commands.Push(command.PlayTrackOf(tr("A")))
	f.loop.Step()

	f.clock.Advance(10 * time.Second)
	f.loop.Step()
	assert.Equal(t, 10*time.Second, f.engine.State().Snapshot().Progress)

	f.commands.Push(command.New(command.Pause))
	f.loop.Step()
	f.clock.Advance(30 * time.Second)
	f.loop.Step()

	f.commands.Push(command.New(command.Play))
	f.loop.Step()
	f.clock.Advance(5 * time.Second)
	f.loop.Step()

	// The 10s before the pause tick count, the paused 30s do not.
	assert.Equal(t, 15*time.Second, f.engine.State().Snapshot().Progress)
}

func TestStep_StopClearsQueue(t *testing.T) {
	f := newFixture(t, true)
	f.commands.Push(command.EnqueueAndPlayOf(playback.AlbumOf(library.Album{Tracks: []library.Track{tr("A"), tr("B")}})))
	f.loop.Step()

	f.commands.Push(command.New(command.Stop))
	f.loop.Step()

	assert.True(t, f.engine.QueueEmpty())
	assert.Equal(t, playback.StatusStopped, f.engine.State().Snapshot().Status())
	assert.Equal(t, "", f.current())
}

func TestStep_PlayPathResolvesTrack(t *testing.T) {
	f := newFixture(t, true)
	f.commands.Push(command.WithArg(command.PlayPath, "/music/x.mp3"))

	f.loop.Step()

	assert.Equal(t, "resolved", f.current())
}

func TestStep_ErrorsAreReportedAndLoopContinues(t *testing.T) {
	f := newFixture(t, true)
	f.device.SetOpenError("/music/bad.mp3", errors.New("bad header"))
	f.commands.Push(command.WithArg(command.PlayPath, "/missing.mp3"))
	f.commands.Push(command.PlayTrackOf(library.Track{Title: "bad", Path: "/music/bad.mp3"}))
	f.commands.Push(command.PlayTrackOf(tr("A")))

	f.loop.Step()
	f.loop.Step()
	f.loop.Step()

	require.Len(t, f.status, 2)
	assert.Contains(t, f.status[0], "Failed to read audio file '/missing.mp3'")
	assert.Contains(t, f.status[1], "Failed to play track")
	assert.Equal(t, "A", f.current())
}

func TestStep_NavigationCommands(t *testing.T) {
	f := newFixture(t, true)
	f.commands.Push(command.EnqueueAndPlayOf(playback.AlbumOf(library.Album{Tracks: []library.Track{tr("A"), tr("B"), tr("C")}})))
	f.commands.Push(command.New(command.NextTrack))
	f.commands.Push(command.New(command.NextTrack))
	f.commands.Push(command.New(command.PrevTrack))

	var seen []string
	for range 4 {
		f.loop.Step()
		seen = append(seen, f.current())
	}

	assert.Equal(t, []string{"A", "B", "C", "B"}, seen)
}

func TestStep_EnqueueStartsWhenIdle(t *testing.T) {
	f := newFixture(t, true)
	f.commands.Push(command.EnqueueOf(playback.TrackListOf([]library.Track{tr("A")})))

	f.loop.Step()

	// Nothing loaded means no time remains, so the head starts on the same tick.
	assert.Equal(t, "A", f.current())
}

func TestStep_HostCommands(t *testing.T) {
	f := newFixture(t, true)
	f.host.addErr = errors.New("permission denied")
	f.commands.Push(command.WithArg(command.AddPath, "/music"))
	f.commands.Push(command.WithArg(command.NewPlaylist, "Mix"))

	f.loop.Step()
	f.loop.Step()

	assert.Equal(t, []string{"/music"}, f.host.added)
	assert.Equal(t, []string{"Mix"}, f.host.playlists)
	require.Len(t, f.status, 1)
	assert.Equal(t, "Failed to add to library: permission denied", f.status[0])
}

func TestStep_IgnoresInterfaceCommands(t *testing.T) {
	f := newFixture(t, true)
	f.commands.Push(command.WithArg(command.NewPlaylist, ""))
	f.commands.Push(command.WithArg(command.GotoScreen, command.ScreenHelp))

	f.loop.Step()
	f.loop.Step()

	assert.Empty(t, f.host.playlists)
	assert.Empty(t, f.status)
	assert.Zero(t, f.commands.Len())
}

func TestStep_Quit(t *testing.T) {
	f := newFixture(t, true)
	f.commands.Push(command.New(command.Quit))
	f.commands.Push(command.New(command.ToggleRepeat))

	assert.True(t, f.loop.Step())
	assert.Equal(t, 1, f.commands.Len())
}

func TestRun_QuitNotifiesHost(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, true)
		f.loop.now = time.Now
		f.commands.Push(command.New(command.ToggleShuffle))
		f.commands.Push(command.New(command.Quit))

		err := f.loop.Run(t.Context())

		require.NoError(t, err)
		assert.Equal(t, 1, f.host.quit)
		assert.True(t, f.engine.State().Snapshot().Shuffle)
	})
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, true)
		f.loop.now = time.Now
		ctx, cancel := context.WithCancel(t.Context())

		done := make(chan error, 1)
		go func() { done <- f.loop.Run(ctx) }()

		time.Sleep(time.Second)
		cancel()

		assert.ErrorIs(t, <-done, context.Canceled)
		assert.Equal(t, 0, f.host.quit)
	})
}

func TestRun_NoEngineCallsAfterReturn(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, true)
		f.loop.now = time.Now
		sub := f.engine.Subscribe()
		for range 20 {
			f.commands.Push(command.New(command.Stop))
		}
		ctx, cancel := context.WithCancel(t.Context())

		done := make(chan error, 1)
		go func() { done <- f.loop.Run(ctx) }()
		time.Sleep(5 * DefaultInterval)
		cancel()
		<-done

		sinks := f.device.SinkCount()
		time.Sleep(10 * DefaultInterval)
		synctest.Wait()
		assert.Equal(t, sinks, f.device.SinkCount(), "loop replaced the sink after Run returned")

		f.engine.Close()
		<-sub.Done
	})
}

func TestRun_TracksRealTimeProgress(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, true)
		f.loop.now = time.Now
		f.commands.Push(command.PlayTrackOf(tr("A")))
		ctx, cancel := context.WithCancel(t.Context())

		go func() { _ = f.loop.Run(ctx) }()
		time.Sleep(10*time.Second + DefaultInterval/2)
		synctest.Wait()

		got := f.engine.State().Snapshot().Progress
		assert.InDelta(t, float64(10*time.Second), float64(got), float64(2*DefaultInterval))
		cancel()
		synctest.Wait()
	})
}

func titles(ts []library.Track) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Title
	}
	return out
}
