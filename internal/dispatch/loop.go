// Package dispatch runs the loop that applies queued commands to the
// playback engine and advances through the queue.
package dispatch

import (
	"context"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/cadence/internal/command"
	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/library"
	"github.com/llehouerou/cadence/internal/playback"
)

// GaplessThreshold is how close to the end of a track the next one is
// appended when gapless playback is on.
const GaplessThreshold = 100 * time.Millisecond

// DefaultInterval is the default tick period.
const DefaultInterval = 100 * time.Millisecond

// Engine is the part of the playback engine the loop drives.
type Engine interface {
	Play()
	Pause()
	TogglePlay()
	Stop() error
	ToggleShuffle()
	ToggleRepeat()
	EnqueueAndPlay(q playback.Queueable) error
	Enqueue(q playback.Queueable)
	PlayTrack(t library.Track, interrupt bool) error
	PlayNext(interrupt bool) error
	PlayPrev() error
	ClearQueue()
	UpdateProgress(elapsed time.Duration)
	TimeRemaining() time.Duration
	Playing() bool
	QueueEmpty() bool
	SinkEmpty() bool
	Gapless() bool
}

var _ Engine = (*playback.Engine)(nil)

// Host handles the commands that act outside the engine.
type Host interface {
	AddPath(path string) error
	NewPlaylist(name string) error
	Quit()
}

// Options configures a Loop. Zero values pick defaults.
type Options struct {
	Host     Host
	Interval time.Duration
	// Resolve turns a path into a track for PlayPath. Defaults to library.Resolve.
	Resolve func(path string) (library.Track, error)
	// Status receives user-facing messages.
	Status func(msg string)
	// Now is the clock used to measure progress.
	Now func() time.Time
}

// Loop drains the command queue, one command per tick.
type Loop struct {
	engine   Engine
	commands *command.Queue
	host     Host
	interval time.Duration
	resolve  func(string) (library.Track, error)
	status   func(string)
	now      func() time.Time

	last time.Time
}

// New creates a loop reading commands from commands.
func New(engine Engine, commands *command.Queue, opts Options) *Loop {
	l := &Loop{
		engine:   engine,
		commands: commands,
		host:     opts.Host,
		interval: opts.Interval,
		resolve:  opts.Resolve,
		status:   opts.Status,
		now:      opts.Now,
	}
	if l.interval <= 0 {
		l.interval = DefaultInterval
	}
	if l.resolve == nil {
		l.resolve = library.Resolve
	}
	if l.status == nil {
		l.status = func(string) {}
	}
	if l.now == nil {
		l.now = time.Now
	}
	l.last = l.now()
	return l
}

// Run ticks until ctx is done or a Quit command is applied. A Quit
// command is forwarded to the host.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.last = l.now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if l.Step() {
				if l.host != nil {
					l.host.Quit()
				}
				return nil
			}
		}
	}
}

// Step runs one tick: apply at most one command, account for elapsed
// playback time, then advance if the current track is ending.
// It returns true when a Quit command was applied.
func (l *Loop) Step() bool {
	if c, ok := l.commands.Pop(); ok {
		if c.Kind == command.Quit {
			return true
		}
		l.apply(c)
	}

	if l.engine.Playing() {
		now := l.now()
		l.engine.UpdateProgress(now.Sub(l.last))
		l.last = now
	}

	if ShouldAdvance(l.engine.Gapless(), l.engine.TimeRemaining(), l.engine.SinkEmpty(), l.engine.QueueEmpty()) {
		zlog.Debug().Dur("remaining", l.engine.TimeRemaining()).Msg("dispatch: advancing")
		l.report(errmsg.OpPlayNext, l.engine.PlayNext(false))
		l.last = l.now()
	}
	return false
}

// ShouldAdvance reports whether the queue head should start now. With
// gapless playback that is when less than GaplessThreshold remains,
// otherwise once the sink is empty. Never with an empty queue.
func ShouldAdvance(gapless bool, remaining time.Duration, sinkEmpty, queueEmpty bool) bool {
	if queueEmpty {
		return false
	}
	if gapless {
		return remaining < GaplessThreshold
	}
	return sinkEmpty
}

func (l *Loop) apply(c command.Command) {
	zlog.Debug().Stringer("command", c.Kind).Msg("dispatch: applying command")

	switch c.Kind {
	case command.Play:
		l.engine.Play()
		l.last = l.now()
	case command.Pause:
		l.engine.Pause()
	case command.TogglePlay:
		l.engine.TogglePlay()
		l.last = l.now()
	case command.Stop:
		l.report(errmsg.OpStop, l.engine.Stop())
		l.engine.ClearQueue()
	case command.ToggleShuffle:
		l.engine.ToggleShuffle()
	case command.ToggleRepeat:
		l.engine.ToggleRepeat()
	case command.EnqueueAndPlay:
		l.report(errmsg.OpEnqueue, l.engine.EnqueueAndPlay(c.Queueable))
		l.last = l.now()
	case command.Enqueue:
		l.engine.Enqueue(c.Queueable)
	case command.PlayTrack:
		l.report(errmsg.OpPlay, l.engine.PlayTrack(c.Track, true))
		l.last = l.now()
	case command.PlayPath:
		t, err := l.resolve(c.Arg)
		if err != nil {
			l.status(errmsg.FormatWith(errmsg.OpResolve, c.Arg, err))
			zlog.Warn().Err(err).Str("path", c.Arg).Msg("dispatch: resolve failed")
			return
		}
		l.report(errmsg.OpPlay, l.engine.PlayTrack(t, true))
		l.last = l.now()
	case command.NextTrack:
		l.report(errmsg.OpPlayNext, l.engine.PlayNext(true))
		l.last = l.now()
	case command.PrevTrack:
		l.report(errmsg.OpPlayPrevious, l.engine.PlayPrev())
		l.last = l.now()
	case command.AddPath:
		if l.host != nil {
			l.report(errmsg.OpLibraryAdd, l.host.AddPath(c.Arg))
		}
	case command.NewPlaylist:
		// Without a name only the interface can ask for one.
		if l.host != nil && c.Arg != "" {
			l.report(errmsg.OpPlaylistCreate, l.host.NewPlaylist(c.Arg))
		}
	case command.Nop, command.Quit, command.GotoScreen:
	}
}

func (l *Loop) report(op errmsg.Op, err error) {
	if err == nil {
		return
	}
	zlog.Warn().Err(err).Str("op", string(op)).Msg("dispatch: command failed")
	l.status(errmsg.Format(op, err))
}
