// Package playback owns the play queue, the history and the playback state.
package playback

import (
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/cadence/internal/library"
	"github.com/llehouerou/cadence/internal/player"
)

// ErrNoDevice is returned by New when Config.Device is nil.
var ErrNoDevice = errors.New("no output device")

// Config holds the engine dependencies.
type Config struct {
	Device player.Device
	// Open decodes tracks. Defaults to player.Decode.
	Open    player.Opener
	Gapless bool
	// Shuffle reorders tracks in place. Defaults to a uniform shuffle.
	Shuffle func([]library.Track)
}

// Engine applies playback operations to the shared state and the sink.
//
// Engine methods are not safe for concurrent use: a single goroutine
// drives it. Other goroutines read the Shared state and Subscribe to
// events.
type Engine struct {
	state   *Shared
	device  player.Device
	open    player.Opener
	shuffle func([]library.Track)
	gapless bool

	sink    player.Sink
	queue   []library.Track
	ordered []library.Track
	history []library.Track
	// finished is the track that ran out last, kept so that the next
	// advance still records it as displaced.
	finished *library.Track

	subsMu sync.Mutex
	subs   []*Subscription
}

// New creates an engine and acquires its first sink.
func New(state *Shared, cfg Config) (*Engine, error) {
	if cfg.Device == nil {
		return nil, ErrNoDevice
	}
	sink, err := cfg.Device.NewSink()
	if err != nil {
		return nil, errors.Wrap(err, "acquire output sink")
	}

	e := &Engine{
		state:   state,
		device:  cfg.Device,
		open:    cfg.Open,
		shuffle: cfg.Shuffle,
		gapless: cfg.Gapless,
		sink:    sink,
	}
	if e.open == nil {
		e.open = player.Decode
	}
	if e.shuffle == nil {
		e.shuffle = func(tracks []library.Track) {
			rand.Shuffle(len(tracks), func(i, j int) {
				tracks[i], tracks[j] = tracks[j], tracks[i]
			})
		}
	}
	return e, nil
}

// State returns the shared state the engine writes to.
func (e *Engine) State() *Shared {
	return e.state
}

// Play resumes the loaded track. No-op when nothing is loaded or
// playback is already running.
func (e *Engine) Play() {
	changed := false
	before, after := e.mutate(func(s *Snapshot) {
		if s.Track == nil || s.Playing {
			return
		}
		s.Playing = true
		s.Stopped = false
		changed = true
	})
	if !changed {
		return
	}
	e.sink.Play()
	e.publishStatus(before, after)
}

// Pause pauses the loaded track. No-op unless playing.
func (e *Engine) Pause() {
	changed := false
	before, after := e.mutate(func(s *Snapshot) {
		if s.Track == nil || !s.Playing {
			return
		}
		s.Playing = false
		changed = true
	})
	if !changed {
		return
	}
	e.sink.Pause()
	e.publishStatus(before, after)
}

// TogglePlay pauses when playing and resumes otherwise.
func (e *Engine) TogglePlay() {
	if e.state.Snapshot().Playing {
		e.Pause()
		return
	}
	e.Play()
}

// Stop drops everything queued on the sink and replaces it with a fresh
// one. The loaded track is cleared by the next UpdateProgress.
func (e *Engine) Stop() error {
	if e.sink.Empty() {
		return nil
	}
	e.sink.Stop()
	before, after := e.mutate(func(s *Snapshot) {
		s.Stopped = true
	})
	e.publishStatus(before, after)

	sink, err := e.device.NewSink()
	if err != nil {
		return errors.Wrap(err, "reacquire output sink")
	}
	e.sink = sink
	return nil
}

// PlayTrack decodes t and starts it. With interrupt the sink is stopped
// first; without it t is appended after whatever is still playing.
// A decode failure leaves the state untouched.
func (e *Engine) PlayTrack(t library.Track, interrupt bool) error {
	src, err := e.open(t.Path)
	if err != nil {
		return errors.Wrap(err, "load track")
	}
	if interrupt {
		if err := e.Stop(); err != nil {
			_ = src.Close()
			return err
		}
	}

	length := t.Length
	if length <= 0 {
		length = src.Length
	}
	before, after := e.mutate(func(s *Snapshot) {
		track := t
		s.Track = &track
		s.Length = length
		s.Progress = 0
		s.HasProgress = true
		s.Playing = true
		s.Stopped = false
	})
	e.finished = nil

	e.sink.Append(src)
	e.sink.Play()

	zlog.Debug().
		Str("path", t.Path).
		Bool("interrupt", interrupt).
		Dur("length", length).
		Msg("playback: track loaded")

	e.publishTrack(TrackChange{Previous: before.Track, Current: t})
	e.publishStatus(before, after)
	return nil
}

// PlayNext advances to the next track. Under repeat One the loaded track
// is replayed and the queue is left alone. Otherwise the queue head is
// played and the displaced track goes to the history, and also back to
// the queue tail under repeat All. No-op when there is nothing to play.
// Without gapless playback interrupt is always true.
//
// If the next track fails to load, playback stops and nothing stays
// loaded, so the following advance moves past it.
func (e *Engine) PlayNext(interrupt bool) error {
	snap := e.state.Snapshot()

	var next library.Track
	if snap.Repeat == RepeatOne {
		if snap.Track == nil {
			return nil
		}
		next = *snap.Track
	} else {
		if len(e.queue) == 0 {
			return nil
		}
		next = e.queue[0]
		e.queue = e.queue[1:]

		displaced := snap.Track
		if displaced == nil {
			displaced = e.finished
		}
		if displaced != nil {
			e.history = append(e.history, *displaced)
			if snap.Repeat == RepeatAll {
				e.queue = append(e.queue, *displaced)
			}
		}
		e.finished = nil
	}

	if err := e.PlayTrack(next, interrupt || !e.gapless); err != nil {
		return errors.CombineErrors(err, e.unload())
	}
	return nil
}

// PlayPrev replays the most recent history entry, putting the loaded
// track back at the queue head. With an empty history the loaded track
// restarts. No-op when nothing was ever played.
func (e *Engine) PlayPrev() error {
	snap := e.state.Snapshot()

	n := len(e.history)
	if n == 0 {
		if snap.Track == nil {
			return nil
		}
		return e.PlayTrack(*snap.Track, true)
	}

	prev := e.history[n-1]
	e.history = e.history[:n-1]
	if snap.Track != nil {
		e.queue = slices.Insert(e.queue, 0, *snap.Track)
	}
	if err := e.PlayTrack(prev, true); err != nil {
		if snap.Track != nil {
			e.queue = e.queue[1:]
		}
		e.history = append(e.history, prev)
		return err
	}
	return nil
}

// EnqueueAndPlay replaces both queues with the tracks of q and starts
// the first one. Artists, albums and playlists are shuffled as a whole
// when shuffle is on; for a track list the head plays first and only the
// rest is shuffled. An Empty queueable is a no-op.
func (e *Engine) EnqueueAndPlay(q Queueable) error {
	if q.Kind == KindEmpty {
		return nil
	}

	tracks := q.Tracks()
	e.ordered = slices.Clone(tracks)
	e.queue = tracks
	e.finished = nil
	shuffle := e.state.Snapshot().Shuffle

	if q.Kind == KindTrackList {
		head, ok := e.popHead()
		if !ok {
			return nil
		}
		err := e.PlayTrack(head, true)
		if shuffle {
			e.shuffle(e.queue)
		}
		return err
	}

	if shuffle {
		e.shuffle(e.queue)
	}
	head, ok := e.popHead()
	if !ok {
		return nil
	}
	return e.PlayTrack(head, true)
}

// Enqueue appends the tracks of q to both queues without playing.
func (e *Engine) Enqueue(q Queueable) {
	tracks := q.Tracks()
	e.queue = append(e.queue, tracks...)
	e.ordered = append(e.ordered, tracks...)
}

// ClearQueue empties the active queue.
func (e *Engine) ClearQueue() {
	e.queue = nil
}

// ToggleShuffle flips shuffle. Turning it on reshuffles the active queue;
// turning it off restores the ordered queue, rotated so the track after
// the loaded one comes first.
func (e *Engine) ToggleShuffle() {
	snap := e.state.update(func(s *Snapshot) {
		s.Shuffle = !s.Shuffle
	})

	if snap.Shuffle {
		e.shuffle(e.queue)
	} else {
		e.queue = slices.Clone(e.ordered)
		if snap.Track != nil {
			if i := slices.Index(e.queue, *snap.Track); i >= 0 {
				rotateLeft(e.queue, i+1)
			}
		}
	}
	e.publishMode(snap)
}

// ToggleRepeat cycles repeat through Off, One and All.
func (e *Engine) ToggleRepeat() {
	snap := e.state.update(func(s *Snapshot) {
		s.Repeat = s.Repeat.Next()
	})
	e.publishMode(snap)
}

// UpdateProgress adds elapsed to the progress. Once the sink has run
// dry playback is marked finished: nothing is playing and the track is
// unloaded, except under repeat One.
func (e *Engine) UpdateProgress(elapsed time.Duration) {
	empty := e.sink.Empty()
	var finished *library.Track
	before, after := e.mutate(func(s *Snapshot) {
		if s.HasProgress {
			s.Progress += elapsed
		}
		if !empty {
			return
		}
		s.Playing = false
		s.Progress = 0
		s.HasProgress = false
		if s.Repeat != RepeatOne && s.Track != nil {
			finished = s.Track
			s.Track = nil
			s.Length = 0
		}
	})
	if finished != nil {
		e.finished = finished
		zlog.Debug().Str("path", finished.Path).Msg("playback: track finished")
	}
	e.publishStatus(before, after)
}

// TimeRemaining returns the time left in the loaded track.
func (e *Engine) TimeRemaining() time.Duration {
	return e.state.Snapshot().TimeRemaining()
}

// Playing reports whether a track is playing.
func (e *Engine) Playing() bool {
	return e.state.Snapshot().Playing
}

// QueueEmpty reports whether the active queue is empty.
func (e *Engine) QueueEmpty() bool {
	return len(e.queue) == 0
}

// SinkEmpty reports whether the sink has nothing left to play.
func (e *Engine) SinkEmpty() bool {
	return e.sink.Empty()
}

// Gapless reports whether tracks are appended without interrupting.
func (e *Engine) Gapless() bool {
	return e.gapless
}

// Queue returns a copy of the active queue.
func (e *Engine) Queue() []library.Track {
	return slices.Clone(e.queue)
}

// OrderedQueue returns a copy of the queue in enqueue order.
func (e *Engine) OrderedQueue() []library.Track {
	return slices.Clone(e.ordered)
}

// History returns a copy of the history, most recent last.
func (e *Engine) History() []library.Track {
	return slices.Clone(e.history)
}

// Subscribe returns a subscription receiving engine events.
func (e *Engine) Subscribe() *Subscription {
	sub := newSubscription()
	e.subsMu.Lock()
	e.subs = append(e.subs, sub)
	e.subsMu.Unlock()
	return sub
}

// Close stops the sink and ends every subscription.
func (e *Engine) Close() {
	e.sink.Stop()
	e.subsMu.Lock()
	for _, sub := range e.subs {
		sub.close()
	}
	e.subs = nil
	e.subsMu.Unlock()
}

// unload stops the sink and clears the loaded track.
func (e *Engine) unload() error {
	err := e.Stop()
	before, after := e.mutate(func(s *Snapshot) {
		s.Track = nil
		s.Length = 0
		s.Progress = 0
		s.HasProgress = false
		s.Playing = false
	})
	e.publishStatus(before, after)
	return err
}

// rotateLeft rotates s in place so that s[k%len(s)] comes first.
func rotateLeft(s []library.Track, k int) {
	if len(s) == 0 {
		return
	}
	k %= len(s)
	slices.Reverse(s[:k])
	slices.Reverse(s[k:])
	slices.Reverse(s)
}

func (e *Engine) popHead() (library.Track, bool) {
	if len(e.queue) == 0 {
		return library.Track{}, false
	}
	head := e.queue[0]
	e.queue = e.queue[1:]
	return head, true
}

// mutate applies fn under the state lock and returns the state before
// and after.
func (e *Engine) mutate(fn func(s *Snapshot)) (before, after Snapshot) {
	after = e.state.update(func(s *Snapshot) {
		before = s.clone()
		fn(s)
	})
	return before, after
}

func (e *Engine) publishStatus(before, after Snapshot) {
	prev, cur := before.Status(), after.Status()
	if prev == cur {
		return
	}
	ev := StatusChange{Previous: prev, Current: cur}
	e.broadcast(func(s *Subscription) { offer(s.status, ev) })
}

func (e *Engine) publishTrack(ev TrackChange) {
	e.broadcast(func(s *Subscription) { offer(s.track, ev) })
}

func (e *Engine) publishMode(snap Snapshot) {
	ev := ModeChange{Repeat: snap.Repeat, Shuffle: snap.Shuffle}
	e.broadcast(func(s *Subscription) { offer(s.mode, ev) })
}

func (e *Engine) broadcast(send func(*Subscription)) {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	for _, sub := range e.subs {
		send(sub)
	}
}
