package player

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	zlog "github.com/rs/zerolog/log"
)

const bufferDuration = time.Second / 10

var _ Device = (*Speaker)(nil)

// Speaker is the system audio output. The underlying speaker is
// initialised on the first NewSink call and shared by every sink.
type Speaker struct {
	mu          sync.Mutex
	initialized bool
}

// NewSpeaker returns an uninitialised speaker device.
func NewSpeaker() *Speaker {
	return &Speaker{}
}

// NewSink registers a new empty queue on the speaker.
func (s *Speaker) NewSink() (Sink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		if err := speaker.Init(SampleRate, SampleRate.N(bufferDuration)); err != nil {
			return nil, errors.Wrap(err, "initialize audio output")
		}
		s.initialized = true
	}

	q := &queueSink{}
	speaker.Play(q)
	return q, nil
}

var (
	_ Sink          = (*queueSink)(nil)
	_ beep.Streamer = (*queueSink)(nil)
)

// queueSink streams its pending sources back to back. Once a source is
// drained the next one fills the rest of the same buffer, so appended
// tracks play without a gap. An idle queue streams silence until stopped.
type queueSink struct {
	mu      sync.Mutex
	pending []*Source
	paused  bool
	stopped bool
	err     error
}

// Stream implements beep.Streamer.
func (q *queueSink) Stream(samples [][2]float64) (n int, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.stopped {
		return 0, false
	}
	if q.paused {
		return silence(samples), true
	}

	for n < len(samples) && len(q.pending) > 0 {
		head := q.pending[0]
		m, more := head.Streamer.Stream(samples[n:])
		n += m
		if more && m > 0 {
			continue
		}
		if err := head.Streamer.Err(); err != nil {
			q.err = err
			zlog.Warn().Err(err).Str("path", head.Path).Msg("player: stream error")
		}
		q.pending = q.pending[1:]
		if err := head.Close(); err != nil {
			zlog.Debug().Err(err).Str("path", head.Path).Msg("player: close source")
		}
	}
	silence(samples[n:])
	return len(samples), true
}

// Err implements beep.Streamer.
func (q *queueSink) Err() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.err
}

func (q *queueSink) Append(src *Source) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped {
		_ = src.Close()
		return
	}
	q.pending = append(q.pending, src)
}

func (q *queueSink) Play() {
	q.mu.Lock()
	q.paused = false
	q.mu.Unlock()
}

func (q *queueSink) Pause() {
	q.mu.Lock()
	q.paused = true
	q.mu.Unlock()
}

func (q *queueSink) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.stopped = true
	for _, src := range q.pending {
		_ = src.Close()
	}
	q.pending = nil
}

func (q *queueSink) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending) == 0
}

func silence(samples [][2]float64) int {
	for i := range samples {
		samples[i] = [2]float64{}
	}
	return len(samples)
}
