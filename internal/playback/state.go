package playback

import (
	"sync"
	"time"

	"github.com/llehouerou/cadence/internal/library"
)

// Status is the transport status shown to control surfaces.
type Status int

const (
	StatusStopped Status = iota
	StatusPlaying
	StatusPaused
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "Stopped"
	case StatusPlaying:
		return "Playing"
	case StatusPaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// RepeatMode defines the repeat behavior.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatOne
	RepeatAll
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "Off"
	case RepeatOne:
		return "One"
	case RepeatAll:
		return "All"
	default:
		return "Unknown"
	}
}

// Next returns the mode that follows m in the Off, One, All cycle.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatOne
	case RepeatOne:
		return RepeatAll
	default:
		return RepeatOff
	}
}

// Snapshot is a copy of the playback state.
type Snapshot struct {
	// Track is the loaded track, nil when none.
	Track *library.Track
	// Length is the effective length of Track. It falls back to the
	// decoded length when the track metadata carries none.
	Length time.Duration
	// Progress is only meaningful when HasProgress is set, which
	// requires a loaded Track.
	Progress    time.Duration
	HasProgress bool

	Playing bool
	Stopped bool
	Shuffle bool
	Repeat  RepeatMode
}

// Status derives the transport status from the flags.
func (s Snapshot) Status() Status {
	switch {
	case s.Playing:
		return StatusPlaying
	case s.Stopped || s.Track == nil:
		return StatusStopped
	default:
		return StatusPaused
	}
}

// TimeRemaining returns the time left in the loaded track, or zero when
// no track or no progress is known.
func (s Snapshot) TimeRemaining() time.Duration {
	if s.Track == nil || !s.HasProgress {
		return 0
	}
	return max(s.Length-s.Progress, 0)
}

func (s Snapshot) clone() Snapshot {
	if s.Track != nil {
		t := *s.Track
		s.Track = &t
	}
	return s
}

// Shared guards the playback state. Readers take a Snapshot; only the
// engine and the shuffle and repeat setters write.
type Shared struct {
	mu sync.Mutex
	s  Snapshot
}

// NewShared returns an empty state: nothing loaded, repeat off.
func NewShared() *Shared {
	return &Shared{}
}

// Snapshot returns a copy of the current state.
func (sh *Shared) Snapshot() Snapshot {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.s.clone()
}

// SetShuffle sets the shuffle flag without reordering any queue.
func (sh *Shared) SetShuffle(on bool) {
	sh.mu.Lock()
	sh.s.Shuffle = on
	sh.mu.Unlock()
}

// SetRepeat sets the repeat mode.
func (sh *Shared) SetRepeat(m RepeatMode) {
	sh.mu.Lock()
	sh.s.Repeat = m
	sh.mu.Unlock()
}

// update runs fn with the lock held and returns the resulting snapshot.
// fn must not block.
func (sh *Shared) update(fn func(s *Snapshot)) Snapshot {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	fn(&sh.s)
	return sh.s.clone()
}
