// Package player decodes audio files and plays them through an output sink.
package player

import (
	"github.com/cockroachdb/errors"
)

// ErrUnsupportedFormat is returned when no decoder handles a file extension.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Sink is an output queue of decoded sources played back to back.
type Sink interface {
	// Append queues src after any pending source. Appending to a playing
	// sink continues without a gap.
	Append(src *Source)
	Play()
	Pause()
	// Stop drops every pending source. A stopped sink stays empty.
	Stop()
	// Empty reports whether no source is pending.
	Empty() bool
}

// Device hands out sinks on the audio output.
type Device interface {
	NewSink() (Sink, error)
}

// Opener decodes the file at path into a source ready for a sink.
type Opener func(path string) (*Source, error)
