package playback

import "github.com/llehouerou/cadence/internal/library"

// StatusChange is emitted when the transport status changes.
//
// Emitted by Play, Pause, Stop, PlayTrack and by UpdateProgress when
// the sink runs dry. Never emitted with Previous equal to Current.
type StatusChange struct {
	Previous Status
	Current  Status
}

// TrackChange is emitted when a track is loaded into the sink.
//
// Both interrupting loads and gapless appends emit it. Replaying the
// same track under repeat One emits it too, with Previous equal to
// Current.
type TrackChange struct {
	Previous *library.Track
	Current  library.Track
}

// ModeChange is emitted when repeat or shuffle mode changes through the engine.
type ModeChange struct {
	Repeat  RepeatMode
	Shuffle bool
}
