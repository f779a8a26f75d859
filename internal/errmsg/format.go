// Package errmsg turns operation errors into status line messages.
package errmsg

import "fmt"

// Op names a user-visible operation in the "Failed to <op>" sentence.
type Op string

const (
	// Playback
	OpPlay         Op = "play track"
	OpPlayNext     Op = "play next track"
	OpPlayPrevious Op = "play previous track"
	OpStop         Op = "stop playback"
	OpEnqueue      Op = "enqueue tracks"

	// Library
	OpLibraryAdd  Op = "add to library"
	OpLibrarySave Op = "save library"
	OpResolve     Op = "read audio file"

	// Playlists
	OpPlaylistCreate   Op = "create playlist"
	OpPlaylistLoad     Op = "load playlists"
	OpPlaylistAddTrack Op = "add to playlist"

	// Commands
	OpCommand Op = "run command"
)

// Format renders err as a status line message for op. A nil err
// renders as "".
func Format(op Op, err error) string {
	return FormatWith(op, "", err)
}

// FormatWith is Format naming the subject of op, usually a path or a
// playlist name.
func FormatWith(op Op, subject string, err error) string {
	switch {
	case err == nil:
		return ""
	case subject == "":
		return fmt.Sprintf("Failed to %s: %v", op, err)
	default:
		return fmt.Sprintf("Failed to %s '%s': %v", op, subject, err)
	}
}
