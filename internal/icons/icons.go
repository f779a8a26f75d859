// Package icons selects the glyphs drawn next to browser entries and in
// the player bar.
package icons

// Icons holds the glyphs of one style.
type Icons struct {
	Artist    string
	Album     string
	Track     string
	Playlist  string
	Play      string
	Pause     string
	Stop      string
	Shuffle   string
	RepeatAll string
	RepeatOne string
}

var (
	nerdIcons = Icons{
		Artist:    "\uf007 ",     // nf-fa-user
		Album:     "\U000f0025 ", // nf-md-album
		Track:     "\uf001 ",     // nf-fa-music
		Playlist:  "\U000f0cb8 ", // nf-md-playlist_music
		Play:      "\uf04b",      // nf-fa-play
		Pause:     "\uf04c",      // nf-fa-pause
		Stop:      "\uf04d",      // nf-fa-stop
		Shuffle:   "\U000f049f",  // nf-md-shuffle
		RepeatAll: "\U000f0456",  // nf-md-repeat
		RepeatOne: "\U000f0458",  // nf-md-repeat_once
	}

	plainIcons = Icons{
		Play:      "▶",
		Pause:     "⏸",
		Stop:      "■",
		Shuffle:   "[S]",
		RepeatAll: "[R]",
		RepeatOne: "[1]",
	}

	current = plainIcons
)

// Init selects nerd-font glyphs when nerd is set, plain text otherwise.
// Call it once at startup.
func Init(nerd bool) {
	if nerd {
		current = nerdIcons
		return
	}
	current = plainIcons
}

// Current returns the active glyph set.
func Current() Icons {
	return current
}

// FormatArtist prefixes name with the artist glyph.
func FormatArtist(name string) string { return current.Artist + name }

// FormatAlbum prefixes name with the album glyph.
func FormatAlbum(name string) string { return current.Album + name }

// FormatTrack prefixes name with the track glyph.
func FormatTrack(name string) string { return current.Track + name }

// FormatPlaylist prefixes name with the playlist glyph.
func FormatPlaylist(name string) string { return current.Playlist + name }
