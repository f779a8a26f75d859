package command

import (
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrUnknown is returned for a command word Parse does not know.
	ErrUnknown = errors.New("invalid command")
	// ErrMissingArgument is returned when a command needs an argument.
	ErrMissingArgument = errors.New("missing argument")
	// ErrInvalidArgument is returned for an argument a command rejects.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Parse turns a command line into a command. An empty line yields Nop.
//
//	q, quit, exit            Quit
//	s, shuf, shuffle         ToggleShuffle
//	r, rep, repeat           ToggleRepeat
//	n, next                  NextTrack
//	prev                     PrevTrack
//	t, toggle                TogglePlay
//	resume                   Play
//	pause                    Pause
//	stop                     Stop
//	p, play PATH             PlayPath
//	a, add PATH              AddPath
//	np, new-playlist [NAME]  NewPlaylist, prompting for NAME when absent
//	screen 1|main            GotoScreen main
//	screen 2|playlist(s)     GotoScreen playlists
//	screen 0|help, h, help   GotoScreen help
func Parse(line string) (Command, error) {
	word, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = unquote(strings.TrimSpace(arg))

	switch word {
	case "":
		return New(Nop), nil
	case "q", "quit", "exit":
		return New(Quit), nil
	case "s", "shuf", "shuffle":
		return New(ToggleShuffle), nil
	case "r", "rep", "repeat":
		return New(ToggleRepeat), nil
	case "n", "next":
		return New(NextTrack), nil
	case "prev":
		return New(PrevTrack), nil
	case "t", "toggle":
		return New(TogglePlay), nil
	case "resume":
		return New(Play), nil
	case "pause":
		return New(Pause), nil
	case "stop":
		return New(Stop), nil
	case "p", "play":
		if arg == "" {
			return Command{}, errors.Wrapf(ErrMissingArgument, "%s: path", word)
		}
		return WithArg(PlayPath, arg), nil
	case "a", "add":
		if arg == "" {
			return Command{}, errors.Wrapf(ErrMissingArgument, "%s: path", word)
		}
		return WithArg(AddPath, arg), nil
	case "np", "new-playlist":
		return WithArg(NewPlaylist, arg), nil
	case "h", "help":
		return WithArg(GotoScreen, ScreenHelp), nil
	case "screen":
		switch arg {
		case "":
			return Command{}, errors.Wrap(ErrMissingArgument, "screen: screen id")
		case "1", "main":
			return WithArg(GotoScreen, ScreenMain), nil
		case "2", "playlist", "playlists":
			return WithArg(GotoScreen, ScreenPlaylists), nil
		case "0", "help":
			return WithArg(GotoScreen, ScreenHelp), nil
		default:
			return Command{}, errors.Wrapf(ErrInvalidArgument, "screen: %q", arg)
		}
	default:
		return Command{}, errors.Wrapf(ErrUnknown, "%q", word)
	}
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
