// Package keymap defines key bindings and their overrides.
package keymap

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// Binding maps keys to an action within a context.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "navigator", "playlist"
}

// Bindings holds the default key bindings, in help order.
var Bindings = []Binding{
	// Global
	{ActionViewMain, []string{"1"}, "Main screen", "global"},
	{ActionViewPlaylists, []string{"2"}, "Playlist screen", "global"},
	{ActionHelp, []string{"0", "f1", "?"}, "Help screen", "global"},
	{ActionCommand, []string{":"}, "Command line", "global"},
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionStop, []string{"S"}, "Stop and clear queue", "playback"},
	{ActionPrevTrack, []string{","}, "Previous track", "playback"},
	{ActionNextTrack, []string{"."}, "Next track", "playback"},
	{ActionCycleRepeat, []string{"r"}, "Cycle repeat mode", "playback"},
	{ActionToggleShuffle, []string{"s"}, "Toggle shuffle", "playback"},

	// Navigator
	{ActionMoveUp, []string{"k", "up"}, "Up", "navigator"},
	{ActionMoveDown, []string{"j", "down"}, "Down", "navigator"},
	{ActionJumpStart, []string{"g", "home"}, "Go to top", "navigator"},
	{ActionJumpEnd, []string{"G", "end"}, "Go to bottom", "navigator"},
	{ActionNextPanel, []string{"tab", "l", "right"}, "Next panel", "navigator"},
	{ActionPrevPanel, []string{"shift+tab", "h", "left"}, "Previous panel", "navigator"},
	{ActionSelect, []string{"enter"}, "Play selection", "navigator"},
	{ActionAdd, []string{"a"}, "Add to queue", "navigator"},

	// Playlist
	{ActionNewPlaylist, []string{"n"}, "New playlist", "playlist"},
	{ActionSelectPlaylist, []string{"x"}, "Select target playlist", "playlist"},
	{ActionAddToPlaylist, []string{"p"}, "Add to target playlist", "playlist"},
}

// Contexts lists binding contexts in help order.
var Contexts = []string{"global", "playback", "navigator", "playlist"}

// ByContext returns bindings filtered by context.
func ByContext(bindings []Binding, context string) []Binding {
	var result []Binding
	for _, kb := range bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// ErrUnknownAction is returned for overrides naming no known action.
var ErrUnknownAction = errors.New("unknown action")

// WithOverrides returns a copy of base where every action named in
// overrides gets exactly the given keys. A key taken by an override is
// removed from the other actions so it resolves unambiguously.
func WithOverrides(base []Binding, overrides map[string][]string) ([]Binding, error) {
	out := make([]Binding, len(base))
	copy(out, base)

	var taken []string
	for name, keys := range overrides {
		i := slices.IndexFunc(out, func(b Binding) bool { return string(b.Action) == name })
		if i < 0 {
			return nil, errors.Wrapf(ErrUnknownAction, "%q", name)
		}
		out[i].Keys = slices.Clone(keys)
		taken = append(taken, keys...)
	}

	for i, b := range out {
		if _, ok := overrides[string(b.Action)]; ok {
			continue
		}
		out[i].Keys = slices.DeleteFunc(slices.Clone(b.Keys), func(k string) bool {
			return slices.Contains(taken, k)
		})
	}
	return out, nil
}

var keyNames = map[string]string{
	" ":         "Space",
	"enter":     "Enter",
	"tab":       "Tab",
	"shift+tab": "Shift+Tab",
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
	"home":      "Home",
	"end":       "End",
	"pgup":      "Page Up",
	"pgdown":    "Page Down",
	"esc":       "Esc",
	"f1":        "F1",
}

// DisplayKey returns the human form of a key string.
func DisplayKey(key string) string {
	if name, ok := keyNames[key]; ok {
		return name
	}
	return key
}
