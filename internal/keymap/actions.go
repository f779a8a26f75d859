package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit          Action = "quit"
	ActionHelp          Action = "help"
	ActionCommand       Action = "command" // open the command line
	ActionViewMain      Action = "view_main"
	ActionViewPlaylists Action = "view_playlists"

	// Playback actions
	ActionPlayPause     Action = "play_pause"
	ActionStop          Action = "stop"
	ActionNextTrack     Action = "next_track"
	ActionPrevTrack     Action = "prev_track"
	ActionCycleRepeat   Action = "cycle_repeat"
	ActionToggleShuffle Action = "toggle_shuffle"

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionNextPanel Action = "next_panel"
	ActionPrevPanel Action = "prev_panel"

	// Selection actions
	ActionSelect Action = "select" // enqueue and play the selection
	ActionAdd    Action = "add"    // append the selection to the queue

	// Playlist actions
	ActionNewPlaylist    Action = "new_playlist"
	ActionSelectPlaylist Action = "select_playlist" // target of add_to_playlist
	ActionAddToPlaylist  Action = "add_to_playlist"
)
