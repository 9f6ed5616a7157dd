// Package keymap binds keys to the actions of the terminal UI.
package keymap

// Action is something the user can trigger from the keyboard.
type Action string

const (
	ActionQuit                Action = "quit"
	ActionSwitchFocus         Action = "switch_focus"
	ActionHelp                Action = "help"
	ActionToggleAutoQueue     Action = "toggle_auto_queue"
	ActionToggleDuplicates    Action = "toggle_duplicates"
	ActionRescan              Action = "rescan"
	ActionDismissNotification Action = "dismiss_notification"

	ActionAdvance           Action = "advance"
	ActionPlayPause         Action = "play_pause"
	ActionStop              Action = "stop"
	ActionCancelCountdown   Action = "cancel_countdown"
	ActionRefreshSuggestion Action = "refresh_suggestion"
	ActionPinSuggestion     Action = "pin_suggestion"

	// queue panel
	ActionMoveItemUp   Action = "move_item_up"
	ActionMoveItemDown Action = "move_item_down"
	ActionDelete       Action = "delete"
	ActionClear        Action = "clear"
	ActionAddStop      Action = "add_stop"
	ActionAddDelay     Action = "add_delay"
	ActionAddMessage   Action = "add_message"

	// dances panel
	ActionAddRandom      Action = "add_random"
	ActionWeightUp       Action = "weight_up"
	ActionWeightDown     Action = "weight_down"
	ActionMute           Action = "mute"
	ActionUndo           Action = "undo"
	ActionRedo           Action = "redo"
	ActionAddCategory    Action = "add_category"
	ActionAddTopCategory Action = "add_top_category"
	ActionAddDance       Action = "add_dance"
	ActionRename         Action = "rename"
	ActionRemoveNode     Action = "remove_node"
)
