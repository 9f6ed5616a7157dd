// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

const (
	// Library operations
	OpLibraryScan   Op = "scan music directory"
	OpLibraryAssign Op = "assign tracks to dances"

	// Dance tree operations
	OpTreeLoad Op = "load dance tree"
	OpTreeSave Op = "save dance tree"
	OpTreeEdit Op = "edit dance tree"
	OpTreeUndo Op = "undo"
	OpTreeRedo Op = "redo"

	// Queue operations
	OpQueueAdd    Op = "add to queue"
	OpQueueRemove Op = "remove from queue"
	OpQueueMove   Op = "move queue item"
	OpSuggest     Op = "suggest a track"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPreload       Op = "preload track"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
