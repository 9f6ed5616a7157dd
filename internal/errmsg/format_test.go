//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpTreeSave,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpTreeSave,
			err:      errors.New("disk full"),
			expected: "Failed to save dance tree: disk full",
		},
		{
			name:     "library scan operation",
			op:       OpLibraryScan,
			err:      errors.New("permission denied"),
			expected: "Failed to scan music directory: permission denied",
		},
		{
			name:     "queue operation",
			op:       OpQueueAdd,
			err:      errors.New("queue is full"),
			expected: "Failed to add to queue: queue is full",
		},
		{
			name:     "undo operation",
			op:       OpTreeUndo,
			err:      errors.New("nothing to undo"),
			expected: "Failed to undo: nothing to undo",
		},
		{
			name:     "playback operation",
			op:       OpPlaybackStart,
			err:      errors.New("no audio device"),
			expected: "Failed to start playback: no audio device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackStart,
			context:  "song.mp3",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpPlaybackStart,
			context:  "song.mp3",
			err:      errors.New("permission denied"),
			expected: "Failed to start playback 'song.mp3': permission denied",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpPlaybackStart,
			context:  "",
			err:      errors.New("permission denied"),
			expected: "Failed to start playback: permission denied",
		},
		{
			name:     "preload with path context",
			op:       OpPreload,
			context:  "/music/waltz.flac",
			err:      errors.New("file is empty"),
			expected: "Failed to preload track '/music/waltz.flac': file is empty",
		},
		{
			name:     "scan with path context",
			op:       OpLibraryScan,
			context:  "/home/user/music",
			err:      errors.New("directory not found"),
			expected: "Failed to scan music directory '/home/user/music': directory not found",
		},
		{
			name:     "preload with filename context",
			op:       OpPreload,
			context:  "valse.flac",
			err:      errors.New("permission denied"),
			expected: "Failed to preload track 'valse.flac': permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	// Verify that Op constants are non-empty and produce valid messages
	ops := []Op{
		OpLibraryScan, OpLibraryAssign,
		OpTreeLoad, OpTreeSave, OpTreeEdit, OpTreeUndo, OpTreeRedo,
		OpQueueAdd, OpQueueRemove, OpQueueMove, OpSuggest,
		OpPlaybackStart, OpPreload,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			result := Format(op, testErr)
			if result == "" {
				t.Error("Format should return non-empty string for non-nil error")
			}

			// Verify the format includes the operation
			expected := "Failed to " + string(op) + ": test error"
			if result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
