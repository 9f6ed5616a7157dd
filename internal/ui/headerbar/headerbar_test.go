package headerbar

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	now := time.Date(2024, 6, 1, 22, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		info     Info
		contains []string
		excludes []string
	}{
		{
			name:     "title and flags",
			info:     Info{AutoQueue: true},
			contains: []string{"dancefloor", "auto on", "dups off"},
			excludes: []string{"started", "tracks"},
		},
		{
			name: "session and library summary",
			info: Info{
				Started:    now.Add(-2 * time.Hour),
				Now:        now,
				Played:     31,
				Tracks:     12345,
				Unassigned: 1200,
				Duplicates: true,
			},
			contains: []string{"started 2 hours ago", "31 played", "12,345 tracks", "(1,200 unassigned)", "dups on"},
		},
		{
			name:     "scanning replaces library summary",
			info:     Info{Tracks: 10, Scanning: true},
			contains: []string{"scanning…"},
			excludes: []string{"10 tracks"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ansi.Strip(Render(tt.info, 200))
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRender_Width(t *testing.T) {
	info := Info{Tracks: 99999, Unassigned: 5}

	assert.Equal(t, 60, lipgloss.Width(Render(info, 60)))
	assert.Equal(t, 30, lipgloss.Width(Render(info, 30)))
	assert.Empty(t, Render(info, 10))
}
