package queuepanel

import (
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/dancefloor/internal/dancetree"
	"github.com/llehouerou/dancefloor/internal/queue"
)

// stripANSI removes ANSI escape codes from a string for easier testing.
func stripANSI(s string) string {
	re := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return re.ReplaceAllString(s, "")
}

func testTrack(title, artist string, d time.Duration) *queue.Track {
	return &queue.Track{Ref: dancetree.TrackRef{
		Title:    title,
		Artist:   artist,
		Path:     "/test/" + title + ".mp3",
		Duration: d,
	}}
}

func newPanel(items ...queue.Item) Model {
	m := New()
	m.SetSize(60, 10)
	m.SetItems(items)
	return m
}

func TestView_EmptyQueue(t *testing.T) {
	m := newPanel()

	stripped := stripANSI(m.View())
	if !strings.Contains(stripped, "Queue (0)") {
		t.Errorf("empty queue should show 'Queue (0)', got: %s", stripped)
	}
	if m.Selected() != -1 {
		t.Errorf("Selected() = %d, want -1", m.Selected())
	}
}

func TestView_HeaderTotalsDuration(t *testing.T) {
	m := newPanel(
		testTrack("Song 1", "Artist 1", 3*time.Minute),
		queue.NewDelay(30),
		testTrack("Song 2", "Artist 2", 2*time.Minute),
	)

	stripped := stripANSI(m.View())
	if !strings.Contains(stripped, "Queue (3 · 5:30)") {
		t.Errorf("header should total durations, got: %s", stripped)
	}
}

func TestView_ItemKinds(t *testing.T) {
	m := newPanel(
		testTrack("Blue Danube", "Strauss", 3*time.Minute),
		&queue.AutoTrack{Ref: dancetree.TrackRef{Title: "Libertango", Artist: "Piazzolla"}},
		&queue.StopMarker{},
		queue.NewDelay(45),
		queue.NewMessage("Raffle", 0),
	)

	stripped := stripANSI(m.View())
	for _, want := range []string{
		trackSymbol + " Strauss - Blue Danube",
		"3:00",
		autoSymbol + " Piazzolla - Libertango (auto)",
		stopSymbol + " Stop",
		delaySymbol + " Pause 45s",
		"0:45",
		messageSymbol + " Message: Raffle",
	} {
		if !strings.Contains(stripped, want) {
			t.Errorf("view missing %q:\n%s", want, stripped)
		}
	}
}

func TestView_ZeroSize(t *testing.T) {
	m := New()
	if m.View() != "" {
		t.Error("unsized panel should render nothing")
	}
}

func TestUpdate_CursorOnlyWhenFocused(t *testing.T) {
	m := newPanel(
		testTrack("A", "", 0),
		testTrack("B", "", 0),
		testTrack("C", "", 0),
	)

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	m, _ = m.Update(down)
	if m.Selected() != 0 {
		t.Errorf("unfocused panel moved cursor to %d", m.Selected())
	}

	m.SetFocused(true)
	m, _ = m.Update(down)
	m, _ = m.Update(down)
	if m.Selected() != 2 {
		t.Errorf("Selected() = %d, want 2", m.Selected())
	}

	// Cursor is clamped when the queue shrinks
	m.SetItems(m.Items()[:1])
	if m.Selected() != 0 {
		t.Errorf("Selected() after shrink = %d, want 0", m.Selected())
	}
}

func TestFollow(t *testing.T) {
	m := newPanel(testTrack("A", "", 0), testTrack("B", "", 0))
	m.Follow(1)
	if m.Selected() != 1 {
		t.Errorf("Selected() = %d, want 1", m.Selected())
	}
	m.Follow(5)
	if m.Selected() != 1 {
		t.Errorf("Follow past end: Selected() = %d, want 1", m.Selected())
	}
}
