package notify

import (
	"errors"
	"testing"
)

func TestUrgencyValues(t *testing.T) {
	// values are fixed by the freedesktop notification protocol
	if UrgencyLow != 0 {
		t.Errorf("UrgencyLow = %d, want 0", UrgencyLow)
	}
	if UrgencyNormal != 1 {
		t.Errorf("UrgencyNormal = %d, want 1", UrgencyNormal)
	}
	if UrgencyCritical != 2 {
		t.Errorf("UrgencyCritical = %d, want 2", UrgencyCritical)
	}
}

func TestNotificationZeroValue(t *testing.T) {
	var n Notification
	if n.Urgency != UrgencyLow {
		t.Errorf("zero value Urgency = %d, want UrgencyLow (0)", n.Urgency)
	}
	if n.Timeout != 0 {
		t.Error("zero value Timeout should be 0 (never expire)")
	}
	if n.ReplacesID != 0 {
		t.Error("zero value ReplacesID should be 0 (new notification)")
	}
}

func TestCollector_Drain(t *testing.T) {
	c := NewCollector()

	id1, _ := c.Notify(Notification{Title: "first"})
	id2, _ := c.Notify(Notification{Title: "second"})
	if id1 == id2 {
		t.Error("ids should be distinct")
	}

	got := c.Drain()
	if len(got) != 2 || got[0].Title != "first" || got[1].Title != "second" {
		t.Fatalf("Drain() = %+v", got)
	}
	if len(c.Drain()) != 0 {
		t.Error("second Drain() should be empty")
	}
}

func TestCollector_KeepsMostRecent(t *testing.T) {
	c := NewCollector()
	for i := range 100 {
		_, _ = c.Notify(Notification{Timeout: int32(i)})
	}
	got := c.Drain()
	if len(got) != 64 {
		t.Fatalf("len = %d, want 64", len(got))
	}
	if got[63].Timeout != 99 {
		t.Errorf("last Timeout = %d, want 99", got[63].Timeout)
	}
}

type failingNotifier struct{ calls int }

func (f *failingNotifier) Notify(Notification) (uint32, error) {
	f.calls++
	return 0, errFailing
}

func (f *failingNotifier) Close(uint32) error { return errFailing }

var errFailing = errors.New("failing")

func TestMulti_TriesEveryNotifier(t *testing.T) {
	f := &failingNotifier{}
	c := NewCollector()
	m := Multi{f, c}

	id, err := m.Notify(Notification{Title: "x"})
	if !errors.Is(err, errFailing) {
		t.Errorf("err = %v, want errFailing", err)
	}
	if id == 0 {
		t.Error("id from collector should be kept")
	}
	if f.calls != 1 || len(c.Drain()) != 1 {
		t.Error("every notifier should be called")
	}
}

func TestNop(t *testing.T) {
	var n Notifier = Nop{}
	id, err := n.Notify(Notification{Title: "x"})
	if id != 0 || err != nil {
		t.Errorf("Notify() = %d, %v", id, err)
	}
	if err := n.Close(id); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
