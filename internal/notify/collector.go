package notify

import "sync"

// Collector keeps notifications in memory until the UI drains them.
type Collector struct {
	mu     sync.Mutex
	nextID uint32
	items  []Notification
	max    int
}

// NewCollector creates a collector keeping the most recent 64 notifications.
func NewCollector() *Collector {
	return &Collector{max: 64}
}

// Notify records n.
func (c *Collector) Notify(n Notification) (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	c.items = append(c.items, n)
	if len(c.items) > c.max {
		c.items = c.items[len(c.items)-c.max:]
	}
	return c.nextID, nil
}

// Close is a no-op; collected notifications expire when drained.
func (c *Collector) Close(_ uint32) error {
	return nil
}

// Drain returns and forgets every pending notification, oldest first.
func (c *Collector) Drain() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.items
	c.items = nil
	return out
}

// Verify Collector implements Notifier at compile time.
var _ Notifier = (*Collector)(nil)
