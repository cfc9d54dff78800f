// Package notify is the ephemeral user-facing event log. The repository
// reports mutation outcomes here; the view layer renders and dismisses them.
// Nothing is persisted.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notification is one entry in the event log, independently dismissible.
type Notification struct {
	ID        string
	Message   string
	Kind      Kind
	CreatedAt time.Time
}

// Notifier receives mutation outcomes. The repository depends on this
// interface rather than the concrete Center.
type Notifier interface {
	Notify(message string, kind Kind)
}

// Center retains the ordered list of active notifications.
type Center struct {
	mu     sync.Mutex
	active []Notification
}

func NewCenter() *Center {
	return &Center{}
}

// Notify appends a notification to the active list.
func (c *Center) Notify(message string, kind Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = append(c.active, Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
	})
}

// Active returns the current notifications in arrival order.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.active))
	copy(out, c.active)
	return out
}

// Dismiss removes the notification with the given id, reporting whether it
// was present.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.active {
		if n.ID == id {
			c.active = append(c.active[:i], c.active[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops all active notifications.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = nil
}
