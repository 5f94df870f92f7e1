// Package notify carries transient user-facing notifications from the stores to the
// presentation layer, which displays and dismisses them.
package notify

import "sync"

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
)

// Notification is a single toast.
type Notification struct {
	Kind        Kind   `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Notifier receives notifications.
type Notifier interface {
	Notify(n Notification)
}

// Collector buffers notifications emitted while serving one request.
type Collector struct {
	mu    sync.Mutex
	items []Notification
}

func NewCollector() *Collector { return &Collector{} }

func (c *Collector) Notify(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, n)
}

// Drain returns the buffered notifications and empties the buffer. It never returns nil.
func (c *Collector) Drain() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.items
	c.items = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}

func Success(title, description string) Notification {
	return Notification{Kind: KindSuccess, Title: title, Description: description}
}

func Error(title, description string) Notification {
	return Notification{Kind: KindError, Title: title, Description: description}
}

func Warning(title, description string) Notification {
	return Notification{Kind: KindWarning, Title: title, Description: description}
}

// Discard drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Notification) {}

// Envelope is the JSON body of every storefront response.
type Envelope struct {
	Data          any            `json:"data,omitempty"`
	Error         string         `json:"error,omitempty"`
	Notifications []Notification `json:"notifications"`
}
