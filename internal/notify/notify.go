// Package notify implements transient toasts shown in the footer, with an
// optional desktop mirror.
package notify

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"github.com/google/uuid"

	"nio/internal/logger"
)

type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindError
)

const (
	DefaultDuration = 4 * time.Second
	ErrorDuration   = 6 * time.Second
	MaxVisible      = 3
)

type Toast struct {
	ID          string
	Title       string
	Description string
	Kind        Kind
	CreatedAt   time.Time
	Duration    time.Duration
}

// ExpireMsg removes a toast once its duration has passed.
type ExpireMsg struct{ ID string }

// Center queues toasts. The zero value is not usable; call NewCenter.
type Center struct {
	mu      sync.Mutex
	toasts  []Toast
	desktop bool
	send    func(title, message string) error
}

func NewCenter(desktop bool) *Center {
	return &Center{
		desktop: desktop,
		send: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// Push adds a toast and returns the command that expires it.
func (c *Center) Push(kind Kind, title, description string) tea.Cmd {
	d := DefaultDuration
	if kind == KindError {
		d = ErrorDuration
	}
	t := Toast{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Kind:        kind,
		CreatedAt:   time.Now(),
		Duration:    d,
	}

	c.mu.Lock()
	c.toasts = append(c.toasts, t)
	if len(c.toasts) > MaxVisible {
		c.toasts = c.toasts[len(c.toasts)-MaxVisible:]
	}
	desktop := c.desktop
	c.mu.Unlock()

	if desktop {
		go func() {
			if err := c.send(title, description); err != nil {
				logger.WithComponent("notify").Warn("desktop notification failed", "error", err)
			}
		}()
	}

	id := t.ID
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ExpireMsg{ID: id}
	})
}

func (c *Center) Info(title, description string) tea.Cmd {
	return c.Push(KindInfo, title, description)
}

func (c *Center) Success(title, description string) tea.Cmd {
	return c.Push(KindSuccess, title, description)
}

func (c *Center) Error(title, description string) tea.Cmd {
	return c.Push(KindError, title, description)
}

func (c *Center) Expire(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, t := range c.toasts {
		if t.ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			return
		}
	}
}

// Visible returns the queued toasts, oldest first.
func (c *Center) Visible() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Toast(nil), c.toasts...)
}

// Last returns the most recent toast.
func (c *Center) Last() (Toast, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.toasts) == 0 {
		return Toast{}, false
	}
	return c.toasts[len(c.toasts)-1], true
}
