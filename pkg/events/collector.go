package events

import (
	"slices"
	"sync"
)

// NewCollector returns a collector that records every event and forwards it
// to handler, which may be nil.
func NewCollector(handler Handler) *Collector {
	return &Collector{
		events:  make([]Event, 0),
		handler: handler,
	}
}

type Collector struct {
	mu      sync.RWMutex
	events  []Event
	handler Handler
}

func (c *Collector) Handle(event Event) {
	c.mu.Lock()
	c.events = append(c.events, event)
	handler := c.handler
	c.mu.Unlock()

	if handler != nil {
		handler.Handle(event)
	}
}

func (c *Collector) Events() []Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.events)
}

// AtLevel returns the events at level or above.
func (c *Collector) AtLevel(level Level) []Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Event, 0)
	for _, event := range c.events {
		if event.Level >= level {
			out = append(out, event)
		}
	}
	return out
}

func (c *Collector) HasLevel(level Level) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, event := range c.events {
		if event.Level >= level {
			return true
		}
	}

	return false
}

// Summary groups the warnings and errors collected so far.
func (c *Collector) Summary() *Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := new(Summary)
	for _, event := range c.events {
		switch event.Level {
		case Warning:
			out.WarningCount++
			out.Warnings = append(out.Warnings, event)
		case Error:
			out.ErrorCount++
			out.Errors = append(out.Errors, event)
		}
	}

	out.Full = slices.Clone(c.events)

	return out
}
