package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStart   EventType = "session_start"
	EventStep    EventType = "step"
	EventRetreat EventType = "retreat"
	EventVerdict EventType = "verdict"
	EventReset   EventType = "reset"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
}

// StepEvent describes one session operation.
type StepEvent struct {
	EventBase
	Automaton string  `json:"automaton"`
	Kind      Kind    `json:"kind"`
	Index     int     `json:"index"`
	Label     string  `json:"label,omitempty"`
	Symbol    string  `json:"symbol,omitempty"`
	Outcome   Outcome `json:"outcome"`
	Reason    Reason  `json:"reason,omitempty"`
	Replayed  bool    `json:"replayed,omitempty"`
}

// LifecycleHooks defines callbacks for session observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnStart   func(context.Context, *StepEvent)
	OnStep    func(context.Context, *StepEvent)
	OnRetreat func(context.Context, *StepEvent)
	OnVerdict func(context.Context, *StepEvent)
	OnReset   func(context.Context, *StepEvent)
}
