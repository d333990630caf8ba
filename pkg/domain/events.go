package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventMachineBuilt   EventType = "machine_built"
	EventStringMatched  EventType = "string_matched"
	EventTrapDiscovered EventType = "trap_discovered"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Machine   string    `json:"machine"`
}

// MachineEvent is emitted after a description has been built.
type MachineEvent struct {
	EventBase
	Kind       Kind   `json:"kind"`
	StateCount int    `json:"state_count"`
	Reason     string `json:"reason,omitempty"`
}

// MatchEvent is emitted once per evaluated string.
type MatchEvent struct {
	EventBase
	Input   string  `json:"input"`
	Outcome Outcome `json:"outcome"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnMachineBuilt    func(context.Context, *MachineEvent)
	OnStringEvaluated func(context.Context, *MatchEvent)
	OnTrapDiscovered  func(context.Context, *MachineEvent)
}

// Outcome classifies the evaluation of one candidate string.
type Outcome string

const (
	OutcomeAccepted      Outcome = "accepted"
	OutcomeRejected      Outcome = "rejected"
	OutcomeTrap          Outcome = "trap"
	OutcomeInvalidSymbol Outcome = "invalid_symbol"
)
