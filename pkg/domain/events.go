package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCommit EventType = "commit"
	EventUndo   EventType = "undo"
	EventRedo   EventType = "redo"
	EventCheck  EventType = "check"
	EventCancel EventType = "gesture_cancel"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	PuzzleID  string    `json:"puzzle_id,omitempty"`
}

// CommitEvent is emitted after a placement change was recorded in history.
type CommitEvent struct {
	EventBase
	Kind        OpKind    `json:"kind"`
	Description string    `json:"description"`
	Placement   Placement `json:"placement"`
	// Source is "pointer", "dwell", "keyboard", "api" or "control".
	Source string `json:"source"`
}

// HistoryEvent is emitted after undo or redo moved the history cursor.
type HistoryEvent struct {
	EventBase
	Cursor      int    `json:"cursor"`
	Description string `json:"description"`
}

// CheckEvent is emitted after the placement was evaluated.
type CheckEvent struct {
	EventBase
	Verdict string `json:"verdict"`
}

// LifecycleHooks defines callbacks for puzzle observability.
type LifecycleHooks struct {
	OnCommit  func(context.Context, *CommitEvent)
	OnHistory func(context.Context, *HistoryEvent)
	OnCheck   func(context.Context, *CheckEvent)
	OnCancel  func(context.Context, *EventBase)
}
