package http

import (
	"github.com/aretw0/strata/pkg/history"
	"github.com/aretw0/strata/pkg/view"
)

type createSessionRequest struct {
	Puzzle string `json:"puzzle" validate:"omitempty,max=128"`
}

type dropRequest struct {
	Piece string `json:"piece" validate:"required"`
	Slot  *int   `json:"slot" validate:"required"`
}

type selectPieceRequest struct {
	Piece string `json:"piece" validate:"required"`
}

type selectSlotRequest struct {
	Slot *int `json:"slot" validate:"required"`
}

// SessionResponse is the view of one session.
type SessionResponse struct {
	ID   string     `json:"id"`
	View view.Model `json:"view"`
}

// CommandResponse reports what a command did and the resulting view.
type CommandResponse struct {
	// Kind is the placement operation ("place", "replace", "swap", "reset", "none").
	Kind string `json:"kind,omitempty"`
	// Applied is false when the command was a no-op.
	Applied bool       `json:"applied"`
	Verdict string     `json:"verdict,omitempty"`
	Message string     `json:"message,omitempty"`
	View    view.Model `json:"view"`
}

// HistoryResponse lists the undo log and the cursor position.
type HistoryResponse struct {
	Entries []history.Entry `json:"entries"`
	CanUndo bool            `json:"can_undo"`
	CanRedo bool            `json:"can_redo"`
}

type errorResponse struct {
	Error string `json:"error"`
}
