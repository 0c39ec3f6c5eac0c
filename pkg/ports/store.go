package ports

import (
	"context"

	"github.com/aretw0/strata"
)

// PuzzleStore keeps live puzzle sessions.
// Puzzles hold pointer gestures and timers, so stores keep them in process rather than
// serialising them.
type PuzzleStore interface {
	// Save registers the puzzle under sessionID, replacing any previous one.
	Save(ctx context.Context, sessionID string, p *strata.Puzzle) error

	// Load retrieves the puzzle for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*strata.Puzzle, error)

	// Delete removes the session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the ids of all sessions.
	List(ctx context.Context) ([]string, error)
}
