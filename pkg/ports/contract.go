package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/pkg/domain"
)

// RunPuzzleStoreContract runs a suite of tests to verify that a PuzzleStore implementation
// adheres to the defined interface contract.
func RunPuzzleStoreContract(t *testing.T, store PuzzleStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	newPuzzle := func(t *testing.T, id string) *strata.Puzzle {
		t.Helper()
		p, err := strata.New(strata.WithID(id))
		require.NoError(t, err)
		return p
	}

	t.Run("Save and Load", func(t *testing.T) {
		p := newPuzzle(t, sessionID)
		_, err := p.Drop(ctx, "p1", 0)
		require.NoError(t, err)

		require.NoError(t, store.Save(ctx, sessionID, p), "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sessionID, loaded.ID())
		assert.Equal(t, domain.PieceID("p1"), loaded.Placement()[0])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, newPuzzle(t, sessionID)))

		require.NoError(t, store.Delete(ctx, sessionID), "Delete should not return error")

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
		assert.NoError(t, store.Delete(ctx, sessionID), "Delete of a missing session is a no-op")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, newPuzzle(t, id1))
		_ = store.Save(ctx, id2, newPuzzle(t, id2))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
