package runtime_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/strata/internal/runtime"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/view"
)

func TestGesture_ReleaseOverSlotDrops(t *testing.T) {
	c := newController(t)
	ctx := context.Background()

	require.NoError(t, c.PointerDown(ctx, "p2"))
	piece, ok := c.Dragging()
	require.True(t, ok)
	assert.Equal(t, domain.PieceID("p2"), piece)
	assert.True(t, c.View().Pool[1].Dragging)

	c.PointerMove(3)
	assert.True(t, c.View().Slots[3].Hovered)

	out, dropped, err := c.PointerUp(ctx, 3)
	require.NoError(t, err)
	assert.True(t, dropped)
	assert.Equal(t, domain.OpPlace, out.Kind)
	assert.Equal(t, domain.PieceID("p2"), c.Placement()[3])

	_, ok = c.Dragging()
	assert.False(t, ok)
	assert.False(t, c.View().Slots[3].Hovered)
}

func TestGesture_ReleaseOutsideChangesNothing(t *testing.T) {
	c := newController(t)
	ctx := context.Background()
	drop(t, c, "p1", 0)
	before := c.Placement()

	require.NoError(t, c.PointerDown(ctx, "p1"))
	c.PointerMove(view.NoSlot)
	_, dropped, err := c.PointerUp(ctx, view.NoSlot)

	require.NoError(t, err)
	assert.False(t, dropped)
	assert.Equal(t, before, c.Placement())
	assert.Len(t, c.History(), 2)
}

func TestGesture_PointerUpWithoutGesture(t *testing.T) {
	c := newController(t)
	_, _, err := c.PointerUp(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrNoGesture)
}

func TestGesture_PointerDownUnknownPiece(t *testing.T) {
	c := newController(t)
	err := c.PointerDown(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUnknownPiece)
}

func TestGesture_DwellAutoDrop(t *testing.T) {
	c := newController(t, runtime.WithDwell(250))
	ctx := context.Background()

	require.NoError(t, c.PointerDown(ctx, "p4"))
	ticket := c.PointerMove(2)
	require.True(t, ticket.Armed())
	assert.Equal(t, 2, ticket.Slot)
	assert.EqualValues(t, 250, ticket.After)

	out, dropped, err := c.DwellElapsed(ctx, ticket.Token)
	require.NoError(t, err)
	assert.True(t, dropped)
	assert.Equal(t, domain.OpPlace, out.Kind)
	assert.Equal(t, domain.PieceID("p4"), c.Placement()[2])
	assert.Len(t, c.History(), 2)

	// the release after an auto-drop does not drop a second time
	_, dropped, err = c.PointerUp(ctx, 5)
	require.NoError(t, err)
	assert.False(t, dropped)
	assert.Equal(t, domain.PieceID("p4"), c.Placement()[2])
	assert.Len(t, c.History(), 2)
}

func TestGesture_MovesAfterDwellAreIgnored(t *testing.T) {
	c := newController(t)
	ctx := context.Background()

	require.NoError(t, c.PointerDown(ctx, "p4"))
	ticket := c.PointerMove(2)
	_, _, err := c.DwellElapsed(ctx, ticket.Token)
	require.NoError(t, err)

	next := c.PointerMove(5)
	assert.False(t, next.Armed())
	assert.False(t, c.View().Slots[5].Hovered)
}

func TestGesture_LeavingSlotInvalidatesDwell(t *testing.T) {
	c := newController(t)
	ctx := context.Background()

	require.NoError(t, c.PointerDown(ctx, "p1"))
	first := c.PointerMove(0)
	second := c.PointerMove(1)
	require.True(t, second.Armed())
	assert.NotEqual(t, first.Token, second.Token)

	_, dropped, err := c.DwellElapsed(ctx, first.Token)
	require.NoError(t, err)
	assert.False(t, dropped, "timer for a slot the pointer left must not fire")
	assert.Equal(t, domain.NewPlacement(7), c.Placement())

	c.PointerMove(view.NoSlot)
	_, dropped, err = c.DwellElapsed(ctx, second.Token)
	require.NoError(t, err)
	assert.False(t, dropped)
	assert.Equal(t, domain.NewPlacement(7), c.Placement())
}

func TestGesture_StayingInSlotKeepsTimer(t *testing.T) {
	c := newController(t)
	ctx := context.Background()

	require.NoError(t, c.PointerDown(ctx, "p1"))
	ticket := c.PointerMove(4)
	again := c.PointerMove(4)
	assert.False(t, again.Armed(), "no new timer while the pointer stays in the slot")

	_, dropped, err := c.DwellElapsed(ctx, ticket.Token)
	require.NoError(t, err)
	assert.True(t, dropped)
}

func TestGesture_Cancel(t *testing.T) {
	var cancels int
	c := newController(t, runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnCancel: func(context.Context, *domain.EventBase) { cancels++ },
	}))
	ctx := context.Background()
	drop(t, c, "p1", 0)
	before := c.Placement()

	require.NoError(t, c.PointerDown(ctx, "p1"))
	ticket := c.PointerMove(3)
	c.PointerCancel(ctx)

	_, dropped, err := c.DwellElapsed(ctx, ticket.Token)
	require.NoError(t, err)
	assert.False(t, dropped)
	assert.Equal(t, before, c.Placement())
	assert.Equal(t, 1, cancels)

	_, _, err = c.PointerUp(ctx, 3)
	assert.ErrorIs(t, err, domain.ErrNoGesture)
}

func TestGesture_NewPressCancelsPrevious(t *testing.T) {
	c := newController(t)
	ctx := context.Background()

	require.NoError(t, c.PointerDown(ctx, "p1"))
	stale := c.PointerMove(0)
	require.NoError(t, c.PointerDown(ctx, "p2"))

	_, dropped, err := c.DwellElapsed(ctx, stale.Token)
	require.NoError(t, err)
	assert.False(t, dropped)

	piece, _ := c.Dragging()
	assert.Equal(t, domain.PieceID("p2"), piece)
}

func TestGesture_DropOntoOwnSlot(t *testing.T) {
	c := newController(t)
	ctx := context.Background()
	drop(t, c, "p1", 0)
	status := c.Status()

	require.NoError(t, c.PointerDown(ctx, "p1"))
	c.PointerMove(0)
	out, _, err := c.PointerUp(ctx, 0)

	require.NoError(t, err)
	assert.Equal(t, domain.OpNone, out.Kind)
	assert.Equal(t, status, c.Status())
	assert.Len(t, c.History(), 2)
}

func TestGesture_DwellOnOwnSlotKeepsDragging(t *testing.T) {
	c := newController(t)
	ctx := context.Background()
	drop(t, c, "p1", 0)

	require.NoError(t, c.PointerDown(ctx, "p1"))
	ticket := c.PointerMove(0)
	require.True(t, ticket.Armed())

	out, dropped, err := c.DwellElapsed(ctx, ticket.Token)
	require.NoError(t, err)
	assert.False(t, dropped)
	assert.Equal(t, domain.OpNone, out.Kind)
	assert.True(t, c.View().Slots[0].Piece.Dragging)

	// the drag is still live: a later dwell elsewhere arms and drops
	next := c.PointerMove(3)
	require.True(t, next.Armed())
	out, dropped, err = c.DwellElapsed(ctx, next.Token)
	require.NoError(t, err)
	assert.True(t, dropped)
	assert.Equal(t, domain.OpPlace, out.Kind)
	assert.Equal(t, domain.PieceID("p1"), c.Placement()[3])
	assert.Equal(t, domain.Empty, c.Placement()[0])
}

func TestGesture_DwellOnOwnSlotThenRelease(t *testing.T) {
	c := newController(t)
	ctx := context.Background()
	drop(t, c, "p1", 0)

	require.NoError(t, c.PointerDown(ctx, "p1"))
	ticket := c.PointerMove(0)
	_, _, err := c.DwellElapsed(ctx, ticket.Token)
	require.NoError(t, err)

	c.PointerMove(3)
	out, dropped, err := c.PointerUp(ctx, 3)
	require.NoError(t, err)
	assert.True(t, dropped)
	assert.Equal(t, domain.OpPlace, out.Kind)
	assert.Equal(t, domain.PieceID("p1"), c.Placement()[3])
	assert.Len(t, c.History(), 3)
}

func TestGesture_ResolvedDragIsNotHighlighted(t *testing.T) {
	c := newController(t)
	ctx := context.Background()

	require.NoError(t, c.PointerDown(ctx, "p4"))
	ticket := c.PointerMove(2)
	_, dropped, err := c.DwellElapsed(ctx, ticket.Token)
	require.NoError(t, err)
	require.True(t, dropped)

	_, ok := c.Dragging()
	assert.True(t, ok)
	m := c.View()
	require.NotNil(t, m.Slots[2].Piece)
	assert.False(t, m.Slots[2].Piece.Dragging)
	assert.False(t, m.Slots[2].Hovered)
}
