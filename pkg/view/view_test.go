package view_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/view"
)

func registry(t *testing.T) *domain.Registry {
	t.Helper()
	reg, err := domain.NewRegistry([]domain.Piece{
		{ID: "p1", Label: "Fossil A", Asset: "a.png"},
		{ID: "p2", Label: "Fossil B", Asset: "b.png"},
		{ID: "p3", Label: "Fossil C", Asset: "c.png"},
	}, []string{"bottom", "top"}, []domain.PieceID{"p1", "p2"})
	require.NoError(t, err)
	return reg
}

func TestBuild(t *testing.T) {
	reg := registry(t)
	m := view.Build(reg, domain.Placement{"p3", ""}, view.Decorations{
		Hovered: 1,
		Focus:   domain.FocusOnPiece("p3"),
		Recent:  []domain.PieceID{"p3"},
		Status:  "Placed Fossil C into bottom.",
		CanUndo: true,
	})

	want := view.Model{
		Slots: []view.SlotView{
			{Index: 0, Name: "bottom", Piece: &view.PieceView{ID: "p3", Label: "Fossil C", Asset: "c.png", Recent: true, Focused: true}},
			{Index: 1, Name: "top", Hovered: true},
		},
		Pool: []view.PieceView{
			{ID: "p1", Label: "Fossil A", Asset: "a.png"},
			{ID: "p2", Label: "Fossil B", Asset: "b.png"},
		},
		Status:  "Placed Fossil C into bottom.",
		CanUndo: true,
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_DependsOnlyOnSnapshot(t *testing.T) {
	reg := registry(t)
	snapshot := domain.Placement{"p2", "p1"}

	// Build from an unrelated state first; the result for snapshot must not change.
	_ = view.Build(reg, domain.Placement{"p1", "p3"}, view.Decorations{Hovered: view.NoSlot})
	a := view.Build(reg, snapshot, view.Decorations{Hovered: view.NoSlot})
	b := view.Build(reg, snapshot.Clone(), view.Decorations{Hovered: view.NoSlot})

	assert.True(t, cmp.Equal(a, b))
	assert.Equal(t, snapshot, a.Placement())
	assert.Equal(t, []domain.PieceID{"p3"}, []domain.PieceID{a.Pool[0].ID})
}

func TestBuild_PartitionsEvenWithDuplicates(t *testing.T) {
	reg := registry(t)
	m := view.Build(reg, domain.Placement{"p1", "p1"}, view.Decorations{Hovered: view.NoSlot})

	assert.NotNil(t, m.Slots[0].Piece)
	assert.Nil(t, m.Slots[1].Piece, "a piece is displayed at most once")
	assert.Len(t, m.Pool, 2)
}

func TestBuild_Decorations(t *testing.T) {
	reg := registry(t)
	m := view.Build(reg, domain.Placement{"", ""}, view.Decorations{
		Selected: "p2",
		Dragging: "p1",
		Hovered:  view.NoSlot,
		Focus:    domain.FocusOnSlot(0),
	})

	assert.True(t, m.Slots[0].Focused)
	assert.False(t, m.Slots[0].Hovered)
	assert.True(t, m.Pool[0].Dragging)
	assert.True(t, m.Pool[1].Selected)
	assert.Equal(t, []string{"a.png", "b.png", "c.png"}, m.Assets())
	assert.NotNil(t, m.Pool, "an empty pool still encodes as a list")
}
