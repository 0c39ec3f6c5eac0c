package domain_test

import (
	"testing"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlacement_GetSet(t *testing.T) {
	p := domain.NewPlacement(3)

	require.NoError(t, p.Set(1, "a"))
	got, err := p.Get(1)
	require.NoError(t, err)
	assert.Equal(t, domain.PieceID("a"), got)

	_, err = p.Get(3)
	assert.ErrorIs(t, err, domain.ErrSlotOutOfRange)
	assert.ErrorIs(t, p.Set(-1, "a"), domain.ErrSlotOutOfRange)
}

func TestPlacement_Validity(t *testing.T) {
	p := domain.Placement{"a", domain.Empty, "b"}
	assert.False(t, p.AllSlotsFilled())
	assert.True(t, p.IsValidAssignment())

	// The container accepts duplicate writes; the check reports them.
	require.NoError(t, p.Set(1, "a"))
	assert.True(t, p.AllSlotsFilled())
	assert.False(t, p.IsValidAssignment())
}

func TestPlacement_PoolIsComplement(t *testing.T) {
	reg, err := domain.NewRegistry(fossils(4), []string{"s0", "s1", "s2"}, []domain.PieceID{"a", "b", "c"})
	require.NoError(t, err)

	p := domain.Placement{"c", domain.Empty, "a"}
	assert.Equal(t, []domain.PieceID{"b", "d"}, p.Pool(reg))
	assert.Equal(t, []domain.PieceID{"c", "a"}, p.Placed())

	slot, ok := p.Locate("a")
	assert.True(t, ok)
	assert.Equal(t, 2, slot)
	_, ok = p.Locate("d")
	assert.False(t, ok)
	_, ok = p.Locate(domain.Empty)
	assert.False(t, ok, "empty never counts as located")
}

func TestPlacement_CloneIsIndependent(t *testing.T) {
	p := domain.Placement{"a", domain.Empty}
	c := p.Clone()
	c[1] = "b"

	assert.Equal(t, domain.Empty, p[1])
	assert.False(t, p.Equal(c))
	assert.True(t, p.Equal(domain.Placement{"a", ""}))
}

func TestPlacement_Changed(t *testing.T) {
	before := domain.Placement{"a", "b", domain.Empty}
	after := domain.Placement{"b", "a", "c"}

	assert.ElementsMatch(t, []domain.PieceID{"a", "b", "c"}, before.Changed(after))
	assert.Empty(t, before.Changed(before.Clone()))
	assert.Equal(t, []domain.PieceID{"a"}, domain.Placement{"a"}.Changed(domain.Placement{""}))
}
