package evaluator_test

import (
	"testing"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/evaluator"
	"github.com/stretchr/testify/assert"
)

var solution = []domain.PieceID{"p1", "p2", "p3", "p4"}

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		placement domain.Placement
		want      evaluator.Verdict
	}{
		{"empty", domain.Placement{"", "", "", ""}, evaluator.Incomplete},
		{"partial", domain.Placement{"p1", "p2", "", "p4"}, evaluator.Incomplete},
		{"duplicate", domain.Placement{"p1", "p1", "p3", "p4"}, evaluator.Duplicate},
		{"correct", domain.Placement{"p1", "p2", "p3", "p4"}, evaluator.Correct},
		{"reversed", domain.Placement{"p4", "p3", "p2", "p1"}, evaluator.Incorrect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, evaluator.Check(tt.placement, solution).Verdict)
		})
	}
}

func TestCheck_EveryTranspositionIsIncorrect(t *testing.T) {
	for i := range solution {
		for j := i + 1; j < len(solution); j++ {
			p := domain.Placement(append([]domain.PieceID(nil), solution...))
			p[i], p[j] = p[j], p[i]

			res := evaluator.Check(p, solution)
			assert.Equal(t, evaluator.Incorrect, res.Verdict, "swap %d<->%d", i, j)
			assert.Equal(t, evaluator.MessageIncorrect, res.Message)
		}
	}
}

func TestCheck_Messages(t *testing.T) {
	assert.Equal(t, evaluator.MessageIncomplete, evaluator.Check(domain.NewPlacement(4), solution).Message)
	assert.Equal(t, evaluator.MessageCorrect, evaluator.Check(domain.Placement(solution), solution).Message)
}
