package medal

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func mk(rt RequirementType, v float64) *Medal {
	return &Medal{ID: uuid.New(), Name: string(rt), RequirementType: rt, RequirementValue: v}
}

func TestQualifiesByType(t *testing.T) {
	s := EvalStats{Points: 800, WeightLost: 4.5, Day: 12, WorkoutCount: 3}

	assert.True(t, Qualifies(mk(RequirementPoints, 800), s))
	assert.False(t, Qualifies(mk(RequirementPoints, 801), s))
	assert.True(t, Qualifies(mk(RequirementWeightLost, 4.5), s))
	assert.False(t, Qualifies(mk(RequirementWeightLost, 5), s))
	assert.True(t, Qualifies(mk(RequirementDays, 10), s))
	assert.True(t, Qualifies(mk(RequirementWorkouts, 3), s))
	assert.False(t, Qualifies(mk(RequirementWorkouts, 4), s))
}

func TestZeroRequirementAlwaysQualifies(t *testing.T) {
	// the "Iniciante" medal uses days >= 0, so it awards immediately
	assert.True(t, Qualifies(mk(RequirementDays, 0), EvalStats{}))
}

func TestUnknownRequirementNeverQualifies(t *testing.T) {
	assert.False(t, Qualifies(mk(RequirementType("streak"), 0), EvalStats{Points: 9999}))
}

func TestEligibleSkipsEarnedAndAwardsAllInOnePass(t *testing.T) {
	a := mk(RequirementPoints, 100)
	b := mk(RequirementPoints, 500)
	c := mk(RequirementDays, 30)
	catalog := []*Medal{a, b, c}

	s := EvalStats{Points: 600, Day: 5}
	got := Eligible(catalog, map[uuid.UUID]bool{a.ID: true}, s)

	// a already earned, c not yet qualified; b awarded in the same pass
	assert.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)
}

func TestEligibleIsIdempotentOverEarnedSet(t *testing.T) {
	a := mk(RequirementPoints, 100)
	catalog := []*Medal{a}
	s := EvalStats{Points: 200}

	first := Eligible(catalog, map[uuid.UUID]bool{}, s)
	assert.Len(t, first, 1)

	// once recorded as earned, a second evaluation awards nothing
	second := Eligible(catalog, map[uuid.UUID]bool{a.ID: true}, s)
	assert.Empty(t, second)
}
