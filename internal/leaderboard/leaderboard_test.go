package leaderboard

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCombinedScoreFormula(t *testing.T) {
	// startWeight=100, currentWeight=90 → 10% loss; waist 5%; 800 XP
	got := CombinedScore(10.0, 5.0, 800)
	assert.InDelta(t, 17.0, got, 1e-9)
}

func TestCombinedScoreZeroSignals(t *testing.T) {
	assert.Equal(t, 0.0, CombinedScore(0, 0, 0))
	assert.InDelta(t, 1.0, CombinedScore(0, 0, 400), 1e-9)
}

func TestBuildWinnerRankingOrdersDescending(t *testing.T) {
	a := &WinnerEntry{UserID: uuid.New(), WeightLossPercentage: 10, WaistReductionPercentage: 5, Points: 800}
	b := &WinnerEntry{UserID: uuid.New(), WeightLossPercentage: 2, Points: 400}
	c := &WinnerEntry{UserID: uuid.New(), WeightLossPercentage: 20, Points: 0}

	ranked := BuildWinnerRanking([]*WinnerEntry{a, b, c})

	assert.Equal(t, c, ranked[0])
	assert.Equal(t, a, ranked[1])
	assert.Equal(t, b, ranked[2])
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 3, ranked[2].Rank)
}

func TestBuildWinnerRankingPodium(t *testing.T) {
	var entries []*WinnerEntry
	for i := 0; i < 5; i++ {
		entries = append(entries, &WinnerEntry{UserID: uuid.New(), Points: 400 * (5 - i)})
	}

	ranked := BuildWinnerRanking(entries)

	assert.True(t, ranked[0].Podium)
	assert.True(t, ranked[1].Podium)
	assert.True(t, ranked[2].Podium)
	assert.False(t, ranked[3].Podium)
	assert.Equal(t, 4, ranked[3].Rank)
}

func TestBuildWinnerRankingTieBreakIsStable(t *testing.T) {
	idLow := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	idHigh := uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")

	build := func() []*WinnerEntry {
		// identical signals; only the ids differ
		x := &WinnerEntry{UserID: idHigh, WeightLossPercentage: 5, WaistReductionPercentage: 1, Points: 200}
		y := &WinnerEntry{UserID: idLow, WeightLossPercentage: 5, WaistReductionPercentage: 1, Points: 200}
		return BuildWinnerRanking([]*WinnerEntry{x, y})
	}

	first := build()
	assert.Equal(t, idLow, first[0].UserID, "lower user id wins the tie")

	// repeated computations produce the same order
	for i := 0; i < 5; i++ {
		again := build()
		assert.Equal(t, first[0].UserID, again[0].UserID)
		assert.Equal(t, first[1].UserID, again[1].UserID)
	}
}
