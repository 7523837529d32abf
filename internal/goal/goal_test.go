package goal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func hydration(current float64, completed bool) *DailyGoal {
	return &DailyGoal{Type: TypeHydration, Target: 3, Current: current, Completed: completed}
}

func TestApplyProgressAccumulates(t *testing.T) {
	g := hydration(0, false)

	fired := ApplyProgress(g, 1)
	assert.False(t, fired)
	assert.Equal(t, 1.0, g.Current)
	assert.False(t, g.Completed)
}

func TestApplyProgressFiresBonusOnce(t *testing.T) {
	g := hydration(2, false)

	fired := ApplyProgress(g, 1)
	assert.True(t, fired, "reaching the target fires the bonus")
	assert.True(t, g.Completed)

	// further progress that day: no second bonus
	fired = ApplyProgress(g, 1)
	assert.False(t, fired)
	assert.True(t, g.Completed)
}

func TestApplyProgressClampsAtTarget(t *testing.T) {
	g := hydration(2.5, false)

	fired := ApplyProgress(g, 10)
	assert.True(t, fired)
	assert.Equal(t, 3.0, g.Current)
}

func TestApplyProgressIgnoresNonPositive(t *testing.T) {
	g := hydration(1, false)

	assert.False(t, ApplyProgress(g, 0))
	assert.False(t, ApplyProgress(g, -2))
	assert.Equal(t, 1.0, g.Current)
}

func TestDefaultsCoverAllTypes(t *testing.T) {
	defaults := Defaults()
	assert.Len(t, defaults, 3)

	types := map[Type]bool{}
	for _, d := range defaults {
		types[d.Type] = true
		assert.Zero(t, d.Current)
		assert.False(t, d.Completed)
		assert.Greater(t, d.Target, 0.0)
	}
	assert.True(t, types[TypeHydration])
	assert.True(t, types[TypeMovement])
	assert.True(t, types[TypeSleep])
}
