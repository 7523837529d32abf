package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeltaTable(t *testing.T) {
	cases := map[Reason]int{
		ReasonActivityCompleted:   50,
		ReasonActivityUncompleted: -50,
		ReasonMealLogged:          20,
		ReasonMealConsumed:        20,
		ReasonMeasurementLogged:   20,
		ReasonGoalProgress:        5,
		ReasonGoalCompleted:       20,
		ReasonWorkoutUploaded:     200,
		ReasonResourcePublished:   100,
		ReasonSocialPost:          10,
	}

	for reason, want := range cases {
		assert.Equal(t, want, Delta(reason), "reason=%s", reason)
	}
}

func TestActivityToggleIsSymmetric(t *testing.T) {
	assert.Equal(t, 0, Delta(ReasonActivityCompleted)+Delta(ReasonActivityUncompleted))
}

func TestUnknownReasonIsWorthNothing(t *testing.T) {
	assert.Equal(t, 0, Delta(Reason("drank_coffee")))
}
