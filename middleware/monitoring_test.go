package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObservePointsAwardedAcceptsReversals(t *testing.T) {
	// Un-completing an activity reports a negative delta; the counter must
	// absorb it as a reversal instead of panicking.
	assert.NotPanics(t, func() {
		ObservePointsAwarded("activity_uncompleted", -50)
	})
	assert.NotPanics(t, func() {
		ObservePointsAwarded("activity_completed", 50)
	})
}
