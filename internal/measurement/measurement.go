package measurement

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one day's weight/waist record. At most one entry exists per
// (user, date); a same-day write replaces instead of duplicating.
type Entry struct {
	ID      uuid.UUID `json:"id" db:"id"`
	UserID  uuid.UUID `json:"user_id" db:"user_id"`
	Date    time.Time `json:"date" db:"date"`
	Weight  float64   `json:"weight" db:"weight"`
	WaistCm *float64  `json:"waist_cm" db:"waist_cm"`
	Label   string    `json:"label" db:"label"`
}

type RecordRequest struct {
	Weight  float64  `json:"weight" validate:"required,gt=0"`
	WaistCm *float64 `json:"waistCm,omitempty" validate:"omitempty,gt=0"`
}

// WeightLossPercentage is the loss between start and current weight as a
// percentage of the start, clamped at zero. Gaining weight never produces
// negative "loss" credit.
func WeightLossPercentage(startWeight, currentWeight float64) float64 {
	if startWeight <= 0 {
		return 0
	}
	p := (startWeight - currentWeight) / startWeight * 100
	if p < 0 {
		return 0
	}
	return p
}

// WaistReductionPercentage uses the earliest recorded waist value as the
// baseline. Without a usable baseline the reduction is 0, never a guess.
func WaistReductionPercentage(baselineWaist, currentWaist *float64) float64 {
	if baselineWaist == nil || currentWaist == nil || *baselineWaist <= 0 {
		return 0
	}
	p := (*baselineWaist - *currentWaist) / *baselineWaist * 100
	if p < 0 {
		return 0
	}
	return p
}
