package medal

import (
	"time"

	"github.com/google/uuid"
)

type RequirementType string

const (
	RequirementPoints     RequirementType = "points"
	RequirementWeightLost RequirementType = "weight_lost"
	RequirementDays       RequirementType = "days"
	RequirementWorkouts   RequirementType = "workouts"
)

type Medal struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	Name             string          `json:"name" db:"name"`
	Description      string          `json:"description" db:"description"`
	Icon             string          `json:"icon" db:"icon"`
	RequirementType  RequirementType `json:"requirement_type" db:"requirement_type"`
	RequirementValue float64         `json:"requirement_value" db:"requirement_value"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}

type UserMedal struct {
	ID       uuid.UUID `json:"id" db:"id"`
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	MedalID  uuid.UUID `json:"medal_id" db:"medal_id"`
	EarnedAt time.Time `json:"earned_at" db:"earned_at"`
}

type MedalWithStatus struct {
	Medal
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

// EvalStats are the aggregates the medal predicates run against.
type EvalStats struct {
	Points       int
	WeightLost   float64
	Day          int
	WorkoutCount int
}

// Qualifies reports whether the stats satisfy the medal's threshold. All
// thresholds are >=, so a zero requirement always qualifies.
func Qualifies(m *Medal, s EvalStats) bool {
	switch m.RequirementType {
	case RequirementPoints:
		return float64(s.Points) >= m.RequirementValue
	case RequirementWeightLost:
		return s.WeightLost >= m.RequirementValue
	case RequirementDays:
		return float64(s.Day) >= m.RequirementValue
	case RequirementWorkouts:
		return float64(s.WorkoutCount) >= m.RequirementValue
	default:
		return false
	}
}

// Eligible returns, in one pass, every medal from the catalog that the user
// qualifies for and has not already earned.
func Eligible(catalog []*Medal, earned map[uuid.UUID]bool, s EvalStats) []*Medal {
	var out []*Medal
	for _, m := range catalog {
		if earned[m.ID] {
			continue
		}
		if Qualifies(m, s) {
			out = append(out, m)
		}
	}
	return out
}
