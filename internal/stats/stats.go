package stats

import "time"

// UserStats is the per-user gamification aggregate. Points move only through
// the scoring service; everything else is written by profile/measurement
// operations.
type UserStats struct {
	UserID        string    `json:"user_id" db:"user_id"`
	Nickname      string    `json:"nickname" db:"nickname"`
	AvatarURL     *string   `json:"avatar_url" db:"avatar_url"`
	Points        int       `json:"points" db:"points"`
	CurrentWeight float64   `json:"current_weight" db:"current_weight"`
	StartWeight   float64   `json:"start_weight" db:"start_weight"`
	GoalWeight    float64   `json:"goal_weight" db:"goal_weight"`
	WeightLost    float64   `json:"weight_lost" db:"weight_lost"`
	WaistCm       *float64  `json:"waist_cm" db:"waist_cm"`
	Height        *float64  `json:"height" db:"height"`
	BMI           *float64  `json:"bmi" db:"bmi"`
	IdealWeight   *float64  `json:"ideal_weight" db:"ideal_weight"`
	Day           int       `json:"day" db:"day"`
	TotalDays     int       `json:"total_days" db:"total_days"`
	IsAdmin       bool      `json:"is_admin" db:"is_admin"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
