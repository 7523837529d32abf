package goal

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeHydration Type = "hydration"
	TypeMovement  Type = "movement"
	TypeSleep     Type = "sleep"
)

// DailyGoal is a per-user, per-day, per-type progress tracker. The completed
// flag flips false to true exactly once per day; that transition is the only
// trigger for the completion bonus.
type DailyGoal struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Date      time.Time `json:"date" db:"date"`
	Type      Type      `json:"type" db:"type"`
	Label     string    `json:"label" db:"label"`
	Target    float64   `json:"target" db:"target"`
	Current   float64   `json:"current" db:"current"`
	Unit      string    `json:"unit" db:"unit"`
	Icon      string    `json:"icon" db:"icon"`
	Color     string    `json:"color" db:"color"`
	Completed bool      `json:"completed" db:"completed"`
}

type ProgressRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// Defaults are the three goals created for each user at the start of a day.
func Defaults() []DailyGoal {
	return []DailyGoal{
		{Type: TypeHydration, Label: "Hidratação", Target: 3, Unit: "L", Icon: "water_drop", Color: "blue"},
		{Type: TypeMovement, Label: "Movimento", Target: 15, Unit: "min", Icon: "directions_walk", Color: "orange"},
		{Type: TypeSleep, Label: "Sono de Qualidade", Target: 8, Unit: "h", Icon: "bedtime", Color: "purple"},
	}
}

// ApplyProgress adds amount to the goal's progress, clamping at the target,
// and reports whether this write completed the goal for the first time.
// Registering more progress on an already-completed goal changes nothing and
// never re-fires the bonus.
func ApplyProgress(g *DailyGoal, amount float64) (bonusFired bool) {
	if amount <= 0 {
		return false
	}

	next := g.Current + amount
	if next > g.Target {
		next = g.Target
	}
	g.Current = next

	nowCompleted := g.Current >= g.Target
	bonusFired = nowCompleted && !g.Completed
	g.Completed = g.Completed || nowCompleted
	return bonusFired
}
