package meal

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryBreakfast Category = "breakfast"
	CategoryLunch     Category = "lunch"
	CategorySnack     Category = "snack"
	CategoryDinner    Category = "dinner"
)

// Meal is either a user-logged meal or a public suggestion from the program
// catalog (IsSuggestion with a nil UserID).
type Meal struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	UserID       *uuid.UUID `json:"user_id" db:"user_id"`
	Name         string     `json:"name" db:"name"`
	Description  string     `json:"description" db:"description"`
	Calories     int        `json:"calories" db:"calories"`
	TimePrep     string     `json:"time_prep" db:"time_prep"`
	Tags         []string   `json:"tags" db:"tags"`
	Image        string     `json:"image" db:"image"`
	Category     Category   `json:"category" db:"category"`
	Consumed     bool       `json:"consumed" db:"consumed"`
	IsSuggestion bool       `json:"is_suggestion" db:"is_suggestion"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

type LogRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Calories    int      `json:"calories" validate:"gte=0"`
	TimePrep    string   `json:"timePrep"`
	Tags        []string `json:"tags"`
	Image       string   `json:"image"`
	Category    Category `json:"category" validate:"required,oneof=breakfast lunch snack dinner"`
}

type ConsumeRequest struct {
	Consumed bool `json:"consumed"`
}
