package scoring

// Reason identifies a point-awarding user action. Every point change in the
// system goes through one of these; there are no arbitrary writes.
type Reason string

const (
	ReasonActivityCompleted   Reason = "activity_completed"
	ReasonActivityUncompleted Reason = "activity_uncompleted"
	ReasonMealLogged          Reason = "meal_logged"
	ReasonMealConsumed        Reason = "meal_consumed"
	ReasonMeasurementLogged   Reason = "measurement_logged"
	ReasonGoalProgress        Reason = "goal_progress"
	ReasonGoalCompleted       Reason = "goal_completed"
	ReasonWorkoutUploaded     Reason = "workout_uploaded"
	ReasonResourcePublished   Reason = "resource_published"
	ReasonSocialPost          Reason = "social_post"
)

var deltas = map[Reason]int{
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

// Delta returns the point delta for a reason; unknown reasons are worth
// nothing rather than being an error.
func Delta(r Reason) int {
	return deltas[r]
}
