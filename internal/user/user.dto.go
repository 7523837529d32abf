package user

type CreateUserRequest struct {
	ClerkID   string `json:"clerkId" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Nickname  string `json:"nickname" validate:"required,min=2,max=30"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type UpdateProfileRequest struct {
	Nickname  string `json:"nickname,omitempty" validate:"omitempty,min=2,max=30"`
	AvatarURL string `json:"avatarUrl,omitempty" validate:"omitempty,url"`
}

// OnboardingRequest carries everything collected by the client's onboarding
// flow. Completing onboarding creates the user_stats row.
type OnboardingRequest struct {
	Nickname    string   `json:"nickname" validate:"required,min=2,max=30"`
	Weight      float64  `json:"weight" validate:"required,gt=0"`
	GoalWeight  float64  `json:"goal" validate:"required,gt=0"`
	Height      float64  `json:"height" validate:"required,gt=0"`
	BMI         float64  `json:"bmi" validate:"gte=0"`
	IdealWeight float64  `json:"idealWeight" validate:"gte=0"`
	AvatarURL   string   `json:"avatarUrl,omitempty"`
	WaistCm     *float64 `json:"waistCm,omitempty" validate:"omitempty,gt=0"`
	TotalDays   int      `json:"totalDays,omitempty" validate:"omitempty,gt=0"`
}
