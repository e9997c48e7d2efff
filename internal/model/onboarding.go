package model

// Onboarding wizard steps, in order.
const (
	StepWelcome = "welcome"
	StepSkill   = "skill"
	StepGoal    = "goal"
	StepTime    = "time"
	StepReady   = "ready"
)

// MinGoalLength is the length a goal must exceed to move past the goal step.
const MinGoalLength = 10

// OnboardingForm is what the wizard collects before it is turned into Preferences.
type OnboardingForm struct {
	Skill       string `json:"skill"`
	CustomSkill string `json:"customSkill"`
	Goal        string `json:"goal"`
	TimePerDay  int    `json:"timePerDay"`
}
