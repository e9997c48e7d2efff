package validation

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/skillbloom/skillbloom/internal/model"
)

var (
	ErrOnboardingSkillRequired = errors.New("choose a skill or enter your own")
	ErrGoalTooShort            = errors.New("tell us a little more about your goal (more than 10 characters)")
	ErrInvalidTimePerDay       = errors.New("choose 5, 15, 30 or 60 minutes per day")
	ErrUnknownStep             = errors.New("unknown onboarding step")
)

// ValidateOnboardingStep reports whether the wizard may move past step.
// Welcome and ready have no requirements.
func ValidateOnboardingStep(step string, form model.OnboardingForm) error {
	switch step {
	case model.StepWelcome, model.StepReady:
		return nil
	case model.StepSkill:
		if strings.TrimSpace(form.Skill) == "" && strings.TrimSpace(form.CustomSkill) == "" {
			return ErrOnboardingSkillRequired
		}
		return nil
	case model.StepGoal:
		if utf8.RuneCountInString(strings.TrimSpace(form.Goal)) <= model.MinGoalLength {
			return ErrGoalTooShort
		}
		return nil
	case model.StepTime:
		if !model.ValidTimePerDay(form.TimePerDay) {
			return ErrInvalidTimePerDay
		}
		return nil
	}
	return ErrUnknownStep
}
