package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/skillbloom/skillbloom/internal/catalog"
	"github.com/skillbloom/skillbloom/internal/model"
	"github.com/skillbloom/skillbloom/internal/validation"
)

// wizardSteps are the steps with a proceed requirement, checked on submit.
var wizardSteps = []string{model.StepSkill, model.StepGoal, model.StepTime}

type OnboardingService struct {
	catalog  *catalog.Catalog
	progress *ProgressService
}

func NewOnboardingService(c *catalog.Catalog, progress *ProgressService) *OnboardingService {
	return &OnboardingService{catalog: c, progress: progress}
}

func (s *OnboardingService) Catalog() *catalog.Catalog {
	return s.catalog
}

// CanProceed validates the current step of the wizard.
func (s *OnboardingService) CanProceed(step string, form model.OnboardingForm) error {
	return validation.ValidateOnboardingStep(step, form)
}

// Resolve turns a finished form into preferences. A skill mentioned in the
// goal text wins over the one picked in the wizard.
func (s *OnboardingService) Resolve(form model.OnboardingForm) *model.Preferences {
	skill := strings.TrimSpace(form.Skill)
	custom := strings.TrimSpace(form.CustomSkill)

	chosen := skill
	if chosen == "" {
		chosen = custom
	}

	detected, ok := s.catalog.DetectSkill(form.Goal)
	if ok {
		chosen = detected
	}

	if custom == "" && chosen != skill {
		custom = chosen
	}

	return &model.Preferences{
		Skill:       chosen,
		CustomSkill: custom,
		Goal:        strings.TrimSpace(form.Goal),
		TimePerDay:  form.TimePerDay,
	}
}

// Complete resolves the form, validates every step against the resolved
// skill, stores the preferences and plants the first skill in the garden.
// A skill detected in the goal satisfies the skill step on its own.
func (s *OnboardingService) Complete(ctx context.Context, learnerID string, form model.OnboardingForm) (*model.Preferences, error) {
	prefs := s.Resolve(form)

	resolved := form
	resolved.Skill = prefs.Skill
	for _, step := range wizardSteps {
		err := s.CanProceed(step, resolved)
		if err != nil {
			return nil, err
		}
	}

	err := s.progress.SavePreferences(ctx, learnerID, prefs)
	if err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}

	_, err = s.progress.EnsureInitialSkill(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	slog.Info("onboarding completed", "learner_id", learnerID, "skill", prefs.Skill, "time_per_day", prefs.TimePerDay)
	return prefs, nil
}
