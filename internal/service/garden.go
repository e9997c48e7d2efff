package service

import (
	"context"
	"errors"

	"github.com/skillbloom/skillbloom/internal/model"
	"github.com/skillbloom/skillbloom/internal/repository"
)

// Garden is everything the garden page shows for one learner.
type Garden struct {
	Preferences *model.Preferences `json:"preferences,omitempty"`
	Skills      []*model.Skill     `json:"skills"`
	Stats       *ProgressStats     `json:"stats"`
	DailyGoals  []*model.DailyGoal `json:"dailyGoals"`
	Date        string             `json:"date"`
	XPEarned    int                `json:"xpEarned"`
}

type GardenService struct {
	progress   *ProgressService
	dailyGoals *DailyGoalService
}

func NewGardenService(progress *ProgressService, dailyGoals *DailyGoalService) *GardenService {
	return &GardenService{progress: progress, dailyGoals: dailyGoals}
}

// Garden loads the snapshot, planting the first skill from preferences and
// rolling the daily goals over to today when needed.
func (s *GardenService) Garden(ctx context.Context, learnerID string) (*Garden, error) {
	prefs, err := s.progress.Preferences(ctx, learnerID)
	if err != nil && !errors.Is(err, repository.ErrPreferencesNotFound) {
		return nil, err
	}

	skills, err := s.progress.EnsureInitialSkill(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	goals, err := s.dailyGoals.Goals(ctx, learnerID, skills)
	if err != nil {
		return nil, err
	}

	return &Garden{
		Preferences: prefs,
		Skills:      skills,
		Stats:       StatsFor(skills),
		DailyGoals:  goals.Goals,
		Date:        goals.Date,
		XPEarned:    goals.XPEarned(),
	}, nil
}

// CompleteGoal marks a daily goal done and returns the refreshed snapshot.
func (s *GardenService) CompleteGoal(ctx context.Context, learnerID, goalID string) (*Garden, error) {
	skills, err := s.progress.Skills(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	_, err = s.dailyGoals.Complete(ctx, learnerID, goalID, skills)
	if err != nil {
		return nil, err
	}

	return s.Garden(ctx, learnerID)
}
