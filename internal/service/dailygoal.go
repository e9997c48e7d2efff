package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/skillbloom/skillbloom/internal/model"
	"github.com/skillbloom/skillbloom/internal/repository"
)

var ErrDailyGoalNotFound = errors.New("daily goal not found")

type DailyGoalService struct {
	repo repository.ProgressRepository
	loc  *time.Location
	now  func() time.Time
}

func NewDailyGoalService(repo repository.ProgressRepository, loc *time.Location) *DailyGoalService {
	if loc == nil {
		loc = time.Local
	}
	return &DailyGoalService{repo: repo, loc: loc, now: time.Now}
}

// Today returns the current calendar day as stored with the goals.
func (s *DailyGoalService) Today() string {
	return s.now().In(s.loc).Format(model.DateLayout)
}

// Goals returns today's goals, replacing the stored set when it is missing
// or was generated on another day.
func (s *DailyGoalService) Goals(ctx context.Context, learnerID string, skills []*model.Skill) (*model.DailyGoalSet, error) {
	today := s.Today()

	set, err := s.repo.DailyGoals(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if len(set.Goals) > 0 && set.Date == today {
		return set, nil
	}

	set = &model.DailyGoalSet{Date: today, Goals: GenerateDailyGoals(skills)}
	err = s.repo.SaveDailyGoals(ctx, learnerID, set)
	if err != nil {
		return nil, fmt.Errorf("failed to save daily goals: %w", err)
	}

	return set, nil
}

// Complete marks one of today's goals done. Completion cannot be undone.
func (s *DailyGoalService) Complete(ctx context.Context, learnerID, goalID string, skills []*model.Skill) (*model.DailyGoalSet, error) {
	set, err := s.Goals(ctx, learnerID, skills)
	if err != nil {
		return nil, err
	}

	var goal *model.DailyGoal
	for _, g := range set.Goals {
		if g.ID == goalID {
			goal = g
			break
		}
	}
	if goal == nil {
		return nil, ErrDailyGoalNotFound
	}
	if goal.Done {
		return set, nil
	}

	goal.Done = true
	err = s.repo.SaveDailyGoals(ctx, learnerID, set)
	if err != nil {
		return nil, fmt.Errorf("failed to complete daily goal: %w", err)
	}

	return set, nil
}

// GenerateDailyGoals builds the fixed three-goal set, personalised to the
// first skill when there is one.
func GenerateDailyGoals(skills []*model.Skill) []*model.DailyGoal {
	if len(skills) == 0 {
		return []*model.DailyGoal{
			{ID: "first", Title: "Start your first lesson", XP: 50, Action: "/learn"},
			{ID: "profile", Title: "Add a skill to your garden", XP: 30, Action: "#add-skill"},
			{ID: "explore", Title: "Explore available skills", XP: 20, Action: "/onboarding"},
		}
	}

	name := skills[0].Name
	learn := "/learn?skill=" + url.QueryEscape(name)
	return []*model.DailyGoal{
		{ID: "lesson", Title: fmt.Sprintf("Complete a %s lesson", name), XP: 50, Action: learn},
		{ID: "quiz", Title: fmt.Sprintf("Take a quiz on %s", name), XP: 30, Action: learn},
		{ID: "streak", Title: "Practice for your daily streak", XP: 20, Action: "/learn"},
	}
}
