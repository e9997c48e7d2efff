package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/skillbloom/skillbloom/internal/model"
)

// Persisted keys, one value per learner each.
const (
	KeyPreferences    = "skillbloom_preferences"
	KeySkills         = "skillbloom_skills"
	KeyDailyGoals     = "skillbloom_daily_goals"
	KeyDailyGoalsDate = "skillbloom_daily_goals_date"
)

var ErrPreferencesNotFound = errors.New("preferences not found")

type ProgressRepository interface {
	Preferences(ctx context.Context, learnerID string) (*model.Preferences, error)
	SavePreferences(ctx context.Context, learnerID string, prefs *model.Preferences) error
	Skills(ctx context.Context, learnerID string) ([]*model.Skill, error)
	SaveSkills(ctx context.Context, learnerID string, skills []*model.Skill) error
	// DailyGoals returns a set with an empty Date when nothing is stored.
	DailyGoals(ctx context.Context, learnerID string) (*model.DailyGoalSet, error)
	SaveDailyGoals(ctx context.Context, learnerID string, set *model.DailyGoalSet) error
}

type progressRepository struct {
	store KeyValueStore
}

func NewProgressRepository(store KeyValueStore) ProgressRepository {
	return &progressRepository{store: store}
}

func (r *progressRepository) Preferences(ctx context.Context, learnerID string) (*model.Preferences, error) {
	prefs := &model.Preferences{}
	err := r.load(ctx, learnerID, KeyPreferences, prefs)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, ErrPreferencesNotFound
	}
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

func (r *progressRepository) SavePreferences(ctx context.Context, learnerID string, prefs *model.Preferences) error {
	return r.save(ctx, learnerID, KeyPreferences, prefs)
}

func (r *progressRepository) Skills(ctx context.Context, learnerID string) ([]*model.Skill, error) {
	var skills []*model.Skill
	err := r.load(ctx, learnerID, KeySkills, &skills)
	if errors.Is(err, ErrKeyNotFound) {
		return []*model.Skill{}, nil
	}
	if err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *progressRepository) SaveSkills(ctx context.Context, learnerID string, skills []*model.Skill) error {
	if skills == nil {
		skills = []*model.Skill{}
	}
	return r.save(ctx, learnerID, KeySkills, skills)
}

func (r *progressRepository) DailyGoals(ctx context.Context, learnerID string) (*model.DailyGoalSet, error) {
	set := &model.DailyGoalSet{}

	err := r.load(ctx, learnerID, KeyDailyGoals, &set.Goals)
	if errors.Is(err, ErrKeyNotFound) {
		return set, nil
	}
	if err != nil {
		return nil, err
	}

	err = r.load(ctx, learnerID, KeyDailyGoalsDate, &set.Date)
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		return nil, err
	}

	return set, nil
}

// SaveDailyGoals writes the list before the date stamp. A crash between the
// two leaves a stale date, which only forces one extra regeneration.
func (r *progressRepository) SaveDailyGoals(ctx context.Context, learnerID string, set *model.DailyGoalSet) error {
	goals := set.Goals
	if goals == nil {
		goals = []*model.DailyGoal{}
	}

	err := r.save(ctx, learnerID, KeyDailyGoals, goals)
	if err != nil {
		return err
	}
	return r.save(ctx, learnerID, KeyDailyGoalsDate, set.Date)
}

func (r *progressRepository) load(ctx context.Context, learnerID, key string, v any) error {
	data, err := r.store.Get(ctx, learnerID, key)
	if err != nil {
		return err
	}

	err = json.Unmarshal(data, v)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (r *progressRepository) save(ctx context.Context, learnerID, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	err = r.store.Put(ctx, learnerID, key, data)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
