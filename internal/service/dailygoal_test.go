package service

import (
	"context"
	"testing"
	"time"

	"github.com/skillbloom/skillbloom/internal/model"
	"github.com/skillbloom/skillbloom/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDailyGoals(now *time.Time) *DailyGoalService {
	repo := repository.NewProgressRepository(repository.NewMemoryStore())
	svc := NewDailyGoalService(repo, time.UTC)
	svc.now = func() time.Time { return *now }
	return svc
}

func TestDailyGoals_GeneratedOncePerDay(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestDailyGoals(&now)
	skills := []*model.Skill{model.NewSkill("s1", "Guitar")}

	set, err := svc.Goals(ctx, testLearner, skills)
	require.NoError(t, err)
	assert.Equal(t, "2026-06-01", set.Date)
	require.Len(t, set.Goals, 3)
	assert.Equal(t, "Complete a Guitar lesson", set.Goals[0].Title)
	assert.Equal(t, "/learn?skill=Guitar", set.Goals[0].Action)

	_, err = svc.Complete(ctx, testLearner, "lesson", skills)
	require.NoError(t, err)

	// later the same day the completed goal is kept
	now = now.Add(10 * time.Hour)
	set, err = svc.Goals(ctx, testLearner, skills)
	require.NoError(t, err)
	assert.True(t, set.Goals[0].Done)
	assert.Equal(t, 50, set.XPEarned())

	// the next day starts fresh
	now = now.Add(6 * time.Hour)
	set, err = svc.Goals(ctx, testLearner, skills)
	require.NoError(t, err)
	assert.Equal(t, "2026-06-02", set.Date)
	assert.False(t, set.Goals[0].Done)
	assert.Equal(t, 0, set.XPEarned())
}

func TestDailyGoals_Complete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestDailyGoals(&now)

	set, err := svc.Complete(ctx, testLearner, "first", nil)
	require.NoError(t, err)
	assert.True(t, set.Goals[0].Done)

	// completing twice keeps it done
	set, err = svc.Complete(ctx, testLearner, "first", nil)
	require.NoError(t, err)
	assert.True(t, set.Goals[0].Done)
	assert.Equal(t, 50, set.XPEarned())

	_, err = svc.Complete(ctx, testLearner, "missing", nil)
	assert.ErrorIs(t, err, ErrDailyGoalNotFound)
}

func TestGenerateDailyGoals_NoSkills(t *testing.T) {
	goals := GenerateDailyGoals(nil)

	require.Len(t, goals, 3)
	assert.Equal(t, "first", goals[0].ID)
	assert.Equal(t, 100, goals[0].XP+goals[1].XP+goals[2].XP)
}
