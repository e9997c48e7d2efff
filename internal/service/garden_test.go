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

func TestGarden(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewProgressRepository(repository.NewMemoryStore())
	progress := NewProgressService(repo)
	garden := NewGardenService(progress, NewDailyGoalService(repo, time.UTC))

	g, err := garden.Garden(ctx, testLearner)
	require.NoError(t, err)
	assert.Nil(t, g.Preferences)
	assert.Empty(t, g.Skills)
	assert.Equal(t, "first", g.DailyGoals[0].ID)

	require.NoError(t, progress.SavePreferences(ctx, testLearner, &model.Preferences{Skill: "Spanish", TimePerDay: 5}))

	g, err = garden.Garden(ctx, testLearner)
	require.NoError(t, err)
	require.Len(t, g.Skills, 1)
	assert.Equal(t, "Spanish", g.Skills[0].Name)
	assert.Equal(t, 1, g.Stats.Skills)

	g, err = garden.CompleteGoal(ctx, testLearner, g.DailyGoals[0].ID)
	require.NoError(t, err)
	assert.True(t, g.DailyGoals[0].Done)
	assert.Equal(t, g.DailyGoals[0].XP, g.XPEarned)

	_, err = garden.CompleteGoal(ctx, testLearner, "missing")
	assert.ErrorIs(t, err, ErrDailyGoalNotFound)
}
