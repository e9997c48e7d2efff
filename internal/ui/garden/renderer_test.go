package garden

import (
	"bytes"
	"context"
	"testing"

	"github.com/skillbloom/skillbloom/internal/model"
	"github.com/skillbloom/skillbloom/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierRenderer_Garden(t *testing.T) {
	sprout := model.NewSkill("s1", "Rock & Roll")
	sprout.SetProgress(20)

	g := &service.Garden{
		Skills: []*model.Skill{sprout},
		Stats:  service.StatsFor([]*model.Skill{sprout}),
		DailyGoals: []*model.DailyGoal{
			{ID: "lesson", Title: "Complete a lesson", XP: 50, Done: true, Action: "/learn"},
		},
		XPEarned: 50,
	}

	var buf bytes.Buffer
	require.NoError(t, NewTierRenderer().Garden(g).Render(context.Background(), &buf))

	html := buf.String()
	assert.Contains(t, html, `data-tier="sprout"`)
	assert.Contains(t, html, "🌿")
	assert.Contains(t, html, "Rock &amp; Roll")
	assert.Contains(t, html, "/learn?skill=Rock+%26+Roll")
	assert.Contains(t, html, "line-through")
}

func TestTierRenderer_EmptyGarden(t *testing.T) {
	g := &service.Garden{Stats: service.StatsFor(nil)}

	var buf bytes.Buffer
	require.NoError(t, NewTierRenderer().Garden(g).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "Your garden is empty")
}
