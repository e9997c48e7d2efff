package flow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/skillbloom/skillbloom/internal/model"
	"github.com/skillbloom/skillbloom/internal/repository"
	"github.com/skillbloom/skillbloom/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const learnerID = "learner-1"

type stubGenerator struct {
	lesson    *model.LessonContent
	lessonErr error
	quiz      []model.QuizQuestion
	quizErr   error

	// block, when set, holds GenerateLesson until it is closed
	block   chan struct{}
	started chan struct{}
}

func (g *stubGenerator) GenerateLesson(_ context.Context, req service.LessonRequest) (*model.LessonContent, error) {
	if g.started != nil {
		close(g.started)
	}
	if g.block != nil {
		<-g.block
	}
	if g.lessonErr != nil {
		return nil, g.lessonErr
	}
	if g.lesson != nil {
		return g.lesson, nil
	}
	return service.FallbackLesson(req.Skill), nil
}

func (g *stubGenerator) GenerateQuiz(_ context.Context, _ service.QuizRequest) ([]model.QuizQuestion, error) {
	return g.quiz, g.quizErr
}

func newTestController(t *testing.T, gen *stubGenerator) (*Controller, *service.ProgressService) {
	t.Helper()
	repo := repository.NewProgressRepository(repository.NewMemoryStore())
	progress := service.NewProgressService(repo)
	return NewController(NewStore(time.Hour, nil), gen, progress, nil), progress
}

func TestLessonFlow(t *testing.T) {
	ctx := context.Background()
	gen := &stubGenerator{}
	c, progress := newTestController(t, gen)

	_, err := progress.AddSkill(ctx, learnerID, "Guitar")
	require.NoError(t, err)

	state, err := c.Start(ctx, learnerID, "Guitar")
	require.NoError(t, err)
	assert.Equal(t, StageLesson, state.Stage)
	assert.Equal(t, "Introduction to Guitar", state.Lesson.Title)
	assert.Equal(t, 3, state.PageCount)
	assert.Equal(t, 0, state.Page)

	// prev never goes below the introduction
	state, err = c.Prev(learnerID)
	require.NoError(t, err)
	assert.Equal(t, 0, state.Page)

	state, err = c.Next(ctx, learnerID)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Page)

	state, err = c.Next(ctx, learnerID)
	require.NoError(t, err)
	assert.Equal(t, 2, state.Page)

	state, err = c.RecordExercise(learnerID, "Chord changes")
	require.NoError(t, err)
	assert.Equal(t, "Chord changes", state.ExerciseAnswer)

	// past the exercise the quiz is generated; empty quiz means the recall question
	state, err = c.Next(ctx, learnerID)
	require.NoError(t, err)
	assert.Equal(t, StageQuiz, state.Stage)
	require.Len(t, state.Quiz, 1)
	assert.Equal(t, "Introduction to Guitar", state.Quiz[0].Options[0])

	_, err = c.Continue(ctx, learnerID)
	assert.ErrorIs(t, err, ErrNoAnswer)

	state, err = c.Answer(learnerID, 2)
	require.NoError(t, err)
	assert.True(t, state.ShowAnswer)
	assert.Equal(t, 0, state.CorrectAnswers)

	// a second answer is ignored
	state, err = c.Answer(learnerID, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, *state.SelectedAnswer)

	state, err = c.Continue(ctx, learnerID)
	require.NoError(t, err)
	assert.Equal(t, StageComplete, state.Stage)
	assert.Equal(t, CompletionEffects, state.Effects)
	require.NotNil(t, state.Progress)
	assert.Equal(t, 10, state.Progress.Progress)
	assert.Equal(t, model.TierSeed, state.Progress.Level)
	assert.Equal(t, 1, state.Progress.LessonsCompleted)
	assert.Equal(t, 1, state.Progress.Streak)

	skills, err := progress.Skills(ctx, learnerID)
	require.NoError(t, err)
	assert.Equal(t, 10, skills[0].Progress)

	state = c.Reset(learnerID)
	assert.Equal(t, StageSelect, state.Stage)
	assert.Equal(t, "Guitar", state.Skill)
	assert.Nil(t, state.Lesson)
}

func TestQuizScoring(t *testing.T) {
	ctx := context.Background()
	gen := &stubGenerator{quiz: []model.QuizQuestion{
		{Question: "Q1", Options: []string{"a", "b"}, CorrectIndex: 1},
		{Question: "Q2", Options: []string{"a", "b"}, CorrectIndex: 0},
	}}
	c, _ := newTestController(t, gen)

	_, err := c.Start(ctx, learnerID, "Python")
	require.NoError(t, err)
	for range 3 {
		_, err = c.Next(ctx, learnerID)
		require.NoError(t, err)
	}

	_, err = c.Answer(learnerID, 5)
	assert.ErrorIs(t, err, ErrInvalidAnswer)

	state, err := c.Answer(learnerID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, state.CorrectAnswers)

	state, err = c.Continue(ctx, learnerID)
	require.NoError(t, err)
	assert.Equal(t, 1, state.QuestionIndex)
	assert.Nil(t, state.SelectedAnswer)

	_, err = c.Answer(learnerID, 0)
	require.NoError(t, err)

	// no matching skill in the garden still completes the lesson
	state, err = c.Continue(ctx, learnerID)
	require.NoError(t, err)
	assert.Equal(t, StageComplete, state.Stage)
	assert.Equal(t, 2, state.CorrectAnswers)
	assert.Nil(t, state.Progress)
}

func TestStart_Errors(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, &stubGenerator{lessonErr: errors.New("boom")})

	_, err := c.Start(ctx, learnerID, " ")
	assert.ErrorIs(t, err, service.ErrSkillRequired)

	state, err := c.Start(ctx, learnerID, "Guitar")
	require.NoError(t, err)
	assert.Equal(t, StageSelect, state.Stage)
	assert.Equal(t, lessonFailedMessage, state.Error)
	assert.False(t, state.Pending)

	_, err = c.Next(ctx, learnerID)
	assert.ErrorIs(t, err, ErrWrongStage)
	_, err = c.Answer(learnerID, 0)
	assert.ErrorIs(t, err, ErrWrongStage)
}

func TestStart_BusyAndReset(t *testing.T) {
	ctx := context.Background()
	gen := &stubGenerator{block: make(chan struct{}), started: make(chan struct{})}
	c, _ := newTestController(t, gen)

	var wg sync.WaitGroup
	wg.Add(1)
	var first State
	go func() {
		defer wg.Done()
		first, _ = c.Start(ctx, learnerID, "Guitar")
	}()
	<-gen.started

	assert.True(t, c.State(learnerID).Pending)

	_, err := c.Start(ctx, learnerID, "Guitar")
	assert.ErrorIs(t, err, ErrBusy)
	_, err = c.Prev(learnerID)
	assert.ErrorIs(t, err, ErrBusy)

	// reset while pending drops the late lesson
	state := c.Reset(learnerID)
	assert.Equal(t, StageSelect, state.Stage)
	assert.False(t, state.Pending)

	close(gen.block)
	wg.Wait()

	assert.Equal(t, StageSelect, first.Stage)
	assert.Equal(t, StageSelect, c.State(learnerID).Stage)
	assert.Nil(t, c.State(learnerID).Lesson)
}

func TestStart_UpdatesPreferredSkill(t *testing.T) {
	ctx := context.Background()
	c, progress := newTestController(t, &stubGenerator{})

	require.NoError(t, progress.SavePreferences(ctx, learnerID, &model.Preferences{Skill: "Python", TimePerDay: 15}))

	_, err := c.Start(ctx, learnerID, "Guitar")
	require.NoError(t, err)

	prefs, err := progress.Preferences(ctx, learnerID)
	require.NoError(t, err)
	assert.Equal(t, "Guitar", prefs.Skill)
}

func TestStore_Sweep(t *testing.T) {
	store := NewStore(time.Minute, nil)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Session("a")
	now = now.Add(30 * time.Second)
	store.Session("b")

	now = now.Add(45 * time.Second)
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 0, store.Len())
}

// slowProgress holds RecordLessonCompletion until release is closed.
type slowProgress struct {
	recording chan struct{}
	release   chan struct{}
}

func (p *slowProgress) UpdatePreferredSkill(context.Context, string, string) error { return nil }

func (p *slowProgress) RecordLessonCompletion(_ context.Context, _, skillName string) (*model.Skill, error) {
	close(p.recording)
	<-p.release
	skill := model.NewSkill("s1", skillName)
	skill.CompleteLesson(time.Now())
	return skill, nil
}

func TestContinue_StateReadableWhileRecording(t *testing.T) {
	ctx := context.Background()
	slow := &slowProgress{recording: make(chan struct{}), release: make(chan struct{})}
	c := NewController(NewStore(time.Hour, nil), &stubGenerator{}, slow, nil)

	_, err := c.Start(ctx, learnerID, "Guitar")
	require.NoError(t, err)
	for range 3 {
		_, err = c.Next(ctx, learnerID)
		require.NoError(t, err)
	}
	_, err = c.Answer(learnerID, 0)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	var done State
	go func() {
		defer wg.Done()
		done, _ = c.Continue(ctx, learnerID)
	}()
	<-slow.recording

	state := c.State(learnerID)
	assert.True(t, state.Pending)
	assert.Equal(t, StageQuiz, state.Stage)

	_, err = c.Continue(ctx, learnerID)
	assert.ErrorIs(t, err, ErrBusy)

	close(slow.release)
	wg.Wait()

	assert.Equal(t, StageComplete, done.Stage)
	assert.False(t, done.Pending)
	require.NotNil(t, done.Progress)
	assert.Equal(t, 10, done.Progress.Progress)
}
