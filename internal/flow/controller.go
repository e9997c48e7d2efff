// Package flow drives a single lesson for a learner: pick a skill, page
// through the generated lesson, answer the quiz, record the result.
package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/skillbloom/skillbloom/internal/metrics"
	"github.com/skillbloom/skillbloom/internal/model"
	"github.com/skillbloom/skillbloom/internal/service"
)

var (
	ErrBusy          = errors.New("content is still being generated")
	ErrWrongStage    = errors.New("action is not available at this stage")
	ErrNoAnswer      = errors.New("choose an answer before continuing")
	ErrInvalidAnswer = errors.New("answer index out of range")
)

// QuizQuestions is how many questions are requested after each lesson.
const QuizQuestions = 3

const lessonFailedMessage = "Failed to generate lesson. Please try again."

type Generator interface {
	GenerateLesson(ctx context.Context, req service.LessonRequest) (*model.LessonContent, error)
	GenerateQuiz(ctx context.Context, req service.QuizRequest) ([]model.QuizQuestion, error)
}

type Progress interface {
	UpdatePreferredSkill(ctx context.Context, learnerID, skill string) error
	RecordLessonCompletion(ctx context.Context, learnerID, skillName string) (*model.Skill, error)
}

type Controller struct {
	store     *Store
	generator Generator
	progress  Progress
	metrics   *metrics.Metrics
}

func NewController(store *Store, generator Generator, progress Progress, m *metrics.Metrics) *Controller {
	return &Controller{
		store:     store,
		generator: generator,
		progress:  progress,
		metrics:   m,
	}
}

// State returns the learner's current session.
func (c *Controller) State(learnerID string) State {
	sess := c.store.Session(learnerID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot()
}

// Start generates a beginner lesson for skill and moves to the lesson stage.
// A generation failure keeps the session in select with an error message.
func (c *Controller) Start(ctx context.Context, learnerID, skill string) (State, error) {
	skill = strings.TrimSpace(skill)
	sess := c.store.Session(learnerID)

	sess.mu.Lock()
	if skill == "" {
		defer sess.mu.Unlock()
		return sess.snapshot(), service.ErrSkillRequired
	}
	epoch, err := sess.begin(StageSelect)
	if err != nil {
		defer sess.mu.Unlock()
		return sess.snapshot(), err
	}
	sess.state.Skill = skill
	sess.state.Error = ""
	sess.mu.Unlock()

	err = c.progress.UpdatePreferredSkill(ctx, learnerID, skill)
	if err != nil {
		slog.Error("failed to update preferred skill", "error", err, "learner_id", learnerID)
	}

	lesson, genErr := c.generator.GenerateLesson(ctx, service.LessonRequest{
		Skill: skill,
		Level: model.LevelBeginner,
	})

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if !sess.finish(epoch) {
		return sess.snapshot(), nil
	}

	if genErr != nil {
		slog.Error("failed to generate lesson", "error", genErr, "learner_id", learnerID, "skill", skill)
		sess.state.Error = lessonFailedMessage
		return sess.snapshot(), nil
	}

	sess.state.Stage = StageLesson
	sess.state.Lesson = lesson
	sess.state.Page = 0
	sess.state.PageCount = lesson.PageCount()
	return sess.snapshot(), nil
}

// Next turns the lesson page. Past the exercise it generates the quiz.
func (c *Controller) Next(ctx context.Context, learnerID string) (State, error) {
	sess := c.store.Session(learnerID)

	sess.mu.Lock()
	if sess.pending {
		defer sess.mu.Unlock()
		return sess.snapshot(), ErrBusy
	}
	if sess.state.Stage != StageLesson {
		defer sess.mu.Unlock()
		return sess.snapshot(), ErrWrongStage
	}
	if sess.state.Page < sess.state.PageCount-1 {
		defer sess.mu.Unlock()
		sess.state.Page++
		return sess.snapshot(), nil
	}

	epoch, _ := sess.begin(StageLesson)
	skill := sess.state.Skill
	lesson := sess.state.Lesson
	sess.mu.Unlock()

	quiz, err := c.generator.GenerateQuiz(ctx, service.QuizRequest{
		Skill:         skill,
		LessonContent: lesson.Text(),
		NumQuestions:  QuizQuestions,
	})
	if err != nil || len(quiz) == 0 {
		if err != nil {
			slog.Error("failed to generate quiz", "error", err, "learner_id", learnerID, "skill", skill)
		}
		quiz = LessonRecallQuiz(skill, lesson.Title)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if !sess.finish(epoch) {
		return sess.snapshot(), nil
	}

	sess.state.Stage = StageQuiz
	sess.state.Quiz = quiz
	sess.state.QuestionIndex = 0
	sess.state.SelectedAnswer = nil
	sess.state.ShowAnswer = false
	sess.state.CorrectAnswers = 0
	return sess.snapshot(), nil
}

// Prev moves back one lesson page, never below the introduction.
func (c *Controller) Prev(learnerID string) (State, error) {
	return c.update(learnerID, StageLesson, func(st *State) error {
		if st.Page > 0 {
			st.Page--
		}
		return nil
	})
}

// RecordExercise keeps the learner's free-text exercise answer. It is not graded.
func (c *Controller) RecordExercise(learnerID, answer string) (State, error) {
	return c.update(learnerID, StageLesson, func(st *State) error {
		st.ExerciseAnswer = answer
		return nil
	})
}

// Answer selects an option for the current question. Only the first
// selection counts; later ones are ignored.
func (c *Controller) Answer(learnerID string, index int) (State, error) {
	return c.update(learnerID, StageQuiz, func(st *State) error {
		if st.SelectedAnswer != nil {
			return nil
		}
		question := st.Quiz[st.QuestionIndex]
		if index < 0 || index >= len(question.Options) {
			return ErrInvalidAnswer
		}

		st.SelectedAnswer = &index
		st.ShowAnswer = true
		if index == question.CorrectIndex {
			st.CorrectAnswers++
		}
		return nil
	})
}

// Continue moves to the next question, or completes the lesson after the
// last one. Progress is credited regardless of the score. The progress write
// happens outside the session lock with the session marked pending, so State
// stays responsive while the store is slow.
func (c *Controller) Continue(ctx context.Context, learnerID string) (State, error) {
	sess := c.store.Session(learnerID)

	sess.mu.Lock()
	if sess.pending {
		defer sess.mu.Unlock()
		return sess.snapshot(), ErrBusy
	}
	if sess.state.Stage != StageQuiz {
		defer sess.mu.Unlock()
		return sess.snapshot(), ErrWrongStage
	}
	if sess.state.SelectedAnswer == nil {
		defer sess.mu.Unlock()
		return sess.snapshot(), ErrNoAnswer
	}
	if sess.state.QuestionIndex < len(sess.state.Quiz)-1 {
		defer sess.mu.Unlock()
		sess.state.QuestionIndex++
		sess.state.SelectedAnswer = nil
		sess.state.ShowAnswer = false
		return sess.snapshot(), nil
	}

	epoch, _ := sess.begin(StageQuiz)
	skillName := sess.state.Skill
	sess.mu.Unlock()

	skill, err := c.progress.RecordLessonCompletion(ctx, learnerID, skillName)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if !sess.finish(epoch) {
		return sess.snapshot(), nil
	}
	if err != nil {
		return sess.snapshot(), fmt.Errorf("failed to record lesson: %w", err)
	}
	c.metrics.RecordLessonCompleted()

	sess.state.Stage = StageComplete
	sess.state.Progress = skill
	sess.state.Effects = CompletionEffects
	slog.Info("lesson completed", "learner_id", learnerID, "skill", skillName,
		"correct", sess.state.CorrectAnswers, "questions", len(sess.state.Quiz))
	return sess.snapshot(), nil
}

// Reset clears everything but the skill and returns to select. A generation
// still in flight is discarded when it returns.
func (c *Controller) Reset(learnerID string) State {
	sess := c.store.Session(learnerID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.reset()
	return sess.snapshot()
}

func (c *Controller) update(learnerID string, stage Stage, fn func(*State) error) (State, error) {
	sess := c.store.Session(learnerID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.pending {
		return sess.snapshot(), ErrBusy
	}
	if sess.state.Stage != stage {
		return sess.snapshot(), ErrWrongStage
	}

	err := fn(&sess.state)
	return sess.snapshot(), err
}

// begin marks a generation in flight. Callers must hold mu.
func (s *Session) begin(stage Stage) (uint64, error) {
	if s.pending {
		return 0, ErrBusy
	}
	if s.state.Stage != stage {
		return 0, ErrWrongStage
	}
	s.pending = true
	return s.epoch, nil
}

// finish clears the in-flight mark and reports whether the result still
// belongs to this session. Callers must hold mu.
func (s *Session) finish(epoch uint64) bool {
	if s.epoch != epoch {
		return false
	}
	s.pending = false
	return true
}

// LessonRecallQuiz is the single question used when no quiz could be generated.
func LessonRecallQuiz(skill, lessonTitle string) []model.QuizQuestion {
	topic := lessonTitle
	if topic == "" {
		topic = skill
	}
	return []model.QuizQuestion{
		{
			Question:     fmt.Sprintf("What was the main topic of today's lesson about %s?", skill),
			Options:      []string{topic, "Something else", "I don't remember", "None of above"},
			CorrectIndex: 0,
			Explanation:  "Great job paying attention to the lesson!",
		},
	}
}
