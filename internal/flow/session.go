package flow

import (
	"sync"
	"time"

	"github.com/skillbloom/skillbloom/internal/model"
)

type Stage string

const (
	StageSelect   Stage = "select"
	StageLesson   Stage = "lesson"
	StageQuiz     Stage = "quiz"
	StageComplete Stage = "complete"
)

// Effect is a named visual effect the page plays DelayMS after completion.
type Effect struct {
	Name    string `json:"name"`
	DelayMS int    `json:"delayMs"`
}

// CompletionEffects is played when a lesson is finished: nothing right away,
// confetti at 300ms, the bloom burst at one second.
var CompletionEffects = []Effect{
	{Name: "celebrate", DelayMS: 300},
	{Name: "bloom", DelayMS: 1000},
}

// State is the client-visible snapshot of a learn session.
type State struct {
	Stage          Stage                `json:"stage"`
	Skill          string               `json:"skill"`
	Lesson         *model.LessonContent `json:"lesson,omitempty"`
	Page           int                  `json:"page"`
	PageCount      int                  `json:"pageCount"`
	ExerciseAnswer string               `json:"exerciseAnswer,omitempty"`
	Quiz           []model.QuizQuestion `json:"quiz,omitempty"`
	QuestionIndex  int                  `json:"questionIndex"`
	SelectedAnswer *int                 `json:"selectedAnswer"`
	ShowAnswer     bool                 `json:"showExplanation"`
	CorrectAnswers int                  `json:"correctAnswers"`
	Progress       *model.Skill         `json:"progress,omitempty"`
	Effects        []Effect             `json:"effects,omitempty"`
	Error          string               `json:"error,omitempty"`
	Pending        bool                 `json:"pending"`
}

// Session is one learner's lesson in progress. All fields are guarded by mu.
type Session struct {
	mu       sync.Mutex
	state    State
	pending  bool
	epoch    uint64 // bumped on reset so late generation results are dropped
	lastSeen time.Time
}

func newSession(now time.Time) *Session {
	return &Session{
		state:    State{Stage: StageSelect},
		lastSeen: now,
	}
}

// snapshot copies the state for the caller. Callers must hold mu.
func (s *Session) snapshot() State {
	st := s.state
	st.Pending = s.pending
	if s.state.SelectedAnswer != nil {
		selected := *s.state.SelectedAnswer
		st.SelectedAnswer = &selected
	}
	return st
}

// reset returns the session to skill selection. Callers must hold mu.
func (s *Session) reset() {
	skill := s.state.Skill
	s.state = State{Stage: StageSelect, Skill: skill}
	s.pending = false
	s.epoch++
}
