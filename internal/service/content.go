package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/skillbloom/skillbloom/internal/llm"
	"github.com/skillbloom/skillbloom/internal/metrics"
	"github.com/skillbloom/skillbloom/internal/model"
)

var (
	ErrSkillRequired         = errors.New("skill is required")
	ErrLessonContentRequired = errors.New("lesson content is required")
	ErrInvalidLevel          = errors.New("level must be beginner, intermediate or advanced")
)

const (
	DefaultQuizQuestions = 3
	MaxQuizQuestions     = 10
)

const (
	kindLesson = "lesson"
	kindQuiz   = "quiz"
	kindPath   = "path"
)

// generation settings per kind
var (
	lessonSampling = sampling{temperature: 0.7, maxTokens: 1000}
	quizSampling   = sampling{temperature: 0.5, maxTokens: 800}
	pathSampling   = sampling{temperature: 0.6, maxTokens: 500}
)

type sampling struct {
	temperature float64
	maxTokens   int
}

// ContentService generates lessons and quizzes with a hosted model. Any
// upstream or parse failure is swallowed and replaced by fixed fallback
// content so the learn flow never dead-ends.
type ContentService struct {
	completer        llm.Completer
	model            string
	maxQuizQuestions int
	metrics          *metrics.Metrics
}

func NewContentService(completer llm.Completer, model string, maxQuizQuestions int, m *metrics.Metrics) *ContentService {
	if maxQuizQuestions <= 0 {
		maxQuizQuestions = MaxQuizQuestions
	}
	return &ContentService{
		completer:        completer,
		model:            model,
		maxQuizQuestions: maxQuizQuestions,
		metrics:          m,
	}
}

// LessonRequest is the input to GenerateLesson.
type LessonRequest struct {
	Skill          string   `json:"skill"`
	Level          string   `json:"level"`
	PreviousTopics []string `json:"previousTopics"`
}

// QuizRequest is the input to GenerateQuiz.
type QuizRequest struct {
	Skill         string `json:"skill"`
	LessonContent string `json:"lessonContent"`
	NumQuestions  int    `json:"numQuestions"`
}

// PathRequest is the input to GenerateLearningPath.
type PathRequest struct {
	Skill      string `json:"skill"`
	Goal       string `json:"goal"`
	TimePerDay int    `json:"timePerDay"`
}

func (s *ContentService) GenerateLesson(ctx context.Context, req LessonRequest) (*model.LessonContent, error) {
	skill := strings.TrimSpace(req.Skill)
	if skill == "" {
		return nil, ErrSkillRequired
	}

	level := req.Level
	if level == "" {
		level = model.LevelBeginner
	}
	if !model.ValidLevel(level) {
		return nil, ErrInvalidLevel
	}

	start := time.Now()
	lesson, err := s.lesson(ctx, skill, level, req.PreviousTopics)
	if err != nil {
		slog.Warn("lesson generation failed, using fallback", "error", err, "skill", skill, "level", level)
		s.metrics.RecordGeneration(kindLesson, metrics.OutcomeFallback, time.Since(start).Seconds())
		return FallbackLesson(skill), nil
	}

	s.metrics.RecordGeneration(kindLesson, metrics.OutcomeOK, time.Since(start).Seconds())
	return lesson, nil
}

func (s *ContentService) lesson(ctx context.Context, skill, level string, previousTopics []string) (*model.LessonContent, error) {
	text, err := s.complete(ctx, lessonPrompt(skill, level, previousTopics), lessonSampling)
	if err != nil {
		return nil, err
	}

	var lesson model.LessonContent
	err = llm.ExtractObject(text, &lesson)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(lesson.Title) == "" {
		return nil, errors.New("lesson has no title")
	}

	return &lesson, nil
}

func (s *ContentService) GenerateQuiz(ctx context.Context, req QuizRequest) ([]model.QuizQuestion, error) {
	skill := strings.TrimSpace(req.Skill)
	if skill == "" {
		return nil, ErrSkillRequired
	}
	if strings.TrimSpace(req.LessonContent) == "" {
		return nil, ErrLessonContentRequired
	}

	n := req.NumQuestions
	if n <= 0 {
		n = DefaultQuizQuestions
	}
	if n > s.maxQuizQuestions {
		n = s.maxQuizQuestions
	}

	start := time.Now()
	quiz, err := s.quiz(ctx, skill, req.LessonContent, n)
	if err != nil {
		slog.Warn("quiz generation failed, using fallback", "error", err, "skill", skill)
		s.metrics.RecordGeneration(kindQuiz, metrics.OutcomeFallback, time.Since(start).Seconds())
		return FallbackQuiz(), nil
	}

	s.metrics.RecordGeneration(kindQuiz, metrics.OutcomeOK, time.Since(start).Seconds())
	return quiz, nil
}

func (s *ContentService) quiz(ctx context.Context, skill, lessonContent string, n int) ([]model.QuizQuestion, error) {
	text, err := s.complete(ctx, quizPrompt(skill, lessonContent, n), quizSampling)
	if err != nil {
		return nil, err
	}

	var parsed []model.QuizQuestion
	err = llm.ExtractArray(text, &parsed)
	if err != nil {
		return nil, err
	}

	quiz := make([]model.QuizQuestion, 0, n)
	for _, q := range parsed {
		if !q.Valid() {
			continue
		}
		quiz = append(quiz, q)
		if len(quiz) == n {
			break
		}
	}
	if len(quiz) == 0 {
		return nil, errors.New("quiz has no usable questions")
	}

	return quiz, nil
}

// GenerateLearningPath proposes an ordered list of lesson topics for a goal.
func (s *ContentService) GenerateLearningPath(ctx context.Context, req PathRequest) ([]string, error) {
	skill := strings.TrimSpace(req.Skill)
	if skill == "" {
		return nil, ErrSkillRequired
	}

	minutes := req.TimePerDay
	if minutes <= 0 {
		minutes = model.DefaultTimePerDay
	}

	start := time.Now()
	path, err := s.path(ctx, skill, strings.TrimSpace(req.Goal), minutes)
	if err != nil {
		slog.Warn("learning path generation failed, using fallback", "error", err, "skill", skill)
		s.metrics.RecordGeneration(kindPath, metrics.OutcomeFallback, time.Since(start).Seconds())
		return FallbackLearningPath(skill), nil
	}

	s.metrics.RecordGeneration(kindPath, metrics.OutcomeOK, time.Since(start).Seconds())
	return path, nil
}

func (s *ContentService) path(ctx context.Context, skill, goal string, minutes int) ([]string, error) {
	text, err := s.complete(ctx, pathPrompt(skill, goal, minutes), pathSampling)
	if err != nil {
		return nil, err
	}

	var topics []string
	err = llm.ExtractArray(text, &topics)
	if err != nil {
		return nil, err
	}

	path := topics[:0]
	for _, t := range topics {
		if t = strings.TrimSpace(t); t != "" {
			path = append(path, t)
		}
	}
	if len(path) == 0 {
		return nil, errors.New("learning path is empty")
	}

	return path, nil
}

func (s *ContentService) complete(ctx context.Context, prompt string, p sampling) (string, error) {
	resp, err := s.completer.CreateChatCompletion(ctx, &llm.ChatCompletionRequest{
		Model:       s.model,
		Messages:    []llm.ChatMessage{{Role: "user", Content: prompt}},
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
	})
	if err != nil {
		return "", err
	}
	return resp.Content()
}

func lessonPrompt(skill, level string, previousTopics []string) string {
	background := "This is the learner's first lesson on this topic."
	if len(previousTopics) > 0 {
		background = fmt.Sprintf("The learner has already covered: %s. Build on this knowledge.", strings.Join(previousTopics, ", "))
	}

	return fmt.Sprintf(`You are an expert teacher writing a 5 minute micro-lesson about "%s" for a %s learner.

%s

Reply with the lesson in exactly this JSON shape:
{
  "title": "A catchy lesson title",
  "introduction": "A short, motivating introduction (2-3 sentences)",
  "concepts": [
    {
      "name": "Concept name",
      "explanation": "Clear explanation in simple terms",
      "example": "Practical example"
    }
  ],
  "exercise": {
    "question": "A practical exercise or reflection question",
    "hint": "A helpful hint"
  },
  "summary": "Key takeaway in 1-2 sentences"
}

Be concise, practical and encouraging. Use 2-3 concepts at most. Return ONLY valid JSON.`, skill, level, background)
}

func quizPrompt(skill, lessonContent string, n int) string {
	return fmt.Sprintf(`Here is a lesson about "%s":

%s

Write %d quiz questions that check understanding of it, as a JSON array:
[
  {
    "question": "The question text",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctIndex": 0,
    "explanation": "Why this answer is correct"
  }
]

Make each question a little harder than the previous one. Return ONLY a valid JSON array.`, skill, lessonContent, n)
}

func pathPrompt(skill, goal string, minutes int) string {
	return fmt.Sprintf(`Plan a learning path for someone learning "%s" with this goal: "%s". They have %d minutes per day.

Return a JSON array of 10-15 lesson topics in order, from basics to advanced:
["Topic 1", "Topic 2", "Topic 3"]

Make every topic specific and actionable. Return ONLY the JSON array.`, skill, goal, minutes)
}

// FallbackLesson is served whenever lesson generation fails.
func FallbackLesson(skill string) *model.LessonContent {
	return &model.LessonContent{
		Title:        "Introduction to " + skill,
		Introduction: fmt.Sprintf("Welcome to your first lesson on %s! Let's explore the fundamentals together.", skill),
		Concepts: []model.Concept{
			{
				Name:        "Core Concept",
				Explanation: fmt.Sprintf("The foundation of %s starts with understanding its basic principles.", skill),
				Example:     "Think of it like learning to ride a bike - you start with balance.",
			},
		},
		Exercise: model.Exercise{
			Question: fmt.Sprintf("What aspect of %s interests you the most?", skill),
			Hint:     "There's no wrong answer - this helps personalize your journey!",
		},
		Summary: fmt.Sprintf("You've taken your first step in learning %s. Every expert was once a beginner!", skill),
	}
}

// FallbackQuiz is served whenever quiz generation fails.
func FallbackQuiz() []model.QuizQuestion {
	return []model.QuizQuestion{
		{
			Question:     "What's the most important factor in learning a new skill?",
			Options:      []string{"Talent", "Consistent practice", "Expensive tools", "Age"},
			CorrectIndex: 1,
			Explanation:  "Research shows consistent practice is the key to mastering any skill.",
		},
	}
}

// FallbackLearningPath is served whenever path generation fails.
func FallbackLearningPath(skill string) []string {
	return []string{
		"Introduction to " + skill,
		skill + " fundamentals",
		"Basic " + skill + " techniques",
		"Intermediate " + skill + " concepts",
		"Advanced " + skill + " strategies",
	}
}
