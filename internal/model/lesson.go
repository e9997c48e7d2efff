package model

import (
	"fmt"
	"strings"
)

const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// ValidLevel reports whether level is a known difficulty.
func ValidLevel(level string) bool {
	switch level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

type Concept struct {
	Name        string `json:"name"`
	Explanation string `json:"explanation"`
	Example     string `json:"example,omitempty"`
}

type Exercise struct {
	Question string `json:"question"`
	Hint     string `json:"hint"`
}

// LessonContent is a generated micro-lesson. It is never persisted.
type LessonContent struct {
	Title        string    `json:"title"`
	Introduction string    `json:"introduction"`
	Concepts     []Concept `json:"concepts"`
	Exercise     Exercise  `json:"exercise"`
	Summary      string    `json:"summary"`
}

// Text flattens the lesson into the prompt text used to seed a quiz.
func (l *LessonContent) Text() string {
	parts := make([]string, 0, len(l.Concepts))
	for _, c := range l.Concepts {
		parts = append(parts, c.Name+": "+c.Explanation)
	}
	return fmt.Sprintf("%s. %s. Concepts: %s", l.Title, l.Introduction, strings.Join(parts, ". "))
}

// PageCount is introduction + one page per concept + exercise.
func (l *LessonContent) PageCount() int {
	return len(l.Concepts) + 2
}

type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// Valid reports whether the question can be answered.
func (q *QuizQuestion) Valid() bool {
	return strings.TrimSpace(q.Question) != "" &&
		len(q.Options) > 0 &&
		q.CorrectIndex >= 0 &&
		q.CorrectIndex < len(q.Options)
}
