package model

import (
	"time"
)

// Tier is the growth stage of a skill, derived from its progress.
type Tier string

const (
	TierSeed        Tier = "seed"
	TierSprout      Tier = "sprout"
	TierGrowing     Tier = "growing"
	TierBlooming    Tier = "blooming"
	TierFlourishing Tier = "flourishing"
)

const (
	MaxProgress    = 100
	LessonProgress = 10
)

// TierFor maps progress to a tier using the 20/40/60/80 thresholds.
func TierFor(progress int) Tier {
	switch {
	case progress < 20:
		return TierSeed
	case progress < 40:
		return TierSprout
	case progress < 60:
		return TierGrowing
	case progress < 80:
		return TierBlooming
	default:
		return TierFlourishing
	}
}

// Label returns the display name of the tier.
func (t Tier) Label() string {
	switch t {
	case TierSeed:
		return "Seed"
	case TierSprout:
		return "Sprout"
	case TierGrowing:
		return "Growing"
	case TierBlooming:
		return "Blooming"
	case TierFlourishing:
		return "Flourishing"
	}
	return string(t)
}

type Skill struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Progress         int        `json:"progress"`
	Level            Tier       `json:"level"`
	LessonsCompleted int        `json:"lessonsCompleted"`
	Streak           int        `json:"streak"`
	LastPracticed    *time.Time `json:"lastPracticed,omitempty"`
}

// NewSkill returns a skill with zeroed counters at the seed tier.
func NewSkill(id, name string) *Skill {
	return &Skill{
		ID:    id,
		Name:  name,
		Level: TierSeed,
	}
}

// CompleteLesson applies one finished lesson: +10 progress capped at 100,
// one more lesson and streak day, tier recomputed.
func (s *Skill) CompleteLesson(at time.Time) {
	s.SetProgress(s.Progress + LessonProgress)
	s.LessonsCompleted++
	s.Streak++
	s.LastPracticed = &at
}

// SetProgress clamps progress to [0, 100] and keeps the tier in sync.
func (s *Skill) SetProgress(progress int) {
	if progress < 0 {
		progress = 0
	}
	if progress > MaxProgress {
		progress = MaxProgress
	}
	s.Progress = progress
	s.Level = TierFor(progress)
}
