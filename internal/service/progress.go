package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skillbloom/skillbloom/internal/model"
	"github.com/skillbloom/skillbloom/internal/repository"
	"github.com/skillbloom/skillbloom/internal/validation"
	"golang.org/x/text/cases"
)

var ErrSkillNotFound = errors.New("skill not found")

type ProgressStats struct {
	Skills          int `json:"skills"`
	LessonsTotal    int `json:"lessonsTotal"`
	LongestStreak   int `json:"longestStreak"`
	AverageProgress int `json:"averageProgress"`
}

type ProgressService struct {
	repo repository.ProgressRepository
	now  func() time.Time
}

func NewProgressService(repo repository.ProgressRepository) *ProgressService {
	return &ProgressService{repo: repo, now: time.Now}
}

func (s *ProgressService) Preferences(ctx context.Context, learnerID string) (*model.Preferences, error) {
	return s.repo.Preferences(ctx, learnerID)
}

func (s *ProgressService) SavePreferences(ctx context.Context, learnerID string, prefs *model.Preferences) error {
	return s.repo.SavePreferences(ctx, learnerID, prefs)
}

// UpdatePreferredSkill points stored preferences at skill and drops the custom
// skill. Learners who never finished onboarding have nothing to update.
func (s *ProgressService) UpdatePreferredSkill(ctx context.Context, learnerID, skill string) error {
	prefs, err := s.repo.Preferences(ctx, learnerID)
	if errors.Is(err, repository.ErrPreferencesNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if prefs.Skill == skill {
		return nil
	}
	prefs.Skill = skill
	prefs.CustomSkill = ""
	return s.repo.SavePreferences(ctx, learnerID, prefs)
}

func (s *ProgressService) Skills(ctx context.Context, learnerID string) ([]*model.Skill, error) {
	return s.repo.Skills(ctx, learnerID)
}

// AddSkill appends a new seed skill. A blank name is ignored and returns nil.
// Duplicate names are allowed.
func (s *ProgressService) AddSkill(ctx context.Context, learnerID, name string) (*model.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	err := validation.ValidateSkillName(name)
	if err != nil {
		return nil, err
	}

	skills, err := s.repo.Skills(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	skill := model.NewSkill(uuid.New().String(), name)
	skills = append(skills, skill)

	err = s.repo.SaveSkills(ctx, learnerID, skills)
	if err != nil {
		return nil, fmt.Errorf("failed to add skill: %w", err)
	}

	return skill, nil
}

func (s *ProgressService) RenameSkill(ctx context.Context, learnerID, skillID, name string) (*model.Skill, error) {
	err := validation.ValidateSkillName(name)
	if err != nil {
		return nil, err
	}

	skills, err := s.repo.Skills(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	for _, skill := range skills {
		if skill.ID != skillID {
			continue
		}
		skill.Name = strings.TrimSpace(name)
		err = s.repo.SaveSkills(ctx, learnerID, skills)
		if err != nil {
			return nil, fmt.Errorf("failed to rename skill: %w", err)
		}
		return skill, nil
	}

	return nil, ErrSkillNotFound
}

// RecordLessonCompletion credits the first skill whose name matches
// skillName case-insensitively. It returns nil when nothing matches.
func (s *ProgressService) RecordLessonCompletion(ctx context.Context, learnerID, skillName string) (*model.Skill, error) {
	skills, err := s.repo.Skills(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	skill := findSkill(skills, skillName)
	if skill == nil {
		return nil, nil
	}

	skill.CompleteLesson(s.now())

	err = s.repo.SaveSkills(ctx, learnerID, skills)
	if err != nil {
		return nil, fmt.Errorf("failed to record lesson: %w", err)
	}

	return skill, nil
}

// EnsureInitialSkill creates the first skill from preferences when the
// garden is still empty.
func (s *ProgressService) EnsureInitialSkill(ctx context.Context, learnerID string) ([]*model.Skill, error) {
	skills, err := s.repo.Skills(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if len(skills) > 0 {
		return skills, nil
	}

	prefs, err := s.repo.Preferences(ctx, learnerID)
	if errors.Is(err, repository.ErrPreferencesNotFound) {
		return skills, nil
	}
	if err != nil {
		return nil, err
	}

	name := prefs.SkillName()
	if name == "" {
		return skills, nil
	}

	skills = append(skills, model.NewSkill(uuid.New().String(), name))
	err = s.repo.SaveSkills(ctx, learnerID, skills)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial skill: %w", err)
	}

	return skills, nil
}

// StatsFor summarizes skills for the garden header.
func StatsFor(skills []*model.Skill) *ProgressStats {
	stats := &ProgressStats{Skills: len(skills)}
	if len(skills) == 0 {
		return stats
	}

	total := 0
	for _, skill := range skills {
		stats.LessonsTotal += skill.LessonsCompleted
		stats.LongestStreak = max(stats.LongestStreak, skill.Streak)
		total += skill.Progress
	}
	stats.AverageProgress = int(math.Round(float64(total) / float64(len(skills))))

	return stats
}

func findSkill(skills []*model.Skill, name string) *model.Skill {
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(name))
	for _, skill := range skills {
		if fold.String(skill.Name) == want {
			return skill
		}
	}
	return nil
}
