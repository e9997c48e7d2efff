package validation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const MaxSkillNameLength = 60

var (
	ErrSkillNameRequired = errors.New("skill name is required")
	ErrSkillNameTooLong  = errors.New("skill name is too long (max 60 characters)")
)

// ValidateSkillName validates a garden skill name
func ValidateSkillName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return ErrSkillNameRequired
	}

	if utf8.RuneCountInString(trimmed) > MaxSkillNameLength {
		return ErrSkillNameTooLong
	}

	return nil
}
