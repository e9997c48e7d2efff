package model

import "strings"

// TimeOptions are the accepted minutes-per-day budgets.
var TimeOptions = []int{5, 15, 30, 60}

const DefaultTimePerDay = 15

type Preferences struct {
	Skill       string `json:"skill"`
	CustomSkill string `json:"customSkill"`
	Goal        string `json:"goal"`
	TimePerDay  int    `json:"timePerDay"`
}

// SkillName returns the chosen skill, falling back to the custom one.
func (p *Preferences) SkillName() string {
	if p == nil {
		return ""
	}
	if name := strings.TrimSpace(p.Skill); name != "" {
		return name
	}
	return strings.TrimSpace(p.CustomSkill)
}

// ValidTimePerDay reports whether minutes is one of TimeOptions.
func ValidTimePerDay(minutes int) bool {
	for _, m := range TimeOptions {
		if m == minutes {
			return true
		}
	}
	return false
}
