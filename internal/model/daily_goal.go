package model

// DateLayout is the calendar-day key daily goals are stored under.
const DateLayout = "2006-01-02"

type DailyGoal struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Done   bool   `json:"done"`
	XP     int    `json:"xp"`
	Action string `json:"action"`
}

// DailyGoalSet is the goal list together with the day it was generated for.
type DailyGoalSet struct {
	Date  string       `json:"date"`
	Goals []*DailyGoal `json:"goals"`
}

// XPEarned sums the reward of completed goals.
func (s *DailyGoalSet) XPEarned() int {
	total := 0
	for _, g := range s.Goals {
		if g.Done {
			total += g.XP
		}
	}
	return total
}
