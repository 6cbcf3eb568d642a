package models

import "time"

const dayLayout = "2006-01-02"

// Day is a calendar date with the time of day discarded, serialized as YYYY-MM-DD.
// The zero value means "absent".
type Day string

// DayOf returns the calendar day of t in t's own location
func DayOf(t time.Time) Day {
	return Day(t.Format(dayLayout))
}

// IsZero reports whether the day is absent
func (d Day) IsZero() bool {
	return d == ""
}

// Time returns midnight UTC of the day. Invalid days map to the zero time.
func (d Day) Time() time.Time {
	t, err := time.ParseInLocation(dayLayout, string(d), time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DaysSince returns the number of calendar days from earlier to d.
// Negative when earlier is after d.
func (d Day) DaysSince(earlier Day) int {
	return int(d.Time().Sub(earlier.Time()).Hours() / 24)
}

// ProgressionState is the persisted gamification record.
// Level, level progress and the daily-goal flag are derived from these fields on read.
type ProgressionState struct {
	XP                       int           `json:"xp"`
	CurrentStreak            int           `json:"currentStreak"`
	LongestStreak            int           `json:"longestStreak"`
	LastActiveDate           Day           `json:"lastActiveDate,omitempty"`
	StreakProtected          bool          `json:"streakProtected"`
	CardsViewedToday         int           `json:"cardsViewedToday"`
	DailyGoal                int           `json:"dailyGoal"`
	LastDailyRewardClaimDate Day           `json:"lastDailyRewardClaim,omitempty"`
	DailyGoalMetDate         Day           `json:"dailyGoalMetDate,omitempty"` // Day the goal last fired
	DailyGoalsCompleted      int           `json:"dailyGoalsCompleted"`
	TotalCardsViewed         int           `json:"totalCardsViewed"`
	Achievements             []string      `json:"achievements"`       // Unlocked achievement IDs, in unlock order
	RecentAchievements       []Achievement `json:"recentAchievements"` // Waiting to be shown once
}

// DailyGoalMet reports whether today's view count reached the goal
func (s ProgressionState) DailyGoalMet() bool {
	return s.CardsViewedToday >= s.DailyGoal
}

// Clone returns a deep copy of the state
func (s ProgressionState) Clone() ProgressionState {
	out := s
	out.Achievements = append([]string{}, s.Achievements...)
	out.RecentAchievements = append([]Achievement{}, s.RecentAchievements...)
	return out
}

// LevelTier is one row of the static level table
type LevelTier struct {
	Level int    `json:"level"`
	Name  string `json:"name"`
	Badge string `json:"badge"`
	MinXP int    `json:"minXP"`
	MaxXP int    `json:"maxXP"` // math.MaxInt for the top tier
}
