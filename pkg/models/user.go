package models

import "time"

// User represents the person using the app on this device
type User struct {
	ID                   string     `json:"id"`
	Email                string     `json:"email"`
	Username             string     `json:"username"`
	DisplayName          string     `json:"displayName"`
	AvatarURL            string     `json:"avatarUrl,omitempty"`
	Bio                  string     `json:"bio,omitempty"`
	Interests            []Category `json:"interests"`
	PreferredDifficulty  Difficulty `json:"preferredDifficulty"` // Card difficulty or "mixed"
	DailyGoal            int        `json:"dailyGoal"`
	NotificationsEnabled bool       `json:"notificationsEnabled"`
	Stats                UserStats  `json:"stats"`
	IsCreator            bool       `json:"isCreator"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// UserStats holds lifetime counters for a user
type UserStats struct {
	TotalCardsViewed  int   `json:"totalCardsViewed"`
	TotalCardsLiked   int   `json:"totalCardsLiked"`
	TotalCardsSaved   int   `json:"totalCardsSaved"`
	TotalCardsCreated int   `json:"totalCardsCreated"`
	TotalCardsShared  int   `json:"totalCardsShared"`
	TotalTimeSpent    int64 `json:"totalTimeSpent"` // milliseconds
	CardsViewedToday  int   `json:"cardsViewedToday"`
	AverageDwellTime  int64 `json:"averageDwellTime"` // milliseconds
}

// Stat names accepted by profile.IncrementStat
const (
	StatCardsViewed  = "totalCardsViewed"
	StatCardsLiked   = "totalCardsLiked"
	StatCardsSaved   = "totalCardsSaved"
	StatCardsCreated = "totalCardsCreated"
	StatCardsShared  = "totalCardsShared"
)
