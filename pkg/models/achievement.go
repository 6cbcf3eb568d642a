package models

// Achievement is an entry of the static badge catalog
type Achievement struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Icon        string                 `json:"icon"`
	Category    string                 `json:"category"` // learning, streak, social, creation, explorer, master
	Requirement AchievementRequirement `json:"requirement"`
	XPReward    int                    `json:"xpReward"`
	Rarity      string                 `json:"rarity"` // common, rare, epic, legendary
}

// AchievementRequirement is the threshold a metric must reach to unlock an achievement
type AchievementRequirement struct {
	Type      string `json:"type"`   // count, streak, time, unique
	Metric    string `json:"metric"` // likes, saves, views, streak, daily_goals, shares, creates, level
	Threshold int    `json:"threshold"`
}
