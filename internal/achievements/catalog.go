package achievements

import "github.com/shiviagarwalwork/brainbites/pkg/models"

// Metric names an achievement requirement can refer to
const (
	MetricLikes      = "likes"
	MetricSaves      = "saves"
	MetricViews      = "views"
	MetricStreak     = "streak"
	MetricDailyGoals = "daily_goals"
	MetricShares     = "shares"
	MetricCreates    = "creates"
	MetricLevel      = "level"
)

const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

func count(metric string, threshold int) models.AchievementRequirement {
	return models.AchievementRequirement{Type: "count", Metric: metric, Threshold: threshold}
}

func streak(days int) models.AchievementRequirement {
	return models.AchievementRequirement{Type: "streak", Metric: MetricStreak, Threshold: days}
}

// Catalog is the static list of achievements in display order
var Catalog = []models.Achievement{
	{ID: "first_like", Name: "First Like", Description: "Like your first card", Icon: "❤️", Category: "learning", Requirement: count(MetricLikes, 1), XPReward: 10, Rarity: RarityCommon},
	{ID: "like_10", Name: "Appreciator", Description: "Like 10 cards", Icon: "💕", Category: "learning", Requirement: count(MetricLikes, 10), XPReward: 25, Rarity: RarityCommon},
	{ID: "like_50", Name: "Love Machine", Description: "Like 50 cards", Icon: "💖", Category: "learning", Requirement: count(MetricLikes, 50), XPReward: 50, Rarity: RarityRare},
	{ID: "like_100", Name: "Heart of Gold", Description: "Like 100 cards", Icon: "💛", Category: "learning", Requirement: count(MetricLikes, 100), XPReward: 100, Rarity: RarityEpic},

	{ID: "first_save", Name: "Collector", Description: "Save your first card", Icon: "🔖", Category: "learning", Requirement: count(MetricSaves, 1), XPReward: 10, Rarity: RarityCommon},
	{ID: "save_25", Name: "Hoarder", Description: "Save 25 cards", Icon: "📦", Category: "learning", Requirement: count(MetricSaves, 25), XPReward: 50, Rarity: RarityRare},

	{ID: "view_10", Name: "Curious Cat", Description: "View 10 cards", Icon: "🐱", Category: "explorer", Requirement: count(MetricViews, 10), XPReward: 15, Rarity: RarityCommon},
	{ID: "view_50", Name: "Explorer", Description: "View 50 cards", Icon: "🧭", Category: "explorer", Requirement: count(MetricViews, 50), XPReward: 50, Rarity: RarityRare},
	{ID: "view_100", Name: "Knowledge Seeker", Description: "View 100 cards", Icon: "📖", Category: "explorer", Requirement: count(MetricViews, 100), XPReward: 100, Rarity: RarityEpic},
	{ID: "view_500", Name: "Brain Devourer", Description: "View 500 cards", Icon: "🧠", Category: "master", Requirement: count(MetricViews, 500), XPReward: 250, Rarity: RarityLegendary},

	{ID: "streak_3", Name: "Getting Hooked", Description: "Keep a 3 day streak", Icon: "🔥", Category: "streak", Requirement: streak(3), XPReward: 25, Rarity: RarityCommon},
	{ID: "streak_7", Name: "Week Warrior", Description: "Keep a 7 day streak", Icon: "💪", Category: "streak", Requirement: streak(7), XPReward: 75, Rarity: RarityRare},
	{ID: "streak_30", Name: "Monthly Master", Description: "Keep a 30 day streak", Icon: "👑", Category: "streak", Requirement: streak(30), XPReward: 300, Rarity: RarityLegendary},

	{ID: "daily_goal", Name: "Goal Getter", Description: "Complete your daily goal", Icon: "🎯", Category: "learning", Requirement: count(MetricDailyGoals, 1), XPReward: 25, Rarity: RarityCommon},
	{ID: "daily_goal_7", Name: "Consistent", Description: "Complete your daily goal 7 times", Icon: "📅", Category: "learning", Requirement: count(MetricDailyGoals, 7), XPReward: 100, Rarity: RarityRare},

	{ID: "first_share", Name: "Sharing is Caring", Description: "Share your first card", Icon: "📤", Category: "social", Requirement: count(MetricShares, 1), XPReward: 15, Rarity: RarityCommon},
	{ID: "first_create", Name: "Creator", Description: "Create your first card", Icon: "✏️", Category: "creation", Requirement: count(MetricCreates, 1), XPReward: 20, Rarity: RarityCommon},

	{ID: "level_5", Name: "Rising Star", Description: "Reach level 5", Icon: "⭐", Category: "master", Requirement: count(MetricLevel, 5), XPReward: 100, Rarity: RarityRare},
	{ID: "level_10", Name: "Transcendent", Description: "Reach level 10", Icon: "✨", Category: "master", Requirement: count(MetricLevel, 10), XPReward: 500, Rarity: RarityLegendary},
}

// ByID looks up a catalog entry
func ByID(id string) (models.Achievement, bool) {
	for _, a := range Catalog {
		if a.ID == id {
			return a, true
		}
	}
	return models.Achievement{}, false
}
