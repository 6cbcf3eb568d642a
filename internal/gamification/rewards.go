package gamification

// Event types accepted by AddXP
const (
	EventCardView          = "card_view"
	EventCardLike          = "card_like"
	EventCardSave          = "card_save"
	EventCardShare         = "card_share"
	EventCardCreate        = "card_create"
	EventChallenge         = "challenge_complete"
	EventStreakMaintain    = "streak_maintain"
	EventDailyGoal         = "daily_goal"
	EventFirstOfDay        = "first_of_day"
	EventAchievementUnlock = "achievement_unlock"
)

var xpRewards = map[string]int{
	EventCardView:          1,
	EventCardLike:          2,
	EventCardSave:          3,
	EventCardShare:         5,
	EventCardCreate:        20,
	EventChallenge:         15,
	EventStreakMaintain:    5,
	EventDailyGoal:         25,
	EventFirstOfDay:        10,
	EventAchievementUnlock: 50,
}

const (
	// Streak days beyond this stop increasing streak-based rewards
	streakRewardCap = 7
	dailyRewardBase = 10
)

// XPForEvent returns the fixed reward of an event type, 0 when unknown
func XPForEvent(eventType string) int {
	return xpRewards[eventType]
}

// StreakBonus is the XP awarded for keeping a streak of the given length
func StreakBonus(streakDays int) int {
	return xpRewards[EventStreakMaintain] * capStreak(streakDays)
}

// DailyReward is the first-of-day claim amount for the given streak
func DailyReward(streak int) int {
	return dailyRewardBase + xpRewards[EventStreakMaintain]*capStreak(streak)
}

func capStreak(days int) int {
	if days < 0 {
		return 0
	}
	if days > streakRewardCap {
		return streakRewardCap
	}
	return days
}
