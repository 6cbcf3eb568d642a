package gamification

import (
	"math"

	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

// Levels is the static level table, ordered by MinXP.
// MinXP of each tier equals MaxXP of the previous one.
var Levels = []models.LevelTier{
	{Level: 1, Name: "Curious Mind", Badge: "🌱", MinXP: 0, MaxXP: 100},
	{Level: 2, Name: "Knowledge Seeker", Badge: "📖", MinXP: 100, MaxXP: 300},
	{Level: 3, Name: "Quick Learner", Badge: "⚡", MinXP: 300, MaxXP: 600},
	{Level: 4, Name: "Brain Builder", Badge: "🧠", MinXP: 600, MaxXP: 1000},
	{Level: 5, Name: "Wisdom Collector", Badge: "💎", MinXP: 1000, MaxXP: 1500},
	{Level: 6, Name: "Knowledge Master", Badge: "🏆", MinXP: 1500, MaxXP: 2200},
	{Level: 7, Name: "Sage", Badge: "🔮", MinXP: 2200, MaxXP: 3000},
	{Level: 8, Name: "Enlightened", Badge: "✨", MinXP: 3000, MaxXP: 4000},
	{Level: 9, Name: "Guru", Badge: "🌟", MinXP: 4000, MaxXP: 5500},
	{Level: 10, Name: "Transcendent", Badge: "👑", MinXP: 5500, MaxXP: math.MaxInt},
}

// LevelInfo is the level view derived from an XP total
type LevelInfo struct {
	Tier     models.LevelTier `json:"tier"`
	XP       int              `json:"xp"`
	Progress float64          `json:"progress"` // 0-1 within the tier
	XPToNext int              `json:"xpToNext"` // 0 at the top tier
}

// LevelFor returns the highest tier whose MinXP does not exceed xp
func LevelFor(xp int) models.LevelTier {
	for i := len(Levels) - 1; i >= 0; i-- {
		if xp >= Levels[i].MinXP {
			return Levels[i]
		}
	}
	return Levels[0]
}

// LevelProgress returns how far xp is through its tier, clamped to [0,1].
// The top tier is open-ended and always reports 1.
func LevelProgress(xp int) float64 {
	tier := LevelFor(xp)
	if tier.MaxXP == math.MaxInt {
		return 1
	}
	p := float64(xp-tier.MinXP) / float64(tier.MaxXP-tier.MinXP)
	return math.Max(0, math.Min(1, p))
}

// InfoFor builds the full level view for xp
func InfoFor(xp int) LevelInfo {
	tier := LevelFor(xp)
	info := LevelInfo{
		Tier:     tier,
		XP:       xp,
		Progress: LevelProgress(xp),
	}
	if tier.MaxXP != math.MaxInt {
		info.XPToNext = tier.MaxXP - xp
	}
	return info
}
