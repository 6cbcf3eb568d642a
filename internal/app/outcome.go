package app

import (
	"github.com/shiviagarwalwork/brainbites/internal/achievements"
	"github.com/shiviagarwalwork/brainbites/internal/gamification"
	"github.com/shiviagarwalwork/brainbites/internal/persistence"
	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

// Outcome is what an event changed, for the caller to render
type Outcome struct {
	// Changed is false when the event was a no-op, e.g. liking a liked card
	Changed     bool                       `json:"changed"`
	XPGained    int                        `json:"xpGained"`
	LeveledUp   bool                       `json:"leveledUp"`
	Level       gamification.LevelInfo     `json:"level"`
	Streak      *gamification.StreakResult `json:"streak,omitempty"`
	StreakBonus int                        `json:"streakBonus,omitempty"`
	DailyReward int                        `json:"dailyReward,omitempty"`
	GoalMet     bool                       `json:"goalMet,omitempty"`
	ViewsToday  int                        `json:"viewsToday,omitempty"`
	Unlocked    []models.Achievement       `json:"unlocked,omitempty"`
}

// award adds XP for an event and records level-ups
func (a *App) award(out *Outcome, amount int, event string) {
	if amount <= 0 {
		return
	}
	res := a.ledger.AddXP(amount, event)
	out.XPGained += amount
	a.metrics.XPAwardedTotal.WithLabelValues(event).Add(float64(amount))
	if res.LeveledUp {
		out.LeveledUp = true
		a.metrics.LevelUpsTotal.Inc()
		a.log.Info("level up", "level", res.NewLevel, "xp", res.XP)
	}
}

// afterRollover rewards a day change. Only the call that performed the
// rollover sees NewDay, so the bonus is paid once per day.
func (a *App) afterRollover(out *Outcome, sr gamification.StreakResult) {
	if !sr.NewDay {
		return
	}
	out.Streak = &sr
	a.metrics.StreakDays.Set(float64(sr.NewStreak))
	if sr.Lost {
		a.log.Info("streak lost", "streak", sr.NewStreak)
		return
	}
	if sr.Maintained {
		out.StreakBonus = gamification.StreakBonus(sr.NewStreak)
		a.award(out, out.StreakBonus, gamification.EventStreakMaintain)
	}
	if sr.FreezeUsed {
		a.log.Info("streak freeze used", "streak", sr.NewStreak)
	}
}

// evaluate unlocks achievements until no more are met. Unlock rewards can
// raise the level, which can meet further level achievements.
func (a *App) evaluate(out *Outcome) {
	for {
		unlocked := a.evaluator.Evaluate(a.achievementMetrics(), a.ledger)
		if len(unlocked) == 0 {
			return
		}
		for _, ach := range unlocked {
			out.Unlocked = append(out.Unlocked, ach)
			a.metrics.AchievementsUnlocked.WithLabelValues(ach.Rarity).Inc()
			a.log.Info("achievement unlocked", "id", ach.ID, "rarity", ach.Rarity)
			a.award(out, ach.XPReward, gamification.EventAchievementUnlock)
		}
	}
}

func (a *App) achievementMetrics() achievements.Metrics {
	st := a.ledger.State()
	m := achievements.Metrics{
		achievements.MetricLikes:      a.journal.LikedCount(),
		achievements.MetricSaves:      a.journal.SavedCount(),
		achievements.MetricViews:      st.TotalCardsViewed,
		achievements.MetricStreak:     st.CurrentStreak,
		achievements.MetricDailyGoals: st.DailyGoalsCompleted,
		achievements.MetricShares:     a.journal.SharedCount(),
		achievements.MetricLevel:      a.ledger.Level().Tier.Level,
	}
	if u, ok := a.profile.User(); ok {
		m[achievements.MetricCreates] = u.Stats.TotalCardsCreated
	}
	return m
}

// finish evaluates achievements, fills the level view and persists the
// records the event touched. The gamification record is always written.
func (a *App) finish(out *Outcome, records ...string) {
	a.evaluate(out)
	out.Level = a.ledger.Level()
	a.persist(append(records, persistence.RecordGamification)...)
}
