package gamification

import (
	"time"

	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

// DefaultDailyGoal is the number of card views that completes a day
const DefaultDailyGoal = 20

// XPResult reports the outcome of AddXP
type XPResult struct {
	LeveledUp bool `json:"leveledUp"`
	NewLevel  int  `json:"newLevel"`
	XP        int  `json:"xp"`
}

// StreakResult reports the outcome of a streak check
type StreakResult struct {
	Maintained bool `json:"maintained"`
	Lost       bool `json:"lost"`
	NewStreak  int  `json:"newStreak"`
	// NewDay is set when this call performed the day rollover
	NewDay bool `json:"newDay"`
	// FreezeUsed is set when a streak freeze covered a missed day
	FreezeUsed bool `json:"freezeUsed"`
}

// ViewResult reports the outcome of IncrementCardsViewed
type ViewResult struct {
	GoalMet    bool         `json:"goalMet"`
	ViewsToday int          `json:"viewsToday"`
	Rollover   StreakResult `json:"rollover"`
}

// Ledger owns a user's progression state. It is not safe for concurrent use;
// callers serialise access.
type Ledger struct {
	state       models.ProgressionState
	now         func() time.Time
	defaultGoal int
}

// NewLedger creates a ledger with default state.
// now may be nil, in which case time.Now is used.
func NewLedger(now func() time.Time, dailyGoal int) *Ledger {
	if now == nil {
		now = time.Now
	}
	if dailyGoal <= 0 {
		dailyGoal = DefaultDailyGoal
	}
	l := &Ledger{now: now, defaultGoal: dailyGoal}
	l.Reset()
	return l
}

func (l *Ledger) today() models.Day {
	return models.DayOf(l.now())
}

// State returns a snapshot of the progression state
func (l *Ledger) State() models.ProgressionState {
	return l.state.Clone()
}

// Restore replaces the state with a persisted snapshot, repairing broken invariants
func (l *Ledger) Restore(s models.ProgressionState) {
	s = s.Clone()
	if s.XP < 0 {
		s.XP = 0
	}
	if s.CurrentStreak < 0 {
		s.CurrentStreak = 0
	}
	if s.LongestStreak < s.CurrentStreak {
		s.LongestStreak = s.CurrentStreak
	}
	if s.DailyGoal <= 0 {
		s.DailyGoal = l.defaultGoal
	}
	if s.CardsViewedToday < 0 {
		s.CardsViewedToday = 0
	}
	// Records written before the goal day was tracked
	if s.DailyGoalMetDate.IsZero() && !s.LastActiveDate.IsZero() && s.DailyGoalMet() {
		s.DailyGoalMetDate = s.LastActiveDate
	}
	if s.Achievements == nil {
		s.Achievements = []string{}
	}
	if s.RecentAchievements == nil {
		s.RecentAchievements = []models.Achievement{}
	}
	l.state = s
}

// Reset returns every field to its default
func (l *Ledger) Reset() {
	l.state = models.ProgressionState{
		DailyGoal:          l.defaultGoal,
		Achievements:       []string{},
		RecentAchievements: []models.Achievement{},
	}
}

// Level returns the derived level view
func (l *Ledger) Level() LevelInfo {
	return InfoFor(l.state.XP)
}

// AddXP adds amount and re-derives the level
func (l *Ledger) AddXP(amount int, eventType string) XPResult {
	if amount < 0 {
		amount = 0
	}
	before := LevelFor(l.state.XP)
	l.state.XP += amount
	after := LevelFor(l.state.XP)

	return XPResult{
		LeveledUp: after.Level > before.Level,
		NewLevel:  after.Level,
		XP:        l.state.XP,
	}
}

// CheckStreak advances the streak on the first call of a calendar day.
// Further calls on the same day are no-ops.
func (l *Ledger) CheckStreak() StreakResult {
	return l.rollover(l.today())
}

// rollover is the single day-change step shared by CheckStreak and
// IncrementCardsViewed. It applies the streak transition, clears the
// daily view count and stamps today as the last active date.
func (l *Ledger) rollover(today models.Day) StreakResult {
	s := &l.state
	res := StreakResult{NewDay: true}

	if s.LastActiveDate.IsZero() {
		s.CurrentStreak = 1
		res.Maintained = true
	} else {
		delta := today.DaysSince(s.LastActiveDate)
		switch {
		case delta == 0:
			return StreakResult{Maintained: true, NewStreak: s.CurrentStreak}
		case delta == 1:
			s.CurrentStreak++
			res.Maintained = true
		case delta == 2 && s.StreakProtected:
			s.CurrentStreak++
			s.StreakProtected = false
			res.Maintained = true
			res.FreezeUsed = true
		default:
			// Includes a clock moved backwards
			s.CurrentStreak = 1
			res.Lost = true
		}
	}

	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	s.CardsViewedToday = 0
	s.LastActiveDate = today
	res.NewStreak = s.CurrentStreak
	return res
}

// IncrementCardsViewed counts a card view. GoalMet is reported once per day,
// on the first view at or past the daily goal. Changing the goal later in
// the day does not report it again.
func (l *Ledger) IncrementCardsViewed() ViewResult {
	today := l.today()
	var res ViewResult
	if l.state.LastActiveDate != today {
		res.Rollover = l.rollover(today)
	}

	s := &l.state
	s.CardsViewedToday++
	s.TotalCardsViewed++
	if s.DailyGoalMetDate != today && s.DailyGoalMet() {
		res.GoalMet = true
		s.DailyGoalMetDate = today
		s.DailyGoalsCompleted++
	}
	res.ViewsToday = s.CardsViewedToday
	return res
}

// ClaimDailyReward awards the first-of-day bonus. Returns 0 when already
// claimed today.
func (l *Ledger) ClaimDailyReward() int {
	today := l.today()
	if l.state.LastDailyRewardClaimDate == today {
		return 0
	}
	amount := DailyReward(l.state.CurrentStreak)
	l.state.LastDailyRewardClaimDate = today
	l.AddXP(amount, EventFirstOfDay)
	return amount
}

// CanClaimDailyReward reports whether today's reward is still available
func (l *Ledger) CanClaimDailyReward() bool {
	return l.state.LastDailyRewardClaimDate != l.today()
}

// SetDailyGoal changes the number of views needed to complete a day.
// Non-positive values are ignored.
func (l *Ledger) SetDailyGoal(n int) {
	if n <= 0 {
		return
	}
	l.state.DailyGoal = n
}

// UseStreakFreeze arms the streak freeze. Returns false if one is already armed.
func (l *Ledger) UseStreakFreeze() bool {
	if l.state.StreakProtected {
		return false
	}
	l.state.StreakProtected = true
	return true
}

// UnlockAchievement records a as unlocked and queues it for notification.
// Returns false if it was already unlocked.
func (l *Ledger) UnlockAchievement(a models.Achievement) bool {
	if l.HasAchievement(a.ID) {
		return false
	}
	l.state.Achievements = append(l.state.Achievements, a.ID)
	l.state.RecentAchievements = append(l.state.RecentAchievements, a)
	return true
}

// HasAchievement reports whether id is unlocked
func (l *Ledger) HasAchievement(id string) bool {
	for _, got := range l.state.Achievements {
		if got == id {
			return true
		}
	}
	return false
}

// RecentAchievements returns unlocks not yet shown to the user
func (l *Ledger) RecentAchievements() []models.Achievement {
	return append([]models.Achievement(nil), l.state.RecentAchievements...)
}

// ClearRecentAchievements drains the notification buffer
func (l *Ledger) ClearRecentAchievements() {
	l.state.RecentAchievements = []models.Achievement{}
}
