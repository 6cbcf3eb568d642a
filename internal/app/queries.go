package app

import (
	"context"
	"fmt"

	"github.com/shiviagarwalwork/brainbites/internal/achievements"
	"github.com/shiviagarwalwork/brainbites/internal/database"
	"github.com/shiviagarwalwork/brainbites/internal/gamification"
	"github.com/shiviagarwalwork/brainbites/internal/notify"
	"github.com/shiviagarwalwork/brainbites/internal/personalization"
	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

// AchievementStatus is one catalog entry with the user's progress towards it
type AchievementStatus struct {
	Achievement models.Achievement `json:"achievement"`
	Unlocked    bool               `json:"unlocked"`
	Progress    float64            `json:"progress"`
}

// Stats is a read-only view of the user's progress
type Stats struct {
	User               *models.User            `json:"user,omitempty"`
	Onboarded          bool                    `json:"onboarded"`
	Level              gamification.LevelInfo  `json:"level"`
	Progression        models.ProgressionState `json:"progression"`
	DailyGoalMet       bool                    `json:"dailyGoalMet"`
	CanClaimReward     bool                    `json:"canClaimReward"`
	Liked              int                     `json:"liked"`
	Saved              int                     `json:"saved"`
	Shared             int                     `json:"shared"`
	Viewed             int                     `json:"viewed"`
	DueReviews         int                     `json:"dueReviews"`
	MasteredFlashcards int                     `json:"masteredFlashcards"`
	Achievements       []AchievementStatus     `json:"achievements"`
}

func (a *App) Stats() (Stats, error) {
	if err := a.begin(); err != nil {
		return Stats{}, err
	}
	defer a.mu.Unlock()

	st := a.ledger.State()
	out := Stats{
		Onboarded:          a.profile.IsOnboarded(),
		Level:              a.ledger.Level(),
		Progression:        st,
		CanClaimReward:     a.ledger.CanClaimDailyReward(),
		Liked:              a.journal.LikedCount(),
		Saved:              a.journal.SavedCount(),
		Shared:             a.journal.SharedCount(),
		Viewed:             a.journal.ViewedCount(),
		DueReviews:         len(a.reviews.Due(0)),
		MasteredFlashcards: a.reviews.MasteredCount(),
	}
	// The view count only belongs to today until the next rollover
	if st.LastActiveDate == models.DayOf(a.now()) {
		out.DailyGoalMet = st.DailyGoalMet()
	} else {
		out.Progression.CardsViewedToday = 0
	}
	if u, ok := a.profile.User(); ok {
		out.User = &u
	}

	m := a.achievementMetrics()
	for _, ach := range achievements.Catalog {
		out.Achievements = append(out.Achievements, AchievementStatus{
			Achievement: ach,
			Unlocked:    a.ledger.HasAchievement(ach.ID),
			Progress:    achievements.Progress(ach, m),
		})
	}
	return out, nil
}

// Preferences returns the current personalization weights
func (a *App) Preferences() (models.PersonalizationWeights, error) {
	if err := a.begin(); err != nil {
		return models.PersonalizationWeights{}, err
	}
	defer a.mu.Unlock()
	return a.profile.Preferences(), nil
}

// Feed ranks the catalog for the user and returns the best n cards
func (a *App) Feed(ctx context.Context, filter database.CardFilter, n int) ([]personalization.ScoredCard, error) {
	if a.cards == nil {
		return nil, ErrNoCatalog
	}
	limit := filter.Limit
	filter.Limit = 0
	cards, err := a.cards.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	if n <= 0 {
		n = limit
	}

	if err := a.begin(); err != nil {
		return nil, err
	}
	defer a.mu.Unlock()

	ranker := personalization.Ranker{Seen: a.journal.Seen}
	return ranker.Rank(cards, a.profile.Preferences(), n), nil
}

// DueReviews lists flashcards due for review, most urgent first
func (a *App) DueReviews(limit int) ([]models.ReviewRecord, error) {
	if err := a.begin(); err != nil {
		return nil, err
	}
	defer a.mu.Unlock()
	return a.reviews.Due(limit), nil
}

// PendingReminder describes today's unfinished business. ok is false when
// there is nothing to remind about or the user turned notifications off.
func (a *App) PendingReminder() (notify.Reminder, bool, error) {
	if err := a.begin(); err != nil {
		return notify.Reminder{}, false, err
	}
	defer a.mu.Unlock()

	if u, ok := a.profile.User(); ok && !u.NotificationsEnabled {
		return notify.Reminder{}, false, nil
	}

	st := a.ledger.State()
	today := models.DayOf(a.now())
	r := notify.Reminder{
		Streak:     st.CurrentStreak,
		DailyGoal:  st.DailyGoal,
		DueReviews: len(a.reviews.Due(0)),
	}
	if st.LastActiveDate == today {
		r.ViewsToday = st.CardsViewedToday
	} else if st.CurrentStreak > 0 {
		delta := today.DaysSince(st.LastActiveDate)
		r.StreakAtRisk = delta == 1 || (delta == 2 && st.StreakProtected)
	}

	ok := r.ViewsToday < r.DailyGoal || r.DueReviews > 0
	return r, ok, nil
}
