package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shiviagarwalwork/brainbites/internal/challenge"
	"github.com/shiviagarwalwork/brainbites/internal/database"
	"github.com/shiviagarwalwork/brainbites/internal/gamification"
	"github.com/shiviagarwalwork/brainbites/internal/persistence"
	"github.com/shiviagarwalwork/brainbites/internal/review"
	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

// StartSession runs the app-open sequence: the streak check first, then the
// daily reward.
func (a *App) StartSession() (Outcome, error) {
	if err := a.begin(); err != nil {
		return Outcome{}, err
	}
	defer a.mu.Unlock()
	a.track("session_start")

	var out Outcome
	sr := a.ledger.CheckStreak()
	a.afterRollover(&out, sr)
	if out.Streak == nil {
		out.Streak = &sr
	}

	before := a.ledger.Level().Tier.Level
	out.DailyReward = a.ledger.ClaimDailyReward()
	if out.DailyReward > 0 {
		out.XPGained += out.DailyReward
		a.metrics.XPAwardedTotal.WithLabelValues(gamification.EventFirstOfDay).Add(float64(out.DailyReward))
		if a.ledger.Level().Tier.Level > before {
			out.LeveledUp = true
			a.metrics.LevelUpsTotal.Inc()
		}
	}
	out.Changed = sr.NewDay || out.DailyReward > 0
	out.ViewsToday = a.ledger.State().CardsViewedToday
	a.finish(&out)
	return out, nil
}

// View counts a card shown in the feed. Flashcards start being tracked for
// review on their first view.
func (a *App) View(ctx context.Context, cardID string) (Outcome, error) {
	card, known := a.lookup(ctx, cardID)

	if err := a.begin(); err != nil {
		return Outcome{}, err
	}
	defer a.mu.Unlock()
	a.track(gamification.EventCardView)

	out := Outcome{Changed: true}
	vr := a.ledger.IncrementCardsViewed()
	a.afterRollover(&out, vr.Rollover)
	a.award(&out, gamification.XPForEvent(gamification.EventCardView), gamification.EventCardView)
	if vr.GoalMet {
		out.GoalMet = true
		a.award(&out, gamification.XPForEvent(gamification.EventDailyGoal), gamification.EventDailyGoal)
		a.log.Info("daily goal met", "views", vr.ViewsToday)
	}
	out.ViewsToday = vr.ViewsToday

	a.journal.View(cardID)
	a.profile.IncrementStat(models.StatCardsViewed)
	a.profile.UpdateUser(func(u *models.User) { u.Stats.CardsViewedToday = vr.ViewsToday })

	records := []string{persistence.RecordFeed, persistence.RecordUser}
	if known && card.Type == models.CardFlashcard && a.reviews.Track(cardID) {
		records = append(records, persistence.RecordReviews)
	}
	a.finish(&out, records...)
	return out, nil
}

// lookup fetches a card from the catalog. Unknown cards and a missing
// catalog are not errors for feed events.
func (a *App) lookup(ctx context.Context, cardID string) (models.FeedCard, bool) {
	if a.cards == nil {
		return models.FeedCard{}, false
	}
	card, err := a.cards.GetByID(ctx, cardID)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			a.log.Warn("failed to look up card", "card", cardID, "error", err)
		}
		return models.FeedCard{}, false
	}
	return card, true
}

// Swipe ends a view. Swiping up likes the card.
func (a *App) Swipe(cardID string, dir models.SwipeDirection, dwell time.Duration) (Outcome, error) {
	if err := a.begin(); err != nil {
		return Outcome{}, err
	}
	defer a.mu.Unlock()
	a.track("swipe_" + string(dir))

	out := Outcome{Changed: true}
	if a.journal.RecordSwipe(cardID, dir, dwell) {
		a.liked(&out)
	}
	a.profile.AddTimeSpent(dwell)
	a.finish(&out, persistence.RecordFeed, persistence.RecordUser)
	return out, nil
}

// TrackDwell adds reading time to a card without ending the view
func (a *App) TrackDwell(cardID string, dwell time.Duration) error {
	if err := a.begin(); err != nil {
		return err
	}
	defer a.mu.Unlock()

	a.journal.TrackDwellTime(cardID, dwell)
	a.profile.AddTimeSpent(dwell)
	a.persist(persistence.RecordFeed, persistence.RecordUser)
	return nil
}

func (a *App) liked(out *Outcome) {
	a.award(out, gamification.XPForEvent(gamification.EventCardLike), gamification.EventCardLike)
	a.profile.IncrementStat(models.StatCardsLiked)
}

func (a *App) Like(cardID string) (Outcome, error) {
	if err := a.begin(); err != nil {
		return Outcome{}, err
	}
	defer a.mu.Unlock()
	a.track(gamification.EventCardLike)

	var out Outcome
	if a.journal.Like(cardID) {
		out.Changed = true
		a.liked(&out)
	}
	a.finish(&out, persistence.RecordFeed, persistence.RecordUser)
	return out, nil
}

// Unlike removes a like. XP already earned is kept.
func (a *App) Unlike(cardID string) (Outcome, error) {
	if err := a.begin(); err != nil {
		return Outcome{}, err
	}
	defer a.mu.Unlock()
	a.track("card_unlike")

	out := Outcome{Changed: a.journal.Unlike(cardID), Level: a.ledger.Level()}
	a.persist(persistence.RecordFeed)
	return out, nil
}

func (a *App) Save(cardID string) (Outcome, error) {
	if err := a.begin(); err != nil {
		return Outcome{}, err
	}
	defer a.mu.Unlock()
	a.track(gamification.EventCardSave)

	var out Outcome
	if a.journal.Save(cardID) {
		out.Changed = true
		a.award(&out, gamification.XPForEvent(gamification.EventCardSave), gamification.EventCardSave)
		a.profile.IncrementStat(models.StatCardsSaved)
	}
	a.finish(&out, persistence.RecordFeed, persistence.RecordUser)
	return out, nil
}

// Unsave removes a save. XP already earned is kept.
func (a *App) Unsave(cardID string) (Outcome, error) {
	if err := a.begin(); err != nil {
		return Outcome{}, err
	}
	defer a.mu.Unlock()
	a.track("card_unsave")

	out := Outcome{Changed: a.journal.Unsave(cardID), Level: a.ledger.Level()}
	a.persist(persistence.RecordFeed)
	return out, nil
}

// Share marks a card shared. Only the first share of a card earns XP.
func (a *App) Share(cardID string) (Outcome, error) {
	if err := a.begin(); err != nil {
		return Outcome{}, err
	}
	defer a.mu.Unlock()
	a.track(gamification.EventCardShare)

	var out Outcome
	if a.journal.Share(cardID) {
		out.Changed = true
		a.profile.IncrementStat(models.StatCardsShared)
		a.award(&out, gamification.XPForEvent(gamification.EventCardShare), gamification.EventCardShare)
	}
	a.finish(&out, persistence.RecordFeed, persistence.RecordUser)
	return out, nil
}

// Present prepares a challenge or flashcard card for answering
func (a *App) Present(ctx context.Context, cardID string) (challenge.Question, error) {
	card, err := a.card(ctx, cardID)
	if err != nil {
		return challenge.Question{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return challenge.Present(card, a.rnd)
}

// AnswerOutcome is the result of answering a challenge
type AnswerOutcome struct {
	Outcome
	Result challenge.Result `json:"result"`
}

// Answer grades a challenge card. Correct answers earn the card's reward.
func (a *App) Answer(ctx context.Context, cardID, optionID string) (AnswerOutcome, error) {
	card, err := a.card(ctx, cardID)
	if err != nil {
		return AnswerOutcome{}, err
	}
	res, err := challenge.Answer(card, optionID)
	if err != nil {
		return AnswerOutcome{}, err
	}

	if err := a.begin(); err != nil {
		return AnswerOutcome{}, err
	}
	defer a.mu.Unlock()
	a.track(gamification.EventChallenge)

	out := AnswerOutcome{Result: res}
	out.Changed = true
	a.journal.View(cardID)
	a.award(&out.Outcome, res.XP, gamification.EventChallenge)
	a.finish(&out.Outcome, persistence.RecordFeed)
	return out, nil
}

// ReviewOutcome is the result of grading a flashcard recall
type ReviewOutcome struct {
	Outcome
	Record   models.ReviewRecord `json:"record"`
	Mastered bool                `json:"mastered"`
}

// Review grades how well the user recalled a flashcard
func (a *App) Review(ctx context.Context, cardID string, q review.Quality) (ReviewOutcome, error) {
	if !q.Valid() {
		return ReviewOutcome{}, review.ErrInvalidQuality
	}
	card, err := a.card(ctx, cardID)
	if err != nil {
		return ReviewOutcome{}, err
	}
	if card.Type != models.CardFlashcard {
		return ReviewOutcome{}, ErrNotFlashcard
	}

	if err := a.begin(); err != nil {
		return ReviewOutcome{}, err
	}
	defer a.mu.Unlock()
	a.track("flashcard_review")

	rec, err := a.reviews.Review(cardID, q)
	if err != nil {
		return ReviewOutcome{}, err
	}
	out := ReviewOutcome{Record: rec, Mastered: review.NewSM2().IsMastered(rec)}
	out.Changed = true
	a.finish(&out.Outcome, persistence.RecordReviews)
	return out, nil
}

func (a *App) card(ctx context.Context, cardID string) (models.FeedCard, error) {
	if a.cards == nil {
		return models.FeedCard{}, ErrNoCatalog
	}
	card, err := a.cards.GetByID(ctx, cardID)
	if err != nil {
		return models.FeedCard{}, fmt.Errorf("failed to get card %s: %w", cardID, err)
	}
	return card, nil
}

// CreateCard adds a user-authored card to the catalog
func (a *App) CreateCard(ctx context.Context, card models.FeedCard) (models.FeedCard, Outcome, error) {
	if a.cards == nil {
		return card, Outcome{}, ErrNoCatalog
	}
	card.Title = strings.TrimSpace(card.Title)
	card.Body = strings.TrimSpace(card.Body)
	if card.Difficulty == "" {
		card.Difficulty = models.DifficultyIntermediate
	}
	switch {
	case !card.Type.Valid():
		return card, Outcome{}, fmt.Errorf("%w: unknown type %q", ErrInvalidCard, card.Type)
	case !card.Category.Valid():
		return card, Outcome{}, fmt.Errorf("%w: unknown category %q", ErrInvalidCard, card.Category)
	case !card.Difficulty.Valid():
		return card, Outcome{}, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidCard, card.Difficulty)
	case card.Title == "" && card.Body == "":
		return card, Outcome{}, fmt.Errorf("%w: title and body are empty", ErrInvalidCard)
	}
	if card.ID == "" {
		card.ID = uuid.NewString()
	}

	if err := a.begin(); err != nil {
		return card, Outcome{}, err
	}
	defer a.mu.Unlock()

	if u, ok := a.profile.User(); ok && card.AuthorName == "" {
		card.AuthorName = u.DisplayName
	}
	card.CreatedAt = a.now()
	if _, err := a.cards.Upsert(ctx, card); err != nil {
		return card, Outcome{}, fmt.Errorf("failed to create card: %w", err)
	}
	a.track(gamification.EventCardCreate)

	out := Outcome{Changed: true}
	a.award(&out, gamification.XPForEvent(gamification.EventCardCreate), gamification.EventCardCreate)
	a.profile.IncrementStat(models.StatCardsCreated)
	a.profile.UpdateUser(func(u *models.User) { u.IsCreator = true })
	a.finish(&out, persistence.RecordUser)
	return card, out, nil
}

// Onboard records the user's interests, difficulty and daily goal.
// A non-positive goal keeps the current one.
func (a *App) Onboard(interests []models.Category, difficulty models.Difficulty, goal int) error {
	for _, c := range interests {
		if !c.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidCategory, c)
		}
	}
	if err := a.begin(); err != nil {
		return err
	}
	defer a.mu.Unlock()
	a.track("onboard")

	a.profile.SetInterests(interests)
	if difficulty != "" {
		a.profile.SetDifficulty(difficulty)
	}
	if goal > 0 {
		a.ledger.SetDailyGoal(goal)
		a.profile.SetDailyGoal(goal)
	}
	a.profile.SetOnboarded(true)
	a.persist(persistence.RecordUser, persistence.RecordGamification)
	return nil
}

// SetDailyGoal changes the number of views that completes a day
func (a *App) SetDailyGoal(goal int) error {
	if goal <= 0 {
		return fmt.Errorf("daily goal must be positive, got %d", goal)
	}
	if err := a.begin(); err != nil {
		return err
	}
	defer a.mu.Unlock()

	a.ledger.SetDailyGoal(goal)
	a.profile.SetDailyGoal(goal)
	a.persist(persistence.RecordUser, persistence.RecordGamification)
	return nil
}

// Freeze arms the streak freeze. Returns false if one is already armed.
func (a *App) Freeze() (bool, error) {
	if err := a.begin(); err != nil {
		return false, err
	}
	defer a.mu.Unlock()
	a.track("streak_freeze")

	ok := a.ledger.UseStreakFreeze()
	if ok {
		a.persist(persistence.RecordGamification)
	}
	return ok, nil
}

// AcknowledgeAchievements returns the unlocks not yet shown and clears them
func (a *App) AcknowledgeAchievements() ([]models.Achievement, error) {
	if err := a.begin(); err != nil {
		return nil, err
	}
	defer a.mu.Unlock()

	recent := a.ledger.RecentAchievements()
	if len(recent) > 0 {
		a.ledger.ClearRecentAchievements()
		a.persist(persistence.RecordGamification)
	}
	return recent, nil
}

// Reset wipes all progress and starts over with a fresh local user
func (a *App) Reset() error {
	if err := a.begin(); err != nil {
		return err
	}
	defer a.mu.Unlock()

	a.ledger.Reset()
	a.profile.Reset()
	a.journal.Reset()
	a.stashes.Reset()
	a.comments.Reset()
	a.reviews.Reset()

	a.profile.SetUser(a.newLocalUser())
	a.metrics.StreakDays.Set(0)
	a.persist(persistence.AllRecords...)
	a.log.Info("state reset", "session", a.profile.SessionID())
	return nil
}
