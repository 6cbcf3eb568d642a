package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/shiviagarwalwork/brainbites/internal/achievements"
	"github.com/shiviagarwalwork/brainbites/internal/comments"
	"github.com/shiviagarwalwork/brainbites/internal/database"
	"github.com/shiviagarwalwork/brainbites/internal/gamification"
	"github.com/shiviagarwalwork/brainbites/internal/journal"
	"github.com/shiviagarwalwork/brainbites/internal/logger"
	"github.com/shiviagarwalwork/brainbites/internal/metrics"
	"github.com/shiviagarwalwork/brainbites/internal/persistence"
	"github.com/shiviagarwalwork/brainbites/internal/profile"
	"github.com/shiviagarwalwork/brainbites/internal/review"
	"github.com/shiviagarwalwork/brainbites/internal/stash"
	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

var (
	ErrNotReady        = errors.New("app state is not loaded yet")
	ErrNoCatalog       = errors.New("no card catalog configured")
	ErrNotFlashcard    = errors.New("card is not a flashcard")
	ErrInvalidCategory = errors.New("unknown category")
	ErrInvalidCard     = errors.New("invalid card")
)

// CardCatalog is the card content the app reads and writes
type CardCatalog interface {
	GetByID(ctx context.Context, id string) (models.FeedCard, error)
	List(ctx context.Context, f database.CardFilter) ([]models.FeedCard, error)
	Upsert(ctx context.Context, card models.FeedCard) (bool, error)
}

// Options tune an App. The zero value is usable.
type Options struct {
	// Now is the single clock all "today" decisions come from
	Now       func() time.Time
	DailyGoal int
	Metrics   *metrics.Metrics
	// Rand shuffles challenge options
	Rand *rand.Rand
}

// App owns every store and runs user events against them one at a time.
// State is rehydrated by Open before any event is accepted, and written
// back through the persistence store after each event.
type App struct {
	mu    sync.Mutex
	ready bool

	now     func() time.Time
	rnd     *rand.Rand
	log     *logger.Logger
	metrics *metrics.Metrics
	store   *persistence.Store
	cards   CardCatalog

	ledger    *gamification.Ledger
	profile   *profile.Store
	journal   *journal.Journal
	stashes   *stash.Store
	comments  *comments.Store
	reviews   *review.Scheduler
	evaluator *achievements.Evaluator
}

// New creates an app with default state. cards may be nil, in which case
// catalog-backed operations return ErrNoCatalog.
func New(store *persistence.Store, cards CardCatalog, log *logger.Logger, opts Options) *App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(opts.Now().UnixNano()))
	}
	if log == nil {
		log = logger.Nop()
	}

	return &App{
		now:       opts.Now,
		rnd:       opts.Rand,
		log:       log.Named("app"),
		metrics:   opts.Metrics,
		store:     store,
		cards:     cards,
		ledger:    gamification.NewLedger(opts.Now, opts.DailyGoal),
		profile:   profile.NewStore(opts.Now),
		journal:   journal.New(opts.Now),
		stashes:   stash.NewStore(opts.Now),
		comments:  comments.NewStore(opts.Now),
		reviews:   review.NewScheduler(opts.Now),
		evaluator: achievements.NewEvaluator(nil),
	}
}

// Open rehydrates every record. Unreadable records fall back to defaults,
// so Open only fails when ctx is done.
func (a *App) Open(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.loadAll(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, ok := a.profile.User(); !ok {
		a.profile.SetUser(a.newLocalUser())
		a.persist(persistence.RecordUser)
	}

	a.metrics.StreakDays.Set(float64(a.ledger.State().CurrentStreak))
	a.ready = true
	a.log.Info("state loaded",
		"xp", a.ledger.State().XP,
		"level", a.ledger.Level().Tier.Level,
		"streak", a.ledger.State().CurrentStreak,
		"session", a.profile.SessionID(),
	)
	return nil
}

// Reload replaces the in-memory state with what is stored, picking up
// progress written by other processes. Queued writes go out first.
func (a *App) Reload(ctx context.Context) error {
	if err := a.Flush(ctx); err != nil {
		return fmt.Errorf("failed to flush before reload: %w", err)
	}
	if err := a.begin(); err != nil {
		return err
	}
	defer a.mu.Unlock()

	a.loadAll(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}
	a.metrics.StreakDays.Set(float64(a.ledger.State().CurrentStreak))
	a.log.Debug("state reloaded", "xp", a.ledger.State().XP, "viewsToday", a.ledger.State().CardsViewedToday)
	return nil
}

// loadAll restores every record found in storage. The caller holds a.mu.
func (a *App) loadAll(ctx context.Context) {
	var user profile.State
	if a.load(ctx, persistence.RecordUser, &user) {
		a.profile.Restore(user)
	}

	var feed persistence.FeedRecord
	if a.load(ctx, persistence.RecordFeed, &feed) {
		a.journal.Restore(persistence.DecodeFeed(feed))
	}

	var progression models.ProgressionState
	if a.load(ctx, persistence.RecordGamification, &progression) {
		a.ledger.Restore(progression)
	}

	var stashes []models.Stash
	if a.load(ctx, persistence.RecordStashes, &stashes) {
		a.stashes.Restore(stashes)
	}

	var byCard map[string][]models.Comment
	if a.load(ctx, persistence.RecordComments, &byCard) {
		a.comments.Restore(byCard)
	}

	var reviews map[string]models.ReviewRecord
	if a.load(ctx, persistence.RecordReviews, &reviews) {
		a.reviews.Restore(reviews)
	}
}

func (a *App) newLocalUser() models.User {
	u := profile.NewLocalUser(comments.LocalUserName, a.now())
	u.DailyGoal = a.ledger.State().DailyGoal
	return u
}

// load reads one record into v. It reports whether v holds persisted data.
func (a *App) load(ctx context.Context, name string, v interface{}) bool {
	if a.store == nil {
		return false
	}
	found, err := a.store.Load(ctx, name, v)
	if err != nil {
		a.log.Warn("failed to load record, using defaults", "record", name, "error", err)
		return false
	}
	if !found {
		a.log.Debug("record not found, using defaults", "record", name)
	}
	return found
}

// Close flushes pending writes and stops the persistence store
func (a *App) Close(ctx context.Context) error {
	a.mu.Lock()
	a.ready = false
	a.mu.Unlock()

	if a.store == nil {
		return nil
	}
	return a.store.Close(ctx)
}

// Flush waits for queued writes to reach the backend
func (a *App) Flush(ctx context.Context) error {
	if a.store == nil {
		return nil
	}
	return a.store.Flush(ctx)
}

// begin takes the handler lock. The caller must call a.mu.Unlock.
func (a *App) begin() error {
	a.mu.Lock()
	if !a.ready {
		a.mu.Unlock()
		return ErrNotReady
	}
	return nil
}

// persist queues snapshots of the named records. Failures are logged only;
// the in-memory state stays authoritative.
func (a *App) persist(names ...string) {
	if a.store == nil {
		return
	}
	for _, name := range names {
		var v interface{}
		switch name {
		case persistence.RecordUser:
			v = a.profile.State()
		case persistence.RecordFeed:
			v = persistence.EncodeFeed(a.journal.State())
		case persistence.RecordGamification:
			v = a.ledger.State()
		case persistence.RecordStashes:
			v = a.stashes.List()
		case persistence.RecordComments:
			v = a.comments.State()
		case persistence.RecordReviews:
			v = a.reviews.State()
		default:
			continue
		}
		if err := a.store.Save(name, v); err != nil {
			a.log.Warn("failed to queue record", "record", name, "error", err)
		}
	}
}

func (a *App) track(event string) {
	a.metrics.EventsTotal.WithLabelValues(event).Inc()
}
