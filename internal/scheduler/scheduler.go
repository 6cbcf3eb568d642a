package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/shiviagarwalwork/brainbites/internal/config"
	"github.com/shiviagarwalwork/brainbites/internal/logger"
	"github.com/shiviagarwalwork/brainbites/internal/metrics"
	"github.com/shiviagarwalwork/brainbites/internal/notify"
	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

const jobTimeout = 30 * time.Second

// ReminderSource reports what the user still has to do today
type ReminderSource interface {
	PendingReminder() (notify.Reminder, bool, error)
}

// Reloader is a ReminderSource that can re-read its state from storage.
// Other processes record progress between checks.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Flusher writes queued state to storage
type Flusher interface {
	Flush(ctx context.Context) error
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler  *gocron.Scheduler
	source     ReminderSource
	notifier   notify.Notifier
	flusher    Flusher
	cfg        config.RemindersConfig
	flushEvery time.Duration
	log        *logger.Logger
	metrics    *metrics.Metrics
	now        func() time.Time

	mu       sync.Mutex
	lastSent models.Day
}

// New creates a new scheduler instance. flusher and m may be nil.
func New(source ReminderSource, notifier notify.Notifier, flusher Flusher, cfg config.RemindersConfig,
	flushEvery time.Duration, log *logger.Logger, m *metrics.Metrics) *Scheduler {
	return &Scheduler{
		scheduler:  gocron.NewScheduler(time.Local),
		source:     source,
		notifier:   notifier,
		flusher:    flusher,
		cfg:        cfg,
		flushEvery: flushEvery,
		log:        log.Named("scheduler"),
		metrics:    m,
		now:        time.Now,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() error {
	if s.cfg.Enabled {
		// Hourly check; the first run happens right away
		if _, err := s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders); err != nil {
			return fmt.Errorf("failed to schedule reminders: %w", err)
		}
	}
	if s.flusher != nil && s.flushEvery > 0 {
		if _, err := s.scheduler.Every(s.flushEvery).WaitForSchedule().Do(s.flush); err != nil {
			return fmt.Errorf("failed to schedule flush: %w", err)
		}
	}

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	s.log.Info("scheduler started",
		"reminders", s.cfg.Enabled,
		"window", fmt.Sprintf("%02d:00-%02d:00", s.cfg.StartHour, s.cfg.EndHour),
		"flushEvery", s.flushEvery,
	)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) checkAndSendReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if _, err := s.RunReminderCheck(ctx); err != nil {
		s.log.Error("reminder check failed", "error", err)
	}
}

func (s *Scheduler) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if err := s.flusher.Flush(ctx); err != nil {
		s.log.Warn("periodic flush failed", "error", err)
	}
}

// RunReminderCheck sends today's reminder when the current hour is inside
// the reminder window and nothing was sent yet today. It reports whether a
// reminder went out.
func (s *Scheduler) RunReminderCheck(ctx context.Context) (bool, error) {
	now := s.now()
	if hour := now.Hour(); hour < s.cfg.StartHour || hour >= s.cfg.EndHour {
		s.log.Debug("outside reminder hours, skipping",
			"hour", hour, "start", s.cfg.StartHour, "end", s.cfg.EndHour)
		return false, nil
	}

	today := models.DayOf(now)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastSent == today {
		return false, nil
	}

	if rl, ok := s.source.(Reloader); ok {
		if err := rl.Reload(ctx); err != nil {
			return false, fmt.Errorf("failed to reload state: %w", err)
		}
	}

	r, due, err := s.source.PendingReminder()
	if err != nil {
		return false, fmt.Errorf("failed to build reminder: %w", err)
	}
	if !due {
		s.count("skipped")
		return false, nil
	}

	if err := s.notifier.SendReminder(ctx, r); err != nil {
		s.count("error")
		return false, err
	}
	s.lastSent = today
	s.count("sent")
	s.log.Info("reminder sent", "streak", r.Streak, "atRisk", r.StreakAtRisk, "dueReviews", r.DueReviews)
	return true, nil
}

func (s *Scheduler) count(result string) {
	if s.metrics != nil {
		s.metrics.RemindersSent.WithLabelValues(result).Inc()
	}
}
