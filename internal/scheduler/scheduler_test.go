package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiviagarwalwork/brainbites/internal/config"
	"github.com/shiviagarwalwork/brainbites/internal/logger"
	"github.com/shiviagarwalwork/brainbites/internal/metrics"
	"github.com/shiviagarwalwork/brainbites/internal/notify"
)

type fakeSource struct {
	reminder notify.Reminder
	due      bool
	err      error
}

func (f *fakeSource) PendingReminder() (notify.Reminder, bool, error) {
	return f.reminder, f.due, f.err
}

// reloadingSource changes what is due only when reloaded
type reloadingSource struct {
	fakeSource
	stored    bool
	reloads   int
	reloadErr error
}

func (f *reloadingSource) Reload(context.Context) error {
	f.reloads++
	if f.reloadErr != nil {
		return f.reloadErr
	}
	f.due = f.stored
	return nil
}

type fakeNotifier struct {
	sent []notify.Reminder
	err  error
}

func (f *fakeNotifier) SendReminder(_ context.Context, r notify.Reminder) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, r)
	return nil
}

type fakeFlusher struct {
	calls chan struct{}
}

func (f *fakeFlusher) Flush(context.Context) error {
	select {
	case f.calls <- struct{}{}:
	default:
	}
	return nil
}

func newTestScheduler(src ReminderSource, n notify.Notifier, at time.Time) (*Scheduler, *metrics.Metrics) {
	m := metrics.New()
	cfg := config.RemindersConfig{Enabled: true, StartHour: 9, EndHour: 21}
	s := New(src, n, nil, cfg, 0, logger.Nop(), m)
	s.now = func() time.Time { return at }
	return s, m
}

func TestRunReminderCheck_Window(t *testing.T) {
	tests := []struct {
		name string
		hour int
		want bool
	}{
		{"before window", 8, false},
		{"window start", 9, true},
		{"last hour", 20, true},
		{"window end is exclusive", 21, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{due: true, reminder: notify.Reminder{DailyGoal: 20}}
			n := &fakeNotifier{}
			s, _ := newTestScheduler(src, n, time.Date(2024, 5, 6, tt.hour, 15, 0, 0, time.Local))

			sent, err := s.RunReminderCheck(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, sent)
			assert.Equal(t, tt.want, len(n.sent) == 1)
		})
	}
}

func TestRunReminderCheck_OncePerDay(t *testing.T) {
	src := &fakeSource{due: true, reminder: notify.Reminder{Streak: 3, StreakAtRisk: true, DailyGoal: 20}}
	n := &fakeNotifier{}
	at := time.Date(2024, 5, 6, 10, 0, 0, 0, time.Local)
	s, m := newTestScheduler(src, n, at)
	ctx := context.Background()

	sent, err := s.RunReminderCheck(ctx)
	require.NoError(t, err)
	assert.True(t, sent)

	s.now = func() time.Time { return at.Add(3 * time.Hour) }
	sent, err = s.RunReminderCheck(ctx)
	require.NoError(t, err)
	assert.False(t, sent)

	s.now = func() time.Time { return at.AddDate(0, 0, 1) }
	sent, err = s.RunReminderCheck(ctx)
	require.NoError(t, err)
	assert.True(t, sent)

	assert.Len(t, n.sent, 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RemindersSent.WithLabelValues("sent")))
}

func TestRunReminderCheck_NothingDue(t *testing.T) {
	n := &fakeNotifier{}
	s, m := newTestScheduler(&fakeSource{}, n, time.Date(2024, 5, 6, 12, 0, 0, 0, time.Local))

	sent, err := s.RunReminderCheck(context.Background())
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, n.sent)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RemindersSent.WithLabelValues("skipped")))
}

func TestRunReminderCheck_Errors(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 5, 6, 12, 0, 0, 0, time.Local)

	s, _ := newTestScheduler(&fakeSource{err: errors.New("not loaded")}, &fakeNotifier{}, at)
	_, err := s.RunReminderCheck(ctx)
	assert.Error(t, err)

	n := &fakeNotifier{err: errors.New("network down")}
	s, m := newTestScheduler(&fakeSource{due: true}, n, at)
	_, err = s.RunReminderCheck(ctx)
	assert.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RemindersSent.WithLabelValues("error")))

	// A failed send is retried on the next check
	n.err = nil
	sent, err := s.RunReminderCheck(ctx)
	require.NoError(t, err)
	assert.True(t, sent)
}

func TestRunReminderCheck_ReloadsSourceFirst(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 5, 6, 12, 0, 0, 0, time.Local)

	// Loaded state says a reminder is due, storage says the goal is met
	src := &reloadingSource{fakeSource: fakeSource{due: true}, stored: false}
	n := &fakeNotifier{}
	s, _ := newTestScheduler(src, n, at)

	sent, err := s.RunReminderCheck(ctx)
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Equal(t, 1, src.reloads)
	assert.Empty(t, n.sent)

	src.reloadErr = errors.New("database locked")
	src.stored = true
	_, err = s.RunReminderCheck(ctx)
	assert.Error(t, err)
	assert.Empty(t, n.sent)

	src.reloadErr = nil
	sent, err = s.RunReminderCheck(ctx)
	require.NoError(t, err)
	assert.True(t, sent)
}

func TestStart_RunsFlushJob(t *testing.T) {
	f := &fakeFlusher{calls: make(chan struct{}, 1)}
	s := New(&fakeSource{}, &fakeNotifier{}, f, config.RemindersConfig{}, time.Second, logger.Nop(), nil)
	require.NoError(t, s.Start())
	defer s.Stop()

	select {
	case <-f.calls:
	case <-time.After(5 * time.Second):
		t.Fatal("flush job did not run")
	}
}
