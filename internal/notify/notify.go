package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/shiviagarwalwork/brainbites/internal/logger"
)

// Reminder describes why the user should open the app today
type Reminder struct {
	Streak       int  `json:"streak"`
	StreakAtRisk bool `json:"streakAtRisk"`
	ViewsToday   int  `json:"viewsToday"`
	DailyGoal    int  `json:"dailyGoal"`
	DueReviews   int  `json:"dueReviews"`
}

// Notifier delivers reminders to the user
type Notifier interface {
	SendReminder(ctx context.Context, r Reminder) error
}

// Message renders the reminder text
func Message(r Reminder) string {
	var b strings.Builder
	switch {
	case r.StreakAtRisk && r.Streak > 0:
		fmt.Fprintf(&b, "🔥 Your %d day streak ends at midnight. ", r.Streak)
	case r.ViewsToday == 0:
		b.WriteString("🧠 Time for a few bites of knowledge. ")
	}
	if left := r.DailyGoal - r.ViewsToday; left > 0 {
		fmt.Fprintf(&b, "%d %s to reach today's goal.", left, plural(left, "card", "cards"))
	} else {
		b.WriteString("Daily goal done, nice work!")
	}
	if r.DueReviews > 0 {
		fmt.Fprintf(&b, " %d %s waiting for review.", r.DueReviews, plural(r.DueReviews, "flashcard", "flashcards"))
	}
	return strings.TrimSpace(b.String())
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// LogNotifier writes reminders to the log. Used when no Telegram bot is configured.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.Named("notify")}
}

func (n *LogNotifier) SendReminder(_ context.Context, r Reminder) error {
	n.log.Info("reminder", "message", Message(r), "streak", r.Streak, "dueReviews", r.DueReviews)
	return nil
}
