package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

func TestSM2_Process(t *testing.T) {
	sm := NewSM2()
	rec := NewRecord("f1", "2024-06-01")

	sm.Process(&rec, QualityPerfect, "2024-06-01")
	assert.InDelta(t, 2.6, rec.EaseFactor, 1e-9)
	assert.Equal(t, 1, rec.Interval)
	assert.Equal(t, 1, rec.Repetitions)
	assert.Equal(t, models.Day("2024-06-02"), rec.NextReviewDate)

	sm.Process(&rec, QualityPerfect, "2024-06-02")
	assert.Equal(t, 6, rec.Interval)
	assert.Equal(t, models.Day("2024-06-08"), rec.NextReviewDate)

	sm.Process(&rec, QualityCorrectHesitation, "2024-06-08")
	assert.InDelta(t, 2.7, rec.EaseFactor, 1e-9)
	assert.Equal(t, 16, rec.Interval)
	assert.Equal(t, 3, rec.Repetitions)

	sm.Process(&rec, QualityIncorrectFamiliar, "2024-06-24")
	assert.InDelta(t, 2.38, rec.EaseFactor, 1e-9)
	assert.Equal(t, 0, rec.Repetitions)
	assert.Equal(t, 1, rec.Interval)
	assert.Equal(t, models.Day("2024-06-25"), rec.NextReviewDate)
	assert.Equal(t, models.Day("2024-06-24"), rec.LastReviewDate)
}

func TestSM2_EaseFactorFloor(t *testing.T) {
	sm := NewSM2()
	rec := NewRecord("f1", "2024-06-01")
	for i := 0; i < 5; i++ {
		sm.Process(&rec, QualityBlackout, "2024-06-01")
	}
	assert.Equal(t, minEaseFactor, rec.EaseFactor)
}

func TestSM2_MaxInterval(t *testing.T) {
	sm := NewSM2()
	rec := models.ReviewRecord{CardID: "f1", EaseFactor: 2.5, Interval: 300, Repetitions: 8}
	sm.Process(&rec, QualityPerfect, "2024-06-01")
	assert.Equal(t, 365, rec.Interval)
}

func TestSM2_DueCardsOrder(t *testing.T) {
	sm := NewSM2()
	today := models.Day("2024-06-10")
	records := []models.ReviewRecord{
		{CardID: "later", EaseFactor: 2.5, Repetitions: 2, NextReviewDate: "2024-06-11"},
		{CardID: "easy", EaseFactor: 2.8, Repetitions: 3, NextReviewDate: "2024-06-01"},
		{CardID: "hard", EaseFactor: 1.5, Repetitions: 3, NextReviewDate: "2024-06-09"},
		{CardID: "new", EaseFactor: 2.5, NextReviewDate: "2024-06-10"},
		{CardID: "easy-older", EaseFactor: 2.8, Repetitions: 1, NextReviewDate: "2024-05-20"},
	}

	due := sm.DueCards(records, today, 0)
	var got []string
	for _, r := range due {
		got = append(got, r.CardID)
	}
	assert.Equal(t, []string{"new", "hard", "easy-older", "easy"}, got)

	assert.Len(t, sm.DueCards(records, today, 2), 2)
}

func TestSM2_IsMastered(t *testing.T) {
	sm := NewSM2()
	assert.True(t, sm.IsMastered(models.ReviewRecord{Repetitions: 5, LastQuality: 4, Interval: 30}))
	assert.False(t, sm.IsMastered(models.ReviewRecord{Repetitions: 5, LastQuality: 3, Interval: 30}))
	assert.False(t, sm.IsMastered(models.ReviewRecord{Repetitions: 4, LastQuality: 5, Interval: 60}))
}

func TestScheduler_Review(t *testing.T) {
	now := time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)
	s := NewScheduler(func() time.Time { return now })

	require.True(t, s.Track("f1"))
	assert.False(t, s.Track("f1"))
	s.Track("f2")
	assert.Len(t, s.Due(0), 2)

	rec, err := s.Review("f1", QualityPerfect)
	require.NoError(t, err)
	assert.Equal(t, models.Day("2024-06-02"), rec.NextReviewDate)

	due := s.Due(0)
	require.Len(t, due, 1)
	assert.Equal(t, "f2", due[0].CardID)

	now = now.Add(24 * time.Hour)
	assert.Len(t, s.Due(0), 2)

	_, err = s.Review("f1", Quality(9))
	assert.ErrorIs(t, err, ErrInvalidQuality)
}

func TestScheduler_StateRestore(t *testing.T) {
	s := NewScheduler(nil)
	s.Review("f1", QualityCorrectDifficult)

	other := NewScheduler(nil)
	other.Restore(s.State())
	rec, ok := other.Record("f1")
	require.True(t, ok)
	assert.Equal(t, 1, rec.Repetitions)
	assert.Equal(t, 0, other.MasteredCount())
}
