package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

func clock() time.Time { return time.Date(2024, 4, 4, 10, 0, 0, 0, time.UTC) }

func TestStore_SetUserStartsAuthenticated(t *testing.T) {
	s := NewStore(clock)
	u := NewLocalUser("ada", clock())
	s.SetUser(u)

	got, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "ada", got.DisplayName)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, u.ID, s.Preferences().UserID)
}

func TestStore_OnboardingChoices(t *testing.T) {
	s := NewStore(clock)
	s.SetUser(NewLocalUser("ada", clock()))

	s.SetInterests([]models.Category{models.CategoryFacts, models.CategoryNeuroscience})
	s.SetDifficulty(models.DifficultyIntermediate)
	s.SetDailyGoal(30)

	u, _ := s.User()
	assert.Equal(t, []models.Category{models.CategoryFacts, models.CategoryNeuroscience}, u.Interests)
	assert.Equal(t, models.DifficultyIntermediate, u.PreferredDifficulty)
	assert.Equal(t, 30, u.DailyGoal)

	w := s.Preferences()
	assert.Equal(t, 0.8, w.CategoryWeights[models.CategoryFacts])
	assert.Equal(t, 0.2, w.CategoryWeights[models.CategoryPsychology])
	assert.Equal(t, 0.7, w.DifficultyWeights[models.DifficultyIntermediate])
}

func TestStore_SignedOutUpdatesOnlyWeights(t *testing.T) {
	s := NewStore(clock)
	s.SetInterests([]models.Category{models.CategoryHealth})

	_, ok := s.User()
	assert.False(t, ok)
	assert.Equal(t, 0.8, s.Preferences().CategoryWeights[models.CategoryHealth])
	assert.False(t, s.IncrementStat(models.StatCardsLiked))
}

func TestStore_IncrementStat(t *testing.T) {
	s := NewStore(clock)
	s.SetUser(NewLocalUser("ada", clock()))

	assert.True(t, s.IncrementStat(models.StatCardsViewed))
	assert.True(t, s.IncrementStat(models.StatCardsViewed))
	assert.True(t, s.IncrementStat(models.StatCardsShared))
	assert.False(t, s.IncrementStat("bogus"))
	s.AddTimeSpent(3 * time.Second)

	u, _ := s.User()
	assert.Equal(t, 2, u.Stats.TotalCardsViewed)
	assert.Equal(t, 1, u.Stats.TotalCardsShared)
	assert.Equal(t, int64(3000), u.Stats.TotalTimeSpent)
	assert.Equal(t, int64(1500), u.Stats.AverageDwellTime)
}

func TestStore_SessionRotates(t *testing.T) {
	s := NewStore(clock)
	first := s.SessionID()
	s.Login(NewLocalUser("ada", clock()))
	second := s.SessionID()
	s.Logout()

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, second, s.SessionID())
	assert.False(t, s.IsAuthenticated())
}

func TestStore_StateRestore(t *testing.T) {
	s := NewStore(clock)
	s.SetUser(NewLocalUser("ada", clock()))
	s.SetOnboarded(true)
	s.UpdatePreference(models.CategoryScience, 0.9)

	other := NewStore(clock)
	other.Restore(s.State())

	assert.True(t, other.IsOnboarded())
	assert.True(t, other.IsAuthenticated())
	assert.Equal(t, 0.9, other.Preferences().CategoryWeights[models.CategoryScience])

	other.Reset()
	assert.False(t, other.IsOnboarded())
	assert.Equal(t, 0.5, other.Preferences().CategoryWeights[models.CategoryScience])
}
