package achievements

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiviagarwalwork/brainbites/internal/gamification"
	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

func ids(list []models.Achievement) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func TestCatalog_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range Catalog {
		assert.False(t, seen[a.ID], a.ID)
		seen[a.ID] = true
		assert.Positive(t, a.Requirement.Threshold)
		assert.Positive(t, a.XPReward)
	}
	assert.Len(t, Catalog, 19)
}

func TestByID(t *testing.T) {
	a, ok := ByID("streak_7")
	require.True(t, ok)
	assert.Equal(t, "Week Warrior", a.Name)
	assert.Equal(t, "streak", a.Requirement.Type)

	_, ok = ByID("nope")
	assert.False(t, ok)
}

func TestEvaluator_UnlocksMetThresholds(t *testing.T) {
	ledger := gamification.NewLedger(time.Now, 0)
	e := NewEvaluator(nil)

	got := e.Evaluate(Metrics{MetricLikes: 10, MetricViews: 9, MetricLevel: 1}, ledger)
	assert.Equal(t, []string{"first_like", "like_10"}, ids(got))

	got = e.Evaluate(Metrics{MetricLikes: 10, MetricViews: 10}, ledger)
	assert.Equal(t, []string{"view_10"}, ids(got))
}

func TestEvaluator_IdempotentUnlock(t *testing.T) {
	ledger := gamification.NewLedger(time.Now, 0)
	e := NewEvaluator(nil)
	m := Metrics{MetricShares: 1}

	require.Len(t, e.Evaluate(m, ledger), 1)
	assert.Empty(t, e.Evaluate(m, ledger))

	s := ledger.State()
	assert.Equal(t, []string{"first_share"}, s.Achievements)
	assert.Len(t, s.RecentAchievements, 1)
}

func TestEvaluator_CustomCatalog(t *testing.T) {
	catalog := []models.Achievement{
		{ID: "x", Requirement: models.AchievementRequirement{Metric: MetricCreates, Threshold: 3}},
	}
	ledger := gamification.NewLedger(time.Now, 0)
	e := NewEvaluator(catalog)

	assert.Empty(t, e.Evaluate(Metrics{MetricCreates: 2}, ledger))
	assert.Len(t, e.Evaluate(Metrics{MetricCreates: 3}, ledger), 1)
}

func TestProgress(t *testing.T) {
	a, _ := ByID("view_50")
	assert.Equal(t, 0.5, Progress(a, Metrics{MetricViews: 25}))
	assert.Equal(t, 1.0, Progress(a, Metrics{MetricViews: 80}))
	assert.Equal(t, 0.0, Progress(a, Metrics{}))
}
