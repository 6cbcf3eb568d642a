package achievements

import "github.com/shiviagarwalwork/brainbites/pkg/models"

// Metrics holds the current aggregate counters keyed by metric name
type Metrics map[string]int

// Unlocker records an unlock. It returns false when the achievement was
// already held.
type Unlocker interface {
	UnlockAchievement(a models.Achievement) bool
}

// Evaluator checks a catalog against current metrics
type Evaluator struct {
	catalog []models.Achievement
}

// NewEvaluator creates an evaluator over catalog. A nil catalog means Catalog.
func NewEvaluator(catalog []models.Achievement) *Evaluator {
	if catalog == nil {
		catalog = Catalog
	}
	return &Evaluator{catalog: catalog}
}

// Met reports whether metrics satisfy a's requirement
func Met(a models.Achievement, m Metrics) bool {
	return m[a.Requirement.Metric] >= a.Requirement.Threshold
}

// Progress returns how close metrics are to a's requirement, in [0,1]
func Progress(a models.Achievement, m Metrics) float64 {
	if a.Requirement.Threshold <= 0 {
		return 1
	}
	p := float64(m[a.Requirement.Metric]) / float64(a.Requirement.Threshold)
	if p > 1 {
		return 1
	}
	return p
}

// Evaluate unlocks every achievement whose requirement is met and returns
// the ones that were newly unlocked, in catalog order.
func (e *Evaluator) Evaluate(m Metrics, u Unlocker) []models.Achievement {
	var unlocked []models.Achievement
	for _, a := range e.catalog {
		if !Met(a, m) {
			continue
		}
		if u.UnlockAchievement(a) {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}
