package personalization

import (
	"time"

	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

const (
	defaultCategoryWeight = 0.5
	defaultNoveltyRatio   = 0.3

	interestLow  = 0.2
	interestHigh = 0.8

	preferredDifficulty = 0.7
	otherDifficulty     = 0.15
)

var defaultCardTypeWeights = map[models.CardType]float64{
	models.CardInsight:     0.15,
	models.CardFact:        0.15,
	models.CardQuote:       0.15,
	models.CardVisionary:   0.15,
	models.CardBookSummary: 0.15,
	models.CardConcept:     0.10,
	models.CardChallenge:   0.10,
	models.CardFlashcard:   0.05,
}

// DefaultWeights returns the uniform weights a new user starts with
func DefaultWeights(userID string, now time.Time) models.PersonalizationWeights {
	w := models.PersonalizationWeights{
		UserID:            userID,
		TopicWeights:      map[string]float64{},
		CategoryWeights:   make(map[models.Category]float64, len(models.AllCategories)),
		DifficultyWeights: mixedDifficulty(),
		CardTypeWeights:   make(map[models.CardType]float64, len(defaultCardTypeWeights)),
		NoveltyRatio:      defaultNoveltyRatio,
		LastUpdated:       now,
	}
	for _, c := range models.AllCategories {
		w.CategoryWeights[c] = defaultCategoryWeight
	}
	for t, v := range defaultCardTypeWeights {
		w.CardTypeWeights[t] = v
	}
	return w
}

func mixedDifficulty() map[models.Difficulty]float64 {
	return map[models.Difficulty]float64{
		models.DifficultyBeginner:     0.33,
		models.DifficultyIntermediate: 0.34,
		models.DifficultyAdvanced:     0.33,
	}
}

// Model holds a user's personalization weights. Every mutation builds a new
// weights value and swaps it in, so a snapshot never sees a partial update.
type Model struct {
	weights models.PersonalizationWeights
	now     func() time.Time
}

// NewModel creates a model with default weights. now may be nil.
func NewModel(userID string, now func() time.Time) *Model {
	if now == nil {
		now = time.Now
	}
	return &Model{
		weights: DefaultWeights(userID, now()),
		now:     now,
	}
}

// Weights returns a snapshot of the current weights
func (m *Model) Weights() models.PersonalizationWeights {
	return m.weights.Clone()
}

// Restore replaces the weights with a persisted copy, filling gaps with defaults
func (m *Model) Restore(w models.PersonalizationWeights) {
	def := DefaultWeights(w.UserID, w.LastUpdated)
	next := w.Clone()
	for c, v := range def.CategoryWeights {
		if _, ok := next.CategoryWeights[c]; !ok {
			next.CategoryWeights[c] = v
		}
	}
	if len(next.DifficultyWeights) == 0 {
		next.DifficultyWeights = def.DifficultyWeights
	}
	if len(next.CardTypeWeights) == 0 {
		next.CardTypeWeights = def.CardTypeWeights
	}
	next.NoveltyRatio = clamp01(next.NoveltyRatio)
	m.weights = next
}

// Reset returns to default weights, keeping the user id
func (m *Model) Reset(userID string) {
	m.weights = DefaultWeights(userID, m.now())
}

// SetInterests boosts the selected categories and lowers all others
func (m *Model) SetInterests(categories []models.Category) {
	next := m.weights.Clone()
	for _, c := range models.AllCategories {
		next.CategoryWeights[c] = interestLow
	}
	for _, c := range categories {
		next.CategoryWeights[c] = interestHigh
	}
	m.commit(next)
}

// SetDifficulty weights difficulties towards pref. DifficultyMixed, or any
// unknown value, spreads the weight evenly.
func (m *Model) SetDifficulty(pref models.Difficulty) {
	next := m.weights.Clone()
	if !pref.Valid() {
		next.DifficultyWeights = mixedDifficulty()
		m.commit(next)
		return
	}

	next.DifficultyWeights = make(map[models.Difficulty]float64, len(models.AllDifficulties))
	for _, d := range models.AllDifficulties {
		if d == pref {
			next.DifficultyWeights[d] = preferredDifficulty
		} else {
			next.DifficultyWeights[d] = otherDifficulty
		}
	}
	m.commit(next)
}

// UpdateWeight sets a single category weight, clamped to [0,1]
func (m *Model) UpdateWeight(category models.Category, weight float64) {
	next := m.weights.Clone()
	next.CategoryWeights[category] = clamp01(weight)
	m.commit(next)
}

// UpdateTopicWeight sets a free-form topic weight, clamped to [0,1]
func (m *Model) UpdateTopicWeight(topic string, weight float64) {
	next := m.weights.Clone()
	next.TopicWeights[topic] = clamp01(weight)
	m.commit(next)
}

// SetNoveltyRatio sets the share of the feed reserved for unseen content
func (m *Model) SetNoveltyRatio(ratio float64) {
	next := m.weights.Clone()
	next.NoveltyRatio = clamp01(ratio)
	m.commit(next)
}

func (m *Model) commit(next models.PersonalizationWeights) {
	next.LastUpdated = m.now()
	m.weights = next
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
