package personalization

import (
	"sort"

	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

// Fallbacks for keys absent from a weights map
const (
	fallbackCategory   = defaultCategoryWeight
	fallbackDifficulty = 1.0 / 3
	fallbackCardType   = 0.1
)

// ScoredCard pairs a card with its ranking score
type ScoredCard struct {
	Card  models.FeedCard `json:"card"`
	Score float64         `json:"score"`
}

// Ranker orders cards for the feed from a user's weights
type Ranker struct {
	// Seen reports whether the user already viewed a card. May be nil.
	Seen func(cardID string) bool
}

// Score returns the preference score of a single card.
// Unseen cards get a boost proportional to the novelty ratio.
func (r Ranker) Score(card models.FeedCard, w models.PersonalizationWeights) float64 {
	score := lookup(w.CategoryWeights, card.Category, fallbackCategory) *
		lookup(w.DifficultyWeights, card.Difficulty, fallbackDifficulty) *
		lookup(w.CardTypeWeights, card.Type, fallbackCardType)

	for _, topic := range card.Topics {
		if tw, ok := w.TopicWeights[topic]; ok {
			score *= 1 + tw
		}
	}
	if r.Seen == nil || !r.Seen(card.ID) {
		score *= 1 + w.NoveltyRatio
	}
	return score
}

// Rank scores cards and returns at most limit of them, best first.
// Ties keep their input order. limit <= 0 returns everything.
func (r Ranker) Rank(cards []models.FeedCard, w models.PersonalizationWeights, limit int) []ScoredCard {
	scored := make([]ScoredCard, 0, len(cards))
	for _, c := range cards {
		scored = append(scored, ScoredCard{Card: c, Score: r.Score(c, w)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func lookup[K comparable](m map[K]float64, key K, fallback float64) float64 {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}
