package personalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

func card(id string, c models.Category, d models.Difficulty, ct models.CardType) models.FeedCard {
	return models.FeedCard{ID: id, Category: c, Difficulty: d, Type: ct}
}

func TestRanker_PrefersInterests(t *testing.T) {
	m := NewModel("u1", fixedNow)
	m.SetInterests([]models.Category{models.CategoryNeuroscience})
	m.SetDifficulty(models.DifficultyBeginner)

	cards := []models.FeedCard{
		card("a", models.CategoryHealth, models.DifficultyBeginner, models.CardFact),
		card("b", models.CategoryNeuroscience, models.DifficultyAdvanced, models.CardFact),
		card("c", models.CategoryNeuroscience, models.DifficultyBeginner, models.CardFact),
	}

	ranked := Ranker{}.Rank(cards, m.Weights(), 0)
	require.Len(t, ranked, 3)
	assert.Equal(t, "c", ranked[0].Card.ID)
	// Matching difficulty outweighs a matching category
	assert.Equal(t, "a", ranked[1].Card.ID)
	assert.Equal(t, "b", ranked[2].Card.ID)
}

func TestRanker_NoveltyBoost(t *testing.T) {
	w := DefaultWeights("u1", fixedNow())
	seen := map[string]bool{"a": true}
	r := Ranker{Seen: func(id string) bool { return seen[id] }}

	cards := []models.FeedCard{
		card("a", models.CategoryFacts, models.DifficultyIntermediate, models.CardFact),
		card("b", models.CategoryFacts, models.DifficultyIntermediate, models.CardFact),
	}
	ranked := r.Rank(cards, w, 0)
	assert.Equal(t, "b", ranked[0].Card.ID)
	assert.InDelta(t, ranked[1].Score*1.3, ranked[0].Score, 1e-9)
}

func TestRanker_StableAndLimited(t *testing.T) {
	w := DefaultWeights("u1", fixedNow())
	cards := []models.FeedCard{
		card("a", models.CategoryFacts, models.DifficultyBeginner, models.CardQuote),
		card("b", models.CategoryFacts, models.DifficultyBeginner, models.CardQuote),
		card("c", models.CategoryFacts, models.DifficultyBeginner, models.CardQuote),
	}
	ranked := Ranker{}.Rank(cards, w, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].Card.ID)
	assert.Equal(t, "b", ranked[1].Card.ID)
}

func TestRanker_TopicWeights(t *testing.T) {
	m := NewModel("u1", fixedNow)
	m.UpdateTopicWeight("memory", 1)

	plain := card("a", models.CategoryFacts, models.DifficultyBeginner, models.CardFact)
	topical := plain
	topical.ID = "b"
	topical.Topics = []string{"memory"}

	r := Ranker{}
	assert.InDelta(t, 2*r.Score(plain, m.Weights()), r.Score(topical, m.Weights()), 1e-9)
}
