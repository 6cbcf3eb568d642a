package challenge

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

func quiz() models.FeedCard {
	return models.FeedCard{
		ID:    "q1",
		Type:  models.CardChallenge,
		Title: "Brain quiz",
		Body:  "Which lobe handles vision?",
		Options: []models.ChallengeOption{
			{ID: "a", Text: "Frontal"},
			{ID: "b", Text: "Occipital"},
			{ID: "c", Text: "Temporal"},
			{ID: "d", Text: "Parietal"},
		},
		CorrectOptionID: "b",
		XPReward:        20,
	}
}

func TestPresent_TracksCorrectIndexAfterShuffle(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		q, err := Present(quiz(), rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		require.Len(t, q.Options, 4)
		assert.Equal(t, "b", q.Options[q.CorrectIndex].ID)
		assert.Equal(t, MultipleChoice, q.Type)
		assert.Equal(t, "Which lobe handles vision?", q.Prompt)
	}
}

func TestPresent_DoesNotMutateCard(t *testing.T) {
	c := quiz()
	Present(c, rand.New(rand.NewSource(3)))
	assert.Equal(t, "a", c.Options[0].ID)
}

func TestPresent_Flashcard(t *testing.T) {
	card := models.FeedCard{
		ID:    "f1",
		Type:  models.CardFlashcard,
		Front: "Neuroplasticity",
		Back:  "neuroplasticity is the brain's ability to rewire itself",
	}
	q, err := Present(card, nil)
	require.NoError(t, err)
	assert.Equal(t, Cloze, q.Type)
	assert.Equal(t, "_______ is the brain's ability to rewire itself", q.Prompt)
}

func TestPresent_RejectsOtherCards(t *testing.T) {
	_, err := Present(models.FeedCard{Type: models.CardFact}, nil)
	assert.ErrorIs(t, err, ErrNotChallenge)

	_, err = Present(models.FeedCard{Type: models.CardChallenge}, nil)
	assert.ErrorIs(t, err, ErrNotChallenge)
}

func TestAnswer(t *testing.T) {
	res, err := Answer(quiz(), "b")
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, 20, res.XP)

	res, err = Answer(quiz(), "a")
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, 0, res.XP)
	assert.Equal(t, "b", res.CorrectOptionID)

	_, err = Answer(quiz(), "z")
	assert.ErrorIs(t, err, ErrUnknownOption)
}

func TestAnswer_DefaultReward(t *testing.T) {
	c := quiz()
	c.XPReward = 0
	res, err := Answer(c, "b")
	require.NoError(t, err)
	assert.Equal(t, 15, res.XP)
}

func TestBlankOut(t *testing.T) {
	assert.Equal(t, "The _______ stores memories", BlankOut("The hippocampus stores memories", "Hippocampus"))
	assert.Equal(t, "No match here _______", BlankOut("No match here", "cortex"))
	assert.Equal(t, "unchanged", BlankOut("unchanged", " "))
}
