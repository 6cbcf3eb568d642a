package challenge

import (
	"errors"
	"math/rand"
	"strings"

	"github.com/shiviagarwalwork/brainbites/internal/gamification"
	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

var (
	ErrNotChallenge  = errors.New("card is not a challenge")
	ErrUnknownOption = errors.New("unknown option")
)

const blank = "_______"

// QuestionType tells how a question is asked
type QuestionType string

const (
	// MultipleChoice asks to pick one of the card's options
	MultipleChoice QuestionType = "multiple_choice"
	// Cloze asks to fill the flashcard term into its own definition
	Cloze QuestionType = "cloze"
)

// Question is a card prepared for answering
type Question struct {
	CardID       string                   `json:"cardId"`
	Type         QuestionType             `json:"type"`
	Prompt       string                   `json:"prompt"`
	Options      []models.ChallengeOption `json:"options,omitempty"`
	CorrectIndex int                      `json:"correctIndex"`
}

// Result is the outcome of answering a question
type Result struct {
	Correct         bool   `json:"correct"`
	CorrectOptionID string `json:"correctOptionId"`
	XP              int    `json:"xp"`
}

// Present builds a question from a challenge or flashcard card.
// Challenge options are shuffled with rnd; a nil rnd keeps card order.
func Present(card models.FeedCard, rnd *rand.Rand) (Question, error) {
	switch card.Type {
	case models.CardChallenge:
		return presentChoice(card, rnd)
	case models.CardFlashcard:
		return Question{
			CardID:       card.ID,
			Type:         Cloze,
			Prompt:       BlankOut(card.Back, card.Front),
			CorrectIndex: -1,
		}, nil
	default:
		return Question{}, ErrNotChallenge
	}
}

func presentChoice(card models.FeedCard, rnd *rand.Rand) (Question, error) {
	if len(card.Options) == 0 {
		return Question{}, ErrNotChallenge
	}
	options := append([]models.ChallengeOption(nil), card.Options...)
	if rnd != nil {
		rnd.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
	}

	correct := -1
	for i, o := range options {
		if o.ID == card.CorrectOptionID {
			correct = i
			break
		}
	}
	prompt := card.Title
	if card.Body != "" {
		prompt = card.Body
	}
	return Question{
		CardID:       card.ID,
		Type:         MultipleChoice,
		Prompt:       prompt,
		Options:      options,
		CorrectIndex: correct,
	}, nil
}

// Answer grades optionID against a challenge card. Correct answers earn the
// card's XP reward, or the default challenge reward when the card has none.
func Answer(card models.FeedCard, optionID string) (Result, error) {
	if card.Type != models.CardChallenge {
		return Result{}, ErrNotChallenge
	}
	known := false
	for _, o := range card.Options {
		if o.ID == optionID {
			known = true
			break
		}
	}
	if !known {
		return Result{}, ErrUnknownOption
	}

	res := Result{
		Correct:         optionID == card.CorrectOptionID,
		CorrectOptionID: card.CorrectOptionID,
	}
	if res.Correct {
		res.XP = card.XPReward
		if res.XP <= 0 {
			res.XP = gamification.XPForEvent(gamification.EventChallenge)
		}
	}
	return res, nil
}

// BlankOut replaces the first case-insensitive occurrence of term in sentence
// with a blank. If term is missing the blank is appended.
func BlankOut(sentence, term string) string {
	term = strings.TrimSpace(term)
	if term == "" {
		return sentence
	}
	i := strings.Index(strings.ToLower(sentence), strings.ToLower(term))
	if i < 0 {
		return strings.TrimSpace(sentence + " " + blank)
	}
	return sentence[:i] + blank + sentence[i+len(term):]
}
