package models

import "time"

// CardType identifies the layout and payload of a feed card
type CardType string

const (
	CardInsight     CardType = "insight"
	CardFact        CardType = "fact"
	CardQuote       CardType = "quote"
	CardVisionary   CardType = "visionary"
	CardBookSummary CardType = "book_summary"
	CardConcept     CardType = "concept"
	CardChallenge   CardType = "challenge"
	CardFlashcard   CardType = "flashcard"
)

// AllCardTypes lists every card type in display order
var AllCardTypes = []CardType{
	CardInsight, CardFact, CardQuote, CardVisionary,
	CardBookSummary, CardConcept, CardChallenge, CardFlashcard,
}

// Category is the content category a card belongs to
type Category string

const (
	CategoryNeuroscience      Category = "neuroscience"
	CategoryPsychology        Category = "psychology"
	CategoryHumanBody         Category = "human_body"
	CategoryHealth            Category = "health"
	CategoryAITech            Category = "ai_tech"
	CategoryVisionaryThinkers Category = "visionary_thinkers"
	CategoryScience           Category = "science"
	CategoryFacts             Category = "facts"
	CategoryBookSummaries     Category = "book_summaries"
)

// AllCategories lists every content category
var AllCategories = []Category{
	CategoryNeuroscience, CategoryPsychology, CategoryHumanBody,
	CategoryHealth, CategoryAITech, CategoryVisionaryThinkers,
	CategoryScience, CategoryFacts, CategoryBookSummaries,
}

// Difficulty of a card
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	// DifficultyMixed is only valid as a user preference, never on a card
	DifficultyMixed Difficulty = "mixed"
)

// AllDifficulties lists the difficulties a card can carry
var AllDifficulties = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

// FeedCard represents one piece of bite-sized content in the feed
type FeedCard struct {
	ID         string     `json:"id" db:"id"`
	Type       CardType   `json:"type" db:"type"`
	Category   Category   `json:"category" db:"category"`
	Difficulty Difficulty `json:"difficulty" db:"difficulty"`
	Title      string     `json:"title" db:"title"`
	Body       string     `json:"body" db:"body"`           // Insight, fact, quote text, definition...
	AuthorName string     `json:"authorName" db:"author_name"`
	Topics     []string   `json:"topics,omitempty" db:"-"`
	Tags       []string   `json:"tags,omitempty" db:"-"`

	// Challenge cards
	Options         []ChallengeOption `json:"options,omitempty" db:"-"`
	CorrectOptionID string            `json:"correctOptionId,omitempty" db:"-"`
	XPReward        int               `json:"xpReward,omitempty" db:"-"`

	// Flashcards
	Front string `json:"front,omitempty" db:"-"`
	Back  string `json:"back,omitempty" db:"-"`
	Hint  string `json:"hint,omitempty" db:"-"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ChallengeOption is one answer of a challenge card
type ChallengeOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Valid reports whether t is a known card type
func (t CardType) Valid() bool {
	for _, known := range AllCardTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Valid reports whether d is a difficulty a card can carry
func (d Difficulty) Valid() bool {
	for _, known := range AllDifficulties {
		if d == known {
			return true
		}
	}
	return false
}
