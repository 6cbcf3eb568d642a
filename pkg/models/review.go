package models

// ReviewRecord tracks a user's progress with a flashcard using the SM-2 algorithm
type ReviewRecord struct {
	CardID         string  `json:"cardId"`
	EaseFactor     float64 `json:"easeFactor"`     // SM-2 EF parameter, 2.5 for new cards
	Interval       int     `json:"interval"`       // Days until next review
	Repetitions    int     `json:"repetitions"`    // Consecutive correct reviews
	LastQuality    int     `json:"lastQuality"`    // 0-5 rating of last recall
	NextReviewDate Day     `json:"nextReviewDate"`
	LastReviewDate Day     `json:"lastReviewDate,omitempty"`
}
