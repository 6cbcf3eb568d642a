package models

import "time"

// SwipeDirection of a feed gesture
type SwipeDirection string

const (
	SwipeUp    SwipeDirection = "up"
	SwipeDown  SwipeDirection = "down"
	SwipeLeft  SwipeDirection = "left"
	SwipeRight SwipeDirection = "right"
)

// InteractionRecord tracks what the user did with a single card
type InteractionRecord struct {
	CardID      string    `json:"cardId"`
	Liked       bool      `json:"liked"`
	Saved       bool      `json:"saved"`
	Shared      bool      `json:"shared"`
	DwellTimeMs int64     `json:"dwellTime"` // Cumulative across views
	ViewedAt    time.Time `json:"viewedAt"`
}
