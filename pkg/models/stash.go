package models

import "time"

// System stash identifiers. Their contents come from the liked/saved sets.
const (
	StashLiked = "liked"
	StashSaved = "saved"
)

// Stash is a named collection of card references
type Stash struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon"`
	CardIDs     []string  `json:"cardIds"` // Ordered, no duplicates
	IsSystem    bool      `json:"isSystem"`
	CreatedAt   time.Time `json:"createdAt"`
}
