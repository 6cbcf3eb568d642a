package models

import "time"

// Comment left by a user on a card
type Comment struct {
	ID         string    `json:"id"`
	CardID     string    `json:"cardId"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	UserAvatar string    `json:"userAvatar,omitempty"`
	ParentID   string    `json:"parentId,omitempty"`
	Content    string    `json:"content"`
	Likes      int       `json:"likes"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
