package comments

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

// Identity used for comments written on this device
const (
	LocalUserID   = "local_user"
	LocalUserName = "Brain Explorer"
)

var ErrEmptyComment = errors.New("comment is empty")

// Store keeps comments per card, newest first
type Store struct {
	byCard map[string][]models.Comment
	now    func() time.Time
}

// NewStore creates an empty store. now may be nil.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{byCard: map[string][]models.Comment{}, now: now}
}

// Add posts a comment on a card as the local user
func (s *Store) Add(cardID, content string) (models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Comment{}, ErrEmptyComment
	}
	now := s.now()
	c := models.Comment{
		ID:        uuid.NewString(),
		CardID:    cardID,
		UserID:    LocalUserID,
		UserName:  LocalUserName,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.byCard[cardID] = append([]models.Comment{c}, s.byCard[cardID]...)
	return c, nil
}

// List returns a card's comments, newest first
func (s *Store) List(cardID string) []models.Comment {
	return append([]models.Comment{}, s.byCard[cardID]...)
}

func (s *Store) Count(cardID string) int {
	return len(s.byCard[cardID])
}

// State returns a copy of all comments keyed by card id
func (s *Store) State() map[string][]models.Comment {
	out := make(map[string][]models.Comment, len(s.byCard))
	for id, list := range s.byCard {
		out[id] = append([]models.Comment{}, list...)
	}
	return out
}

func (s *Store) Restore(byCard map[string][]models.Comment) {
	s.byCard = make(map[string][]models.Comment, len(byCard))
	for id, list := range byCard {
		if len(list) == 0 {
			continue
		}
		s.byCard[id] = append([]models.Comment{}, list...)
	}
}

func (s *Store) Reset() {
	s.byCard = map[string][]models.Comment{}
}
