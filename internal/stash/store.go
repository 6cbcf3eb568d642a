package stash

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

const defaultIcon = "📁"

var (
	ErrSystemStash = errors.New("system stashes cannot be modified")
	ErrEmptyName   = errors.New("stash name is required")
)

// CardSets supplies the contents of the system stashes
type CardSets interface {
	LikedIDs() []string
	SavedIDs() []string
}

// Store holds the user-created stashes in creation order
type Store struct {
	stashes []models.Stash
	now     func() time.Time
	newID   func() string
}

// NewStore creates an empty store. now may be nil.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		stashes: []models.Stash{},
		now:     now,
		newID:   func() string { return uuid.NewString() },
	}
}

func isSystemID(id string) bool {
	return id == models.StashLiked || id == models.StashSaved
}

func (s *Store) index(id string) int {
	for i := range s.stashes {
		if s.stashes[i].ID == id {
			return i
		}
	}
	return -1
}

// Create adds a new stash
func (s *Store) Create(name, description, icon string) (models.Stash, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Stash{}, ErrEmptyName
	}
	if icon == "" {
		icon = defaultIcon
	}
	st := models.Stash{
		ID:          s.newID(),
		Name:        name,
		Description: description,
		Icon:        icon,
		CardIDs:     []string{},
		CreatedAt:   s.now(),
	}
	s.stashes = append(s.stashes, st)
	return cloneStash(st), nil
}

// Delete removes a user stash. Reports whether anything was removed.
func (s *Store) Delete(id string) (bool, error) {
	if isSystemID(id) {
		return false, ErrSystemStash
	}
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	s.stashes = append(s.stashes[:i], s.stashes[i+1:]...)
	return true, nil
}

// AddCard appends cardID to a stash unless already present
func (s *Store) AddCard(stashID, cardID string) (bool, error) {
	if isSystemID(stashID) {
		return false, ErrSystemStash
	}
	i := s.index(stashID)
	if i < 0 {
		return false, nil
	}
	for _, id := range s.stashes[i].CardIDs {
		if id == cardID {
			return false, nil
		}
	}
	s.stashes[i].CardIDs = append(s.stashes[i].CardIDs, cardID)
	return true, nil
}

// RemoveCard drops cardID from a stash
func (s *Store) RemoveCard(stashID, cardID string) (bool, error) {
	if isSystemID(stashID) {
		return false, ErrSystemStash
	}
	i := s.index(stashID)
	if i < 0 {
		return false, nil
	}
	ids := s.stashes[i].CardIDs
	for k, id := range ids {
		if id == cardID {
			s.stashes[i].CardIDs = append(ids[:k:k], ids[k+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Get returns a copy of a user stash
func (s *Store) Get(id string) (models.Stash, bool) {
	i := s.index(id)
	if i < 0 {
		return models.Stash{}, false
	}
	return cloneStash(s.stashes[i]), true
}

// List returns copies of all user stashes
func (s *Store) List() []models.Stash {
	out := make([]models.Stash, 0, len(s.stashes))
	for _, st := range s.stashes {
		out = append(out, cloneStash(st))
	}
	return out
}

// SystemStashes builds the implicit liked and saved stashes
func SystemStashes(sets CardSets) []models.Stash {
	return []models.Stash{
		{ID: models.StashLiked, Name: "Liked", Icon: "❤️", CardIDs: sets.LikedIDs(), IsSystem: true},
		{ID: models.StashSaved, Name: "Saved", Icon: "🔖", CardIDs: sets.SavedIDs(), IsSystem: true},
	}
}

// Restore replaces the contents with persisted stashes. System entries and
// duplicate card ids are dropped.
func (s *Store) Restore(stashes []models.Stash) {
	s.stashes = make([]models.Stash, 0, len(stashes))
	for _, st := range stashes {
		if st.IsSystem || isSystemID(st.ID) || st.ID == "" {
			continue
		}
		st = cloneStash(st)
		st.CardIDs = dedupe(st.CardIDs)
		s.stashes = append(s.stashes, st)
	}
}

func (s *Store) Reset() {
	s.stashes = []models.Stash{}
}

func cloneStash(st models.Stash) models.Stash {
	st.CardIDs = append([]string{}, st.CardIDs...)
	return st
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
