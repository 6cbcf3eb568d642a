package app

import (
	"github.com/shiviagarwalwork/brainbites/internal/persistence"
	"github.com/shiviagarwalwork/brainbites/internal/stash"
	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

func (a *App) CreateStash(name, description, icon string) (models.Stash, error) {
	if err := a.begin(); err != nil {
		return models.Stash{}, err
	}
	defer a.mu.Unlock()
	a.track("stash_create")

	st, err := a.stashes.Create(name, description, icon)
	if err != nil {
		return models.Stash{}, err
	}
	a.persist(persistence.RecordStashes)
	return st, nil
}

// DeleteStash removes a user stash. Reports whether it existed.
func (a *App) DeleteStash(id string) (bool, error) {
	return a.mutateStash("stash_delete", func() (bool, error) { return a.stashes.Delete(id) })
}

// AddToStash adds a card to a user stash. Reports whether it was added.
func (a *App) AddToStash(stashID, cardID string) (bool, error) {
	return a.mutateStash("stash_add", func() (bool, error) { return a.stashes.AddCard(stashID, cardID) })
}

// RemoveFromStash drops a card from a user stash. Reports whether it was there.
func (a *App) RemoveFromStash(stashID, cardID string) (bool, error) {
	return a.mutateStash("stash_remove", func() (bool, error) { return a.stashes.RemoveCard(stashID, cardID) })
}

func (a *App) mutateStash(event string, fn func() (bool, error)) (bool, error) {
	if err := a.begin(); err != nil {
		return false, err
	}
	defer a.mu.Unlock()
	a.track(event)

	changed, err := fn()
	if err != nil {
		return false, err
	}
	if changed {
		a.persist(persistence.RecordStashes)
	}
	return changed, nil
}

// Stashes lists the system stashes followed by the user's own
func (a *App) Stashes() ([]models.Stash, error) {
	if err := a.begin(); err != nil {
		return nil, err
	}
	defer a.mu.Unlock()
	return append(stash.SystemStashes(a.journal), a.stashes.List()...), nil
}

// Stash returns one stash by id, system stashes included
func (a *App) Stash(id string) (models.Stash, bool, error) {
	if err := a.begin(); err != nil {
		return models.Stash{}, false, err
	}
	defer a.mu.Unlock()

	for _, st := range stash.SystemStashes(a.journal) {
		if st.ID == id {
			return st, true, nil
		}
	}
	st, ok := a.stashes.Get(id)
	return st, ok, nil
}

func (a *App) AddComment(cardID, content string) (models.Comment, error) {
	if err := a.begin(); err != nil {
		return models.Comment{}, err
	}
	defer a.mu.Unlock()
	a.track("comment_add")

	c, err := a.comments.Add(cardID, content)
	if err != nil {
		return models.Comment{}, err
	}
	a.persist(persistence.RecordComments)
	return c, nil
}

// Comments lists a card's comments, newest first
func (a *App) Comments(cardID string) ([]models.Comment, error) {
	if err := a.begin(); err != nil {
		return nil, err
	}
	defer a.mu.Unlock()
	return a.comments.List(cardID), nil
}
