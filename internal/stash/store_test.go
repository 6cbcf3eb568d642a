package stash

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiviagarwalwork/brainbites/internal/journal"
	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

func TestStore_CreateDefaults(t *testing.T) {
	s := NewStore(nil)
	st, err := s.Create("  Brain facts ", "", "")
	require.NoError(t, err)

	assert.NotEmpty(t, st.ID)
	assert.Equal(t, "Brain facts", st.Name)
	assert.Equal(t, "📁", st.Icon)
	assert.False(t, st.IsSystem)
	assert.Empty(t, st.CardIDs)

	_, err = s.Create(" ", "", "")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestStore_AddCardNoDuplicates(t *testing.T) {
	s := NewStore(nil)
	st, _ := s.Create("Reading list", "", "📚")

	added, err := s.AddCard(st.ID, "c1")
	require.NoError(t, err)
	assert.True(t, added)
	added, _ = s.AddCard(st.ID, "c1")
	assert.False(t, added)
	s.AddCard(st.ID, "c2")

	got, ok := s.Get(st.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"c1", "c2"}, got.CardIDs)

	removed, _ := s.RemoveCard(st.ID, "c1")
	assert.True(t, removed)
	got, _ = s.Get(st.ID)
	assert.Equal(t, []string{"c2"}, got.CardIDs)
}

func TestStore_UnknownIDsAreNoops(t *testing.T) {
	s := NewStore(nil)
	added, err := s.AddCard("missing", "c1")
	assert.NoError(t, err)
	assert.False(t, added)

	deleted, err := s.Delete("missing")
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestStore_SystemStashesProtected(t *testing.T) {
	s := NewStore(nil)
	_, err := s.Delete(models.StashLiked)
	assert.ErrorIs(t, err, ErrSystemStash)
	_, err = s.AddCard(models.StashSaved, "c1")
	assert.ErrorIs(t, err, ErrSystemStash)
}

func TestStore_Delete(t *testing.T) {
	s := NewStore(nil)
	a, _ := s.Create("a", "", "")
	b, _ := s.Create("b", "", "")

	deleted, err := s.Delete(a.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
}

func TestStore_ListReturnsCopies(t *testing.T) {
	s := NewStore(nil)
	st, _ := s.Create("a", "", "")
	s.AddCard(st.ID, "c1")

	list := s.List()
	list[0].CardIDs[0] = "mutated"
	got, _ := s.Get(st.ID)
	assert.Equal(t, []string{"c1"}, got.CardIDs)
}

func TestSystemStashes(t *testing.T) {
	j := journal.New(time.Now)
	j.Like("c2")
	j.Like("c1")
	j.Save("c3")

	sys := SystemStashes(j)
	require.Len(t, sys, 2)
	assert.True(t, sys[0].IsSystem)
	assert.Equal(t, []string{"c1", "c2"}, sys[0].CardIDs)
	assert.Equal(t, []string{"c3"}, sys[1].CardIDs)
}

func TestStore_Restore(t *testing.T) {
	s := NewStore(nil)
	s.Restore([]models.Stash{
		{ID: models.StashLiked, IsSystem: true},
		{ID: "x", Name: "X", CardIDs: []string{"a", "b", "a"}},
	})

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, []string{"a", "b"}, list[0].CardIDs)
}
