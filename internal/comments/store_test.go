package comments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

func TestStore_AddNewestFirst(t *testing.T) {
	now := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	s := NewStore(func() time.Time { return now })

	first, err := s.Add("c1", "  great fact ")
	require.NoError(t, err)
	now = now.Add(time.Minute)
	second, err := s.Add("c1", "source?")
	require.NoError(t, err)

	list := s.List("c1")
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, "great fact", list[1].Content)
	assert.Equal(t, LocalUserID, list[0].UserID)
	assert.Equal(t, LocalUserName, list[0].UserName)
	assert.Equal(t, 2, s.Count("c1"))
	assert.Equal(t, 0, s.Count("c2"))
}

func TestStore_RejectsEmpty(t *testing.T) {
	s := NewStore(nil)
	_, err := s.Add("c1", " \n\t")
	assert.ErrorIs(t, err, ErrEmptyComment)
	assert.Empty(t, s.List("c1"))
}

func TestStore_StateRestore(t *testing.T) {
	s := NewStore(nil)
	s.Add("c1", "hello")

	other := NewStore(nil)
	other.Restore(s.State())
	assert.Equal(t, s.List("c1"), other.List("c1"))

	other.Restore(map[string][]models.Comment{"c9": {}})
	assert.Empty(t, other.State())
}
