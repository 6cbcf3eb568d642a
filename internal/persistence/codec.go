package persistence

import (
	"sort"

	"github.com/shiviagarwalwork/brainbites/internal/journal"
	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

// FeedRecord is the persisted form of the interaction journal.
// The liked and saved sets are stored as arrays.
type FeedRecord struct {
	Interactions map[string]models.InteractionRecord `json:"interactions"`
	LikedCardIDs []string                            `json:"likedCardIds"`
	SavedCardIDs []string                            `json:"savedCardIds"`
}

// EncodeFeed converts journal state to its persisted form
func EncodeFeed(s journal.State) FeedRecord {
	rec := FeedRecord{
		Interactions: s.Interactions,
		LikedCardIDs: setToSlice(s.Liked),
		SavedCardIDs: setToSlice(s.Saved),
	}
	if rec.Interactions == nil {
		rec.Interactions = map[string]models.InteractionRecord{}
	}
	return rec
}

// DecodeFeed rebuilds journal state, collapsing duplicate ids
func DecodeFeed(rec FeedRecord) journal.State {
	s := journal.State{
		Interactions: rec.Interactions,
		Liked:        sliceToSet(rec.LikedCardIDs),
		Saved:        sliceToSet(rec.SavedCardIDs),
	}
	if s.Interactions == nil {
		s.Interactions = map[string]models.InteractionRecord{}
	}
	return s
}

func setToSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func sliceToSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
