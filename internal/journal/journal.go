package journal

import (
	"sort"
	"time"

	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

// State is the full journal contents. Liked and Saved are sets.
type State struct {
	Interactions map[string]models.InteractionRecord
	Liked        map[string]struct{}
	Saved        map[string]struct{}
}

// Journal keeps one interaction record per card plus the liked and saved
// sets, which always agree with the records' flags.
type Journal struct {
	records map[string]*models.InteractionRecord
	liked   map[string]struct{}
	saved   map[string]struct{}
	now     func() time.Time
}

// New creates an empty journal. now may be nil.
func New(now func() time.Time) *Journal {
	if now == nil {
		now = time.Now
	}
	j := &Journal{now: now}
	j.Reset()
	return j
}

// Reset drops every record
func (j *Journal) Reset() {
	j.records = map[string]*models.InteractionRecord{}
	j.liked = map[string]struct{}{}
	j.saved = map[string]struct{}{}
}

// record returns the card's record, creating it on first touch
func (j *Journal) record(cardID string) (*models.InteractionRecord, bool) {
	if r, ok := j.records[cardID]; ok {
		return r, false
	}
	r := &models.InteractionRecord{CardID: cardID, ViewedAt: j.now()}
	j.records[cardID] = r
	return r, true
}

// View registers that a card was shown. Returns true on the first view.
func (j *Journal) View(cardID string) bool {
	_, created := j.record(cardID)
	return created
}

// Like marks a card liked. Returns true if it was not liked before.
func (j *Journal) Like(cardID string) bool {
	r, _ := j.record(cardID)
	r.Liked = true
	if _, ok := j.liked[cardID]; ok {
		return false
	}
	j.liked[cardID] = struct{}{}
	return true
}

// Unlike clears the like. Unknown cards only touch the liked set.
func (j *Journal) Unlike(cardID string) bool {
	if r, ok := j.records[cardID]; ok {
		r.Liked = false
	}
	if _, ok := j.liked[cardID]; !ok {
		return false
	}
	delete(j.liked, cardID)
	return true
}

// Save marks a card saved. Returns true if it was not saved before.
func (j *Journal) Save(cardID string) bool {
	r, _ := j.record(cardID)
	r.Saved = true
	if _, ok := j.saved[cardID]; ok {
		return false
	}
	j.saved[cardID] = struct{}{}
	return true
}

// Unsave clears the save. Unknown cards only touch the saved set.
func (j *Journal) Unsave(cardID string) bool {
	if r, ok := j.records[cardID]; ok {
		r.Saved = false
	}
	if _, ok := j.saved[cardID]; !ok {
		return false
	}
	delete(j.saved, cardID)
	return true
}

// Share marks a card shared. Returns true on the first share.
func (j *Journal) Share(cardID string) bool {
	r, _ := j.record(cardID)
	first := !r.Shared
	r.Shared = true
	return first
}

// RecordSwipe adds the dwell time of a view that ended with a swipe.
// Swiping up likes the card; the result reports a new like.
func (j *Journal) RecordSwipe(cardID string, dir models.SwipeDirection, dwell time.Duration) bool {
	j.TrackDwellTime(cardID, dwell)
	if dir == models.SwipeUp {
		return j.Like(cardID)
	}
	return false
}

// TrackDwellTime adds d to the card's cumulative dwell time
func (j *Journal) TrackDwellTime(cardID string, d time.Duration) {
	r, _ := j.record(cardID)
	if d > 0 {
		r.DwellTimeMs += d.Milliseconds()
	}
}

// Interaction returns a copy of the card's record
func (j *Journal) Interaction(cardID string) (models.InteractionRecord, bool) {
	r, ok := j.records[cardID]
	if !ok {
		return models.InteractionRecord{}, false
	}
	return *r, true
}

func (j *Journal) Seen(cardID string) bool {
	_, ok := j.records[cardID]
	return ok
}

func (j *Journal) IsLiked(cardID string) bool {
	_, ok := j.liked[cardID]
	return ok
}

func (j *Journal) IsSaved(cardID string) bool {
	_, ok := j.saved[cardID]
	return ok
}

// LikedIDs returns the liked card ids, sorted
func (j *Journal) LikedIDs() []string { return sortedKeys(j.liked) }

// SavedIDs returns the saved card ids, sorted
func (j *Journal) SavedIDs() []string { return sortedKeys(j.saved) }

func (j *Journal) LikedCount() int  { return len(j.liked) }
func (j *Journal) SavedCount() int  { return len(j.saved) }
func (j *Journal) ViewedCount() int { return len(j.records) }

func (j *Journal) SharedCount() int {
	n := 0
	for _, r := range j.records {
		if r.Shared {
			n++
		}
	}
	return n
}

// TotalDwell sums dwell time across all cards
func (j *Journal) TotalDwell() time.Duration {
	var ms int64
	for _, r := range j.records {
		ms += r.DwellTimeMs
	}
	return time.Duration(ms) * time.Millisecond
}

// State returns a deep copy of the journal contents
func (j *Journal) State() State {
	s := State{
		Interactions: make(map[string]models.InteractionRecord, len(j.records)),
		Liked:        make(map[string]struct{}, len(j.liked)),
		Saved:        make(map[string]struct{}, len(j.saved)),
	}
	for id, r := range j.records {
		s.Interactions[id] = *r
	}
	for id := range j.liked {
		s.Liked[id] = struct{}{}
	}
	for id := range j.saved {
		s.Saved[id] = struct{}{}
	}
	return s
}

// Restore replaces the contents with s. Record flags are realigned with the sets.
func (j *Journal) Restore(s State) {
	j.Reset()
	for id, r := range s.Interactions {
		r := r
		r.CardID = id
		r.Liked = false
		r.Saved = false
		j.records[id] = &r
	}
	for id := range s.Liked {
		j.liked[id] = struct{}{}
		if r, ok := j.records[id]; ok {
			r.Liked = true
		}
	}
	for id := range s.Saved {
		j.saved[id] = struct{}{}
		if r, ok := j.records[id]; ok {
			r.Saved = true
		}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
