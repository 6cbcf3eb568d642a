package review

import (
	"sort"
	"time"

	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

const (
	initialEaseFactor = 2.5
	minEaseFactor     = 1.3
)

// Quality is the 0-5 self-rating of a flashcard recall
type Quality int

const (
	// Complete blackout, unable to recall
	QualityBlackout Quality = 0
	// Incorrect, remembered on seeing the answer
	QualityIncorrect Quality = 1
	// Incorrect, but the answer felt familiar
	QualityIncorrectFamiliar Quality = 2
	// Correct with significant effort
	QualityCorrectDifficult Quality = 3
	// Correct after some hesitation
	QualityCorrectHesitation Quality = 4
	// Perfect recall
	QualityPerfect Quality = 5
)

// Valid reports whether q is within 0-5
func (q Quality) Valid() bool {
	return q >= QualityBlackout && q <= QualityPerfect
}

// SM2 implements the SuperMemo-2 algorithm for flashcard reviews
type SM2 struct {
	// Lowest quality counted as a successful recall
	PassThreshold Quality
	// Upper bound of a review interval in days
	MaxInterval int
	// Intervals for the first successful repetitions, in days
	InitialIntervals []int
}

// NewSM2 creates an SM2 with the classic 1 and 6 day starting intervals
func NewSM2() *SM2 {
	return &SM2{
		PassThreshold:    QualityCorrectDifficult,
		MaxInterval:      365,
		InitialIntervals: []int{1, 6},
	}
}

// NewRecord returns the record of a card never reviewed, due today
func NewRecord(cardID string, today models.Day) models.ReviewRecord {
	return models.ReviewRecord{
		CardID:         cardID,
		EaseFactor:     initialEaseFactor,
		NextReviewDate: today,
	}
}

// Process applies one review of quality q on day today
func (sm *SM2) Process(rec *models.ReviewRecord, q Quality, today models.Day) {
	if rec.EaseFactor == 0 {
		rec.EaseFactor = initialEaseFactor
	}
	rec.LastReviewDate = today
	rec.LastQuality = int(q)

	d := 5.0 - float64(q)
	ef := rec.EaseFactor + (0.1 - d*(0.08+d*0.02))
	if ef < minEaseFactor {
		ef = minEaseFactor
	}
	rec.EaseFactor = ef

	if q >= sm.PassThreshold {
		var next int
		if rec.Repetitions < len(sm.InitialIntervals) {
			next = sm.InitialIntervals[rec.Repetitions]
		} else {
			next = int(float64(rec.Interval)*rec.EaseFactor + 0.5)
		}
		if next > sm.MaxInterval {
			next = sm.MaxInterval
		}
		rec.Interval = next
		rec.Repetitions++
	} else {
		// Failed recall starts the repetition sequence over
		rec.Repetitions = 0
		rec.Interval = 1
	}

	rec.NextReviewDate = models.DayOf(today.Time().AddDate(0, 0, rec.Interval))
}

// IsDue reports whether rec should be reviewed on today
func IsDue(rec models.ReviewRecord, today models.Day) bool {
	return rec.NextReviewDate.IsZero() || rec.NextReviewDate <= today
}

// DueCards returns up to limit records due on today. Cards never reviewed come
// first, then the hardest (lowest ease factor), then the most overdue.
func (sm *SM2) DueCards(records []models.ReviewRecord, today models.Day, limit int) []models.ReviewRecord {
	var due []models.ReviewRecord
	for _, r := range records {
		if IsDue(r, today) {
			due = append(due, r)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		a, b := due[i], due[j]
		if (a.Repetitions == 0) != (b.Repetitions == 0) {
			return a.Repetitions == 0
		}
		if a.EaseFactor != b.EaseFactor {
			return a.EaseFactor < b.EaseFactor
		}
		return a.NextReviewDate < b.NextReviewDate
	})

	if limit > 0 && len(due) > limit {
		return due[:limit]
	}
	return due
}

// IsMastered reports whether a card has been recalled well over a long interval
func (sm *SM2) IsMastered(rec models.ReviewRecord) bool {
	return rec.Repetitions >= 5 &&
		rec.LastQuality >= int(QualityCorrectHesitation) &&
		rec.Interval >= 30
}

// Scheduler keeps review records for every flashcard the user has studied
type Scheduler struct {
	algo    *SM2
	records map[string]models.ReviewRecord
	now     func() time.Time
}

// NewScheduler creates an empty scheduler. now may be nil.
func NewScheduler(now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{algo: NewSM2(), records: map[string]models.ReviewRecord{}, now: now}
}

// Review records a recall of cardID and returns the updated record
func (s *Scheduler) Review(cardID string, q Quality) (models.ReviewRecord, error) {
	if !q.Valid() {
		return models.ReviewRecord{}, ErrInvalidQuality
	}
	today := models.DayOf(s.now())
	rec, ok := s.records[cardID]
	if !ok {
		rec = NewRecord(cardID, today)
	}
	s.algo.Process(&rec, q, today)
	s.records[cardID] = rec
	return rec, nil
}

// Track adds cardID as a new, immediately due flashcard. Known cards are left alone.
func (s *Scheduler) Track(cardID string) bool {
	if _, ok := s.records[cardID]; ok {
		return false
	}
	s.records[cardID] = NewRecord(cardID, models.DayOf(s.now()))
	return true
}

// Due lists the cards due today in review order
func (s *Scheduler) Due(limit int) []models.ReviewRecord {
	all := make([]models.ReviewRecord, 0, len(s.records))
	for _, r := range s.records {
		all = append(all, r)
	}
	// Map order is random; fix it before the stable priority sort
	sort.Slice(all, func(i, j int) bool { return all[i].CardID < all[j].CardID })
	return s.algo.DueCards(all, models.DayOf(s.now()), limit)
}

func (s *Scheduler) Record(cardID string) (models.ReviewRecord, bool) {
	r, ok := s.records[cardID]
	return r, ok
}

// MasteredCount counts cards that meet the mastery bar
func (s *Scheduler) MasteredCount() int {
	n := 0
	for _, r := range s.records {
		if s.algo.IsMastered(r) {
			n++
		}
	}
	return n
}

func (s *Scheduler) State() map[string]models.ReviewRecord {
	out := make(map[string]models.ReviewRecord, len(s.records))
	for id, r := range s.records {
		out[id] = r
	}
	return out
}

func (s *Scheduler) Restore(records map[string]models.ReviewRecord) {
	s.records = make(map[string]models.ReviewRecord, len(records))
	for id, r := range records {
		r.CardID = id
		s.records[id] = r
	}
}

func (s *Scheduler) Reset() {
	s.records = map[string]models.ReviewRecord{}
}
