package profile

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shiviagarwalwork/brainbites/internal/personalization"
	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

// State is the persisted user record
type State struct {
	User            *models.User                  `json:"user"`
	IsAuthenticated bool                          `json:"isAuthenticated"`
	IsOnboarded     bool                          `json:"isOnboarded"`
	Preferences     models.PersonalizationWeights `json:"preferences"`
}

// Store owns the user profile and its personalization weights
type Store struct {
	user          *models.User
	authenticated bool
	onboarded     bool
	sessionID     string
	prefs         *personalization.Model
	now           func() time.Time
}

// NewStore creates an empty, signed-out profile. now may be nil.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		prefs:     personalization.NewModel("", now),
		now:       now,
		sessionID: newSessionID(),
	}
}

func newSessionID() string {
	return fmt.Sprintf("session_%s", uuid.NewString())
}

// NewLocalUser builds the profile of a device-only user
func NewLocalUser(name string, now time.Time) models.User {
	return models.User{
		ID:                   uuid.NewString(),
		Username:             name,
		DisplayName:          name,
		Interests:            []models.Category{},
		PreferredDifficulty:  models.DifficultyMixed,
		DailyGoal:            20,
		NotificationsEnabled: true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// User returns a copy of the current user, if any
func (s *Store) User() (models.User, bool) {
	if s.user == nil {
		return models.User{}, false
	}
	return cloneUser(*s.user), true
}

func (s *Store) IsAuthenticated() bool { return s.authenticated }
func (s *Store) IsOnboarded() bool     { return s.onboarded }
func (s *Store) SessionID() string     { return s.sessionID }

// Preferences returns a snapshot of the personalization weights
func (s *Store) Preferences() models.PersonalizationWeights {
	return s.prefs.Weights()
}

// SetUser signs a user in and starts their weights from defaults
func (s *Store) SetUser(u models.User) {
	u = cloneUser(u)
	s.user = &u
	s.authenticated = true
	s.prefs.Reset(u.ID)
}

// UpdateUser applies fn to the current user. No-op when signed out.
func (s *Store) UpdateUser(fn func(u *models.User)) {
	if s.user == nil {
		return
	}
	fn(s.user)
	s.user.UpdatedAt = s.now()
}

// Login signs a user in with a fresh session, keeping existing weights
func (s *Store) Login(u models.User) {
	u = cloneUser(u)
	s.user = &u
	s.authenticated = true
	s.sessionID = newSessionID()
}

func (s *Store) Logout() {
	s.user = nil
	s.authenticated = false
	s.sessionID = newSessionID()
}

func (s *Store) SetOnboarded(onboarded bool) {
	s.onboarded = onboarded
}

// SetInterests updates category weights and records the choice on the user
func (s *Store) SetInterests(categories []models.Category) {
	s.prefs.SetInterests(categories)
	s.UpdateUser(func(u *models.User) {
		u.Interests = append([]models.Category{}, categories...)
	})
}

// SetDifficulty updates difficulty weights and records the choice on the user
func (s *Store) SetDifficulty(pref models.Difficulty) {
	s.prefs.SetDifficulty(pref)
	s.UpdateUser(func(u *models.User) {
		u.PreferredDifficulty = pref
	})
}

func (s *Store) SetDailyGoal(goal int) {
	s.UpdateUser(func(u *models.User) {
		u.DailyGoal = goal
	})
}

// UpdatePreference sets one category weight, clamped to [0,1]
func (s *Store) UpdatePreference(category models.Category, weight float64) {
	s.prefs.UpdateWeight(category, weight)
}

// IncrementStat bumps one of the user's lifetime counters by name.
// Returns false for unknown stats or when signed out.
func (s *Store) IncrementStat(stat string) bool {
	if s.user == nil {
		return false
	}
	st := &s.user.Stats
	switch stat {
	case models.StatCardsViewed:
		st.TotalCardsViewed++
	case models.StatCardsLiked:
		st.TotalCardsLiked++
	case models.StatCardsSaved:
		st.TotalCardsSaved++
	case models.StatCardsCreated:
		st.TotalCardsCreated++
	case models.StatCardsShared:
		st.TotalCardsShared++
	default:
		return false
	}
	return true
}

// AddTimeSpent accumulates reading time and refreshes the average dwell
func (s *Store) AddTimeSpent(d time.Duration) {
	if s.user == nil || d <= 0 {
		return
	}
	st := &s.user.Stats
	st.TotalTimeSpent += d.Milliseconds()
	if st.TotalCardsViewed > 0 {
		st.AverageDwellTime = st.TotalTimeSpent / int64(st.TotalCardsViewed)
	}
}

// State returns the persisted form of the profile
func (s *Store) State() State {
	st := State{
		IsAuthenticated: s.authenticated,
		IsOnboarded:     s.onboarded,
		Preferences:     s.prefs.Weights(),
	}
	if s.user != nil {
		u := cloneUser(*s.user)
		st.User = &u
	}
	return st
}

// Restore loads a persisted profile. A fresh session id is issued.
func (s *Store) Restore(st State) {
	s.user = nil
	if st.User != nil {
		u := cloneUser(*st.User)
		s.user = &u
	}
	s.authenticated = st.IsAuthenticated && s.user != nil
	s.onboarded = st.IsOnboarded
	s.prefs.Restore(st.Preferences)
	s.sessionID = newSessionID()
}

func (s *Store) Reset() {
	s.user = nil
	s.authenticated = false
	s.onboarded = false
	s.prefs.Reset("")
	s.sessionID = newSessionID()
}

func cloneUser(u models.User) models.User {
	u.Interests = append([]models.Category{}, u.Interests...)
	return u
}
