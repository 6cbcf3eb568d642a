package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shiviagarwalwork/brainbites/internal/database"
	"github.com/shiviagarwalwork/brainbites/internal/logger"
)

// Record names
const (
	RecordUser         = "user"
	RecordFeed         = "feed"
	RecordGamification = "gamification"
	RecordStashes      = "stashes"
	RecordComments     = "comments"
	RecordReviews      = "reviews"
)

// AllRecords lists every record the app persists
var AllRecords = []string{
	RecordUser, RecordFeed, RecordGamification, RecordStashes, RecordComments, RecordReviews,
}

var ErrClosed = errors.New("persistence store is closed")

const writeTimeout = 5 * time.Second

// Backend is a key-value provider of named records
type Backend interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Set(ctx context.Context, name string, payload []byte) error
	Remove(ctx context.Context, name string) error
}

// WriteObserver is told about every backend write attempt
type WriteObserver func(name string, took time.Duration, err error)

type pendingWrite struct {
	payload []byte // nil removes the record
}

// Store is a write-behind cache in front of a Backend. Save never blocks on
// I/O: a single writer goroutine persists the latest snapshot of each record.
// Failed writes are retried on the next flush tick unless a newer snapshot
// replaced them.
type Store struct {
	backend  Backend
	log      *logger.Logger
	observer WriteObserver

	mu      sync.Mutex
	pending map[string]pendingWrite
	closed  bool

	wake     chan struct{}
	flushReq chan chan error
	stop     chan struct{}
	done     chan struct{}
	finalErr error
}

// Option configures a Store
type Option func(*Store)

// WithObserver registers a callback for write attempts
func WithObserver(o WriteObserver) Option {
	return func(s *Store) { s.observer = o }
}

// NewStore starts the writer goroutine. flushInterval is how often failed
// writes are retried.
func NewStore(backend Backend, log *logger.Logger, flushInterval time.Duration, opts ...Option) *Store {
	if log == nil {
		log = logger.Nop()
	}
	if flushInterval <= 0 {
		flushInterval = time.Minute
	}
	s := &Store{
		backend:  backend,
		log:      log.Named("persistence"),
		pending:  map[string]pendingWrite{},
		wake:     make(chan struct{}, 1),
		flushReq: make(chan chan error),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.run(flushInterval)
	return s
}

// Load decodes the record into v. found is false when the record does not exist.
func (s *Store) Load(ctx context.Context, name string, v interface{}) (bool, error) {
	payload, err := s.backend.Get(ctx, name)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return false, fmt.Errorf("failed to decode record %s: %w", name, err)
	}
	return true, nil
}

// Save snapshots v and queues it for writing
func (s *Store) Save(name string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode record %s: %w", name, err)
	}
	return s.enqueue(name, pendingWrite{payload: payload})
}

// Remove queues deletion of a record
func (s *Store) Remove(name string) error {
	return s.enqueue(name, pendingWrite{})
}

func (s *Store) enqueue(name string, w pendingWrite) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.pending[name] = w
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return nil
}

// Pending returns the number of records waiting to be written
func (s *Store) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Flush waits until everything queued so far has been attempted
func (s *Store) Flush(ctx context.Context) error {
	reply := make(chan error, 1)
	select {
	case s.flushReq <- reply:
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting writes, drains the queue and stops the writer
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.stop)
	}
	s.mu.Unlock()

	select {
	case <-s.done:
		return s.finalErr
	case <-ctx.Done():
		return fmt.Errorf("failed to drain pending writes: %w", ctx.Err())
	}
}

func (s *Store) run(flushInterval time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.wake:
			s.drain()
		case <-ticker.C:
			s.drain()
		case reply := <-s.flushReq:
			reply <- s.drain()
		case <-s.stop:
			s.finalErr = s.drain()
			return
		}
	}
}

// drain writes every pending record once
func (s *Store) drain() error {
	s.mu.Lock()
	batch := s.pending
	s.pending = map[string]pendingWrite{}
	s.mu.Unlock()

	var errs []error
	for name, w := range batch {
		if err := s.write(name, w); err != nil {
			errs = append(errs, err)
			s.requeue(name, w)
		}
	}
	return errors.Join(errs...)
}

func (s *Store) write(name string, w pendingWrite) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	start := time.Now()
	var err error
	if w.payload == nil {
		err = s.backend.Remove(ctx, name)
	} else {
		err = s.backend.Set(ctx, name, w.payload)
	}
	took := time.Since(start)

	if s.observer != nil {
		s.observer(name, took, err)
	}
	if err != nil {
		s.log.Warn("record write failed", "record", name, "error", err)
		return err
	}
	s.log.Debug("record written", "record", name, "bytes", len(w.payload), "took", took)
	return nil
}

// requeue puts a failed write back unless a newer snapshot arrived meanwhile
func (s *Store) requeue(name string, w pendingWrite) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, newer := s.pending[name]; !newer {
		s.pending[name] = w
	}
}
