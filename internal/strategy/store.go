package strategy

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUnknownLevel is returned for a level outside Levels.
	ErrUnknownLevel = errors.New("unknown level")
	// ErrUnknownProgress is returned for a progress value outside ProgressValues.
	ErrUnknownProgress = errors.New("unknown progress")
	// ErrIndexOutOfRange signals a position that does not exist in the
	// level's collection. Callers derive positions from Len, so this is a
	// programming error rather than a user error.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotFound is returned when no strategy carries the requested ID.
	ErrNotFound = errors.New("strategy not found")
)

// StoreOption customizes Store construction.
type StoreOption func(*Store)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides how strategy identifiers are minted.
func WithIDGenerator(next func() string) StoreOption {
	return func(s *Store) {
		if next != nil {
			s.nextID = next
		}
	}
}

// Store holds the three per-level collections for one session. It is not
// safe for concurrent use; a session owns exactly one Store.
type Store struct {
	collections [3][]Strategy
	now         func() time.Time
	nextID      func() string
}

// NewStore returns a Store with three empty collections.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		now:    time.Now,
		nextID: uuid.NewString,
	}
	for i := range s.collections {
		s.collections[i] = []Strategy{}
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Add appends a new strategy built from draft to the level's collection.
// The draft is stored as given; completeness is checked by the caller.
func (s *Store) Add(level Level, draft Draft) (Strategy, error) {
	idx := level.index()
	if idx < 0 {
		return Strategy{}, fmt.Errorf("strategy: add: %w: %q", ErrUnknownLevel, level)
	}
	record := Strategy{
		ID:        s.nextID(),
		Level:     level,
		CreatedAt: s.now(),
		Draft:     draft,
		Progress:  ProgressNotStarted,
	}
	s.collections[idx] = append(s.collections[idx], record)
	return record, nil
}

// UpdateProgress sets the progress of the strategy at position index.
// Any recognized value is accepted regardless of the current one.
func (s *Store) UpdateProgress(level Level, index int, progress Progress) error {
	idx := level.index()
	if idx < 0 {
		return fmt.Errorf("strategy: update progress: %w: %q", ErrUnknownLevel, level)
	}
	if !progress.Valid() {
		return fmt.Errorf("strategy: update progress: %w: %q", ErrUnknownProgress, progress)
	}
	items := s.collections[idx]
	if index < 0 || index >= len(items) {
		return fmt.Errorf("strategy: update progress: %w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(items))
	}
	items[index].Progress = progress
	return nil
}

// UpdateProgressByID sets the progress of the strategy carrying id.
func (s *Store) UpdateProgressByID(level Level, id string, progress Progress) error {
	idx := level.index()
	if idx < 0 {
		return fmt.Errorf("strategy: update progress: %w: %q", ErrUnknownLevel, level)
	}
	if !progress.Valid() {
		return fmt.Errorf("strategy: update progress: %w: %q", ErrUnknownProgress, progress)
	}
	items := s.collections[idx]
	for i := range items {
		if items[i].ID == id {
			items[i].Progress = progress
			return nil
		}
	}
	return fmt.Errorf("strategy: update progress: %w: %s", ErrNotFound, id)
}

// List returns a copy of the level's strategies in insertion order.
// Unknown levels yield nil.
func (s *Store) List(level Level) []Strategy {
	idx := level.index()
	if idx < 0 {
		return nil
	}
	out := make([]Strategy, len(s.collections[idx]))
	copy(out, s.collections[idx])
	return out
}

// Len returns the number of strategies stored for level.
func (s *Store) Len(level Level) int {
	idx := level.index()
	if idx < 0 {
		return 0
	}
	return len(s.collections[idx])
}
