// Package viewstate keeps the per-mount state of home page views in memory.
//
// Each full page load mounts a fresh view with empty text. Change events are
// reduced into that view only, and views are discarded on unmount, after an
// idle timeout, or when the store is full. Nothing is persisted.
package viewstate

import (
	"container/list"
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/navecho/internal/services/web/echo"
)

// ErrNotFound reports an unknown, unmounted or expired view id.
var ErrNotFound = errors.New("view not found")

// Reason explains why a view left the store.
type Reason string

const (
	ReasonUnmount Reason = "unmount"
	ReasonExpired Reason = "expired"
	ReasonEvicted Reason = "evicted"
)

const (
	defaultIdleTTL  = 30 * time.Minute
	defaultMaxViews = 10000
	defaultSweep    = time.Minute
)

// View is a snapshot of one mounted page.
type View struct {
	ID         string
	State      echo.State
	MountedAt  time.Time
	LastActive time.Time
}

// Options configures a Store. Zero values select defaults.
type Options struct {
	IdleTTL       time.Duration
	MaxViews      int
	SweepInterval time.Duration
	// OnDiscard is called outside the store lock for every view removed by
	// Sweep or eviction. Explicit Unmount calls do not trigger it.
	OnDiscard func(View, Reason)
	Now       func() time.Time
	NewID     func() string
}

// Store holds mounted views. The recency list keeps the most recently
// active view at the front, so eviction and sweeps start from the back.
type Store struct {
	mu        sync.Mutex
	views     map[string]*list.Element
	recency   *list.List
	idleTTL   time.Duration
	maxViews  int
	sweep     time.Duration
	onDiscard func(View, Reason)
	now       func() time.Time
	newID     func() string
}

// NewStore returns an empty store.
func NewStore(opts Options) *Store {
	s := &Store{
		views:     make(map[string]*list.Element),
		recency:   list.New(),
		idleTTL:   opts.IdleTTL,
		maxViews:  opts.MaxViews,
		sweep:     opts.SweepInterval,
		onDiscard: opts.OnDiscard,
		now:       opts.Now,
		newID:     opts.NewID,
	}
	if s.idleTTL <= 0 {
		s.idleTTL = defaultIdleTTL
	}
	if s.maxViews <= 0 {
		s.maxViews = defaultMaxViews
	}
	if s.sweep <= 0 {
		s.sweep = defaultSweep
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// Mount creates a view with empty text and returns it.
func (s *Store) Mount() View {
	s.mu.Lock()
	now := s.now()
	var evicted []View
	for len(s.views) >= s.maxViews {
		oldest := s.recency.Back()
		if oldest == nil {
			break
		}
		evicted = append(evicted, *s.removeLocked(oldest))
	}
	view := &View{
		ID:         s.newID(),
		State:      echo.Initial(),
		MountedAt:  now,
		LastActive: now,
	}
	s.views[view.ID] = s.recency.PushFront(view)
	snapshot := *view
	s.mu.Unlock()

	s.discard(evicted, ReasonEvicted)
	return snapshot
}

// Apply reduces a change event into the view's state.
func (s *Store) Apply(id string, event echo.TextChanged) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	elem, ok := s.views[normalizeID(id)]
	if !ok {
		return View{}, ErrNotFound
	}
	view := elem.Value.(*View)
	view.State = echo.Reduce(view.State, event)
	view.LastActive = s.now()
	s.recency.MoveToFront(elem)
	return *view, nil
}

// Unmount discards a view and returns its final snapshot.
func (s *Store) Unmount(id string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	elem, ok := s.views[normalizeID(id)]
	if !ok {
		return View{}, ErrNotFound
	}
	return *s.removeLocked(elem), nil
}

// Len reports the number of mounted views.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

// Sweep discards views idle for longer than the idle timeout, oldest first.
func (s *Store) Sweep() []View {
	s.mu.Lock()
	cutoff := s.now().Add(-s.idleTTL)
	var expired []View
	for elem := s.recency.Back(); elem != nil; elem = s.recency.Back() {
		if !elem.Value.(*View).LastActive.Before(cutoff) {
			break
		}
		expired = append(expired, *s.removeLocked(elem))
	}
	s.mu.Unlock()

	s.discard(expired, ReasonExpired)
	return expired
}

// Run sweeps on the configured interval until ctx is done.
func (s *Store) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.sweep)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store) removeLocked(elem *list.Element) *View {
	view := s.recency.Remove(elem).(*View)
	delete(s.views, view.ID)
	return view
}

func (s *Store) discard(views []View, reason Reason) {
	if s.onDiscard == nil {
		return
	}
	for _, view := range views {
		s.onDiscard(view, reason)
	}
}

func normalizeID(id string) string {
	return strings.TrimSpace(id)
}
