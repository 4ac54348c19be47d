package viewstate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/navecho/internal/services/web/echo"
	"go.uber.org/goleak"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("view-%d", n)
	}
}

func newTestStore(clock *fakeClock, opts Options) *Store {
	opts.Now = clock.Now
	opts.NewID = sequentialIDs()
	return NewStore(opts)
}

func TestMountStartsEmpty(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1000, 0)}
	s := newTestStore(clock, Options{})
	view := s.Mount()
	want := View{ID: "view-1", State: echo.State{}, MountedAt: clock.Now(), LastActive: clock.Now()}
	if diff := cmp.Diff(want, view); diff != "" {
		t.Fatalf("Mount() mismatch (-want +got):\n%s", diff)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestApplyEchoesEveryChange(t *testing.T) {
	t.Parallel()

	s := NewStore(Options{})
	view := s.Mount()
	for _, value := range []string{"h", "hi", "hi ", ""} {
		got, err := s.Apply(view.ID, echo.TextChanged{Value: value})
		if err != nil {
			t.Fatalf("Apply(%q) error = %v", value, err)
		}
		if got.State.Text != value {
			t.Fatalf("Apply(%q) text = %q", value, got.State.Text)
		}
	}
}

func TestViewsDoNotShareState(t *testing.T) {
	t.Parallel()

	s := NewStore(Options{})
	a := s.Mount()
	b := s.Mount()
	if _, err := s.Apply(a.ID, echo.TextChanged{Value: "only a"}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	got, err := s.Unmount(b.ID)
	if err != nil {
		t.Fatalf("Unmount() error = %v", err)
	}
	if got.State.Text != "" {
		t.Fatalf("b text = %q, want empty", got.State.Text)
	}
}

func TestRemountResetsText(t *testing.T) {
	t.Parallel()

	s := NewStore(Options{})
	first := s.Mount()
	if _, err := s.Apply(first.ID, echo.TextChanged{Value: "typed"}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if _, err := s.Unmount(first.ID); err != nil {
		t.Fatalf("Unmount() error = %v", err)
	}
	second := s.Mount()
	if second.State.Text != "" {
		t.Fatalf("remount text = %q, want empty", second.State.Text)
	}
	if _, err := s.Apply(first.ID, echo.TextChanged{Value: "late"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Apply(unmounted) error = %v, want %v", err, ErrNotFound)
	}
}

func TestUnknownViewReturnsNotFound(t *testing.T) {
	t.Parallel()

	s := NewStore(Options{})
	if _, err := s.Apply("missing", echo.TextChanged{Value: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Apply() error = %v", err)
	}
	if _, err := s.Unmount("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Unmount() error = %v", err)
	}
}

func TestSweepExpiresIdleViews(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1000, 0)}
	var discarded []string
	s := newTestStore(clock, Options{
		IdleTTL: time.Minute,
		OnDiscard: func(v View, reason Reason) {
			discarded = append(discarded, v.ID+":"+string(reason))
		},
	})
	idle := s.Mount()
	clock.Advance(45 * time.Second)
	busy := s.Mount()
	clock.Advance(30 * time.Second)
	if _, err := s.Apply(busy.ID, echo.TextChanged{Value: "x"}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	expired := s.Sweep()
	if len(expired) != 1 || expired[0].ID != idle.ID {
		t.Fatalf("Sweep() = %v, want only %s", expired, idle.ID)
	}
	if diff := cmp.Diff([]string{idle.ID + ":expired"}, discarded); diff != "" {
		t.Fatalf("discarded mismatch (-want +got):\n%s", diff)
	}
	if _, err := s.Unmount(busy.ID); err != nil {
		t.Fatalf("busy view was swept: %v", err)
	}
}

func TestMountEvictsLeastRecentWhenFull(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1000, 0)}
	var evicted []string
	s := newTestStore(clock, Options{
		MaxViews: 2,
		OnDiscard: func(v View, reason Reason) {
			if reason == ReasonEvicted {
				evicted = append(evicted, v.ID)
			}
		},
	})
	first := s.Mount()
	clock.Advance(time.Second)
	second := s.Mount()
	clock.Advance(time.Second)
	if _, err := s.Apply(first.ID, echo.TextChanged{Value: "keep me"}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	clock.Advance(time.Second)
	s.Mount()

	if diff := cmp.Diff([]string{second.ID}, evicted); diff != "" {
		t.Fatalf("evicted mismatch (-want +got):\n%s", diff)
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
}

func TestEvictionFollowsActivityOrder(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1000, 0)}
	var evicted []string
	s := newTestStore(clock, Options{
		MaxViews: 3,
		OnDiscard: func(v View, reason Reason) {
			if reason == ReasonEvicted {
				evicted = append(evicted, v.ID)
			}
		},
	})
	a := s.Mount()
	b := s.Mount()
	c := s.Mount()
	for _, id := range []string{b.ID, a.ID, c.ID, b.ID} {
		clock.Advance(time.Second)
		if _, err := s.Apply(id, echo.TextChanged{Value: id}); err != nil {
			t.Fatalf("Apply(%s) error = %v", id, err)
		}
	}
	// Activity order is now a, c, b from least to most recent.
	if _, err := s.Unmount(c.ID); err != nil {
		t.Fatalf("Unmount() error = %v", err)
	}
	d := s.Mount()
	s.Mount()
	s.Mount()

	if diff := cmp.Diff([]string{a.ID, b.ID}, evicted); diff != "" {
		t.Fatalf("evicted mismatch (-want +got):\n%s", diff)
	}
	if _, err := s.Apply(d.ID, echo.TextChanged{Value: "d"}); err != nil {
		t.Fatalf("newest views must survive: %v", err)
	}
}

func TestSweepReturnsOldestFirst(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1000, 0)}
	s := newTestStore(clock, Options{IdleTTL: time.Minute})
	a := s.Mount()
	clock.Advance(time.Second)
	b := s.Mount()
	clock.Advance(time.Second)
	if _, err := s.Apply(a.ID, echo.TextChanged{Value: "later"}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	clock.Advance(time.Hour)
	fresh := s.Mount()

	var got []string
	for _, view := range s.Sweep() {
		got = append(got, view.ID)
	}
	if diff := cmp.Diff([]string{b.ID, a.ID}, got); diff != "" {
		t.Fatalf("Sweep() order mismatch (-want +got):\n%s", diff)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if _, err := s.Unmount(fresh.ID); err != nil {
		t.Fatalf("fresh view was swept: %v", err)
	}
}

func TestConcurrentApplyOnDistinctViews(t *testing.T) {
	t.Parallel()

	s := NewStore(Options{})
	const views = 16
	ids := make([]string, views)
	for i := range ids {
		ids[i] = s.Mount().ID
	}
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			typed := ""
			for j := 0; j < 50; j++ {
				typed += string(rune('a' + i))
				if _, err := s.Apply(id, echo.TextChanged{Value: typed}); err != nil {
					t.Errorf("Apply() error = %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
	for i, id := range ids {
		view, err := s.Unmount(id)
		if err != nil {
			t.Fatalf("Unmount() error = %v", err)
		}
		if len(view.State.Text) != 50 || view.State.Text[0] != byte('a'+i) {
			t.Fatalf("view %d text = %q", i, view.State.Text)
		}
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewStore(Options{SweepInterval: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	time.Sleep(5 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not stop after cancel")
	}
}
