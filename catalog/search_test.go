package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhnhutZzz/alotra-storefront/models"
)

type applyLog struct {
	mu    sync.Mutex
	terms []string
	done  chan struct{}
}

func newApplyLog() *applyLog {
	return &applyLog{done: make(chan struct{}, 16)}
}

func (l *applyLog) apply(term string, page int, result *models.PageResult, err error) {
	l.mu.Lock()
	l.terms = append(l.terms, term)
	l.mu.Unlock()
	l.done <- struct{}{}
}

func (l *applyLog) applied() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.terms...)
}

func (l *applyLog) wait(t *testing.T) {
	t.Helper()
	select {
	case <-l.done:
	case <-time.After(2 * time.Second):
		t.Fatal("apply was never called")
	}
}

func TestDebounceCollapsesKeystrokes(t *testing.T) {
	var calls atomic.Int32
	var lastTerm atomic.Value

	fetch := func(ctx context.Context, term string, page int) (*models.PageResult, error) {
		calls.Add(1)
		lastTerm.Store(term)
		return &models.PageResult{Total: 0}, nil
	}

	log := newApplyLog()
	s := NewSearcher(fetch, log.apply, 50*time.Millisecond)
	defer s.Stop()

	// Keystrokes at t=0, 10ms, 20ms: only the last survives the window.
	s.Type("t")
	time.Sleep(10 * time.Millisecond)
	s.Type("tr")
	time.Sleep(10 * time.Millisecond)
	s.Type("tra")

	log.wait(t)
	time.Sleep(100 * time.Millisecond) // nothing else may fire late

	assert.Equal(t, int32(1), calls.Load(), "exactly one fetch for three keystrokes")
	assert.Equal(t, "tra", lastTerm.Load())
	assert.Equal(t, []string{"tra"}, log.applied())
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	release := map[string]chan struct{}{
		"slow": make(chan struct{}),
		"fast": make(chan struct{}),
	}

	// Deliberately ignores ctx cancellation, like a transport that cannot
	// be aborted: the sequence guard alone must protect the view.
	fetch := func(ctx context.Context, term string, page int) (*models.PageResult, error) {
		<-release[term]
		return &models.PageResult{Total: 1}, nil
	}

	log := newApplyLog()
	s := NewSearcher(fetch, log.apply, 50*time.Millisecond)
	defer s.Stop()

	s.Submit("slow", 0)
	s.Submit("fast", 0)

	close(release["fast"])
	log.wait(t)

	close(release["slow"]) // the earlier request finally lands...
	time.Sleep(50 * time.Millisecond)

	// ...and is dropped: only the latest request reached the view.
	assert.Equal(t, []string{"fast"}, log.applied())
}

func TestSubmitCancelsInFlightRequest(t *testing.T) {
	cancelled := make(chan struct{}, 1)
	fetch := func(ctx context.Context, term string, page int) (*models.PageResult, error) {
		if term == "first" {
			<-ctx.Done()
			cancelled <- struct{}{}
			return nil, ctx.Err()
		}
		return &models.PageResult{}, nil
	}

	log := newApplyLog()
	s := NewSearcher(fetch, log.apply, 50*time.Millisecond)
	defer s.Stop()

	s.Submit("first", 0)
	s.Submit("second", 0)

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("superseded request was not cancelled")
	}

	log.wait(t)
	require.Equal(t, []string{"second"}, log.applied())
}

func TestTypeAfterStopDoesNothingHarmful(t *testing.T) {
	fetch := func(ctx context.Context, term string, page int) (*models.PageResult, error) {
		return &models.PageResult{}, nil
	}
	log := newApplyLog()
	s := NewSearcher(fetch, log.apply, 10*time.Millisecond)

	s.Type("abc")
	s.Stop()
	time.Sleep(50 * time.Millisecond)

	assert.Empty(t, log.applied())
}
