package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/minhnhutZzz/alotra-storefront/models"
)

// DebounceWindow is how long the searcher waits after the last keystroke
// before dispatching a request.
const DebounceWindow = 50 * time.Millisecond

// PageFetcher is the request a Searcher dispatches. term is empty for plain
// page loads.
type PageFetcher func(ctx context.Context, term string, page int) (*models.PageResult, error)

// ApplyFunc receives the outcome of the latest dispatched request. It is
// never called for a request that has been superseded, so whatever it writes
// always reflects the most recent input.
type ApplyFunc func(term string, page int, result *models.PageResult, err error)

// Searcher serializes the fetches of one list view. It debounces keystrokes,
// cancels superseded in-flight requests, and tags every dispatch with a
// sequence number so a slow stale response can never overwrite a newer one.
type Searcher struct {
	fetch PageFetcher
	apply ApplyFunc
	delay time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	seq    uint64
	cancel context.CancelFunc
}

func NewSearcher(fetch PageFetcher, apply ApplyFunc, delay time.Duration) *Searcher {
	if delay <= 0 {
		delay = DebounceWindow
	}
	return &Searcher{fetch: fetch, apply: apply, delay: delay}
}

// Type records a keystroke. Dispatch happens once the debounce window has
// passed with no further keystrokes; each call cancels the pending timer.
// Search always starts over from page zero.
func (s *Searcher) Type(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.Submit(term, 0)
	})
}

// Submit dispatches a fetch immediately, superseding anything in flight.
func (s *Searcher) Submit(term string, page int) {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	go s.run(ctx, seq, term, page)
}

func (s *Searcher) run(ctx context.Context, seq uint64, term string, page int) {
	result, err := s.fetch(ctx, term, page)

	s.mu.Lock()
	latest := seq == s.seq
	s.mu.Unlock()

	// A newer request was issued while this one was in flight; its answer
	// is stale no matter what it says.
	if !latest || errors.Is(err, context.Canceled) {
		return
	}
	s.apply(term, page, result, err)
}

// Stop cancels any pending timer and in-flight request. The searcher is
// done after this; late responses are discarded.
func (s *Searcher) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
}
