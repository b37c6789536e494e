package listview

import (
	"html/template"
	"strconv"
	"sync"
	"time"

	"github.com/minhnhutZzz/alotra-storefront/catalog"
	"github.com/minhnhutZzz/alotra-storefront/models"
	"github.com/minhnhutZzz/alotra-storefront/pagination"
)

// Phase is where the list view stands in its fetch cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseError:
		return "error"
	}
	return "idle"
}

// View is a consistent snapshot of everything a page needs to draw the list:
// the fragment, the pagination buttons, and the URL mirror.
type View struct {
	Phase       Phase
	Empty       bool
	HTML        template.HTML
	ErrorKind   catalog.Kind
	Message     string
	CurrentPage int
	TotalItems  int
	TotalPages  int
	Window      []int
	PrevEnabled bool
	NextEnabled bool
	PageParam   string // value for ?page=, "" on the first page
	ScrollTop   bool   // true when the last transition was a page jump
}

// Controller wires input events to fetches and fetch outcomes to renders for
// one list view. One instance per mounted view; state dies with it.
type Controller struct {
	renderer Renderer
	searcher *catalog.Searcher

	emptyMessage string

	mu        sync.Mutex
	cond      *sync.Cond
	state     *pagination.State
	phase     Phase
	empty     bool
	term      string
	html      template.HTML
	errKind   catalog.Kind
	message   string
	scrollTop bool
	onChange  func(View)
}

// Config assembles a Controller around a fetcher (normally a catalog client
// closure over one Resource).
type Config struct {
	Fetch        catalog.PageFetcher
	Renderer     Renderer
	PageSize     int
	EmptyMessage string
	Debounce     time.Duration
}

func NewController(cfg Config) *Controller {
	c := &Controller{
		renderer:     cfg.Renderer,
		emptyMessage: cfg.EmptyMessage,
		state:        pagination.New(cfg.PageSize),
		phase:        PhaseIdle,
	}
	if c.emptyMessage == "" {
		c.emptyMessage = "Không có dữ liệu"
	}
	c.cond = sync.NewCond(&c.mu)
	c.searcher = catalog.NewSearcher(cfg.Fetch, c.apply, cfg.Debounce)
	return c
}

// Await blocks until the view has left the loading phase, or until timeout,
// and returns the snapshot. Lets HTTP handlers answer with a settled view.
func (c *Controller) Await(timeout time.Duration) View {
	deadline := time.Now().Add(timeout)
	timer := time.AfterFunc(timeout, func() {
		c.mu.Lock()
		c.cond.Broadcast()
		c.mu.Unlock()
	})
	defer timer.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	for c.phase == PhaseLoading && time.Now().Before(deadline) {
		c.cond.Wait()
	}
	return c.snapshotLocked()
}

// OnChange registers a listener invoked after every settled fetch. Used by
// the fragment endpoints to push updates and by tests to synchronize.
func (c *Controller) OnChange(fn func(View)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Mount starts the initial load, honoring a deep-linked 1-based page from
// the URL ("" or "1" both mean the first page).
func (c *Controller) Mount(pageParam string) {
	page := parsePageParam(pageParam)

	c.mu.Lock()
	c.state.CurrentPage = page
	c.state.TotalPages = page + 1 // provisional until the first response
	c.beginLoading(false)
	term, cur := c.term, c.state.CurrentPage
	c.mu.Unlock()

	c.searcher.Submit(term, cur)
}

// GoToPage navigates to a 0-based page. Returns false without fetching when
// the target is the current page or out of range.
func (c *Controller) GoToPage(page int) bool {
	c.mu.Lock()
	if !c.state.SetPage(page) {
		c.mu.Unlock()
		return false
	}
	c.beginLoading(true)
	term := c.term
	c.mu.Unlock()

	c.searcher.Submit(term, page)
	return true
}

// SetSearch records a search-box keystroke. The fetch is debounced; the term
// change resets pagination to the first page.
func (c *Controller) SetSearch(term string) {
	c.mu.Lock()
	if term == c.term {
		c.mu.Unlock()
		return
	}
	c.term = term
	c.state.Reset()
	c.beginLoading(false)
	c.mu.Unlock()

	c.searcher.Type(term)
}

// Retry re-issues the last fetch. Pagination was left untouched by the
// failure, so the view recovers to the page it was on.
func (c *Controller) Retry() {
	c.mu.Lock()
	c.beginLoading(false)
	term, cur := c.term, c.state.CurrentPage
	c.mu.Unlock()

	c.searcher.Submit(term, cur)
}

// Refresh re-fetches the current page. Called after any mutation (delete,
// create) so counts and page boundaries stay consistent with the server
// instead of patching items out of the rendered list.
func (c *Controller) Refresh() {
	c.Retry()
}

// Stop cancels pending work; late responses are discarded.
func (c *Controller) Stop() {
	c.searcher.Stop()
}

// Snapshot returns the current view state.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// beginLoading flips the view to the loading state. Callers hold c.mu.
func (c *Controller) beginLoading(pageJump bool) {
	c.phase = PhaseLoading
	c.scrollTop = pageJump
	c.html = c.renderer.Loading()
	c.errKind = 0
	c.message = ""
}

// apply is the searcher's callback; it only ever sees the latest response.
func (c *Controller) apply(term string, page int, result *models.PageResult, err error) {
	c.mu.Lock()

	if term != c.term {
		// A keystroke landed between dispatch and response; the pending
		// debounced fetch will settle the view.
		c.mu.Unlock()
		return
	}

	switch {
	case err != nil:
		c.phase = PhaseError
		c.empty = false
		c.errKind = catalog.KindOf(err)
		c.message = errorMessage(err)
		c.state.Abandon()
		c.html = c.renderer.Error(c.message)

	case len(result.Items) == 0 && result.Total > 0 && page > 0:
		// Ran off the end of a shrunken collection (items were deleted
		// under us): clamp to the last page and fetch again.
		last := pagination.TotalPagesFor(result.Total, c.state.PageSize) - 1
		if last < page {
			c.state.CurrentPage = last
			c.state.TotalPages = last + 1
			term := c.term
			c.mu.Unlock()
			c.searcher.Submit(term, last)
			return
		}
		fallthrough

	case len(result.Items) == 0:
		c.phase = PhaseLoaded
		c.empty = true
		c.state.Reset()
		c.html = c.renderer.Empty(c.emptyMessage)

	default:
		c.phase = PhaseLoaded
		c.empty = false
		c.state.Update(pagination.Meta{
			Total:       result.Total,
			TotalPages:  result.TotalPages,
			CurrentPage: result.CurrentPage,
		})
		html, rerr := c.renderer.Populated(result.Items)
		if rerr != nil {
			c.phase = PhaseError
			c.errKind = catalog.KindContract
			c.message = "Dữ liệu trả về không đúng định dạng"
			c.html = c.renderer.Error(c.message)
		} else {
			c.html = html
		}
	}

	view := c.snapshotLocked()
	notify := c.onChange
	c.cond.Broadcast()
	c.mu.Unlock()

	if notify != nil {
		notify(view)
	}
}

func (c *Controller) snapshotLocked() View {
	return View{
		Phase:       c.phase,
		Empty:       c.empty,
		HTML:        c.html,
		ErrorKind:   c.errKind,
		Message:     c.message,
		CurrentPage: c.state.CurrentPage,
		TotalItems:  c.state.TotalItems,
		TotalPages:  c.state.TotalPages,
		Window:      c.state.Window(5),
		PrevEnabled: c.state.HasPrev(),
		NextEnabled: c.state.HasNext(),
		PageParam:   c.state.PageParam(),
		ScrollTop:   c.scrollTop,
	}
}

func errorMessage(err error) string {
	switch catalog.KindOf(err) {
	case catalog.KindTimeout:
		return "Máy chủ phản hồi quá chậm, vui lòng thử lại"
	case catalog.KindHTTP, catalog.KindContract:
		return "Không tải được dữ liệu, vui lòng thử lại"
	case catalog.KindNetwork:
		return "Mất kết nối máy chủ, kiểm tra mạng và thử lại"
	}
	return "Đã có lỗi xảy ra, vui lòng thử lại"
}

// parsePageParam maps the 1-based ?page= value to the internal 0-based
// page; anything unparsable falls back to the first page.
func parsePageParam(param string) int {
	n, err := strconv.Atoi(param)
	if err != nil || n <= 1 {
		return 0
	}
	return n - 1
}
