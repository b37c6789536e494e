package listview

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhnhutZzz/alotra-storefront/catalog"
	"github.com/minhnhutZzz/alotra-storefront/models"
)

func testRenderer(t *testing.T) Renderer {
	t.Helper()
	r, err := NewHTMLRenderer("test", `<div class="card">{{.name}}</div>`)
	require.NoError(t, err)
	return r
}

// fakeBackend serves pages of n named items, 10 per page, and records calls.
type fakeBackend struct {
	mu    sync.Mutex
	total int
	calls []string
	fail  error
}

func (f *fakeBackend) fetch(ctx context.Context, term string, page int) (*models.PageResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fmt.Sprintf("term=%q page=%d", term, page))
	total, fail := f.total, f.fail
	f.mu.Unlock()

	if fail != nil {
		return nil, fail
	}
	if term == "nothing" {
		return &models.PageResult{Items: []json.RawMessage{}, Total: 0, TotalPages: 1, CurrentPage: 0, Size: 10}, nil
	}

	start := page * 10
	var items []json.RawMessage
	for i := start; i < total && i < start+10; i++ {
		items = append(items, json.RawMessage(fmt.Sprintf(`{"name":"item-%d"}`, i)))
	}
	return &models.PageResult{
		Items:       items,
		Total:       total,
		TotalPages:  (total + 9) / 10,
		CurrentPage: page,
		Size:        10,
	}, nil
}

func (f *fakeBackend) setFail(err error) {
	f.mu.Lock()
	f.fail = err
	f.mu.Unlock()
}

func newTestController(t *testing.T, backend *fakeBackend) (*Controller, chan View) {
	t.Helper()
	c := NewController(Config{
		Fetch:        backend.fetch,
		Renderer:     testRenderer(t),
		PageSize:     10,
		EmptyMessage: "Không tìm thấy sản phẩm",
		Debounce:     20 * time.Millisecond,
	})
	views := make(chan View, 16)
	c.OnChange(func(v View) { views <- v })
	t.Cleanup(c.Stop)
	return c, views
}

func waitView(t *testing.T, views chan View) View {
	t.Helper()
	select {
	case v := <-views:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("no view update arrived")
		return View{}
	}
}

func TestMountLoadsFirstPage(t *testing.T) {
	backend := &fakeBackend{total: 25}
	c, views := newTestController(t, backend)

	c.Mount("")
	assert.Equal(t, PhaseLoading, c.Snapshot().Phase)

	v := waitView(t, views)
	assert.Equal(t, PhaseLoaded, v.Phase)
	assert.False(t, v.Empty)
	assert.Equal(t, 0, v.CurrentPage)
	assert.Equal(t, 3, v.TotalPages)
	assert.Equal(t, []int{1, 2, 3}, v.Window)
	assert.False(t, v.PrevEnabled)
	assert.True(t, v.NextEnabled)
	assert.Equal(t, "", v.PageParam)
	assert.Contains(t, string(v.HTML), "item-0")
}

func TestPageNavigationMirrorsURLAndScrolls(t *testing.T) {
	backend := &fakeBackend{total: 25}
	c, views := newTestController(t, backend)

	c.Mount("")
	waitView(t, views)

	require.True(t, c.GoToPage(2))
	v := waitView(t, views)

	assert.Equal(t, 2, v.CurrentPage)
	assert.Equal(t, "3", v.PageParam, "URL mirror is 1-based")
	assert.Equal(t, []int{1, 2, 3}, v.Window)
	assert.True(t, v.PrevEnabled)
	assert.False(t, v.NextEnabled, "Next disabled on the last page")
	assert.True(t, v.ScrollTop)
	assert.Contains(t, string(v.HTML), "item-20")
}

func TestMountHonorsDeepLinkedPage(t *testing.T) {
	backend := &fakeBackend{total: 25}
	c, views := newTestController(t, backend)

	c.Mount("3")
	v := waitView(t, views)

	assert.Equal(t, 2, v.CurrentPage)
	assert.Contains(t, string(v.HTML), "item-20")
}

func TestGoToPageRejectsCurrentAndOutOfRange(t *testing.T) {
	backend := &fakeBackend{total: 25}
	c, views := newTestController(t, backend)

	c.Mount("")
	waitView(t, views)

	assert.False(t, c.GoToPage(0), "already on page 0")
	assert.False(t, c.GoToPage(7), "past the end")
	assert.False(t, c.GoToPage(-1))

	backend.mu.Lock()
	calls := len(backend.calls)
	backend.mu.Unlock()
	assert.Equal(t, 1, calls, "rejected navigations must not fetch")
}

func TestEmptySearchResultShowsEmptyState(t *testing.T) {
	backend := &fakeBackend{total: 25}
	c, views := newTestController(t, backend)

	c.Mount("")
	waitView(t, views)
	require.True(t, c.GoToPage(2))
	waitView(t, views)

	c.SetSearch("nothing")
	v := waitView(t, views)

	assert.Equal(t, PhaseLoaded, v.Phase, "empty is a success state, not an error")
	assert.True(t, v.Empty)
	assert.Equal(t, 0, v.CurrentPage)
	assert.Equal(t, 1, v.TotalPages)
	assert.Contains(t, string(v.HTML), "Không tìm thấy sản phẩm")
}

func TestErrorKeepsPaginationForRetry(t *testing.T) {
	backend := &fakeBackend{total: 25}
	c, views := newTestController(t, backend)

	c.Mount("")
	waitView(t, views)
	require.True(t, c.GoToPage(1))
	waitView(t, views)

	backend.setFail(&catalog.Error{Kind: catalog.KindHTTP, Status: 502})
	c.Refresh()
	v := waitView(t, views)

	assert.Equal(t, PhaseError, v.Phase)
	assert.Equal(t, catalog.KindHTTP, v.ErrorKind)
	assert.Equal(t, 1, v.CurrentPage, "stale pagination survives the failure")
	assert.Equal(t, 3, v.TotalPages)
	assert.Contains(t, string(v.HTML), "btn-retry")

	backend.setFail(nil)
	c.Retry()
	v = waitView(t, views)

	assert.Equal(t, PhaseLoaded, v.Phase)
	assert.Equal(t, 1, v.CurrentPage, "retry recovers to the same page")
	assert.Contains(t, string(v.HTML), "item-10")
}

func TestSearchIsDebounced(t *testing.T) {
	backend := &fakeBackend{total: 25}
	c, views := newTestController(t, backend)

	c.Mount("")
	waitView(t, views)

	c.SetSearch("i")
	c.SetSearch("it")
	c.SetSearch("ite")
	v := waitView(t, views)

	assert.Equal(t, PhaseLoaded, v.Phase)
	backend.mu.Lock()
	defer backend.mu.Unlock()
	require.Len(t, backend.calls, 2, "mount + one collapsed search")
	assert.Equal(t, `term="ite" page=0`, backend.calls[1])
}

func TestRefreshAfterDeleteRefetchesCurrentPage(t *testing.T) {
	backend := &fakeBackend{total: 21}
	c, views := newTestController(t, backend)

	c.Mount("")
	waitView(t, views)
	require.True(t, c.GoToPage(2))
	waitView(t, views)

	// The delete happened server-side; page 2 is gone now.
	backend.mu.Lock()
	backend.total = 20
	backend.mu.Unlock()

	c.Refresh()
	v := waitView(t, views)

	assert.Equal(t, PhaseLoaded, v.Phase)
	assert.Equal(t, 2, v.TotalPages)
	assert.Equal(t, 1, v.CurrentPage, "clamped into the shrunken collection")
	assert.Contains(t, string(v.HTML), "item-10")

	backend.mu.Lock()
	defer backend.mu.Unlock()
	// Refresh asked for the page it was on, then clamped and refetched.
	require.GreaterOrEqual(t, len(backend.calls), 2)
	assert.True(t, strings.HasSuffix(backend.calls[len(backend.calls)-2], "page=2"), "calls: %v", backend.calls)
	assert.True(t, strings.HasSuffix(backend.calls[len(backend.calls)-1], "page=1"), "calls: %v", backend.calls)
}
