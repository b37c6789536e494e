// Package listControllers serves the paginated list fragments: one generic
// controller instantiated per entity, replacing the five near-identical
// copies the old storefront shipped to the browser.
package listControllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minhnhutZzz/alotra-storefront/catalog"
	"github.com/minhnhutZzz/alotra-storefront/listview"
	"github.com/minhnhutZzz/alotra-storefront/middleware"
	"github.com/minhnhutZzz/alotra-storefront/models"
)

// settleTimeout bounds how long a fragment request waits for the fetch; the
// catalog client's own deadlines fire well before this.
const settleTimeout = 12 * time.Second

// viewTTL is how long an untouched view instance survives before the
// sweeper drops it (a tab that navigated away never says goodbye).
const viewTTL = 15 * time.Minute

// Descriptor defines one list view.
type Descriptor struct {
	Name         string
	Resource     catalog.Resource
	ItemTemplate string
	EmptyMessage string
	AdminOnly    bool
}

// Descriptors for every list screen of the storefront and admin area.
func Descriptors() []Descriptor {
	return []Descriptor{
		{Name: "products", Resource: catalog.Products, ItemTemplate: productCardTemplate, EmptyMessage: "Không tìm thấy sản phẩm nào"},
		{Name: "categories", Resource: catalog.Categories, ItemTemplate: categoryRowTemplate, EmptyMessage: "Chưa có danh mục nào", AdminOnly: true},
		{Name: "users", Resource: catalog.Users, ItemTemplate: userRowTemplate, EmptyMessage: "Chưa có người dùng nào", AdminOnly: true},
		{Name: "promotions", Resource: catalog.Promotions, ItemTemplate: promotionRowTemplate, EmptyMessage: "Chưa có khuyến mãi nào", AdminOnly: true},
	}
}

type viewEntry struct {
	controller *listview.Controller
	lastUsed   time.Time
}

// Views keeps one live list controller per (session, view name): the
// server-side stand-in for the controller a tab used to run in JS.
type Views struct {
	client      *catalog.Client
	descriptors map[string]Descriptor
	renderers   map[string]listview.Renderer

	mu    sync.Mutex
	views map[string]*viewEntry
}

func NewViews(client *catalog.Client) (*Views, error) {
	v := &Views{
		client:      client,
		descriptors: make(map[string]Descriptor),
		renderers:   make(map[string]listview.Renderer),
		views:       make(map[string]*viewEntry),
	}
	for _, d := range Descriptors() {
		r, err := listview.NewHTMLRenderer(d.Name, d.ItemTemplate)
		if err != nil {
			return nil, fmt.Errorf("view %s: %w", d.Name, err)
		}
		v.descriptors[d.Name] = d
		v.renderers[d.Name] = r
	}
	go v.sweep()
	return v, nil
}

func (v *Views) fetcher(res catalog.Resource) catalog.PageFetcher {
	return func(ctx context.Context, term string, page int) (*models.PageResult, error) {
		if term == "" {
			return v.client.FetchPage(ctx, res, page)
		}
		return v.client.Search(ctx, res, term, page)
	}
}

// allowed reports whether the named view exists and may be served on this
// surface (admin views never leak onto the public routes).
func (v *Views) allowed(name string, admin bool) bool {
	d, ok := v.descriptors[name]
	return ok && (admin || !d.AdminOnly)
}

// resolve returns the session's controller for the named view, mounting a
// fresh one on first use.
func (v *Views) resolve(sessionID, name, pageParam string) (*listview.Controller, bool) {
	d, ok := v.descriptors[name]
	if !ok {
		return nil, false
	}
	key := sessionID + "/" + name

	v.mu.Lock()
	defer v.mu.Unlock()
	entry, ok := v.views[key]
	if !ok {
		ctrl := listview.NewController(listview.Config{
			Fetch:        v.fetcher(d.Resource),
			Renderer:     v.renderers[name],
			PageSize:     d.Resource.PageSize,
			EmptyMessage: d.EmptyMessage,
		})
		entry = &viewEntry{controller: ctrl}
		v.views[key] = entry
		entry.lastUsed = time.Now()
		ctrl.Mount(pageParam)
		return ctrl, true
	}
	entry.lastUsed = time.Now()
	return entry.controller, true
}

func (v *Views) sweep() {
	for range time.Tick(time.Minute) {
		cutoff := time.Now().Add(-viewTTL)
		v.mu.Lock()
		for key, entry := range v.views {
			if entry.lastUsed.Before(cutoff) {
				entry.controller.Stop()
				delete(v.views, key)
			}
		}
		v.mu.Unlock()
	}
}

func viewJSON(view listview.View) gin.H {
	return gin.H{
		"phase":       view.Phase.String(),
		"empty":       view.Empty,
		"html":        string(view.HTML),
		"message":     view.Message,
		"currentPage": view.CurrentPage,
		"totalItems":  view.TotalItems,
		"totalPages":  view.TotalPages,
		"window":      view.Window,
		"prevEnabled": view.PrevEnabled,
		"nextEnabled": view.NextEnabled,
		"pageParam":   view.PageParam,
		"scrollTop":   view.ScrollTop,
	}
}

// GET /views/:view?page=N&search=term
func Show(v *Views, admin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !v.allowed(c.Param("view"), admin) {
			c.JSON(http.StatusNotFound, models.Fail("Unknown list view"))
			return
		}
		ctrl, ok := v.resolve(middleware.SessionID(c), c.Param("view"), c.Query("page"))
		if !ok {
			c.JSON(http.StatusNotFound, models.Fail("Unknown list view"))
			return
		}
		if term, present := c.GetQuery("search"); present {
			ctrl.SetSearch(term)
		} else if p, err := strconv.Atoi(c.Query("page")); err == nil && p >= 1 {
			// Deep link into an already-mounted view.
			ctrl.GoToPage(p - 1)
		}
		c.JSON(http.StatusOK, models.Ok(viewJSON(ctrl.Await(settleTimeout))))
	}
}

// POST /views/:view/page/:n (1-based page number from a button)
func GoToPage(v *Views, admin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !v.allowed(c.Param("view"), admin) {
			c.JSON(http.StatusNotFound, models.Fail("Unknown list view"))
			return
		}
		ctrl, ok := v.resolve(middleware.SessionID(c), c.Param("view"), "")
		if !ok {
			c.JSON(http.StatusNotFound, models.Fail("Unknown list view"))
			return
		}
		n, err := strconv.Atoi(c.Param("n"))
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, models.Fail("Invalid page number"))
			return
		}
		ctrl.GoToPage(n - 1)
		c.JSON(http.StatusOK, models.Ok(viewJSON(ctrl.Await(settleTimeout))))
	}
}

// POST /views/:view/search?q=term — one keystroke; dispatch is debounced
func Search(v *Views, admin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !v.allowed(c.Param("view"), admin) {
			c.JSON(http.StatusNotFound, models.Fail("Unknown list view"))
			return
		}
		ctrl, ok := v.resolve(middleware.SessionID(c), c.Param("view"), "")
		if !ok {
			c.JSON(http.StatusNotFound, models.Fail("Unknown list view"))
			return
		}
		ctrl.SetSearch(c.Query("q"))
		c.JSON(http.StatusOK, models.Ok(viewJSON(ctrl.Await(settleTimeout))))
	}
}

// POST /views/:view/retry
func Retry(v *Views, admin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !v.allowed(c.Param("view"), admin) {
			c.JSON(http.StatusNotFound, models.Fail("Unknown list view"))
			return
		}
		ctrl, ok := v.resolve(middleware.SessionID(c), c.Param("view"), "")
		if !ok {
			c.JSON(http.StatusNotFound, models.Fail("Unknown list view"))
			return
		}
		ctrl.Retry()
		c.JSON(http.StatusOK, models.Ok(viewJSON(ctrl.Await(settleTimeout))))
	}
}

// DELETE /views/:view/items/:id — delete upstream, then reload the current
// page so counts and page boundaries track the server, never a local patch.
func DeleteItem(v *Views, admin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("view")
		if !v.allowed(name, admin) {
			c.JSON(http.StatusNotFound, models.Fail("Unknown list view"))
			return
		}
		d, ok := v.descriptors[name]
		if !ok {
			c.JSON(http.StatusNotFound, models.Fail("Unknown list view"))
			return
		}

		if err := v.client.Delete(c.Request.Context(), d.Resource, c.Param("id")); err != nil {
			status := http.StatusBadGateway
			if catalog.IsTimeout(err) {
				status = http.StatusGatewayTimeout
			}
			c.JSON(status, models.Fail("Failed to delete item"))
			return
		}

		ctrl, ok := v.resolve(middleware.SessionID(c), name, "")
		if !ok {
			c.JSON(http.StatusNotFound, models.Fail("Unknown list view"))
			return
		}
		ctrl.Refresh()
		c.JSON(http.StatusOK, models.OkMessage(viewJSON(ctrl.Await(settleTimeout)), "Item deleted"))
	}
}
