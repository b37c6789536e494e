package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPageDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/paged", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "12", r.URL.Query().Get("size"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{
			"items":[{"id":"p1"},{"id":"p2"}],
			"total":25,"totalPages":2,"currentPage":2,"size":12}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	page, err := c.FetchPage(context.Background(), Products, 2)
	require.NoError(t, err)

	assert.Len(t, page.Items, 2)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 2, page.CurrentPage)
	// The backend floor()s totalPages; the client recomputes ceil(25/12).
	assert.Equal(t, 3, page.TotalPages)
}

func TestSearchSendsNameParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/search", r.URL.Path)
		assert.Equal(t, "trà sữa", r.URL.Query().Get("name"))
		w.Write([]byte(`{"success":true,"data":{"items":[],"total":0,"totalPages":0,"currentPage":0,"size":12}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	page, err := c.Search(context.Background(), Products, "trà sữa", 0)
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalPages, "an empty collection still has one page")
}

func TestHTTPErrorCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.FetchPage(context.Background(), Products, 0)
	require.Error(t, err)

	assert.Equal(t, KindHTTP, KindOf(err))
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusBadGateway, ce.Status)
}

func TestSuccessFalseIsContractError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"product list unavailable"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.FetchPage(context.Background(), Products, 0)
	require.Error(t, err)

	assert.True(t, IsContract(err))
	assert.Contains(t, err.Error(), "product list unavailable")
}

func TestMalformedJSONIsContractError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.FetchPage(context.Background(), Products, 0)
	assert.True(t, IsContract(err))
}

func TestMissingItemsIsContractError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"total":10}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.FetchPage(context.Background(), Products, 0)
	assert.True(t, IsContract(err))
}

func TestDeadlineBecomesTimeoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"success":true,"data":{"items":[],"total":0}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "").WithTimeouts(20*time.Millisecond, 20*time.Millisecond)
	_, err := c.FetchPage(context.Background(), Products, 0)
	assert.True(t, IsTimeout(err))
}

func TestUnreachableBackendIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.FetchPage(context.Background(), Products, 0)
	assert.Equal(t, KindNetwork, KindOf(err))
}
