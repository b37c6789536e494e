// Package catalog is the gateway's client for the AloTra backend REST API.
// It owns request deadlines, envelope decoding, and the error taxonomy the
// list views render from; it never touches any view state itself.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/minhnhutZzz/alotra-storefront/models"
	"github.com/minhnhutZzz/alotra-storefront/pagination"
)

// Per-operation deadlines. These fire even if the transport would
// eventually resolve; the caller just sees a timeout error.
const (
	PageTimeout   = 10 * time.Second
	SearchTimeout = 8 * time.Second
	UploadTimeout = 30 * time.Second
)

// Resource describes one backend collection, e.g. products or promotions.
type Resource struct {
	Path     string // "/api/products"
	PageSize int
}

var (
	Products   = Resource{Path: "/api/products", PageSize: 12}
	Categories = Resource{Path: "/api/categories", PageSize: 10}
	Users      = Resource{Path: "/api/users", PageSize: 10}
	Promotions = Resource{Path: "/api/promotions", PageSize: 10}
)

// Client talks to the catalog backend.
type Client struct {
	base   string
	apiKey string
	http   *http.Client

	pageTimeout   time.Duration
	searchTimeout time.Duration
}

func NewClient(base, apiKey string) *Client {
	return &Client{
		base:          base,
		apiKey:        apiKey,
		http:          &http.Client{},
		pageTimeout:   PageTimeout,
		searchTimeout: SearchTimeout,
	}
}

// WithTimeouts overrides the per-operation deadlines (tests use this).
func (c *Client) WithTimeouts(page, search time.Duration) *Client {
	c.pageTimeout = page
	c.searchTimeout = search
	return c
}

// FetchPage loads one 0-based page of a collection:
// GET {base}{path}/paged?page={p}&size={n}
func (c *Client) FetchPage(ctx context.Context, res Resource, page int) (*models.PageResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.pageTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(res.PageSize))
	return c.fetchList(ctx, res, res.Path+"/paged?"+q.Encode())
}

// Search loads one page of name-filtered results:
// GET {base}{path}/search?name={q}&page={p}&size={n}
func (c *Client) Search(ctx context.Context, res Resource, term string, page int) (*models.PageResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.searchTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("name", term)
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(res.PageSize))
	return c.fetchList(ctx, res, res.Path+"/search?"+q.Encode())
}

// Delete removes one record: DELETE {base}{path}/{id}.
func (c *Client) Delete(ctx context.Context, res Resource, id string) error {
	ctx, cancel := context.WithTimeout(ctx, c.pageTimeout)
	defer cancel()

	_, err := c.do(ctx, http.MethodDelete, res.Path+"/"+url.PathEscape(id), nil)
	return err
}

// Get loads one record: GET {base}{path}/{id}.
func (c *Client) Get(ctx context.Context, res Resource, id string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.pageTimeout)
	defer cancel()

	return c.do(ctx, http.MethodGet, res.Path+"/"+url.PathEscape(id), nil)
}

func (c *Client) fetchList(ctx context.Context, res Resource, pathAndQuery string) (*models.PageResult, error) {
	data, err := c.do(ctx, http.MethodGet, pathAndQuery, nil)
	if err != nil {
		return nil, err
	}

	var page models.PageResult
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, newError(KindContract, "page envelope is not valid JSON", err)
	}
	if page.Items == nil {
		return nil, newError(KindContract, "page envelope is missing items", nil)
	}

	// The backend's totalPages is floor()'d and reads 0 for an empty
	// collection; recompute it instead of trusting it.
	size := page.Size
	if size <= 0 {
		size = res.PageSize
	}
	page.TotalPages = pagination.TotalPagesFor(page.Total, size)
	return &page, nil
}

// do issues one request and unwraps the ApiResponse envelope, returning the
// raw data payload.
func (c *Client) do(ctx context.Context, method, pathAndQuery string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+pathAndQuery, body)
	if err != nil {
		return nil, newError(KindValidation, "bad request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-KEY", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, newError(KindTimeout, "backend did not answer in time", err)
		}
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, newError(KindNetwork, "request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, newError(KindTimeout, "backend did not answer in time", err)
		}
		return nil, newError(KindNetwork, "reading response failed", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Kind:    KindHTTP,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("%s %s", method, pathAndQuery),
		}
	}

	var envelope models.ApiResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, newError(KindContract, "response is not valid JSON", err)
	}
	if !envelope.Success {
		msg := envelope.Message
		if msg == "" {
			msg = "backend reported failure"
		}
		return nil, newError(KindContract, msg, nil)
	}
	return envelope.Data, nil
}
