// Package client fetches fits from the fitforge API and normalizes them.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/meur/fitforge/internal/fit"
	"github.com/meur/fitforge/internal/models"
)

// StatusError is returned for non-200 responses
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fitforge api status %d: %s", e.Code, e.Body)
}

// Client talks to the fitforge HTTP API.
type Client struct {
	http  *resty.Client
	guard Guard
}

// New creates a Client for baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &Client{http: c}
}

// Query selects fits by hull and fitted types
type Query struct {
	Ship  int
	Items []int
}

// Values encodes the query with item ids sorted and deduplicated.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Ship > 0 {
		v.Set("ship", strconv.Itoa(q.Ship))
	}
	items := append([]int(nil), q.Items...)
	sort.Ints(items)
	for i, id := range items {
		if id <= 0 || (i > 0 && items[i-1] == id) {
			continue
		}
		v.Add("item", strconv.Itoa(id))
	}
	return v
}

// Key is the canonical form of the query, used to detect stale responses.
func (q Query) Key() string {
	return q.Values().Encode()
}

// Fits is a normalized fit listing
type Fits struct {
	Filter models.FilterSet
	Fits   []models.FitDocument
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString()).
		SetQueryParamsFromValues(params)
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Get(path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return &StatusError{Code: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}

// Fit fetches and normalizes one fit.
func (c *Client) Fit(ctx context.Context, killmail int64) (models.FitDocument, error) {
	var p models.FitPayload
	params := url.Values{"id": {strconv.FormatInt(killmail, 10)}}
	if err := c.get(ctx, "/api/Fit", params, &p); err != nil {
		return models.FitDocument{}, err
	}
	return fit.Normalize(p), nil
}

// Fits fetches and normalizes a fit listing.
func (c *Client) Fits(ctx context.Context, q Query) (Fits, error) {
	var p models.FitsPayload
	if err := c.get(ctx, "/api/Fits", q.Values(), &p); err != nil {
		return Fits{}, err
	}
	return Fits{Filter: p.Filter, Fits: fit.NormalizeAll(p.Fits)}, nil
}

// FitsLatest is Fits for callers that issue overlapping listings. current
// is false when a newer query was started while this one was in flight;
// the result is then empty and should be dropped.
func (c *Client) FitsLatest(ctx context.Context, q Query) (res Fits, current bool, err error) {
	key := q.Key()
	c.guard.Begin(key)
	res, err = c.Fits(ctx, q)
	if !c.guard.Current(key) {
		return Fits{}, false, nil
	}
	return res, true, err
}

// Search looks up types and groups by name.
func (c *Client) Search(ctx context.Context, term string) ([]models.SearchResult, error) {
	var out struct {
		Search  string
		Results []models.SearchResult
	}
	if err := c.get(ctx, "/api/Search", url.Values{"term": {term}}, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Saved lists saved fit summaries.
func (c *Client) Saved(ctx context.Context) ([]models.FitSummary, error) {
	var out []models.FitSummary
	if err := c.get(ctx, "/api/saved", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Save stores the summary of a fit on the server.
func (c *Client) Save(ctx context.Context, doc models.FitDocument) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString()).
		SetBody(fit.Summarize(doc)).
		Put("/api/saved/" + strconv.FormatInt(doc.Killmail, 10))
	if err != nil {
		return fmt.Errorf("PUT saved fit: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return &StatusError{Code: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}
