package nexudus

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const excerptLimit = 400

// StatusError is a non-success upstream response. It carries the status and
// a bounded body excerpt so the HTTP boundary can surface diagnostics
// without echoing arbitrary payloads.
type StatusError struct {
	Path    string
	Status  int
	Excerpt string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s returned %d", e.Path, e.Status)
}

// BasicToken builds the opaque Authorization header value for the upstream
// API from account credentials.
func BasicToken(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

type Config struct {
	BaseURL   string
	AuthToken string
	Timeout   time.Duration
}

// Client is a read-only consumer of the workspace-management record API.
type Client struct {
	baseURL string
	auth    string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		auth:    cfg.AuthToken,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.auth)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt := string(body)
		if len(excerpt) > excerptLimit {
			excerpt = excerpt[:excerptLimit]
		}
		return nil, &StatusError{Path: path, Status: resp.StatusCode, Excerpt: excerpt}
	}

	return body, nil
}

// getOne fetches a single entity by id.
func getOne[T any](ctx context.Context, c *Client, path string, id int64) (*T, error) {
	body, err := c.get(ctx, path+"/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return nil, err
	}
	var record T
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("could not decode %s record: %w", path, err)
	}
	return &record, nil
}

// list fetches one page of a list endpoint. Every list request carries a
// uniqueness token so intermediate caches cannot serve a stale page within
// one resolution.
func list[T any](ctx context.Context, c *Client, path string, q url.Values) ([]T, PageInfo, error) {
	params := url.Values{}
	for k, vs := range q {
		params[k] = vs
	}
	params.Set("_nonce", uuid.NewString())

	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, PageInfo{}, err
	}

	var page envelope[T]
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, PageInfo{}, fmt.Errorf("could not decode %s page: %w", path, err)
	}
	return page.Records, page.PageInfo, nil
}

func (c *Client) GetVisitor(ctx context.Context, id int64) (*Visitor, error) {
	return getOne[Visitor](ctx, c, "/visitors", id)
}

func (c *Client) GetBooking(ctx context.Context, id int64) (*Booking, error) {
	return getOne[Booking](ctx, c, "/bookings", id)
}

func (c *Client) ListVisitors(ctx context.Context, q url.Values) ([]Visitor, PageInfo, error) {
	return list[Visitor](ctx, c, "/visitors", q)
}

func (c *Client) ListCoworkers(ctx context.Context, q url.Values) ([]Coworker, PageInfo, error) {
	return list[Coworker](ctx, c, "/coworkers", q)
}

func (c *Client) ListBookings(ctx context.Context, q url.Values) ([]Booking, PageInfo, error) {
	return list[Booking](ctx, c, "/bookings", q)
}

func (c *Client) ListBookingVisitors(ctx context.Context, q url.Values) ([]BookingVisitor, PageInfo, error) {
	return list[BookingVisitor](ctx, c, "/bookingvisitors", q)
}
