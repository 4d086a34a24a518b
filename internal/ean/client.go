// Package ean is a client for the EAN affiliate hotel-list API: it builds
// the query parameters the endpoint expects, issues one GET per search,
// and maps the JSON envelope into plain hotel values. Server-reported
// failures surface as *APIError; transport failures surface as wrapped
// errors, so the two classes stay distinguishable via errors.As.
package ean

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultHost is the production EAN affiliate endpoint.
	DefaultHost = "http://api.ean.com"

	listPath = "/ean-services/rs/hotel/v3/list"

	defaultTimeout = 30 * time.Second
)

// Client calls the EAN hotel-list API. It holds no call-spanning mutable
// state and is safe for concurrent use.
type Client struct {
	host       string
	creds      Credentials
	httpClient *http.Client
}

// New creates a Client. An empty host selects DefaultHost; a
// non-positive timeout selects the 30-second default.
func New(host string, creds Credentials, timeout time.Duration) *Client {
	if host == "" {
		host = DefaultHost
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		host:  host,
		creds: creds,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Search performs one hotel search. Arrival present dispatches the
// availability path, otherwise the dateless browse path; a request with
// neither a location nor hotel ids fails with ErrNoLocation before any
// network call.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*Result, error) {
	params, err := buildParams(req)
	if err != nil {
		return nil, err
	}
	return c.perform(ctx, listPath, params)
}

// SearchRooms reruns a search scoped to a single property, the entry
// point for fetching room rates on a hotel picked from earlier results.
// It reuses the same parameter/transport/mapping pipeline.
func (c *Client) SearchRooms(ctx context.Context, hotelID int64, req SearchRequest) (*Result, error) {
	req.Location = nil
	req.HotelIDs = []int64{hotelID}
	return c.Search(ctx, req)
}

// perform issues the GET and maps the body, capturing the exact request
// URL, the raw body and the parsed hotels as one immutable Result.
func (c *Client) perform(ctx context.Context, path string, params Params) (*Result, error) {
	params.finalize(c.creds)
	reqURL := c.host + path + "?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Success vs failure is decided by the JSON envelope alone; EAN
	// reports its errors inside HotelListResponse regardless of status.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	hotels, err := ParseHotelList(body)
	if err != nil {
		return nil, err
	}

	return &Result{
		URL:    reqURL,
		Body:   body,
		Hotels: hotels,
	}, nil
}
