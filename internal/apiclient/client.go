// Package apiclient talks to the dacha REST backend.  Responses use
// snake_case fields; everything returned from here is already mapped to the
// internal model.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/dacha-booking/internal/logger"
	"github.com/iliyamo/dacha-booking/internal/model"
)

// ErrNotFound matches every 404 *APIError via errors.Is.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response.  Detail is the backend's own message and
// is what Error returns, so it can be shown to the user unchanged.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("unexpected status %d", e.Status)
}

// Is reports a 404 as ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	log        *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.httpClient = h } }

// WithToken sets the bearer token sent to admin endpoints.
func WithToken(token string) Option { return func(c *Client) { c.token = token } }

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) Option { return func(c *Client) { c.log = l } }

// New returns a client for the backend at baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With("component", "api_client")
	return c
}

func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := logger.TraceID(ctx); id != "" {
		req.Header.Set(logger.TraceHeader, id)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.Debug("sending request", "method", method, "path", path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		apiErr := &APIError{Status: resp.StatusCode}
		var e errorDTO
		if json.Unmarshal(raw, &e) == nil {
			apiErr.Detail = e.Detail
		}
		c.log.Warn("non-success response", "method", method, "path", path, "status", resp.StatusCode)
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// ListListings fetches one page of GET /listings/.
func (c *Client) ListListings(ctx context.Context, q model.ListingQuery) (model.ListingPage, error) {
	v := url.Values{}
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Region != "" {
		v.Set("region", string(q.Region))
	}
	path := "/listings/"
	if enc := v.Encode(); enc != "" {
		path += "?" + enc
	}
	var page listingPageDTO
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &page); err != nil {
		return model.ListingPage{}, err
	}
	out := model.ListingPage{Items: make([]model.Listing, 0, len(page.Items)), Pages: page.Pages}
	for _, d := range page.Items {
		out.Items = append(out.Items, d.toModel())
	}
	return out, nil
}

// GetListing fetches GET /listings/{id}.  A missing listing is ErrNotFound.
func (c *Client) GetListing(ctx context.Context, id int64) (model.Listing, error) {
	var d listingDTO
	if err := c.doRequest(ctx, http.MethodGet, "/listings/"+strconv.FormatInt(id, 10), nil, &d); err != nil {
		return model.Listing{}, err
	}
	return d.toModel(), nil
}

// ListAmenities fetches the amenity catalogue.
func (c *Client) ListAmenities(ctx context.Context) ([]model.AmenityRecord, error) {
	var ds []amenityDTO
	if err := c.doRequest(ctx, http.MethodGet, "/amenities/", nil, &ds); err != nil {
		return nil, err
	}
	out := make([]model.AmenityRecord, 0, len(ds))
	for _, d := range ds {
		out = append(out, model.AmenityRecord{ID: d.ID, NameUz: d.NameUz, NameRu: d.NameRu, Icon: d.Icon})
	}
	return out, nil
}

// CreateBooking posts a booking.  Non-2xx responses come back as *APIError
// carrying the backend's detail message.
func (c *Client) CreateBooking(ctx context.Context, req model.BookingRequest) (model.Booking, error) {
	body := createBookingDTO{
		ListingID:     req.ListingID,
		CheckIn:       req.CheckIn.UTC(),
		CheckOut:      req.CheckOut.UTC(),
		Guests:        req.Guests,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		TotalPrice:    req.TotalPrice,
	}
	var d bookingDTO
	if err := c.doRequest(ctx, http.MethodPost, "/bookings/", body, &d); err != nil {
		return model.Booking{}, err
	}
	return d.toModel(), nil
}

// UpdateBookingStatus moves a booking to status.  Requires an admin token.
func (c *Client) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	body := map[string]string{"status": status}
	return c.doRequest(ctx, http.MethodPut, "/bookings/"+strconv.FormatInt(id, 10), body, nil)
}

// Login exchanges admin credentials for an access token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.doRequest(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}
