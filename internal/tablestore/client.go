package tablestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Client is the HTTP client SDK for the row store. It is safe for
// concurrent use. Every request carries the access key as a bearer token.
type Client struct {
	baseURL string
	key     string
	hc      *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client (tests, timeouts).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// NewClient builds a client for the store at baseURL authenticating with
// the given access key.
func NewClient(baseURL, key string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		hc:      &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Insert adds a row and returns it as stored (including generated columns).
func (c *Client) Insert(ctx context.Context, table string, row Row) (Row, error) {
	var resp InsertResponse
	if err := c.do(ctx, table, "insert", InsertRequest{Row: row}, &resp); err != nil {
		return nil, err
	}
	return resp.Row, nil
}

// Select returns the rows matching the filters, optionally projected and
// ordered.
func (c *Client) Select(ctx context.Context, table string, columns []string, filters []Filter, order *Order) ([]Row, error) {
	var resp SelectResponse
	req := SelectRequest{Columns: columns, Filters: filters, Order: order}
	if err := c.do(ctx, table, "select", req, &resp); err != nil {
		return nil, err
	}
	return resp.Rows, nil
}

// SelectSingle returns exactly one matching row, or ErrNoRows when none
// match. Additional matches beyond the first are ignored.
func (c *Client) SelectSingle(ctx context.Context, table string, columns []string, filters []Filter) (Row, error) {
	var resp SelectResponse
	req := SelectRequest{Columns: columns, Filters: filters, Limit: 1}
	if err := c.do(ctx, table, "select", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Rows) == 0 {
		return nil, ErrNoRows
	}
	return resp.Rows[0], nil
}

// Update applies patch to every row matching the filters.
func (c *Client) Update(ctx context.Context, table string, patch Row, filters []Filter) error {
	return c.do(ctx, table, "update", UpdateRequest{Patch: patch, Filters: filters}, &emptyResponse{})
}

// Delete removes every row matching the filters.
func (c *Client) Delete(ctx context.Context, table string, filters []Filter) error {
	return c.do(ctx, table, "delete", DeleteRequest{Filters: filters}, &emptyResponse{})
}

// Upsert inserts the row or, on a conflict with onConflict, updates the
// existing row in place.
func (c *Client) Upsert(ctx context.Context, table string, row Row, onConflict string) error {
	return c.do(ctx, table, "upsert", UpsertRequest{Row: row, OnConflict: onConflict}, &emptyResponse{})
}

// do performs one POST round trip. Non-2xx responses are decoded into
// *Error; transport failures are returned wrapped.
func (c *Client) do(ctx context.Context, table, op string, reqBody, respBody any) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("tablestore: encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/tables/%s/%s", c.baseURL, table, op)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("tablestore: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.key)

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("tablestore: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope errorEnvelope
		if decErr := json.NewDecoder(resp.Body).Decode(&envelope); decErr == nil && envelope.Error != nil {
			return envelope.Error
		}
		return &Error{Code: CodeStorage, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("tablestore: decoding response: %w", err)
	}
	return nil
}

// DecodeRow copies a row into dst (a struct pointer with json tags) via a
// JSON round trip.
func DecodeRow(r Row, dst any) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
