// Package client is a thin Go client for the todo API: one HTTP round trip
// per call, no caching, no retries.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultTimeout = 10 * time.Second

// Todo is a task record as returned by the API.
type Todo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// CreateRequest is the body for Create. Description and Status are optional.
type CreateRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// UpdateRequest carries only the fields to change; nil fields are left as-is
// by the server.
type UpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// APIError is a non-2xx response. Message is the server's error field when
// present, else a generic local message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// Client calls the todo API at a base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API at baseURL, e.g. "http://localhost:4000".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// List fetches all todos.
func (c *Client) List(ctx context.Context) ([]Todo, error) {
	var list []Todo
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Get fetches one todo by id.
func (c *Client) Get(ctx context.Context, id string) (Todo, error) {
	var t Todo
	err := c.do(ctx, http.MethodGet, "/todos/"+url.PathEscape(id), nil, &t)
	return t, err
}

// Create adds a todo and returns the server-assigned record.
func (c *Client) Create(ctx context.Context, req CreateRequest) (Todo, error) {
	var t Todo
	err := c.do(ctx, http.MethodPost, "/todos", req, &t)
	return t, err
}

// Update changes only the supplied fields and returns the full updated record.
func (c *Client) Update(ctx context.Context, id string, req UpdateRequest) (Todo, error) {
	var t Todo
	err := c.do(ctx, http.MethodPut, "/todos/"+url.PathEscape(id), req, &t)
	return t, err
}

// Delete removes a todo.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return apiError(res)
	}
	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func apiError(res *http.Response) *APIError {
	var body struct {
		Error string `json:"error"`
	}
	msg := "request failed"
	if err := json.NewDecoder(res.Body).Decode(&body); err == nil && body.Error != "" {
		msg = body.Error
	}
	return &APIError{StatusCode: res.StatusCode, Message: msg}
}
