package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/feedbackwall/feedback-service/internal/feedback"
)

// APIError is a non-2xx response from the feedback service. Message is the
// service's error text, suitable for showing to users verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("feedback service returned %d: %s", e.Status, e.Message)
}

// Client calls the feedback HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the service rooted at baseURL (e.g. http://localhost:5001).
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Submit posts one feedback entry and returns the stored record.
func (c *Client) Submit(ctx context.Context, name, text string) (*feedback.Record, error) {
	body, err := json.Marshal(feedback.Submission{Name: name, Feedback: text})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/feedback", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	var rec feedback.Record
	if err := c.do(req, http.StatusCreated, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List fetches all feedback, newest first.
func (c *Client) List(ctx context.Context) ([]feedback.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/feedback", nil)
	if err != nil {
		return nil, err
	}
	var out []feedback.Record
	if err := c.do(req, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(req *http.Request, want int, v interface{}) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}
