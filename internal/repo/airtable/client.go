package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
)

const DefaultBaseURL = "https://api.airtable.com/v0"

// Client is a minimal Airtable REST client covering the three calls this
// service needs: filtered list, single-record get and batched partial update.
// Every call is attempted exactly once; retry policy belongs to the caller.
type Client struct {
	baseURL string
	apiKey  string
	baseID  string
	client  *http.Client
}

func NewClient(apiKey, baseID string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		baseID:  baseID,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type ClientOption func(*Client)

// WithBaseURL points the client at a different API root, used by tests.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// Record is one Airtable row. Fields holds the raw column values; columns
// that are empty, false or null are absent from the map entirely.
type Record struct {
	ID          string                 `json:"id"`
	CreatedTime string                 `json:"createdTime,omitempty"`
	Fields      map[string]interface{} `json:"fields"`
}

type recordPage struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

type updateRequest struct {
	Records []Record `json:"records"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ListOptions are encoded into the list query string.
type ListOptions struct {
	FilterByFormula string `url:"filterByFormula,omitempty"`
	PageSize        int    `url:"pageSize,omitempty"`
	Offset          string `url:"offset,omitempty"`
}

// ListRecords fetches every record of table matching opts, following
// Airtable's pagination offsets until the listing is exhausted.
func (c *Client) ListRecords(ctx context.Context, table string, opts ListOptions) ([]Record, error) {
	var all []Record

	for {
		values, err := query.Values(opts)
		if err != nil {
			return nil, fmt.Errorf("failed to encode list options: %w", err)
		}

		url := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, c.baseID, table, values.Encode())

		var page recordPage
		if err := c.do(ctx, http.MethodGet, url, nil, &page); err != nil {
			return nil, err
		}

		all = append(all, page.Records...)

		if page.Offset == "" {
			return all, nil
		}
		opts.Offset = page.Offset
	}
}

// GetRecord fetches a single record by ID.
func (c *Client) GetRecord(ctx context.Context, table, recordID string) (*Record, error) {
	url := fmt.Sprintf("%s/%s/%s/%s", c.baseURL, c.baseID, table, recordID)

	var rec Record
	if err := c.do(ctx, http.MethodGet, url, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateRecords issues a batched PATCH. Airtable treats PATCH as a partial
// update: only the columns named in each record's Fields map change.
func (c *Client) UpdateRecords(ctx context.Context, table string, records []Record) ([]Record, error) {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, c.baseID, table)

	var page recordPage
	if err := c.do(ctx, http.MethodPatch, url, updateRequest{Records: records}, &page); err != nil {
		return nil, err
	}
	return page.Records, nil
}

func (c *Client) do(ctx context.Context, method, url string, body, out interface{}) error {
	var bodyReader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("airtable request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("airtable error: status=%d type=%s message=%s",
				resp.StatusCode, apiErr.Error.Type, apiErr.Error.Message)
		}
		return fmt.Errorf("airtable error: status=%d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode airtable response: %w", err)
		}
	}
	return nil
}
