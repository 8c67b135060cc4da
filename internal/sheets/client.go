package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Row is a single spreadsheet record. The remote script returns every
// cell as a JSON value keyed by the header row, so fields stay loosely
// typed until a caller decodes them.
type Row = map[string]any

// Result is the decoded body of a successful query.
type Result struct {
	Rows       []Row
	Page       int
	TotalPages int
}

// QueryOptions selects rows from one sheet. Zero-valued fields are
// omitted from the request.
type QueryOptions struct {
	Sheet       string
	FilterKey   string
	FilterValue string
	Limit       int
	Page        int
}

var ErrUpstream = errors.New("sheets: upstream request failed")

// Client talks to the spreadsheet-backed HTTP endpoint. It is the only
// place in the codebase that knows the endpoint's envelope format.
type Client struct {
	baseURL string
	sheetID string
	http    *http.Client
}

func NewClient(baseURL, sheetID string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: baseURL,
		sheetID: sheetID,
		http:    httpClient,
	}
}

type queryEnvelope struct {
	Success bool `json:"success"`
	Message struct {
		Data       []Row           `json:"data"`
		Page       json.RawMessage `json:"page"`
		TotalPages json.RawMessage `json:"totalPages"`
	} `json:"message"`
}

type mutateEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Query fetches rows from one sheet, optionally filtered and paginated.
func (c *Client) Query(ctx context.Context, opts QueryOptions) (*Result, error) {
	q := url.Values{}
	q.Set("sheetId", c.sheetID)
	q.Set("sheet", opts.Sheet)
	if opts.FilterKey != "" {
		q.Set("filterKey", opts.FilterKey)
		q.Set("filterValue", opts.FilterValue)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("sheets: build query: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	var env queryEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	if !env.Success {
		return nil, fmt.Errorf("%w: sheet %q query rejected", ErrUpstream, opts.Sheet)
	}

	return &Result{
		Rows:       env.Message.Data,
		Page:       looseInt(env.Message.Page),
		TotalPages: looseInt(env.Message.TotalPages),
	}, nil
}

// Create appends a row to the given sheet.
func (c *Client) Create(ctx context.Context, sheet string, fields Row) error {
	return c.mutate(ctx, "create", sheet, fields)
}

// Update rewrites fields of the row whose id column matches id. Only
// the supplied fields change.
func (c *Client) Update(ctx context.Context, sheet, id string, fields Row) error {
	body := Row{"id": id}
	for k, v := range fields {
		body[k] = v
	}
	return c.mutate(ctx, "update", sheet, body)
}

func (c *Client) mutate(ctx context.Context, method, sheet string, fields Row) error {
	body := Row{
		"method":  method,
		"sheetId": c.sheetID,
		"sheet":   sheet,
	}
	for k, v := range fields {
		body[k] = v
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("sheets: marshal %s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("sheets: build %s: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	var env mutateEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	if !env.Success {
		if env.Error != "" {
			return fmt.Errorf("%w: %s", ErrUpstream, env.Error)
		}
		return fmt.Errorf("%w: sheet %q %s rejected", ErrUpstream, sheet, method)
	}

	return nil
}

// looseInt tolerates the remote script returning page numbers as either
// JSON numbers or quoted strings.
func looseInt(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return 0
}

// Str reads a row field as text, tolerating numeric cells.
func Str(row Row, key string) string {
	switch v := row[key].(type) {
	case string:
		return v
	case float64:
		// sheet ids and counts frequently come back as numbers
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
