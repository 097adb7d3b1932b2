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
	"time"

	"github.com/temporalio/temporal-restaurant/api"
	"github.com/uber-go/tally/v4"
)

const (
	OpFetchCategories = "fetchCategories"
	OpFetchMenuItems  = "fetchMenuItems"
	OpFetchImage      = "fetchImage"
	OpSubmitOrder     = "submitOrder"
)

const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of a failed response is quoted in errors.
const maxErrorBody = 512

// Client talks to the restaurant menu API. It never retries; a failed call is
// reported once and retrying is up to the caller.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	scope      tally.Scope
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

func WithMetricsScope(s tally.Scope) Option {
	return func(cl *Client) { cl.scope = s }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host required", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
		scope:      tally.NoopScope,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.scope = c.scope.SubScope("apiclient")

	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchCategories returns the category names in the order the server lists them.
func (c *Client) FetchCategories(ctx context.Context) ([]string, error) {
	var body struct {
		Categories *[]string `json:"categories"`
	}
	err := c.do(ctx, OpFetchCategories, http.MethodGet, c.endpoint("categories"), nil, func(r io.Reader) error {
		if err := decodeJSON(r, &body); err != nil {
			return err
		}
		if body.Categories == nil {
			return errors.New(`response has no "categories" list`)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return *body.Categories, nil
}

func (c *Client) FetchMenuItems(ctx context.Context, category string) ([]api.MenuItem, error) {
	switch category {
	case "", ".", "..":
		return nil, &NetworkError{Op: OpFetchMenuItems, Err: fmt.Errorf("invalid category %q", category)}
	}

	var items []api.MenuItem
	err := c.do(ctx, OpFetchMenuItems, http.MethodGet, c.endpoint("menu", url.PathEscape(category)), nil, func(r io.Reader) error {
		if err := decodeJSON(r, &items); err != nil {
			return err
		}
		for _, item := range items {
			if item.Price < 0 {
				return fmt.Errorf("menu item %d has negative price %v", item.ID, item.Price)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []api.MenuItem{}
	}

	return items, nil
}

// FetchImage downloads raw image bytes. Relative URLs resolve against the base URL.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	ref, err := url.Parse(imageURL)
	if err != nil {
		return nil, &NetworkError{Op: OpFetchImage, Err: err}
	}

	var data []byte
	err = c.do(ctx, OpFetchImage, http.MethodGet, c.baseURL.ResolveReference(ref).String(), nil, func(r io.Reader) error {
		b, err := io.ReadAll(r)
		data = b
		return err
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

// SubmitOrder posts the identifiers of the ordered items and returns the
// kitchen's estimate.
func (c *Client) SubmitOrder(ctx context.Context, ids []int) (api.PreparationTime, error) {
	if ids == nil {
		ids = []int{}
	}
	jsonInput, err := json.Marshal(ids)
	if err != nil {
		return api.PreparationTime{}, &NetworkError{Op: OpSubmitOrder, Err: fmt.Errorf("unable to encode order: %w", err)}
	}

	var body struct {
		PreparationTime *int `json:"preparation_time"`
	}
	err = c.do(ctx, OpSubmitOrder, http.MethodPost, c.endpoint("order"), jsonInput, func(r io.Reader) error {
		if err := decodeJSON(r, &body); err != nil {
			return err
		}
		if body.PreparationTime == nil {
			return errors.New(`response has no "preparation_time"`)
		}
		return nil
	})
	if err != nil {
		return api.PreparationTime{}, err
	}

	return api.PreparationTime{Minutes: *body.PreparationTime}, nil
}

// decodeJSON reads exactly one JSON value; anything after it is malformed.
func decodeJSON(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return err
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

func (c *Client) endpoint(segments ...string) string {
	return c.baseURL.JoinPath(segments...).String()
}

func (c *Client) do(ctx context.Context, op, method, target string, payload []byte, decode func(io.Reader) error) error {
	scope := c.scope.Tagged(map[string]string{"operation": op})
	scope.Counter("requests").Inc(1)
	sw := scope.Timer("latency").Start()
	defer sw.Stop()

	err := c.roundTrip(ctx, op, method, target, payload, decode)
	if err != nil {
		scope.Counter("failures").Inc(1)
		c.logger.Debug("api request failed",
			slog.String("operation", op),
			slog.String("url", target),
			slog.String("error", err.Error()),
		)
		return err
	}

	c.logger.Debug("api request", slog.String("operation", op), slog.String("url", target))
	return nil
}

func (c *Client) roundTrip(ctx context.Context, op, method, target string, payload []byte, decode func(io.Reader) error) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	r, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer r.Body.Close()

	if r.StatusCode < 200 || r.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(r.Body, maxErrorBody))
		return &NetworkError{
			Op:         op,
			StatusCode: r.StatusCode,
			Err:        fmt.Errorf("%s: %s", http.StatusText(r.StatusCode), bytes.TrimSpace(msg)),
		}
	}

	if err := decode(r.Body); err != nil {
		return &NetworkError{Op: op, StatusCode: r.StatusCode, Err: fmt.Errorf("malformed response: %w", err)}
	}

	return nil
}
