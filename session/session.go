// Package session ties the API client, image cache and order together for one
// customer's ordering session.
package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/temporalio/temporal-restaurant/api"
	"github.com/temporalio/temporal-restaurant/apiclient"
	"github.com/temporalio/temporal-restaurant/imagecache"
	"github.com/temporalio/temporal-restaurant/order"
	"github.com/uber-go/tally/v4"
)

var ErrEmptyOrder = errors.New("order has no items")

// Client is the part of *apiclient.Client a session uses.
type Client interface {
	FetchCategories(ctx context.Context) ([]string, error)
	FetchMenuItems(ctx context.Context, category string) ([]api.MenuItem, error)
	FetchImage(ctx context.Context, url string) ([]byte, error)
	SubmitOrder(ctx context.Context, ids []int) (api.PreparationTime, error)
}

var _ Client = (*apiclient.Client)(nil)

type Session struct {
	Client Client
	Images *imagecache.Cache
	Order  *order.Order

	logger *slog.Logger
}

type Option func(*options)

type options struct {
	logger *slog.Logger
	scope  tally.Scope
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithMetricsScope(s tally.Scope) Option {
	return func(o *options) { o.scope = s }
}

func New(c Client, opts ...Option) *Session {
	o := options{
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
		scope:  tally.NoopScope,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Session{
		Client: c,
		Images: imagecache.New(c, imagecache.WithLogger(o.logger), imagecache.WithMetricsScope(o.scope)),
		Order:  order.New(),
		logger: o.logger,
	}
}

// Submit sends the current order. Only the submitted items are dropped, and
// only once the server accepted them; items added while the request was in
// flight stay on the order. On failure the order is left as it was so the
// customer can retry.
func (s *Session) Submit(ctx context.Context) (api.PreparationTime, error) {
	ids := s.Order.IDs()
	if len(ids) == 0 {
		return api.PreparationTime{}, ErrEmptyOrder
	}

	p, err := s.Client.SubmitOrder(ctx, ids)
	if err != nil {
		s.logger.Error("order submission failed", slog.Int("items", len(ids)), slog.String("error", err.Error()))
		return api.PreparationTime{}, err
	}

	s.Order.Drop(len(ids))
	s.logger.Info("order submitted", slog.Int("items", len(ids)), slog.Int("preparation_time", p.Minutes))

	return p, nil
}

// Cancel abandons the current order.
func (s *Session) Cancel() {
	s.Order.Clear()
}

type Thumbnail struct {
	ItemID int
	URL    string
	Data   []byte
	Err    error
}

// Thumbnails fetches the image of every item through the cache, concurrently.
// Results arrive in completion order, not item order; match them by ItemID or
// URL. The channel is closed once every fetch has finished.
func (s *Session) Thumbnails(ctx context.Context, items []api.MenuItem) <-chan Thumbnail {
	ch := make(chan Thumbnail, len(items))

	var wg sync.WaitGroup
	for _, item := range items {
		if item.ImageURL == "" {
			continue
		}

		wg.Add(1)
		go func(item api.MenuItem) {
			defer wg.Done()
			data, err := s.Images.Get(ctx, item.ImageURL)
			ch <- Thumbnail{ItemID: item.ID, URL: item.ImageURL, Data: data, Err: err}
		}(item)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	return ch
}
