package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temporalio/temporal-restaurant/api"
	"github.com/temporalio/temporal-restaurant/apiclient"
	"github.com/uber-go/tally/v4"
)

func newClient(t *testing.T, h http.Handler, opts ...apiclient.Option) *apiclient.Client {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := apiclient.New(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

func assertNetworkError(t *testing.T, err error, op string) *apiclient.NetworkError {
	t.Helper()
	var netErr *apiclient.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, op, netErr.Op)
	return netErr
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	_, err := apiclient.New("localhost:8084")
	assert.Error(t, err)

	_, err = apiclient.New("://")
	assert.Error(t, err)
}

func TestFetchCategories(t *testing.T) {
	var path string
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		io.WriteString(w, `{"categories":["drinks","sides"]}`)
	}))

	categories, err := c.FetchCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"drinks", "sides"}, categories)
	assert.Equal(t, "/categories", path)
}

func TestFetchCategoriesPreservesOrder(t *testing.T) {
	want := []string{"soups", "appetizers", "entrees", "salads", "desserts", "drinks", "sides"}
	body, err := json.Marshal(api.Categories{Categories: want})
	require.NoError(t, err)

	c := newClient(t, respond(http.StatusOK, string(body)))

	got, err := c.FetchCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFetchCategoriesEmptyList(t *testing.T) {
	c := newClient(t, respond(http.StatusOK, `{"categories":[]}`))

	got, err := c.FetchCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetchCategoriesMalformed(t *testing.T) {
	for _, body := range []string{
		`{"categories":`,
		`{"names":["drinks"]}`,
		`["drinks"]`,
		`{"categories":["drinks"]}}`,
		`{"categories":["drinks"]} <html>`,
	} {
		c := newClient(t, respond(http.StatusOK, body))

		_, err := c.FetchCategories(context.Background())
		netErr := assertNetworkError(t, err, apiclient.OpFetchCategories)
		assert.Equal(t, http.StatusOK, netErr.StatusCode, body)
	}
}

func TestFetchCategoriesStatusError(t *testing.T) {
	c := newClient(t, respond(http.StatusServiceUnavailable, "kitchen closed\n"))

	_, err := c.FetchCategories(context.Background())
	netErr := assertNetworkError(t, err, apiclient.OpFetchCategories)
	assert.Equal(t, http.StatusServiceUnavailable, netErr.StatusCode)
	assert.EqualError(t, err, "fetchCategories failed: Service Unavailable: kitchen closed")
}

func TestFetchCategoriesTransportError(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusOK, `{"categories":[]}`))
	c, err := apiclient.New(srv.URL)
	require.NoError(t, err)
	srv.Close()

	_, err = c.FetchCategories(context.Background())
	netErr := assertNetworkError(t, err, apiclient.OpFetchCategories)
	assert.Zero(t, netErr.StatusCode)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestFetchMenuItems(t *testing.T) {
	var path string
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.EscapedPath()
		io.WriteString(w, `[
			{"id":7,"name":"Lemonade","price":2.5,"image_url":"/images/7.png","category":"hot drinks"},
			{"id":8,"name":"Iced Tea","description":"Brewed daily.","price":2,"image_url":"/images/8.png","category":"hot drinks"}
		]`)
	}))

	items, err := c.FetchMenuItems(context.Background(), "hot drinks")
	require.NoError(t, err)
	assert.Equal(t, "/menu/hot%20drinks", path)
	assert.Equal(t, []api.MenuItem{
		{ID: 7, Name: "Lemonade", Price: 2.5, ImageURL: "/images/7.png", Category: "hot drinks"},
		{ID: 8, Name: "Iced Tea", Description: "Brewed daily.", Price: 2, ImageURL: "/images/8.png", Category: "hot drinks"},
	}, items)
}

func TestFetchMenuItemsRejectsNegativePrice(t *testing.T) {
	c := newClient(t, respond(http.StatusOK, `[{"id":1,"name":"Refund","price":-1}]`))

	_, err := c.FetchMenuItems(context.Background(), "sides")
	assertNetworkError(t, err, apiclient.OpFetchMenuItems)
}

func TestFetchMenuItemsRejectsTrailingData(t *testing.T) {
	c := newClient(t, respond(http.StatusOK, `[{"id":1,"name":"Fries","price":3}]]`))

	_, err := c.FetchMenuItems(context.Background(), "sides")
	assertNetworkError(t, err, apiclient.OpFetchMenuItems)
}

func TestFetchMenuItemsRejectsBadCategory(t *testing.T) {
	var calls int
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		io.WriteString(w, `[]`)
	}))

	for _, category := range []string{"", ".", ".."} {
		_, err := c.FetchMenuItems(context.Background(), category)
		assertNetworkError(t, err, apiclient.OpFetchMenuItems)
	}
	assert.Equal(t, 0, calls)
}

func TestFetchMenuItemsNotFound(t *testing.T) {
	c := newClient(t, respond(http.StatusNotFound, "unknown category"))

	items, err := c.FetchMenuItems(context.Background(), "breakfast")
	netErr := assertNetworkError(t, err, apiclient.OpFetchMenuItems)
	assert.Equal(t, http.StatusNotFound, netErr.StatusCode)
	assert.Nil(t, items)
}

func TestFetchImageResolvesRelativeURL(t *testing.T) {
	var path string
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))

	data, err := c.FetchImage(context.Background(), "/images/1.png")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)
	assert.Equal(t, "/images/1.png", path)
}

func TestFetchImageAbsoluteURL(t *testing.T) {
	images := httptest.NewServer(respond(http.StatusOK, "img"))
	defer images.Close()

	c := newClient(t, respond(http.StatusInternalServerError, "wrong host"))

	data, err := c.FetchImage(context.Background(), images.URL+"/thumb.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), data)
}

func TestSubmitOrder(t *testing.T) {
	var got []int
	var contentType string
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/order", r.URL.Path)
		contentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&got)
		io.WriteString(w, `{"preparation_time": 15}`)
	}))

	p, err := c.SubmitOrder(context.Background(), []int{3, 5})
	require.NoError(t, err)
	assert.Equal(t, api.PreparationTime{Minutes: 15}, p)
	assert.Equal(t, []int{3, 5}, got)
	assert.Equal(t, "application/json", contentType)
}

func TestSubmitOrderMissingEstimate(t *testing.T) {
	for _, body := range []string{`{"eta": 15}`, `{"preparation_time": 15}]`} {
		c := newClient(t, respond(http.StatusOK, body))

		_, err := c.SubmitOrder(context.Background(), []int{1})
		assertNetworkError(t, err, apiclient.OpSubmitOrder)
	}
}

func TestSubmitOrderAllowsTrailingNewline(t *testing.T) {
	c := newClient(t, respond(http.StatusOK, "{\"preparation_time\": 15}\n"))

	p, err := c.SubmitOrder(context.Background(), []int{1})
	require.NoError(t, err)
	assert.Equal(t, 15, p.Minutes)
}

func TestCancelledContext(t *testing.T) {
	c := newClient(t, respond(http.StatusOK, `{"categories":[]}`))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchCategories(ctx)
	assertNetworkError(t, err, apiclient.OpFetchCategories)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClientMetrics(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	mux := http.NewServeMux()
	mux.HandleFunc("/categories", respond(http.StatusOK, `{"categories":["drinks"]}`))
	mux.HandleFunc("/order", respond(http.StatusBadRequest, "order has no items"))
	c := newClient(t, mux, apiclient.WithMetricsScope(scope))

	_, err := c.FetchCategories(context.Background())
	require.NoError(t, err)
	_, err = c.SubmitOrder(context.Background(), nil)
	require.Error(t, err)

	counters := scope.Snapshot().Counters()
	assert.Equal(t, int64(1), counters["apiclient.requests+operation=fetchCategories"].Value())
	assert.Equal(t, int64(1), counters["apiclient.failures+operation=submitOrder"].Value())
	_, ok := counters["apiclient.failures+operation=fetchCategories"]
	assert.False(t, ok)
}

func TestAsync(t *testing.T) {
	c := newClient(t, respond(http.StatusOK, `{"categories":["drinks","sides"]}`))

	res := <-apiclient.Async(context.Background(), c.FetchCategories)
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"drinks", "sides"}, res.Value)

	res2 := <-apiclient.Async(context.Background(), func(ctx context.Context) (api.PreparationTime, error) {
		return c.SubmitOrder(ctx, []int{1})
	})
	assertNetworkError(t, res2.Err, apiclient.OpSubmitOrder)
}
