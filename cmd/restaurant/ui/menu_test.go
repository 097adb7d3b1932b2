package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temporalio/temporal-restaurant/api"
	"github.com/temporalio/temporal-restaurant/session"
)

type fakeClient struct {
	menu   map[string][]api.MenuItem
	colors map[string]color.RGBA
	orders [][]int
	fail   error

	// When set, SubmitOrder signals sent and waits for release.
	sent    chan struct{}
	release chan struct{}
}

func (c *fakeClient) FetchCategories(ctx context.Context) ([]string, error) {
	return []string{"drinks", "sides"}, nil
}

func (c *fakeClient) FetchMenuItems(ctx context.Context, category string) ([]api.MenuItem, error) {
	items, ok := c.menu[category]
	if !ok {
		return nil, fmt.Errorf("no such category: %s", category)
	}
	return items, nil
}

func (c *fakeClient) FetchImage(ctx context.Context, url string) ([]byte, error) {
	col, ok := c.colors[url]
	if !ok {
		return nil, errors.New("not found")
	}

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, col)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *fakeClient) SubmitOrder(ctx context.Context, ids []int) (api.PreparationTime, error) {
	if c.release != nil {
		close(c.sent)
		<-c.release
	}
	if c.fail != nil {
		return api.PreparationTime{}, c.fail
	}
	c.orders = append(c.orders, ids)
	return api.PreparationTime{Minutes: 7}, nil
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		menu: map[string][]api.MenuItem{
			"drinks": {
				{ID: 7, Name: "Lemonade", Price: 2.5, ImageURL: "/images/7.png", Category: "drinks"},
				{ID: 8, Name: "Iced Tea", Price: 2.25, ImageURL: "/images/8.png", Category: "drinks"},
			},
			"sides": {
				{ID: 9, Name: "Fries", Price: 3.0, ImageURL: "/images/9.png", Category: "sides"},
			},
		},
		colors: map[string]color.RGBA{
			"/images/7.png": {R: 0xf1, G: 0xc4, B: 0x0f, A: 0xff},
			"/images/8.png": {R: 0x8e, G: 0x44, B: 0xad, A: 0xff},
			"/images/9.png": {R: 0xe6, G: 0x7e, B: 0x22, A: 0xff},
		},
	}
}

// run executes a command and everything it batches, returning the messages
// in order.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, run(c)...)
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func thumbnails(msgs []tea.Msg) []thumbnailMsg {
	var out []thumbnailMsg
	for _, msg := range msgs {
		if t, ok := msg.(thumbnailMsg); ok {
			out = append(out, t)
		}
	}
	return out
}

func openCategory(t *testing.T, m Menu, category string) (Menu, []tea.Msg) {
	m, _ = m.Update(categoriesMsg{categories: []string{"drinks", "sides"}})
	for m.categories[m.focusItem] != category {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, category, m.category)

	msgs := run(cmd)
	require.Len(t, msgs, 1)

	m, cmd = m.Update(msgs[0])
	return m, run(cmd)
}

func TestMenuAppliesThumbnails(t *testing.T) {
	m := newMenu(session.New(newFakeClient()))
	m.Focus()

	m, msgs := openCategory(t, m, "drinks")
	require.Len(t, m.items, 2)

	thumbs := thumbnails(msgs)
	require.Len(t, thumbs, 2)
	for _, msg := range thumbs {
		m, _ = m.Update(msg)
	}

	assert.Equal(t, lipgloss.Color("#f1c40f"), m.items[0].swatch)
	assert.Equal(t, lipgloss.Color("#8e44ad"), m.items[1].swatch)
}

func TestMenuDiscardsStaleThumbnails(t *testing.T) {
	m := newMenu(session.New(newFakeClient()))
	m.Focus()

	m, drinks := openCategory(t, m, "drinks")
	stale := thumbnails(drinks)
	require.Len(t, stale, 2)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	require.Equal(t, "", m.category)

	m, sides := openCategory(t, m, "sides")
	require.Len(t, m.items, 1)

	// The drinks images arrive after the rows were reused for sides.
	for _, msg := range stale {
		m, _ = m.Update(msg)
	}
	assert.Equal(t, lipgloss.Color(""), m.items[0].swatch)

	for _, msg := range thumbnails(sides) {
		m, _ = m.Update(msg)
	}
	assert.Equal(t, lipgloss.Color("#e67e22"), m.items[0].swatch)
}

func TestMenuKeepsPlaceholderOnFailedThumbnail(t *testing.T) {
	c := newFakeClient()
	delete(c.colors, "/images/8.png")

	m := newMenu(session.New(c))
	m, msgs := openCategory(t, m, "drinks")
	for _, msg := range thumbnails(msgs) {
		m, _ = m.Update(msg)
	}

	assert.Equal(t, lipgloss.Color("#f1c40f"), m.items[0].swatch)
	assert.Equal(t, lipgloss.Color(""), m.items[1].swatch)
}

func TestMenuDiscardsItemsForAbandonedCategory(t *testing.T) {
	m := newMenu(session.New(newFakeClient()))
	m, _ = m.Update(categoriesMsg{categories: []string{"drinks", "sides"}})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	loaded := run(cmd)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})

	m, _ = m.Update(loaded[0])
	assert.Equal(t, "", m.category)
	assert.Empty(t, m.items)
}

func TestMenuAddItem(t *testing.T) {
	m := newMenu(session.New(newFakeClient()))
	m.Focus()

	m, _ = openCategory(t, m, "drinks")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msgs := run(cmd)
	require.Equal(t, []tea.Msg{clickMsg{id: "add"}}, msgs)

	_, cmd = m.Update(msgs[0])
	msgs = run(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, addItemMsg{item: newFakeClient().menu["drinks"][1]}, msgs[0])
}

func TestMenuLoadFailureReportsStatus(t *testing.T) {
	m := newMenu(session.New(newFakeClient()))
	m, _ = m.Update(categoriesMsg{categories: []string{"desserts"}})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msgs := run(cmd)
	require.Len(t, msgs, 1)
	require.IsType(t, menuLoadFailedMsg{}, msgs[0])

	m, cmd = m.Update(msgs[0])
	assert.False(t, m.loading)

	msgs = run(cmd)
	require.Len(t, msgs, 1)
	status, ok := msgs[0].(statusMsg)
	require.True(t, ok)
	assert.EqualError(t, status.err, "unable to load desserts: no such category: desserts")
}

func TestCategoryHeader(t *testing.T) {
	assert.Equal(t, "Drinks", categoryHeader("drinks"))
	assert.Equal(t, "Hot Drinks", categoryHeader("hot drinks"))
	assert.Equal(t, "Éclairs", categoryHeader("éclairs"))
	assert.Equal(t, "", categoryHeader(""))
}
