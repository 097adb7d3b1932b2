package ui

import (
	"context"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/temporalio/temporal-restaurant/api"
	"github.com/temporalio/temporal-restaurant/imagecache"
	"github.com/temporalio/temporal-restaurant/order"
	"github.com/temporalio/temporal-restaurant/session"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	menuFrame = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true).
			BorderForeground(lipgloss.Color("#035afc")).
			PaddingLeft(1).
			PaddingRight(1).
			Width(60).
			Height(26)

	itemStyle = lipgloss.NewStyle().
			Width(34)

	focusItemStyle = itemStyle.Copy().
			Foreground(lipgloss.Color("#ee6ff8"))

	priceStyle = lipgloss.NewStyle().
			Width(8).
			Align(lipgloss.Right)

	placeholderStyle = lipgloss.NewStyle().
				Faint(true).
				MarginRight(1)

	hintStyle = lipgloss.NewStyle().
			Faint(true).
			MarginTop(1)
)

type categoriesMsg struct {
	categories []string
}

type menuItemsMsg struct {
	category string
	items    []api.MenuItem
}

type menuLoadFailedMsg struct {
	err error
}

// addItemMsg asks the POS to put an item on the order.
type addItemMsg struct {
	item api.MenuItem
}

type Menu struct {
	session *session.Session

	categories []string
	category   string
	items      []menuItemDelegate

	// slots are the display rows, reused across categories. A thumbnail is
	// only applied if its row still expects it.
	slots []*imagecache.Slot

	focus     bool
	focusItem int
	loading   bool
	spinner   spinner.Model
}

func newMenu(s *session.Session) Menu {
	return Menu{
		session: s,
		loading: true,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m Menu) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCategories)
}

func (m Menu) loadCategories() tea.Msg {
	categories, err := m.session.Client.FetchCategories(context.Background())
	if err != nil {
		return menuLoadFailedMsg{err: fmt.Errorf("unable to load categories: %w", err)}
	}

	return categoriesMsg{categories: categories}
}

func (m Menu) loadItems(category string) tea.Cmd {
	return func() tea.Msg {
		items, err := m.session.Client.FetchMenuItems(context.Background(), category)
		if err != nil {
			return menuLoadFailedMsg{err: fmt.Errorf("unable to load %s: %w", category, err)}
		}

		return menuItemsMsg{category: category, items: items}
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); !ok {
		log.Printf("Menu: %v", msg)
	}

	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			cmd := m.focusPrevious()
			return m, cmd
		case "down":
			cmd := m.focusNext()
			return m, cmd
		case "left", "backspace":
			if m.category != "" {
				m.showCategories()
			}
			return m, nil
		case "enter", " ", "right":
			if m.category == "" {
				cmd := m.openCategory()
				return m, cmd
			}
			return m, m.updateFocused(msg)
		}
	case clickMsg:
		if msg.id == "add" && m.category != "" && len(m.items) > 0 {
			item := m.items[m.focusItem].item
			return m, func() tea.Msg { return addItemMsg{item: item} }
		}
	case categoriesMsg:
		m.loading = false
		m.categories = msg.categories
		m.focusItem = 0
	case menuItemsMsg:
		if msg.category != m.category {
			log.Printf("Menu: discarding items for %s", msg.category)
			return m, nil
		}
		m.loading = false
		cmd := m.setItems(msg.items)
		return m, cmd
	case menuLoadFailedMsg:
		m.loading = false
		return m, func() tea.Msg { return statusMsg{err: msg.err} }
	case thumbnailMsg:
		m.applyThumbnail(msg)
	}

	return m, nil
}

func (m Menu) View() string {
	title := "Menu"
	if m.category != "" {
		title = "Menu › " + categoryHeader(m.category)
	}
	out := []string{titleStyle.Render(title)}

	switch {
	case m.loading:
		out = append(out, m.spinner.View()+" Loading...")
	case m.category == "":
		for i, c := range m.categories {
			s := itemStyle.Render
			if m.focus && i == m.focusItem {
				s = focusItemStyle.Render
			}
			out = append(out, s(categoryHeader(c)))
		}
		out = append(out, hintStyle.Render("enter: open  tab: order  esc: quit"))
	default:
		for _, d := range m.items {
			out = append(out, d.View())
		}
		out = append(out, hintStyle.Render("enter: add  ←: categories  tab: order"))
	}

	return menuFrame.Render(lipgloss.JoinVertical(lipgloss.Left, out...))
}

func (m *Menu) openCategory() tea.Cmd {
	if len(m.categories) == 0 {
		return nil
	}

	m.category = m.categories[m.focusItem]
	m.items = nil
	m.focusItem = 0
	m.loading = true

	return m.loadItems(m.category)
}

func (m *Menu) showCategories() {
	for i, c := range m.categories {
		if c == m.category {
			m.focusItem = i
		}
	}
	for _, s := range m.slots {
		s.Reset()
	}

	m.category = ""
	m.items = nil
	m.loading = false
}

// setItems fills the rows with a new category and starts a thumbnail fetch
// for each of them.
func (m *Menu) setItems(items []api.MenuItem) tea.Cmd {
	for len(m.slots) < len(items) {
		m.slots = append(m.slots, &imagecache.Slot{})
	}

	var cmds []tea.Cmd
	m.items = make([]menuItemDelegate, 0, len(items))
	for i, s := range m.slots {
		if i >= len(items) {
			s.Reset()
			continue
		}

		m.items = append(m.items, newMenuItemDelegate(items[i]))
		if items[i].ImageURL == "" {
			s.Reset()
			continue
		}
		cmds = append(cmds, fetchThumbnail(m.session.Images, i, s.Assign(items[i].ImageURL)))
	}

	m.focusItem = 0
	if m.focus && len(m.items) > 0 {
		cmds = append(cmds, m.items[0].Focus())
	}

	return tea.Batch(cmds...)
}

func (m *Menu) applyThumbnail(msg thumbnailMsg) {
	if msg.row >= len(m.items) || !m.slots[msg.row].Current(msg.token) {
		log.Printf("Menu: discarding stale thumbnail %s for row %d", msg.token.URL, msg.row)
		return
	}
	if msg.err != nil {
		log.Printf("Menu: thumbnail %s: %v", msg.token.URL, msg.err)
		return
	}

	c, err := swatch(msg.data)
	if err != nil {
		log.Printf("Menu: thumbnail %s: %v", msg.token.URL, err)
		return
	}
	m.items[msg.row].swatch = c
}

func (m *Menu) listLen() int {
	if m.category == "" {
		return len(m.categories)
	}
	return len(m.items)
}

func (m *Menu) focusPrevious() tea.Cmd {
	if m.focusItem == 0 {
		return nil
	}
	m.blurItem()
	m.focusItem -= 1
	return m.focusCurrent()
}

func (m *Menu) focusNext() tea.Cmd {
	if m.focusItem >= m.listLen()-1 {
		return nil
	}
	m.blurItem()
	m.focusItem += 1
	return m.focusCurrent()
}

func (m *Menu) focusCurrent() tea.Cmd {
	if m.category != "" && m.focusItem < len(m.items) {
		return m.items[m.focusItem].Focus()
	}
	return nil
}

func (m *Menu) blurItem() {
	if m.category != "" && m.focusItem < len(m.items) {
		m.items[m.focusItem].Blur()
	}
}

func (m Menu) updateFocused(msg tea.Msg) tea.Cmd {
	if m.focusItem >= len(m.items) {
		return nil
	}

	i, cmd := m.items[m.focusItem].Update(msg)
	m.items[m.focusItem] = i

	return cmd
}

// categoryHeader capitalizes every word of a category name.
func categoryHeader(c string) string {
	return cases.Title(language.Und).String(c)
}

func (m *Menu) Focus() tea.Cmd {
	m.focus = true
	return m.focusCurrent()
}

func (m *Menu) Blur() {
	m.focus = false
	m.blurItem()
}

func newMenuItemDelegate(item api.MenuItem) menuItemDelegate {
	return menuItemDelegate{
		item: item,
		add:  button{label: "+", id: "add"},
	}
}

type menuItemDelegate struct {
	item   api.MenuItem
	swatch lipgloss.Color
	focus  bool
	add    button
}

func (m menuItemDelegate) Update(msg tea.Msg) (menuItemDelegate, tea.Cmd) {
	var cmd tea.Cmd
	m.add, cmd = m.add.Update(msg)
	return m, cmd
}

func (m menuItemDelegate) View() string {
	thumb := placeholderStyle.Render("░░")
	if m.swatch != "" {
		thumb = lipgloss.NewStyle().Foreground(m.swatch).MarginRight(1).Render("██")
	}

	s := itemStyle.Render
	if m.focus {
		s = focusItemStyle.Render
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		thumb,
		s(m.item.Name),
		priceStyle.Render(order.FormatPrice(decimal.NewFromFloat(m.item.Price))),
		m.add.View(),
	)
}

func (m *menuItemDelegate) Focus() tea.Cmd {
	m.focus = true
	return m.add.Focus()
}

func (m *menuItemDelegate) Blur() {
	m.focus = false
	m.add.Blur()
}
