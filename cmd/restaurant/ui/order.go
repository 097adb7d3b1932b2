package ui

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/temporalio/temporal-restaurant/order"
	"github.com/temporalio/temporal-restaurant/session"
)

var (
	orderFrame = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true).
			BorderForeground(lipgloss.Color("#1403fc")).
			PaddingLeft(1).
			PaddingRight(1).
			Width(36).
			Height(26)

	orderLineStyle = lipgloss.NewStyle().
			Width(24)

	focusOrderLineStyle = orderLineStyle.Copy().
				Foreground(lipgloss.Color("#ee6ff8"))
)

type orderMsg struct {
	status string
	err    error
}

type Order struct {
	session    *session.Session
	submit     button
	focus      bool
	focusLine  int
	submitting bool
	spinner    spinner.Model
}

func newOrder(s *session.Session) Order {
	return Order{
		session: s,
		submit:  button{label: "Place Order", id: "submit", disabled: true},
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m Order) Init() tea.Cmd {
	return nil
}

func (m Order) Update(msg tea.Msg) (Order, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); !ok {
		log.Printf("Order: %v", msg)
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
		case "down", "tab":
			cmd := m.focusNext()
			return m, cmd
		case "x", "delete":
			cmd := m.removeFocused()
			return m, cmd
		case "c":
			if m.submitting {
				return m, nil
			}
			m.session.Cancel()
			m.Refresh()
			return m, func() tea.Msg { return statusMsg{status: "Order cancelled"} }
		case "enter", " ":
			cmd := m.updateFocused(msg)
			return m, cmd
		}
	case clickMsg:
		if msg.id != "submit" || m.submitting {
			return m, nil
		}
		m.submitting = true
		m.submit.disabled = true
		return m, tea.Batch(m.spinner.Tick, m.placeOrder)
	case orderMsg:
		m.submitting = false
		m.Refresh()
	}

	return m, nil
}

func (m Order) View() string {
	out := []string{titleStyle.Render("Order")}

	items := m.session.Order.Items()
	for i, item := range items {
		s := orderLineStyle.Render
		if m.focus && i == m.focusLine {
			s = focusOrderLineStyle.Render
		}
		out = append(out, lipgloss.JoinHorizontal(lipgloss.Top,
			s(item.Name),
			priceStyle.Render(order.FormatPrice(decimal.NewFromFloat(item.Price))),
		))
	}

	if len(items) == 0 {
		out = append(out, placeholderStyle.Render("No items yet"))
	}

	out = append(out,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			orderLineStyle.Render("Total"),
			priceStyle.Render(order.FormatPrice(m.session.Order.Total())),
		),
		"",
	)

	if m.submitting {
		out = append(out, m.spinner.View()+" Placing order...")
	} else {
		out = append(out, m.submit.View())
	}

	if len(items) > 0 {
		out = append(out, hintStyle.Render("x: remove  c: cancel order"))
	}

	return orderFrame.Render(lipgloss.JoinVertical(lipgloss.Left, out...))
}

// Refresh brings the pane back in line with the session's order after it
// changed underneath it.
func (m *Order) Refresh() {
	n := m.session.Order.Len()
	if m.focusLine > n {
		m.focusLine = n
	}

	m.submit.disabled = n == 0 || m.submitting
	if m.focus {
		m.FocusLine()
	}
}

func (m *Order) removeFocused() tea.Cmd {
	if m.submitting || m.onSubmit() {
		return nil
	}

	items := m.session.Order.Items()
	name := items[m.focusLine].Name
	if err := m.session.Order.Remove(m.focusLine); err != nil {
		return func() tea.Msg { return statusMsg{err: err} }
	}
	m.Refresh()

	return func() tea.Msg { return statusMsg{status: fmt.Sprintf("Removed %s", name)} }
}

func (m *Order) onSubmit() bool {
	return m.focusLine >= m.session.Order.Len()
}

func (m *Order) updateFocused(msg tea.Msg) tea.Cmd {
	if !m.onSubmit() {
		return nil
	}

	var cmd tea.Cmd
	m.submit, cmd = m.submit.Update(msg)

	return cmd
}

func (m *Order) Focus() tea.Cmd {
	m.focus = true
	return m.FocusLine()
}

func (m *Order) FocusLine() tea.Cmd {
	if m.onSubmit() {
		return m.submit.Focus()
	}
	m.submit.Blur()
	return nil
}

func (m *Order) focusNext() tea.Cmd {
	if m.onSubmit() {
		return nil
	}

	m.focusLine += 1
	return m.FocusLine()
}

func (m *Order) focusPrevious() tea.Cmd {
	if m.focusLine == 0 {
		return nil
	}

	m.focusLine -= 1
	return m.FocusLine()
}

func (m *Order) Blur() {
	m.focus = false
	m.submit.Blur()
}

func (m Order) placeOrder() tea.Msg {
	p, err := m.session.Submit(context.Background())
	if errors.Is(err, session.ErrEmptyOrder) {
		return orderMsg{err: errors.New("add something to the order first")}
	}
	if err != nil {
		return orderMsg{status: "Order failed", err: err}
	}

	return orderMsg{status: fmt.Sprintf("Order placed. Ready in about %d minutes.", p.Minutes)}
}
