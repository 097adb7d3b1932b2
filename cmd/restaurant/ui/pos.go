package ui

import (
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/temporalio/temporal-restaurant/session"
)

var (
	titleStyle = lipgloss.NewStyle().
		MarginBottom(1).
		Bold(true).
		Underline(true)
)

type POS struct {
	session *session.Session
	menu    Menu
	order   Order
	status  StatusBar
	focus   int
}

func NewPOS(s *session.Session) POS {
	m := newMenu(s)
	m.Focus()

	return POS{
		session: s,
		menu:    m,
		order:   newOrder(s),
		status:  newStatusBar(),
	}
}

func (m POS) Init() tea.Cmd {
	return tea.Batch(m.menu.Init(), m.order.Init())
}

func (m POS) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); !ok {
		log.Printf("POS: %v", msg)
	}
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			if m.focus == 0 {
				cmd = m.focusOrder()
			} else {
				cmd = m.updateFocused(msg)
			}
			return m, cmd
		case "shift+tab":
			cmd = m.focusMenu()
			return m, cmd
		default:
			cmd = m.updateFocused(msg)
			return m, cmd
		}
	case clickMsg:
		cmd = m.updateFocused(msg)
		return m, cmd
	case spinner.TickMsg:
		var menuCmd, orderCmd tea.Cmd
		m.menu, menuCmd = m.menu.Update(msg)
		m.order, orderCmd = m.order.Update(msg)
		return m, tea.Batch(menuCmd, orderCmd)
	case categoriesMsg, menuItemsMsg, menuLoadFailedMsg, thumbnailMsg:
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	case addItemMsg:
		// Adding stays open while an order is being placed. Those items are
		// not part of the submission and remain on the order afterwards.
		m.session.Order.Add(msg.item)
		m.order.Refresh()
		return m, m.updateStatus(fmt.Sprintf("Added %s", msg.item.Name), nil)
	case statusMsg, statusExpiredMsg:
		m.status, cmd = m.status.Update(msg)
		return m, cmd
	case orderMsg:
		m.order, cmd = m.order.Update(msg)
		if msg.err != nil {
			return m, tea.Batch(cmd, m.updateStatus(msg.status, msg.err))
		}
		focusCmd := m.focusMenu()
		return m, tea.Batch(cmd, focusCmd, m.updateStatus(msg.status, nil))
	}

	return m, nil
}

func (m POS) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top,
			m.menu.View(),
			m.order.View(),
		),
		m.status.View(),
	)
}

func (m *POS) focusOrder() tea.Cmd {
	m.focus = 1
	m.menu.Blur()
	return m.order.Focus()
}

func (m *POS) focusMenu() tea.Cmd {
	m.focus = 0
	m.order.Blur()
	return m.menu.Focus()
}

func (m *POS) updateFocused(msg tea.Msg) tea.Cmd {
	if m.focus == 0 {
		x, cmd := m.menu.Update(msg)
		m.menu = x
		return cmd
	} else {
		x, cmd := m.order.Update(msg)
		m.order = x
		return cmd
	}
}

func (m *POS) updateStatus(status string, err error) tea.Cmd {
	return func() tea.Msg { return statusMsg{status: status, err: err} }
}
