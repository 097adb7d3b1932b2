package ui

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type button struct {
	label    string
	id       string
	focus    bool
	disabled bool
}

type clickMsg struct {
	id string
}

var (
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			MarginLeft(1).
			MarginRight(1)

	focusLabelStyle = labelStyle.Copy().
			Foreground(lipgloss.Color("#ee6ff8"))

	disabledLabelStyle = labelStyle.Copy().
				Faint(true)

	frameStyle = lipgloss.NewStyle()

	focusFrameStyle = lipgloss.NewStyle().
			Bold(true)
)

func (m button) Update(msg tea.Msg) (button, tea.Cmd) {
	log.Printf("Button[%s]: %v", m.id, msg)

	if m.disabled {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", " ":
			return m, m.click
		}
	}

	return m, nil
}

func (m button) click() tea.Msg {
	return clickMsg{id: m.id}
}

func (m button) View() string {
	frame := frameStyle
	label := labelStyle

	switch {
	case m.disabled:
		label = disabledLabelStyle
	case m.focus:
		frame = focusFrameStyle
		label = focusLabelStyle
	}

	return frame.Render("[") + label.Render(m.label) + frame.Render("]")
}

func (m *button) Focus() tea.Cmd {
	m.focus = true
	return nil
}

func (m *button) Blur() {
	m.focus = false
}
