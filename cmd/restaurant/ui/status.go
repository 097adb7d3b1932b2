package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	statusResetDelay = 5 * time.Second
	statusBarWidth   = 98
)

var (
	statusBarFrame = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true).
			BorderForeground(lipgloss.Color("#ffffff")).
			PaddingLeft(1).
			PaddingRight(1).
			Width(statusBarWidth).
			Height(1)

	faintStatusBarFrame = statusBarFrame.Copy().
				BorderForeground(lipgloss.Color("#aaaaaa"))

	errorStatusBarFrame = statusBarFrame.Copy().
				BorderForeground(lipgloss.Color("#fc0303"))
)

type statusMsg struct {
	status string
	err    error
}

// statusExpiredMsg clears the status it was scheduled for, unless a newer
// status has replaced it since.
type statusExpiredMsg struct {
	seq int
}

type StatusBar struct {
	status string
	err    error
	seq    int
}

func newStatusBar() StatusBar {
	return StatusBar{}
}

func (m StatusBar) Update(msg tea.Msg) (StatusBar, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.seq++
		m.err = msg.err
		m.status = msg.status

		return m, m.expire(m.seq, statusResetDelay)
	case statusExpiredMsg:
		if msg.seq == m.seq {
			m.status = ""
			m.err = nil
		}
	}

	return m, nil
}

func (m StatusBar) View() string {
	f := faintStatusBarFrame
	if m.status != "" {
		f = statusBarFrame
	}
	if m.err != nil {
		f = errorStatusBarFrame
	}

	status := m.status
	if m.err != nil {
		status = m.err.Error()
		if m.status != "" {
			status = m.status + ": " + status
		}
	}

	return f.Render(status)
}

func (m StatusBar) expire(seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}
