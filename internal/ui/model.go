// Package ui holds the ephemeral notification line shared by the terminal views.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mapreel/mapreel/style"
)

// Lifetime is how long a notification stays visible.
const Lifetime = 3 * time.Second

// Level sets the color of a notification.
type Level int

const (
	Info Level = iota
	Warn
	Error
)

// NotifyMsg shows a notification.
type NotifyMsg struct {
	Text  string
	Level Level
}

// ClearNotificationMsg hides the notification it was scheduled for.
type ClearNotificationMsg struct {
	id int
}

// Model is a single notification line.
type Model struct {
	notification NotifyMsg
	id           int
}

// Notify returns a command showing text.
func Notify(level Level, text string) tea.Cmd {
	return func() tea.Msg {
		return NotifyMsg{Text: text, Level: level}
	}
}

func clearAfter(id int) tea.Cmd {
	return tea.Tick(Lifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{id: id}
	})
}

// Update handles notification messages and ignores everything else.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotifyMsg:
		m.id++
		m.notification = msg
		return clearAfter(m.id)
	case ClearNotificationMsg:
		// a newer notification has its own timer
		if msg.id == m.id {
			m.notification = NotifyMsg{}
		}
	}
	return nil
}

// Text returns the visible notification.
func (m *Model) Text() string {
	return m.notification.Text
}

// View appends the notification to the last line of content.
func (m *Model) View(content string) string {
	if m.notification.Text == "" {
		return content
	}

	var c lipgloss.Color
	switch m.notification.Level {
	case Warn:
		c = style.WarningColor
	case Error:
		c = style.ErrorColor
	default:
		c = style.FaintColor
	}

	return content + "\n" + style.Fg(c)(m.notification.Text)
}
