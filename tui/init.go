package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (b *statefulBubble) Init() tea.Cmd {
	cmds := []tea.Cmd{
		b.waitForEvent(),
		b.waitForUpdate(),
		b.requestOverlay(),
	}

	if b.options.Play {
		b.session.Controller.Play()
		b.snapshot = b.session.Controller.Snapshot()
	}

	return tea.Batch(cmds...)
}
