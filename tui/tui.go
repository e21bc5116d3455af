// Package tui provides the interactive terminal view over a playback session.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mapreel/mapreel/log"
	"github.com/mapreel/mapreel/session"
	"github.com/samber/mo"
)

// Options configures the interactive view.
type Options struct {
	Continue bool
	Start    mo.Option[int]
	Play     bool
}

// Run shows the player until the user quits.
func Run(options *Options) error {
	s, err := session.New(session.Options{
		Start:    options.Start,
		Continue: options.Continue,
	})
	if err != nil {
		return err
	}

	bubble := newBubble(s, options)
	defer bubble.close()

	_, err = tea.NewProgram(bubble, tea.WithAltScreen()).Run()

	if err := s.Remember(); err != nil {
		log.Warnf("remember position: %s", err)
	}

	return err
}
