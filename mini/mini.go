// Package mini implements a line-mode interface for stepping through frames.
package mini

import (
	"github.com/mapreel/mapreel/log"
	"github.com/mapreel/mapreel/session"
	"github.com/mapreel/mapreel/util"
	"github.com/samber/mo"
)

var (
	truncateAt = 100
)

type Options struct {
	Continue bool
	Start    mo.Option[int]
}

type mini struct {
	width, height int

	state         state
	statesHistory util.Stack[state]

	session *session.Session

	// query and matches of the last jump
	query   string
	matches []int
}

func newMini(s *session.Session) *mini {
	return &mini{
		statesHistory: util.Stack[state]{},
		session:       s,
	}
}

func (m *mini) previousState() {
	if m.statesHistory.Len() > 0 {
		m.setState(m.statesHistory.Pop())
	}
}

func (m *mini) setState(s state) {
	m.state = s
}

func (m *mini) newState(s state) {
	if m.state == s {
		return
	}

	m.statesHistory.Push(m.state)
	m.setState(s)
}

func Run(options *Options) error {
	s, err := session.New(session.Options{
		Start:    options.Start,
		Continue: options.Continue,
		// the line mode shows articles on demand
		Overlay: mo.Some(false),
	})
	if err != nil {
		return err
	}
	defer s.Close()

	m := newMini(s)
	m.state = frameState

	if w, h, err := util.TerminalSize(); err == nil {
		m.width, m.height = w, h
		truncateAt = w
	}

	for m.state != quitState {
		if err = m.handleState(); err != nil {
			break
		}
	}

	if err := s.Remember(); err != nil {
		log.Warnf("remember position: %s", err)
	}

	return err
}

func (m *mini) handleState() error {
	switch m.state {
	case frameState:
		return m.handleFrameState()
	case jumpSearchState:
		return m.handleJumpSearchState()
	case jumpSelectState:
		return m.handleJumpSelectState()
	case playState:
		return m.handlePlayState()
	case articleState:
		return m.handleArticleState()
	}

	return nil
}
