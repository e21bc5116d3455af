package mini

import (
	"context"
	"fmt"
	"strings"

	"github.com/mapreel/mapreel/election"
	"github.com/mapreel/mapreel/icon"
	"github.com/mapreel/mapreel/key"
	"github.com/mapreel/mapreel/log"
	"github.com/mapreel/mapreel/open"
	"github.com/mapreel/mapreel/playback"
	"github.com/mapreel/mapreel/preload"
	"github.com/mapreel/mapreel/query"
	"github.com/mapreel/mapreel/style"
	"github.com/mapreel/mapreel/util"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

type state int

const (
	frameState state = iota + 1
	jumpSearchState
	jumpSelectState
	playState
	articleState
	quitState
)

func (m *mini) handleFrameState() error {
	controller := m.session.Controller
	cursor := controller.Cursor()

	title(fmt.Sprintf("%s (frame %d of %d)", controller.Label(cursor), cursor, controller.Range().Max))
	if url, err := controller.ImageURL(cursor); err == nil {
		say(icon.Get(icon.Frame) + " " + url)
	}

	var options []*bind
	if cursor < controller.Range().Max {
		options = append(options, next)
	}
	if cursor > controller.Range().Min {
		options = append(options, prev)
	}
	options = append(options, jump, play, article, openMap)

	b, _, err := menu([]fmt.Stringer{}, options...)
	if err != nil {
		return err
	}

	switch b {
	case next:
		controller.Increment()
	case prev:
		controller.Decrement()
	case jump:
		m.newState(jumpSearchState)
	case play:
		m.newState(playState)
	case article:
		m.newState(articleState)
	case openMap:
		return m.openFrame(cursor)
	case quit:
		m.newState(quitState)
	}

	return nil
}

func (m *mini) handleJumpSearchState() error {
	controller := m.session.Controller
	labels := make(map[int]string)
	for i := controller.Range().Min; i <= controller.Range().Max; i++ {
		labels[i] = controller.Label(i)
	}

	title("Search Election (year or frame number)")

	var searchLoop func() error
	searchLoop = func() error {
		in, err := getInput(func(s string) bool {
			return strings.TrimSpace(s) != ""
		}, query.SuggestMany)
		if err != nil {
			return err
		}

		q := strings.TrimSpace(in.value)
		matches := matchFrames(q, labels)
		if len(matches) == 0 {
			fail("No election matches " + q)
			return searchLoop()
		}

		if err := query.Remember(q, 1); err != nil {
			log.Warnf("remember query: %s", err)
		}

		m.query = q
		m.matches = lo.Map(matches, func(f frameItem, _ int) int { return f.index })
		m.newState(jumpSelectState)
		return nil
	}

	return searchLoop()
}

func (m *mini) handleJumpSelectState() error {
	controller := m.session.Controller
	items := lo.Map(m.matches, func(index int, _ int) frameItem {
		return frameItem{index: index, label: controller.Label(index)}
	})

	title(fmt.Sprintf("Results for %q >>", m.query))
	b, item, err := menu(items, search, back)
	if err != nil {
		return err
	}

	switch b {
	case search:
		m.previousState()
		return nil
	case back:
		m.previousState()
		m.previousState()
		return nil
	case quit:
		m.newState(quitState)
		return nil
	}

	controller.Seek(item.index)
	m.statesHistory = util.Stack[state]{}
	m.setState(frameState)
	return nil
}

func (m *mini) handlePlayState() error {
	controller := m.session.Controller
	if controller.Cursor() == controller.Range().Max {
		controller.Seek(controller.Range().Min)
	}

	events := make(chan playback.Event, 16)
	done := make(chan struct{})
	unsubscribe := controller.Subscribe(func(ev playback.Event) {
		select {
		case events <- ev:
		case <-done:
		}
	})
	defer func() {
		close(done)
		unsubscribe()
	}()

	say(fmt.Sprintf("%s %s", icon.Get(icon.Play), controller.Label(controller.Cursor())))
	controller.Play()

	for ev := range events {
		switch ev.Kind {
		case playback.Moved:
			url, _ := controller.ImageURL(ev.Cursor)
			say(fmt.Sprintf("%s %s %s", icon.Get(icon.Play), controller.Label(ev.Cursor), style.Faint(url)))
		case playback.Finished, playback.Stopped:
			say(icon.Get(icon.Success) + " Reached the last frame")
			m.previousState()
			return nil
		}
	}

	return nil
}

func (m *mini) handleArticleState() error {
	year := election.Year(m.session.Controller.Cursor())

	erase := progress("Fetching article..")
	a, err := m.session.Wiki.Extract(context.Background(), election.ArticleTitle(year))
	erase()

	if err != nil {
		fail(err.Error())
		m.previousState()
		return nil
	}

	title(strings.ReplaceAll(a.Title, "_", " "))
	fmt.Println(wrap.String(a.Text, truncateAt))
	fmt.Println()

	b, _, err := menu([]fmt.Stringer{}, browse, back)
	if err != nil {
		return err
	}

	switch b {
	case browse:
		if err := m.openArticle(year); err != nil {
			fail(err.Error())
		}
		m.previousState()
	case back:
		m.previousState()
	case quit:
		m.newState(quitState)
	}

	return nil
}

// startURL hands a URL to the system handler.
var startURL = open.Start

func (m *mini) openArticle(year int) error {
	url := election.ArticleURL(year)
	if !m.session.Gate.Allowed(url) {
		return fmt.Errorf("not allowed: %s", url)
	}
	return startURL(url)
}

func (m *mini) openFrame(index int) error {
	url, err := m.session.Controller.ImageURL(index)
	if err != nil {
		return err
	}

	target := url
	if preload.IsRemote(url) {
		if !m.session.Gate.Allowed(url) {
			fail("Not allowed: " + url)
			return nil
		}
	} else {
		target, _ = m.session.Preloader.Locate(url)
	}

	if err := open.StartWith(target, viper.GetString(key.FramesViewer)); err != nil {
		fail(err.Error())
	}

	return nil
}
