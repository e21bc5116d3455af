package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mapreel/mapreel/election"
	"github.com/mapreel/mapreel/internal/ui"
	"github.com/mapreel/mapreel/key"
	"github.com/mapreel/mapreel/log"
	"github.com/mapreel/mapreel/open"
	"github.com/mapreel/mapreel/overlay"
	"github.com/mapreel/mapreel/playback"
	"github.com/mapreel/mapreel/preload"
	"github.com/spf13/viper"
)

type eventMsg playback.Event

type updateMsg overlay.Update

func (b *statefulBubble) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-b.eventsChannel:
			return eventMsg(ev)
		case <-b.ctx.Done():
			return nil
		}
	}
}

func (b *statefulBubble) waitForUpdate() tea.Cmd {
	if b.session.Fetcher == nil {
		return nil
	}

	updates := b.session.Fetcher.Updates()
	return func() tea.Msg {
		select {
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			return updateMsg(u)
		case <-b.ctx.Done():
			return nil
		}
	}
}

// requestOverlay starts fetching the overlay of the displayed election, dropping the previous one.
func (b *statefulBubble) requestOverlay() tea.Cmd {
	if b.session.Fetcher == nil {
		return nil
	}

	year := election.Year(b.snapshot.Cursor)
	b.overlay.Reset(b.session.Fetcher.Request(b.ctx, year), year)
	b.imagesC.Title = fmt.Sprintf("Images of %d", b.overlay.Year)

	return tea.Batch(b.imagesC.SetItems(nil), b.spinnerC.Tick)
}

func (b *statefulBubble) applyUpdate(u overlay.Update) tea.Cmd {
	switch b.overlay.Apply(u) {
	case overlay.Stale:
		log.Debugf("ignored %s", u)
		return ui.Notify(ui.Info, fmt.Sprintf("Ignored a stale %s response for %d", u.Request, u.Year))
	case overlay.Failed:
		return ui.Notify(ui.Warn, fmt.Sprintf("Could not load %s: %s", u.Request, u.Err))
	case overlay.Applied:
		if u.Kind == overlay.KindImage {
			return b.imagesC.InsertItem(len(b.imagesC.Items()), &imageItem{url: u.URL})
		}
	}

	return nil
}

// openURL opens an address in the default handler when it is allowed.
func (b *statefulBubble) openURL(url string) tea.Cmd {
	return func() tea.Msg {
		if !b.session.Gate.Allowed(url) {
			return ui.NotifyMsg{Level: ui.Warn, Text: "Not allowed: " + url}
		}

		if err := open.Start(url); err != nil {
			return ui.NotifyMsg{Level: ui.Error, Text: err.Error()}
		}

		return ui.NotifyMsg{Text: "Opened " + url}
	}
}

func (b *statefulBubble) openFrame() tea.Cmd {
	url, err := b.session.Controller.ImageURL(b.snapshot.Cursor)
	if err != nil {
		return ui.Notify(ui.Error, err.Error())
	}

	target := url
	if preload.IsRemote(url) {
		if !b.session.Gate.Allowed(url) {
			return ui.Notify(ui.Warn, "Not allowed: "+url)
		}
	} else {
		target, _ = b.session.Preloader.Locate(url)
	}

	return func() tea.Msg {
		if err := open.StartWith(target, viper.GetString(key.FramesViewer)); err != nil {
			return ui.NotifyMsg{Level: ui.Error, Text: err.Error()}
		}
		return ui.NotifyMsg{Text: "Opened " + target}
	}
}

func (b *statefulBubble) openArticle() tea.Cmd {
	return b.openURL(election.ArticleURL(election.Year(b.snapshot.Cursor)))
}
