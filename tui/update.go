package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mapreel/mapreel/internal/ui"
	"github.com/mapreel/mapreel/key"
	"github.com/mapreel/mapreel/overlay"
	"github.com/mapreel/mapreel/playback"
	"github.com/spf13/viper"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if cmd := b.notifier.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, tea.Batch(cmds...)
	case eventMsg:
		return b, tea.Batch(append(cmds, b.handleEvent(playback.Event(msg)), b.waitForEvent())...)
	case updateMsg:
		return b, tea.Batch(append(cmds, b.applyUpdate(overlay.Update(msg)), b.waitForUpdate())...)
	case spinner.TickMsg:
		if b.overlay.Done || b.session.Fetcher == nil {
			return b, tea.Batch(cmds...)
		}
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, tea.Batch(append(cmds, cmd)...)
	case error:
		b.raiseError(msg)
		return b, tea.Batch(cmds...)
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, tea.Batch(cmds...)
		}
	}

	var cmd tea.Cmd
	switch b.state {
	case playerState:
		cmd = b.updatePlayer(msg)
	case imagesState:
		cmd = b.updateImages(msg)
	case errorState:
		cmd = b.updateError(msg)
	}

	return b, tea.Batch(append(cmds, cmd)...)
}

// handleEvent refreshes the view after a controller event and follows the cursor with the overlay.
func (b *statefulBubble) handleEvent(ev playback.Event) tea.Cmd {
	b.snapshot = b.session.Controller.Snapshot()

	switch ev.Kind {
	case playback.Moved:
		return b.requestOverlay()
	case playback.Finished:
		return ui.Notify(ui.Info, "Reached the last frame")
	}

	return nil
}

func (b *statefulBubble) updatePlayer(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	controller := b.session.Controller
	defer func() {
		b.snapshot = controller.Snapshot()
	}()

	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.quit):
		return tea.Quit
	case bubblesKey.Matches(keyMsg, b.keymap.playPause):
		// playing from the last frame starts over
		if !controller.Playing() && controller.Cursor() == controller.Range().Max {
			controller.Seek(controller.Range().Min)
		}
		controller.Toggle()
	case bubblesKey.Matches(keyMsg, b.keymap.left):
		controller.Decrement()
	case bubblesKey.Matches(keyMsg, b.keymap.right):
		controller.Increment()
	case bubblesKey.Matches(keyMsg, b.keymap.first):
		controller.Seek(controller.Range().Min)
	case bubblesKey.Matches(keyMsg, b.keymap.last):
		controller.Seek(controller.Range().Max)
	case bubblesKey.Matches(keyMsg, b.keymap.openFrame):
		return b.openFrame()
	case bubblesKey.Matches(keyMsg, b.keymap.openArticle):
		return b.openArticle()
	case bubblesKey.Matches(keyMsg, b.keymap.images):
		if b.session.Fetcher != nil && viper.GetBool(key.TUIShowImages) {
			b.newState(imagesState)
		}
	case bubblesKey.Matches(keyMsg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	}

	return nil
}

func (b *statefulBubble) updateImages(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(keyMsg, b.keymap.confirm) {
		if item, ok := b.imagesC.SelectedItem().(*imageItem); ok {
			return b.openURL(item.url)
		}
		return nil
	}

	var cmd tea.Cmd
	b.imagesC, cmd = b.imagesC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(keyMsg, b.keymap.quit) {
		return tea.Quit
	}
	return nil
}
