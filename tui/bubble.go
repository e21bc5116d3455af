package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/mapreel/mapreel/internal/ui"
	"github.com/mapreel/mapreel/key"
	"github.com/mapreel/mapreel/overlay"
	"github.com/mapreel/mapreel/playback"
	"github.com/mapreel/mapreel/session"
	"github.com/mapreel/mapreel/style"
	"github.com/mapreel/mapreel/util"
	"github.com/spf13/viper"
)

// statefulBubble is the model of the player.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]

	keymap *statefulKeymap

	session *session.Session
	ctx     context.Context
	cancel  context.CancelFunc

	snapshot playback.Snapshot
	overlay  overlay.State

	// controller events cross into the program through here
	eventsChannel chan playback.Event
	unsubscribe   func()

	spinnerC  spinner.Model
	progressC progress.Model
	imagesC   list.Model
	helpC     help.Model

	lastError error

	width, height int
	notifier      *ui.Model

	options *Options
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	b.statesHistory.Push(b.state)
	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	b.imagesC.SetSize(listWidth, listHeight)
	b.imagesC.Help.Width = listWidth

	b.width = width - x
	b.height = height - y

	b.progressC.Width = b.width
	b.helpC.Width = b.width
}

// close detaches the bubble from the controller and releases the session.
func (b *statefulBubble) close() {
	b.unsubscribe()
	b.cancel()
	_ = b.session.Close()
}

func newBubble(s *session.Session, options *Options) *statefulBubble {
	ctx, cancel := context.WithCancel(context.Background())

	bubble := &statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        newStatefulKeymap(),
		session:       s,
		ctx:           ctx,
		cancel:        cancel,
		snapshot:      s.Controller.Snapshot(),
		eventsChannel: make(chan playback.Event, 16),
		notifier:      &ui.Model{},
		options:       options,
	}

	s.Watch(ctx)

	bubble.unsubscribe = s.Controller.Subscribe(func(ev playback.Event) {
		select {
		case bubble.eventsChannel <- ev:
		case <-ctx.Done():
		}
	})

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = viper.GetBool(key.TUIShowURLs)
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	bubble.imagesC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.imagesC.KeyMap = bubble.keymap.forList()
	bubble.imagesC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
	bubble.imagesC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return bubble.keymap.FullHelp()[0]
	}
	bubble.imagesC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(style.Peach).Padding(0, 1)
	bubble.imagesC.Styles.NoItems = paddingStyle
	bubble.imagesC.SetShowPagination(false)
	bubble.imagesC.SetStatusBarItemName("image", "images")
	bubble.imagesC.SetFilteringEnabled(false)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.setState(playerState)

	return bubble
}
