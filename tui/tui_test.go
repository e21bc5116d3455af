package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mapreel/mapreel/config"
	"github.com/mapreel/mapreel/filesystem"
	"github.com/mapreel/mapreel/key"
	"github.com/mapreel/mapreel/playback"
	"github.com/mapreel/mapreel/session"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

type stillTask struct{ cancelled bool }

func (t *stillTask) Cancel() { t.cancelled = true }

// stillScheduler never fires; tests advance playback by hand.
type stillScheduler struct{ tasks []*stillTask }

func (s *stillScheduler) Every(time.Duration, func()) playback.Task {
	t := &stillTask{}
	s.tasks = append(s.tasks, t)
	return t
}

func press(b *statefulBubble, keys string) tea.Cmd {
	var msg tea.KeyMsg
	switch keys {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "end":
		msg = tea.KeyMsg{Type: tea.KeyEnd}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}

	_, cmd := b.Update(msg)
	return cmd
}

func TestBubble(t *testing.T) {
	Convey("Given a player without overlay", t, func() {
		filesystem.SetMemMapFs()
		t.Setenv("MAPREEL_CONFIG_PATH", "/config")
		lo.Must0(config.Setup())
		viper.Set(key.OverlayEnable, false)
		viper.Set(key.PlaybackPreload, false)

		scheduler := &stillScheduler{}
		s, err := session.New(session.Options{Start: mo.Some(1), Scheduler: scheduler})
		So(err, ShouldBeNil)

		b := newBubble(s, &Options{})
		defer b.close()
		b.resize(80, 24)

		Convey("It starts stopped on the first frame", func() {
			So(b.state, ShouldEqual, playerState)
			So(b.snapshot.Cursor, ShouldEqual, 1)
			So(b.snapshot.Playing, ShouldBeFalse)
			So(b.View(), ShouldContainSubstring, "1789")
		})

		Convey("Arrows step the cursor", func() {
			press(b, "right")
			So(b.snapshot.Cursor, ShouldEqual, 2)
			So(b.View(), ShouldContainSubstring, "1792")

			press(b, "left")
			press(b, "left")
			So(b.snapshot.Cursor, ShouldEqual, 1)
		})

		Convey("Space toggles playback", func() {
			press(b, " ")
			So(b.snapshot.Playing, ShouldBeTrue)
			So(scheduler.tasks, ShouldHaveLength, 1)

			press(b, " ")
			So(b.snapshot.Playing, ShouldBeFalse)
			So(scheduler.tasks[0].cancelled, ShouldBeTrue)
		})

		Convey("Space on the last frame starts over", func() {
			press(b, "end")
			So(b.snapshot.Cursor, ShouldEqual, s.Controller.Range().Max)

			press(b, " ")
			So(b.snapshot.Cursor, ShouldEqual, s.Controller.Range().Min)
			So(b.snapshot.Playing, ShouldBeTrue)
		})

		Convey("Controller events refresh the view", func() {
			s.Controller.Seek(19)
			msg := b.waitForEvent()()
			So(msg, ShouldHaveSameTypeAs, eventMsg{})

			_, cmd := b.Update(msg)
			So(cmd, ShouldNotBeNil)
			So(b.snapshot.Cursor, ShouldEqual, 19)
			So(b.View(), ShouldContainSubstring, "1860")
		})

		Convey("The images view needs the overlay", func() {
			press(b, "i")
			So(b.state, ShouldEqual, playerState)
		})

		Convey("Errors switch to the error view and back", func() {
			b.Update(errors.New("boom"))
			So(b.state, ShouldEqual, errorState)
			So(b.View(), ShouldContainSubstring, "boom")

			press(b, "esc")
			So(b.state, ShouldEqual, playerState)
		})

		Convey("q quits", func() {
			cmd := press(b, "q")
			So(cmd, ShouldNotBeNil)
			So(cmd(), ShouldHaveSameTypeAs, tea.QuitMsg{})
		})
	})
}
