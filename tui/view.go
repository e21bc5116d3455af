package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mapreel/mapreel/color"
	"github.com/mapreel/mapreel/icon"
	"github.com/mapreel/mapreel/key"
	"github.com/mapreel/mapreel/style"
	"github.com/mapreel/mapreel/util"
	"github.com/muesli/reflow/wrap"
	"github.com/spf13/viper"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case playerState:
		output = b.viewPlayer()
	case imagesState:
		output = b.viewImages()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return paddingStyle.Render(b.notifier.View(output))
}

func (b *statefulBubble) viewPlayer() string {
	snapshot := b.snapshot
	controller := b.session.Controller

	status := style.Fg(color.Purple)(icon.Get(icon.Pause) + " stopped")
	if snapshot.Playing {
		status = style.Tag(style.Base, style.SuccessColor)(icon.Get(icon.Play) + " playing")
	}

	lines := []string{
		style.Title(controller.Label(snapshot.Cursor)),
		"",
		fmt.Sprintf(
			"%s  %s",
			status,
			style.Faint(fmt.Sprintf("frame %d/%d", snapshot.Cursor, snapshot.Range.Max)),
		),
	}

	if viper.GetBool(key.TUIShowURLs) {
		if url, err := controller.ImageURL(snapshot.Cursor); err == nil {
			lines = append(lines, style.Truncate(b.width)(icon.Get(icon.Frame)+" "+url))
		}
	}

	lines = append(lines, "", b.progressC.ViewAs(progressOf(snapshot.Cursor, snapshot.Range.Min, snapshot.Range.Max)), "")

	return b.renderLines(true, append(lines, b.overlayLines()...))
}

func (b *statefulBubble) overlayLines() []string {
	if b.session.Fetcher == nil {
		return nil
	}

	var lines []string

	article := b.overlay.Article
	switch {
	case article != nil:
		lines = append(lines, style.Bold(strings.ReplaceAll(article.Title, "_", " ")), "")
		extract := strings.Split(wrap.String(article.Text, b.width), "\n")
		if rows := viper.GetInt(key.TUIExtractRows); rows > 0 && len(extract) > rows {
			extract = append(extract[:rows], style.Faint("…"))
		}
		lines = append(lines, extract...)
	case !b.overlay.Done:
		lines = append(lines, b.spinnerC.View()+" Loading the article")
	}

	if n := len(b.overlay.Images); n > 0 && viper.GetBool(key.TUIShowImages) {
		lines = append(lines, "", style.Faint(icon.Get(icon.Image)+" "+util.Quantify(n, "image", "images")+", press i to browse"))
	}

	if n := len(b.overlay.Errors); n > 0 && b.overlay.Done {
		lines = append(lines, style.Fg(style.WarningColor)(icon.Get(icon.Warn)+" "+util.Quantify(n, "request", "requests")+" failed"))
	}

	return lines
}

func (b *statefulBubble) viewImages() string {
	return listExtraPaddingStyle.Render(b.imagesC.View())
}

func (b *statefulBubble) viewError() string {
	errorMsg := wrap.String(style.Fg(style.ErrorColor)(b.lastError.Error()), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := strings.Count(strings.Join(lines, "\n"), "\n") + 1
	l := strings.Join(lines, "\n")
	if addHelp {
		// keep the help pinned to the bottom
		if b.height > h+1 {
			l += strings.Repeat("\n", b.height-h-1)
		}
		l += "\n" + b.helpC.View(b.keymap)
	}

	return l
}

func progressOf(cursor, lower, upper int) float64 {
	if upper <= lower {
		return 1
	}
	return float64(cursor-lower) / float64(upper-lower)
}
