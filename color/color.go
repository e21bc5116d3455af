// Package color names the terminal colors mapreel paints with.
//
// The ANSI entries follow the user's terminal theme. Hex entries are fixed.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps a color value understood by lipgloss: an ANSI index or a hex code.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")

	HiRed    = New("9")
	HiPurple = New("13")
)

// Fixed colors of the frame view.
var (
	Orange = New("#ffb703")
	Cream  = New("230")
	Ink    = New("#1e1e2e")
	Mist   = New("#6c7086")
	Slate  = New("62")

	Lilac   = New("#cba6f7")
	Leaf    = New("#a6e3a1")
	Straw   = New("#f9e2af")
	Rose    = New("#f38ba8")
	Apricot = New("#fab387")
)
