// Package style holds lipgloss renderers shared by the terminal views.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mapreel/mapreel/color"
)

// Roles of the frame view palette.
var (
	Base         = color.Ink
	AccentColor  = color.Lilac
	SuccessColor = color.Leaf
	WarningColor = color.Straw
	ErrorColor   = color.Rose
	FaintColor   = color.Mist
	Peach        = color.Apricot
)

// New returns an empty style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg renders text in c.
func Fg(c lipgloss.Color) func(string) string {
	s := New().Foreground(c)
	return func(text string) string { return s.Render(text) }
}

// Tag renders text as a padded block.
func Tag(fg, bg lipgloss.Color) func(string) string {
	s := New().Foreground(fg).Background(bg).Padding(0, 1)
	return func(text string) string { return s.Render(text) }
}

// Truncate pads or wraps text to width cells.
func Truncate(width int) func(string) string {
	s := New().Width(width)
	return func(text string) string { return s.Render(text) }
}

var (
	Faint = Fg(FaintColor)
	Bold  = func(text string) string { return New().Bold(true).Render(text) }

	// Title heads the frame view with the election year.
	Title      = Tag(color.Cream, color.Slate)
	ErrorTitle = Tag(color.Cream, color.Red)
)
