// Package icon renders the symbols of the frame view and command output.
//
// Each icon has one glyph per variant. The variant comes from icons.variant;
// an unknown variant falls back to plain text.
package icon

import (
	"github.com/mapreel/mapreel/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants lists the accepted values of icons.variant.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

type glyphs struct {
	emoji, nerd, plain, kaomoji, squares string
}

func (g *glyphs) variant(name string) string {
	switch name {
	case emoji:
		return g.emoji
	case nerd:
		return g.nerd
	case kaomoji:
		return g.kaomoji
	case squares:
		return g.squares
	default:
		return g.plain
	}
}

// Get renders i in the configured variant.
func Get(i Icon) string {
	g, ok := icons[i]
	if !ok {
		return ""
	}
	return g.variant(viper.GetString(key.IconsVariant))
}
