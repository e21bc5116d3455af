package tui

import (
	"path"

	"github.com/mapreel/mapreel/icon"
)

// imageItem is an entry of the images list.
type imageItem struct {
	url string
}

func (t *imageItem) Title() string {
	name := path.Base(t.url)
	if name == "." || name == "/" {
		name = t.url
	}
	return icon.Get(icon.Image) + " " + name
}

func (t *imageItem) Description() string {
	return t.url
}

func (t *imageItem) FilterValue() string {
	return t.url
}
