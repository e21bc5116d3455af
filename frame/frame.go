// Package frame renders the location of a frame from its index.
package frame

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mapreel/mapreel/election"
	"github.com/mapreel/mapreel/filesystem"
	"github.com/mapreel/mapreel/where"
	"github.com/samber/lo"
)

// ErrMissingFunction is returned when a Lua frame script lacks a required entry point.
var ErrMissingFunction = errors.New("missing function")

// Template derives a frame URL, or a path relative to the assets root, from a frame index.
// Implementations must be pure: the same index always renders the same URL.
type Template interface {
	Render(index int) (string, error)
}

// Labeler is implemented by templates that name their frames.
type Labeler interface {
	Label(index int) (string, error)
}

// Label returns the display label of the frame at index, falling back to its election year.
func Label(t Template, index int) string {
	if l, ok := t.(Labeler); ok {
		if label, err := l.Label(index); err == nil && label != "" {
			return label
		}
	}
	return strconv.Itoa(election.Year(index))
}

// Load builds the template described by source.
// A source ending in .lua is a script path, looked up in the scripts directory when it is not found as given;
// anything else is a text template.
func Load(source string) (Template, error) {
	if !strings.HasSuffix(source, ".lua") {
		return NewTextTemplate(source)
	}

	path := source
	if !filepath.IsAbs(path) && !lo.Must(filesystem.API().Exists(path)) {
		path = filepath.Join(where.Scripts(), source)
	}

	return NewLuaTemplate(path)
}
