// Package position remembers the last displayed frame of each frame set.
package position

import (
	"time"

	"github.com/mapreel/mapreel/election"
	"github.com/mapreel/mapreel/filesystem"
	"github.com/mapreel/mapreel/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

// Saved is a remembered frame.
type Saved struct {
	Index   int       `json:"index"`
	Year    int       `json:"year"`
	SavedAt time.Time `json:"saved_at"`
}

func store() *gache.Cache[map[string]*Saved] {
	return gache.New[map[string]*Saved](&gache.Options{
		Path:       where.Position(),
		FileSystem: &filesystem.GacheFs{},
	})
}

// All returns every remembered frame, keyed by frame template.
func All() (map[string]*Saved, error) {
	cached, expired, err := store().Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Saved), nil
	}
	return cached, nil
}

// Save remembers index as the last frame displayed with template.
func Save(template string, index int) error {
	saved, err := All()
	if err != nil {
		return err
	}

	saved[template] = &Saved{
		Index:   index,
		Year:    election.Year(index),
		SavedAt: time.Now(),
	}

	return store().Set(saved)
}

// Load returns the last frame displayed with template.
func Load(template string) (mo.Option[*Saved], error) {
	saved, err := All()
	if err != nil {
		return mo.None[*Saved](), err
	}

	if s, ok := saved[template]; ok {
		return mo.Some(s), nil
	}

	return mo.None[*Saved](), nil
}

// Forget drops the frame remembered for template.
func Forget(template string) error {
	saved, err := All()
	if err != nil {
		return err
	}

	delete(saved, template)
	return store().Set(saved)
}
