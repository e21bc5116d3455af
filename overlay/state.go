package overlay

import (
	"errors"
	"fmt"

	"github.com/mapreel/mapreel/wiki"
	"github.com/samber/lo"
)

// ErrStale is returned when a newer request supersedes the one being waited for.
var ErrStale = errors.New("stale response")

// Outcome is what applying an update did to a State.
type Outcome int

const (
	// Applied means the state changed.
	Applied Outcome = iota
	// Duplicate means the image URL was already listed.
	Duplicate
	// Stale means the update belongs to another generation and was ignored.
	Stale
	// Failed means the update reported an error, which was recorded.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Duplicate:
		return "duplicate"
	case Stale:
		return "stale"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// State is the overlay shown for one election.
// Only updates of its generation change it.
type State struct {
	Generation uint64
	Year       int
	Article    *wiki.Article
	Images     []string
	Errors     []error
	Done       bool
}

// Reset forgets everything and starts waiting for generation.
func (s *State) Reset(generation uint64, year int) {
	*s = State{Generation: generation, Year: year}
}

// Apply folds u into the state.
func (s *State) Apply(u Update) Outcome {
	if u.Generation != s.Generation {
		return Stale
	}

	switch u.Kind {
	case KindArticle:
		s.Article = u.Article
	case KindImage:
		if lo.Contains(s.Images, u.URL) {
			return Duplicate
		}
		s.Images = append(s.Images, u.URL)
	case KindFailed:
		s.Errors = append(s.Errors, fmt.Errorf("%s: %w", u.Request, u.Err))
		return Failed
	case KindDone:
		s.Done = true
	}

	return Applied
}

// Err joins the recorded failures.
func (s *State) Err() error {
	return errors.Join(s.Errors...)
}
