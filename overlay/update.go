package overlay

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mapreel/mapreel/wiki"
)

// Kind tells what an Update carries.
type Kind int

const (
	// KindArticle carries the article extract.
	KindArticle Kind = iota
	// KindImage carries one resolved image URL.
	KindImage
	// KindFailed carries the error of one request.
	KindFailed
	// KindDone closes a generation. No more updates follow for it.
	KindDone
)

func (k Kind) String() string {
	switch k {
	case KindArticle:
		return "article"
	case KindImage:
		return "image"
	case KindFailed:
		return "failed"
	case KindDone:
		return "done"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Request names the read an update answers.
type Request string

const (
	RequestExtract Request = "extract"
	RequestImages  Request = "images"
	RequestImage   Request = "imageinfo"
)

// Update is the result of one request of a generation.
type Update struct {
	Generation uint64
	RequestID  uuid.UUID
	Request    Request
	Year       int
	Kind       Kind

	Article *wiki.Article
	File    string
	URL     string
	Err     error
}

func (u Update) String() string {
	switch u.Kind {
	case KindArticle:
		return fmt.Sprintf("#%d %d article %q", u.Generation, u.Year, u.Article.Title)
	case KindImage:
		return fmt.Sprintf("#%d %d image %s", u.Generation, u.Year, u.URL)
	case KindFailed:
		return fmt.Sprintf("#%d %d %s failed: %s", u.Generation, u.Year, u.Request, u.Err)
	default:
		return fmt.Sprintf("#%d %d %s", u.Generation, u.Year, u.Kind)
	}
}
