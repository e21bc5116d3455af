package overlay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mapreel/mapreel/election"
	"github.com/mapreel/mapreel/wiki"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeSource answers from memory. Titles listed in blocked wait until released or cancelled.
type fakeSource struct {
	mu      sync.Mutex
	images  map[string][]string
	failing map[string]error
	blocked map[string]chan struct{}
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		images:  make(map[string][]string),
		failing: make(map[string]error),
		blocked: make(map[string]chan struct{}),
	}
}

func (s *fakeSource) block(title string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{})
	s.blocked[title] = ch
	return ch
}

func (s *fakeSource) wait(ctx context.Context, key string) error {
	s.mu.Lock()
	ch, ok := s.blocked[key]
	s.mu.Unlock()

	if !ok {
		return nil
	}

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *fakeSource) Extract(ctx context.Context, title string) (*wiki.Article, error) {
	if err := s.wait(ctx, title); err != nil {
		return nil, err
	}
	if err := s.failing[title]; err != nil {
		return nil, err
	}
	return &wiki.Article{Title: title, Text: "about " + title}, nil
}

func (s *fakeSource) Images(ctx context.Context, title string) ([]string, error) {
	if err := s.wait(ctx, title); err != nil {
		return nil, err
	}
	return s.images[title], nil
}

func (s *fakeSource) ImageURL(ctx context.Context, file string) (string, error) {
	if err := s.failing[file]; err != nil {
		return "", err
	}
	// files sharing a stem share a URL
	stem, _, _ := strings.Cut(file, ".")
	return "https://upload.wikimedia.org/" + stem, nil
}

func TestState(t *testing.T) {
	Convey("Given a state waiting for generation 2", t, func() {
		var s State
		s.Reset(2, 1860)

		Convey("Updates of another generation are stale and change nothing", func() {
			So(s.Apply(Update{Generation: 1, Kind: KindImage, URL: "a"}), ShouldEqual, Stale)
			So(s.Apply(Update{Generation: 3, Kind: KindArticle, Article: &wiki.Article{}}), ShouldEqual, Stale)
			So(s.Images, ShouldBeEmpty)
			So(s.Article, ShouldBeNil)
		})

		Convey("Duplicate image URLs are listed once", func() {
			So(s.Apply(Update{Generation: 2, Kind: KindImage, URL: "a"}), ShouldEqual, Applied)
			So(s.Apply(Update{Generation: 2, Kind: KindImage, URL: "b"}), ShouldEqual, Applied)
			So(s.Apply(Update{Generation: 2, Kind: KindImage, URL: "a"}), ShouldEqual, Duplicate)
			So(s.Images, ShouldResemble, []string{"a", "b"})
		})

		Convey("Failures are recorded", func() {
			So(s.Apply(Update{Generation: 2, Kind: KindFailed, Request: RequestExtract, Err: errors.New("boom")}), ShouldEqual, Failed)
			So(s.Err(), ShouldNotBeNil)
			So(s.Err().Error(), ShouldContainSubstring, "extract: boom")
		})

		Convey("Reset clears the images", func() {
			s.Apply(Update{Generation: 2, Kind: KindImage, URL: "a"})
			s.Apply(Update{Generation: 2, Kind: KindDone})
			So(s.Done, ShouldBeTrue)

			s.Reset(3, 1864)
			So(s.Images, ShouldBeEmpty)
			So(s.Done, ShouldBeFalse)
			So(s.Year, ShouldEqual, 1864)
		})

		Convey("Outcomes and kinds have names", func() {
			So(Stale.String(), ShouldEqual, "stale")
			So(KindImage.String(), ShouldEqual, "image")
		})
	})
}

func TestCollect(t *testing.T) {
	Convey("Given a fetcher over a fake source", t, func() {
		source := newFakeSource()
		title := election.ArticleTitle(1860)
		source.images[title] = []string{"Lincoln.jpg", "Map.svg", "Lincoln.png", "Douglas.jpg"}

		f := NewFetcher(source, Options{})
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		Convey("Collect gathers the article and unique image URLs", func() {
			state, err := Collect(ctx, f, 1860)
			So(err, ShouldBeNil)
			So(state.Done, ShouldBeTrue)
			So(state.Article.Title, ShouldEqual, title)
			So(state.Images, ShouldHaveLength, 3)
			So(state.Images, ShouldContain, "https://upload.wikimedia.org/Lincoln")
			So(lo.Uniq(state.Images), ShouldHaveLength, len(state.Images))
		})

		Convey("Failed lookups are reported next to the successful ones", func() {
			source.failing["Map.svg"] = errors.New("no such file")
			state, err := Collect(ctx, f, 1860)
			So(err, ShouldBeNil)
			So(state.Errors, ShouldHaveLength, 1)
			So(state.Images, ShouldHaveLength, 2)
		})

		Convey("Unknown elections fail the extract without blocking", func() {
			source.failing[election.ArticleTitle(1861)] = wiki.ErrNotFound
			state, err := Collect(ctx, f, 1861)
			So(err, ShouldBeNil)
			So(errors.Is(state.Err(), wiki.ErrNotFound), ShouldBeTrue)
		})
	})

	Convey("MaxImages caps the lookups", t, func() {
		source := newFakeSource()
		source.images[election.ArticleTitle(1860)] = []string{"a.jpg", "b.jpg", "c.jpg"}

		f := NewFetcher(source, Options{MaxImages: 2, Concurrency: 1})
		defer f.Close()

		state, err := Collect(context.Background(), f, 1860)
		So(err, ShouldBeNil)
		So(state.Images, ShouldResemble, []string{"https://upload.wikimedia.org/a", "https://upload.wikimedia.org/b"})
	})
}

func TestSupersededRequests(t *testing.T) {
	Convey("Given a slow response for 1856", t, func() {
		source := newFakeSource()
		slow := election.ArticleTitle(1856)
		release := source.block(slow)
		source.images[slow] = []string{"Buchanan.jpg"}
		source.images[election.ArticleTitle(1860)] = []string{"Lincoln.jpg"}

		f := NewFetcher(source, Options{})
		defer f.Close()

		var state State
		first := f.Request(context.Background(), 1856)
		state.Reset(first, 1856)

		Convey("A newer request wins even if the older one resolves later", func() {
			second := f.Request(context.Background(), 1860)
			state.Reset(second, 1860)
			So(second, ShouldBeGreaterThan, first)
			So(f.Generation(), ShouldEqual, second)

			close(release)

			var stale []Update
			timeout := time.After(5 * time.Second)
			for !state.Done {
				select {
				case u := <-f.Updates():
					if state.Apply(u) == Stale {
						stale = append(stale, u)
					}
				case <-timeout:
					So("overlay did not complete", ShouldBeEmpty)
					return
				}
			}

			So(state.Article.Title, ShouldEqual, election.ArticleTitle(1860))
			So(state.Images, ShouldResemble, []string{"https://upload.wikimedia.org/Lincoln"})
			So(state.Errors, ShouldBeEmpty)
			for _, u := range stale {
				So(u.Generation, ShouldEqual, first)
			}
		})
	})

	Convey("Collect reports a superseded wait as stale", t, func() {
		source := newFakeSource()
		release := source.block(election.ArticleTitle(1856))
		defer close(release)

		f := NewFetcher(source, Options{})
		defer f.Close()

		result := make(chan error, 1)
		go func() {
			_, err := Collect(context.Background(), f, 1856)
			result <- err
		}()

		// let Collect issue its request first
		for f.Generation() == 0 {
			time.Sleep(time.Millisecond)
		}
		f.Request(context.Background(), 1860)

		select {
		case err := <-result:
			So(errors.Is(err, ErrStale), ShouldBeTrue)
		case <-time.After(5 * time.Second):
			So("collect did not return", ShouldBeEmpty)
		}
	})

	Convey("Closing the fetcher cancels pending requests", t, func() {
		source := newFakeSource()
		source.block(election.ArticleTitle(1856))

		f := NewFetcher(source, Options{})
		f.Request(context.Background(), 1856)

		done := make(chan struct{})
		go func() {
			_ = f.Close()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			So("close blocked", ShouldBeEmpty)
		}

		So(f.Request(context.Background(), 1860), ShouldEqual, 0)
		So(f.Close(), ShouldBeNil)

		_, open := <-f.Updates()
		for open {
			_, open = <-f.Updates()
		}
		So(open, ShouldBeFalse)
	})
}

func ExampleUpdate_String() {
	fmt.Println(Update{Generation: 3, Year: 1860, Kind: KindImage, URL: "https://upload.wikimedia.org/Lincoln"})
	// Output: #3 1860 image https://upload.wikimedia.org/Lincoln
}
