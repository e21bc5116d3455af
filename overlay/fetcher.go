// Package overlay fetches the article and images of the displayed election, discarding results of superseded requests.
package overlay

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/mapreel/mapreel/election"
	"github.com/mapreel/mapreel/log"
	"github.com/mapreel/mapreel/wiki"
	"golang.org/x/sync/errgroup"
)

// Source reads articles and images. *wiki.Client satisfies it.
type Source interface {
	Extract(ctx context.Context, title string) (*wiki.Article, error)
	Images(ctx context.Context, title string) ([]string, error)
	ImageURL(ctx context.Context, file string) (string, error)
}

// Options configures a Fetcher.
type Options struct {
	// MaxImages caps the images resolved per election. Zero means no cap.
	MaxImages int
	// Concurrency bounds the parallel image lookups of one generation. Defaults to 4.
	Concurrency int
	// Buffer is the capacity of the updates channel. Defaults to 64.
	Buffer int
}

// Fetcher issues the requests of one election at a time.
// Each Request starts a new generation and cancels the requests of the previous one.
type Fetcher struct {
	source      Source
	maxImages   int
	concurrency int

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	closed     bool

	updates chan Update
	wg      sync.WaitGroup
}

// NewFetcher returns an idle fetcher.
func NewFetcher(source Source, opts Options) *Fetcher {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.Buffer <= 0 {
		opts.Buffer = 64
	}

	return &Fetcher{
		source:      source,
		maxImages:   opts.MaxImages,
		concurrency: opts.Concurrency,
		updates:     make(chan Update, opts.Buffer),
	}
}

// Updates delivers the results of every generation. It is closed by Close.
func (f *Fetcher) Updates() <-chan Update {
	return f.updates
}

// Generation returns the number of the latest request.
func (f *Fetcher) Generation() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.generation
}

// Request fetches the article and images of the election held in year and returns the new generation.
// It returns zero once the fetcher is closed.
func (f *Fetcher) Request(ctx context.Context, year int) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0
	}

	if f.cancel != nil {
		f.cancel()
	}

	f.generation++
	ctx, f.cancel = context.WithCancel(ctx)

	r := &run{
		fetcher:    f,
		ctx:        ctx,
		generation: f.generation,
		year:       year,
		title:      election.ArticleTitle(year),
	}

	log.WithField("generation", r.generation).Debugf("requesting overlay of %d", year)

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		r.do()
	}()

	return r.generation
}

// Close cancels pending requests, waits for them and closes Updates.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	if f.cancel != nil {
		f.cancel()
	}
	f.mu.Unlock()

	f.wg.Wait()
	close(f.updates)
	return nil
}

// run is one generation of requests.
type run struct {
	fetcher    *Fetcher
	ctx        context.Context
	generation uint64
	year       int
	title      string
}

func (r *run) do() {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		r.extract()
	}()

	go func() {
		defer wg.Done()
		r.images()
	}()

	wg.Wait()
	r.send(Update{Kind: KindDone})
}

func (r *run) extract() {
	id := uuid.New()

	article, err := r.fetcher.source.Extract(r.ctx, r.title)
	if err != nil {
		r.fail(id, RequestExtract, err)
		return
	}

	r.send(Update{RequestID: id, Request: RequestExtract, Kind: KindArticle, Article: article})
}

func (r *run) images() {
	id := uuid.New()

	files, err := r.fetcher.source.Images(r.ctx, r.title)
	if err != nil {
		r.fail(id, RequestImages, err)
		return
	}

	if limit := r.fetcher.maxImages; limit > 0 && len(files) > limit {
		files = files[:limit]
	}

	var g errgroup.Group
	g.SetLimit(r.fetcher.concurrency)

	for _, file := range files {
		file := file
		g.Go(func() error {
			if r.ctx.Err() != nil {
				return nil
			}

			id := uuid.New()
			url, err := r.fetcher.source.ImageURL(r.ctx, file)
			if err != nil {
				r.fail(id, RequestImage, err)
				return nil
			}

			r.send(Update{RequestID: id, Request: RequestImage, Kind: KindImage, File: file, URL: url})
			return nil
		})
	}

	_ = g.Wait()
}

// fail reports err unless it comes from the cancellation of this generation.
func (r *run) fail(id uuid.UUID, request Request, err error) {
	if r.ctx.Err() != nil && errors.Is(err, context.Canceled) {
		return
	}

	log.WithField("request", id.String()).Warnf("%s of %d: %s", request, r.year, err)
	r.send(Update{RequestID: id, Request: request, Kind: KindFailed, Err: err})
}

// send delivers u unless the generation was cancelled.
func (r *run) send(u Update) {
	u.Generation = r.generation
	u.Year = r.year
	if u.RequestID == uuid.Nil {
		u.RequestID = uuid.New()
	}

	select {
	case <-r.ctx.Done():
	case r.fetcher.updates <- u:
	}
}

// Collect fetches the overlay of year and waits for it to complete.
// It fails with ErrStale when another request supersedes it.
func Collect(ctx context.Context, f *Fetcher, year int) (*State, error) {
	var state State
	state.Reset(f.Request(ctx, year), year)

	for {
		select {
		case <-ctx.Done():
			return &state, ctx.Err()
		case u, open := <-f.Updates():
			if !open {
				return &state, errors.New("fetcher closed")
			}

			if u.Generation > state.Generation {
				return &state, ErrStale
			}

			state.Apply(u)
			if state.Done {
				return &state, nil
			}
		}
	}
}
