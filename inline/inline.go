// Package inline plays frames non-interactively and writes one line per frame.
package inline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mapreel/mapreel/election"
	"github.com/mapreel/mapreel/log"
	"github.com/mapreel/mapreel/overlay"
	"github.com/mapreel/mapreel/playback"
	"github.com/mapreel/mapreel/session"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	rng := options.Range.OrElse(session.Range())

	s, err := session.New(session.Options{
		Start:     mo.Some(rng.Min),
		Range:     mo.Some(rng),
		Overlay:   mo.Some(options.Overlay),
		Interval:  mo.Some(options.Interval),
		Scheduler: options.Scheduler,
	})
	if err != nil {
		return err
	}
	defer s.Close()

	write := func(index int) error {
		frame, err := newFrame(ctx, s, index)
		if err != nil {
			return err
		}

		if options.Json {
			return writeJson(options.Out, rng, frame)
		}

		_, err = fmt.Fprintln(options.Out, plain(frame))
		return err
	}

	if err := write(s.Controller.Cursor()); err != nil {
		return err
	}

	if options.Interval == 0 {
		for s.Controller.Advance() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := write(s.Controller.Cursor()); err != nil {
				return err
			}
		}
		return nil
	}

	return play(ctx, s, write)
}

// play writes frames as the controller timer advances them.
func play(ctx context.Context, s *session.Session, write func(int) error) error {
	events := make(chan playback.Event, 16)
	done := make(chan struct{})
	unsubscribe := s.Controller.Subscribe(func(ev playback.Event) {
		select {
		case events <- ev:
		case <-done:
		}
	})
	defer func() {
		close(done)
		unsubscribe()
	}()

	s.Controller.Play()
	defer s.Controller.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev.Kind {
			case playback.Moved:
				if err := write(ev.Cursor); err != nil {
					return err
				}
			case playback.Finished, playback.Stopped:
				log.Debugf("inline playback %s at %d", ev.Kind, ev.Cursor)
				return nil
			}
		}
	}
}

func newFrame(ctx context.Context, s *session.Session, index int) (*Frame, error) {
	url, err := s.Controller.ImageURL(index)
	if err != nil {
		return nil, err
	}

	year := election.Year(index)
	frame := &Frame{
		Index: index,
		Year:  year,
		Label: s.Controller.Label(index),
		URL:   url,
	}

	if s.Fetcher == nil {
		return frame, nil
	}

	state, err := overlay.Collect(ctx, s.Fetcher, year)
	if err != nil {
		return nil, fmt.Errorf("overlay of %d: %w", year, err)
	}

	if a := state.Article; a != nil {
		frame.Article = &Article{
			Title:   a.Title,
			URL:     election.ArticleURL(year),
			Extract: a.Text,
		}
	}
	frame.Images = state.Images
	frame.Errors = lo.Map(state.Errors, func(err error, _ int) string { return err.Error() })

	return frame, nil
}

func plain(frame *Frame) string {
	fields := []string{fmt.Sprint(frame.Index), frame.Label, frame.URL}
	if frame.Article != nil {
		fields = append(fields, strings.ReplaceAll(frame.Article.Title, "_", " "))
	}
	return strings.Join(fields, "\t")
}
