// Package session assembles the playback controller and its collaborators from the configuration.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mapreel/mapreel/election"
	"github.com/mapreel/mapreel/frame"
	"github.com/mapreel/mapreel/internal/cache"
	"github.com/mapreel/mapreel/key"
	"github.com/mapreel/mapreel/log"
	"github.com/mapreel/mapreel/network"
	"github.com/mapreel/mapreel/overlay"
	"github.com/mapreel/mapreel/playback"
	"github.com/mapreel/mapreel/position"
	"github.com/mapreel/mapreel/preload"
	"github.com/mapreel/mapreel/where"
	"github.com/mapreel/mapreel/wiki"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Options tunes a session beyond the configuration.
type Options struct {
	// Start overrides the first frame.
	Start mo.Option[int]
	// Continue starts from the remembered frame when there is one.
	Continue bool
	// Range overrides the configured frames.
	Range mo.Option[playback.Range]
	// Overlay overrides overlay.enable.
	Overlay mo.Option[bool]
	// Interval overrides playback.interval.
	Interval mo.Option[time.Duration]
	// Scheduler replaces the ticker, for tests.
	Scheduler playback.Scheduler
}

// Session owns everything needed to display frames.
type Session struct {
	Controller *playback.Controller
	Preloader  *preload.Preloader
	Gate       *network.Gate
	Wiki       *wiki.Client
	// Fetcher is nil when the overlay is disabled.
	Fetcher *overlay.Fetcher

	Template       frame.Template
	TemplateSource string
}

// Range returns the configured frame range.
func Range() playback.Range {
	return playback.Range{
		Min: viper.GetInt(key.FramesMin),
		Max: viper.GetInt(key.FramesMax),
	}
}

// New builds a session from the configuration.
func New(opts Options) (*Session, error) {
	source := viper.GetString(key.FramesTemplate)

	tmpl, err := frame.Load(source)
	if err != nil {
		return nil, fmt.Errorf("frame template: %w", err)
	}

	gate, err := network.Default()
	if err != nil {
		return nil, err
	}

	preloader := preload.New(preload.Options{
		Assets: viper.GetString(key.FramesAssets),
		Remote: gate,
		Disk:   cache.New(where.Frames(), cache.TTL),
	})

	s := &Session{
		Preloader:      preloader,
		Gate:           gate,
		Template:       tmpl,
		TemplateSource: source,
		Wiki: wiki.New(gate, wiki.Options{
			Endpoint:   viper.GetString(key.OverlayEndpoint),
			ThumbWidth: viper.GetInt(key.OverlayThumbWidth),
		}),
	}

	start := opts.Start
	if start.IsAbsent() && opts.Continue {
		saved, err := position.Load(source)
		if err != nil {
			log.Warnf("load position: %s", err)
		} else if p, ok := saved.Get(); ok {
			if rng := opts.Range.OrElse(Range()); rng.Contains(p.Index) {
				start = mo.Some(p.Index)
			} else {
				log.Infof("forgetting frame %d, outside %s", p.Index, rng)
				if err := position.Forget(source); err != nil {
					log.Warnf("forget position: %s", err)
				}
			}
		}
	}

	interval := opts.Interval.OrElse(time.Duration(viper.GetInt(key.PlaybackInterval)) * time.Millisecond)

	var warm playback.Preloader
	if viper.GetBool(key.PlaybackPreload) {
		warm = preloader
	}

	s.Controller, err = playback.New(playback.Options{
		Range:     opts.Range.OrElse(Range()),
		Start:     start,
		Interval:  interval,
		Template:  tmpl,
		Scheduler: opts.Scheduler,
		Preloader: warm,
	})
	if err != nil {
		s.Close()
		return nil, err
	}

	if opts.Overlay.OrElse(viper.GetBool(key.OverlayEnable)) {
		s.Fetcher = overlay.NewFetcher(s.Wiki, overlay.Options{
			MaxImages: viper.GetInt(key.OverlayMaxImages),
		})
	}

	return s, nil
}

// Year returns the election year of the displayed frame.
func (s *Session) Year() int {
	return election.Year(s.Controller.Cursor())
}

// RequestOverlay asks for the overlay of the displayed election. It returns zero when the overlay is disabled.
func (s *Session) RequestOverlay(ctx context.Context) uint64 {
	if s.Fetcher == nil {
		return 0
	}
	return s.Fetcher.Request(ctx, s.Year())
}

// Watch evicts local frames from memory when they change on disk, until ctx is done.
// A missing assets directory only disables it.
func (s *Session) Watch(ctx context.Context) {
	if err := s.Preloader.Watch(ctx); err != nil {
		log.Debugf("frames are not watched: %s", err)
	}
}

// Remember saves the displayed frame when playback.remember is set.
func (s *Session) Remember() error {
	if !viper.GetBool(key.PlaybackRemember) || s.Controller == nil {
		return nil
	}
	return position.Save(s.TemplateSource, s.Controller.Cursor())
}

// Close stops playback and releases every resource.
func (s *Session) Close() error {
	var errs []error

	if s.Controller != nil {
		errs = append(errs, s.Controller.Close())
	}
	if s.Fetcher != nil {
		errs = append(errs, s.Fetcher.Close())
	}
	errs = append(errs, s.Preloader.Close())

	if closer, ok := s.Template.(interface{ Close() }); ok {
		closer.Close()
	}

	return errors.Join(errs...)
}
