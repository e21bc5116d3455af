// Package preload fetches frames ahead of display and keeps them in memory and on disk.
package preload

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"sync"

	"github.com/mapreel/mapreel/filesystem"
	"github.com/mapreel/mapreel/internal/cache"
	"github.com/mapreel/mapreel/log"
	"golang.org/x/sync/singleflight"
)

// ErrNoRemote is returned when a remote frame is requested from a preloader without a fetcher.
var ErrNoRemote = errors.New("remote frames are disabled")

// Fetcher downloads remote frames. *network.Gate satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Options configures a Preloader.
type Options struct {
	// Assets is the directory relative frame paths resolve against.
	Assets string
	// Remote downloads http(s) frames. Optional.
	Remote Fetcher
	// Disk caches remote frames across runs. Optional.
	Disk *cache.Dir
}

// Preloader resolves frame URLs to their bytes.
// Lookups go through memory, then the disk cache for remote frames, then the origin.
type Preloader struct {
	assets string
	remote Fetcher
	disk   *cache.Dir

	mu     sync.RWMutex
	memory map[string][]byte

	group singleflight.Group

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New returns a ready Preloader. Close it to abandon pending warm-ups.
func New(opts Options) *Preloader {
	ctx, cancel := context.WithCancel(context.Background())

	assets := opts.Assets
	if assets == "" {
		assets = "."
	}

	return &Preloader{
		assets: assets,
		remote: opts.Remote,
		disk:   opts.Disk,
		memory: make(map[string][]byte),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Warm fetches the frame in the background. Failures are logged and dropped.
func (p *Preloader) Warm(index int, url string) {
	if p.Cached(url) || p.ctx.Err() != nil {
		return
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		if _, err := p.Fetch(p.ctx, url); err != nil && !errors.Is(err, context.Canceled) {
			log.WithField("frame", index).Warnf("preload %s: %s", url, err)
			return
		}

		log.Tracef("preloaded frame %d", index)
	}()
}

// Wait blocks until pending warm-ups are done.
func (p *Preloader) Wait() {
	p.wg.Wait()
}

// Close cancels pending warm-ups and waits for them.
func (p *Preloader) Close() error {
	p.cancel()
	p.wg.Wait()
	return nil
}

// Fetch returns the bytes of the frame at url.
func (p *Preloader) Fetch(ctx context.Context, url string) ([]byte, error) {
	loc, remote := p.Locate(url)

	if data, ok := p.fromMemory(loc); ok {
		return data, nil
	}

	v, err, _ := p.group.Do(loc, func() (any, error) {
		var (
			data []byte
			err  error
		)

		if remote {
			data, err = p.fetchRemote(ctx, loc)
		} else {
			data, err = filesystem.API().ReadFile(loc)
		}

		if err != nil {
			return nil, err
		}

		p.mu.Lock()
		p.memory[loc] = data
		p.mu.Unlock()

		return data, nil
	})

	if err != nil {
		return nil, fmt.Errorf("frame %s: %w", url, err)
	}

	return v.([]byte), nil
}

func (p *Preloader) fetchRemote(ctx context.Context, loc string) ([]byte, error) {
	key := cache.Key(loc)

	if p.disk != nil {
		if data, ok := p.disk.Read(key); ok {
			return data, nil
		}
	}

	if p.remote == nil {
		return nil, ErrNoRemote
	}

	data, err := p.remote.Fetch(ctx, loc)
	if err != nil {
		return nil, err
	}

	if p.disk != nil {
		if err := p.disk.Write(key, data); err != nil {
			log.Warnf("cache frame %s: %s", loc, err)
		}
	}

	return data, nil
}

// Cached reports whether the frame at url is held in memory.
func (p *Preloader) Cached(url string) bool {
	loc, _ := p.Locate(url)
	_, ok := p.fromMemory(loc)
	return ok
}

// Evict drops the frame at url from memory.
func (p *Preloader) Evict(url string) {
	loc, _ := p.Locate(url)
	p.evict(loc)
}

func (p *Preloader) evict(loc string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.memory[loc]; ok {
		delete(p.memory, loc)
		log.Debugf("evicted %s", loc)
	}
}

func (p *Preloader) fromMemory(loc string) ([]byte, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	data, ok := p.memory[loc]
	return data, ok
}

// Locate turns a frame url into its cache location: the url itself for remote frames,
// a cleaned path under the assets root for local ones.
func (p *Preloader) Locate(raw string) (string, bool) {
	if IsRemote(raw) {
		return raw, true
	}

	if u, err := url.Parse(raw); err == nil && u.Scheme == "file" {
		raw = u.Path
	}

	if filepath.IsAbs(raw) {
		return filepath.Clean(raw), false
	}

	return filepath.Join(p.assets, raw), false
}

// IsRemote reports whether url is fetched over HTTP.
func IsRemote(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}
