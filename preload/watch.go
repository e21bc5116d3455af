package preload

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/mapreel/mapreel/filesystem"
	"github.com/mapreel/mapreel/log"
)

// Watch evicts local frames from memory when their files change.
// The assets tree is registered before Watch returns; events are handled until ctx is done.
func (p *Preloader) Watch(ctx context.Context) error {
	root := filepath.Clean(p.assets)

	info, err := filesystem.API().Stat(root)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch %s: not a directory", root)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	err = filesystem.API().Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return nil
		}
		return watcher.Add(path)
	})
	if err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", root, err)
	}

	log.Infof("watching %s for frame changes", root)

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, open := <-watcher.Events:
				if !open {
					return
				}
				p.handleEvent(watcher, ev)
			case err, open := <-watcher.Errors:
				if !open {
					return
				}
				log.Warnf("frame watcher: %s", err)
			}
		}
	}()

	return nil
}

func (p *Preloader) handleEvent(watcher *fsnotify.Watcher, ev fsnotify.Event) {
	if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
		return
	}

	// new subdirectories are watched too
	if ev.Has(fsnotify.Create) {
		if info, err := filesystem.API().Stat(ev.Name); err == nil && info.IsDir() {
			if err := watcher.Add(ev.Name); err != nil {
				log.Warnf("watch %s: %s", ev.Name, err)
			}
			return
		}
	}

	p.evict(filepath.Clean(ev.Name))
}
