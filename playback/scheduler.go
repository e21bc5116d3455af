package playback

import (
	"sync"
	"time"
)

// Task is a handle on a repeating callback. Cancel is idempotent.
type Task interface {
	Cancel()
}

// Scheduler starts repeating callbacks.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Task
}

// TickerScheduler runs callbacks on a time.Ticker in a dedicated goroutine.
type TickerScheduler struct{}

func (TickerScheduler) Every(interval time.Duration, fn func()) Task {
	t := &tickerTask{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go t.loop(fn)
	return t
}

type tickerTask struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *tickerTask) loop(fn func()) {
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			fn()
		}
	}
}

func (t *tickerTask) Cancel() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}
