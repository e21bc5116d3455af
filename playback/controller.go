// Package playback implements the frame playback controller: a bounded cursor stepped by a cancellable timer.
package playback

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mapreel/mapreel/constant"
	"github.com/mapreel/mapreel/frame"
	"github.com/mapreel/mapreel/log"
	"github.com/samber/mo"
)

// Preloader warms a frame before it is displayed. Warm must not block.
type Preloader interface {
	Warm(index int, url string)
}

// Options configures a Controller.
type Options struct {
	Range Range
	// Start is the initial cursor, clamped into Range. Defaults to Range.Min.
	Start mo.Option[int]
	// Interval between two ticks while playing. Defaults to one second.
	Interval  time.Duration
	Template  frame.Template
	Scheduler Scheduler
	// Preloader is optional.
	Preloader Preloader
}

// Controller owns the cursor and the playback timer.
// The cursor never leaves the range; a task is held exactly while playing.
type Controller struct {
	mu sync.Mutex

	rng      Range
	cursor   int
	interval time.Duration

	template  frame.Template
	scheduler Scheduler
	preloader Preloader

	task   Task
	run    uint64
	closed bool

	subscribers map[int]func(Event)
	nextSubID   int
}

// New creates a stopped controller.
func New(opts Options) (*Controller, error) {
	if err := opts.Range.Validate(); err != nil {
		return nil, err
	}
	if opts.Template == nil {
		return nil, errors.New("frame template is required")
	}
	if opts.Interval < 0 {
		return nil, fmt.Errorf("negative interval %s", opts.Interval)
	}

	c := &Controller{
		rng:         opts.Range,
		cursor:      opts.Range.Clamp(opts.Start.OrElse(opts.Range.Min)),
		interval:    opts.Interval,
		template:    opts.Template,
		scheduler:   opts.Scheduler,
		preloader:   opts.Preloader,
		subscribers: make(map[int]func(Event)),
	}

	if c.interval == 0 {
		c.interval = constant.DefaultInterval
	}
	if c.scheduler == nil {
		c.scheduler = TickerScheduler{}
	}

	c.mu.Lock()
	c.preloadLocked()
	c.mu.Unlock()

	return c, nil
}

// Subscribe registers fn for every subsequent event and returns a function removing it.
// Callbacks run outside the controller lock, on the goroutine that caused the event.
func (c *Controller) Subscribe(fn func(Event)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

// Cursor returns the current frame index.
func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Range returns the frame range.
func (c *Controller) Range() Range {
	return c.rng
}

// Interval returns the delay between ticks.
func (c *Controller) Interval() time.Duration {
	return c.interval
}

// Playing reports whether the timer is active.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.task != nil
}

// Snapshot returns cursor, range and play state read under a single lock.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Cursor: c.cursor, Range: c.rng, Playing: c.task != nil}
}

// Increment moves the cursor one frame forward. It reports false at the upper bound.
func (c *Controller) Increment() bool {
	return c.step(1)
}

// Decrement moves the cursor one frame back. It reports false at the lower bound.
func (c *Controller) Decrement() bool {
	return c.step(-1)
}

func (c *Controller) step(delta int) bool {
	c.mu.Lock()
	to := c.cursor + delta
	if c.closed || !c.rng.Contains(to) {
		c.mu.Unlock()
		return false
	}
	ev := c.moveLocked(to)
	c.mu.Unlock()

	c.emit(ev)
	return true
}

// Seek moves the cursor to index, clamped into the range. It reports whether the cursor changed.
func (c *Controller) Seek(index int) bool {
	c.mu.Lock()
	to := c.rng.Clamp(index)
	if c.closed || to == c.cursor {
		c.mu.Unlock()
		return false
	}
	ev := c.moveLocked(to)
	c.mu.Unlock()

	c.emit(ev)
	return true
}

// Play starts advancing the cursor every interval. It is a no-op while already playing.
func (c *Controller) Play() bool {
	c.mu.Lock()
	if c.closed || c.task != nil {
		c.mu.Unlock()
		return false
	}

	c.run++
	run := c.run
	c.task = c.scheduler.Every(c.interval, func() { c.tick(run) })
	ev := Event{Kind: Started, Cursor: c.cursor, Previous: c.cursor, Playing: true}
	c.mu.Unlock()

	log.Debugf("playback started at %d", ev.Cursor)
	c.emit(ev)
	return true
}

// Stop cancels the timer. It is a no-op while stopped.
func (c *Controller) Stop() bool {
	c.mu.Lock()
	ev, stopped := c.stopLocked(Stopped)
	c.mu.Unlock()

	if stopped {
		log.Debugf("playback stopped at %d", ev.Cursor)
		c.emit(ev)
	}
	return stopped
}

// Toggle stops a playing controller and starts a stopped one.
func (c *Controller) Toggle() {
	if !c.Stop() {
		c.Play()
	}
}

// Advance moves one frame forward, or stops playback when the cursor is already at the upper bound.
func (c *Controller) Advance() bool {
	c.mu.Lock()
	moved, events := c.advanceLocked()
	c.mu.Unlock()

	c.emit(events...)
	return moved
}

// tick is the timer callback. Ticks belonging to a cancelled run are dropped.
func (c *Controller) tick(run uint64) {
	c.mu.Lock()
	if c.task == nil || c.run != run {
		c.mu.Unlock()
		return
	}
	_, events := c.advanceLocked()
	c.mu.Unlock()

	c.emit(events...)
}

func (c *Controller) advanceLocked() (bool, []Event) {
	if c.closed {
		return false, nil
	}

	if c.cursor < c.rng.Max {
		return true, []Event{c.moveLocked(c.cursor + 1)}
	}

	if ev, stopped := c.stopLocked(Finished); stopped {
		log.Debugf("playback finished at %d", ev.Cursor)
		return false, []Event{ev}
	}

	return false, nil
}

func (c *Controller) moveLocked(to int) Event {
	prev := c.cursor
	c.cursor = to
	c.preloadLocked()
	return Event{Kind: Moved, Cursor: to, Previous: prev, Playing: c.task != nil}
}

func (c *Controller) stopLocked(kind EventKind) (Event, bool) {
	if c.task == nil {
		return Event{}, false
	}

	c.task.Cancel()
	c.task = nil
	return Event{Kind: kind, Cursor: c.cursor, Previous: c.cursor}, true
}

// CurrentImageURL renders the frame URL for the cursor.
func (c *Controller) CurrentImageURL() (string, error) {
	return c.ImageURL(c.Cursor())
}

// ImageURL renders the frame URL for index.
func (c *Controller) ImageURL(index int) (string, error) {
	if !c.rng.Contains(index) {
		return "", fmt.Errorf("frame %d is outside %s", index, c.rng)
	}
	return c.template.Render(index)
}

// Label returns the display label of the frame at index.
func (c *Controller) Label(index int) string {
	return frame.Label(c.template, index)
}

// Preload warms the frame at index ahead of display.
func (c *Controller) Preload(index int) error {
	if c.preloader == nil {
		return nil
	}

	url, err := c.ImageURL(index)
	if err != nil {
		return err
	}

	c.preloader.Warm(index, url)
	return nil
}

// preloadLocked warms the frame after the cursor.
func (c *Controller) preloadLocked() {
	next := c.cursor + 1
	if c.preloader == nil || !c.rng.Contains(next) {
		return
	}

	url, err := c.template.Render(next)
	if err != nil {
		log.Warnf("render frame %d: %s", next, err)
		return
	}

	c.preloader.Warm(next, url)
}

// Close stops playback and rejects further changes. It is safe to call more than once.
func (c *Controller) Close() error {
	c.mu.Lock()
	ev, stopped := c.stopLocked(Stopped)
	c.closed = true
	c.mu.Unlock()

	if stopped {
		c.emit(ev)
	}
	return nil
}

func (c *Controller) emit(events ...Event) {
	if len(events) == 0 {
		return
	}

	c.mu.Lock()
	subs := make([]func(Event), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, ev := range events {
		for _, fn := range subs {
			fn(ev)
		}
	}
}
