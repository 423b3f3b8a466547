// Package theater manages the full-screen slideshow: the navigation state
// over a fixed sequence of wallpapers, the autoplay timer and the transient
// controls-visibility timer.
package theater

import (
	"sync"
	"time"

	"mugen/internal/gallery"
)

const (
	// DefaultAutoplayInterval is the pause between automatic transitions.
	DefaultAutoplayInterval = 5 * time.Second
	// DefaultControlsTimeout is how long the controls stay visible after
	// the last navigation or pointer event.
	DefaultControlsTimeout = 3 * time.Second
)

// State describes the controller's lifecycle.
type State int

const (
	// Closed means no slideshow is being presented.
	Closed State = iota
	// OpenPaused presents the sequence without automatic advancement.
	OpenPaused
	// OpenAutoplaying advances the sequence on a recurring timer.
	OpenAutoplaying
)

// Controller runs the slideshow over a sequence snapshot taken at open time.
// Later store mutations are not observed; the presented sequence stays
// frozen until the controller is closed and reopened. Safe for concurrent
// use; timer callbacks cancelled by Close or ToggleAutoplay never act on
// stale state thanks to per-timer generation counters.
type Controller struct {
	mu               sync.Mutex
	clock            Clock
	autoplayInterval time.Duration
	controlsTimeout  time.Duration
	onChange         func()

	state           State
	sequence        []gallery.Wallpaper
	index           int
	controlsVisible bool

	autoplayGen   int
	autoplayTimer Timer
	controlsGen   int
	controlsTimer Timer
}

// NewController builds a controller in the Closed state. A nil clock uses
// the real time package; non-positive durations fall back to the defaults.
func NewController(clock Clock, autoplayInterval, controlsTimeout time.Duration) *Controller {
	if clock == nil {
		clock = NewRealClock()
	}
	if autoplayInterval <= 0 {
		autoplayInterval = DefaultAutoplayInterval
	}
	if controlsTimeout <= 0 {
		controlsTimeout = DefaultControlsTimeout
	}
	return &Controller{
		clock:            clock,
		autoplayInterval: autoplayInterval,
		controlsTimeout:  controlsTimeout,
	}
}

// SetOnChange registers a callback invoked after every observable state
// change, outside the controller's lock. The UI uses it to refresh.
func (c *Controller) SetOnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Open starts presenting the given sequence at startIndex and reports
// whether the slideshow actually opened. An empty sequence is a no-op (an
// empty slideshow is never displayed); an out-of-range start index falls
// back to 0. The sequence is copied: it is a snapshot, not a live view.
func (c *Controller) Open(sequence []gallery.Wallpaper, startIndex int) bool {
	c.mu.Lock()
	if len(sequence) == 0 || c.state != Closed {
		c.mu.Unlock()
		return false
	}
	c.sequence = make([]gallery.Wallpaper, len(sequence))
	copy(c.sequence, sequence)
	if startIndex < 0 || startIndex >= len(c.sequence) {
		startIndex = 0
	}
	c.index = startIndex
	c.state = OpenPaused
	c.wakeControlsLocked()
	c.mu.Unlock()

	c.notify()
	return true
}

// Close ends the slideshow, cancelling any running timers. Idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.state == Closed {
		c.mu.Unlock()
		return
	}
	c.stopAutoplayLocked()
	c.stopControlsTimerLocked()
	c.state = Closed
	c.sequence = nil
	c.index = 0
	c.controlsVisible = false
	c.mu.Unlock()

	c.notify()
}

// Next advances to the following wallpaper, wrapping from the last index to
// 0. No-op while Closed. Always wakes the controls.
func (c *Controller) Next() { c.step(1) }

// Prev retreats to the previous wallpaper, wrapping from 0 to the last
// index. No-op while Closed. Always wakes the controls.
func (c *Controller) Prev() { c.step(-1) }

func (c *Controller) step(direction int) {
	c.mu.Lock()
	if c.state == Closed || len(c.sequence) == 0 {
		c.mu.Unlock()
		return
	}
	n := len(c.sequence)
	c.index = (c.index + direction + n) % n
	c.wakeControlsLocked()
	c.mu.Unlock()

	c.notify()
}

// ToggleAutoplay switches between OpenPaused and OpenAutoplaying. Entering
// autoplay starts the recurring advance timer; leaving it cancels the timer
// so no pending callback can fire afterwards. No-op while Closed.
func (c *Controller) ToggleAutoplay() {
	c.mu.Lock()
	switch c.state {
	case Closed:
		c.mu.Unlock()
		return
	case OpenPaused:
		c.state = OpenAutoplaying
		c.scheduleAutoplayLocked()
	case OpenAutoplaying:
		c.state = OpenPaused
		c.stopAutoplayLocked()
	}
	c.mu.Unlock()

	c.notify()
}

// PointerMoved reports pointer activity: the controls become visible and the
// hide timer restarts. No-op while Closed.
func (c *Controller) PointerMoved() {
	c.mu.Lock()
	if c.state == Closed {
		c.mu.Unlock()
		return
	}
	c.wakeControlsLocked()
	c.mu.Unlock()

	c.notify()
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Index returns the current position within the sequence.
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Len returns the length of the sequence snapshot.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sequence)
}

// Current returns the wallpaper at the current position, if open.
func (c *Controller) Current() (gallery.Wallpaper, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Closed || len(c.sequence) == 0 {
		return gallery.Wallpaper{}, false
	}
	return c.sequence[c.index], true
}

// ControlsVisible reports whether the overlay controls should be shown.
func (c *Controller) ControlsVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controlsVisible
}

// AutoplayEnabled reports whether the slideshow is advancing automatically.
func (c *Controller) AutoplayEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == OpenAutoplaying
}

func (c *Controller) notify() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// scheduleAutoplayLocked arms the next automatic advance. The generation
// counter makes cancellation total: a callback from a cancelled timer finds
// a newer generation and does nothing.
func (c *Controller) scheduleAutoplayLocked() {
	c.autoplayGen++
	gen := c.autoplayGen
	c.autoplayTimer = c.clock.AfterFunc(c.autoplayInterval, func() {
		c.autoplayFire(gen)
	})
}

func (c *Controller) autoplayFire(gen int) {
	c.mu.Lock()
	if gen != c.autoplayGen || c.state != OpenAutoplaying || len(c.sequence) == 0 {
		c.mu.Unlock()
		return
	}
	n := len(c.sequence)
	c.index = (c.index + 1) % n
	c.wakeControlsLocked()
	// Re-arm for the following slide without bumping the generation, so a
	// toggle-off between fires still cancels cleanly.
	c.autoplayTimer = c.clock.AfterFunc(c.autoplayInterval, func() {
		c.autoplayFire(gen)
	})
	c.mu.Unlock()

	c.notify()
}

func (c *Controller) stopAutoplayLocked() {
	c.autoplayGen++
	if c.autoplayTimer != nil {
		c.autoplayTimer.Stop()
		c.autoplayTimer = nil
	}
}

// wakeControlsLocked shows the controls and restarts the one-shot hide
// timer. Independent of the autoplay timer; never touches the index.
func (c *Controller) wakeControlsLocked() {
	c.controlsVisible = true
	c.stopControlsTimerLocked()
	c.controlsGen++
	gen := c.controlsGen
	c.controlsTimer = c.clock.AfterFunc(c.controlsTimeout, func() {
		c.hideControls(gen)
	})
}

func (c *Controller) hideControls(gen int) {
	c.mu.Lock()
	if gen != c.controlsGen || c.state == Closed {
		c.mu.Unlock()
		return
	}
	c.controlsVisible = false
	c.mu.Unlock()

	c.notify()
}

func (c *Controller) stopControlsTimerLocked() {
	c.controlsGen++
	if c.controlsTimer != nil {
		c.controlsTimer.Stop()
		c.controlsTimer = nil
	}
}
