package theater

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mugen/internal/gallery"
)

// fakeClock drives AfterFunc callbacks synchronously from Advance.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock    *fakeClock
	deadline time.Time
	fn       func()
	stopped  bool
	fired    bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(0, 0)}
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, deadline: c.now.Add(d), fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := !t.stopped && !t.fired
	t.stopped = true
	return was
}

// Advance moves the clock forward, firing due timers in deadline order.
// Callbacks run outside the clock lock so they may schedule new timers.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		var next *fakeTimer
		for _, t := range c.timers {
			if t.stopped || t.fired || t.deadline.After(target) {
				continue
			}
			if next == nil || t.deadline.Before(next.deadline) {
				next = t
			}
		}
		if next == nil {
			break
		}
		if c.now.Before(next.deadline) {
			c.now = next.deadline
		}
		next.fired = true
		fn := next.fn
		c.mu.Unlock()
		fn()
		c.mu.Lock()
	}
	c.now = target
	// Drop consumed timers.
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	c.timers = live
	c.mu.Unlock()
}

func (c *fakeClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func sequenceOf(n int) []gallery.Wallpaper {
	seq := make([]gallery.Wallpaper, n)
	for i := range seq {
		seq[i] = gallery.Wallpaper{ID: string(rune('a' + i)), Title: "w"}
	}
	return seq
}

func newTestController(t *testing.T) (*Controller, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	return NewController(clock, 0, 0), clock
}

func TestOpenEmptySequenceStaysClosed(t *testing.T) {
	c, _ := newTestController(t)
	assert.False(t, c.Open(nil, 0))
	assert.Equal(t, Closed, c.State())
	_, ok := c.Current()
	assert.False(t, ok)
}

func TestOpenOutOfRangeIndexFallsBackToZero(t *testing.T) {
	for _, start := range []int{-1, 3, 99} {
		c, _ := newTestController(t)
		require.True(t, c.Open(sequenceOf(3), start))
		assert.Equal(t, 0, c.Index(), "start %d", start)
		assert.Equal(t, OpenPaused, c.State())
	}
}

func TestOpenValidIndex(t *testing.T) {
	c, _ := newTestController(t)
	require.True(t, c.Open(sequenceOf(3), 2))
	assert.Equal(t, 2, c.Index())
	cur, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "c", cur.ID)
}

func TestNextAndPrevWrap(t *testing.T) {
	c, _ := newTestController(t)
	require.True(t, c.Open(sequenceOf(3), 2))

	c.Next()
	assert.Equal(t, 0, c.Index(), "next from the last index wraps to 0")

	c.Prev()
	assert.Equal(t, 2, c.Index(), "prev from 0 wraps to the last index")
}

func TestSingleElementSequence(t *testing.T) {
	c, _ := newTestController(t)
	require.True(t, c.Open(sequenceOf(1), 0))
	c.Next()
	assert.Equal(t, 0, c.Index())
	c.Prev()
	assert.Equal(t, 0, c.Index())
}

func TestNavigationWhileClosedIsNoop(t *testing.T) {
	c, _ := newTestController(t)
	c.Next()
	c.Prev()
	c.ToggleAutoplay()
	c.PointerMoved()
	assert.Equal(t, Closed, c.State())
	assert.Equal(t, 0, c.Index())
}

func TestAutoplayAdvances(t *testing.T) {
	c, clock := newTestController(t)
	require.True(t, c.Open(sequenceOf(3), 0))

	c.ToggleAutoplay()
	require.Equal(t, OpenAutoplaying, c.State())
	assert.True(t, c.AutoplayEnabled())

	clock.Advance(DefaultAutoplayInterval)
	assert.Equal(t, 1, c.Index())

	clock.Advance(2 * DefaultAutoplayInterval)
	assert.Equal(t, 0, c.Index(), "autoplay wraps like Next")
}

func TestAutoplayCancellationIsTotal(t *testing.T) {
	c, clock := newTestController(t)
	require.True(t, c.Open(sequenceOf(3), 0))

	c.ToggleAutoplay()
	c.ToggleAutoplay() // off again before the first fire
	require.Equal(t, OpenPaused, c.State())

	clock.Advance(10 * DefaultAutoplayInterval)
	assert.Equal(t, 0, c.Index(), "no pending timer may invoke Next after cancellation")
}

func TestCloseCancelsAutoplay(t *testing.T) {
	c, clock := newTestController(t)
	require.True(t, c.Open(sequenceOf(3), 1))
	c.ToggleAutoplay()

	c.Close()
	assert.Equal(t, Closed, c.State())

	clock.Advance(10 * DefaultAutoplayInterval)
	assert.Equal(t, Closed, c.State())
	assert.Equal(t, 0, c.Index())
}

func TestCloseIsIdempotent(t *testing.T) {
	c, _ := newTestController(t)
	require.True(t, c.Open(sequenceOf(2), 0))
	c.Close()
	c.Close()
	assert.Equal(t, Closed, c.State())
}

func TestControlsHideAfterTimeout(t *testing.T) {
	c, clock := newTestController(t)
	require.True(t, c.Open(sequenceOf(2), 0))
	assert.True(t, c.ControlsVisible(), "opening wakes the controls")

	clock.Advance(DefaultControlsTimeout)
	assert.False(t, c.ControlsVisible())

	c.PointerMoved()
	assert.True(t, c.ControlsVisible())
	clock.Advance(DefaultControlsTimeout - time.Second)
	assert.True(t, c.ControlsVisible(), "controls stay up before the timeout")
	clock.Advance(time.Second)
	assert.False(t, c.ControlsVisible())
}

func TestNavigationRestartsControlsTimer(t *testing.T) {
	c, clock := newTestController(t)
	require.True(t, c.Open(sequenceOf(3), 0))

	clock.Advance(DefaultControlsTimeout - time.Second)
	c.Next()
	clock.Advance(DefaultControlsTimeout - time.Second)
	assert.True(t, c.ControlsVisible(), "Next restarted the hide timer")
	clock.Advance(time.Second)
	assert.False(t, c.ControlsVisible())
}

func TestControlsTimerIndependentOfAutoplay(t *testing.T) {
	c, clock := newTestController(t)
	require.True(t, c.Open(sequenceOf(5), 0))
	c.ToggleAutoplay()

	clock.Advance(DefaultControlsTimeout)
	assert.False(t, c.ControlsVisible())
	assert.Equal(t, 0, c.Index(), "hiding controls never moves the index")

	clock.Advance(DefaultAutoplayInterval - DefaultControlsTimeout)
	assert.Equal(t, 1, c.Index())
	assert.True(t, c.ControlsVisible(), "autoplay advance wakes the controls")
}

func TestSequenceIsASnapshot(t *testing.T) {
	c, _ := newTestController(t)
	seq := sequenceOf(2)
	require.True(t, c.Open(seq, 0))

	seq[0].Title = "mutated"
	cur, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "w", cur.Title, "later mutations of the caller's slice are not observed")
}

func TestCloseLeavesNoPendingTimers(t *testing.T) {
	c, clock := newTestController(t)
	require.True(t, c.Open(sequenceOf(3), 0))
	c.ToggleAutoplay()
	c.Close()
	clock.Advance(time.Hour)
	assert.Zero(t, clock.pending())
}

func TestOnChangeNotifications(t *testing.T) {
	c, clock := newTestController(t)
	var mu sync.Mutex
	var events []int
	c.SetOnChange(func() {
		mu.Lock()
		events = append(events, c.Index())
		mu.Unlock()
	})

	require.True(t, c.Open(sequenceOf(3), 0))
	c.Next()
	c.ToggleAutoplay()
	clock.Advance(DefaultAutoplayInterval)
	c.Close()

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(events), 4)
	assert.True(t, sort.IntsAreSorted(events[:3]), "open, next, toggle observed in order")
}
