package timeline

import (
	"sort"
	"sync"
	"time"

	"github.com/matzehuels/svgreveal/pkg/dom"
)

// Clock is a virtual animation host for the shapes under a root element.
//
// It reads each shape's inline animation shorthand and play state, advances
// animations on virtual time, and dispatches animationend when a finite
// animation completes. It also schedules callbacks on the same virtual time,
// so it can stand in for a wall clock wherever delayed work is queued.
//
// Advance must not be called concurrently.
type Clock struct {
	root *dom.Element

	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	tasks []task

	tracks map[*dom.Element]*track
}

type task struct {
	at  time.Duration
	seq uint64
	fn  func()
}

type track struct {
	shorthand string
	anim      Shorthand
	active    bool
	paused    bool
	elapsed   time.Duration
	ended     bool
}

// NewClock creates a clock at time zero watching the shapes under root.
func NewClock(root *dom.Element) *Clock {
	return &Clock{root: root, tracks: make(map[*dom.Element]*track)}
}

// Now returns the current virtual time.
func (c *Clock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc schedules fn to run once d of virtual time has passed.
func (c *Clock) AfterFunc(d time.Duration, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.tasks = append(c.tasks, task{at: c.now + d, seq: c.seq, fn: fn})
}

// Pending returns the number of scheduled callbacks that have not run.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tasks)
}

// Advance moves virtual time forward by d, running due callbacks in time
// order and dispatching completion events along the way.
func (c *Clock) Advance(d time.Duration) {
	target := c.Now() + d
	for {
		t, ok := c.popDue(target)
		if !ok {
			break
		}
		c.step(t.at)
		t.fn()
	}
	c.step(target)
}

func (c *Clock) popDue(limit time.Duration) (task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.tasks) == 0 {
		return task{}, false
	}
	sort.Slice(c.tasks, func(i, j int) bool {
		if c.tasks[i].at != c.tasks[j].at {
			return c.tasks[i].at < c.tasks[j].at
		}
		return c.tasks[i].seq < c.tasks[j].seq
	})
	if c.tasks[0].at > limit {
		return task{}, false
	}
	t := c.tasks[0]
	c.tasks = c.tasks[1:]
	return t, true
}

type pending struct {
	el *dom.Element
	ev dom.Event
}

// step brings every watched animation up to time t.
func (c *Clock) step(t time.Duration) {
	c.mu.Lock()
	from := c.now
	if t < from {
		t = from
	}
	c.now = t
	c.mu.Unlock()

	var events []pending
	for _, el := range c.root.QueryAll(dom.ShapeTags...) {
		tr := c.sync(el)
		if !tr.active || tr.ended {
			continue
		}
		if !tr.paused {
			tr.elapsed += t - from
		}
		end, finite := tr.anim.End()
		if finite && tr.elapsed >= end {
			tr.ended = true
			events = append(events, pending{el, dom.Event{
				Type:          dom.EventAnimationEnd,
				AnimationName: tr.anim.Name,
				ElapsedTime:   (end - tr.anim.Delay).Seconds(),
				Target:        el,
			}})
		}
	}
	for _, p := range events {
		p.el.DispatchEvent(p.ev)
	}
}

// sync reconciles the track of el with its current inline style. A changed
// shorthand restarts the animation.
func (c *Clock) sync(el *dom.Element) *track {
	style := el.Style()
	sh := style.GetPropertyValue("animation")

	tr, ok := c.tracks[el]
	if !ok || tr.shorthand != sh {
		tr = &track{shorthand: sh}
		if parsed, err := ParseShorthand(sh); err == nil {
			tr.anim, tr.active = parsed, true
		}
		c.tracks[el] = tr
	}
	tr.paused = style.GetPropertyValue("animation-play-state") == "paused"
	return tr
}

// State is the playback position of one element.
type State struct {
	Name      string
	Iteration int
	Fraction  float64
	Paused    bool
	Ended     bool
}

// Progress reports where the animation of el stands as of the last step.
// The second result is false when el has no running animation.
func (c *Clock) Progress(el *dom.Element) (State, bool) {
	tr, ok := c.tracks[el]
	if !ok || !tr.active {
		return State{}, false
	}
	st := State{Name: tr.anim.Name, Paused: tr.paused, Ended: tr.ended}
	active := tr.elapsed - tr.anim.Delay
	if active <= 0 {
		return st, true
	}
	if tr.ended {
		st.Iteration, st.Fraction = tr.anim.Count-1, 1
		return st, true
	}
	st.Iteration = int(active / tr.anim.Duration)
	st.Fraction = float64(active%tr.anim.Duration) / float64(tr.anim.Duration)
	return st, true
}
