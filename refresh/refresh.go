// ABOUTME: Cache-invalidation coordinator for post-mutation and refocus refreshes
// ABOUTME: Debounces ambient triggers and staggers invalidations to avoid request bursts

package refresh

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

const (
	// debounceWindow drops non-forced triggers arriving within 5s of the
	// last run.
	debounceWindow = 5 * time.Second
	// settleDelay lets navigation finish before a visibility-change refresh.
	settleDelay = time.Second

	explicitStagger = 200 * time.Millisecond
	patternDelay    = 500 * time.Millisecond
	patternStagger  = 300 * time.Millisecond
)

// Scheduler runs an action after a delay. Production uses timers; tests
// inject a virtual clock so the stagger ladder is assertable without waiting.
type Scheduler interface {
	Schedule(d time.Duration, fn func())
}

type timerScheduler struct{}

func (timerScheduler) Schedule(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// Invalidator clears one query group, addressed by cache key prefix.
type Invalidator interface {
	Invalidate(prefix string)
}

// Coordinator keeps UI-visible lists consistent shortly after mutations,
// navigation, and tab refocus. It is fire-and-forget: invalidation never
// surfaces an error, each invalidated query refetches and reports its own.
type Coordinator struct {
	inv      Invalidator
	sched    Scheduler
	limiter  *rate.Limiter
	patterns []string
}

// New creates a coordinator. patterns are the broader query groups
// invalidated in the second phase of every run.
func New(inv Invalidator, patterns []string) *Coordinator {
	return newWithScheduler(inv, patterns, timerScheduler{})
}

func newWithScheduler(inv Invalidator, patterns []string, sched Scheduler) *Coordinator {
	return &Coordinator{
		inv:      inv,
		sched:    sched,
		limiter:  rate.NewLimiter(rate.Every(debounceWindow), 1),
		patterns: patterns,
	}
}

// Refresh schedules a two-phase invalidation: the explicit groups first,
// staggered 200ms apart, then the broader pattern groups from 500ms on,
// staggered 300ms apart. Non-forced calls inside the debounce window are
// dropped. Reports whether a run was scheduled.
func (c *Coordinator) Refresh(groups []string, force bool) bool {
	if !force {
		if !c.limiter.Allow() {
			slog.Debug("Refresh debounced", "groups", len(groups))
			return false
		}
	} else {
		// Forced runs bypass the debounce but still consume the window so
		// ambient triggers right after a mutation stay quiet.
		_ = c.limiter.Allow()
	}

	for i, group := range groups {
		group := group
		c.sched.Schedule(time.Duration(i)*explicitStagger, func() {
			c.inv.Invalidate(group)
		})
	}
	for i, pattern := range c.patterns {
		pattern := pattern
		c.sched.Schedule(patternDelay+time.Duration(i)*patternStagger, func() {
			c.inv.Invalidate(pattern)
		})
	}

	slog.Debug("Refresh scheduled", "groups", len(groups), "patterns", len(c.patterns), "forced", force)
	return true
}

// OnVisibilityChange handles tab refocus: a gentle refresh after a settle
// delay so rapid tab switches collapse into the debounce window.
func (c *Coordinator) OnVisibilityChange() {
	c.sched.Schedule(settleDelay, func() {
		c.Refresh(nil, false)
	})
}

// OnFocus handles window focus with a gentle, debounced refresh.
func (c *Coordinator) OnFocus() {
	c.Refresh(nil, false)
}

// OnMount forces a refresh of the given groups for views that opt in.
func (c *Coordinator) OnMount(groups ...string) {
	c.Refresh(groups, true)
}

// OnMutationSuccess forces a refresh after a successful write.
func (c *Coordinator) OnMutationSuccess(groups ...string) {
	c.Refresh(groups, true)
}
