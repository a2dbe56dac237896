// Package nowline tracks where the current time falls on a schedule axis.
package nowline

import (
	"context"
	"sync"
	"time"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/constants"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/geometry"
)

// Clock supplies the current time. util.TimeProvider satisfies it.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Position is where the current-time line sits on an axis.
type Position struct {
	Offset  float64
	Visible bool
	At      time.Time
}

// Indicator tracks the current-time line for one axis.
type Indicator struct {
	Axis     geometry.Axis
	Clock    Clock
	Interval time.Duration

	mu   sync.RWMutex
	last Position
}

// New creates an indicator refreshing at the default one minute interval.
func New(axis geometry.Axis, clock Clock) *Indicator {
	return &Indicator{Axis: axis, Clock: clock, Interval: constants.NowIndicatorInterval}
}

// Compute places now on the axis. The line is hidden outside the window.
func (ind *Indicator) Compute() Position {
	ind.mu.Lock()
	defer ind.mu.Unlock()

	now := ind.Clock.Now()
	pos := Position{At: now, Visible: ind.Axis.Contains(now)}
	if pos.Visible {
		pos.Offset = ind.Axis.PositionOf(now)
	}
	ind.last = pos
	return pos
}

// Last returns the most recently computed position.
func (ind *Indicator) Last() Position {
	ind.mu.RLock()
	defer ind.mu.RUnlock()
	return ind.last
}

// SetAxis swaps the axis, e.g. after navigating to another day.
func (ind *Indicator) SetAxis(axis geometry.Axis) {
	ind.mu.Lock()
	ind.Axis = axis
	ind.mu.Unlock()
}

// Run computes the position immediately and then on every tick until ctx is
// done. onTick may be nil.
func (ind *Indicator) Run(ctx context.Context, onTick func(Position)) {
	interval := ind.Interval
	if interval <= 0 {
		interval = constants.NowIndicatorInterval
	}

	ind.emit(onTick)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ind.emit(onTick)
		}
	}
}

func (ind *Indicator) emit(onTick func(Position)) {
	pos := ind.Compute()
	if onTick != nil {
		onTick(pos)
	}
}
