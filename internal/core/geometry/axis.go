// Package geometry maps clock times onto a bounded one-dimensional display axis.
package geometry

import (
	"fmt"
	"time"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
)

// Axis projects instants of a window onto [0, TotalLength()] at a fixed scale.
type Axis struct {
	Window       model.Window
	ScalePerHour float64
	MinLength    float64
}

// NewAxis builds an axis over window. An empty or inverted window, a
// non-positive scale or a negative minimum length is a programming error
// and panics.
func NewAxis(window model.Window, scalePerHour, minLength float64) Axis {
	if err := window.Validate(); err != nil {
		panic(fmt.Sprintf("geometry: %v", err))
	}
	if scalePerHour <= 0 {
		panic(fmt.Sprintf("geometry: scale must be positive, got %v", scalePerHour))
	}
	if minLength < 0 {
		panic(fmt.Sprintf("geometry: minimum length must not be negative, got %v", minLength))
	}
	return Axis{Window: window, ScalePerHour: scalePerHour, MinLength: minLength}
}

// TotalLength is the length of the whole window on the axis.
func (a Axis) TotalLength() float64 {
	return a.Window.Duration().Hours() * a.ScalePerHour
}

// Clamp pins t to the window edges.
func (a Axis) Clamp(t time.Time) time.Time {
	if t.Before(a.Window.Start) {
		return a.Window.Start
	}
	if t.After(a.Window.End) {
		return a.Window.End
	}
	return t
}

// Contains reports whether t lies inside the window, edges included.
func (a Axis) Contains(t time.Time) bool {
	return a.Window.Contains(t)
}

// PositionOf returns the coordinate of t. Times outside the window map to
// the nearest edge so partially visible jobs are truncated, not dropped.
func (a Axis) PositionOf(t time.Time) float64 {
	return a.Clamp(t).Sub(a.Window.Start).Hours() * a.ScalePerHour
}

// LengthOf returns the clamped extent of [start, end), never shorter than
// MinLength so short jobs stay clickable.
func (a Axis) LengthOf(start, end time.Time) float64 {
	length := a.PositionOf(end) - a.PositionOf(start)
	if length < a.MinLength {
		return a.MinLength
	}
	return length
}
