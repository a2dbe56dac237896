package model

import (
	"fmt"
	"time"
)

// Window is the visible time range a layout is computed against.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DayWindow returns the window [startHour, endHour) on the calendar day of day,
// in day's location.
func DayWindow(day time.Time, startHour, endHour int) Window {
	y, m, d := day.Date()
	loc := day.Location()
	return Window{
		Start: time.Date(y, m, d, startHour, 0, 0, 0, loc),
		End:   time.Date(y, m, d, endHour, 0, 0, 0, loc),
	}
}

// Validate returns an error when the window is empty or inverted.
func (w Window) Validate() error {
	if !w.End.After(w.Start) {
		return fmt.Errorf("%w: window %s - %s", ErrInvalidWindow,
			w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
	}
	return nil
}

// Duration returns the window length.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Contains reports whether t lies within the closed window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Intersects reports whether the job shares any instant with the window.
func (w Window) Intersects(j Job) bool {
	return j.Start.Before(w.End) && w.Start.Before(j.End)
}
