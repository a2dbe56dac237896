package model

import (
	"strings"
	"time"
)

// titleSeparator splits "Job Type – Customer" titles
const titleSeparator = "–"

// Job is a time-ranged unit of work assigned to one staff member.
type Job struct {
	ID       string    `json:"id" validate:"required"`
	Title    string    `json:"title"`
	StaffID  string    `json:"staff_id" validate:"required"`
	Start    time.Time `json:"start_time"`
	End      time.Time `json:"end_time" validate:"gtfield=Start"`
	Status   string    `json:"status"`
	Location string    `json:"location"`

	// RRule is an optional RFC 5545 recurrence rule; Start/End describe
	// the first occurrence.
	RRule string `json:"rrule,omitempty"`
}

// Duration returns the job length. Invalid ranges give zero or negative values.
func (j Job) Duration() time.Duration {
	return j.End.Sub(j.Start)
}

// Overlaps reports whether two jobs share any instant. Ranges are half-open,
// so a job ending at 10:00 does not overlap one starting at 10:00.
func (j Job) Overlaps(other Job) bool {
	return j.Start.Before(other.End) && other.Start.Before(j.End)
}

// JobType returns the part of the title before the separator, e.g. "Deep Clean".
func (j Job) JobType() string {
	if idx := strings.Index(j.Title, titleSeparator); idx >= 0 {
		return strings.TrimSpace(j.Title[:idx])
	}
	return j.Title
}

// Customer returns the part of the title after the separator, or "".
func (j Job) Customer() string {
	if idx := strings.Index(j.Title, titleSeparator); idx >= 0 {
		return strings.TrimSpace(j.Title[idx+len(titleSeparator):])
	}
	return ""
}

// ShortLocation returns the first comma separated part of the location.
func (j Job) ShortLocation() string {
	if idx := strings.Index(j.Location, ","); idx >= 0 {
		return strings.TrimSpace(j.Location[:idx])
	}
	return j.Location
}

// Staff is a resource row on the dispatch board.
type Staff struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Role     string `json:"role" yaml:"role"`
	Initials string `json:"initials" yaml:"initials"`
	Color    string `json:"color" yaml:"color"`
}

// DisplayInitials returns Initials or derives them from Name.
func (s Staff) DisplayInitials() string {
	if s.Initials != "" {
		return s.Initials
	}
	var b strings.Builder
	for _, part := range strings.Fields(s.Name) {
		first := []rune(part)[0]
		b.WriteString(strings.ToUpper(string(first)))
	}
	return b.String()
}
