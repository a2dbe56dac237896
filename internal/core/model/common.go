package model

// Job status identifiers
const (
	StatusCompleted  = "completed"
	StatusInProgress = "in_progress"
	StatusUpcoming   = "upcoming"
	StatusCancelled  = "cancelled"
)

// Statuses lists the job statuses in display order.
var Statuses = []string{StatusCompleted, StatusInProgress, StatusUpcoming, StatusCancelled}

// Orientation of the main (time) axis of a layout
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Staff roles
const (
	RoleOwner      = "Owner"
	RoleStaff      = "Staff"
	RoleContractor = "Contractor"
)

// StatusLabel returns the human readable label for a job status.
func StatusLabel(status string) string {
	switch status {
	case StatusCompleted:
		return "Completed"
	case StatusInProgress:
		return "In Progress"
	case StatusUpcoming:
		return "Upcoming"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// IsKnownStatus reports whether status is one of the job status identifiers.
func IsKnownStatus(status string) bool {
	switch status {
	case StatusCompleted, StatusInProgress, StatusUpcoming, StatusCancelled:
		return true
	}
	return false
}
