// Package demo provides the sample roster and jobs shown when no job source
// is configured.
package demo

import (
	"time"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
)

// Staff returns the demo roster in dispatch board order.
func Staff() []model.Staff {
	return []model.Staff{
		{ID: "s1", Name: "Harvey Washington", Role: model.RoleOwner, Initials: "HW", Color: "cyan"},
		{ID: "s2", Name: "Sarah Mitchell", Role: model.RoleStaff, Initials: "SM", Color: "violet"},
		{ID: "s3", Name: "James Cole", Role: model.RoleStaff, Initials: "JC", Color: "amber"},
		{ID: "s4", Name: "Priya Patel", Role: model.RoleStaff, Initials: "PP", Color: "emerald"},
		{ID: "s5", Name: "Tom Barker", Role: model.RoleContractor, Initials: "TB", Color: "rose"},
	}
}

type fixture struct {
	id, title, staff string
	start, end       string
	status, location string
}

var fixtures = []fixture{
	{"j-001", "Regular Clean – Mrs. Patterson", "s1", "08:30", "10:00", model.StatusCompleted, "14 Riverside Rd, NR1"},
	{"j-002", "Deep Clean – Dr. Okonkwo", "s1", "10:30", "13:00", model.StatusInProgress, "7 Cathedral Close, NR1"},
	{"j-003", "Regular Clean – The Rose & Crown", "s1", "14:00", "15:30", model.StatusUpcoming, "Crown Rd, NR2"},
	{"j-004", "End of Tenancy – 18 Colman Rd", "s2", "09:00", "12:00", model.StatusInProgress, "18 Colman Rd, NR4"},
	{"j-005", "Deep Clean – Blyth & Sons Ltd", "s2", "13:30", "15:30", model.StatusUpcoming, "Unit 4, Wherry Rd, NR1"},
	{"j-006", "Regular Clean – Mr. & Mrs. Chen", "s3", "08:00", "09:30", model.StatusCompleted, "22 Eaton Rd, NR4"},
	{"j-007", "Window Clean – Norwich Cathedral", "s3", "10:00", "12:30", model.StatusInProgress, "The Close, NR1 4DH"},
	{"j-008", "Carpet Clean – Ms. Adebayo", "s3", "14:00", "16:00", model.StatusUpcoming, "5 Bracondale, NR1"},
	// s4 is off for the day
	{"j-009", "Commercial Clean – Anglia Square", "s5", "07:00", "09:30", model.StatusCompleted, "Anglia Square, NR3"},
	{"j-010", "Regular Clean – Mr. Nguyen", "s5", "11:00", "12:30", model.StatusUpcoming, "44 Unthank Rd, NR2"},
}

// Jobs returns the demo jobs placed on the calendar day of day, in day's location.
func Jobs(day time.Time) []model.Job {
	jobs := make([]model.Job, 0, len(fixtures))
	for _, f := range fixtures {
		jobs = append(jobs, model.Job{
			ID:       f.id,
			Title:    f.title,
			StaffID:  f.staff,
			Start:    clockOn(day, f.start),
			End:      clockOn(day, f.end),
			Status:   f.status,
			Location: f.location,
		})
	}
	return jobs
}

func clockOn(day time.Time, hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		panic("demo: bad fixture time " + hhmm)
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, day.Location())
}
