// Package ics imports jobs from iCalendar files and expands recurring jobs.
package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"

	ical "github.com/arran4/golang-ical"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

// Custom VEVENT properties carrying dispatch data.
const (
	PropertyStaffID   ical.ComponentProperty = "X-NORFOLK-STAFF-ID"
	PropertyJobStatus ical.ComponentProperty = "X-NORFOLK-STATUS"
	// PropertyLane is written on export only, as "column/total".
	PropertyLane ical.ComponentProperty = "X-NORFOLK-LANE"
)

// Parse reads a calendar and converts every VEVENT into a job. Events that
// cannot be converted are logged and skipped.
func Parse(r io.Reader) ([]model.Job, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	events := cal.Events()
	jobs := make([]model.Job, 0, len(events))
	for _, ev := range events {
		job, err := jobFromEvent(ev)
		if err != nil {
			util.LogDebugf("Skip calendar event: %v", err)
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func jobFromEvent(ev *ical.VEvent) (model.Job, error) {
	var job model.Job

	uid := propertyValue(ev, ical.ComponentPropertyUniqueId)
	if uid == "" {
		return job, errors.New("missing UID")
	}
	job.ID = uid

	start, err := ev.GetStartAt()
	if err != nil {
		return job, fmt.Errorf("event %s: DTSTART: %w", uid, err)
	}
	end, err := ev.GetEndAt()
	if err != nil {
		return job, fmt.Errorf("event %s: DTEND: %w", uid, err)
	}
	job.Start, job.End = start, end

	job.Title = propertyValue(ev, ical.ComponentPropertySummary)
	job.Location = propertyValue(ev, ical.ComponentPropertyLocation)
	job.StaffID = propertyValue(ev, PropertyStaffID)
	job.RRule = propertyValue(ev, ical.ComponentPropertyRrule)
	job.Status = eventStatus(ev)

	return job, nil
}

// eventStatus prefers the dispatch status and falls back to STATUS.
func eventStatus(ev *ical.VEvent) string {
	if s := strings.ToLower(propertyValue(ev, PropertyJobStatus)); model.IsKnownStatus(s) {
		return s
	}
	if strings.EqualFold(propertyValue(ev, ical.ComponentPropertyStatus), "CANCELLED") {
		return model.StatusCancelled
	}
	return model.StatusUpcoming
}

func propertyValue(ev *ical.VEvent, prop ical.ComponentProperty) string {
	if p := ev.GetProperty(prop); p != nil {
		return strings.TrimSpace(p.Value)
	}
	return ""
}
