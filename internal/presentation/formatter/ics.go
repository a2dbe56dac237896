package formatter

import (
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/layout"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/data/ics"
)

// ICSFormatter exports the laid out jobs as an iCalendar feed. Jobs the
// layout rejected are left out.
type ICSFormatter struct {
	w io.Writer
}

func NewICSFormatter(w io.Writer) *ICSFormatter {
	return &ICSFormatter{w: w}
}

func (f *ICSFormatter) Format(report *Report) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//Norfolk Cleaners//Schedule//EN")

	stamp := report.Generated
	if stamp.IsZero() {
		stamp = time.Now()
	}

	for _, row := range exportRows(report) {
		job := row.Job
		event := cal.AddEvent(job.ID)
		event.SetDtStampTime(stamp)
		event.SetStartAt(job.Start)
		event.SetEndAt(job.End)
		event.SetSummary(job.Title)
		if job.Location != "" {
			event.SetLocation(job.Location)
		}
		event.SetProperty(ics.PropertyStaffID, job.StaffID)
		event.SetProperty(ics.PropertyJobStatus, job.Status)
		if job.Status == model.StatusCancelled {
			event.SetProperty(ical.ComponentPropertyStatus, "CANCELLED")
		}
		if row.Rect.TotalColumns > 0 {
			event.SetProperty(ics.PropertyLane, row.Lane())
		}
		if job.RRule != "" {
			event.SetProperty(ical.ComponentPropertyRrule, job.RRule)
		}
	}

	_, err := io.WriteString(f.w, cal.Serialize())
	return err
}

// exportRows returns the placed rows. The month view places nothing, so its
// valid jobs are exported without a lane.
func exportRows(report *Report) []Row {
	if report.View != string(layout.ViewMonth) {
		return report.Rows
	}

	valid, _ := layout.Validate(report.Jobs)
	rows := make([]Row, 0, len(valid))
	for _, job := range valid {
		rows = append(rows, Row{Job: job})
	}
	return rows
}
