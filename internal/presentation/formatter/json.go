package formatter

import (
	"io"
	"time"

	"github.com/bytedance/sonic"
)

type JSONFormatter struct {
	w io.Writer
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w}
}

type jsonReport struct {
	View         string         `json:"view"`
	Date         string         `json:"date"`
	Range        string         `json:"range"`
	WindowStart  *time.Time     `json:"window_start,omitempty"`
	WindowEnd    *time.Time     `json:"window_end,omitempty"`
	Orientation  string         `json:"orientation,omitempty"`
	TotalLength  float64        `json:"total_length,omitempty"`
	Jobs         []jsonJob      `json:"jobs"`
	Month        []jsonDay      `json:"month,omitempty"`
	Invalid      []InvalidRow   `json:"invalid"`
	StatusCounts map[string]int `json:"status_counts"`
	Now          *float64       `json:"now_offset,omitempty"`
	Scroll       float64        `json:"scroll_offset,omitempty"`
}

type jsonJob struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	StaffID      string    `json:"staff_id"`
	StaffName    string    `json:"staff_name"`
	Start        time.Time `json:"start_time"`
	End          time.Time `json:"end_time"`
	Status       string    `json:"status"`
	Location     string    `json:"location"`
	Row          int       `json:"row"`
	Day          int       `json:"day"`
	Offset       float64   `json:"offset"`
	Length       float64   `json:"length"`
	Column       int       `json:"column"`
	TotalColumns int       `json:"total_columns"`
	Left         float64   `json:"left"`
	Width        float64   `json:"width"`
	LeftInset    float64   `json:"left_inset"`
	WidthInset   float64   `json:"width_inset"`
}

type jsonDay struct {
	Date     string   `json:"date"`
	InMonth  bool     `json:"in_month"`
	Today    bool     `json:"today"`
	JobIDs   []string `json:"job_ids"`
	Overflow int      `json:"overflow"`
}

func (f *JSONFormatter) Format(report *Report) error {
	out := jsonReport{
		View:         report.View,
		Date:         report.Date.Format("2006-01-02"),
		Range:        report.RangeLabel,
		Orientation:  string(report.Orientation),
		TotalLength:  report.TotalLength,
		Jobs:         make([]jsonJob, 0, len(report.Rows)),
		Invalid:      report.Invalid,
		StatusCounts: report.StatusCounts,
		Scroll:       report.Scroll,
	}
	if out.Invalid == nil {
		out.Invalid = []InvalidRow{}
	}
	if !report.Window.Start.IsZero() {
		start, end := report.Window.Start, report.Window.End
		out.WindowStart, out.WindowEnd = &start, &end
	}
	if report.NowVisible {
		offset := report.NowOffset
		out.Now = &offset
	}

	for _, row := range report.Rows {
		out.Jobs = append(out.Jobs, jsonJob{
			ID:           row.Job.ID,
			Title:        row.Job.Title,
			StaffID:      row.Job.StaffID,
			StaffName:    row.StaffName,
			Start:        row.Job.Start,
			End:          row.Job.End,
			Status:       row.Job.Status,
			Location:     row.Job.Location,
			Row:          row.Rect.Row,
			Day:          row.Rect.Day,
			Offset:       row.Rect.Offset,
			Length:       row.Rect.Length,
			Column:       row.Rect.Column,
			TotalColumns: row.Rect.TotalColumns,
			Left:         row.Rect.Left,
			Width:        row.Rect.Width,
			LeftInset:    row.Rect.LeftInset,
			WidthInset:   row.Rect.WidthInset,
		})
	}

	for _, cell := range report.Month {
		ids := cell.JobIDs
		if ids == nil {
			ids = []string{}
		}
		out.Month = append(out.Month, jsonDay{
			Date:     cell.Date.Format("2006-01-02"),
			InMonth:  cell.InMonth,
			Today:    cell.Today,
			JobIDs:   ids,
			Overflow: cell.Overflow,
		})
	}

	data, err := sonic.ConfigStd.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = f.w.Write(data)
	return err
}
