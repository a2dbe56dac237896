package formatter

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

func (f *CSVFormatter) Format(report *Report) error {
	w := csv.NewWriter(f.w)

	headers := []string{
		"id", "title", "staff_id", "staff_name", "start_time", "end_time", "status", "location",
		"row", "day", "offset", "length", "column", "total_columns", "left", "width",
	}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, row := range report.Rows {
		record := []string{
			row.Job.ID,
			row.Job.Title,
			row.Job.StaffID,
			row.StaffName,
			row.Job.Start.Format(time.RFC3339),
			row.Job.End.Format(time.RFC3339),
			row.Job.Status,
			row.Job.Location,
			strconv.Itoa(row.Rect.Row),
			strconv.Itoa(row.Rect.Day),
			formatFloat(row.Rect.Offset),
			formatFloat(row.Rect.Length),
			strconv.Itoa(row.Rect.Column),
			strconv.Itoa(row.Rect.TotalColumns),
			formatFloat(row.Rect.Left),
			formatFloat(row.Rect.Width),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
