package formatter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

type TableFormatter struct {
	w       io.Writer
	headers []string
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		w: w,
		headers: []string{
			"Date", "Staff", "Time", "Duration", "Job", "Status", "Lane", "Offset", "Length",
		},
	}
}

func (f *TableFormatter) Format(report *Report) error {
	fmt.Fprintln(f.w, util.FormatHeaderTitle(report.RangeLabel))

	if report.View == "month" {
		return f.formatMonth(report)
	}

	rows := make([][]string, 0, len(report.Rows)+1)
	for _, row := range report.Rows {
		rows = append(rows, []string{
			row.Job.Start.Format("Mon 02 Jan"),
			row.StaffName,
			util.FormatTimeRange(row.Job.Start, row.Job.End),
			util.FormatDuration(row.Job.Duration()),
			row.Job.Title,
			model.StatusLabel(row.Job.Status),
			row.Lane(),
			strconv.FormatFloat(row.Rect.Offset, 'f', 0, 64),
			strconv.FormatFloat(row.Rect.Length, 'f', 0, 64),
		})
	}
	total := []string{"Total", fmt.Sprintf("%d jobs", len(report.Rows)), "", "", "", "", "", "", ""}

	widths := f.calculateColumnWidths(append(rows, total))
	f.printBorder(widths, "top")
	f.printRow(f.headers, widths)
	f.printBorder(widths, "middle")
	for _, row := range rows {
		f.printRow(row, widths)
	}
	f.printBorder(widths, "middle")
	f.printRow(total, widths)
	f.printBorder(widths, "bottom")

	f.printInvalid(report.Invalid)
	return nil
}

func (f *TableFormatter) formatMonth(report *Report) error {
	jobs := JobIndex(report.Jobs)
	headers := []string{"Date", "Jobs", "More"}

	var rows [][]string
	for _, cell := range report.Month {
		if !cell.InMonth || (len(cell.JobIDs) == 0 && cell.Overflow == 0) {
			continue
		}
		titles := make([]string, 0, len(cell.JobIDs))
		for _, id := range cell.JobIDs {
			job := jobs[id]
			titles = append(titles, util.FormatClock(job.Start)+" "+job.JobType())
		}
		more := ""
		if cell.Overflow > 0 {
			more = fmt.Sprintf("+%d", cell.Overflow)
		}
		date := cell.Date.Format("Mon 02 Jan")
		if cell.Today {
			date += " *"
		}
		rows = append(rows, []string{date, strings.Join(titles, ", "), more})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = util.GetDisplayWidth(h)
	}
	for _, row := range rows {
		for i, v := range row {
			if w := util.GetDisplayWidth(v); w > widths[i] {
				widths[i] = w
			}
		}
	}

	f.printBorder(widths, "top")
	f.printRow(headers, widths)
	f.printBorder(widths, "middle")
	for _, row := range rows {
		f.printRow(row, widths)
	}
	f.printBorder(widths, "bottom")
	return nil
}

func (f *TableFormatter) printInvalid(invalid []InvalidRow) {
	if len(invalid) == 0 {
		return
	}
	fmt.Fprintf(f.w, "\nSkipped %d job(s):\n", len(invalid))
	for _, inv := range invalid {
		fmt.Fprintf(f.w, "  %s: %s\n", inv.ID, inv.Reason)
	}
}

// calculateColumnWidths sizes each column to its widest cell in terminal cells
func (f *TableFormatter) calculateColumnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}
	for _, row := range rows {
		for i, value := range row {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}

	// The Job column is capped so long customer names do not wrap the table.
	if widths[4] > 40 {
		widths[4] = 40
	}
	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	var b strings.Builder
	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	fmt.Fprintln(f.w, b.String())
}

// printRow prints a row; numeric columns are right-aligned
func (f *TableFormatter) printRow(values []string, widths []int) {
	var b strings.Builder
	b.WriteString("│")
	for i, value := range values {
		cell := util.PadRight(value, widths[i])
		if isNumeric(value) && util.GetDisplayWidth(value) <= widths[i] {
			cell = strings.Repeat(" ", widths[i]-util.GetDisplayWidth(value)) + value
		}
		b.WriteString(" " + cell + " │")
	}
	fmt.Fprintln(f.w, b.String())
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
