package formatter

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

// ErrUnsupportedView is returned when a formatter cannot draw a view.
var ErrUnsupportedView = errors.New("view not supported by this output")

// SVGConfig sizes the drawing.
type SVGConfig struct {
	HeaderHeight  float64
	GutterWidth   float64 // hour labels of vertical views
	StaffWidth    float64 // staff labels of the dispatch view
	DayWidth      float64
	WeekDayWidth  float64
	RowPadding    float64
	FontFamily    string
	FontSize      int
	GridColor     string
	NowLineColor  string
	BackgroundHex string
}

func DefaultSVGConfig() SVGConfig {
	return SVGConfig{
		HeaderHeight:  32,
		GutterWidth:   56,
		StaffWidth:    160,
		DayWidth:      480,
		WeekDayWidth:  160,
		RowPadding:    4,
		FontFamily:    "Helvetica, Arial, sans-serif",
		FontSize:      11,
		GridColor:     "#e2e8f0",
		NowLineColor:  "#ef4444",
		BackgroundHex: "#ffffff",
	}
}

type statusStyle struct {
	fill, stroke, text string
}

var statusStyles = map[string]statusStyle{
	model.StatusCompleted:  {"#ecfdf5", "#a7f3d0", "#065f46"},
	model.StatusInProgress: {"#fffbeb", "#fde68a", "#92400e"},
	model.StatusUpcoming:   {"#f0f9ff", "#bae6fd", "#075985"},
	model.StatusCancelled:  {"#f8fafc", "#e2e8f0", "#64748b"},
}

type SVGFormatter struct {
	w      io.Writer
	config SVGConfig
}

func NewSVGFormatter(w io.Writer, config SVGConfig) *SVGFormatter {
	return &SVGFormatter{w: w, config: config}
}

func (f *SVGFormatter) Format(report *Report) error {
	var svg strings.Builder

	switch {
	case report.View == "month":
		return fmt.Errorf("%w: svg cannot draw the %s view", ErrUnsupportedView, report.View)
	case report.Orientation == model.Horizontal:
		f.drawDispatch(&svg, report)
	default:
		f.drawColumns(&svg, report)
	}

	_, err := io.WriteString(f.w, svg.String())
	return err
}

// drawColumns draws day and week views: time runs down, days run across.
func (f *SVGFormatter) drawColumns(svg *strings.Builder, report *Report) {
	c := f.config
	columns := len(report.Days)
	colWidth := c.WeekDayWidth
	if columns == 0 {
		columns = 1
		colWidth = c.DayWidth
	}

	width := c.GutterWidth + float64(columns)*colWidth
	height := c.HeaderHeight + report.TotalLength
	f.open(svg, width, height)

	// Day headers
	if len(report.Days) == 0 {
		f.text(svg, c.GutterWidth+colWidth/2, c.HeaderHeight-10, "middle", "bold", "#0f172a", report.RangeLabel)
	}
	for i, day := range report.Days {
		x := c.GutterWidth + float64(i)*colWidth
		f.text(svg, x+colWidth/2, c.HeaderHeight-10, "middle", "bold", "#0f172a", day.Format("Mon 2"))
		svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`,
			x, c.HeaderHeight, x, height, c.GridColor))
	}

	// Hour grid
	for h := 0; float64(h)*report.ScalePerHour <= report.TotalLength && report.ScalePerHour > 0; h++ {
		y := c.HeaderHeight + float64(h)*report.ScalePerHour
		svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`,
			c.GutterWidth, y, width, y, c.GridColor))
		f.text(svg, c.GutterWidth-6, y+4, "end", "normal", "#94a3b8",
			util.FormatHourLabel(report.Window.Start.Hour()+h))
	}

	for _, row := range report.Rows {
		r := row.Rect
		x := c.GutterWidth + float64(r.Day)*colWidth + r.Left*colWidth + r.LeftInset
		w := r.Width*colWidth - r.WidthInset
		y := c.HeaderHeight + r.Offset
		f.job(svg, row, x, y, w, r.Length)
	}

	if report.NowVisible {
		y := c.HeaderHeight + report.NowOffset
		svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`,
			c.GutterWidth, y, width, y, c.NowLineColor))
	}

	svg.WriteString("</svg>\n")
}

// drawDispatch draws staff rows with time running across.
func (f *SVGFormatter) drawDispatch(svg *strings.Builder, report *Report) {
	c := f.config
	rows := len(report.Staff)

	width := c.StaffWidth + report.TotalLength
	height := c.HeaderHeight + float64(rows)*report.RowHeight
	f.open(svg, width, height)

	for h := 0; float64(h)*report.ScalePerHour <= report.TotalLength && report.ScalePerHour > 0; h++ {
		x := c.StaffWidth + float64(h)*report.ScalePerHour
		svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`,
			x, c.HeaderHeight, x, height, c.GridColor))
		f.text(svg, x+4, c.HeaderHeight-10, "start", "normal", "#94a3b8",
			util.FormatHourLabel(report.Window.Start.Hour()+h))
	}

	for i, s := range report.Staff {
		y := c.HeaderHeight + float64(i)*report.RowHeight
		svg.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`,
			y+report.RowHeight, width, y+report.RowHeight, c.GridColor))
		f.text(svg, 12, y+report.RowHeight/2+4, "start", "bold", "#0f172a", s.Name)
	}

	lane := report.RowHeight - 2*c.RowPadding
	for _, row := range report.Rows {
		r := row.Rect
		x := c.StaffWidth + r.Offset
		y := c.HeaderHeight + float64(r.Row)*report.RowHeight + c.RowPadding + r.Left*lane + r.LeftInset
		h := r.Width*lane - r.WidthInset
		f.job(svg, row, x, y, r.Length, h)
	}

	if report.NowVisible {
		x := c.StaffWidth + report.NowOffset
		svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`,
			x, c.HeaderHeight, x, height, c.NowLineColor))
	}

	svg.WriteString("</svg>\n")
}

func (f *SVGFormatter) open(svg *strings.Builder, width, height float64) {
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%.0f" height="%.0f" xmlns="http://www.w3.org/2000/svg">
`, width, height))
	svg.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>`, f.config.BackgroundHex))
}

func (f *SVGFormatter) job(svg *strings.Builder, row Row, x, y, w, h float64) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	style, ok := statusStyles[row.Job.Status]
	if !ok {
		style = statusStyles[model.StatusUpcoming]
	}

	svg.WriteString(fmt.Sprintf(`<g id="%s">`, html.EscapeString(row.Job.ID)))
	svg.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="%s" stroke="%s" stroke-width="1"/>`,
		x, y, w, h, style.fill, style.stroke))
	svg.WriteString(fmt.Sprintf(`<title>%s</title>`, html.EscapeString(
		row.Job.Title+"\n"+util.FormatTimeRange(row.Job.Start, row.Job.End)+"\n"+row.Job.Location)))

	// Roughly 6px per character at the default font size.
	chars := int(w / 6)
	if chars > 3 && h >= float64(f.config.FontSize)+4 {
		f.text(svg, x+4, y+float64(f.config.FontSize)+2, "start", "bold", style.text, util.Truncate(row.Job.Title, chars))
	}
	svg.WriteString("</g>\n")
}

func (f *SVGFormatter) text(svg *strings.Builder, x, y float64, anchor, weight, fill, content string) {
	svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="%s" font-family="%s" font-size="%d" font-weight="%s" fill="%s">%s</text>`,
		x, y, anchor, f.config.FontFamily, f.config.FontSize, weight, fill, html.EscapeString(content)))
	svg.WriteString("\n")
}
