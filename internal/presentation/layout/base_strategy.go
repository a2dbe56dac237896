package layout

import (
	"fmt"
	"io"
	"strings"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/presentation/formatter"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

// BaseStrategy provides the box drawing shared by all board strategies
type BaseStrategy struct {
}

// GetSizer returns the param's sizer or measures the terminal.
func (b *BaseStrategy) GetSizer(param Param) *Sizer {
	if param.Sizer != nil {
		return param.Sizer
	}
	return TerminalSizer()
}

func (b *BaseStrategy) TopBorder(w io.Writer, width int) {
	fmt.Fprintln(w, "╭"+strings.Repeat("─", width-2)+"╮")
}

func (b *BaseStrategy) BottomBorder(w io.Writer, width int) {
	fmt.Fprintln(w, "╰"+strings.Repeat("─", width-2)+"╯")
}

func (b *BaseStrategy) Separator(w io.Writer, width int) {
	fmt.Fprintln(w, "├"+strings.Repeat("─", width-2)+"┤")
}

// BoxLine writes content between side borders, padded on the visible width
// so colour codes do not break alignment.
func (b *BaseStrategy) BoxLine(w io.Writer, content string, width int) {
	padding := width - 4 - util.VisibleWidth(content)
	if padding < 0 {
		padding = 0
	}
	fmt.Fprintln(w, "│ "+content+strings.Repeat(" ", padding)+" │")
}

// Header writes the title row: product and view on the left, range and
// clock on the right. The range label is dropped when the row is too narrow.
func (b *BaseStrategy) Header(w io.Writer, report *formatter.Report, param Param, title string, width int) {
	left := fmt.Sprintf("🧹 NORFOLK CLEANERS  │  %s", title)
	clock := formatClock(report.Generated, param.TimeFormat)
	right := fmt.Sprintf("%s  │  %s", report.RangeLabel, clock)
	if param.Paused {
		clock = "⏸ " + clock
		right = "⏸ " + right
	}

	available := width - 4
	if util.GetDisplayWidth(left)+util.GetDisplayWidth(right)+2 > available {
		right = clock
	}
	left = util.Truncate(left, available-util.GetDisplayWidth(right)-2)

	gap := available - util.GetDisplayWidth(left) - util.GetDisplayWidth(right)
	if gap < 2 {
		gap = 2
	}
	b.BoxLine(w, util.FormatHeaderTitle(left)+strings.Repeat(" ", gap)+right, width)
}

// StatusLine writes the per-status job counts and the skipped count,
// falling back to icons only when the labels do not fit.
func (b *BaseStrategy) StatusLine(w io.Writer, report *formatter.Report, width int) {
	line := statusSummary(report, true, false)
	if util.VisibleWidth(line) > width-4 {
		line = statusSummary(report, true, true)
	}
	b.BoxLine(w, line, width)
}

func statusSummary(report *formatter.Report, colored, short bool) string {
	parts := make([]string, 0, len(model.Statuses)+1)
	for _, status := range model.Statuses {
		part := fmt.Sprintf("%s %d", statusIcon(status), report.StatusCounts[status])
		if !short {
			part += " " + strings.ToLower(model.StatusLabel(status))
		}
		if colored {
			part = util.Colorize(util.StatusColor(status), part)
		}
		parts = append(parts, part)
	}
	if n := len(report.Invalid); n > 0 {
		part := fmt.Sprintf("⚠ %d", n)
		if !short {
			part += " skipped"
		}
		if colored {
			part = util.Colorize(util.ColorRed, part)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "  ")
}
