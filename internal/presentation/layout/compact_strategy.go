package layout

import (
	"fmt"
	"io"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/presentation/formatter"
)

// CompactStrategy prints the board as a single status line.
type CompactStrategy struct {
	BaseStrategy
}

func (s *CompactStrategy) GetName() string {
	return "Compact"
}

func (s *CompactStrategy) Render(w io.Writer, report *formatter.Report, param Param) {
	paused := ""
	if param.Paused {
		paused = " | paused"
	}
	fmt.Fprintf(w, "Norfolk Cleaners: %s %s | %d jobs | %s | %s%s\n",
		viewTitle(report.View),
		report.RangeLabel,
		len(report.Jobs),
		statusSummary(report, false, false),
		formatClock(report.Generated, param.TimeFormat),
		paused)
}
