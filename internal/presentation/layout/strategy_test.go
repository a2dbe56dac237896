package layout

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/config"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/data/demo"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/presentation/formatter"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/report"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

var day = time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC)

func buildReport(t *testing.T, view string) *formatter.Report {
	t.Helper()
	settings := config.DefaultConfig()
	settings.Timezone = "UTC"

	rep, err := report.Build(demo.Jobs(day), report.BuildOptions{
		View:     view,
		Date:     day,
		Now:      day.Add(10*time.Hour + 15*time.Minute),
		Staff:    demo.Staff(),
		Settings: settings,
	})
	require.NoError(t, err)
	return rep
}

func render(strategy BoardStrategy, rep *formatter.Report, param Param) []string {
	var buf bytes.Buffer
	strategy.Render(&buf, rep, param)
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func assertBoxed(t *testing.T, lines []string, width int) {
	t.Helper()
	for i, line := range lines {
		assert.Equal(t, width, util.VisibleWidth(line), "line %d: %q", i, util.StripANSI(line))
	}
}

func TestGetBoardStrategy(t *testing.T) {
	tests := []struct {
		name  string
		view  string
		style int
		want  BoardStrategy
	}{
		{"dispatch", "dispatch", StyleFull, &DispatchStrategy{}},
		{"day", "day", StyleFull, &AgendaStrategy{}},
		{"week", "week", StyleFull, &AgendaStrategy{}},
		{"fortnight", "2week", StyleFull, &AgendaStrategy{}},
		{"month", "month", StyleFull, &MonthStrategy{}},
		{"compact_overrides_view", "month", StyleCompact, &CompactStrategy{}},
		{"unknown_defaults_to_dispatch", "year", StyleFull, &DispatchStrategy{}},
		{"unknown_style_uses_view", "week", 99, &AgendaStrategy{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.IsType(t, tt.want, GetBoardStrategy(tt.view, tt.style))
		})
	}
}

func TestStrategyNames(t *testing.T) {
	assert.Equal(t, "Dispatch Board", (&DispatchStrategy{}).GetName())
	assert.Equal(t, "Agenda", (&AgendaStrategy{}).GetName())
	assert.Equal(t, "Month", (&MonthStrategy{}).GetName())
	assert.Equal(t, "Compact", (&CompactStrategy{}).GetName())
}

func TestDispatchStrategyRender(t *testing.T) {
	rep := buildReport(t, report.ViewDispatch)
	lines := render(&DispatchStrategy{}, rep, Param{Sizer: NewSizer(100, 30)})
	assertBoxed(t, lines, 100)

	text := util.StripANSI(strings.Join(lines, "\n"))
	assert.Contains(t, text, "NORFOLK CLEANERS")
	assert.Contains(t, text, "Dispatch")
	assert.Contains(t, text, "Wednesday 25 February 2026")
	assert.Contains(t, text, "10:15")
	assert.Contains(t, text, "07    08    09")
	for _, member := range demo.Staff() {
		assert.Contains(t, text, member.Name)
	}
	assert.Contains(t, text, "✓ 3 completed")
	assert.Contains(t, text, "◷ 4 upcoming")
	assert.NotContains(t, text, "◀", "the whole day fits at this width")
}

func TestDispatchStrategyScrollsWhenNarrow(t *testing.T) {
	rep := buildReport(t, report.ViewDispatch)
	lines := render(&DispatchStrategy{}, rep, Param{Sizer: NewSizer(60, 30)})
	assertBoxed(t, lines, 60)

	text := util.StripANSI(strings.Join(lines, "\n"))
	assert.Contains(t, text, "◀ 09:00 – 18:15 ▶")
}

func TestDispatchStrategyNoStaff(t *testing.T) {
	rep := &formatter.Report{View: report.ViewDispatch, RangeLabel: "Wednesday 25 February 2026"}
	lines := render(&DispatchStrategy{}, rep, Param{Sizer: NewSizer(80, 24)})
	assertBoxed(t, lines, 80)
	assert.Contains(t, util.StripANSI(strings.Join(lines, "\n")), "No staff to show")
}

func TestAgendaStrategyRender(t *testing.T) {
	rep := buildReport(t, "week")
	lines := render(&AgendaStrategy{}, rep, Param{Sizer: NewSizer(100, 30)})
	assertBoxed(t, lines, 100)

	text := util.StripANSI(strings.Join(lines, "\n"))
	assert.Contains(t, text, "Monday 23 February")
	assert.Contains(t, text, "● Wednesday 25 February")
	assert.Contains(t, text, "Sunday 1 March")
	assert.Contains(t, text, "No jobs")
	assert.Contains(t, text, "1/4")
	assert.Contains(t, text, "Harvey Washington")
}

func TestAgendaStrategySingleDay(t *testing.T) {
	rep := buildReport(t, "day")
	lines := render(&AgendaStrategy{}, rep, Param{Sizer: NewSizer(100, 30), TimeFormat: "12h"})
	assertBoxed(t, lines, 100)

	text := util.StripANSI(strings.Join(lines, "\n"))
	assert.Contains(t, text, "● Wednesday 25 February")
	assert.Contains(t, text, "10:15 AM")
	assert.NotContains(t, text, "No jobs")
}

func TestMonthStrategyRender(t *testing.T) {
	rep := buildReport(t, "month")
	lines := render(&MonthStrategy{}, rep, Param{Sizer: NewSizer(100, 30), Paused: true})
	assertBoxed(t, lines, 100)

	text := util.StripANSI(strings.Join(lines, "\n"))
	assert.Contains(t, text, "February 2026")
	assert.Contains(t, text, "⏸")
	assert.Contains(t, text, "Mon")
	assert.Contains(t, text, "Sun")
	assert.Contains(t, text, "+7 more")
}

func TestCompactStrategyRender(t *testing.T) {
	rep := buildReport(t, report.ViewDispatch)

	var buf bytes.Buffer
	(&CompactStrategy{}).Render(&buf, rep, Param{Paused: true})
	assert.Equal(t,
		"Norfolk Cleaners: Dispatch Wednesday 25 February 2026 | 10 jobs | ✓ 3 completed  ▶ 3 in progress  ◷ 4 upcoming  ✗ 0 cancelled | 10:15 | paused\n",
		buf.String())
}

func TestViewport(t *testing.T) {
	rep := &formatter.Report{ScalePerHour: 160, TotalLength: 1920, Scroll: 320}

	full := newViewport(rep, 77)
	assert.True(t, full.full())
	assert.Equal(t, 20, full.cell(520))

	narrow := newViewport(rep, 37)
	assert.False(t, narrow.full())
	assert.Equal(t, 320.0, narrow.start)
	assert.Equal(t, 1480.0, narrow.span)

	rep.Scroll = 1800
	clamped := newViewport(rep, 37)
	assert.Equal(t, 440.0, clamped.start)
}

func TestViewportLane(t *testing.T) {
	rep := &formatter.Report{ScalePerHour: 160, TotalLength: 1920}
	view := newViewport(rep, 24)

	rows := buildRows(
		rowAt("a", "Deep Clean – Dr. Okonkwo", "completed", 0, 160),
		rowAt("b", "Window Clean – Lee & Co", "upcoming", 400, 240),
	)
	lane := util.StripANSI(view.lane(rows, 3))
	assert.Equal(t, "D… │ Wi…"+strings.Repeat(" ", 16), lane)
	assert.Equal(t, 24, util.VisibleWidth(lane))

	empty := util.StripANSI(view.lane(nil, -1))
	assert.Equal(t, strings.Repeat(" ", 24), empty)
}

func TestViewportRuler(t *testing.T) {
	rep := &formatter.Report{
		ScalePerHour: 160,
		TotalLength:  1920,
	}
	rep.Window.Start = day.Add(7 * time.Hour)
	rep.Window.End = day.Add(19 * time.Hour)

	ruler := newViewport(rep, 77).ruler(rep)
	assert.True(t, strings.HasPrefix(ruler, "07    08    09"), ruler)
	assert.Contains(t, ruler, "18")
	assert.NotContains(t, ruler, "19")
	assert.Equal(t, 77, util.VisibleWidth(ruler))
}

func TestStatusLineShortForm(t *testing.T) {
	rep := &formatter.Report{
		StatusCounts: map[string]int{"completed": 2, "upcoming": 1},
		Invalid:      []formatter.InvalidRow{{ID: "bad", Reason: "no staff"}},
	}
	assert.Equal(t, "✓ 2 completed  ▶ 0 in progress  ◷ 1 upcoming  ✗ 0 cancelled  ⚠ 1 skipped", statusSummary(rep, false, false))
	assert.Equal(t, "✓ 2  ▶ 0  ◷ 1  ✗ 0  ⚠ 1", statusSummary(rep, false, true))

	var buf bytes.Buffer
	(&BaseStrategy{}).StatusLine(&buf, rep, 40)
	assert.Equal(t, "│ ✓ 2  ▶ 0  ◷ 1  ✗ 0  ⚠ 1", strings.TrimRight(util.StripANSI(buf.String()), " │\n"))
}
