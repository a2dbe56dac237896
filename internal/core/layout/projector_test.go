package layout

import (
	"errors"
	"testing"
	"time"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/geometry"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 2, 25, hour, minute, 0, 0, time.UTC)
}

func job(id, staff string, sh, sm, eh, em int) model.Job {
	return model.Job{ID: id, StaffID: staff, Start: at(sh, sm), End: at(eh, em), Status: model.StatusUpcoming}
}

func dayAxis() geometry.Axis {
	return geometry.NewAxis(model.DayWindow(at(0, 0), 7, 19), 80, 24)
}

func boardAxis() geometry.Axis {
	return geometry.NewAxis(model.DayWindow(at(0, 0), 7, 19), 160, 24)
}

func TestDayViewBridgedCluster(t *testing.T) {
	jobs := []model.Job{
		job("A", "s1", 9, 0, 10, 0),
		job("B", "s1", 9, 30, 11, 0),
		job("C", "s1", 10, 30, 10, 45),
	}

	result := DayView(jobs, dayAxis(), 4)
	require.Empty(t, result.Invalid)
	require.Len(t, result.Rects, 3)

	rects := result.ByID()
	for _, id := range []string{"A", "B", "C"} {
		assert.Equal(t, 2, rects[id].TotalColumns, id)
		assert.InDelta(t, 0.5, rects[id].Width, 1e-9, id)
		assert.Equal(t, model.Vertical, rects[id].Orientation)
	}
	assert.NotEqual(t, rects["A"].Column, rects["B"].Column)
	assert.NotEqual(t, rects["C"].Column, rects["B"].Column)

	assert.InDelta(t, 160.0, rects["A"].Offset, 1e-9)
	assert.InDelta(t, 80.0, rects["A"].Length, 1e-9)
	assert.InDelta(t, 24.0, rects["C"].Length, 1e-9, "15 minutes is below the minimum length")

	assert.InDelta(t, 0.5, rects["B"].Left, 1e-9)
	assert.InDelta(t, 2.0, rects["B"].LeftInset, 1e-9)
	assert.InDelta(t, 0.0, rects["A"].LeftInset, 1e-9)
	assert.InDelta(t, 4.0, rects["A"].WidthInset, 1e-9)
}

func TestDayViewDisjointAndNested(t *testing.T) {
	t.Run("disjoint", func(t *testing.T) {
		result := DayView([]model.Job{
			job("a", "s1", 8, 0, 9, 0),
			job("b", "s2", 10, 0, 11, 0),
			job("c", "s3", 12, 0, 13, 0),
		}, dayAxis(), 4)

		require.Len(t, result.Rects, 3)
		for _, r := range result.Rects {
			assert.Equal(t, 1, r.TotalColumns)
			assert.Equal(t, 0, r.Column)
			assert.InDelta(t, 1.0, r.Width, 1e-9)
		}
	})

	t.Run("nested", func(t *testing.T) {
		result := DayView([]model.Job{
			job("A", "s1", 9, 0, 12, 0),
			job("B", "s1", 10, 0, 10, 30),
		}, dayAxis(), 4)

		rects := result.ByID()
		assert.Equal(t, 2, rects["A"].TotalColumns)
		assert.Equal(t, 2, rects["B"].TotalColumns)
		assert.Equal(t, 0, rects["A"].Column)
		assert.Equal(t, 1, rects["B"].Column)
	})
}

func TestDayViewClustersAcrossStaff(t *testing.T) {
	result := DayView([]model.Job{
		job("a", "s1", 9, 0, 10, 0),
		job("b", "s2", 9, 30, 10, 30),
	}, dayAxis(), 4)

	rects := result.ByID()
	assert.Equal(t, 2, rects["a"].TotalColumns)
	assert.NotEqual(t, rects["a"].Column, rects["b"].Column)
}

func TestDayViewRejectsInvalidJobs(t *testing.T) {
	jobs := []model.Job{
		job("ok", "s1", 9, 0, 10, 0),
		job("zero", "s1", 9, 0, 9, 0),
		job("inverted", "s1", 11, 0, 10, 0),
	}

	result := DayView(jobs, dayAxis(), 4)
	require.Len(t, result.Rects, 1)
	assert.Equal(t, "ok", result.Rects[0].EventID)

	require.Len(t, result.Invalid, 2)
	assert.Equal(t, "zero", result.Invalid[0].EventID)
	assert.Equal(t, "inverted", result.Invalid[1].EventID)
	for _, inv := range result.Invalid {
		assert.True(t, errors.Is(inv.Err, model.ErrInvalidRange))
	}
}

func TestDayViewEmpty(t *testing.T) {
	result := DayView(nil, dayAxis(), 4)
	assert.Empty(t, result.Rects)
	assert.Empty(t, result.Invalid)
}

func TestDayViewWindowEdges(t *testing.T) {
	axis := dayAxis()
	result := DayView([]model.Job{
		job("full", "s1", 7, 0, 19, 0),
		job("early", "s2", 5, 0, 6, 0),
		job("late", "s3", 20, 0, 21, 0),
	}, axis, 4)

	rects := result.ByID()
	require.Len(t, rects, 3, "out of window jobs are kept")

	assert.InDelta(t, 0.0, rects["full"].Offset, 1e-9)
	assert.InDelta(t, axis.TotalLength(), rects["full"].Length, 1e-9)

	assert.InDelta(t, 0.0, rects["early"].Offset, 1e-9)
	assert.InDelta(t, 24.0, rects["early"].Length, 1e-9)

	assert.InDelta(t, axis.TotalLength(), rects["late"].Offset, 1e-9)
	assert.InDelta(t, 24.0, rects["late"].Length, 1e-9)
}

func TestDayViewDoesNotMutateInput(t *testing.T) {
	jobs := []model.Job{
		job("c", "s1", 11, 0, 12, 0),
		job("a", "s1", 9, 0, 10, 0),
	}
	snapshot := append([]model.Job(nil), jobs...)

	DayView(jobs, dayAxis(), 4)
	assert.Equal(t, snapshot, jobs)
}

func TestDispatchViewPerResourceClustering(t *testing.T) {
	jobs := []model.Job{
		job("h1", "s1", 9, 0, 10, 0),
		job("s1-job", "s2", 9, 0, 10, 0),
		job("h2", "s1", 9, 30, 10, 30),
	}

	result := DispatchView(jobs, []string{"s1", "s2"}, boardAxis(), 4)
	require.Empty(t, result.Invalid)
	rects := result.ByID()

	assert.Equal(t, 0, rects["h1"].Row)
	assert.Equal(t, 0, rects["h2"].Row)
	assert.Equal(t, 1, rects["s1-job"].Row)

	assert.Equal(t, 2, rects["h1"].TotalColumns)
	assert.Equal(t, 2, rects["h2"].TotalColumns)
	assert.Equal(t, 1, rects["s1-job"].TotalColumns, "overlap across rows does not split lanes")
	assert.Equal(t, model.Horizontal, rects["h1"].Orientation)

	assert.InDelta(t, 320.0, rects["h1"].Offset, 1e-9)
	assert.InDelta(t, 160.0, rects["h1"].Length, 1e-9)
}

func TestDispatchViewRows(t *testing.T) {
	jobs := []model.Job{
		job("a", "s3", 9, 0, 10, 0),
		job("b", "s1", 9, 0, 10, 0),
		job("c", "ghost", 9, 0, 10, 0),
	}

	t.Run("explicit_rows", func(t *testing.T) {
		result := DispatchView(jobs, []string{"s1", "s2", "s3"}, boardAxis(), 4)
		rects := result.ByID()
		assert.Equal(t, 0, rects["b"].Row)
		assert.Equal(t, 2, rects["a"].Row)
		assert.Equal(t, []string{"s1", "s2", "s3"}, result.Rows)

		require.Len(t, result.Invalid, 1)
		assert.Equal(t, "c", result.Invalid[0].EventID)
		assert.ErrorIs(t, result.Invalid[0].Err, ErrUnknownResource)
	})

	t.Run("derived_rows", func(t *testing.T) {
		result := DispatchView(jobs, nil, boardAxis(), 4)
		assert.Equal(t, []string{"ghost", "s1", "s3"}, result.Rows)
		assert.Empty(t, result.Invalid)
		assert.Len(t, result.Rects, 3)
	})
}

func TestDuplicateIDs(t *testing.T) {
	jobs := []model.Job{
		job("x", "s1", 9, 0, 10, 0),
		job("x", "s2", 9, 0, 10, 0),
		job("y", "s2", 9, 30, 10, 30),
	}

	tests := []struct {
		name   string
		result Result
	}{
		{"day", DayView(jobs, dayAxis(), 4)},
		{"dispatch", DispatchView(jobs, []string{"s1", "s2"}, boardAxis(), 4)},
		{"week", WeekView(jobs, []time.Time{at(0, 0)}, 7, 19, 60, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Len(t, tt.result.Invalid, 1)
			assert.Equal(t, "x", tt.result.Invalid[0].EventID)
			assert.ErrorIs(t, tt.result.Invalid[0].Err, ErrDuplicateID)

			require.Len(t, tt.result.Rects, 2)
			rects := tt.result.ByID()
			assert.Equal(t, "s1", rects["x"].ResourceID, "the first job keeps the id")
			for _, r := range tt.result.Rects {
				for _, other := range tt.result.Rects {
					if r.EventID != other.EventID && r.Row == other.Row {
						assert.NotEqual(t, r.Column, other.Column)
					}
				}
			}
		})
	}
}

func TestRectsAreSorted(t *testing.T) {
	result := DispatchView([]model.Job{
		job("late", "s2", 15, 0, 16, 0),
		job("early", "s2", 8, 0, 9, 0),
		job("first", "s1", 12, 0, 13, 0),
	}, []string{"s1", "s2"}, boardAxis(), 4)

	var order []string
	for _, r := range result.Rects {
		order = append(order, r.EventID)
	}
	assert.Equal(t, []string{"first", "early", "late"}, order)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "day", ModeDay.String())
	assert.Equal(t, "dispatch", ModeDispatch.String())
	assert.Equal(t, "Mode(9)", Mode(9).String())
}
