// Package columns assigns side-by-side lanes to the jobs of one overlap cluster.
package columns

import (
	"sort"
	"time"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/cluster"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
)

// Assignment is the lane layout of one cluster. Columns[i] is the column
// of Jobs[i]; Jobs holds the cluster in cluster.Sort order.
type Assignment struct {
	Jobs         []model.Job
	Columns      []int
	TotalColumns int
}

// Column returns the column of the first job with the given ID.
func (a Assignment) Column(id string) (int, bool) {
	for i, job := range a.Jobs {
		if job.ID == id {
			return a.Columns[i], true
		}
	}
	return 0, false
}

// Assign places every job of the cluster in the first column whose previous
// occupant has finished by the job's start, opening a new column when none
// is free. Jobs are visited in cluster.Sort order. All jobs share the final
// column count so they render at uniform width.
func Assign(jobs []model.Job) Assignment {
	var result Assignment
	if len(jobs) == 0 {
		return result
	}

	result.Jobs = cluster.Sort(jobs)
	result.Columns = make([]int, len(result.Jobs))

	var columnEnds []time.Time
	for i, job := range result.Jobs {
		col := -1
		for i, end := range columnEnds {
			if !end.After(job.Start) {
				col = i
				break
			}
		}
		if col == -1 {
			col = len(columnEnds)
			columnEnds = append(columnEnds, time.Time{})
		}
		columnEnds[col] = job.End
		result.Columns[i] = col
	}

	result.TotalColumns = len(columnEnds)
	return result
}

// MaxOverlap counts the largest number of jobs running at the same instant.
// Ranges are half-open, so a job ending when another starts does not count.
func MaxOverlap(jobs []model.Job) int {
	type edge struct {
		at    time.Time
		delta int
	}

	edges := make([]edge, 0, 2*len(jobs))
	for _, job := range jobs {
		edges = append(edges, edge{job.Start, 1}, edge{job.End, -1})
	}
	sort.Slice(edges, func(i, j int) bool {
		if !edges[i].at.Equal(edges[j].at) {
			return edges[i].at.Before(edges[j].at)
		}
		// Ends before starts at the same instant.
		return edges[i].delta < edges[j].delta
	})

	current, best := 0, 0
	for _, e := range edges {
		current += e.delta
		if current > best {
			best = current
		}
	}
	return best
}
