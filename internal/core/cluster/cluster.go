// Package cluster partitions jobs into groups connected by time overlap.
package cluster

import (
	"sort"
	"time"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
)

// Sort returns a copy of jobs ordered by start time. Equal starts put the
// longer job first so wide blocks anchor column 0; remaining ties fall back
// to the job ID to keep the order stable between passes.
func Sort(jobs []model.Job) []model.Job {
	sorted := make([]model.Job, len(jobs))
	copy(sorted, jobs)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if da, db := a.Duration(), b.Duration(); da != db {
			return da > db
		}
		return a.ID < b.ID
	})
	return sorted
}

// Build groups jobs into maximal clusters of transitively overlapping jobs.
// Each cluster keeps the Sort order. Two jobs in a cluster may not overlap
// directly but are bridged by a third.
func Build(jobs []model.Job) [][]model.Job {
	if len(jobs) == 0 {
		return nil
	}

	sorted := Sort(jobs)

	var clusters [][]model.Job
	var current []model.Job
	var clusterEnd time.Time

	for _, job := range sorted {
		if len(current) == 0 || job.Start.Before(clusterEnd) {
			current = append(current, job)
			if job.End.After(clusterEnd) {
				clusterEnd = job.End
			}
			continue
		}

		clusters = append(clusters, current)
		current = []model.Job{job}
		clusterEnd = job.End
	}
	if len(current) > 0 {
		clusters = append(clusters, current)
	}

	return clusters
}

// GroupByResource splits jobs by staff ID, preserving input order inside
// each group.
func GroupByResource(jobs []model.Job) map[string][]model.Job {
	groups := make(map[string][]model.Job)
	for _, job := range jobs {
		groups[job.StaffID] = append(groups[job.StaffID], job)
	}
	return groups
}
