package ics

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

const defaultMaxOccurrences = 500

// ExpandConfig controls recurrence expansion.
type ExpandConfig struct {
	// RangeStart and RangeEnd bound the occurrences, inclusive.
	RangeStart time.Time
	RangeEnd   time.Time

	// MaxOccurrences caps the occurrences produced per job. Zero means
	// defaultMaxOccurrences.
	MaxOccurrences int
}

// OccurrenceID names one occurrence of a recurring job.
func OccurrenceID(jobID string, start time.Time) string {
	return fmt.Sprintf("%s@%s", jobID, start.UTC().Format("20060102T150405Z"))
}

// Expand replaces every recurring job with its occurrences inside the range.
// Jobs without a rule pass through unchanged. A job whose rule cannot be
// parsed is kept as a single occurrence and logged.
func Expand(jobs []model.Job, cfg ExpandConfig) ([]model.Job, error) {
	if cfg.RangeEnd.Before(cfg.RangeStart) {
		return nil, fmt.Errorf("expand: range end %s is before start %s",
			cfg.RangeEnd.Format(time.RFC3339), cfg.RangeStart.Format(time.RFC3339))
	}
	if cfg.MaxOccurrences <= 0 {
		cfg.MaxOccurrences = defaultMaxOccurrences
	}

	out := make([]model.Job, 0, len(jobs))
	for _, job := range jobs {
		if job.RRule == "" {
			out = append(out, job)
			continue
		}
		occurrences, err := expandJob(job, cfg)
		if err != nil {
			util.LogWarnf("Recurring job %s kept as a single job: %v", job.ID, err)
			out = append(out, job)
			continue
		}
		out = append(out, occurrences...)
	}
	return out, nil
}

func expandJob(job model.Job, cfg ExpandConfig) ([]model.Job, error) {
	rule, err := rrule.StrToRRule(job.RRule)
	if err != nil {
		return nil, fmt.Errorf("parse rule %q: %w", job.RRule, err)
	}
	rule.DTStart(job.Start)

	loc := job.Start.Location()
	times := rule.Between(cfg.RangeStart.In(loc), cfg.RangeEnd.In(loc), true)
	if len(times) > cfg.MaxOccurrences {
		util.LogWarnf("Recurring job %s truncated to %d occurrences", job.ID, cfg.MaxOccurrences)
		times = times[:cfg.MaxOccurrences]
	}

	duration := job.Duration()
	occurrences := make([]model.Job, 0, len(times))
	for _, start := range times {
		occ := job
		occ.ID = OccurrenceID(job.ID, start)
		occ.Start = start
		occ.End = start.Add(duration)
		occ.RRule = ""
		occurrences = append(occurrences, occ)
	}
	return occurrences, nil
}
