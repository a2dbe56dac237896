package board

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// ReloadScheduler fires on a cron schedule. Ticks that arrive while the
// previous one is still pending are merged.
type ReloadScheduler struct {
	cron  *cron.Cron
	ticks chan struct{}
}

func NewReloadScheduler(spec string, loc *time.Location) (*ReloadScheduler, error) {
	s := &ReloadScheduler{
		cron:  cron.New(cron.WithLocation(loc)),
		ticks: make(chan struct{}, 1),
	}
	if _, err := s.cron.AddFunc(spec, s.fire); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *ReloadScheduler) fire() {
	select {
	case s.ticks <- struct{}{}:
	default:
	}
}

func (s *ReloadScheduler) Start() {
	s.cron.Start()
}

// Stop waits for a running reload trigger to finish
func (s *ReloadScheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *ReloadScheduler) Ticks() <-chan struct{} {
	return s.ticks
}

// Next is the time of the next scheduled reload, zero before Start
func (s *ReloadScheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
