package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/evenoes/grib-api/internal/download"
)

// Scheduler periodically sweeps expired files out of the download cache.
type Scheduler struct {
	scheduler *gocron.Scheduler
	cache     *download.Cache
	interval  time.Duration
}

// New creates a Scheduler sweeping cache every interval.
func New(cache *download.Cache, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		cache:     cache,
		interval:  interval,
	}
}

// Start schedules the periodic sweep and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		before := s.cache.Len()
		s.cache.Sweep()
		if evicted := before - s.cache.Len(); evicted > 0 {
			log.Printf("scheduler: evicted %d expired grib file(s)", evicted)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
