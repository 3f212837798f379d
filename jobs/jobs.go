package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"artspace/artwork"
)

const refreshTimeout = time.Minute

// Scheduler runs periodic catalog maintenance.
type Scheduler struct {
	cron     *cron.Cron
	artworks *artwork.Service
	log      *logrus.Logger
}

// NewScheduler wires the nightly bestseller refresh.
func NewScheduler(artworks *artwork.Service, log *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(),
		artworks: artworks,
		log:      log,
	}

	if _, err := s.cron.AddFunc("@daily", s.refreshBestsellers); err != nil {
		return nil, err
	}

	return s, nil
}

// Start launches the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("job scheduler started")
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("job scheduler stopped")
}

func (s *Scheduler) refreshBestsellers() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := s.artworks.RefreshBestsellers(ctx); err != nil {
		s.log.WithError(err).Error("bestseller refresh failed")
	}
}
