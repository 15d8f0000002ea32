// Package reporter periodically snapshots store statistics into logs and
// metrics so dashboards have data even when the API is idle.
package reporter

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/qalabs/reporting-demo-api/internal/app/metrics"
	"github.com/qalabs/reporting-demo-api/internal/app/services/users"
	"github.com/qalabs/reporting-demo-api/pkg/logger"
)

// DefaultSchedule samples once a minute.
const DefaultSchedule = "@every 1m"

// Service is a lifecycle-managed cron job publishing user collection stats.
type Service struct {
	users    *users.Service
	log      *logger.Logger
	schedule string
	cron     *cron.Cron
}

// New constructs a reporter. An empty schedule uses DefaultSchedule.
func New(userService *users.Service, schedule string, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("reporter")
	}
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &Service{
		users:    userService,
		log:      log,
		schedule: schedule,
	}
}

// Name implements system.Service.
func (s *Service) Name() string { return "reporter" }

// Start schedules the snapshot job and takes an immediate first sample.
func (s *Service) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(s.schedule, func() { s.Snapshot(context.Background()) }); err != nil {
		return err
	}
	s.cron = c
	c.Start()

	s.Snapshot(ctx)
	return nil
}

// Stop cancels the schedule and waits for a running snapshot to finish.
func (s *Service) Stop(ctx context.Context) error {
	if s.cron == nil {
		return nil
	}
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// Snapshot samples the user collection and publishes the counts.
func (s *Service) Snapshot(ctx context.Context) {
	total, err := s.users.Count(ctx)
	if err != nil {
		s.log.WithError(err).Warn("snapshot user count")
		return
	}
	active, err := s.users.GetActive(ctx)
	if err != nil {
		s.log.WithError(err).Warn("snapshot active users")
		return
	}

	metrics.SetUserCounts(total, len(active))
	s.log.WithField("total", total).
		WithField("active", len(active)).
		Debug("user stats sampled")
}
