package scheduler

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ThanathipChokanantang/Airline-calculate/internal/config"
	"github.com/ThanathipChokanantang/Airline-calculate/internal/service/routes"
)

// Scheduler manages scheduled tasks. Today that is one job: sweeping expired
// evaluation tables out of the session cache.
type Scheduler struct {
	cron   *cron.Cron
	cache  *routes.TableCache
	cfg    config.Config
	logger *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.Config, cache *routes.TableCache, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour, dom, month, dow).
	c := cron.New()

	return &Scheduler{
		cron:   c,
		cache:  cache,
		cfg:    cfg,
		logger: logger,
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("sweep_cron", s.cfg.Cache.SweepCron))

	if _, err := s.cron.AddFunc(s.cfg.Cache.SweepCron, s.sweepCache); err != nil {
		s.logger.Error("failed to schedule cache sweep", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) sweepCache() {
	evicted := s.cache.Sweep()
	s.logger.Info("evaluation cache swept",
		zap.Int("evicted", evicted),
		zap.Int("remaining", s.cache.Len()))
}
