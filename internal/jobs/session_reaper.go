package jobs

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"mockmate/interview/internal/metrics"
	"mockmate/interview/internal/session"
)

// SessionReaperJob periodically evicts completed and idle sessions
// from the in-memory registry. Evicted interviews remain resumable
// from the store.
type SessionReaperJob struct {
	registry *session.Registry
	config   *ReaperConfig
	cron     *cron.Cron
	logger   *zap.Logger
}

// ReaperConfig contains configuration for the reaper job
type ReaperConfig struct {
	Schedule string // Cron schedule (e.g., "*/15 * * * *")
	Enabled  bool   // Whether to run the reaper
}

// NewSessionReaperJob creates a new reaper job
func NewSessionReaperJob(registry *session.Registry, config *ReaperConfig, logger *zap.Logger) *SessionReaperJob {
	return &SessionReaperJob{
		registry: registry,
		config:   config,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start begins the scheduled reaper job
func (srj *SessionReaperJob) Start() error {
	if !srj.config.Enabled {
		srj.logger.Info("Session reaper is disabled, skipping scheduler")
		return nil
	}

	srj.logger.Info("Starting session reaper", zap.String("schedule", srj.config.Schedule))

	_, err := srj.cron.AddFunc(srj.config.Schedule, func() {
		srj.RunOnce()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reaper job: %w", err)
	}

	srj.cron.Start()
	return nil
}

// Stop stops the scheduled reaper job
func (srj *SessionReaperJob) Stop() {
	if srj.cron != nil {
		srj.cron.Stop()
		srj.logger.Info("Session reaper stopped")
	}
}

// RunOnce performs a single sweep over the registry
func (srj *SessionReaperJob) RunOnce() {
	evicted := srj.registry.Reap(time.Now())
	remaining := srj.registry.Size()
	metrics.SetActiveSessions(remaining)

	if evicted > 0 {
		srj.logger.Info("Reaped interview sessions",
			zap.Int("evicted", evicted),
			zap.Int("remaining", remaining))
	}
}
