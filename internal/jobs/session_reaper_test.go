package jobs

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"mockmate/interview/internal/session"
)

func TestRunOnce_EvictsIdleSessions(t *testing.T) {
	logger := zap.NewNop()
	registry := session.NewRegistry(time.Minute, logger)

	base := time.Now().Add(-time.Hour)
	clock := func() time.Time { return base }
	registry.Put("stale", session.New("stale", session.Config{Clock: clock}, session.StartOptions{}))

	job := NewSessionReaperJob(registry, &ReaperConfig{Enabled: true, Schedule: "@every 1m"}, logger)

	if evicted := registry.Reap(base.Add(30 * time.Second)); evicted != 0 {
		t.Fatalf("session within TTL should survive, evicted %d", evicted)
	}

	// the entry's last activity is an hour old, well past the TTL
	job.RunOnce()
	if size := registry.Size(); size != 0 {
		t.Fatalf("expected stale session to be evicted, registry size %d", size)
	}
}

func TestReaperStartStop(t *testing.T) {
	logger := zap.NewNop()
	registry := session.NewRegistry(time.Minute, logger)

	job := NewSessionReaperJob(registry, &ReaperConfig{Enabled: false}, logger)
	if err := job.Start(); err != nil {
		t.Fatalf("disabled reaper should not error, got %v", err)
	}

	job.config.Enabled = true
	job.config.Schedule = "@every 1m"
	if err := job.Start(); err != nil {
		t.Fatalf("expected scheduler to start, got %v", err)
	}
	job.Stop()
}

func TestReaperRejectsBadSchedule(t *testing.T) {
	logger := zap.NewNop()
	registry := session.NewRegistry(time.Minute, logger)

	job := NewSessionReaperJob(registry, &ReaperConfig{Enabled: true, Schedule: "not a schedule"}, logger)
	if err := job.Start(); err == nil {
		t.Fatal("expected an error for an invalid cron expression")
	}
}
