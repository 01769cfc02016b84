package timer

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }

func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestTracker() (*Tracker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)}
	return NewTrackerWithClock(clock.now), clock
}

func TestTotalAccumulatesAcrossSwitches(t *testing.T) {
	tracker, clock := newTestTracker()
	tracker.Start()

	clock.advance(30 * time.Second)
	tracker.SwitchToQuestion(1)
	clock.advance(45 * time.Second)

	if got := tracker.TotalSeconds(); got != 75 {
		t.Fatalf("expected total 75s, got %d", got)
	}
	if got := tracker.QuestionSeconds(); got != 45 {
		t.Fatalf("expected question counter 45s after switch, got %d", got)
	}
}

func TestSwitchResetsOnlyQuestionCounter(t *testing.T) {
	tracker, clock := newTestTracker()
	tracker.Start()

	clock.advance(20 * time.Second)
	totalBefore := tracker.TotalSeconds()
	tracker.SwitchToQuestion(1)

	if got := tracker.QuestionSeconds(); got != 0 {
		t.Fatalf("question counter should reset on switch, got %d", got)
	}
	if got := tracker.TotalSeconds(); got != totalBefore {
		t.Fatalf("total should survive switch: before %d, after %d", totalBefore, got)
	}
}

func TestRevisitAccumulatesPerQuestion(t *testing.T) {
	tracker, clock := newTestTracker()
	tracker.Start()

	clock.advance(10 * time.Second)
	tracker.SwitchToQuestion(1)
	clock.advance(5 * time.Second)
	tracker.SwitchToQuestion(0)
	clock.advance(7 * time.Second)
	tracker.SwitchToQuestion(1)

	per := tracker.PerQuestionSeconds()
	if per[0] != 17 {
		t.Fatalf("expected 17s folded for question 0, got %d", per[0])
	}
	if per[1] != 5 {
		t.Fatalf("expected 5s folded for question 1, got %d", per[1])
	}
}

func TestPauseStopsAccrual(t *testing.T) {
	tracker, clock := newTestTracker()
	tracker.Start()

	clock.advance(12 * time.Second)
	tracker.Pause()
	clock.advance(time.Hour)

	if got := tracker.TotalSeconds(); got != 12 {
		t.Fatalf("paused tracker should not accrue, got %d", got)
	}

	tracker.Start()
	clock.advance(3 * time.Second)
	if got := tracker.TotalSeconds(); got != 15 {
		t.Fatalf("expected 15s after resume, got %d", got)
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		secs int
		want string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{60, "01:00"},
		{75, "01:15"},
		{3600, "60:00"}, // minutes keep counting past the hour
		{5000, "83:20"},
		{-5, "00:00"},
	}
	for _, c := range cases {
		if got := FormatClock(c.secs); got != c.want {
			t.Fatalf("FormatClock(%d) = %s, want %s", c.secs, got, c.want)
		}
	}
}

func TestClockUsesTotal(t *testing.T) {
	tracker, clock := newTestTracker()
	tracker.Start()
	clock.advance(95 * time.Second)
	tracker.SwitchToQuestion(1)

	if got := tracker.Clock(); got != "01:35" {
		t.Fatalf("expected 01:35, got %s", got)
	}
}
