package timer

import (
	"fmt"
	"sync"
	"time"
)

// Tracker produces monotonically non-decreasing elapsed-time counters
// for one interview session: a session-wide total that never resets,
// a current-question counter that resets exactly on SwitchToQuestion,
// and a cumulative per-question map so revisits keep accumulating.
//
// Time only accrues between Start and Pause; the session pauses the
// tracker while loading or generating.
type Tracker struct {
	mu  sync.Mutex
	now func() time.Time

	running   bool
	startedAt time.Time

	current       int
	totalAccum    time.Duration
	questionAccum time.Duration
	perQuestion   map[int]time.Duration
}

func NewTracker() *Tracker {
	return NewTrackerWithClock(time.Now)
}

// NewTrackerWithClock injects the wall clock, used by tests.
func NewTrackerWithClock(now func() time.Time) *Tracker {
	return &Tracker{
		now:         now,
		perQuestion: make(map[int]time.Duration),
	}
}

// segment returns the duration of the in-progress running interval.
// Callers hold t.mu.
func (t *Tracker) segment() time.Duration {
	if !t.running {
		return 0
	}
	return t.now().Sub(t.startedAt)
}

func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.startedAt = t.now()
	t.running = true
}

func (t *Tracker) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	d := t.segment()
	t.totalAccum += d
	t.questionAccum += d
	t.running = false
}

// SwitchToQuestion folds the time accumulated for the previous index
// into the per-question map and zeroes the current-question counter.
// The session-wide total is unaffected.
func (t *Tracker) SwitchToQuestion(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	d := t.segment()
	if t.running {
		t.totalAccum += d
		t.startedAt = t.now()
	}
	t.perQuestion[t.current] += t.questionAccum + d
	t.questionAccum = 0
	t.current = index
}

func (t *Tracker) TotalSeconds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return int((t.totalAccum + t.segment()).Seconds())
}

func (t *Tracker) QuestionSeconds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return int((t.questionAccum + t.segment()).Seconds())
}

// PerQuestionSeconds returns the folded cumulative seconds per index.
// The in-progress counter for the current index is not included until
// the next switch.
func (t *Tracker) PerQuestionSeconds() map[int]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[int]int, len(t.perQuestion))
	for i, d := range t.perQuestion {
		if d > 0 {
			out[i] = int(d.Seconds())
		}
	}
	return out
}

// Clock formats the session-wide total as MM:SS.
func (t *Tracker) Clock() string {
	return FormatClock(t.TotalSeconds())
}

// FormatClock renders seconds as zero-padded minutes:seconds. Minutes
// may exceed 59; there is no hour rollover.
func FormatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
