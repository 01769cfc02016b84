package session

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Registry holds the live sessions, keyed by interview ID. Sessions
// are single-owner in-memory state; the registry only hands out the
// owner. Idle entries are evicted by the reaper job rather than a
// background loop of their own.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	log      *zap.Logger
}

func NewRegistry(ttl time.Duration, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		log:      log,
	}
}

func (r *Registry) Put(interviewID string, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[interviewID] = s
}

func (r *Registry) Get(interviewID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[interviewID]
	return s, ok
}

// Delete removes and closes a session, releasing its capture and
// timing resources.
func (r *Registry) Delete(interviewID string) {
	r.mu.Lock()
	s, ok := r.sessions[interviewID]
	delete(r.sessions, interviewID)
	r.mu.Unlock()
	if ok {
		s.Close()
	}
}

func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Reap evicts sessions idle beyond the TTL and returns how many were
// removed. Completed sessions are evicted regardless of idle time.
func (r *Registry) Reap(now time.Time) int {
	r.mu.Lock()
	var evicted []*Session
	for id, s := range r.sessions {
		if s.State() == StateCompleted || now.Sub(s.LastActive()) > r.ttl {
			delete(r.sessions, id)
			evicted = append(evicted, s)
			r.log.Info("Evicted idle session", zap.String("interview_id", id), zap.String("state", s.State()))
		}
	}
	r.mu.Unlock()

	for _, s := range evicted {
		s.Close()
	}
	return len(evicted)
}
