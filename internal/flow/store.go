package flow

import (
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/skillbloom/skillbloom/internal/metrics"
)

// Store keeps learn sessions in memory, one per learner. Sessions idle for
// longer than the configured limit are dropped by Sweep.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	idle     time.Duration
	now      func() time.Time
	metrics  *metrics.Metrics

	scheduler *gocron.Scheduler
}

func NewStore(idle time.Duration, m *metrics.Metrics) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		idle:     idle,
		now:      time.Now,
		metrics:  m,
	}
}

// Session returns the learner's session, creating a fresh one if needed.
func (s *Store) Session(learnerID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess, ok := s.sessions[learnerID]
	if !ok {
		sess = newSession(now)
		s.sessions[learnerID] = sess
		s.metrics.SetFlowSessions(len(s.sessions))
	}
	sess.mu.Lock()
	sess.lastSeen = now
	sess.mu.Unlock()

	return sess
}

// Sweep drops idle sessions and returns how many were removed. A pending
// generation on a dropped session finishes into a session nobody sees.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idle)
	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		stale := sess.lastSeen.Before(cutoff)
		if stale {
			sess.epoch++
		}
		sess.mu.Unlock()

		if stale {
			delete(s.sessions, id)
			removed++
		}
	}

	s.metrics.SetFlowSessions(len(s.sessions))
	if removed > 0 {
		slog.Debug("swept idle learn sessions", "removed", removed)
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// StartSweeper runs Sweep every interval until Stop is called.
func (s *Store) StartSweeper(interval time.Duration) error {
	scheduler := gocron.NewScheduler(time.UTC)
	_, err := scheduler.Every(interval).Do(func() { s.Sweep() })
	if err != nil {
		return err
	}
	scheduler.StartAsync()
	s.scheduler = scheduler

	slog.Info("flow session sweeper started", "interval", interval, "idle", s.idle)
	return nil
}

func (s *Store) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
