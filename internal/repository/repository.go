package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Mukeshkannan-R/ExpenseTrackerBot/internal/models"
)

var ErrNoActiveSession = errors.New("no active session")

// SessionRepository holds the in-progress conversation for each user.
// Implementations must be safe for concurrent use; operations on a single
// user's session are atomic with respect to each other.
type SessionRepository interface {
	Get(userID int64) (models.Session, bool)
	Start(userID int64, promptTag string) models.Session
	Update(userID int64, mutate func(*models.Session)) error
	Clear(userID int64)
}

type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[int64]*models.Session
	ttl      time.Duration
	now      func() time.Time
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[int64]*models.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns a copy of the user's session. A session idle for longer than
// the TTL is dropped and reads as absent.
func (r *MemorySessionRepository) Get(userID int64) (models.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[userID]
	if !ok {
		return models.Session{}, false
	}
	if r.expired(s) {
		delete(r.sessions, userID)
		return models.Session{}, false
	}
	return *s, true
}

// Start creates a fresh session for the user, overwriting any existing one.
func (r *MemorySessionRepository) Start(userID int64, promptTag string) models.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &models.Session{
		UserID:    userID,
		PromptTag: promptTag,
		Step:      models.StepDate,
		UpdatedAt: r.now(),
	}
	r.sessions[userID] = s
	return *s
}

func (r *MemorySessionRepository) Update(userID int64, mutate func(*models.Session)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[userID]
	if !ok || r.expired(s) {
		delete(r.sessions, userID)
		return ErrNoActiveSession
	}
	mutate(s)
	s.UpdatedAt = r.now()
	return nil
}

func (r *MemorySessionRepository) Clear(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
}

// Janitor periodically drops sessions that sat idle past the TTL, so abandoned
// conversations do not pile up in memory. Blocks until ctx is done.
func (r *MemorySessionRepository) Janitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

func (r *MemorySessionRepository) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if r.expired(s) {
			delete(r.sessions, id)
		}
	}
}

func (r *MemorySessionRepository) expired(s *models.Session) bool {
	return r.ttl > 0 && r.now().Sub(s.UpdatedAt) > r.ttl
}
