package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mukeshkannan-R/ExpenseTrackerBot/internal/models"
)

func TestStartGetClear(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)

	_, ok := repo.Get(1)
	assert.False(t, ok)

	sess := repo.Start(1, "tag1")
	assert.Equal(t, models.StepDate, sess.Step)
	assert.Equal(t, "tag1", sess.PromptTag)

	got, ok := repo.Get(1)
	require.True(t, ok)
	assert.Equal(t, sess.PromptTag, got.PromptTag)

	repo.Clear(1)
	_, ok = repo.Get(1)
	assert.False(t, ok)
}

func TestStartOverwritesExistingSession(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)

	repo.Start(1, "old")
	require.NoError(t, repo.Update(1, func(s *models.Session) {
		s.Date = "2024-03-01"
		s.Step = models.StepCurrency
	}))

	repo.Start(1, "new")
	sess, ok := repo.Get(1)
	require.True(t, ok)
	assert.Equal(t, "new", sess.PromptTag)
	assert.Equal(t, models.StepDate, sess.Step)
	assert.Empty(t, sess.Date, "no merge with stale data")
}

func TestUpdateWithoutSession(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)

	err := repo.Update(1, func(s *models.Session) { s.Note = "x" })
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestGetReturnsCopy(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)
	repo.Start(1, "tag")

	sess, _ := repo.Get(1)
	sess.Date = "2099-01-01"

	again, _ := repo.Get(1)
	assert.Empty(t, again.Date, "mutating a returned session must not touch the store")
}

func TestIdleSessionExpires(t *testing.T) {
	repo := NewMemorySessionRepository(30 * time.Minute)

	current := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return current }

	repo.Start(1, "tag")

	current = current.Add(29 * time.Minute)
	_, ok := repo.Get(1)
	assert.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok = repo.Get(1)
	assert.False(t, ok, "session idle past the TTL reads as absent")

	err := repo.Update(1, func(s *models.Session) {})
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestUpdateRefreshesIdleClock(t *testing.T) {
	repo := NewMemorySessionRepository(30 * time.Minute)

	current := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return current }

	repo.Start(1, "tag")

	current = current.Add(25 * time.Minute)
	require.NoError(t, repo.Update(1, func(s *models.Session) { s.Step = models.StepCurrency }))

	current = current.Add(25 * time.Minute)
	_, ok := repo.Get(1)
	assert.True(t, ok, "activity resets the idle clock")
}

func TestSweepDropsOnlyExpired(t *testing.T) {
	repo := NewMemorySessionRepository(30 * time.Minute)

	current := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return current }

	repo.Start(1, "old")
	current = current.Add(31 * time.Minute)
	repo.Start(2, "fresh")

	repo.sweep()

	_, ok := repo.Get(1)
	assert.False(t, ok)
	_, ok = repo.Get(2)
	assert.True(t, ok)
}

func TestConcurrentUsersDoNotInterfere(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)

	const users = 50
	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		userID := int64(i + 1)
		wg.Add(1)
		go func() {
			defer wg.Done()

			repo.Start(userID, "tag")
			for step := models.StepCurrency; step <= models.StepNote; step++ {
				s := step
				if err := repo.Update(userID, func(sess *models.Session) {
					sess.Step = s
				}); err != nil {
					t.Errorf("user %d: %v", userID, err)
				}
			}
		}()
	}
	wg.Wait()

	for i := 0; i < users; i++ {
		sess, ok := repo.Get(int64(i + 1))
		require.True(t, ok)
		assert.Equal(t, models.StepNote, sess.Step)
	}
}
