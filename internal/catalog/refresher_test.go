// internal/catalog/refresher_test.go
package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "estate-match-backend/internal/common/errors"
	"estate-match-backend/internal/common/logger"
	"estate-match-backend/internal/models"
)

type stubLoader struct {
	properties []models.Property
	err        error
	calls      int
}

func (s *stubLoader) Load(ctx context.Context) ([]models.Property, error) {
	s.calls++
	return s.properties, s.err
}

func TestRefreshNow(t *testing.T) {
	t.Run("installs the loaded snapshot", func(t *testing.T) {
		repo := NewRepository()
		loader := &stubLoader{properties: testProperties()}
		refresher := NewRefresher(loader, repo, nil, nil, time.Minute, logger.NewTestLogger(t))

		err := refresher.RefreshNow(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 3, repo.Size())
	})

	t.Run("failure keeps the previous snapshot", func(t *testing.T) {
		repo := NewRepository()
		repo.Replace(testProperties())

		loader := &stubLoader{err: commonerrors.NewFetchFailureError(assert.AnError)}
		refresher := NewRefresher(loader, repo, nil, nil, time.Minute, logger.NewTestLogger(t))

		err := refresher.RefreshNow(context.Background())

		require.Error(t, err)
		assert.Equal(t, 3, repo.Size())
	})

	t.Run("no feed configured is surfaced but not fatal to existing data", func(t *testing.T) {
		repo := NewRepository()
		repo.Replace(testProperties())

		loader := &stubLoader{err: commonerrors.NewNoFeedConfiguredError()}
		refresher := NewRefresher(loader, repo, nil, nil, time.Minute, logger.NewTestLogger(t))

		err := refresher.RefreshNow(context.Background())

		require.Error(t, err)
		assert.Equal(t, commonerrors.ErrCodeNoFeedConfigured, commonerrors.CodeOf(err))
		assert.Equal(t, 3, repo.Size())
	})
}

func TestRunStopsOnContextCancel(t *testing.T) {
	repo := NewRepository()
	loader := &stubLoader{properties: testProperties()}
	refresher := NewRefresher(loader, repo, nil, nil, 10*time.Millisecond, logger.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		refresher.Run(ctx)
		close(done)
	}()

	// Let at least the immediate refresh and one tick happen.
	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop after cancel")
	}

	assert.GreaterOrEqual(t, loader.calls, 2)
	assert.Equal(t, 3, repo.Size())
}
