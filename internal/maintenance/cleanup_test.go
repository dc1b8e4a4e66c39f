package maintenance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockNotificationStore struct {
	mock.Mock
}

func (m *MockNotificationStore) DeleteNotificationsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	args := m.Called(ctx, cutoff)
	return args.Int(0), args.Error(1)
}

func TestCleaner_Run(t *testing.T) {
	store := new(MockNotificationStore)
	cleaner := NewCleaner(store, zap.NewNop(), 30)

	store.On("DeleteNotificationsBefore", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		want := time.Now().Add(-30 * 24 * time.Hour)
		return cutoff.After(want.Add(-time.Minute)) && cutoff.Before(want.Add(time.Minute))
	})).Return(7, nil)

	deleted, err := cleaner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, deleted)
	store.AssertExpectations(t)
}

func TestCleaner_RunReportsFailure(t *testing.T) {
	store := new(MockNotificationStore)
	cleaner := NewCleaner(store, zap.NewNop(), 30)

	store.On("DeleteNotificationsBefore", mock.Anything, mock.Anything).Return(2, errors.New("store unavailable"))

	deleted, err := cleaner.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, deleted)
}
